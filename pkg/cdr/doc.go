// Package cdr implements the OMG Common Data Representation family of wire
// encodings: classical CORBA CDR, DDS CDR, and Extended CDR v1/v2 including
// the Parameter List and Delimited member-framing algorithms.
//
// This package contains only generic codec utilities with no dependency on
// any particular IDL-generated type: a user type participates through its
// own encode, decode and size functions, which call into a *Cdr /
// *SizeCalculator pair. The package defines no interface for them.
package cdr
