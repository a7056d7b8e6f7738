package cdr

// SizeCalculator mirrors the alignment and member-framing rules of Cdr
// using only a running byte counter, with no backing buffer. It exists so
// a caller can learn a value's exact encoded length — to size an
// allocation, or to decide a member's header form — without writing any
// bytes.
//
// Member framing never needs Cdr's promote-and-shiftRight dance here: the
// short-to-long (V1) and direct-to-NEXTINT (V2) promotion deltas are each
// an exact multiple of align64 (8 and 4 respectively), so padding already
// counted for the fields inside a member's body is never invalidated by
// deciding, only after the fact, how large that member's own header turned
// out to be. The calculator assumes the compact header form up front and
// simply adds the (also align64-aligned) difference once the body's true
// length is known — see SPEC_FULL.md §4.6.
type SizeCalculator struct {
	offset       int
	origin       int
	lastDataSize int
	align64      int
	variant      Version
	encoding     Encoding
}

// NewSizeCalculator constructs a SizeCalculator for variant, matching the
// align64 cap and default encoding Cdr.New would choose.
func NewSizeCalculator(variant Version) *SizeCalculator {
	sc := &SizeCalculator{variant: variant}
	if variant == XCdrV2 {
		sc.align64 = 4
		sc.encoding = PlainCdr2
	} else {
		sc.align64 = 8
		sc.encoding = PlainCdr
	}
	return sc
}

// Size returns the total number of bytes accumulated so far.
func (sc *SizeCalculator) Size() int { return sc.offset }

// EncodingFlag returns the active member-framing algorithm.
func (sc *SizeCalculator) EncodingFlag() Encoding { return sc.encoding }

// SetEncodingFlag sets the active member-framing algorithm.
func (sc *SizeCalculator) SetEncodingFlag(e Encoding) { sc.encoding = e }

func (sc *SizeCalculator) computePad(width int) int {
	alignWidth := width
	if alignWidth > sc.align64 {
		alignWidth = sc.align64
	}
	if alignWidth <= sc.lastDataSize {
		return 0
	}
	rel := sc.offset - sc.origin
	return (alignWidth - (rel % alignWidth)) & (alignWidth - 1)
}

func (sc *SizeCalculator) addPrimitive(width int) {
	sc.offset += sc.computePad(width)
	sc.offset += width
	sc.lastDataSize = width
}

func (sc *SizeCalculator) addBytes(n int) {
	sc.offset += n
	sc.lastDataSize = 1
}

func (sc *SizeCalculator) SizeOctet() { sc.addPrimitive(1) }
func (sc *SizeCalculator) SizeBool()  { sc.addPrimitive(1) }
func (sc *SizeCalculator) SizeInt8()  { sc.addPrimitive(1) }
func (sc *SizeCalculator) SizeChar()  { sc.addPrimitive(1) }

func (sc *SizeCalculator) SizeUint16() { sc.addPrimitive(2) }
func (sc *SizeCalculator) SizeInt16()  { sc.addPrimitive(2) }

func (sc *SizeCalculator) SizeUint32()  { sc.addPrimitive(4) }
func (sc *SizeCalculator) SizeInt32()   { sc.addPrimitive(4) }
func (sc *SizeCalculator) SizeFloat32() { sc.addPrimitive(4) }
func (sc *SizeCalculator) SizeWChar()   { sc.addPrimitive(4) }

func (sc *SizeCalculator) SizeUint64()  { sc.addPrimitive(8) }
func (sc *SizeCalculator) SizeInt64()   { sc.addPrimitive(8) }
func (sc *SizeCalculator) SizeFloat64() { sc.addPrimitive(8) }

func (sc *SizeCalculator) SizeLongDouble() { sc.addPrimitive(16) }

// SizeString adds the length of a narrow CDR string: a uint32 length
// prefix plus the payload and its NUL terminator.
func (sc *SizeCalculator) SizeString(s string) {
	sc.addPrimitive(4)
	sc.addBytes(len(s) + 1)
}

// SizeWideString adds the length of a wide CDR string: a uint32 code-unit
// count plus one 32-bit code unit per rune, with no terminator.
func (sc *SizeCalculator) SizeWideString(s string) {
	sc.addPrimitive(4)
	for range s {
		sc.addPrimitive(4)
	}
}

// SizeCount adds an int32 element/pair count field, the common prefix of
// sequences and maps.
func (sc *SizeCalculator) SizeCount() { sc.addPrimitive(4) }

// SizeOptionalFlag adds the explicit one-octet presence flag used by the
// PLAIN_CDR2/DELIMIT_CDR2 Optional representation.
func (sc *SizeCalculator) SizeOptionalFlag() { sc.addPrimitive(1) }

type sizeTypeState struct {
	prevEncoding Encoding
	prevOrigin   int
}

// BeginType opens a type-level framing scope the same way
// Cdr.BeginSerializeType does, adding the DHEADER's 4 bytes up front for
// DELIMIT_CDR2/PL_CDR2 and re-anchoring origin to the body.
func (sc *SizeCalculator) BeginType(encoding Encoding) sizeTypeState {
	st := sizeTypeState{prevEncoding: sc.encoding, prevOrigin: sc.origin}
	sc.encoding = encoding
	if encoding.usesDHeader() {
		sc.addPrimitive(4)
		sc.origin = sc.offset
		sc.lastDataSize = 0
	}
	return st
}

// EndType closes a type-level framing scope, adding the PID_SENTINEL
// terminator's 4 bytes for PL_CDR v1 (DELIMIT_CDR2/PL_CDR2 already
// accounted for their fixed-size DHEADER in BeginType).
func (sc *SizeCalculator) EndType(st sizeTypeState) {
	if sc.encoding == PlCdr {
		sc.addPrimitive(4)
	}
	sc.encoding = st.prevEncoding
	sc.origin = st.prevOrigin
}

type sizeMemberState struct {
	memberID        MemberID
	headerSelection HeaderSelection
	bodyStart       int
	assumedShort    bool
	prevOrigin      int
}

// BeginMember opens a member-framing scope, optimistically reserving the
// compact header form's byte count (4, for both the V1 short header and
// the V2 direct-form EMHEADER) and re-anchoring origin to the member body,
// as Cdr.BeginSerializeMember does. Outside PL_CDR/PL_CDR2 it adds nothing.
func (sc *SizeCalculator) BeginMember(id MemberID, selection HeaderSelection) sizeMemberState {
	if !sc.encoding.isParameterList() {
		return sizeMemberState{memberID: id, headerSelection: selection, bodyStart: sc.offset, prevOrigin: sc.origin}
	}
	if selection == HeaderSelectionDefault {
		selection = AutoWithShortHeaderByDefault
	}
	wantLong := selection.wantsLong()
	if sc.variant == XCdrV2 {
		sc.addPrimitive(4)
		if wantLong {
			sc.addPrimitive(4)
		}
	} else {
		sc.addPrimitive(4)
		if wantLong {
			sc.addPrimitive(4)
			sc.addPrimitive(4)
		}
	}
	st := sizeMemberState{
		memberID:        id,
		headerSelection: selection,
		bodyStart:       sc.offset,
		assumedShort:    !wantLong,
		prevOrigin:      sc.origin,
	}
	sc.origin = sc.offset
	return st
}

// EndMember closes a member-framing scope, adding whatever extra header
// bytes the final body length requires: +8 for a V1 short-to-long
// promotion, +4 for a V2 direct-to-NEXTINT promotion. Both deltas are
// exact multiples of align64, so they never change any padding already
// counted inside the body.
func (sc *SizeCalculator) EndMember(st sizeMemberState) {
	sc.origin = st.prevOrigin
	if !st.assumedShort {
		return
	}
	bodyLen := sc.offset - st.bodyStart
	if sc.variant == XCdrV2 {
		if bodyLen != 1 {
			sc.offset += 4
		}
		return
	}
	if bodyLen > 0xFFFF || st.memberID > MemberID(shortIDMax) {
		sc.offset += 8
	}
}
