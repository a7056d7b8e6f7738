package cdr

// Endianness selects the byte order of a serialized stream.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

func (e Endianness) String() string {
	if e == LittleEndian {
		return "LittleEndian"
	}
	return "BigEndian"
}

// Version identifies the CDR family member a Cdr cursor speaks.
type Version int

const (
	CorbaCdr Version = iota
	DdsCdr
	XCdrV1
	XCdrV2
)

// Encoding selects the per-member framing algorithm.
type Encoding int

const (
	PlainCdr Encoding = iota
	PlCdr
	PlainCdr2
	DelimitCdr2
	PlCdr2
)

func (e Encoding) usesDHeader() bool {
	return e == DelimitCdr2 || e == PlCdr2
}

func (e Encoding) isParameterList() bool {
	return e == PlCdr || e == PlCdr2
}

// HeaderSelection controls which XCDR member-header form is emitted.
type HeaderSelection int

const (
	// HeaderSelectionDefault tells BeginSerializeMember to use the cursor's
	// own SetHeaderSelection policy rather than overriding it per call.
	HeaderSelectionDefault HeaderSelection = iota - 1
	ShortHeader
	LongHeader
	AutoWithShortHeaderByDefault
	AutoWithLongHeaderByDefault
)

func (h HeaderSelection) wantsLong() bool {
	return h == LongHeader || h == AutoWithLongHeaderByDefault
}

// MemberID is a caller-assigned identifier for a member of an extensible
// aggregate. The codec never assigns or interprets it beyond the reserved
// range used by the XCDRv1 parameter-list framing.
type MemberID uint32

// MemberIDInvalid is the sentinel "no member id" value.
const MemberIDInvalid MemberID = 0xFFFFFFFF

// LongDouble is an opaque 16-byte on-wire value. No Go numeric type shares
// its platform-dependent in-memory layout (10-byte x87 extended, 16-byte
// quad, or something else entirely), so the codec only ever moves these
// bytes around — see the long double decision in DESIGN.md.
type LongDouble [16]byte
