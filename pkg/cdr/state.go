package cdr

// State is a snapshot of a Cdr cursor. It is a plain value: capturing one
// costs a struct copy, and restoring one rewinds the cursor exactly,
// including the origin PUSH/POP semantics at type and member boundaries.
//
// Every codec operation that can fail captures a State on entry and
// restores it before propagating the error, so the cursor position is
// transactional per operation (§7's propagation policy).
type State struct {
	offset       int
	origin       int
	lastDataSize int
	encoding     Encoding

	// Member-framing bookkeeping, meaningful only between a
	// BeginSerializeMember call and its matching EndSerializeMember.
	memberID        MemberID
	required        bool
	headerSelection HeaderSelection
	headerForm      headerForm
	headerOffset    int
	skip            bool

	// Type-framing bookkeeping, meaningful only between a
	// BeginSerializeType call and its matching EndSerializeType. These
	// capture the *enclosing* scope's dheader state so nested
	// DELIMIT_CDR2/PL_CDR2 types restore it correctly on Close.
	dheaderOffset  int
	dheaderWasOpen bool
}

type headerForm int

const (
	headerFormNone headerForm = iota
	headerFormShortV1
	headerFormLongV1
	headerFormV2Provisional
	headerFormV2NextInt
)

func (c *Cdr) snapshot() State {
	return State{
		offset:         c.offset,
		origin:         c.origin,
		lastDataSize:   c.lastDataSize,
		encoding:       c.encoding,
		dheaderOffset:  c.dheaderOffset,
		dheaderWasOpen: c.dheaderOpen,
	}
}

func (c *Cdr) restore(s State) {
	c.offset = s.offset
	c.origin = s.origin
	c.lastDataSize = s.lastDataSize
	c.encoding = s.encoding
}

// GetState captures the cursor's current position for later rollback.
func (c *Cdr) GetState() State { return c.snapshot() }

// SetState rewinds the cursor to a previously captured State.
func (c *Cdr) SetState(s State) { c.restore(s) }
