package cdr

import (
	"encoding/binary"
	"log/slog"

	"github.com/eprosima/fastcdr-go/internal/cdrtrace"
)

var hostEndianness = func() Endianness {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}()

// Cdr is the codec cursor: the single mutable object every serialize and
// deserialize call in this package advances. It owns no business logic of
// its own beyond the CDR wire rules — a Cdr is driven by user types that
// call it, the same separation the teacher draws between its xdr package
// and the protocol handlers that call into it.
type Cdr struct {
	buf *Buffer

	offset int
	origin int

	endianness Endianness
	variant    Version
	encoding   Encoding

	lastDataSize int
	options      uint16
	nextMemberID MemberID

	headerSelection HeaderSelection
	align64         int

	dheaderOffset int
	dheaderOpen   bool

	logger  *slog.Logger
	metrics *Metrics
}

// New constructs a Cdr over buf. variant selects the CDR family, which
// fixes the 64-bit alignment cap (8 for CORBA_CDR/DDS_CDR/XCDRv1, 4 for
// XCDRv2) and the default encoding algorithm for that family.
func New(buf *Buffer, endianness Endianness, variant Version) *Cdr {
	c := &Cdr{
		buf:             buf,
		endianness:      endianness,
		variant:         variant,
		headerSelection: AutoWithShortHeaderByDefault,
		nextMemberID:    MemberIDInvalid,
	}
	if variant == XCdrV2 {
		c.align64 = 4
		c.encoding = PlainCdr2
	} else {
		c.align64 = 8
		c.encoding = PlainCdr
	}
	return c
}

// SetLogger attaches an optional diagnostics sink (see internal/cdrtrace).
// A nil logger (the default) disables all tracing.
func (c *Cdr) SetLogger(logger *slog.Logger) { c.logger = logger }

// Reset rewinds the cursor to the start of the buffer without discarding
// its content; offset, origin and last_data_size all return to zero.
func (c *Cdr) Reset() {
	c.offset = 0
	c.origin = 0
	c.lastDataSize = 0
	c.dheaderOpen = false
}

// Jump moves the cursor to an absolute byte offset, bypassing alignment.
// It is used by callers that know the wire layout out of band (e.g.
// skipping a member whose size was already determined by the framing
// state machine).
func (c *Cdr) Jump(offset int) error {
	if offset < 0 || offset > c.buf.Len() {
		return newNotEnoughMemory("cdr: jump to %d exceeds logical length %d", offset, c.buf.Len())
	}
	c.offset = offset
	c.lastDataSize = 0
	return nil
}

// Position returns the cursor's current absolute byte offset.
func (c *Cdr) Position() int { return c.offset }

// Endianness returns the stream's configured byte order.
func (c *Cdr) Endianness() Endianness { return c.endianness }

// SwapBytes reports whether the stream's endianness differs from the host,
// i.e. whether primitive accesses must reverse bytes.
func (c *Cdr) SwapBytes() bool { return c.endianness != hostEndianness }

// SetEndianness overrides the stream endianness. Composite operations that
// need a scoped override (§4.3) should capture the prior value, call this,
// perform the operation, and restore it — see WithEndianness.
func (c *Cdr) SetEndianness(e Endianness) { c.endianness = e }

// WithEndianness runs fn with the stream temporarily set to e, restoring
// the prior endianness afterward even if fn fails.
func (c *Cdr) WithEndianness(e Endianness, fn func() error) error {
	prior := c.endianness
	c.endianness = e
	err := fn()
	c.endianness = prior
	return err
}

// EncodingFlag returns the active member-framing algorithm.
func (c *Cdr) EncodingFlag() Encoding { return c.encoding }

// SetEncodingFlag sets the active member-framing algorithm for subsequent
// type-level operations that don't otherwise specify one explicitly.
func (c *Cdr) SetEncodingFlag(e Encoding) { c.encoding = e }

// Options returns the 16-bit DDS option flags carried by the encapsulation
// header.
func (c *Cdr) Options() uint16 { return c.options }

// SetOptions sets the 16-bit DDS option flags written by the next call to
// SerializeEncapsulation.
func (c *Cdr) SetOptions(opts uint16) { c.options = opts }

// SetHeaderSelection sets the default member-header selection policy used
// when a member-framing call is not given an explicit one.
func (c *Cdr) SetHeaderSelection(h HeaderSelection) { c.headerSelection = h }

// SetNextMemberID records the id the caller intends to use for the next
// member-framing call, mirroring the C++ source's pending next_member_id
// cursor field; BeginSerializeMember still accepts an explicit id and does
// not require this to be set.
func (c *Cdr) SetNextMemberID(id MemberID) { c.nextMemberID = id }

// NextMemberID returns the pending member id set by SetNextMemberID.
func (c *Cdr) NextMemberID() MemberID { return c.nextMemberID }

func (c *Cdr) order() binary.ByteOrder {
	if c.endianness == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// computePad applies the CDR alignment short-circuit: no padding is
// inserted when the new primitive is no wider than the last one written,
// and 64-bit alignment is capped at align64 (4 for XCDRv2, 8 otherwise).
func (c *Cdr) computePad(width int) int {
	alignWidth := width
	if alignWidth > c.align64 {
		alignWidth = c.align64
	}
	if alignWidth <= c.lastDataSize {
		return 0
	}
	rel := c.offset - c.origin
	return (alignWidth - (rel % alignWidth)) & (alignWidth - 1)
}

// writePad advances offset by n zero bytes without touching last_data_size;
// it backs both primitive alignment and the explicit 4-byte header
// alignment the XCDRv1 parameter-list framing requires.
func (c *Cdr) writePad(n int) error {
	if n == 0 {
		return nil
	}
	if err := c.buf.writeAt(c.offset, make([]byte, n)); err != nil {
		return err
	}
	c.offset += n
	return nil
}

func (c *Cdr) alignForWrite(width int) error {
	return c.writePad(c.computePad(width))
}

func (c *Cdr) alignForRead(width int) error {
	pad := c.computePad(width)
	if pad == 0 {
		return nil
	}
	if c.offset+pad > c.buf.Len() {
		return newNotEnoughMemory("cdr: alignment padding of %d bytes exceeds logical length", pad)
	}
	c.offset += pad
	return nil
}

// writeRaw is the single width-parameterized primitive-access routine every
// typed Serialize* helper funnels through (the Go replacement for the
// source's per-width overload set, per §9's design note).
func (c *Cdr) writeRaw(width int, data []byte) error {
	start := c.offset
	if err := c.alignForWrite(width); err != nil {
		c.offset = start
		return err
	}
	if err := c.buf.writeAt(c.offset, data); err != nil {
		c.offset = start
		return err
	}
	c.offset += width
	c.lastDataSize = width
	c.countEncoded(width)
	c.trace("cdr: wrote primitive", cdrtrace.KeyOffset, c.offset, cdrtrace.KeyWidth, width)
	return nil
}

func (c *Cdr) readRaw(width int) ([]byte, error) {
	start := c.offset
	if err := c.alignForRead(width); err != nil {
		c.offset = start
		return nil, err
	}
	b, err := c.buf.readAt(c.offset, width)
	if err != nil {
		c.offset = start
		return nil, err
	}
	c.offset += width
	c.lastDataSize = width
	c.countDecoded(width)
	c.trace("cdr: read primitive", cdrtrace.KeyOffset, c.offset, cdrtrace.KeyWidth, width)
	return b, nil
}

// writeBytesRaw bulk-writes width-1 data (string/opaque payloads) with no
// alignment, since width-1 access never aligns.
func (c *Cdr) writeBytesRaw(data []byte) error {
	if err := c.buf.writeAt(c.offset, data); err != nil {
		return err
	}
	c.offset += len(data)
	c.lastDataSize = 1
	return nil
}

func (c *Cdr) readBytesRaw(n int) ([]byte, error) {
	b, err := c.buf.readAt(c.offset, n)
	if err != nil {
		return nil, err
	}
	c.offset += n
	c.lastDataSize = 1
	return b, nil
}

func (c *Cdr) patchUint16At(offset int, v uint16) error {
	var b [2]byte
	c.order().PutUint16(b[:], v)
	return c.buf.writeAt(offset, b[:])
}

func (c *Cdr) patchUint32At(offset int, v uint32) error {
	var b [4]byte
	c.order().PutUint32(b[:], v)
	return c.buf.writeAt(offset, b[:])
}

func (c *Cdr) readUint16At(offset int) (uint16, error) {
	b, err := c.buf.readAt(offset, 2)
	if err != nil {
		return 0, err
	}
	return c.order().Uint16(b), nil
}

func (c *Cdr) readUint32At(offset int) (uint32, error) {
	b, err := c.buf.readAt(offset, 4)
	if err != nil {
		return 0, err
	}
	return c.order().Uint32(b), nil
}

func (c *Cdr) trace(msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, args...)
}
