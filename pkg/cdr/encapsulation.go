package cdr

// Representation identifiers for the 4-octet encapsulation header. The
// little-endian sibling of every big-endian id is always id|1 (bit 0 of
// repr_lo is the endianness bit per §6).
//
// The XCDRv2 family shares a single id across PLAIN_CDR2, DELIMIT_CDR2 and
// PL_CDR2: the stream alone cannot distinguish them, matching real
// DDS-XTypes behavior where that distinction comes from each aggregate
// type's IDL-declared extensibility, not from the top-level encapsulation.
// See SPEC_FULL.md §4.4 for how this reproduces the concrete scenarios in
// §8 bit-exactly.
const (
	reprIDPlainCdrBE byte = 0x00
	reprIDPlainCdrLE byte = 0x01
	reprIDPlCdrBE    byte = 0x02
	reprIDPlCdrLE    byte = 0x03
	reprIDXCdr2BE    byte = 0x0a
	reprIDXCdr2LE    byte = 0x0b
)

func (c *Cdr) representationID() byte {
	var be byte
	switch c.encoding {
	case PlainCdr:
		be = reprIDPlainCdrBE
	case PlCdr:
		be = reprIDPlCdrBE
	case PlainCdr2, DelimitCdr2, PlCdr2:
		be = reprIDXCdr2BE
	default:
		be = reprIDPlainCdrBE
	}
	if c.endianness == LittleEndian {
		return be | 1
	}
	return be
}

func encodingFromRepresentationID(id byte) (Encoding, Endianness) {
	endian := BigEndian
	if id&1 != 0 {
		endian = LittleEndian
	}
	switch id &^ 1 {
	case reprIDPlCdrBE:
		return PlCdr, endian
	case reprIDXCdr2BE:
		return PlainCdr2, endian
	default:
		return PlainCdr, endian
	}
}

func variantForEncoding(e Encoding) Version {
	switch e {
	case PlainCdr, PlCdr:
		return XCdrV1
	case PlainCdr2, DelimitCdr2, PlCdr2:
		return XCdrV2
	default:
		return CorbaCdr
	}
}

// SerializeEncapsulation writes the 4-octet encapsulation prefix (repr_hi,
// repr_lo, option_hi, option_lo) and re-anchors origin to the byte
// following it, per §4.4.
func (c *Cdr) SerializeEncapsulation() error {
	saved := c.snapshot()
	if err := c.writeBytesRaw([]byte{0x00, c.representationID()}); err != nil {
		c.restore(saved)
		return err
	}
	var opts [2]byte
	opts[0] = byte(c.options >> 8)
	opts[1] = byte(c.options)
	if err := c.writeBytesRaw(opts[:]); err != nil {
		c.restore(saved)
		return err
	}
	c.origin = c.offset
	c.lastDataSize = 0
	return nil
}

// ReadEncapsulation parses the 4-octet encapsulation prefix, infers
// endianness and the encoding algorithm, and re-anchors origin to the byte
// following it.
func (c *Cdr) ReadEncapsulation() error {
	saved := c.snapshot()
	hdr, err := c.readBytesRaw(4)
	if err != nil {
		c.restore(saved)
		return err
	}
	if hdr[0] != 0x00 {
		c.restore(saved)
		return newBadParam("cdr: unsupported encapsulation repr_hi byte 0x%02x", hdr[0])
	}
	encoding, endian := encodingFromRepresentationID(hdr[1])
	c.encoding = encoding
	c.endianness = endian
	c.variant = variantForEncoding(encoding)
	if c.variant == XCdrV2 {
		c.align64 = 4
	} else {
		c.align64 = 8
	}
	c.options = uint16(hdr[2])<<8 | uint16(hdr[3])
	c.origin = c.offset
	c.lastDataSize = 0
	return nil
}
