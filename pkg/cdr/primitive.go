package cdr

import "math"

// SerializeOctet writes a single raw byte. Octet, int8, bool and char all
// share this width-1 path, which never aligns.
func SerializeOctet(c *Cdr, v uint8) error {
	return c.writeRaw(1, []byte{v})
}

// DeserializeOctet reads a single raw byte.
func DeserializeOctet(c *Cdr) (uint8, error) {
	b, err := c.readRaw(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// SerializeInt8 writes a signed 8-bit integer.
func SerializeInt8(c *Cdr, v int8) error { return SerializeOctet(c, uint8(v)) }

// DeserializeInt8 reads a signed 8-bit integer.
func DeserializeInt8(c *Cdr) (int8, error) {
	v, err := DeserializeOctet(c)
	return int8(v), err
}

// SerializeChar writes a single-octet character.
func SerializeChar(c *Cdr, v byte) error { return SerializeOctet(c, v) }

// DeserializeChar reads a single-octet character.
func DeserializeChar(c *Cdr) (byte, error) { return DeserializeOctet(c) }

// SerializeBool writes a CDR boolean as exactly one octet, 0x00 or 0x01.
func SerializeBool(c *Cdr, v bool) error {
	if v {
		return SerializeOctet(c, 1)
	}
	return SerializeOctet(c, 0)
}

// DeserializeBool reads a CDR boolean, rejecting any octet value other than
// 0x00/0x01 as BadParam.
func DeserializeBool(c *Cdr) (bool, error) {
	v, err := DeserializeOctet(c)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, newBadParam("cdr: boolean octet 0x%02x is neither 0x00 nor 0x01", v)
	}
}

// SerializeUint16 writes an unsigned 16-bit integer.
func SerializeUint16(c *Cdr, v uint16) error {
	var b [2]byte
	c.order().PutUint16(b[:], v)
	return c.writeRaw(2, b[:])
}

// DeserializeUint16 reads an unsigned 16-bit integer.
func DeserializeUint16(c *Cdr) (uint16, error) {
	b, err := c.readRaw(2)
	if err != nil {
		return 0, err
	}
	return c.order().Uint16(b), nil
}

// SerializeInt16 writes a signed 16-bit integer.
func SerializeInt16(c *Cdr, v int16) error { return SerializeUint16(c, uint16(v)) }

// DeserializeInt16 reads a signed 16-bit integer.
func DeserializeInt16(c *Cdr) (int16, error) {
	v, err := DeserializeUint16(c)
	return int16(v), err
}

// SerializeUint32 writes an unsigned 32-bit integer.
func SerializeUint32(c *Cdr, v uint32) error {
	var b [4]byte
	c.order().PutUint32(b[:], v)
	return c.writeRaw(4, b[:])
}

// DeserializeUint32 reads an unsigned 32-bit integer.
func DeserializeUint32(c *Cdr) (uint32, error) {
	b, err := c.readRaw(4)
	if err != nil {
		return 0, err
	}
	return c.order().Uint32(b), nil
}

// SerializeInt32 writes a signed 32-bit integer.
func SerializeInt32(c *Cdr, v int32) error { return SerializeUint32(c, uint32(v)) }

// DeserializeInt32 reads a signed 32-bit integer.
func DeserializeInt32(c *Cdr) (int32, error) {
	v, err := DeserializeUint32(c)
	return int32(v), err
}

// SerializeUint64 writes an unsigned 64-bit integer, subject to align64.
func SerializeUint64(c *Cdr, v uint64) error {
	var b [8]byte
	c.order().PutUint64(b[:], v)
	return c.writeRaw(8, b[:])
}

// DeserializeUint64 reads an unsigned 64-bit integer.
func DeserializeUint64(c *Cdr) (uint64, error) {
	b, err := c.readRaw(8)
	if err != nil {
		return 0, err
	}
	return c.order().Uint64(b), nil
}

// SerializeInt64 writes a signed 64-bit integer.
func SerializeInt64(c *Cdr, v int64) error { return SerializeUint64(c, uint64(v)) }

// DeserializeInt64 reads a signed 64-bit integer.
func DeserializeInt64(c *Cdr) (int64, error) {
	v, err := DeserializeUint64(c)
	return int64(v), err
}

// SerializeFloat32 writes an IEEE-754 binary32 value.
func SerializeFloat32(c *Cdr, v float32) error {
	return SerializeUint32(c, math.Float32bits(v))
}

// DeserializeFloat32 reads an IEEE-754 binary32 value.
func DeserializeFloat32(c *Cdr) (float32, error) {
	v, err := DeserializeUint32(c)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// SerializeFloat64 writes an IEEE-754 binary64 value.
func SerializeFloat64(c *Cdr, v float64) error {
	return SerializeUint64(c, math.Float64bits(v))
}

// DeserializeFloat64 reads an IEEE-754 binary64 value.
func DeserializeFloat64(c *Cdr) (float64, error) {
	v, err := DeserializeUint64(c)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// SerializeWChar writes a wide character as a 32-bit code unit.
func SerializeWChar(c *Cdr, v rune) error { return SerializeUint32(c, uint32(v)) }

// DeserializeWChar reads a wide character as a 32-bit code unit.
func DeserializeWChar(c *Cdr) (rune, error) {
	v, err := DeserializeUint32(c)
	return rune(v), err
}

// SerializeLongDouble moves a LongDouble's 16 raw bytes, reversing them
// under swap_bytes like any other primitive. See the long double decision
// in DESIGN.md: this package never interprets the bytes numerically.
func SerializeLongDouble(c *Cdr, v LongDouble) error {
	b := v
	if c.SwapBytes() {
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}
	return c.writeRaw(16, b[:])
}

// DeserializeLongDouble reads a LongDouble's 16 raw bytes.
func DeserializeLongDouble(c *Cdr) (LongDouble, error) {
	raw, err := c.readRaw(16)
	if err != nil {
		return LongDouble{}, err
	}
	var v LongDouble
	copy(v[:], raw)
	if c.SwapBytes() {
		for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
			v[i], v[j] = v[j], v[i]
		}
	}
	return v, nil
}
