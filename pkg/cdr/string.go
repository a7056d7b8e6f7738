package cdr

import "unicode/utf8"

// SerializeString writes s as a narrow CDR string: a uint32 length
// (including the NUL terminator) followed by the payload and a single 0
// octet. An empty string encodes as length=1, payload=\0.
func SerializeString(c *Cdr, s string) error {
	saved := c.snapshot()
	data := []byte(s)
	length := uint32(len(data)) + 1
	if err := SerializeUint32(c, length); err != nil {
		c.restore(saved)
		return err
	}
	if err := c.writeBytesRaw(data); err != nil {
		c.restore(saved)
		return err
	}
	if err := c.writeBytesRaw([]byte{0}); err != nil {
		c.restore(saved)
		return err
	}
	return nil
}

// DeserializeString reads a narrow CDR string. A declared length of 0 is
// tolerated (observed protocol quirk, §4.3) and decodes to the empty
// string with no payload or terminator consumed.
func DeserializeString(c *Cdr) (string, error) {
	saved := c.snapshot()
	length, err := DeserializeUint32(c)
	if err != nil {
		c.restore(saved)
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	payloadLen := int(length) - 1
	if payloadLen < 0 {
		c.restore(saved)
		return "", newBadParam("cdr: narrow string length %d underflows the NUL terminator", length)
	}
	data, err := c.readBytesRaw(payloadLen)
	if err != nil {
		c.restore(saved)
		return "", err
	}
	s := string(data)
	term, err := c.readBytesRaw(1)
	if err != nil {
		c.restore(saved)
		return "", err
	}
	if term[0] != 0 {
		c.restore(saved)
		return "", newBadParam("cdr: narrow string missing NUL terminator")
	}
	return s, nil
}

// SerializeBoundedString writes s as a narrow string, rejecting values
// longer than maxLen runes-as-bytes of payload (a fixed-capacity string).
func SerializeBoundedString(c *Cdr, s string, maxLen int) error {
	if len(s) > maxLen {
		return newBadParam("cdr: string of %d bytes exceeds fixed capacity %d", len(s), maxLen)
	}
	return SerializeString(c, s)
}

// DeserializeBoundedString reads a narrow string and rejects one whose
// payload exceeds maxLen.
func DeserializeBoundedString(c *Cdr, maxLen int) (string, error) {
	saved := c.snapshot()
	s, err := DeserializeString(c)
	if err != nil {
		return "", err
	}
	if len(s) > maxLen {
		c.restore(saved)
		return "", newBadParam("cdr: decoded string of %d bytes exceeds fixed capacity %d", len(s), maxLen)
	}
	return s, nil
}

// SerializeWideString writes s as a wide CDR string: a uint32 code-unit
// count followed by that many 32-bit Unicode code points, with no
// terminator.
func SerializeWideString(c *Cdr, s string) error {
	saved := c.snapshot()
	runes := []rune(s)
	if err := SerializeUint32(c, uint32(len(runes))); err != nil {
		c.restore(saved)
		return err
	}
	for _, r := range runes {
		if err := SerializeWChar(c, r); err != nil {
			c.restore(saved)
			return err
		}
	}
	return nil
}

// DeserializeWideString reads a wide CDR string, rejecting any code unit
// that is not a valid Unicode scalar value (e.g. a lone UTF-16 surrogate
// half smuggled into a 32-bit slot) as BadParam.
func DeserializeWideString(c *Cdr) (string, error) {
	saved := c.snapshot()
	count, err := DeserializeUint32(c)
	if err != nil {
		c.restore(saved)
		return "", err
	}
	runes := make([]rune, 0, count)
	for i := uint32(0); i < count; i++ {
		r, err := DeserializeWChar(c)
		if err != nil {
			c.restore(saved)
			return "", err
		}
		if !utf8.ValidRune(r) {
			c.restore(saved)
			return "", newBadParam("cdr: wide string code unit 0x%x is not a valid Unicode scalar value", r)
		}
		runes = append(runes, r)
	}
	return string(runes), nil
}
