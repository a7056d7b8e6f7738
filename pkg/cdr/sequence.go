package cdr

// SerializeSequence writes a variable-length sequence as an int32 element
// count followed by each element in order.
func SerializeSequence[T any](c *Cdr, elems []T, encode ElementEncoder[T]) error {
	saved := c.snapshot()
	if err := SerializeInt32(c, int32(len(elems))); err != nil {
		c.restore(saved)
		return err
	}
	for _, v := range elems {
		if err := encode(c, v); err != nil {
			c.restore(saved)
			return err
		}
	}
	return nil
}

// DeserializeSequence reads an int32 count followed by that many elements.
// minElementBytes is the smallest possible wire size of one element (e.g. 1
// for octet, 4 for a uint32-length-prefixed empty string); the declared
// count is rejected up front as BadParam if it could not possibly fit in
// the bytes remaining, before any per-element allocation is attempted.
func DeserializeSequence[T any](c *Cdr, minElementBytes int, decode ElementDecoder[T]) ([]T, error) {
	saved := c.snapshot()
	count, err := DeserializeInt32(c)
	if err != nil {
		c.restore(saved)
		return nil, err
	}
	if count < 0 {
		c.restore(saved)
		return nil, newBadParam("cdr: sequence length %d is negative", count)
	}
	remaining := c.buf.Len() - c.offset
	if minElementBytes > 0 && int64(count)*int64(minElementBytes) > int64(remaining) {
		c.restore(saved)
		return nil, newBadParam("cdr: sequence of %d elements cannot fit in %d remaining bytes", count, remaining)
	}
	out := make([]T, count)
	for i := int32(0); i < count; i++ {
		v, err := decode(c)
		if err != nil {
			c.restore(saved)
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
