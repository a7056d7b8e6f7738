package cdr

// SerializeMap writes a map as an int32 pair count followed by each
// key/value pair in an unspecified order — Go's native map[K]V already has
// no stable iteration order, so it is a faithful in-memory representation
// of the wire format's own unordered pair sequence.
func SerializeMap[K comparable, V any](c *Cdr, m map[K]V, encodeKey ElementEncoder[K], encodeValue ElementEncoder[V]) error {
	saved := c.snapshot()
	if err := SerializeInt32(c, int32(len(m))); err != nil {
		c.restore(saved)
		return err
	}
	for k, v := range m {
		if err := encodeKey(c, k); err != nil {
			c.restore(saved)
			return err
		}
		if err := encodeValue(c, v); err != nil {
			c.restore(saved)
			return err
		}
	}
	return nil
}

// DeserializeMap reads an int32 pair count followed by that many key/value
// pairs. minPairBytes bounds the declared count against the bytes
// remaining, the same pre-validation DeserializeSequence performs.
func DeserializeMap[K comparable, V any](c *Cdr, minPairBytes int, decodeKey ElementDecoder[K], decodeValue ElementDecoder[V]) (map[K]V, error) {
	saved := c.snapshot()
	count, err := DeserializeInt32(c)
	if err != nil {
		c.restore(saved)
		return nil, err
	}
	if count < 0 {
		c.restore(saved)
		return nil, newBadParam("cdr: map pair count %d is negative", count)
	}
	remaining := c.buf.Len() - c.offset
	if minPairBytes > 0 && int64(count)*int64(minPairBytes) > int64(remaining) {
		c.restore(saved)
		return nil, newBadParam("cdr: map of %d pairs cannot fit in %d remaining bytes", count, remaining)
	}
	out := make(map[K]V, count)
	for i := int32(0); i < count; i++ {
		k, err := decodeKey(c)
		if err != nil {
			c.restore(saved)
			return nil, err
		}
		v, err := decodeValue(c)
		if err != nil {
			c.restore(saved)
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
