package cdr

// ElementEncoder writes one array/sequence element.
type ElementEncoder[T any] func(c *Cdr, v T) error

// ElementDecoder reads one array/sequence element.
type ElementDecoder[T any] func(c *Cdr) (T, error)

// SerializeArray writes a fixed-size array of exactly len(elems) elements,
// calling encode for each in order. Unlike the source's block-copy
// optimization for arrays of primitive octet-width types, this package
// always dispatches element-by-element: a documented simplification, since
// encode already collapses to a single writeRaw call per element and the
// Go compiler inlines small generic closures well enough that the
// specialization isn't worth the added surface.
func SerializeArray[T any](c *Cdr, elems []T, encode ElementEncoder[T]) error {
	saved := c.snapshot()
	for _, v := range elems {
		if err := encode(c, v); err != nil {
			c.restore(saved)
			return err
		}
	}
	return nil
}

// DeserializeArray reads exactly n elements into a freshly allocated slice.
func DeserializeArray[T any](c *Cdr, n int, decode ElementDecoder[T]) ([]T, error) {
	saved := c.snapshot()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		v, err := decode(c)
		if err != nil {
			c.restore(saved)
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
