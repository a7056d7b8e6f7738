package cdr

// Optional is a present-or-absent value, the Go stand-in for the source's
// IDL @optional member representation.
type Optional[T any] struct {
	present bool
	value   T
}

// Some constructs a present Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{present: true, value: v} }

// None constructs an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// IsPresent reports whether the Optional holds a value.
func (o Optional[T]) IsPresent() bool { return o.present }

// Value returns the held value and true, or the zero value and false if
// absent.
func (o Optional[T]) Value() (T, bool) { return o.value, o.present }

// SerializeOptional writes o under the PLAIN_CDR2/DELIMIT_CDR2 convention:
// an explicit boolean presence flag followed by the value when present.
// Under PL_CDR/PL_CDR2, presence is instead implied by the member's
// absence from the stream entirely — that representation is handled by
// BeginSerializeMember/EndSerializeType in member.go, not here.
func SerializeOptional[T any](c *Cdr, o Optional[T], encode ElementEncoder[T]) error {
	saved := c.snapshot()
	if err := SerializeBool(c, o.present); err != nil {
		c.restore(saved)
		return err
	}
	if o.present {
		if err := encode(c, o.value); err != nil {
			c.restore(saved)
			return err
		}
	}
	return nil
}

// DeserializeOptional reads the PLAIN_CDR2/DELIMIT_CDR2 explicit-flag
// representation of an Optional.
func DeserializeOptional[T any](c *Cdr, decode ElementDecoder[T]) (Optional[T], error) {
	saved := c.snapshot()
	present, err := DeserializeBool(c)
	if err != nil {
		c.restore(saved)
		return Optional[T]{}, err
	}
	if !present {
		return None[T](), nil
	}
	v, err := decode(c)
	if err != nil {
		c.restore(saved)
		return Optional[T]{}, err
	}
	return Some(v), nil
}
