package cdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceRoundTrip(t *testing.T) {
	t.Run("UintSequence", func(t *testing.T) {
		buf := NewBuffer(32)
		c := New(buf, BigEndian, CorbaCdr)
		err := SerializeSequence(c, []uint32{1, 2, 3}, SerializeUint32)
		require.NoError(t, err)
		c.Reset()
		out, err := DeserializeSequence(c, 4, DeserializeUint32)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 2, 3}, out)
	})

	t.Run("EmptySequence", func(t *testing.T) {
		buf := NewBuffer(8)
		c := New(buf, BigEndian, CorbaCdr)
		require.NoError(t, SerializeSequence(c, []uint8{}, SerializeOctet))
		c.Reset()
		out, err := DeserializeSequence(c, 1, DeserializeOctet)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("RejectsNegativeCount", func(t *testing.T) {
		buf := WrapBuffer([]byte{0xFF, 0xFF, 0xFF, 0xFF})
		buf.length = 4
		c := New(buf, BigEndian, CorbaCdr)
		_, err := DeserializeSequence(c, 1, DeserializeOctet)
		require.Error(t, err)
		assert.True(t, IsBadParam(err))
	})

	t.Run("RejectsCountThatCannotFit", func(t *testing.T) {
		buf := WrapBuffer([]byte{0x00, 0x00, 0xFF, 0xFF})
		buf.length = 4
		c := New(buf, BigEndian, CorbaCdr)
		_, err := DeserializeSequence(c, 4, DeserializeUint32)
		require.Error(t, err)
		assert.True(t, IsBadParam(err))
	})

	t.Run("BoolSequenceIsOneBytePerElement", func(t *testing.T) {
		buf := NewBuffer(32)
		c := New(buf, BigEndian, CorbaCdr)
		require.NoError(t, SerializeSequence(c, []bool{true, false, true}, SerializeBool))
		assert.Equal(t, 4+3, c.Position())
	})
}

func TestMapRoundTrip(t *testing.T) {
	t.Run("StringToUint32", func(t *testing.T) {
		buf := NewBuffer(64)
		c := New(buf, BigEndian, CorbaCdr)
		m := map[string]uint32{"a": 1, "b": 2}
		require.NoError(t, SerializeMap(c, m, SerializeString, SerializeUint32))
		c.Reset()
		out, err := DeserializeMap(c, 8, DeserializeString, DeserializeUint32)
		require.NoError(t, err)
		assert.Equal(t, m, out)
	})

	t.Run("EmptyMap", func(t *testing.T) {
		buf := NewBuffer(8)
		c := New(buf, BigEndian, CorbaCdr)
		require.NoError(t, SerializeMap(c, map[uint8]uint8{}, SerializeOctet, SerializeOctet))
		c.Reset()
		out, err := DeserializeMap(c, 2, DeserializeOctet, DeserializeOctet)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestArrayRoundTrip(t *testing.T) {
	t.Run("FixedSizeUint16Array", func(t *testing.T) {
		buf := NewBuffer(16)
		c := New(buf, BigEndian, CorbaCdr)
		require.NoError(t, SerializeArray(c, []uint16{10, 20, 30}, SerializeUint16))
		c.Reset()
		out, err := DeserializeArray(c, 3, DeserializeUint16)
		require.NoError(t, err)
		assert.Equal(t, []uint16{10, 20, 30}, out)
	})
}

func TestOptionalRoundTrip(t *testing.T) {
	t.Run("Present", func(t *testing.T) {
		buf := NewBuffer(16)
		c := New(buf, BigEndian, CorbaCdr)
		require.NoError(t, SerializeOptional(c, Some(uint32(42)), SerializeUint32))
		c.Reset()
		out, err := DeserializeOptional(c, DeserializeUint32)
		require.NoError(t, err)
		require.True(t, out.IsPresent())
		v, ok := out.Value()
		require.True(t, ok)
		assert.Equal(t, uint32(42), v)
	})

	t.Run("Absent", func(t *testing.T) {
		buf := NewBuffer(16)
		c := New(buf, BigEndian, CorbaCdr)
		require.NoError(t, SerializeOptional(c, None[uint32](), SerializeUint32))
		c.Reset()
		out, err := DeserializeOptional(c, DeserializeUint32)
		require.NoError(t, err)
		assert.False(t, out.IsPresent())
	})
}
