package cdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferGrowth(t *testing.T) {
	t.Run("OwnedBufferDoublesFromMinGrowth", func(t *testing.T) {
		b := NewBuffer(0)
		require.NoError(t, b.writeAt(0, []byte{1, 2, 3}))
		assert.Equal(t, minGrowth, b.Cap())
	})

	t.Run("BorrowedBufferNeverGrows", func(t *testing.T) {
		b := WrapBuffer(make([]byte, 2))
		err := b.writeAt(0, []byte{1, 2, 3})
		require.Error(t, err)
		assert.True(t, IsNotEnoughMemory(err))
	})

	t.Run("ReserveFailsOnceContentWritten", func(t *testing.T) {
		b := NewBuffer(4)
		require.NoError(t, b.writeAt(0, []byte{1}))
		err := b.Reserve(64)
		require.Error(t, err)
	})
}

func TestBufferShiftRight(t *testing.T) {
	t.Run("OpensZeroFilledGapAndPreservesTail", func(t *testing.T) {
		b := NewBuffer(8)
		require.NoError(t, b.writeAt(0, []byte{1, 2, 3, 4}))
		require.NoError(t, b.shiftRight(2, 3))
		assert.Equal(t, []byte{1, 2, 0, 0, 0, 3, 4}, b.Bytes())
	})

	t.Run("NoOpForZeroOrNegativeShift", func(t *testing.T) {
		b := NewBuffer(8)
		require.NoError(t, b.writeAt(0, []byte{1, 2}))
		require.NoError(t, b.shiftRight(1, 0))
		assert.Equal(t, []byte{1, 2}, b.Bytes())
	})
}

func TestNewBufferWithSize(t *testing.T) {
	t.Run("ParsesHumanReadableSize", func(t *testing.T) {
		b, err := NewBufferWithSize("1Ki")
		require.NoError(t, err)
		assert.Equal(t, 1024, b.Cap())
	})

	t.Run("RejectsInvalidSize", func(t *testing.T) {
		_, err := NewBufferWithSize("not-a-size")
		require.Error(t, err)
		assert.True(t, IsBadParam(err))
	})
}
