package cdr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	t.Run("NotEnoughMemory", func(t *testing.T) {
		err := newNotEnoughMemory("need %d more bytes", 4)
		assert.True(t, IsNotEnoughMemory(err))
		assert.False(t, IsBadParam(err))
		assert.Equal(t, "NotEnoughMemory: need 4 more bytes", err.Error())
	})

	t.Run("WrappedErrorStillClassifies", func(t *testing.T) {
		err := fmt.Errorf("while decoding member: %w", newBadParam("bad octet"))
		assert.True(t, IsBadParam(err))
	})

	t.Run("UnknownCodeStringsAsUnknown", func(t *testing.T) {
		assert.Equal(t, "Unknown(99)", ErrorCode(99).String())
	})
}
