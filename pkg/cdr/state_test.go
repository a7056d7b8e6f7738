package cdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRollback(t *testing.T) {
	t.Run("GetStateSetStateRewindsOffsetAndOrigin", func(t *testing.T) {
		buf := NewBuffer(32)
		c := New(buf, BigEndian, CorbaCdr)
		require.NoError(t, SerializeUint32(c, 1))

		saved := c.GetState()
		require.NoError(t, SerializeUint64(c, 2))
		assert.NotEqual(t, saved.offset, c.Position())

		c.SetState(saved)
		assert.Equal(t, 4, c.Position())
	})

	t.Run("FailedWriteLeavesCursorAtPreCallPosition", func(t *testing.T) {
		buf := WrapBuffer(make([]byte, 5))
		c := New(buf, BigEndian, CorbaCdr)
		require.NoError(t, SerializeOctet(c, 1))

		before := c.Position()
		err := SerializeUint64(c, 2)
		require.Error(t, err)
		assert.Equal(t, before, c.Position())
	})

	t.Run("NestedDHeaderScopesRestoreIndependently", func(t *testing.T) {
		buf := NewBuffer(64)
		c := New(buf, BigEndian, XCdrV2)
		c.SetEncodingFlag(DelimitCdr2)
		require.NoError(t, c.SerializeEncapsulation())

		outer, err := c.BeginSerializeType(DelimitCdr2)
		require.NoError(t, err)
		require.NoError(t, SerializeUint32(c, 1))

		inner, err := c.BeginSerializeType(DelimitCdr2)
		require.NoError(t, err)
		require.NoError(t, SerializeUint32(c, 2))
		require.NoError(t, c.EndSerializeType(inner))

		require.NoError(t, SerializeUint32(c, 3))
		require.NoError(t, c.EndSerializeType(outer))

		r := New(WrapBuffer(buf.Bytes()), BigEndian, XCdrV2)
		require.NoError(t, r.ReadEncapsulation())
		var values []uint32
		err = r.DeserializeType(DelimitCdr2, func(c *Cdr, id MemberID) error {
			switch id {
			case 0:
				v, err := DeserializeUint32(c)
				values = append(values, v)
				return err
			case 1:
				return r.DeserializeType(DelimitCdr2, func(c *Cdr, id MemberID) error {
					v, err := DeserializeUint32(c)
					values = append(values, v)
					return err
				})
			case 2:
				v, err := DeserializeUint32(c)
				values = append(values, v)
				return err
			default:
				return newBadParam("unexpected member id %d", id)
			}
		})
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 2, 3}, values)
	})
}
