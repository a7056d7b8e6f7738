package cdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeCalculatorMatchesEncodedLength(t *testing.T) {
	t.Run("PrimitivesWithAlignment", func(t *testing.T) {
		buf := NewBuffer(32)
		c := New(buf, BigEndian, CorbaCdr)
		require.NoError(t, c.SerializeEncapsulation())
		require.NoError(t, SerializeOctet(c, 1))
		require.NoError(t, SerializeUint64(c, 2))

		sc := NewSizeCalculator(CorbaCdr)
		sc.SizeOctet()
		sc.SizeUint64()
		assert.Equal(t, c.Position()-4, sc.Size(), "size calc excludes the encapsulation prefix, same as body-only accounting")
	})

	t.Run("String", func(t *testing.T) {
		sc := NewSizeCalculator(CorbaCdr)
		sc.SizeString("hello")
		assert.Equal(t, 4+6, sc.Size())
	})

	t.Run("WideString", func(t *testing.T) {
		sc := NewSizeCalculator(CorbaCdr)
		sc.SizeWideString("hi")
		assert.Equal(t, 4+4+4, sc.Size())
	})

	t.Run("ShortHeaderMemberSize", func(t *testing.T) {
		sc := NewSizeCalculator(XCdrV1)
		sc.SetEncodingFlag(PlCdr)
		st := sc.BeginMember(5, HeaderSelectionDefault)
		sc.SizeUint32()
		sc.EndMember(st)
		// 4-byte short header + 4-byte body, matching the short-header
		// encode test's member region exactly.
		assert.Equal(t, 8, sc.Size())
	})

	t.Run("LongHeaderPromotionAddsEightBytes", func(t *testing.T) {
		sc := NewSizeCalculator(XCdrV1)
		sc.SetEncodingFlag(PlCdr)
		st := sc.BeginMember(1, AutoWithShortHeaderByDefault)
		for i := 0; i < 0x10000; i++ {
			sc.SizeOctet()
		}
		sc.EndMember(st)
		assert.Equal(t, 12+0x10000, sc.Size())
	})

	t.Run("EMHEADERDirectFormSize", func(t *testing.T) {
		sc := NewSizeCalculator(XCdrV2)
		sc.SetEncodingFlag(PlCdr2)
		st := sc.BeginMember(3, HeaderSelectionDefault)
		sc.SizeOctet()
		sc.EndMember(st)
		assert.Equal(t, 4+1, sc.Size())
	})

	t.Run("EMHEADERPromotionAddsFourBytes", func(t *testing.T) {
		sc := NewSizeCalculator(XCdrV2)
		sc.SetEncodingFlag(PlCdr2)
		st := sc.BeginMember(9, AutoWithShortHeaderByDefault)
		sc.SizeUint32()
		sc.EndMember(st)
		assert.Equal(t, 4+4+4, sc.Size(), "promoted EMHEADER: 4-byte header + 4-byte NEXTINT + 4-byte body")
	})

	t.Run("DelimitedTypeAddsFourByteDHeader", func(t *testing.T) {
		sc := NewSizeCalculator(XCdrV2)
		st := sc.BeginType(DelimitCdr2)
		sc.SizeUint32()
		sc.SizeString("hi")
		sc.EndType(st)
		assert.Equal(t, 4+4+4+3, sc.Size())
	})
}
