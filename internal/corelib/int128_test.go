package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint128MaxValue(t *testing.T) {
	// u128::MAX boundary behaviour.
	v, err := ParseUint128("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF", 16)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), v.Hi)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), v.Lo)
}

func TestParseUint128OneMoreDigitOverflows(t *testing.T) {
	_, err := ParseUint128("1FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF", 16)
	assert.ErrorIs(t, err, ErrOverflow128)
}

func TestParseUint128Base10(t *testing.T) {
	v, err := ParseUint128("340282366920938463463374607431768211455", 10)
	require.NoError(t, err)
	assert.Equal(t, maxUint128Test(), v)
}

func TestParseUint128InvalidDigit(t *testing.T) {
	_, err := ParseUint128("12g", 16)
	assert.Error(t, err)
}

func TestStripUnderscores(t *testing.T) {
	assert.Equal(t, "1000000", StripUnderscores("1_000_000"))
	assert.Equal(t, "ff", StripUnderscores("ff"))
}

func TestUint128MulFullPrecision(t *testing.T) {
	a := Uint128{Hi: 1, Lo: 0} // 2^64
	b := Uint128{Hi: 1, Lo: 0} // 2^64
	got := a.Mul(b)
	// (2^64)^2 mod 2^128 == 0
	assert.Equal(t, Uint128{}, got)

	c := Uint128{Hi: 0, Lo: 3}
	d := Uint128{Hi: 0, Lo: 5}
	assert.Equal(t, Uint128{Lo: 15}, c.Mul(d))

	// Cross term: (2^64 + 2) * 3 = 3*2^64 + 6
	e := Uint128{Hi: 1, Lo: 2}
	f := Uint128{Lo: 3}
	assert.Equal(t, Uint128{Hi: 3, Lo: 6}, e.Mul(f))
}

func TestUint128ShiftRoundTrip(t *testing.T) {
	v := Uint128{Hi: 0x1, Lo: 0x8000000000000000}
	shifted := v.Lsh(1)
	assert.Equal(t, Uint128{Hi: 0x3, Lo: 0}, shifted)
	back := shifted.Rsh(1)
	assert.Equal(t, v, back)
}

func TestUint128BytesRoundTrip(t *testing.T) {
	v := Uint128{Hi: 0x0102030405060708, Lo: 0x1112131415161718}
	b := v.Bytes(16)
	got := Uint128FromBytes(b)
	assert.Equal(t, v, got)
}

func TestUint128FitsBits(t *testing.T) {
	v := FromUint64(255)
	assert.True(t, v.FitsBits(8))
	assert.False(t, v.FitsBits(7))
}

func maxUint128Test() Uint128 {
	return Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}
}
