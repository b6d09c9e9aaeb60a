package sigma

import (
	"math"

	"github.com/cursive-lang/corec/internal/semtype"
)

// Float64 decodes v's raw bit pattern to a float64 per its Kind.
func (v FloatVal) Float64() float64 {
	switch v.Kind {
	case semtype.F32:
		return float64(math.Float32frombits(uint32(v.Bits)))
	case semtype.F16:
		return f16ToFloat64(uint16(v.Bits))
	default:
		return math.Float64frombits(v.Bits)
	}
}

// FloatFromFloat64 encodes f as kind's raw IEEE-754 bit pattern, the
// inverse of Float64, used by arithmetic evaluation to produce a result
// FloatVal of the same kind as its operands.
func FloatFromFloat64(kind semtype.PrimKind, f float64) FloatVal {
	switch kind {
	case semtype.F32:
		return FloatVal{Kind: kind, Bits: uint64(math.Float32bits(float32(f)))}
	case semtype.F16:
		return FloatVal{Kind: kind, Bits: uint64(float64ToF16(f))}
	default:
		return FloatVal{Kind: kind, Bits: math.Float64bits(f)}
	}
}

// float64ToF16 encodes f as an IEEE-754 binary16 bit pattern by rounding
// through its binary32 representation, the inverse of f16ToFloat64.
func float64ToF16(f float64) uint16 {
	bits32 := math.Float32bits(float32(f))
	sign := uint16((bits32 >> 16) & 0x8000)
	exp := int32((bits32>>23)&0xff) - 127 + 15
	mant := bits32 & 0x7fffff
	switch {
	case exp >= 0x1f:
		return sign | 0x7c00 | uint16(mant>>13|boolToU32(mant != 0))
	case exp <= 0:
		return sign
	default:
		return sign | uint16(exp)<<10 | uint16(mant>>13)
	}
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// f16ToFloat64 decodes an IEEE-754 binary16 bit pattern, widening through
// float32 (every binary16 value is exactly representable in binary32).
func f16ToFloat64(h uint16) float64 {
	sign := uint32(h&0x8000) << 16
	exp := (h >> 10) & 0x1f
	mant := uint32(h & 0x3ff)

	var bits32 uint32
	switch {
	case exp == 0 && mant == 0:
		bits32 = sign
	case exp == 0x1f:
		bits32 = sign | 0x7f800000 | (mant << 13)
	case exp == 0:
		// subnormal binary16 -> normalised binary32
		e := -1
		m := mant
		for m&0x400 == 0 {
			m <<= 1
			e--
		}
		m &= 0x3ff
		bits32 = sign | uint32(int32(127-15+1+e))<<23 | (m << 13)
	default:
		bits32 = sign | (uint32(exp)-15+127)<<23 | (mant << 13)
	}
	return float64(math.Float32frombits(bits32))
}
