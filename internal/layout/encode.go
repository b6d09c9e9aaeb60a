package layout

import (
	"math"
	"strconv"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
	"github.com/cursive-lang/corec/internal/semtype"
)

// EncodeConst encodes a literal into the little-endian byte pattern its
// type T occupies Integer literals are parsed and
// truncated in 128-bit precision (the same arithmetic semtype.TypeLiteralExpr
// uses for range-checking); floats are encoded as IEEE-754 bits, narrowing
// f64 to f32/f16 with round-to-nearest-even; bool/char/unit/never/null are
// fixed single-case encodings.
func EncodeConst(t semtype.Type, lit *ast.Literal, env LayoutEnv) ([]byte, error) {
	l, err := LayoutOf(t, env)
	if err != nil {
		return nil, err
	}

	switch lit.Kind {
	case ast.LitBool:
		if lit.Bool {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case ast.LitChar:
		v := uint32(lit.CharVal)
		if !corelib.IsUnicodeScalar(v) {
			return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "char literal U+%04X is not a Unicode scalar value", v)
		}
		buf := make([]byte, 4)
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		return buf, nil

	case ast.LitInt:
		clean := corelib.StripUnderscores(lit.Text)
		val, err := corelib.ParseUint128(clean, lit.Base)
		if err != nil {
			return nil, diag.Errorf(diag.LiteralOverflow, diag.Span{}, "integer literal %q overflows 128 bits", lit.Text)
		}
		return val.Bytes(int(l.Size)), nil

	case ast.LitFloat:
		f, err := parseFloatLiteral(lit.Text)
		if err != nil {
			return nil, diag.Errorf(diag.LiteralOutOfRange, diag.Span{}, "invalid float literal %q", lit.Text)
		}
		return encodeFloat(f, l.Size), nil

	case ast.LitUnit:
		return []byte{}, nil

	case ast.LitNull:
		// Raw pointer's Null encoding is the all-zero bit pattern.
		return make([]byte, l.Size), nil

	default:
		return nil, diag.Errorf(diag.InvalidNiche, diag.Span{}, "no constant encoding for literal kind %v", lit.Kind)
	}
}

// parseFloatLiteral parses digit text (no suffix; underscores are
// stripped here) in base 10 using the standard library's
// decimal parser, floating-point literal text is always base-10 digits
// with an optional `.` and exponent, unlike integer literals which carry
// a base prefix, so this is not a duplicate of ParseUint128.
func parseFloatLiteral(text string) (float64, error) {
	return strconv.ParseFloat(corelib.StripUnderscores(text), 64)
}

func encodeFloat(f float64, size int64) []byte {
	switch size {
	case 2:
		return f16Bytes(f)
	case 4:
		bits := math.Float32bits(float32(f))
		return []byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
	default:
		bits := math.Float64bits(f)
		buf := make([]byte, 8)
		for i := 0; i < 8; i++ {
			buf[i] = byte(bits >> (8 * i))
		}
		return buf
	}
}

// f16Bytes converts f to IEEE-754 binary16 with round-to-nearest-even,
// via the standard float32 bit pattern (which already rounds
// round-to-nearest-even from float64).
func f16Bytes(f float64) []byte {
	bits32 := math.Float32bits(float32(f))
	sign := uint16((bits32 >> 16) & 0x8000)
	exp32 := int32((bits32>>23)&0xff) - 127
	mant32 := bits32 & 0x7fffff

	var h uint16
	switch {
	case exp32 == 128: // inf/nan
		h = sign | 0x7c00
		if mant32 != 0 {
			h |= 0x200
		}
	case exp32 > 15: // overflow to infinity
		h = sign | 0x7c00
	case exp32 < -14: // underflow to zero (subnormals not modelled)
		h = sign
	default:
		exp16 := uint16(exp32+15) << 10
		mant16 := uint16(mant32 >> 13)
		// round-to-nearest-even on the 13 discarded mantissa bits
		roundBit := mant32 & 0x1000
		stickyBits := mant32 & 0xfff
		if roundBit != 0 && (stickyBits != 0 || mant16&1 != 0) {
			mant16++
		}
		// a carry out of mant16 rolls into the exponent field
		h = sign | (exp16 + mant16)
	}
	return []byte{byte(h), byte(h >> 8)}
}
