package semtype

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
)

var intSuffixKind = map[string]PrimKind{
	"i8": I8, "u8": U8, "i16": I16, "u16": U16, "i32": I32, "u32": U32,
	"i64": I64, "u64": U64, "isize": ISize, "usize": USize,
	"i128": I128, "u128": U128,
}

var floatSuffixKind = map[string]PrimKind{
	"f16": F16, "f32": F32, "f64": F64,
}

// TypeLiteralExpr types a literal expression. Integer
// literals parse in 128-bit arithmetic via corelib.ParseUint128; a
// declared suffix fixes the type (checked by InRangeInt), otherwise the
// default is i32. An unsuffixed float literal types as f64 and a bare "f"
// suffix as f32; the f16/f32/f64 suffixes name their type directly.
func TypeLiteralExpr(lit *ast.Literal) (Type, error) {
	switch lit.Kind {
	case ast.LitInt:
		return typeIntLiteral(lit)
	case ast.LitFloat:
		return typeFloatLiteral(lit)
	case ast.LitBool:
		return &Prim{Kind: Bool}, nil
	case ast.LitChar:
		return &Prim{Kind: Char}, nil
	case ast.LitString:
		return &StringTy{State: StateView}, nil
	case ast.LitNull:
		// Legal only where a raw pointer is expected; the caller checks
		// that context and rejects NullLiteralInferErr otherwise.
		return &RawPtr{Elem: &Prim{Kind: Never}, Qual: RawImm}, nil
	case ast.LitUnit:
		return &Prim{Kind: Unit}, nil
	default:
		return nil, diag.Errorf(diag.LiteralOutOfRange, diag.Span{}, "unknown literal kind")
	}
}

func typeIntLiteral(lit *ast.Literal) (Type, error) {
	clean := corelib.StripUnderscores(lit.Text)
	val, err := corelib.ParseUint128(clean, lit.Base)
	if err != nil {
		return nil, diag.Errorf(diag.LiteralOverflow, diag.Span{}, "integer literal %q overflows 128 bits", lit.Text)
	}

	if lit.Suffix == "" {
		if !InRangeInt(val, I32) {
			return nil, diag.Errorf(diag.LiteralOutOfRange, diag.Span{}, "literal %q does not fit in the default type i32", lit.Text)
		}
		return &Prim{Kind: I32}, nil
	}

	kind, ok := intSuffixKind[lit.Suffix]
	if !ok {
		return nil, diag.Errorf(diag.LiteralOutOfRange, diag.Span{}, "unknown integer suffix %q", lit.Suffix)
	}
	if !InRangeInt(val, kind) {
		return nil, diag.Errorf(diag.LiteralOutOfRange, diag.Span{}, "literal %q does not fit in %s", lit.Text, kind)
	}
	return &Prim{Kind: kind}, nil
}

func typeFloatLiteral(lit *ast.Literal) (Type, error) {
	if lit.Suffix == "" {
		return &Prim{Kind: F64}, nil
	}
	if lit.Suffix == "f" {
		return &Prim{Kind: F32}, nil
	}
	kind, ok := floatSuffixKind[lit.Suffix]
	if !ok {
		return nil, diag.Errorf(diag.FloatSuffixMismatch, diag.Span{}, "unknown float suffix %q", lit.Suffix)
	}
	return &Prim{Kind: kind}, nil
}

// bitWidth reports the bit width of a fixed-width integer PrimKind.
func bitWidth(k PrimKind) uint {
	switch k {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64, ISize, USize:
		return 64
	case I128, U128:
		return 128
	default:
		return 0
	}
}

// InRangeInt reports whether val (interpreted as the unsigned 128-bit
// pattern produced by parsing) fits within kind's declared range.
// Unsigned kinds check val.FitsBits(width). Signed kinds additionally
// allow the single extra magnitude of the most negative value, since
// literals themselves are always non-negative (negation is a separate
// unary operator evaluated after typing).
func InRangeInt(val corelib.Uint128, kind PrimKind) bool {
	width := bitWidth(kind)
	if width == 0 {
		return false
	}
	if !kind.IsSigned() {
		return val.FitsBits(width)
	}
	// A bare (pre-negation) signed literal must fit in width-1 bits,
	// i.e. not exceed 2^(width-1); it is allowed to equal 2^(width-1)
	// only because `-2147483648` is lexed as unary-minus applied to the
	// literal 2147483648, which must itself type as fitting i32's
	// positive range extended by one (the MIN-magnitude case).
	return val.FitsBits(width - 1) || isExactSignedMin(val, width)
}

func isExactSignedMin(val corelib.Uint128, width uint) bool {
	min := corelib.FromUint64(1).Lsh(width - 1)
	return val.Cmp(min) == 0
}
