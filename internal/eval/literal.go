package eval

import (
	"strconv"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// evalLiteral lowers a literal AST node to its runtime value. Suffixes
// map to a PrimKind through this file's own switches, with the defaults
// semtype.TypeLiteralExpr also applies (i32 for an unsuffixed integer,
// f64 for an unsuffixed float, f32 for a bare "f").
func evalLiteral(lit *ast.Literal) (sigma.Value, sigma.Control) {
	switch lit.Kind {
	case ast.LitUnit:
		return sigma.UnitVal{}, sigma.Control{}
	case ast.LitBool:
		return sigma.BoolVal{V: lit.Bool}, sigma.Control{}
	case ast.LitChar:
		return sigma.CharVal{V: lit.CharVal}, sigma.Control{}
	case ast.LitString:
		return sigma.StringVal{State: semtype.StateView, Bytes: []byte(lit.Text)}, sigma.Control{}
	case ast.LitNull:
		return sigma.PtrVal{State: semtype.PtrNull}, sigma.Control{}
	case ast.LitInt:
		return evalIntLiteral(lit)
	case ast.LitFloat:
		return evalFloatLiteral(lit)
	default:
		return sigma.UnitVal{}, sigma.Control{}
	}
}

func evalIntLiteral(lit *ast.Literal) (sigma.Value, sigma.Control) {
	kind := intLiteralKind(lit.Suffix)
	clean := corelib.StripUnderscores(lit.Text)
	mag, err := corelib.ParseUint128(clean, lit.Base)
	if err != nil {
		return sigma.UnitVal{}, sigma.Control{Kind: sigma.CtrlPanic, Panic: &sigma.PanicInfo{Reason: sigma.Other, Detail: err.Error()}}
	}
	return sigma.IntVal{Kind: kind, Magnitude: mag}, sigma.Control{}
}

func intLiteralKind(suffix string) semtype.PrimKind {
	switch suffix {
	case "i8":
		return semtype.I8
	case "u8":
		return semtype.U8
	case "i16":
		return semtype.I16
	case "u16":
		return semtype.U16
	case "i32":
		return semtype.I32
	case "u32":
		return semtype.U32
	case "i64":
		return semtype.I64
	case "u64":
		return semtype.U64
	case "isize":
		return semtype.ISize
	case "usize":
		return semtype.USize
	case "i128":
		return semtype.I128
	case "u128":
		return semtype.U128
	default:
		return semtype.I32
	}
}

func evalFloatLiteral(lit *ast.Literal) (sigma.Value, sigma.Control) {
	kind := semtype.F64
	switch lit.Suffix {
	case "f16":
		kind = semtype.F16
	case "f32", "f":
		kind = semtype.F32
	}
	clean := corelib.StripUnderscores(lit.Text)
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return sigma.UnitVal{}, sigma.Control{Kind: sigma.CtrlPanic, Panic: &sigma.PanicInfo{Reason: sigma.Other, Detail: err.Error()}}
	}
	return sigma.FloatFromFloat64(kind, f), sigma.Control{}
}
