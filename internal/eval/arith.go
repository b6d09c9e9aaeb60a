package eval

import (
	"math/big"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// intWidth mirrors semtype's unexported bitWidth for the fixed-width
// integer kinds; duplicated here since the callers on this side of the
// package boundary (overflow/shift-amount checks) need it too.
func intWidth(k semtype.PrimKind) uint {
	switch k {
	case semtype.I8, semtype.U8:
		return 8
	case semtype.I16, semtype.U16:
		return 16
	case semtype.I32, semtype.U32:
		return 32
	case semtype.I64, semtype.U64, semtype.ISize, semtype.USize:
		return 64
	case semtype.I128, semtype.U128:
		return 128
	default:
		return 0
	}
}

// toBig widens v to a signed arbitrary-precision integer.
func toBig(v sigma.IntVal) *big.Int {
	hi := new(big.Int).SetUint64(v.Magnitude.Hi)
	hi.Lsh(hi, 64)
	n := new(big.Int).SetUint64(v.Magnitude.Lo)
	n.Add(n, hi)
	if v.Negative {
		n.Neg(n)
	}
	return n
}

// fromBigChecked narrows n back to kind's fixed width, reporting ok=false
// if n's magnitude does not fit (the caller raises Overflow).
func fromBigChecked(n *big.Int, kind semtype.PrimKind) (sigma.IntVal, bool) {
	neg := n.Sign() < 0
	mag := new(big.Int).Abs(n)
	u := bigToUint128(mag)
	if neg && !kind.IsSigned() {
		return sigma.IntVal{}, false
	}
	if !semtype.InRangeInt(u, kind) {
		return sigma.IntVal{}, false
	}
	return sigma.IntVal{Kind: kind, Magnitude: u, Negative: neg && !u.IsZero()}, true
}

// fromBigWrapped narrows n to kind's fixed width by two's-complement
// truncation, for the bitwise/shift operators that wrap rather than
// overflow-panic.
func fromBigWrapped(n *big.Int, kind semtype.PrimKind) sigma.IntVal {
	width := intWidth(kind)
	mask := new(big.Int).Lsh(big.NewInt(1), width)
	m := new(big.Int).Mod(n, mask) // Euclidean mod: always in [0, 2^width)
	if kind.IsSigned() {
		half := new(big.Int).Lsh(big.NewInt(1), width-1)
		if m.Cmp(half) >= 0 {
			m.Sub(m, mask)
		}
	}
	neg := m.Sign() < 0
	mag := new(big.Int).Abs(m)
	u := bigToUint128(mag)
	return sigma.IntVal{Kind: kind, Magnitude: u, Negative: neg && !u.IsZero()}
}

func bigToUint128(mag *big.Int) corelib.Uint128 {
	be := mag.Bytes() // big-endian, minimal length
	le := make([]byte, len(be))
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	return corelib.Uint128FromBytes(le)
}

// EvalBinaryArith evaluates an integer/float/bool BinaryExpr operator
// given already-evaluated operand values, raising the appropriate
// dynamic panic (DivZero/Overflow/Shift) where a dynamic check calls for one.
func EvalBinaryArith(s *sigma.Sigma, op ast.BinaryOp, l, r sigma.Value) (sigma.Value, sigma.Control) {
	switch lv := l.(type) {
	case sigma.IntVal:
		rv, ok := r.(sigma.IntVal)
		if !ok {
			return nil, s.Raise(sigma.Other, "binary operand type mismatch")
		}
		return evalIntOp(s, op, lv, rv)
	case sigma.FloatVal:
		rv, ok := r.(sigma.FloatVal)
		if !ok {
			return nil, s.Raise(sigma.Other, "binary operand type mismatch")
		}
		return evalFloatOp(op, lv, rv)
	case sigma.BoolVal:
		rv, ok := r.(sigma.BoolVal)
		if !ok {
			return nil, s.Raise(sigma.Other, "binary operand type mismatch")
		}
		return evalBoolOp(op, lv, rv)
	default:
		return evalEqOp(op, l, r)
	}
}

func evalIntOp(s *sigma.Sigma, op ast.BinaryOp, a, b sigma.IntVal) (sigma.Value, sigma.Control) {
	kind := a.Kind
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		cmp := toBig(a).Cmp(toBig(b))
		return sigma.BoolVal{V: compareResult(op, cmp)}, sigma.Control{}
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		x, y := toBig(a), toBig(b)
		var res *big.Int
		switch op {
		case ast.OpAdd:
			res = new(big.Int).Add(x, y)
		case ast.OpSub:
			res = new(big.Int).Sub(x, y)
		case ast.OpMul:
			res = new(big.Int).Mul(x, y)
		case ast.OpDiv:
			if y.Sign() == 0 {
				return nil, s.Raise(sigma.DivZero, "")
			}
			res = new(big.Int).Quo(x, y)
		case ast.OpMod:
			if y.Sign() == 0 {
				return nil, s.Raise(sigma.DivZero, "")
			}
			res = new(big.Int).Rem(x, y)
		}
		out, ok := fromBigChecked(res, kind)
		if !ok {
			return nil, s.Raise(sigma.Overflow, "")
		}
		return out, sigma.Control{}
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		x, y := toBig(a), toBig(b)
		var res *big.Int
		switch op {
		case ast.OpBitAnd:
			res = new(big.Int).And(x, y)
		case ast.OpBitOr:
			res = new(big.Int).Or(x, y)
		case ast.OpBitXor:
			res = new(big.Int).Xor(x, y)
		}
		return fromBigWrapped(res, kind), sigma.Control{}
	case ast.OpShl, ast.OpShr:
		width := intWidth(kind)
		amount := b.Magnitude.Lo
		if b.Negative || amount >= uint64(width) {
			return nil, s.Raise(sigma.Shift, "")
		}
		x := toBig(a)
		var res *big.Int
		if op == ast.OpShl {
			res = new(big.Int).Lsh(x, uint(amount))
		} else {
			res = new(big.Int).Rsh(x, uint(amount))
		}
		return fromBigWrapped(res, kind), sigma.Control{}
	default:
		return nil, s.Raise(sigma.Other, "unsupported integer operator")
	}
}

func compareResult(op ast.BinaryOp, cmp int) bool {
	switch op {
	case ast.OpEq:
		return cmp == 0
	case ast.OpNe:
		return cmp != 0
	case ast.OpLt:
		return cmp < 0
	case ast.OpLe:
		return cmp <= 0
	case ast.OpGt:
		return cmp > 0
	case ast.OpGe:
		return cmp >= 0
	default:
		return false
	}
}

func evalFloatOp(op ast.BinaryOp, a, b sigma.FloatVal) (sigma.Value, sigma.Control) {
	x, y := a.Float64(), b.Float64()
	switch op {
	case ast.OpAdd:
		return sigma.FloatFromFloat64(a.Kind, x+y), sigma.Control{}
	case ast.OpSub:
		return sigma.FloatFromFloat64(a.Kind, x-y), sigma.Control{}
	case ast.OpMul:
		return sigma.FloatFromFloat64(a.Kind, x*y), sigma.Control{}
	case ast.OpDiv:
		return sigma.FloatFromFloat64(a.Kind, x/y), sigma.Control{}
	case ast.OpEq:
		return sigma.BoolVal{V: x == y}, sigma.Control{}
	case ast.OpNe:
		return sigma.BoolVal{V: x != y}, sigma.Control{}
	case ast.OpLt:
		return sigma.BoolVal{V: x < y}, sigma.Control{}
	case ast.OpLe:
		return sigma.BoolVal{V: x <= y}, sigma.Control{}
	case ast.OpGt:
		return sigma.BoolVal{V: x > y}, sigma.Control{}
	case ast.OpGe:
		return sigma.BoolVal{V: x >= y}, sigma.Control{}
	default:
		return sigma.UnitVal{}, sigma.Control{}
	}
}

func evalBoolOp(op ast.BinaryOp, a, b sigma.BoolVal) (sigma.Value, sigma.Control) {
	switch op {
	case ast.OpAnd:
		return sigma.BoolVal{V: a.V && b.V}, sigma.Control{}
	case ast.OpOr:
		return sigma.BoolVal{V: a.V || b.V}, sigma.Control{}
	case ast.OpEq:
		return sigma.BoolVal{V: a.V == b.V}, sigma.Control{}
	case ast.OpNe:
		return sigma.BoolVal{V: a.V != b.V}, sigma.Control{}
	default:
		return sigma.UnitVal{}, sigma.Control{}
	}
}

// evalEqOp covers `==`/`!=` over non-numeric, non-bool value forms
// (char, string/bytes, unit, tuple, array, enum, modal, record) by
// structural comparison; every other operator is a static-checker
// error that should never reach a type-checked program.
func evalEqOp(op ast.BinaryOp, l, r sigma.Value) (sigma.Value, sigma.Control) {
	if op != ast.OpEq && op != ast.OpNe {
		return nil, sigma.Control{Kind: sigma.CtrlPanic, Panic: &sigma.PanicInfo{Reason: sigma.Other, Detail: "unsupported operator for operand type"}}
	}
	eq := valuesEqual(l, r)
	if op == ast.OpNe {
		eq = !eq
	}
	return sigma.BoolVal{V: eq}, sigma.Control{}
}

func valuesEqual(l, r sigma.Value) bool {
	switch lv := l.(type) {
	case sigma.UnitVal:
		_, ok := r.(sigma.UnitVal)
		return ok
	case sigma.BoolVal:
		rv, ok := r.(sigma.BoolVal)
		return ok && lv.V == rv.V
	case sigma.CharVal:
		rv, ok := r.(sigma.CharVal)
		return ok && lv.V == rv.V
	case sigma.IntVal:
		rv, ok := r.(sigma.IntVal)
		return ok && toBig(lv).Cmp(toBig(rv)) == 0
	case sigma.FloatVal:
		rv, ok := r.(sigma.FloatVal)
		return ok && lv.Float64() == rv.Float64()
	case sigma.StringVal:
		rv, ok := r.(sigma.StringVal)
		return ok && string(lv.Bytes) == string(rv.Bytes)
	case sigma.BytesVal:
		rv, ok := r.(sigma.BytesVal)
		return ok && string(lv.Bytes) == string(rv.Bytes)
	case sigma.TupleVal:
		rv, ok := r.(sigma.TupleVal)
		if !ok || len(lv.Elems) != len(rv.Elems) {
			return false
		}
		for i := range lv.Elems {
			if !valuesEqual(lv.Elems[i], rv.Elems[i]) {
				return false
			}
		}
		return true
	case sigma.ArrayVal:
		rv, ok := r.(sigma.ArrayVal)
		if !ok || len(lv.Elems) != len(rv.Elems) {
			return false
		}
		for i := range lv.Elems {
			if !valuesEqual(lv.Elems[i], rv.Elems[i]) {
				return false
			}
		}
		return true
	case sigma.EnumVal:
		rv, ok := r.(sigma.EnumVal)
		if !ok || lv.Variant != rv.Variant {
			return false
		}
		if lv.Payload == nil || rv.Payload == nil {
			return lv.Payload == nil && rv.Payload == nil
		}
		return valuesEqual(lv.Payload, rv.Payload)
	case sigma.ModalVal:
		rv, ok := r.(sigma.ModalVal)
		return ok && lv.State == rv.State && valuesEqual(lv.Payload, rv.Payload)
	case sigma.RecordVal:
		rv, ok := r.(sigma.RecordVal)
		if !ok || len(lv.Fields) != len(rv.Fields) {
			return false
		}
		for k, v := range lv.Fields {
			other, ok := rv.Fields[k]
			if !ok || !valuesEqual(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// EvalUnaryArith evaluates a UnaryExpr operator against an already-evaluated
// operand.
func EvalUnaryArith(s *sigma.Sigma, op ast.UnaryOp, v sigma.Value) (sigma.Value, sigma.Control) {
	switch op {
	case ast.OpNot:
		b, ok := v.(sigma.BoolVal)
		if !ok {
			return nil, s.Raise(sigma.Other, "`!` applied to non-bool")
		}
		return sigma.BoolVal{V: !b.V}, sigma.Control{}
	case ast.OpNeg:
		switch n := v.(type) {
		case sigma.IntVal:
			out, ok := fromBigChecked(new(big.Int).Neg(toBig(n)), n.Kind)
			if !ok {
				return nil, s.Raise(sigma.Overflow, "")
			}
			return out, sigma.Control{}
		case sigma.FloatVal:
			return sigma.FloatFromFloat64(n.Kind, -n.Float64()), sigma.Control{}
		default:
			return nil, s.Raise(sigma.Other, "`-` applied to non-numeric value")
		}
	case ast.OpBitNot:
		n, ok := v.(sigma.IntVal)
		if !ok {
			return nil, s.Raise(sigma.Other, "`~` applied to non-integer value")
		}
		return fromBigWrapped(new(big.Int).Not(toBig(n)), n.Kind), sigma.Control{}
	default:
		return nil, s.Raise(sigma.Other, "unsupported unary operator")
	}
}
