// Package match implements value-level MatchPattern: given
// a pattern and a runtime value, either produce a BindEnv (the bound
// names in their deterministic PatNames order) or report no match. This
// is the runtime counterpart of internal/pattern's TypeMatchPattern, that package answers "does this pattern typecheck against this
// static type"; this one answers "does this pattern match this value".
//
// Grounded on internal/pattern/type_match.go for the per-pattern-kind
// dispatch shape, replayed one level down against sigma.Value instead of
// semtype.Type. Literal-pattern comparison is grounded on
// internal/layout/encode.go (EncodeConst) and internal/sigma/valuebits.go
// (ValueBits): both reduce to canonical bytes, so a literal pattern
// matches a value iff their byte encodings agree, this sidesteps
// re-implementing int/float decode-and-compare logic a second time.
package match

import (
	"bytes"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
	"github.com/cursive-lang/corec/internal/layout"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// Ctx threads the lowering environment TypedPattern needs to resolve its
// syntactic type annotation against a union member, plus the layout
// environment literal-pattern comparison needs to encode constants.
type Ctx struct {
	TypeEnv  semtype.TypeEnv
	ConstLen semtype.ConstLenEval
	Layout   layout.LayoutEnv
}

// MatchPattern matches p against v, returning (env, true, nil) on
// success or (nil, false, nil) when p simply does not match v. A
// non-nil error indicates v's shape disagrees with what TypeMatchPattern
// already proved about p, an evaluator bug, not a user-facing mismatch.
func MatchPattern(ctx *Ctx, p ast.Pattern, v sigma.Value) (*BindEnv, bool, error) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return newBindEnv(), true, nil

	case *ast.IdentPattern:
		env := newBindEnv()
		env.bind(pat.Name, v)
		return env, true, nil

	case *ast.LitPattern:
		return matchLit(ctx, pat, v)

	case *ast.TypedPattern:
		return matchTyped(ctx, pat, v)

	case *ast.TuplePattern:
		return matchTuple(ctx, pat, v)

	case *ast.RecordPattern:
		return matchRecord(ctx, pat, v)

	case *ast.EnumPattern:
		return matchEnum(ctx, pat, v)

	case *ast.ModalPattern:
		return matchModal(ctx, pat, v)

	case *ast.RangePattern:
		return matchRange(pat, v)

	default:
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "unrecognised pattern form %T", p)
	}
}

func matchLit(ctx *Ctx, pat *ast.LitPattern, v sigma.Value) (*BindEnv, bool, error) {
	lit, ok := pat.Lit.(*ast.Literal)
	if !ok {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "literal pattern does not wrap a literal expression")
	}
	ty := typeOfValue(v)
	if ty == nil {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "literal pattern matched against non-primitive value %T", v)
	}
	want, err := layout.EncodeConst(ty, lit, ctx.Layout)
	if err != nil {
		return nil, false, err
	}
	got, err := sigma.ValueBits(ty, v, ctx.Layout)
	if err != nil {
		return nil, false, err
	}
	if !bytes.Equal(want, got) {
		return nil, false, nil
	}
	return newBindEnv(), true, nil
}

func matchTyped(ctx *Ctx, pat *ast.TypedPattern, v sigma.Value) (*BindEnv, bool, error) {
	uv, ok := v.(sigma.UnionVal)
	if !ok {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "typed pattern matched against non-union value %T", v)
	}
	bound, err := semtype.LowerType(pat.Type, ctx.TypeEnv, ctx.ConstLen)
	if err != nil {
		return nil, false, err
	}
	if !semtype.TypeEquiv(bound, uv.Member) {
		return nil, false, nil
	}
	env := newBindEnv()
	env.bind(pat.Name, uv.Value)
	return env, true, nil
}

func matchTuple(ctx *Ctx, pat *ast.TuplePattern, v sigma.Value) (*BindEnv, bool, error) {
	if len(pat.Elems) == 0 {
		if _, ok := v.(sigma.UnitVal); ok {
			return newBindEnv(), true, nil
		}
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "empty tuple pattern matched against non-unit value %T", v)
	}
	tup, ok := v.(sigma.TupleVal)
	if !ok || len(tup.Elems) != len(pat.Elems) {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "tuple pattern arity disagrees with value shape")
	}
	env := newBindEnv()
	for i, sub := range pat.Elems {
		sEnv, ok, err := MatchPattern(ctx, sub, tup.Elems[i])
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		env.merge(sEnv)
	}
	return env, true, nil
}

func matchRecord(ctx *Ctx, pat *ast.RecordPattern, v sigma.Value) (*BindEnv, bool, error) {
	rec, ok := v.(sigma.RecordVal)
	if !ok {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "record pattern matched against non-record value %T", v)
	}
	return matchFields(ctx, pat.Fields, rec.Fields)
}

func matchEnum(ctx *Ctx, pat *ast.EnumPattern, v sigma.Value) (*BindEnv, bool, error) {
	ev, ok := v.(sigma.EnumVal)
	if !ok {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "enum pattern matched against non-enum value %T", v)
	}
	if ev.Variant != pat.Variant {
		return nil, false, nil
	}
	switch {
	case pat.Tuple != nil:
		return matchTuplePayload(ctx, pat.Tuple, ev.Payload)
	case pat.Fields != nil:
		rec, ok := ev.Payload.(sigma.RecordVal)
		if !ok {
			return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "variant %q payload is not record-shaped", pat.Variant)
		}
		return matchFields(ctx, pat.Fields, rec.Fields)
	default:
		if ev.Payload != nil {
			return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "variant %q carries a payload but pattern names none", pat.Variant)
		}
		return newBindEnv(), true, nil
	}
}

func matchModal(ctx *Ctx, pat *ast.ModalPattern, v sigma.Value) (*BindEnv, bool, error) {
	mv, ok := v.(sigma.ModalVal)
	if !ok {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "modal pattern matched against non-modal value %T", v)
	}
	if mv.State != pat.State {
		return nil, false, nil
	}
	if len(pat.Fields) == 0 {
		return newBindEnv(), true, nil
	}
	rec, ok := mv.Payload.(sigma.RecordVal)
	if !ok {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "state %q payload is not record-shaped", pat.State)
	}
	return matchFields(ctx, pat.Fields, rec.Fields)
}

// matchTuplePayload handles an enum tuple-shaped payload, which is
// stored bare (not wrapped in a TupleVal) when the variant has exactly
// one field, the same convention sigma.ValueBits' taggedBits uses to
// decide whether to address a single field directly or index into a
// TupleVal.
func matchTuplePayload(ctx *Ctx, subs []ast.Pattern, payload sigma.Value) (*BindEnv, bool, error) {
	if len(subs) == 1 {
		return MatchPattern(ctx, subs[0], payload)
	}
	tup, ok := payload.(sigma.TupleVal)
	if !ok || len(tup.Elems) != len(subs) {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "tuple payload arity disagrees with pattern")
	}
	env := newBindEnv()
	for i, sub := range subs {
		sEnv, ok, err := MatchPattern(ctx, sub, tup.Elems[i])
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		env.merge(sEnv)
	}
	return env, true, nil
}

func matchFields(ctx *Ctx, fps []ast.FieldPattern, fields map[string]sigma.Value) (*BindEnv, bool, error) {
	env := newBindEnv()
	for _, fp := range fps {
		fv, ok := fields[fp.Name]
		if !ok {
			return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "value has no field %q", fp.Name)
		}
		sub := fp.Sub
		if sub == nil {
			sub = &ast.IdentPattern{Name: fp.Name}
		}
		sEnv, ok, err := MatchPattern(ctx, sub, fv)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		env.merge(sEnv)
	}
	return env, true, nil
}

func matchRange(pat *ast.RangePattern, v sigma.Value) (*BindEnv, bool, error) {
	iv, ok := v.(sigma.IntVal)
	if !ok {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "range pattern matched against non-integer value %T", v)
	}
	lo, loOK := constInt(pat.Lo)
	hi, hiOK := constInt(pat.Hi)
	if !loOK || !hiOK {
		return nil, false, diag.Errorf(diag.EvalOther, diag.Span{}, "range pattern endpoints must be constant integer literals")
	}
	if iv.Negative {
		return nil, false, nil
	}
	if iv.Magnitude.Cmp(lo) < 0 {
		return nil, false, nil
	}
	cmp := iv.Magnitude.Cmp(hi)
	if pat.Inclusive {
		if cmp > 0 {
			return nil, false, nil
		}
	} else if cmp >= 0 {
		return nil, false, nil
	}
	return newBindEnv(), true, nil
}

func constInt(e ast.Expr) (corelib.Uint128, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok || lit.Kind != ast.LitInt {
		return corelib.Uint128{}, false
	}
	v, err := corelib.ParseUint128(corelib.StripUnderscores(lit.Text), lit.Base)
	if err != nil {
		return corelib.Uint128{}, false
	}
	return v, true
}

// typeOfValue recovers the primitive type a literal pattern was checked
// against from the runtime value itself, so MatchPattern need not thread
// a separate expected-type parameter through every call, the value
// already carries its own Kind.
func typeOfValue(v sigma.Value) semtype.Type {
	switch val := v.(type) {
	case sigma.BoolVal:
		return &semtype.Prim{Kind: semtype.Bool}
	case sigma.CharVal:
		return &semtype.Prim{Kind: semtype.Char}
	case sigma.UnitVal:
		return &semtype.Prim{Kind: semtype.Unit}
	case sigma.IntVal:
		return &semtype.Prim{Kind: val.Kind}
	case sigma.FloatVal:
		return &semtype.Prim{Kind: val.Kind}
	default:
		return nil
	}
}
