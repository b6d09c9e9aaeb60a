package pattern

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
	"github.com/cursive-lang/corec/internal/semtype"
)

// TypeMatchPattern type-checks p against the expected type E.
// Permissions on E are stripped before matching and
// re-applied to every bound type at the end, and every binder name must
// be distinct across the whole pattern (Pat-Dup-Err).
func TypeMatchPattern(ctx *Ctx, p ast.Pattern, expected semtype.Type) ([]Binding, error) {
	perm, hasPerm := semtype.PermOf(expected)
	stripped := semtype.StripPerm(expected)

	bindings, err := matchStripped(ctx, p, stripped)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if seen[b.Name] {
			return nil, diag.Errorf(diag.PatDupErr, diag.Span{}, "duplicate binder %q in pattern", b.Name)
		}
		seen[b.Name] = true
	}

	if hasPerm {
		for i := range bindings {
			bindings[i].Type = &semtype.Perm{Kind: perm, Base: bindings[i].Type}
		}
	}
	return bindings, nil
}

func matchStripped(ctx *Ctx, p ast.Pattern, expected semtype.Type) ([]Binding, error) {
	switch v := p.(type) {
	case *ast.WildcardPattern:
		return nil, nil

	case *ast.IdentPattern:
		return []Binding{{Name: v.Name, Type: expected}}, nil

	case *ast.LitPattern:
		lit, ok := v.Lit.(*ast.Literal)
		if !ok {
			return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "literal pattern does not wrap a literal expression")
		}
		litTy, err := semtype.TypeLiteralExpr(lit)
		if err != nil {
			return nil, err
		}
		if !semtype.Subtyping(litTy, expected) {
			return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "literal pattern of type %s does not match expected type %s", litTy, expected)
		}
		return nil, nil

	case *ast.TypedPattern:
		union, ok := expected.(*semtype.Union)
		if !ok {
			return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "typed pattern requires a union expected type, got %s", expected)
		}
		bound, err := semtype.LowerType(v.Type, ctx.TypeEnv, ctx.ConstLen)
		if err != nil {
			return nil, err
		}
		found := false
		for _, m := range union.Members {
			if semtype.TypeEquiv(bound, m) {
				found = true
				break
			}
		}
		if !found {
			return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "%s is not a member of union %s", bound, expected)
		}
		return []Binding{{Name: v.Name, Type: bound}}, nil

	case *ast.TuplePattern:
		return matchTuple(ctx, v, expected)

	case *ast.RecordPattern:
		return matchRecord(ctx, v, expected)

	case *ast.EnumPattern:
		return matchEnum(ctx, v, expected)

	case *ast.ModalPattern:
		return matchModal(ctx, v, expected)

	case *ast.RangePattern:
		return matchRange(ctx, v, expected)

	default:
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "unrecognised pattern form %T", p)
	}
}

func matchTuple(ctx *Ctx, v *ast.TuplePattern, expected semtype.Type) ([]Binding, error) {
	if len(v.Elems) == 0 {
		if unitT, ok := expected.(*semtype.Prim); ok && unitT.Kind == semtype.Unit {
			return nil, nil
		}
		if emptyT, ok := expected.(*semtype.Tuple); ok && len(emptyT.Elems) == 0 {
			return nil, nil
		}
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "empty tuple pattern requires type (), got %s", expected)
	}
	tup, ok := expected.(*semtype.Tuple)
	if !ok {
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "tuple pattern requires a tuple type, got %s", expected)
	}
	if len(tup.Elems) != len(v.Elems) {
		return nil, diag.Errorf(diag.PatTupleArityErr, diag.Span{}, "tuple pattern has %d elements, expected type has %d", len(v.Elems), len(tup.Elems))
	}
	var out []Binding
	for i, sub := range v.Elems {
		bs, err := matchStripped(ctx, sub, tup.Elems[i])
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}

func matchRecord(ctx *Ctx, v *ast.RecordPattern, expected semtype.Type) ([]Binding, error) {
	pt, ok := expected.(*semtype.PathType)
	if !ok {
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "record pattern requires a named record type, got %s", expected)
	}
	if len(v.Type) > 0 && !pathMatchesType(v.Type, pt) {
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "record pattern names %v, expected type is %s", v.Type, expected)
	}
	var out []Binding
	for _, fp := range v.Fields {
		ftype, vis, declModule, ok := ctx.Info.RecordFieldType(fullPath(pt), fp.Name)
		if !ok {
			return nil, diag.Errorf(diag.PatFieldUnknown, diag.Span{}, "%s has no field %q", pt, fp.Name)
		}
		if !ctx.CanAccess(ctx.FromModule, declModule, vis) {
			return nil, diag.Errorf(diag.VisibilityDenied, diag.Span{}, "field %q of %s is not visible from %s", fp.Name, pt, ctx.FromModule.String())
		}
		sub := fieldSubPattern(fp)
		bs, err := matchStripped(ctx, sub, ftype)
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}

func matchEnum(ctx *Ctx, v *ast.EnumPattern, expected semtype.Type) ([]Binding, error) {
	pt, ok := expected.(*semtype.PathType)
	if !ok {
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "enum pattern requires a named enum type, got %s", expected)
	}
	if len(v.Type) > 0 && !pathMatchesType(v.Type, pt) {
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "enum pattern names %v, expected type is %s", v.Type, expected)
	}
	kind, tupleTypes, fieldTypes, ok := ctx.Info.EnumVariantShape(fullPath(pt), v.Variant)
	if !ok {
		return nil, diag.Errorf(diag.PatVariantUnknown, diag.Span{}, "%s has no variant %q", pt, v.Variant)
	}

	switch kind {
	case ast.PayloadUnit:
		if v.Tuple != nil || v.Fields != nil {
			return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "variant %q has no payload", v.Variant)
		}
		return nil, nil
	case ast.PayloadTuple:
		if v.Tuple == nil {
			return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "variant %q has a tuple payload", v.Variant)
		}
		if len(v.Tuple) != len(tupleTypes) {
			return nil, diag.Errorf(diag.PatTupleArityErr, diag.Span{}, "variant %q expects %d payload element(s), pattern has %d", v.Variant, len(tupleTypes), len(v.Tuple))
		}
		var out []Binding
		for i, sub := range v.Tuple {
			bs, err := matchStripped(ctx, sub, tupleTypes[i])
			if err != nil {
				return nil, err
			}
			out = append(out, bs...)
		}
		return out, nil
	case ast.PayloadRecord:
		if v.Fields == nil {
			return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "variant %q has a record payload", v.Variant)
		}
		byName := make(map[string]semtype.Type, len(fieldTypes))
		for _, f := range fieldTypes {
			byName[f.Name] = f.Type
		}
		var out []Binding
		for _, fp := range v.Fields {
			ftype, ok := byName[fp.Name]
			if !ok {
				return nil, diag.Errorf(diag.PatFieldUnknown, diag.Span{}, "variant %q has no field %q", v.Variant, fp.Name)
			}
			sub := fieldSubPattern(fp)
			bs, err := matchStripped(ctx, sub, ftype)
			if err != nil {
				return nil, err
			}
			out = append(out, bs...)
		}
		return out, nil
	default:
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "unknown variant payload kind")
	}
}

func matchModal(ctx *Ctx, v *ast.ModalPattern, expected semtype.Type) ([]Binding, error) {
	var modalPath []string
	switch e := expected.(type) {
	case *semtype.ModalState:
		if v.State != e.State {
			return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "modal pattern state %q does not match pinned state %q", v.State, e.State)
		}
		modalPath = fullPath(&e.Modal)
	case *semtype.PathType:
		modalPath = fullPath(e)
	default:
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "modal pattern requires a modal type, got %s", expected)
	}

	fields, ok := ctx.Info.ModalStateFields(modalPath, v.State)
	if !ok {
		return nil, diag.Errorf(diag.PatFieldUnknown, diag.Span{}, "modal %v declares no state %q", modalPath, v.State)
	}
	byName := make(map[string]semtype.Type, len(fields))
	for _, f := range fields {
		byName[f.Name] = f.Type
	}
	var out []Binding
	for _, fp := range v.Fields {
		ftype, ok := byName[fp.Name]
		if !ok {
			return nil, diag.Errorf(diag.PatFieldUnknown, diag.Span{}, "state %q has no field %q", v.State, fp.Name)
		}
		sub := fieldSubPattern(fp)
		bs, err := matchStripped(ctx, sub, ftype)
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}

func matchRange(ctx *Ctx, v *ast.RangePattern, expected semtype.Type) ([]Binding, error) {
	prim, ok := expected.(*semtype.Prim)
	if !ok || !prim.Kind.IsInteger() {
		return nil, diag.Errorf(diag.PatTypeMismatch, diag.Span{}, "range pattern requires an integer type, got %s", expected)
	}
	lo, loOK := constInt(v.Lo)
	hi, hiOK := constInt(v.Hi)
	if !loOK || !hiOK {
		return nil, diag.Errorf(diag.RangePatternNonConst, diag.Span{}, "range pattern endpoints must be constant integer literals")
	}
	cmp := lo.Cmp(hi)
	if v.Inclusive {
		if cmp > 0 {
			return nil, diag.Errorf(diag.RangePatternEmpty, diag.Span{}, "range pattern %v..=%v is empty", lo, hi)
		}
	} else if cmp >= 0 {
		return nil, diag.Errorf(diag.RangePatternEmpty, diag.Span{}, "range pattern %v..%v is empty", lo, hi)
	}
	return nil, nil
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

func fieldSubPattern(fp ast.FieldPattern) ast.Pattern {
	if fp.Sub != nil {
		return fp.Sub
	}
	return &ast.IdentPattern{Name: fp.Name}
}

func fullPath(pt *semtype.PathType) []string {
	return append(append([]string{}, pt.Path...), pt.Name)
}

func pathMatchesType(path []string, pt *semtype.PathType) bool {
	full := fullPath(pt)
	if len(path) != len(full) {
		return false
	}
	for i := range path {
		if path[i] != full[i] {
			return false
		}
	}
	return true
}
