package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
	"github.com/cursive-lang/corec/internal/resolve"
	"github.com/cursive-lang/corec/internal/semtype"
)

type fakeInfo struct {
	bitcopy       map[string]bool
	recordFields  map[string][]FieldType
	recordVis     map[string]ast.Visibility
	enumVariants  map[string]map[string]variantShape
	modalStates   map[string]map[string][]FieldType
}

type variantShape struct {
	kind   ast.VariantPayloadKind
	tuple  []semtype.Type
	fields []FieldType
}

func (f *fakeInfo) DeclaresBitcopy(path []string, name string) bool { return f.bitcopy[name] }

func (f *fakeInfo) RecordFieldType(path []string, field string) (semtype.Type, ast.Visibility, corelib.ModulePath, bool) {
	key := path[len(path)-1]
	for _, ft := range f.recordFields[key] {
		if ft.Name == field {
			vis := f.recordVis[key+"."+field]
			return ft.Type, vis, corelib.ModulePath{"app"}, true
		}
	}
	return nil, 0, nil, false
}

func (f *fakeInfo) RecordFieldNames(path []string) []string {
	key := path[len(path)-1]
	var out []string
	for _, ft := range f.recordFields[key] {
		out = append(out, ft.Name)
	}
	return out
}

func (f *fakeInfo) EnumVariantShape(path []string, variant string) (ast.VariantPayloadKind, []semtype.Type, []FieldType, bool) {
	key := path[len(path)-1]
	v, ok := f.enumVariants[key][variant]
	if !ok {
		return 0, nil, nil, false
	}
	return v.kind, v.tuple, v.fields, true
}

func (f *fakeInfo) EnumVariantCount(path []string) int {
	return len(f.enumVariants[path[len(path)-1]])
}

func (f *fakeInfo) ModalStateFields(path []string, state string) ([]FieldType, bool) {
	key := path[len(path)-1]
	fields, ok := f.modalStates[key][state]
	return fields, ok
}

func (f *fakeInfo) ModalStateCount(path []string) int {
	return len(f.modalStates[path[len(path)-1]])
}

func testCtx(info Info) *Ctx {
	return &Ctx{
		FromModule: corelib.ModulePath{"app"},
		CanAccess:  resolve.DefaultCanAccess,
		Info:       info,
	}
}

func TestIdentAndWildcardAlwaysMatch(t *testing.T) {
	ctx := testCtx(&fakeInfo{})
	bs, err := TypeMatchPattern(ctx, &ast.IdentPattern{Name: "x"}, &semtype.Prim{Kind: semtype.I32})
	require.NoError(t, err)
	assert.Equal(t, []Binding{{Name: "x", Type: &semtype.Prim{Kind: semtype.I32}}}, bs)

	bs, err = TypeMatchPattern(ctx, &ast.WildcardPattern{}, &semtype.Prim{Kind: semtype.I32})
	require.NoError(t, err)
	assert.Empty(t, bs)
}

func TestIdentPatternPermissionReapplied(t *testing.T) {
	ctx := testCtx(&fakeInfo{})
	expected := &semtype.Perm{Kind: semtype.PermConst, Base: &semtype.Prim{Kind: semtype.I32}}
	bs, err := TypeMatchPattern(ctx, &ast.IdentPattern{Name: "x"}, expected)
	require.NoError(t, err)
	require.Len(t, bs, 1)
	perm, ok := bs[0].Type.(*semtype.Perm)
	require.True(t, ok)
	assert.Equal(t, semtype.PermConst, perm.Kind)
}

func TestDuplicateBinderRejected(t *testing.T) {
	ctx := testCtx(&fakeInfo{})
	tup := &ast.TuplePattern{Elems: []ast.Pattern{
		&ast.IdentPattern{Name: "x"},
		&ast.IdentPattern{Name: "x"},
	}}
	expected := &semtype.Tuple{Elems: []semtype.Type{&semtype.Prim{Kind: semtype.I32}, &semtype.Prim{Kind: semtype.Bool}}}
	_, err := TypeMatchPattern(ctx, tup, expected)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.PatDupErr, derr.Code)
}

func TestTupleArityMismatch(t *testing.T) {
	ctx := testCtx(&fakeInfo{})
	tup := &ast.TuplePattern{Elems: []ast.Pattern{&ast.IdentPattern{Name: "x"}}}
	expected := &semtype.Tuple{Elems: []semtype.Type{&semtype.Prim{Kind: semtype.I32}, &semtype.Prim{Kind: semtype.Bool}}}
	_, err := TypeMatchPattern(ctx, tup, expected)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.PatTupleArityErr, derr.Code)
}

func TestEmptyTuplePatternRequiresUnit(t *testing.T) {
	ctx := testCtx(&fakeInfo{})
	_, err := TypeMatchPattern(ctx, &ast.TuplePattern{}, &semtype.Prim{Kind: semtype.Unit})
	require.NoError(t, err)

	_, err = TypeMatchPattern(ctx, &ast.TuplePattern{}, &semtype.Prim{Kind: semtype.I32})
	require.Error(t, err)
}

func TestRecordPatternFieldLookupAndVisibility(t *testing.T) {
	info := &fakeInfo{
		recordFields: map[string][]FieldType{
			"Point": {{Name: "x", Type: &semtype.Prim{Kind: semtype.I32}}, {Name: "y", Type: &semtype.Prim{Kind: semtype.I32}}},
		},
		recordVis: map[string]ast.Visibility{"Point.x": ast.Public, "Point.y": ast.Private},
	}
	ctx := testCtx(info)
	expected := &semtype.PathType{Name: "Point"}

	rp := &ast.RecordPattern{Fields: []ast.FieldPattern{{Name: "x"}}}
	bs, err := TypeMatchPattern(ctx, rp, expected)
	require.NoError(t, err)
	assert.Equal(t, []Binding{{Name: "x", Type: &semtype.Prim{Kind: semtype.I32}}}, bs)

	rpPriv := &ast.RecordPattern{Fields: []ast.FieldPattern{{Name: "y"}}}
	ctx.FromModule = corelib.ModulePath{"other"}
	_, err = TypeMatchPattern(ctx, rpPriv, expected)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.VisibilityDenied, derr.Code)
}

func TestRecordPatternUnknownField(t *testing.T) {
	info := &fakeInfo{recordFields: map[string][]FieldType{"Point": {}}}
	ctx := testCtx(info)
	rp := &ast.RecordPattern{Fields: []ast.FieldPattern{{Name: "z"}}}
	_, err := TypeMatchPattern(ctx, rp, &semtype.PathType{Name: "Point"})
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.PatFieldUnknown, derr.Code)
}

func TestEnumPatternVariantShapes(t *testing.T) {
	info := &fakeInfo{
		enumVariants: map[string]map[string]variantShape{
			"Option": {
				"Some": {kind: ast.PayloadTuple, tuple: []semtype.Type{&semtype.Prim{Kind: semtype.I32}}},
				"None": {kind: ast.PayloadUnit},
			},
		},
	}
	ctx := testCtx(info)
	expected := &semtype.PathType{Name: "Option"}

	some := &ast.EnumPattern{Variant: "Some", Tuple: []ast.Pattern{&ast.IdentPattern{Name: "v"}}}
	bs, err := TypeMatchPattern(ctx, some, expected)
	require.NoError(t, err)
	assert.Equal(t, []Binding{{Name: "v", Type: &semtype.Prim{Kind: semtype.I32}}}, bs)

	none := &ast.EnumPattern{Variant: "None"}
	bs, err = TypeMatchPattern(ctx, none, expected)
	require.NoError(t, err)
	assert.Empty(t, bs)

	_, err = TypeMatchPattern(ctx, &ast.EnumPattern{Variant: "Nope"}, expected)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.PatVariantUnknown, derr.Code)
}

func TestModalPatternAgainstPinnedState(t *testing.T) {
	info := &fakeInfo{
		modalStates: map[string]map[string][]FieldType{
			"File": {"Read": {{Name: "handle", Type: &semtype.RawPtr{Elem: &semtype.Prim{Kind: semtype.U8}}}}},
		},
	}
	ctx := testCtx(info)
	pinned := &semtype.ModalState{Modal: semtype.PathType{Name: "File"}, State: "Read"}
	mp := &ast.ModalPattern{State: "Read", Fields: []ast.FieldPattern{{Name: "handle"}}}

	bs, err := TypeMatchPattern(ctx, mp, pinned)
	require.NoError(t, err)
	require.Len(t, bs, 1)
	assert.Equal(t, "handle", bs[0].Name)

	wrongState := &ast.ModalPattern{State: "Closed"}
	_, err = TypeMatchPattern(ctx, wrongState, pinned)
	require.Error(t, err)
}

func TestRangePatternConstAndNonEmpty(t *testing.T) {
	ctx := testCtx(&fakeInfo{})
	rp := &ast.RangePattern{
		Lo: &ast.Literal{Kind: ast.LitInt, Text: "1", Base: 10},
		Hi: &ast.Literal{Kind: ast.LitInt, Text: "10", Base: 10},
	}
	_, err := TypeMatchPattern(ctx, rp, &semtype.Prim{Kind: semtype.I32})
	require.NoError(t, err)

	empty := &ast.RangePattern{
		Lo: &ast.Literal{Kind: ast.LitInt, Text: "10", Base: 10},
		Hi: &ast.Literal{Kind: ast.LitInt, Text: "10", Base: 10},
	}
	_, err = TypeMatchPattern(ctx, empty, &semtype.Prim{Kind: semtype.I32})
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.RangePatternEmpty, derr.Code)

	nonConst := &ast.RangePattern{Lo: &ast.Ident{Name: "n"}, Hi: &ast.Literal{Kind: ast.LitInt, Text: "10", Base: 10}}
	_, err = TypeMatchPattern(ctx, nonConst, &semtype.Prim{Kind: semtype.I32})
	require.Error(t, err)
	derr, ok = diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.RangePatternNonConst, derr.Code)
}

func TestIrrefutableWildcardIdentTrueLiteralFalse(t *testing.T) {
	info := &fakeInfo{}
	assert.True(t, IrrefutablePattern(info, &ast.WildcardPattern{}, &semtype.Prim{Kind: semtype.I32}))
	assert.True(t, IrrefutablePattern(info, &ast.IdentPattern{Name: "x"}, &semtype.Prim{Kind: semtype.I32}))
	assert.False(t, IrrefutablePattern(info, &ast.LitPattern{Lit: &ast.Literal{Kind: ast.LitInt, Text: "1", Base: 10}}, &semtype.Prim{Kind: semtype.I32}))
}

func TestIrrefutableTuple(t *testing.T) {
	info := &fakeInfo{}
	tup := &ast.TuplePattern{Elems: []ast.Pattern{&ast.IdentPattern{Name: "a"}, &ast.WildcardPattern{}}}
	expected := &semtype.Tuple{Elems: []semtype.Type{&semtype.Prim{Kind: semtype.I32}, &semtype.Prim{Kind: semtype.Bool}}}
	assert.True(t, IrrefutablePattern(info, tup, expected))
}

func TestIrrefutableEnumRequiresSingleVariant(t *testing.T) {
	info := &fakeInfo{
		enumVariants: map[string]map[string]variantShape{
			"Option": {"Some": {kind: ast.PayloadUnit}, "None": {kind: ast.PayloadUnit}},
			"Wrap":   {"Only": {kind: ast.PayloadUnit}},
		},
	}
	multi := &ast.EnumPattern{Variant: "Some"}
	assert.False(t, IrrefutablePattern(info, multi, &semtype.PathType{Name: "Option"}))

	single := &ast.EnumPattern{Variant: "Only"}
	assert.True(t, IrrefutablePattern(info, single, &semtype.PathType{Name: "Wrap"}))
}

func TestIrrefutableModalRequiresPinnedOrSingleState(t *testing.T) {
	info := &fakeInfo{
		modalStates: map[string]map[string][]FieldType{
			"File": {"Read": nil, "Write": nil},
			"Lock": {"Held": nil},
		},
	}
	mp := &ast.ModalPattern{State: "Read"}
	assert.False(t, IrrefutablePattern(info, mp, &semtype.PathType{Name: "File"}))

	pinned := &semtype.ModalState{Modal: semtype.PathType{Name: "File"}, State: "Read"}
	assert.True(t, IrrefutablePattern(info, mp, pinned))

	single := &ast.ModalPattern{State: "Held"}
	assert.True(t, IrrefutablePattern(info, single, &semtype.PathType{Name: "Lock"}))
}
