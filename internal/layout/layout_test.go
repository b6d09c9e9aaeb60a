package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/semtype"
)

type fakeLayoutEnv struct {
	records map[string][]FieldSpec
	enums   map[string][]VariantSpec
	modals  map[string][]VariantSpec
}

func newFakeLayoutEnv() *fakeLayoutEnv {
	return &fakeLayoutEnv{
		records: map[string][]FieldSpec{},
		enums:   map[string][]VariantSpec{},
		modals:  map[string][]VariantSpec{},
	}
}

func key(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "::"
		}
		out += p
	}
	return out
}

func (e *fakeLayoutEnv) RecordFields(path []string) ([]FieldSpec, bool) {
	v, ok := e.records[key(path)]
	return v, ok
}

func (e *fakeLayoutEnv) EnumVariants(path []string) ([]VariantSpec, bool) {
	v, ok := e.enums[key(path)]
	return v, ok
}

func (e *fakeLayoutEnv) ModalStates(path []string) ([]VariantSpec, bool) {
	v, ok := e.modals[key(path)]
	return v, ok
}

func prim(k semtype.PrimKind) semtype.Type { return &semtype.Prim{Kind: k} }

func TestLayoutOfPrimitives(t *testing.T) {
	env := newFakeLayoutEnv()
	cases := []struct {
		kind  semtype.PrimKind
		size  int64
		align int64
	}{
		{semtype.I8, 1, 1}, {semtype.U8, 1, 1}, {semtype.Bool, 1, 1},
		{semtype.I16, 2, 2}, {semtype.F16, 2, 2},
		{semtype.I32, 4, 4}, {semtype.Char, 4, 4},
		{semtype.I64, 8, 8}, {semtype.ISize, 8, 8}, {semtype.F64, 8, 8},
		{semtype.I128, 16, 8}, {semtype.U128, 16, 8},
		{semtype.Unit, 0, 1}, {semtype.Never, 0, 1},
	}
	for _, c := range cases {
		l, err := LayoutOf(prim(c.kind), env)
		require.NoError(t, err)
		assert.Equal(t, c.size, l.Size, "size of %v", c.kind)
		assert.Equal(t, c.align, l.Align, "align of %v", c.kind)
	}
}

func TestLayoutOfPointerSliceRange(t *testing.T) {
	env := newFakeLayoutEnv()

	pl, err := LayoutOf(&semtype.Ptr{Elem: prim(semtype.I32), Qual: semtype.PtrValid}, env)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 8, Align: 8}, pl)

	sl, err := LayoutOf(&semtype.Slice{Elem: prim(semtype.U8)}, env)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 16, Align: 8}, sl)

	rl, err := LayoutOf(&semtype.Range{Elem: prim(semtype.ISize)}, env)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 24, Align: 8}, rl)
}

func TestRecordLayoutOfPadsForAlignment(t *testing.T) {
	env := newFakeLayoutEnv()
	fields := []FieldSpec{
		{Name: "a", Type: prim(semtype.U8)},
		{Name: "b", Type: prim(semtype.I32)},
		{Name: "c", Type: prim(semtype.U8)},
	}
	rl, err := RecordLayoutOf(fields, env)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rl.Fields[0].Offset)
	assert.Equal(t, int64(4), rl.Fields[1].Offset)
	assert.Equal(t, int64(8), rl.Fields[2].Offset)
	assert.Equal(t, int64(12), rl.Size)
	assert.Equal(t, int64(4), rl.Align)
}

func TestArrayLayoutOf(t *testing.T) {
	env := newFakeLayoutEnv()
	l, err := ArrayLayoutOf(prim(semtype.I64), 3, env)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 24, Align: 8}, l)
}

func TestEnumLayoutOfPicksWidestVariant(t *testing.T) {
	env := newFakeLayoutEnv()
	variants := []VariantSpec{
		{Name: "None", Discriminant: 0, Kind: PayloadUnit},
		{Name: "Some", Discriminant: 1, Kind: PayloadTuple, Tuple: []semtype.Type{prim(semtype.I64)}},
	}
	el, err := EnumLayoutOf(variants, env)
	require.NoError(t, err)
	assert.Equal(t, int64(1), el.DiscSize)
	assert.Equal(t, int64(8), el.PayloadOffset)
	assert.Equal(t, int64(16), el.Size)
	assert.Equal(t, int64(8), el.Align)
}

func TestModalLayoutOfAppliesNicheForPointerState(t *testing.T) {
	env := newFakeLayoutEnv()
	states := []VariantSpec{
		{Name: "Closed", Discriminant: 0, Kind: PayloadUnit},
		{Name: "Open", Discriminant: 1, Kind: PayloadTuple,
			Tuple: []semtype.Type{&semtype.Ptr{Elem: prim(semtype.U8), Qual: semtype.PtrValid}}},
	}
	ml, err := ModalLayoutOf(states, env)
	require.NoError(t, err)
	assert.True(t, ml.Niche)
	assert.Equal(t, "Open", ml.PayloadState)
	assert.Equal(t, "Closed", ml.EmptyState)
	assert.Equal(t, int64(8), ml.Size)
	assert.Nil(t, ml.Tagged)
}

func TestModalLayoutOfFallsBackToTaggedWithTwoPayloadStates(t *testing.T) {
	env := newFakeLayoutEnv()
	states := []VariantSpec{
		{Name: "A", Discriminant: 0, Kind: PayloadTuple, Tuple: []semtype.Type{prim(semtype.I32)}},
		{Name: "B", Discriminant: 1, Kind: PayloadTuple, Tuple: []semtype.Type{prim(semtype.I64)}},
	}
	ml, err := ModalLayoutOf(states, env)
	require.NoError(t, err)
	assert.False(t, ml.Niche)
	require.NotNil(t, ml.Tagged)
}

func TestUnionLayoutOfAppliesNicheWithOtherMembersUnit(t *testing.T) {
	env := newFakeLayoutEnv()
	members := []semtype.Type{
		&semtype.Ptr{Elem: prim(semtype.U8), Qual: semtype.PtrValid},
		prim(semtype.Unit),
	}
	ul, err := UnionLayoutOf(members, env)
	require.NoError(t, err)
	assert.True(t, ul.Niche)
	assert.Equal(t, 0, ul.NicheIndex)
	assert.Equal(t, int64(8), ul.Size)
}

func TestUnionLayoutOfTaggedWithTwoNonUnitMembers(t *testing.T) {
	env := newFakeLayoutEnv()
	members := []semtype.Type{prim(semtype.I32), prim(semtype.I64)}
	ul, err := UnionLayoutOf(members, env)
	require.NoError(t, err)
	assert.False(t, ul.Niche)
	require.NotNil(t, ul.Tagged)
}

func TestEncodeConstInt(t *testing.T) {
	env := newFakeLayoutEnv()
	lit := &ast.Literal{Kind: ast.LitInt, Text: "258", Base: 10}
	b, err := EncodeConst(prim(semtype.I32), lit, env)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 1, 0, 0}, b)
}

func TestEncodeConstBool(t *testing.T) {
	env := newFakeLayoutEnv()
	lit := &ast.Literal{Kind: ast.LitBool, Bool: true}
	b, err := EncodeConst(prim(semtype.Bool), lit, env)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, b)
}

func TestEncodeConstFloat32RoundTrips(t *testing.T) {
	env := newFakeLayoutEnv()
	lit := &ast.Literal{Kind: ast.LitFloat, Text: "1.5"}
	b, err := EncodeConst(prim(semtype.F32), lit, env)
	require.NoError(t, err)
	require.Len(t, b, 4)
}

func TestValidValueBoolRejectsNonZeroOneByte(t *testing.T) {
	env := newFakeLayoutEnv()
	ok, err := ValidValue(prim(semtype.Bool), []byte{2}, env)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ValidValue(prim(semtype.Bool), []byte{1}, env)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidValueCharRejectsSurrogateAndOutOfRange(t *testing.T) {
	env := newFakeLayoutEnv()
	ok, err := ValidValue(prim(semtype.Char), []byte{0x00, 0xD8, 0, 0}, env)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ValidValue(prim(semtype.Char), []byte{0x41, 0, 0, 0}, env)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidValuePointerRejectsAllZeroWhenValid(t *testing.T) {
	env := newFakeLayoutEnv()
	ptr := &semtype.Ptr{Elem: prim(semtype.U8), Qual: semtype.PtrValid}
	ok, err := ValidValue(ptr, make([]byte, 8), env)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ValidValue(ptr, []byte{1, 0, 0, 0, 0, 0, 0, 0}, env)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidValueModalNicheAcceptsEmptyStateZeroPattern(t *testing.T) {
	env := newFakeLayoutEnv()
	states := []VariantSpec{
		{Name: "Closed", Discriminant: 0, Kind: PayloadUnit},
		{Name: "Open", Discriminant: 1, Kind: PayloadTuple,
			Tuple: []semtype.Type{&semtype.Ptr{Elem: prim(semtype.U8), Qual: semtype.PtrValid}}},
	}
	ml, err := ModalLayoutOf(states, env)
	require.NoError(t, err)

	ok, err := validModal(ml, states, make([]byte, 8), env)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = validModal(ml, states, []byte{1, 0, 0, 0, 0, 0, 0, 0}, env)
	require.NoError(t, err)
	assert.True(t, ok)
}
