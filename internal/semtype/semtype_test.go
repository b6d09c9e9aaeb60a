package semtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
)

type fakeEnv map[string]int

func (e fakeEnv) LookupTypeArity(path []string) (int, bool) {
	n, ok := e[path[len(path)-1]]
	return n, ok
}

type fakeBitcopy map[string]bool

func (b fakeBitcopy) DeclaresBitcopy(path []string, name string) bool {
	return b[name]
}

func constLenLiteral(e ast.Expr) (int64, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok || lit.Kind != ast.LitInt {
		return 0, false
	}
	v, err := corelib.ParseUint128(lit.Text, 10)
	if err != nil {
		return 0, false
	}
	return int64(v.Lo), true
}

func TestLowerTypePrimitivesAndArray(t *testing.T) {
	env := fakeEnv{}
	syn := &ast.ArrayType{
		Elem: &ast.PrimType{Name: "i32"},
		Len:  &ast.Literal{Kind: ast.LitInt, Text: "4", Base: 10},
	}
	got, err := LowerType(syn, env, constLenLiteral)
	require.NoError(t, err)
	arr, ok := got.(*Array)
	require.True(t, ok)
	assert.Equal(t, int64(4), arr.Len)
	assert.Equal(t, &Prim{Kind: I32}, arr.Elem)
}

func TestLowerTypeArrayNonConstLen(t *testing.T) {
	env := fakeEnv{}
	syn := &ast.ArrayType{
		Elem: &ast.PrimType{Name: "i32"},
		Len:  &ast.Ident{Name: "n"},
	}
	_, err := LowerType(syn, env, constLenLiteral)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.ConstLenNotConst, derr.Code)
}

func TestLowerTypeUnknownPrim(t *testing.T) {
	_, err := LowerType(&ast.PrimType{Name: "nonsense"}, fakeEnv{}, constLenLiteral)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.UnknownTypeName, derr.Code)
}

func TestLowerTypePathArityMismatch(t *testing.T) {
	env := fakeEnv{"Box": 1}
	syn := &ast.PathType{Path: []string{"Box"}}
	_, err := LowerType(syn, env, constLenLiteral)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.WFApplyArityErr, derr.Code)
}

func TestLowerTypePathOK(t *testing.T) {
	env := fakeEnv{"Point": 0}
	syn := &ast.PathType{Path: []string{"app", "Point"}}
	got, err := LowerType(syn, env, constLenLiteral)
	require.NoError(t, err)
	pt, ok := got.(*PathType)
	require.True(t, ok)
	assert.Equal(t, "Point", pt.Name)
	assert.Equal(t, []string{"app"}, pt.Path)
}

func TestTypeEquivPermissionsNotStripped(t *testing.T) {
	a := &Perm{Kind: PermConst, Base: &Prim{Kind: I32}}
	b := &Prim{Kind: I32}
	assert.False(t, TypeEquiv(a, b), "TypeEquiv must not strip permissions implicitly")
}

func TestTypeEquivUnionUnordered(t *testing.T) {
	a := &Union{Members: []Type{&Prim{Kind: I32}, &Prim{Kind: Bool}}}
	b := &Union{Members: []Type{&Prim{Kind: Bool}, &Prim{Kind: I32}}}
	assert.True(t, TypeEquiv(a, b))
}

func TestSubtypingUnionMember(t *testing.T) {
	i32 := &Prim{Kind: I32}
	u := &Union{Members: []Type{i32, &Prim{Kind: Bool}}}
	assert.True(t, Subtyping(i32, u))
	assert.False(t, Subtyping(&Prim{Kind: Char}, u))
}

func TestStripPerm(t *testing.T) {
	p := &Perm{Kind: PermShared, Base: &Prim{Kind: I64}}
	assert.Equal(t, &Prim{Kind: I64}, StripPerm(p))
	assert.Equal(t, &Prim{Kind: I64}, StripPerm(&Prim{Kind: I64}))
}

func TestBitcopyRules(t *testing.T) {
	info := fakeBitcopy{"Copyable": true, "NotCopyable": false}
	assert.True(t, Bitcopy(&Prim{Kind: I32}, info))
	assert.True(t, Bitcopy(&StringTy{State: StateView}, info))
	assert.False(t, Bitcopy(&StringTy{State: StateManaged}, info))
	assert.False(t, Bitcopy(&Perm{Kind: PermUnique, Base: &Prim{Kind: I32}}, info))
	assert.True(t, Bitcopy(&Perm{Kind: PermConst, Base: &Prim{Kind: I32}}, info))
	assert.True(t, Bitcopy(&Tuple{Elems: []Type{&Prim{Kind: I32}, &Prim{Kind: Bool}}}, info))
	assert.True(t, Bitcopy(&PathType{Name: "Copyable"}, info))
	assert.False(t, Bitcopy(&PathType{Name: "NotCopyable"}, info))
	assert.False(t, Bitcopy(&Ptr{Elem: &Prim{Kind: I32}, Qual: PtrValid}, info))
}

func TestTupleAccessRules(t *testing.T) {
	info := fakeBitcopy{}
	tup := &Tuple{Elems: []Type{&Prim{Kind: I32}, &StringTy{State: StateManaged}}}

	got, err := TupleAccess(tup, 0, false, info)
	require.NoError(t, err)
	assert.Equal(t, &Prim{Kind: I32}, got)

	_, err = TupleAccess(tup, 1, false, info)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.ValueUseNonBitcopy, derr.Code)

	got, err = TupleAccess(tup, 1, true, info)
	require.NoError(t, err, "place position does not require bitcopy")
	assert.Equal(t, &StringTy{State: StateManaged}, got)

	_, err = TupleAccess(tup, 5, true, info)
	require.Error(t, err)
	derr, ok = diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.TupleIndexOOB, derr.Code)

	_, err = TupleAccess(&Prim{Kind: I32}, 0, true, info)
	require.Error(t, err)
	derr, ok = diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.TupleAccessNotTuple, derr.Code)
}

func TestTupleAccessPermissionPropagatesInPlace(t *testing.T) {
	info := fakeBitcopy{}
	tup := &Perm{Kind: PermConst, Base: &Tuple{Elems: []Type{&Prim{Kind: I32}}}}
	got, err := TupleAccess(tup, 0, true, info)
	require.NoError(t, err)
	perm, ok := got.(*Perm)
	require.True(t, ok)
	assert.Equal(t, PermConst, perm.Kind)
}

func TestInRangeIntBoundaries(t *testing.T) {
	max255, _ := corelib.ParseUint128("255", 10)
	assert.True(t, InRangeInt(max255, U8))
	over, _ := corelib.ParseUint128("256", 10)
	assert.False(t, InRangeInt(over, U8))

	i32min, _ := corelib.ParseUint128("2147483648", 10)
	assert.True(t, InRangeInt(i32min, I32), "2^31 is the magnitude of i32::MIN")
	tooBig, _ := corelib.ParseUint128("2147483649", 10)
	assert.False(t, InRangeInt(tooBig, I32))
}

func TestTypeLiteralExprInt(t *testing.T) {
	lit := &ast.Literal{Kind: ast.LitInt, Text: "42", Base: 10}
	got, err := TypeLiteralExpr(lit)
	require.NoError(t, err)
	assert.Equal(t, &Prim{Kind: I32}, got)
}

func TestTypeLiteralExprSuffixOverflow(t *testing.T) {
	lit := &ast.Literal{Kind: ast.LitInt, Text: "256", Base: 10, Suffix: "u8"}
	_, err := TypeLiteralExpr(lit)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.LiteralOutOfRange, derr.Code)
}

func TestTypeLiteralExprString(t *testing.T) {
	lit := &ast.Literal{Kind: ast.LitString, Text: "hi"}
	got, err := TypeLiteralExpr(lit)
	require.NoError(t, err)
	assert.Equal(t, &StringTy{State: StateView}, got)
}
