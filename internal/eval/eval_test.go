package eval

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/sigma"
)

// dumpControl renders a Control for a failure message: spew.Sdump walks
// the Value/PanicInfo pointer graph fully, unlike fmt's default %v on an
// interface holding a struct-of-pointers value.
func dumpControl(ctrl sigma.Control) string { return spew.Sdump(ctrl) }

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

func intLit(text string) *ast.Literal {
	return &ast.Literal{Kind: ast.LitInt, Text: text, Base: 10, Suffix: "i32"}
}

func boolLit(b bool) *ast.Literal { return &ast.Literal{Kind: ast.LitBool, Bool: b} }

func block(stmts []ast.Stmt, result ast.Expr) *ast.Block {
	return &ast.Block{Stmts: stmts, Result: result}
}

func newEval() (*Evaluator, *sigma.Sigma) {
	ev := NewEvaluator(nil)
	return ev, sigma.New(sigma.Config{})
}

func TestArithmeticAdd(t *testing.T) {
	ev, s := newEval()
	v, ctrl := ev.EvalExpr(s, &ast.BinaryExpr{Op: ast.OpAdd, Left: intLit("1"), Right: intLit("2")})
	require.Equal(t, sigma.CtrlNone, ctrl.Kind)
	iv := v.(sigma.IntVal)
	assert.Equal(t, uint64(3), iv.Magnitude.Lo)
}

func TestDivisionByZeroPanics(t *testing.T) {
	ev, s := newEval()
	_, ctrl := ev.EvalExpr(s, &ast.BinaryExpr{Op: ast.OpDiv, Left: intLit("1"), Right: intLit("0")})
	require.Equal(t, sigma.CtrlPanic, ctrl.Kind, dumpControl(ctrl))
	assert.Equal(t, sigma.DivZero, ctrl.Panic.Reason)
}

func TestLetBindAndRead(t *testing.T) {
	ev, s := newEval()
	b := block([]ast.Stmt{
		&ast.LetStmt{Pattern: &ast.IdentPattern{Name: "x"}, Init: intLit("41")},
	}, &ast.BinaryExpr{Op: ast.OpAdd, Left: ident("x"), Right: intLit("1")})
	v, ctrl := ev.ExecBlock(s, b)
	require.Equal(t, sigma.CtrlNone, ctrl.Kind)
	assert.Equal(t, uint64(42), v.(sigma.IntVal).Magnitude.Lo)
}

func TestIfElse(t *testing.T) {
	ev, s := newEval()
	e := &ast.IfExpr{
		Cond: boolLit(false),
		Then: block(nil, intLit("1")),
		Else: &ast.BlockExpr{Block: block(nil, intLit("2"))},
	}
	v, ctrl := ev.EvalExpr(s, e)
	require.Equal(t, sigma.CtrlNone, ctrl.Kind)
	assert.Equal(t, uint64(2), v.(sigma.IntVal).Magnitude.Lo)
}

func TestWhileLoopAccumulates(t *testing.T) {
	ev, s := newEval()
	b := block([]ast.Stmt{
		&ast.VarStmt{Pattern: &ast.IdentPattern{Name: "i"}, Init: intLit("0")},
		&ast.VarStmt{Pattern: &ast.IdentPattern{Name: "sum"}, Init: intLit("0")},
		&ast.ExprStmt{Value: &ast.WhileExpr{
			Cond: &ast.BinaryExpr{Op: ast.OpLt, Left: ident("i"), Right: intLit("5")},
			Body: block([]ast.Stmt{
				&ast.CompoundAssignStmt{Place: ident("sum"), Op: ast.OpAdd, Value: ident("i")},
				&ast.AssignStmt{Place: ident("i"), Value: &ast.BinaryExpr{Op: ast.OpAdd, Left: ident("i"), Right: intLit("1")}},
			}, nil),
		}},
	}, ident("sum"))
	v, ctrl := ev.ExecBlock(s, b)
	require.Equal(t, sigma.CtrlNone, ctrl.Kind)
	assert.Equal(t, uint64(10), v.(sigma.IntVal).Magnitude.Lo)
}

func TestRecordConstructAndFieldAccess(t *testing.T) {
	ev, s := newEval()
	e := &ast.FieldAccessExpr{
		Base: &ast.RecordLit{
			Type:   []string{"Point"},
			Fields: []ast.FieldInit{{Name: "x", Value: intLit("7")}, {Name: "y", Value: intLit("9")}},
		},
		Name: "y",
	}
	v, ctrl := ev.EvalExpr(s, e)
	require.Equal(t, sigma.CtrlNone, ctrl.Kind)
	assert.Equal(t, uint64(9), v.(sigma.IntVal).Magnitude.Lo)
}

func TestProcCallWithAliasParam(t *testing.T) {
	mod := &ast.Module{Items: []ast.Decl{&ast.ProcDecl{
		Name:   "double",
		Params: []ast.Param{{Name: "n", Mode: ast.ModeAlias}},
		Body:   block(nil, &ast.BinaryExpr{Op: ast.OpMul, Left: ident("n"), Right: intLit("2")}),
	}}}
	ev := NewEvaluator([]*ast.Module{mod})
	s := sigma.New(sigma.Config{})
	v, ctrl := ev.EvalExpr(s, &ast.CallExpr{
		Callee: ident("double"),
		Args:   []ast.Arg{{Value: intLit("21")}},
	})
	require.Equal(t, sigma.CtrlNone, ctrl.Kind)
	assert.Equal(t, uint64(42), v.(sigma.IntVal).Magnitude.Lo)
}

func TestMatchEnumVariant(t *testing.T) {
	ev, s := newEval()
	scrut := &ast.EnumLit{Type: []string{"Option"}, Variant: "Some", Tuple: []ast.Expr{intLit("5")}}
	m := &ast.MatchExpr{
		Scrutinee: scrut,
		Arms: []ast.MatchArm{
			{Pattern: &ast.EnumPattern{Type: []string{"Option"}, Variant: "Some", Tuple: []ast.Pattern{&ast.IdentPattern{Name: "v"}}}, Body: ident("v")},
			{Pattern: &ast.WildcardPattern{}, Body: intLit("0")},
		},
	}
	v, ctrl := ev.EvalExpr(s, m)
	require.Equal(t, sigma.CtrlNone, ctrl.Kind)
	assert.Equal(t, uint64(5), v.(sigma.IntVal).Magnitude.Lo)
}

func TestMovedBindingIsUnreadable(t *testing.T) {
	mod := &ast.Module{Items: []ast.Decl{&ast.ProcDecl{
		Name:   "consume",
		Params: []ast.Param{{Name: "n", Mode: ast.ModeMove}},
		Body:   block(nil, ident("n")),
	}}}
	ev := NewEvaluator([]*ast.Module{mod})
	s := sigma.New(sigma.Config{})
	b := block([]ast.Stmt{
		&ast.LetStmt{Pattern: &ast.IdentPattern{Name: "x"}, Init: intLit("1")},
		&ast.ExprStmt{Value: &ast.CallExpr{Callee: ident("consume"), Args: []ast.Arg{{Value: ident("x"), Move: true}}}},
	}, ident("x"))
	_, ctrl := ev.ExecBlock(s, b)
	require.Equal(t, sigma.CtrlPanic, ctrl.Kind, dumpControl(ctrl))
	assert.Equal(t, sigma.Other, ctrl.Panic.Reason)
}
