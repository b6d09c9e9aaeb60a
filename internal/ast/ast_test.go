package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cursive-lang/corec/internal/corelib"
)

func TestModuleAccessorsPartitionByKind(t *testing.T) {
	mod := &Module{
		Path: corelib.ModulePath{"app"},
		Items: []Decl{
			&ProcDecl{Name: "main", Visibility: Public},
			&RecordDecl{Name: "Point", Visibility: Public},
			&EnumDecl{Name: "Option", Visibility: Public},
			&ModalDecl{Name: "File", Visibility: Internal},
			&ClassDecl{Name: "Drop", Visibility: Public},
			&StaticDecl{Pattern: &IdentPattern{Name: "VERSION"}, Visibility: Private},
			&UsingDecl{Path: []string{"std", "io"}},
		},
	}

	assert.Len(t, mod.Procs(), 1)
	assert.Equal(t, "main", mod.Procs()[0].Name)
	assert.Len(t, mod.Records(), 1)
	assert.Len(t, mod.Enums(), 1)
	assert.Len(t, mod.Modals(), 1)
	assert.Len(t, mod.Classes(), 1)
	assert.Len(t, mod.Statics(), 1)
	assert.Len(t, mod.Usings(), 1)
}

func TestNodeSpanAccessible(t *testing.T) {
	sp := corelib.Span{Start: corelib.Pos{Line: 1, Col: 1}, End: corelib.Pos{Line: 1, Col: 5}}
	lit := &Literal{Node: Node{NodeSpan: sp}, Kind: LitInt, Text: "42", Base: 10}
	var e Expr = lit
	assert.Equal(t, sp, e.Span())
}

func TestDeclVisibility(t *testing.T) {
	r := &RecordDecl{Name: "X", Visibility: Internal}
	var d Decl = r
	assert.Equal(t, Internal, d.DeclVisibility())
}
