package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
)

func TestLexicalScopeLookupWalksParentChain(t *testing.T) {
	root := NewLexicalScope(nil)
	root.Bind("x", &Entity{Kind: EntValue, Name: "x"})

	child := NewLexicalScope(root)
	child.Bind("y", &Entity{Kind: EntValue, Name: "y"})

	e, ok := child.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "x", e.Name)

	_, ok = root.Lookup("y")
	assert.False(t, ok, "parent must not see child bindings")
}

func TestLexicalScopeShadowing(t *testing.T) {
	root := NewLexicalScope(nil)
	root.Bind("x", &Entity{Kind: EntValue, Name: "outer"})
	child := NewLexicalScope(root)
	child.Bind("x", &Entity{Kind: EntValue, Name: "inner"})

	e, ok := child.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "inner", e.Name)
}

func TestResolveKindFiltersByEntityKind(t *testing.T) {
	scope := NewLexicalScope(nil)
	scope.Bind("Point", &Entity{Kind: EntType, Name: "Point"})

	_, ok := ResolveValueName(scope, "Point")
	assert.False(t, ok, "a type entity must not satisfy a value lookup")

	e, ok := ResolveTypeName(scope, "Point")
	require.True(t, ok)
	assert.Equal(t, EntType, e.Kind)
}

func newTestResolver() (*Resolver, corelib.ModulePath, corelib.ModulePath) {
	r := NewResolver()
	appPath := corelib.ModulePath{"app"}
	ioPath := corelib.ModulePath{"std", "io"}

	r.AddModule(&ModuleNames{
		Path: ioPath,
		Names: NameMap{
			"Read":  {Kind: EntValue, Module: ioPath, Name: "Read", Visibility: ast.Public},
			"inner": {Kind: EntValue, Module: ioPath, Name: "inner", Visibility: ast.Private},
		},
	})
	r.AddModule(&ModuleNames{
		Path:  appPath,
		Names: NameMap{},
	})
	return r, appPath, ioPath
}

func TestResolveModulePathExpandsAlias(t *testing.T) {
	r, appPath, ioPath := newTestResolver()
	aliasMap := map[string]corelib.ModulePath{"io": ioPath}

	got, err := r.ResolveModulePath([]string{"io"}, aliasMap)
	require.NoError(t, err)
	assert.True(t, got.Equal(ioPath))

	_, err = r.ResolveModulePath([]string{"nope"}, aliasMap)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.ResolveModulePathErr, derr.Code)

	_ = appPath
}

func TestResolveQualifiedPublicVisible(t *testing.T) {
	r, appPath, ioPath := newTestResolver()
	aliasMap := map[string]corelib.ModulePath{}

	e, err := r.ResolveQualified(appPath, aliasMap, []string(ioPath), "Read", EntValue)
	require.NoError(t, err)
	assert.Equal(t, "Read", e.Name)
}

func TestResolveQualifiedPrivateDenied(t *testing.T) {
	r, appPath, ioPath := newTestResolver()
	aliasMap := map[string]corelib.ModulePath{}

	_, err := r.ResolveQualified(appPath, aliasMap, []string(ioPath), "inner", EntValue)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.VisibilityDenied, derr.Code)
}

func TestDefaultCanAccessInternalVisibleToDescendant(t *testing.T) {
	parent := corelib.ModulePath{"app"}
	child := corelib.ModulePath{"app", "sub"}
	assert.True(t, DefaultCanAccess(child, parent, ast.Internal))
	assert.False(t, DefaultCanAccess(corelib.ModulePath{"other"}, parent, ast.Internal))
}

func TestProcessUsingAliasForm(t *testing.T) {
	r, appPath, ioPath := newTestResolver()
	aliasMap := map[string]corelib.ModulePath{}
	scope := NewLexicalScope(nil)

	u := &ast.UsingDecl{Path: []string(ioPath)}
	err := ProcessUsing(r, appPath, aliasMap, scope, u)
	require.NoError(t, err)

	assert.True(t, aliasMap["io"].Equal(ioPath))
	e, ok := ResolveModuleName(scope, "io")
	require.True(t, ok)
	assert.Equal(t, EntModuleAlias, e.Kind)
}

func TestProcessUsingListFormImportsPublicOnly(t *testing.T) {
	r, appPath, ioPath := newTestResolver()
	aliasMap := map[string]corelib.ModulePath{}
	scope := NewLexicalScope(nil)

	u := &ast.UsingDecl{Path: []string(ioPath), List: []ast.UsingItem{{Name: "Read"}}}
	err := ProcessUsing(r, appPath, aliasMap, scope, u)
	require.NoError(t, err)

	e, ok := ResolveValueName(scope, "Read")
	require.True(t, ok)
	assert.Equal(t, "Read", e.Name)
}

func TestProcessUsingListRejectsPrivate(t *testing.T) {
	r, appPath, ioPath := newTestResolver()
	aliasMap := map[string]corelib.ModulePath{}
	scope := NewLexicalScope(nil)

	u := &ast.UsingDecl{Path: []string(ioPath), List: []ast.UsingItem{{Name: "inner"}}}
	err := ProcessUsing(r, appPath, aliasMap, scope, u)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.UsingListPublic, derr.Code)
}

func TestProcessUsingListRejectsDuplicateLocalName(t *testing.T) {
	r, appPath, ioPath := newTestResolver()
	aliasMap := map[string]corelib.ModulePath{}
	scope := NewLexicalScope(nil)

	u := &ast.UsingDecl{Path: []string(ioPath), List: []ast.UsingItem{
		{Name: "Read"},
		{Name: "Read", Alias: "Read"},
	}}
	err := ProcessUsing(r, appPath, aliasMap, scope, u)
	require.Error(t, err)
	derr, ok := diag.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diag.UsingListDup, derr.Code)
}

func TestDeclNamesAndPatNames(t *testing.T) {
	assert.Equal(t, []string{"main"}, DeclNames(&ast.ProcDecl{Name: "main"}))

	pat := &ast.TuplePattern{Elems: []ast.Pattern{
		&ast.IdentPattern{Name: "a"},
		&ast.WildcardPattern{},
		&ast.IdentPattern{Name: "b"},
	}}
	assert.Equal(t, []string{"a", "b"}, PatNames(pat))

	rec := &ast.RecordPattern{Fields: []ast.FieldPattern{
		{Name: "x"},
		{Name: "y", Sub: &ast.IdentPattern{Name: "renamed"}},
	}}
	assert.Equal(t, []string{"x", "renamed"}, PatNames(rec))

	static := &ast.StaticDecl{Pattern: pat}
	assert.Equal(t, []string{"a", "b"}, DeclNames(static))
}
