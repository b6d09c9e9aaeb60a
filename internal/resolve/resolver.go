package resolve

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
)

// ModuleNames is one module's complete top-level name map plus whatever
// module-alias bindings its `using` clauses introduced.
type ModuleNames struct {
	Path         corelib.ModulePath
	Names        NameMap
	ModuleAlias  map[string]corelib.ModulePath // alias name -> target module
}

// CanAccess decides whether a reference from fromModule may see an entity
// declared in declModule with the given visibility. Injecting this
// predicate lets the same resolver drive both semantic analysis and
// codegen.
type CanAccess func(fromModule, declModule corelib.ModulePath, vis ast.Visibility) bool

// DefaultCanAccess implements the visibility rule: public is
// visible anywhere; internal is visible to the declaring module and its
// descendants; private only within the declaring module itself.
func DefaultCanAccess(fromModule, declModule corelib.ModulePath, vis ast.Visibility) bool {
	switch vis {
	case ast.Public:
		return true
	case ast.Internal:
		return fromModule.Equal(declModule) || fromModule.HasPrefix(declModule)
	case ast.Private:
		return fromModule.Equal(declModule)
	default:
		return false
	}
}

// Resolver owns every module's NameMap plus the module-existence table
// qualified paths are checked against.
type Resolver struct {
	Modules   map[string]*ModuleNames // keyed by ModulePath.String()
	CanAccess CanAccess
}

// NewResolver creates an empty Resolver with the default visibility rule.
func NewResolver() *Resolver {
	return &Resolver{
		Modules:   make(map[string]*ModuleNames),
		CanAccess: DefaultCanAccess,
	}
}

// AddModule registers a module's NameMap. Safe to call before every
// referring module is registered (module graphs may be cyclic via
// `using`; only qualified resolution, which happens after all modules are
// collected, requires the target to already be present).
func (r *Resolver) AddModule(mn *ModuleNames) {
	r.Modules[mn.Path.String()] = mn
}

func (r *Resolver) lookupModule(path corelib.ModulePath) (*ModuleNames, bool) {
	mn, ok := r.Modules[path.String()]
	return mn, ok
}

// ResolveModulePath expands a leading alias (if the first path segment
// names one in aliasMap) and checks that the resulting path names a
// registered module
func (r *Resolver) ResolveModulePath(path []string, aliasMap map[string]corelib.ModulePath) (corelib.ModulePath, error) {
	if len(path) == 0 {
		return nil, diag.Errorf(diag.ResolveModulePathErr, diag.Span{}, "empty module path")
	}
	full := corelib.ModulePath(path)
	if target, ok := aliasMap[path[0]]; ok {
		full = target.Join(path[1:]...)
	}
	if _, ok := r.lookupModule(full); !ok {
		return nil, diag.Errorf(diag.ResolveModulePathErr, diag.Span{}, "no such module: %s", full.String())
	}
	return full, nil
}

// ResolveQualified resolves a qualified reference `path::name` of a given
// kind, applying alias expansion, name-map lookup, and visibility
// filtering via r.CanAccess
func (r *Resolver) ResolveQualified(fromModule corelib.ModulePath, aliasMap map[string]corelib.ModulePath, path []string, name string, kind EntityKind) (*Entity, error) {
	target, err := r.ResolveModulePath(path, aliasMap)
	if err != nil {
		return nil, err
	}
	mn, ok := r.lookupModule(target)
	if !ok {
		return nil, diag.Errorf(diag.ResolveModulePathErr, diag.Span{}, "no such module: %s", target.String())
	}
	e, ok := mn.Names[name]
	if !ok || e.Kind != kind {
		return nil, diag.Errorf(diag.NameNotFound, diag.Span{}, "%s::%s not found (kind=%s)", target.String(), name, kind)
	}
	if !r.CanAccess(fromModule, e.Module, e.Visibility) {
		return nil, diag.Errorf(diag.VisibilityDenied, diag.Span{}, "%s::%s is %s, not visible from %s", target.String(), name, e.Visibility, fromModule.String())
	}
	return e, nil
}
