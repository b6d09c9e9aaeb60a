package resolve

// LexicalScope is a single nested block's local bindings during name
// resolution/type checking, distinct from sigma.Scope, which is the
// *runtime* scope stack the evaluator maintains. Two separate stacks exist
// because resolution happens once, statically, while sigma's stack is
// rebuilt on every evaluation.
type LexicalScope struct {
	parent *LexicalScope
	names  map[string]*Entity
}

// NewLexicalScope creates a scope nested inside parent (nil for the module
// root scope).
func NewLexicalScope(parent *LexicalScope) *LexicalScope {
	return &LexicalScope{parent: parent, names: make(map[string]*Entity)}
}

// Bind introduces name into this scope, shadowing any outer binding.
func (s *LexicalScope) Bind(name string, e *Entity) {
	s.names[name] = e
}

// Lookup walks the scope stack from innermost to outermost, returning the
// first hit.
func (s *LexicalScope) Lookup(name string) (*Entity, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, ok := cur.names[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// ResolveValueName resolves name to a value entity, filtering out
// non-value kinds even if a shadowing name of a different kind exists
// closer in scope.
func ResolveValueName(ctx *LexicalScope, name string) (*Entity, bool) {
	return resolveKind(ctx, name, EntValue)
}

// ResolveTypeName resolves name to a type entity.
func ResolveTypeName(ctx *LexicalScope, name string) (*Entity, bool) {
	return resolveKind(ctx, name, EntType)
}

// ResolveClassName resolves name to a class entity.
func ResolveClassName(ctx *LexicalScope, name string) (*Entity, bool) {
	return resolveKind(ctx, name, EntClass)
}

// ResolveModuleName resolves name to a module-alias entity.
func ResolveModuleName(ctx *LexicalScope, name string) (*Entity, bool) {
	return resolveKind(ctx, name, EntModuleAlias)
}

func resolveKind(ctx *LexicalScope, name string, kind EntityKind) (*Entity, bool) {
	for cur := ctx; cur != nil; cur = cur.parent {
		if e, ok := cur.names[name]; ok && e.Kind == kind {
			return e, true
		}
	}
	return nil, false
}
