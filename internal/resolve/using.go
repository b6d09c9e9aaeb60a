package resolve

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
)

// ProcessUsing applies a single using-clause to scope and the module's
// alias table
//
// Two forms:
//   using std::io;            -> binds an alias `io` to module std::io
//   using std::io::{a, b};    -> imports names a, b directly into scope
//
// Importing a non-public name through a using-list is rejected
// (UsingListPublic); importing the same local name
// twice within one using-list is rejected (UsingListDup).
func ProcessUsing(r *Resolver, fromModule corelib.ModulePath, aliasMap map[string]corelib.ModulePath, scope *LexicalScope, u *ast.UsingDecl) error {
	target, err := r.ResolveModulePath(u.Path, aliasMap)
	if err != nil {
		return err
	}
	mn, ok := r.Modules[target.String()]
	if !ok {
		return diag.Errorf(diag.ResolveModulePathErr, diag.Span{}, "no such module: %s", target.String())
	}

	if len(u.List) == 0 {
		alias := u.Alias
		if alias == "" {
			segs := []string(target)
			alias = segs[len(segs)-1]
		}
		aliasMap[alias] = target
		scope.Bind(alias, &Entity{
			Kind:       EntModuleAlias,
			Module:     fromModule,
			Name:       alias,
			Source:     SourceImport,
			Visibility: ast.Private,
		})
		return nil
	}

	seen := make(map[string]bool, len(u.List))
	for _, item := range u.List {
		local := item.Alias
		if local == "" {
			local = item.Name
		}
		if seen[local] {
			return diag.Errorf(diag.UsingListDup, diag.Span{}, "%s imported twice in using-list from %s", local, target.String())
		}
		seen[local] = true

		e, ok := mn.Names[item.Name]
		if !ok {
			return diag.Errorf(diag.NameNotFound, diag.Span{}, "%s::%s not found", target.String(), item.Name)
		}
		if e.Visibility != ast.Public {
			return diag.Errorf(diag.UsingListPublic, diag.Span{}, "%s::%s is not public, cannot be imported", target.String(), item.Name)
		}

		imported := &Entity{
			Kind:       e.Kind,
			Module:     e.Module,
			Name:       e.Name,
			Source:     SourceImport,
			Visibility: ast.Private,
			Decl:       e.Decl,
		}
		scope.Bind(local, imported)
	}
	return nil
}
