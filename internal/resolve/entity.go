// Package resolve implements name resolution over modules, using-clauses,
// aliases, and qualified paths: a leading module alias expands to its
// target path, and names are looked up in per-module name maps (NameMap)
// rather than file paths.
package resolve

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
)

// EntityKind classifies what an Entity names.
type EntityKind int

const (
	EntValue EntityKind = iota
	EntType
	EntClass
	EntModuleAlias
	EntRegionAlias
)

func (k EntityKind) String() string {
	switch k {
	case EntValue:
		return "value"
	case EntType:
		return "type"
	case EntClass:
		return "class"
	case EntModuleAlias:
		return "module-alias"
	case EntRegionAlias:
		return "region-alias"
	default:
		return "?entity"
	}
}

// EntitySource records how an Entity came to exist in a module's NameMap.
type EntitySource int

const (
	SourceDecl EntitySource = iota
	SourceImport
	SourceRegionAliasBind
)

// Entity is the sole unit of "what does this name mean" throughout
// resolution
type Entity struct {
	Kind       EntityKind
	Module     corelib.ModulePath // the module that originally declared it
	Name       string             // the name within Module (differs from the
	                               // local binding name for renamed imports)
	Source     EntitySource
	Visibility ast.Visibility
	Decl       ast.Decl // nil for synthetic/builtin entities
}

// NameMap is the name->Entity table for one module. It is the sole
// authority for resolving qualified paths into that module.
type NameMap map[string]*Entity
