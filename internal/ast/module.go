package ast

import "github.com/cursive-lang/corec/internal/corelib"

// Module is a parsed compilation unit: a path and its top-level items.
type Module struct {
	Path  corelib.ModulePath
	Items []Decl
}

// Procs returns the module's top-level procedure declarations, in
// declaration order.
func (m *Module) Procs() []*ProcDecl {
	var out []*ProcDecl
	for _, it := range m.Items {
		if p, ok := it.(*ProcDecl); ok {
			out = append(out, p)
		}
	}
	return out
}

// Records returns the module's record declarations.
func (m *Module) Records() []*RecordDecl {
	var out []*RecordDecl
	for _, it := range m.Items {
		if r, ok := it.(*RecordDecl); ok {
			out = append(out, r)
		}
	}
	return out
}

// Enums returns the module's enum declarations.
func (m *Module) Enums() []*EnumDecl {
	var out []*EnumDecl
	for _, it := range m.Items {
		if e, ok := it.(*EnumDecl); ok {
			out = append(out, e)
		}
	}
	return out
}

// Modals returns the module's modal type declarations.
func (m *Module) Modals() []*ModalDecl {
	var out []*ModalDecl
	for _, it := range m.Items {
		if md, ok := it.(*ModalDecl); ok {
			out = append(out, md)
		}
	}
	return out
}

// Classes returns the module's capability-class declarations.
func (m *Module) Classes() []*ClassDecl {
	var out []*ClassDecl
	for _, it := range m.Items {
		if c, ok := it.(*ClassDecl); ok {
			out = append(out, c)
		}
	}
	return out
}

// Statics returns the module's static bindings, in declaration order (the
// order static initialisers run in within a single module).
func (m *Module) Statics() []*StaticDecl {
	var out []*StaticDecl
	for _, it := range m.Items {
		if s, ok := it.(*StaticDecl); ok {
			out = append(out, s)
		}
	}
	return out
}

// Usings returns the module's using-clauses, in declaration order.
func (m *Module) Usings() []*UsingDecl {
	var out []*UsingDecl
	for _, it := range m.Items {
		if u, ok := it.(*UsingDecl); ok {
			out = append(out, u)
		}
	}
	return out
}
