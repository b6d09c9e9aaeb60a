package snapshot

import (
	"github.com/cursive-lang/corec/internal/codegen"
	"github.com/cursive-lang/corec/internal/layout"
)

// FromLayouts wraps a caller-gathered name->Layout table (e.g. every
// record/enum/modal/union the current program declares, plus the fixed
// primitive and built-in shapes) into the []TypeLayout form Build expects.
func FromLayouts(layouts map[string]layout.Layout) []TypeLayout {
	out := make([]TypeLayout, 0, len(layouts))
	for name, l := range layouts {
		out = append(out, TypeLayout{Name: name, Size: l.Size, Align: l.Align})
	}
	return out
}

// CoreRuntimeSnapshot builds a Snapshot covering only the fixed parts of
// the build that never vary with a particular program: the codegen
// runtime symbol catalogue and PanicRecord's layout.
func CoreRuntimeSnapshot() *Snapshot {
	types := []TypeLayout{
		{Name: "PanicRecord", Size: codegen.PanicRecordLayout.Size, Align: codegen.PanicRecordLayout.Align},
	}
	return Build(types, codegen.RuntimeCatalogue())
}
