package layout

import "github.com/cursive-lang/corec/internal/semtype"

// NicheCount reports how many distinct "empty" bit-patterns a type can
// donate to a niche layout without being confused with any of its own
// valid values. The only niche-bearing type this
// implementation supports is a smart pointer in Valid state, which
// donates exactly its all-zero bit pattern (the Null representation),
// giving NicheCount = 1.
func NicheCount(t semtype.Type) int {
	if isNicheBearing(t) {
		return 1
	}
	return 0
}

func isNicheBearing(t semtype.Type) bool {
	p, ok := t.(*semtype.Ptr)
	return ok && p.Qual == semtype.PtrValid
}

func isUnitType(t semtype.Type) bool {
	p, ok := semtype.StripPerm(t).(*semtype.Prim)
	return ok && p.Kind == semtype.Unit
}
