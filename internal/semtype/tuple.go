package semtype

import "github.com/cursive-lang/corec/internal/diag"

// TupleAccess implements tuple-index access rule: the
// index must already be a known constant (callers extract it from the
// literal themselves (see diag.TupleIndexNonConst) this function only
// validates range and base-type shape). inPlace selects the
// place-position rule (permission propagates, no bitcopy requirement)
// versus value-position (element must additionally be bitcopy).
func TupleAccess(base Type, index int, inPlace bool, info UserTypeInfo) (Type, error) {
	perm, hasPerm := PermOf(base)
	stripped := StripPerm(base)

	tup, ok := stripped.(*Tuple)
	if !ok {
		return nil, diag.Errorf(diag.TupleAccessNotTuple, diag.Span{}, "cannot index non-tuple type %s", base.String())
	}
	if index < 0 || index >= len(tup.Elems) {
		return nil, diag.Errorf(diag.TupleIndexOOB, diag.Span{}, "tuple index %d out of range for %s", index, base.String())
	}

	elem := tup.Elems[index]
	if inPlace {
		if hasPerm {
			return &Perm{Kind: perm, Base: elem}, nil
		}
		return elem, nil
	}

	if !Bitcopy(elem, info) {
		return nil, diag.Errorf(diag.ValueUseNonBitcopy, diag.Span{}, "tuple element %d of %s is not bitcopy, cannot be used by value", index, base.String())
	}
	if hasPerm {
		return &Perm{Kind: perm, Base: elem}, nil
	}
	return elem, nil
}
