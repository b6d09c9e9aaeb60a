package semtype

// TypeEquiv is structural equivalence, modulo name resolution (two
// PathTypes are equivalent iff their resolved paths and names match, not
// their surface spelling), permissions are NOT stripped here; TypeEquiv
// only strips what is explicitly required, and plain equivalence does
// not require it.
func TypeEquiv(a, b Type) bool {
	switch av := a.(type) {
	case *Prim:
		bv, ok := b.(*Prim)
		return ok && av.Kind == bv.Kind
	case *Perm:
		bv, ok := b.(*Perm)
		return ok && av.Kind == bv.Kind && TypeEquiv(av.Base, bv.Base)
	case *Ptr:
		bv, ok := b.(*Ptr)
		return ok && av.Qual == bv.Qual && TypeEquiv(av.Elem, bv.Elem)
	case *RawPtr:
		bv, ok := b.(*RawPtr)
		return ok && av.Qual == bv.Qual && TypeEquiv(av.Elem, bv.Elem)
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !TypeEquiv(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Array:
		bv, ok := b.(*Array)
		return ok && av.Len == bv.Len && TypeEquiv(av.Elem, bv.Elem)
	case *Slice:
		bv, ok := b.(*Slice)
		return ok && TypeEquiv(av.Elem, bv.Elem)
	case *Func:
		bv, ok := b.(*Func)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !TypeEquiv(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return TypeEquiv(av.Ret, bv.Ret)
	case *Union:
		bv, ok := b.(*Union)
		if !ok || len(av.Members) != len(bv.Members) {
			return false
		}
		// Unions are unordered sets of members; equivalence requires a
		// bijection, not positional equality.
		used := make([]bool, len(bv.Members))
		for _, am := range av.Members {
			found := false
			for i, bm := range bv.Members {
				if !used[i] && TypeEquiv(am, bm) {
					used[i] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case *Range:
		bv, ok := b.(*Range)
		return ok && TypeEquiv(av.Elem, bv.Elem)
	case *StringTy:
		bv, ok := b.(*StringTy)
		return ok && av.State == bv.State
	case *BytesTy:
		bv, ok := b.(*BytesTy)
		return ok && av.State == bv.State
	case *Dynamic:
		bv, ok := b.(*Dynamic)
		return ok && av.Class == bv.Class
	case *Refine:
		bv, ok := b.(*Refine)
		return ok && av.Pred == bv.Pred && TypeEquiv(av.Base, bv.Base)
	case *Opaque:
		bv, ok := b.(*Opaque)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !TypeEquiv(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *PathType:
		bv, ok := b.(*PathType)
		if !ok || av.Name != bv.Name || !pathEqual(av.Path, bv.Path) || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !TypeEquiv(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *ModalState:
		bv, ok := b.(*ModalState)
		return ok && av.State == bv.State && TypeEquiv(&av.Modal, &bv.Modal)
	default:
		return false
	}
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
