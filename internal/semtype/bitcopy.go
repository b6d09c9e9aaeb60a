package semtype

// UserTypeInfo answers whether a nominal type declares `Bitcopy`, without
// Bitcopy itself depending on the declaration-table package (ast/resolve)
//, same cycle-avoidance shape as TypeEnv in lower.go.
type UserTypeInfo interface {
	DeclaresBitcopy(path []string, name string) bool
}

// Bitcopy decides whether t's values may be copied by raw byte copy
// rather than move/clone: "A type is bitcopy if it is
// primitive, a function/raw pointer/slice/dynamic/range, a view-state
// string/bytes, a tuple/array of bitcopy, or a user-defined type that
// declares Bitcopy. Permissions break bitcopy: Unique is never bitcopy;
// other perms follow the base."
func Bitcopy(t Type, info UserTypeInfo) bool {
	switch v := t.(type) {
	case *Prim:
		return true
	case *Perm:
		if v.Kind == PermUnique {
			return false
		}
		return Bitcopy(v.Base, info)
	case *RawPtr:
		return true
	case *Slice:
		return true
	case *Dynamic:
		return true
	case *Range:
		return true
	case *Func:
		return true
	case *StringTy:
		return v.State == StateView
	case *BytesTy:
		return v.State == StateView
	case *Tuple:
		for _, e := range v.Elems {
			if !Bitcopy(e, info) {
				return false
			}
		}
		return true
	case *Array:
		return Bitcopy(v.Elem, info)
	case *PathType:
		return info.DeclaresBitcopy(v.Path, v.Name)
	case *ModalState:
		return info.DeclaresBitcopy(v.Modal.Path, v.Modal.Name)
	default:
		// Ptr (smart pointer), Union, Refine, Opaque are never bitcopy:
		// smart pointers carry tag-tracked ownership, unions/refines
		// decompose into possibly-non-bitcopy members, and opaque
		// capability handles are move-only by construction.
		return false
	}
}
