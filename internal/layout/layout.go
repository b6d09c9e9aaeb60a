// Package layout computes deterministic size/alignment/
// offset rules, niche-optimised enum/modal/union layouts, and the
// constant/value byte-encoding predicates EncodeConst and ValidValue.
package layout

import (
	"github.com/cursive-lang/corec/internal/diag"
	"github.com/cursive-lang/corec/internal/semtype"
)

// Layout is a size/alignment pair. Both are in bytes.
type Layout struct {
	Size  int64
	Align int64
}

// FieldSpec is one field of a record, tuple, or enum/modal payload,
// supplied by the caller's declaration table.
type FieldSpec struct {
	Name string
	Type semtype.Type
}

// FieldLayout is a FieldSpec with its computed byte offset.
type FieldLayout struct {
	Name   string
	Type   semtype.Type
	Offset int64
}

// PayloadKind mirrors ast.VariantPayloadKind as layout's own payload
// classification for VariantSpec.
type PayloadKind int

const (
	PayloadUnit PayloadKind = iota
	PayloadTuple
	PayloadRecord
)

// VariantSpec is one enum variant or modal state, as the caller's
// declaration table reports it.
type VariantSpec struct {
	Name         string
	Discriminant int64
	Kind         PayloadKind
	Tuple        []semtype.Type
	Fields       []FieldSpec
}

// LayoutEnv answers the declaration-table questions layout computation
// needs about nominal types, mirroring pattern.Info's shape at this lower
// layer.
type LayoutEnv interface {
	RecordFields(path []string) ([]FieldSpec, bool)
	EnumVariants(path []string) ([]VariantSpec, bool)
	ModalStates(path []string) ([]VariantSpec, bool)
}

func pad(n, align int64) int64 {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

// LayoutOf computes the canonical layout for t, dispatching to
// RecordLayoutOf/EnumLayoutOf/ModalLayoutOf/UnionLayoutOf for nominal and
// union types
func LayoutOf(t semtype.Type, env LayoutEnv) (Layout, error) {
	switch v := t.(type) {
	case *semtype.Prim:
		return primLayout(v.Kind), nil
	case *semtype.Perm:
		return LayoutOf(v.Base, env)
	case *semtype.Refine:
		return LayoutOf(v.Base, env)
	case *semtype.Ptr:
		return Layout{Size: 8, Align: 8}, nil
	case *semtype.RawPtr:
		return Layout{Size: 8, Align: 8}, nil
	case *semtype.Func:
		return Layout{Size: 8, Align: 8}, nil
	case *semtype.Slice:
		return Layout{Size: 16, Align: 8}, nil
	case *semtype.Dynamic:
		return Layout{Size: 16, Align: 8}, nil
	case *semtype.Range:
		return Layout{Size: 24, Align: 8}, nil
	case *semtype.StringTy:
		return stringLayout(v.State), nil
	case *semtype.BytesTy:
		return stringLayout(v.State), nil
	case *semtype.Tuple:
		types := make([]FieldSpec, len(v.Elems))
		for i, e := range v.Elems {
			types[i] = FieldSpec{Type: e}
		}
		rl, err := RecordLayoutOf(types, env)
		if err != nil {
			return Layout{}, err
		}
		return rl.Layout, nil
	case *semtype.Array:
		return ArrayLayoutOf(v.Elem, v.Len, env)
	case *semtype.Union:
		ul, err := UnionLayoutOf(v.Members, env)
		if err != nil {
			return Layout{}, err
		}
		return ul.Layout, nil
	case *semtype.Opaque:
		// Built-in capability/handle types (FileSystem, HeapAllocator,
		// Region, DirIter) are always held behind a boxed handle in this
		// reference implementation, never inlined.
		return Layout{Size: 8, Align: 8}, nil
	case *semtype.PathType:
		return nominalLayout(v.Path, v.Name, env)
	case *semtype.ModalState:
		return nominalLayout(v.Modal.Path, v.Modal.Name, env)
	default:
		return Layout{}, diag.Errorf(diag.InvalidNiche, diag.Span{}, "no layout rule for %s", t.String())
	}
}

func nominalLayout(path []string, name string, env LayoutEnv) (Layout, error) {
	full := append(append([]string{}, path...), name)
	if fields, ok := env.RecordFields(full); ok {
		rl, err := RecordLayoutOf(fields, env)
		if err != nil {
			return Layout{}, err
		}
		return rl.Layout, nil
	}
	if variants, ok := env.EnumVariants(full); ok {
		el, err := EnumLayoutOf(variants, env)
		if err != nil {
			return Layout{}, err
		}
		return el.Layout, nil
	}
	if states, ok := env.ModalStates(full); ok {
		ml, err := ModalLayoutOf(states, env)
		if err != nil {
			return Layout{}, err
		}
		return ml.Layout, nil
	}
	return Layout{}, diag.Errorf(diag.InvalidNiche, diag.Span{}, "unknown nominal type %v", full)
}

func primLayout(k semtype.PrimKind) Layout {
	switch k {
	case semtype.I8, semtype.U8, semtype.Bool:
		return Layout{Size: 1, Align: 1}
	case semtype.I16, semtype.U16, semtype.F16:
		return Layout{Size: 2, Align: 2}
	case semtype.I32, semtype.U32, semtype.F32, semtype.Char:
		return Layout{Size: 4, Align: 4}
	case semtype.I64, semtype.U64, semtype.ISize, semtype.USize, semtype.F64:
		return Layout{Size: 8, Align: 8}
	case semtype.I128, semtype.U128:
		return Layout{Size: 16, Align: 8}
	case semtype.Unit, semtype.Never:
		return Layout{Size: 0, Align: 1}
	default:
		return Layout{Size: 0, Align: 1}
	}
}

func stringLayout(state semtype.StringState) Layout {
	switch state {
	case semtype.StateManaged:
		return Layout{Size: 24, Align: 8}
	case semtype.StateView:
		return Layout{Size: 16, Align: 8}
	default:
		return Layout{Size: 32, Align: 8}
	}
}

// layoutFields pads a sequence of typed slots in order, computing each
// one's offset, the overall alignment, and the padded total size. This is
// the shared core of RecordLayoutOf, tuple layout, and variant-payload
// layout.
func layoutFields(types []FieldSpec, env LayoutEnv) ([]FieldLayout, Layout, error) {
	if len(types) == 0 {
		return nil, Layout{Size: 0, Align: 1}, nil
	}
	out := make([]FieldLayout, 0, len(types))
	var offset int64
	var maxAlign int64 = 1
	for _, f := range types {
		l, err := LayoutOf(f.Type, env)
		if err != nil {
			return nil, Layout{}, err
		}
		if l.Align > maxAlign {
			maxAlign = l.Align
		}
		offset = pad(offset, l.Align)
		out = append(out, FieldLayout{Name: f.Name, Type: f.Type, Offset: offset})
		offset += l.Size
	}
	return out, Layout{Size: pad(offset, maxAlign), Align: maxAlign}, nil
}
