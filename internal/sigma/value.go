// Package sigma is the operational-semantics runtime state σ: the
// address-indexed store, binding/scope/region stacks, the FS virtual
// state, and the panic latch, plus the runtime Value tagged union and
// ValueBits.
//
// Value is a small-interface sum (Type()/String()) over the runtime value
// set; the state struct itself follows a struct-of-resources pattern,
// bundling the store/scopes/regions/FS/panic latch behind one handle.
package sigma

import (
	"fmt"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/semtype"
)

// Value is the base interface every runtime value form implements.
type Value interface {
	fmt.Stringer
	valueNode()
}

// UnitVal is the sole unit value.
type UnitVal struct{}

func (UnitVal) valueNode()      {}
func (UnitVal) String() string  { return "()" }

// BoolVal is a boolean value.
type BoolVal struct{ V bool }

func (BoolVal) valueNode() {}
func (v BoolVal) String() string {
	if v.V {
		return "true"
	}
	return "false"
}

// CharVal is a Unicode scalar value.
type CharVal struct{ V rune }

func (CharVal) valueNode()      {}
func (v CharVal) String() string { return string(v.V) }

// IntVal is an integer value. Magnitude is always non-negative 128-bit;
// Negative carries the sign, matching `Int{type, magnitude,
// negative}`.
type IntVal struct {
	Kind      semtype.PrimKind
	Magnitude corelib.Uint128
	Negative  bool
}

func (IntVal) valueNode() {}
func (v IntVal) String() string {
	if v.Negative && !v.Magnitude.IsZero() {
		return "-" + v.Magnitude.String()
	}
	return v.Magnitude.String()
}

// FloatVal is a floating-point value, carried as its raw IEEE-754 bit
// pattern sized per Kind (2/4/8 bytes for f16/f32/f64).
type FloatVal struct {
	Kind semtype.PrimKind
	Bits uint64
}

func (FloatVal) valueNode()      {}
func (v FloatVal) String() string { return fmt.Sprintf("%g", v.Float64()) }

// PtrVal is a smart (tag-tracked) pointer value.
type PtrVal struct {
	State semtype.PtrQual
	Addr  Addr
}

func (PtrVal) valueNode() {}
func (v PtrVal) String() string {
	switch v.State {
	case semtype.PtrNull:
		return "null"
	default:
		return fmt.Sprintf("ptr@%d", v.Addr)
	}
}

// RawPtrVal is an unmanaged pointer value.
type RawPtrVal struct {
	Qual semtype.RawQual
	Addr Addr
}

func (RawPtrVal) valueNode()      {}
func (v RawPtrVal) String() string { return fmt.Sprintf("rawptr@%d", v.Addr) }

// TupleVal is a tuple value.
type TupleVal struct{ Elems []Value }

func (TupleVal) valueNode() {}
func (v TupleVal) String() string {
	s := "("
	for i, e := range v.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// ArrayVal is a fixed-length array value.
type ArrayVal struct{ Elems []Value }

func (ArrayVal) valueNode() {}
func (v ArrayVal) String() string {
	s := "["
	for i, e := range v.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// RecordVal is a named-field record value.
type RecordVal struct {
	Type   semtype.PathType
	Fields map[string]Value
}

func (RecordVal) valueNode() {}
func (v RecordVal) String() string { return v.Type.String() + "{...}" }

// EnumVal is a tagged-enum value. Payload is nil for a unit variant.
type EnumVal struct {
	Type    semtype.PathType
	Variant string
	Payload Value
}

func (EnumVal) valueNode() {}
func (v EnumVal) String() string {
	if v.Payload == nil {
		return v.Variant
	}
	return v.Variant + "(" + v.Payload.String() + ")"
}

// ModalVal is a modal value pinned to a named state.
type ModalVal struct {
	Type    semtype.PathType
	State   string
	Payload Value
}

func (ModalVal) valueNode() {}
func (v ModalVal) String() string { return v.Type.String() + "@" + v.State }

// UnionVal is a union value tagged with its selected member type.
type UnionVal struct {
	Member semtype.Type
	Value  Value
}

func (UnionVal) valueNode()      {}
func (v UnionVal) String() string { return v.Value.String() }

// DynamicVal is a `dyn C` existential value.
type DynamicVal struct {
	ClassPath string
	Target    RawPtrVal
	Concrete  semtype.Type
}

func (DynamicVal) valueNode() {}
func (v DynamicVal) String() string { return "dyn " + v.ClassPath }

// StringVal is a string value.
type StringVal struct {
	State semtype.StringState
	Bytes []byte
}

func (StringVal) valueNode()      {}
func (v StringVal) String() string { return string(v.Bytes) }

// BytesVal is a bytes value.
type BytesVal struct {
	State semtype.StringState
	Bytes []byte
}

func (BytesVal) valueNode()      {}
func (v BytesVal) String() string { return fmt.Sprintf("bytes[%d]", len(v.Bytes)) }

// RangeVal is a `lo..hi` / `lo..=hi` value over integers. Lo/Hi are nil
// for an as-yet-unbounded range literal, mirroring `lo?,hi?`.
type RangeVal struct {
	Kind semtype.RangeKind
	Lo   *IntVal
	Hi   *IntVal
}

func (RangeVal) valueNode() {}
func (v RangeVal) String() string {
	sep := ".."
	if v.Kind == semtype.RangeInclusive {
		sep = "..="
	}
	lo, hi := "", ""
	if v.Lo != nil {
		lo = v.Lo.String()
	}
	if v.Hi != nil {
		hi = v.Hi.String()
	}
	return lo + sep + hi
}

// SliceVal is a `{base, range}` view into an array/slice/string/bytes
// place.
type SliceVal struct {
	Base  Addr
	Range RangeVal
}

func (SliceVal) valueNode()      {}
func (v SliceVal) String() string { return fmt.Sprintf("slice@%d[%s]", v.Base, v.Range) }

// ProcRefVal refers to a resolved top-level procedure by its canonical
// path.
type ProcRefVal struct{ Path []string }

func (ProcRefVal) valueNode()      {}
func (v ProcRefVal) String() string { return "fn " + pathString(v.Path) }

// RegionVal is a `Region{handle}` capability value, bound by `region [as
// r]` or returned by `Region::new_scoped`, giving user code a handle to
// operate `Region::{alloc,reset_unchecked,freeze,thaw,free_unchecked,
// high_water_mark}` against.
type RegionVal struct{ Entry *RegionEntry }

func (RegionVal) valueNode()      {}
func (v RegionVal) String() string { return "region" }

// RecordCtorVal refers to a record's constructor as a callable value.
type RecordCtorVal struct{ Path []string }

func (RecordCtorVal) valueNode()      {}
func (v RecordCtorVal) String() string { return "ctor " + pathString(v.Path) }

// ClosureVal is a `func(...) {...}` lambda literal's runtime value: its
// parameter list and body from the AST, plus the enclosing bindings it
// closed over at the point of evaluation (sigma.VisibleBindings' snapshot
// of name -> address, as of the lambda expression's evaluation).
//
// Carrying *ast.Block here (rather than keeping eval's AST entirely above
// sigma) mirrors the same layering ast already has below sigma elsewhere
// in this core (e.g. ast has no sigma dependency, so this adds no cycle);
// eval is where the body actually gets interpreted.
type ClosureVal struct {
	Params   []ast.Param
	Ret      ast.TypeNode
	Body     *ast.Block
	Captured map[string]Addr
}

func (ClosureVal) valueNode()      {}
func (v ClosureVal) String() string { return "closure" }

func pathString(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += "::"
		}
		s += p
	}
	return s
}
