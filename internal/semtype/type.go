// Package semtype is the canonical semantic type representation every
// later phase (pattern typing, layout, evaluation, codegen) shares. It is
// the target of LowerType and carries no syntactic artefacts (spans,
// aliases), those stay in ast.
//
// Type is a closed permission/modal/union sum: a sealed interface with a
// marker method, matching the ast package's idiom rather than an open
// type-variable representation, since these types carry no unification
// variables at this layer.
package semtype

import "fmt"

// Type is the base interface every semantic type form implements.
type Type interface {
	fmt.Stringer
	typeNode()
}

// PrimKind enumerates the primitive scalar types.
type PrimKind int

const (
	I8 PrimKind = iota
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	ISize
	USize
	I128
	U128
	F16
	F32
	F64
	Bool
	Char
	Unit
	Never
)

var primNames = map[PrimKind]string{
	I8: "i8", U8: "u8", I16: "i16", U16: "u16", I32: "i32", U32: "u32",
	I64: "i64", U64: "u64", ISize: "isize", USize: "usize",
	I128: "i128", U128: "u128", F16: "f16", F32: "f32", F64: "f64",
	Bool: "bool", Char: "char", Unit: "()", Never: "!",
}

func (k PrimKind) String() string { return primNames[k] }

// IsInteger reports whether k is one of the fixed-width integer kinds
// (signed or unsigned).
func (k PrimKind) IsInteger() bool {
	switch k {
	case I8, U8, I16, U16, I32, U32, I64, U64, ISize, USize, I128, U128:
		return true
	}
	return false
}

// IsSigned reports whether k is a signed integer kind.
func (k PrimKind) IsSigned() bool {
	switch k {
	case I8, I16, I32, I64, ISize, I128:
		return true
	}
	return false
}

// IsFloat reports whether k is a floating-point kind.
func (k PrimKind) IsFloat() bool {
	return k == F16 || k == F32 || k == F64
}

// Prim is a primitive scalar type.
type Prim struct {
	Kind PrimKind
}

func (t *Prim) typeNode()      {}
func (t *Prim) String() string { return t.Kind.String() }

// PermKind mirrors ast.PermKind at the semantic layer.
type PermKind int

const (
	PermConst PermKind = iota
	PermUnique
	PermShared
)

func (k PermKind) String() string {
	switch k {
	case PermConst:
		return "const"
	case PermUnique:
		return "unique"
	case PermShared:
		return "shared"
	default:
		return "?perm"
	}
}

// Perm wraps Base with an ownership permission
// "StripPerm(T) removes an outer Perm(_, base)".
type Perm struct {
	Kind PermKind
	Base Type
}

func (t *Perm) typeNode()      {}
func (t *Perm) String() string { return t.Kind.String() + " " + t.Base.String() }

// PtrQual is a smart-pointer's static liveness qualifier.
type PtrQual int

const (
	PtrValid PtrQual = iota
	PtrNull
	PtrUnspecified
)

// Ptr is a smart (tag-tracked) pointer to Elem.
type Ptr struct {
	Elem Type
	Qual PtrQual
}

func (t *Ptr) typeNode() {}
func (t *Ptr) String() string {
	return "ptr[" + t.Elem.String() + "]"
}

// RawQual is a raw pointer's mutability qualifier.
type RawQual int

const (
	RawImm RawQual = iota
	RawMut
)

// RawPtr is an unmanaged pointer, bitcopy regardless of Elem.
type RawPtr struct {
	Elem Type
	Qual RawQual
}

func (t *RawPtr) typeNode() {}
func (t *RawPtr) String() string {
	if t.Qual == RawMut {
		return "rawptr[mut, " + t.Elem.String() + "]"
	}
	return "rawptr[" + t.Elem.String() + "]"
}

// Tuple is a fixed-arity product type, including the empty tuple `()`
// (distinct from Prim{Unit}: Unit is the literal `()` value's primitive
// type, Tuple{} is the zero-arity tuple type, they are equated
// for pattern typing of the unit pattern only).
type Tuple struct {
	Elems []Type
}

func (t *Tuple) typeNode() {}
func (t *Tuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// Array is a fixed-length homogeneous sequence.
type Array struct {
	Elem Type
	Len  int64
}

func (t *Array) typeNode() {}
func (t *Array) String() string {
	return fmt.Sprintf("[%s; %d]", t.Elem.String(), t.Len)
}

// Slice is `{ptr, len}` over Elem.
type Slice struct {
	Elem Type
}

func (t *Slice) typeNode()      {}
func (t *Slice) String() string { return "[" + t.Elem.String() + "]" }

// Func is a first-class procedure type. Params carry no names at the
// semantic layer (names are a lexical-binding concern, not a type one).
type Func struct {
	Params []Type
	Ret    Type
}

func (t *Func) typeNode() {}
func (t *Func) String() string {
	s := "fn("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + t.Ret.String()
}

// Union is an unordered, deduplicated sum of member types, the target of
// Subtyping.
type Union struct {
	Members []Type
}

func (t *Union) typeNode() {}
func (t *Union) String() string {
	s := ""
	for i, m := range t.Members {
		if i > 0 {
			s += " | "
		}
		s += m.String()
	}
	return s
}

// RangeKind distinguishes inclusive/exclusive range values at the type
// layer (the layout is identical; only MatchPattern/bounds logic cares).
type RangeKind int

const (
	RangeExclusive RangeKind = iota
	RangeInclusive
)

// Range is `lo..hi` / `lo..=hi` over an integer Elem.
type Range struct {
	Elem Type
}

func (t *Range) typeNode()      {}
func (t *Range) String() string { return "range[" + t.Elem.String() + "]" }

// StringState distinguishes string/bytes storage states
type StringState int

const (
	StateUnspecified StringState = iota
	StateManaged
	StateView
)

func (s StringState) String() string {
	switch s {
	case StateManaged:
		return "Managed"
	case StateView:
		return "View"
	default:
		return "?"
	}
}

// StringTy is `string@<state>`.
type StringTy struct {
	State StringState
}

func (t *StringTy) typeNode() {}
func (t *StringTy) String() string {
	if t.State == StateUnspecified {
		return "string"
	}
	return "string@" + t.State.String()
}

// BytesTy is `bytes@<state>`.
type BytesTy struct {
	State StringState
}

func (t *BytesTy) typeNode() {}
func (t *BytesTy) String() string {
	if t.State == StateUnspecified {
		return "bytes"
	}
	return "bytes@" + t.State.String()
}

// Dynamic is `dyn C`, a `{data, vtable}` capability-class existential.
type Dynamic struct {
	Class string
}

func (t *Dynamic) typeNode()      {}
func (t *Dynamic) String() string { return "dyn " + t.Class }

// Refine is a refinement type `T where pred`, carried opaquely at this
// layer; the evaluator does not re-check refinements at runtime (the
// predicate is a static-analysis artefact upstream of this package).
type Refine struct {
	Base Type
	Pred string
}

func (t *Refine) typeNode() {}
func (t *Refine) String() string {
	return t.Base.String() + " where " + t.Pred
}

// Opaque is a nominal type with no structural decomposition available at
// this layer: the built-in capability/handle types (FileSystem,
// HeapAllocator, Region, DirIter) and test fixtures.
type Opaque struct {
	Name string
	Args []Type
}

func (t *Opaque) typeNode() {}
func (t *Opaque) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	s := t.Name + "["
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + "]"
}

// PathType is a reference to a user-declared record/enum/modal/class by
// its canonical module-qualified path.
type PathType struct {
	Path []string
	Name string
	Args []Type // lowered generic instantiation arguments, per WF-Apply
}

func (t *PathType) typeNode() {}
func (t *PathType) String() string {
	s := ""
	for _, p := range t.Path {
		s += p + "::"
	}
	s += t.Name
	if len(t.Args) > 0 {
		s += "["
		for i, a := range t.Args {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		s += "]"
	}
	return s
}

// ModalState is a modal type pinned to one specific named state, e.g. the
// type of `File@Read`.
type ModalState struct {
	Modal PathType
	State string
}

func (t *ModalState) typeNode()      {}
func (t *ModalState) String() string { return t.Modal.String() + "@" + t.State }
