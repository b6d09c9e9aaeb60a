package ast

import "github.com/cursive-lang/corec/internal/corelib"

// TypeNode is the base interface for syntactic type expressions. Every
// variant of semtype.Type has a corresponding syntactic form here;
// LowerType (internal/semtype) converts one to the other.
type TypeNode interface {
	Span() corelib.Span
	typeNode()
}

// PrimType is a primitive type name: i8/i16/.../u128, f16/f32/f64, bool,
// char, string-literal marker, (), !, etc.
type PrimType struct {
	Node
	Name string
}

func (t *PrimType) typeNode() {}

// PermType wraps a base type with a permission qualifier.
type PermType struct {
	Node
	Perm PermKind
	Base TypeNode
}

type PermKind int

const (
	PermConst PermKind = iota
	PermUnique
	PermShared
)

func (p PermKind) String() string {
	switch p {
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

func (t *PermType) typeNode() {}

// PtrType is a smart pointer `*T` with permission-carrying semantics
// tracked at the value level (state is a runtime concept, not syntactic,
// but a declared initial/expected state may annotate the type, e.g. in a
// modal field declaration `*File@Read`).
type PtrType struct {
	Node
	Elem  TypeNode
	State string // "" if unconstrained
}

func (t *PtrType) typeNode() {}

// RawPtrQual is the raw-pointer mutability qualifier.
type RawPtrQual int

const (
	RawImm RawPtrQual = iota
	RawMut
)

// RawPtrType is `rawptr[qual, T]`.
type RawPtrType struct {
	Node
	Qual RawPtrQual
	Elem TypeNode
}

func (t *RawPtrType) typeNode() {}

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	Node
	Elems []TypeNode
}

func (t *TupleType) typeNode() {}

// ArrayType is `[T; n]` where n is a constant-evaluable expression.
type ArrayType struct {
	Node
	Elem TypeNode
	Len  Expr
}

func (t *ArrayType) typeNode() {}

// SliceType is `[T]`.
type SliceType struct {
	Node
	Elem TypeNode
}

func (t *SliceType) typeNode() {}

// FuncType is `func(T1, T2) -> R`.
type FuncType struct {
	Node
	Params []TypeNode
	Ret    TypeNode
}

func (t *FuncType) typeNode() {}

// UnionType is `T1 | T2 | ...`.
type UnionType struct {
	Node
	Members []TypeNode
}

func (t *UnionType) typeNode() {}

// RangeType is the builtin `Range` type.
type RangeType struct {
	Node
}

func (t *RangeType) typeNode() {}

// StateKind distinguishes Managed/View for string and bytes types.
type StateKind int

const (
	StateUnspecified StateKind = iota
	StateManaged
	StateView
)

// StringType is `string` or `string@Managed`/`string@View`.
type StringType struct {
	Node
	State StateKind
}

func (t *StringType) typeNode() {}

// BytesType is `bytes` or `bytes@Managed`/`bytes@View`.
type BytesType struct {
	Node
	State StateKind
}

func (t *BytesType) typeNode() {}

// DynamicType is `dyn ClassPath`.
type DynamicType struct {
	Node
	ClassPath []string
}

func (t *DynamicType) typeNode() {}

// RefineType is `T where predicate` (a refinement type).
type RefineType struct {
	Node
	Base      TypeNode
	Predicate Expr
}

func (t *RefineType) typeNode() {}

// OpaqueType names a built-in capability or opaque handle type
// (FileSystem, HeapAllocator, Region, DirIter, ...).
type OpaqueType struct {
	Node
	Path     []string
	TypeArgs []TypeNode
}

func (t *OpaqueType) typeNode() {}

// PathType names a user-defined record/enum/alias, optionally
// parameterised.
type PathType struct {
	Node
	Path     []string
	TypeArgs []TypeNode
}

func (t *PathType) typeNode() {}

// ModalStateType names a modal type pinned to a specific declared state,
// e.g. `File@Read`.
type ModalStateType struct {
	Node
	Path     []string
	State    string
	TypeArgs []TypeNode
}

func (t *ModalStateType) typeNode() {}
