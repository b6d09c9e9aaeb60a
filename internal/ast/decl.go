package ast

import "github.com/cursive-lang/corec/internal/corelib"

// Decl is the base interface for all top-level items.
type Decl interface {
	Span() corelib.Span
	DeclVisibility() Visibility
	declNode()
}

// Param is one procedure/lambda parameter.
type Param struct {
	Name string
	Type TypeNode
	Mode Mode
}

// ProcDecl is a top-level or nested procedure declaration.
type ProcDecl struct {
	Node
	Name       string
	Params     []Param
	Ret        TypeNode
	Effects    []string
	Body       *Block
	Visibility Visibility
}

func (d *ProcDecl) declNode()                    {}
func (d *ProcDecl) DeclVisibility() Visibility    { return d.Visibility }

// Field is one record/state field declaration.
type Field struct {
	Name       string
	Type       TypeNode
	Visibility Visibility
}

// RecordDecl declares a record type and its methods.
type RecordDecl struct {
	Node
	Name       string
	TypeParams []string
	Fields     []Field
	Methods    []*ProcDecl
	Bitcopy    bool // declares `Bitcopy`
	Visibility Visibility
}

func (d *RecordDecl) declNode()                 {}
func (d *RecordDecl) DeclVisibility() Visibility { return d.Visibility }

// VariantPayloadKind discriminates enum variant payload shapes.
type VariantPayloadKind int

const (
	PayloadUnit VariantPayloadKind = iota
	PayloadTuple
	PayloadRecord
)

// Variant is one enum variant declaration.
type Variant struct {
	Name        string
	PayloadKind VariantPayloadKind
	Tuple       []TypeNode
	Fields      []Field
	Discriminant *int64 // explicit discriminant, nil if auto-assigned
}

// EnumDecl declares a tagged-union (sum) type.
type EnumDecl struct {
	Node
	Name       string
	TypeParams []string
	Variants   []Variant
	Methods    []*ProcDecl
	Visibility Visibility
}

func (d *EnumDecl) declNode()                 {}
func (d *EnumDecl) DeclVisibility() Visibility { return d.Visibility }

// TransitionDecl declares a modal state transition: it always moves self
// and returns self in a (possibly different) state.
type TransitionDecl struct {
	Name   string
	Params []Param
	ToState string
	Ret    TypeNode
	Body   *Block
}

// StateDecl is one named state of a modal type.
type StateDecl struct {
	Name        string
	Fields      []Field
	Methods     []*ProcDecl
	Transitions []TransitionDecl
}

// ModalDecl declares a modal type: a nominal type whose field set depends
// on a named, transition-advanceable state.
type ModalDecl struct {
	Node
	Name       string
	TypeParams []string
	States     []StateDecl
	Visibility Visibility
}

func (d *ModalDecl) declNode()                 {}
func (d *ModalDecl) DeclVisibility() Visibility { return d.Visibility }

// MethodSig is an abstract method signature declared by a class.
type MethodSig struct {
	Name   string
	Params []Param
	Ret    TypeNode
}

// ClassDecl declares a capability class (an interface implemented by
// dynamic dispatch values).
type ClassDecl struct {
	Node
	Name       string
	Methods    []MethodSig
	Visibility Visibility
}

func (d *ClassDecl) declNode()                 {}
func (d *ClassDecl) DeclVisibility() Visibility { return d.Visibility }

// TypeAliasDecl is `type Name[params] = T`.
type TypeAliasDecl struct {
	Node
	Name       string
	TypeParams []string
	Type       TypeNode
	Visibility Visibility
}

func (d *TypeAliasDecl) declNode()                 {}
func (d *TypeAliasDecl) DeclVisibility() Visibility { return d.Visibility }

// StaticDecl declares a module-level constant/static binding, whose
// initialiser runs once at module-init time (see sigma's static-init
// poisoning on panic).
type StaticDecl struct {
	Node
	Pattern    Pattern
	Type       TypeNode
	Init       Expr
	Visibility Visibility
}

func (d *StaticDecl) declNode()                 {}
func (d *StaticDecl) DeclVisibility() Visibility { return d.Visibility }

// UsingItem is one `name [as alias]` entry of a `using p::{...}` list.
type UsingItem struct {
	Name  string
	Alias string // "" if no rename
}

// UsingDecl is `using path` / `using path as alias` / `using path::{items}`.
type UsingDecl struct {
	Node
	Path  []string
	Alias string      // "" if not a simple alias form
	List  []UsingItem // nil if not a list form
}

func (d *UsingDecl) declNode()                 {}
func (d *UsingDecl) DeclVisibility() Visibility { return Private }
