package ast

import "github.com/cursive-lang/corec/internal/corelib"

// Expr is the base interface for all expression forms.
type Expr interface {
	Span() corelib.Span
	exprNode()
}

// LitKind discriminates literal forms.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitChar
	LitString
	LitNull
	LitUnit
)

// Literal is a literal expression. For LitInt, Text holds the raw digit
// text (base prefix and `_` separators intact) and Suffix the optional
// type suffix ("i32", "u8", ...). For LitFloat, Suffix is "f16"/"f32"/"f64"
// or the bare-floating "f", or "" if unsuffixed.
type Literal struct {
	Node
	Kind    LitKind
	Text    string // digits for Int, raw text for Char/String
	Suffix  string
	Base    int // 2, 8, 10, or 16 (LitInt only)
	Bool    bool
	CharVal rune
}

func (e *Literal) exprNode() {}

// Ident is a bare identifier reference.
type Ident struct {
	Node
	Name string
}

func (e *Ident) exprNode() {}

// QualifiedIdent is `module::path::name`.
type QualifiedIdent struct {
	Node
	Path []string
	Name string
}

func (e *QualifiedIdent) exprNode() {}

type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
)

type UnaryExpr struct {
	Node
	Op      UnaryOp
	Operand Expr
}

func (e *UnaryExpr) exprNode() {}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

type BinaryExpr struct {
	Node
	Op          BinaryOp
	Left, Right Expr
}

func (e *BinaryExpr) exprNode() {}

// CastExpr is `expr as T`.
type CastExpr struct {
	Node
	Value Expr
	Type  TypeNode
}

func (e *CastExpr) exprNode() {}

// TransmuteExpr is `transmute<T>(expr)`.
type TransmuteExpr struct {
	Node
	Type  TypeNode
	Value Expr
}

func (e *TransmuteExpr) exprNode() {}

// AddrOfExpr is `&place` (optionally `&unique place` / `&const place`;
// Perm records which when HasPerm is set; HasPerm false means the default
// inferred from context).
type AddrOfExpr struct {
	Node
	Place Expr
	Perm  PermKind
	HasPerm bool
}

func (e *AddrOfExpr) exprNode() {}

// DerefExpr is `*ptr`.
type DerefExpr struct {
	Node
	Ptr Expr
}

func (e *DerefExpr) exprNode() {}

// TryExpr is `expr?`.
type TryExpr struct {
	Node
	Value Expr
}

func (e *TryExpr) exprNode() {}

// FieldInit is one `name: expr` or `name = expr` entry of a record/enum
// literal.
type FieldInit struct {
	Name  string
	Value Expr
}

// RecordLit is `R { f: e, ... }`.
type RecordLit struct {
	Node
	Type   []string
	Fields []FieldInit
}

func (e *RecordLit) exprNode() {}

// EnumLit is `Enum::Variant(...)` or `Enum::Variant { ... }` construction.
type EnumLit struct {
	Node
	Type    []string
	Variant string
	Tuple   []Expr
	Fields  []FieldInit
}

func (e *EnumLit) exprNode() {}

// TupleExpr is `(e1, ..., en)`.
type TupleExpr struct {
	Node
	Elems []Expr
}

func (e *TupleExpr) exprNode() {}

// ArrayExpr is `[e1, ..., en]`.
type ArrayExpr struct {
	Node
	Elems []Expr
}

func (e *ArrayExpr) exprNode() {}

// RangeExpr is `lo..hi` / `lo..=hi`, with either bound optionally absent.
type RangeExpr struct {
	Node
	Lo, Hi    Expr // nil if absent
	Inclusive bool
}

func (e *RangeExpr) exprNode() {}

// IndexExpr is `e[i]` (integer index or range, resolved during type
// checking).
type IndexExpr struct {
	Node
	Base  Expr
	Index Expr
}

func (e *IndexExpr) exprNode() {}

// TupleAccessExpr is `e.N` for a constant tuple index N.
type TupleAccessExpr struct {
	Node
	Base  Expr
	Index int
}

func (e *TupleAccessExpr) exprNode() {}

// FieldAccessExpr is `e.name`.
type FieldAccessExpr struct {
	Node
	Base Expr
	Name string
}

func (e *FieldAccessExpr) exprNode() {}

// IfExpr is `if cond { then } else { else }`.
type IfExpr struct {
	Node
	Cond Expr
	Then *Block
	Else Expr // *Block or *IfExpr, nil if no else branch
}

func (e *IfExpr) exprNode() {}

// MatchArm is one `pattern [if guard] => body` arm.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr // nil if absent
	Body    Expr
}

// MatchExpr is `match scrutinee { arm, ... }`.
type MatchExpr struct {
	Node
	Scrutinee Expr
	Arms      []MatchArm
}

func (e *MatchExpr) exprNode() {}

// ForExpr is `for pattern in source { body }`.
type ForExpr struct {
	Node
	Pattern Pattern
	Source  Expr
	Body    *Block
}

func (e *ForExpr) exprNode() {}

// WhileExpr is `while cond { body }`.
type WhileExpr struct {
	Node
	Cond Expr
	Body *Block
}

func (e *WhileExpr) exprNode() {}

// Arg is one call argument, optionally passed with `move`.
type Arg struct {
	Value Expr
	Move  bool
}

// CallExpr is `f(a1, ..., an)`.
type CallExpr struct {
	Node
	Callee Expr
	Args   []Arg
}

func (e *CallExpr) exprNode() {}

// MethodCallExpr is `recv.m(a1, ..., an)`.
type MethodCallExpr struct {
	Node
	Receiver Expr
	Method   string
	Args     []Arg
	Move     bool // `move recv.m(...)`: receiver responsibility transfers
}

func (e *MethodCallExpr) exprNode() {}

// BlockExpr wraps a block so it can appear in expression position.
type BlockExpr struct {
	Node
	Block *Block
}

func (e *BlockExpr) exprNode() {}

// RegionExpr is `region [as r] { body }`.
type RegionExpr struct {
	Node
	Alias string // "" if absent
	Body  *Block
}

func (e *RegionExpr) exprNode() {}

// FrameExpr is `frame [in r] { body }`.
type FrameExpr struct {
	Node
	Region string // "" if implicit (innermost enclosing region)
	Body   *Block
}

func (e *FrameExpr) exprNode() {}

// AllocExpr is `alloc e [in r]`.
type AllocExpr struct {
	Node
	Value  Expr
	Region string // "" if implicit
}

func (e *AllocExpr) exprNode() {}

// LambdaExpr is an anonymous procedure literal `func(p1, ...) -> R { body }`.
type LambdaExpr struct {
	Node
	Params []Param
	Ret    TypeNode
	Body   *Block
}

func (e *LambdaExpr) exprNode() {}
