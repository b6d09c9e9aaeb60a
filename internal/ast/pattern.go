package ast

import "github.com/cursive-lang/corec/internal/corelib"

// Pattern is the base interface for every surface pattern form.
type Pattern interface {
	Span() corelib.Span
	patternNode()
}

// WildcardPattern is `_`.
type WildcardPattern struct {
	Node
}

func (p *WildcardPattern) patternNode() {}

// IdentPattern binds the whole matched value to Name.
type IdentPattern struct {
	Node
	Name string
}

func (p *IdentPattern) patternNode() {}

// LitPattern matches a literal value.
type LitPattern struct {
	Node
	Lit Expr // a Literal expression
}

func (p *LitPattern) patternNode() {}

// TypedPattern is `x: T`, legal against a union expected type.
type TypedPattern struct {
	Node
	Name string
	Type TypeNode
}

func (p *TypedPattern) patternNode() {}

// TuplePattern is `(p1, ..., pn)`, including the empty tuple pattern `()`.
type TuplePattern struct {
	Node
	Elems []Pattern
}

func (p *TuplePattern) patternNode() {}

// FieldPattern is one `name = pattern` entry of a record/modal pattern. If
// Sub is nil, this is shorthand `name` binding a variable of that name
// (equivalent to `name = name`).
type FieldPattern struct {
	Name string
	Sub  Pattern
}

// RecordPattern is `R { f = p, ... }`.
type RecordPattern struct {
	Node
	Type   []string // path to the record type
	Fields []FieldPattern
	Rest   bool // `..` present: remaining fields unchecked
}

func (p *RecordPattern) patternNode() {}

// EnumPattern is `Enum::Variant(p1, ...)` or `Enum::Variant { f = p, ... }`.
type EnumPattern struct {
	Node
	Type    []string
	Variant string
	Tuple   []Pattern      // non-nil for tuple-shaped payload
	Fields  []FieldPattern // non-nil for record-shaped payload
}

func (p *EnumPattern) patternNode() {}

// ModalPattern is `State { f = p, ... }` matched against a modal value.
type ModalPattern struct {
	Node
	Type   []string // optional; empty path means "infer from context"
	State  string
	Fields []FieldPattern
}

func (p *ModalPattern) patternNode() {}

// RangePattern is `lo..hi` or `lo..=hi` with constant integer endpoints.
type RangePattern struct {
	Node
	Lo        Expr
	Hi        Expr
	Inclusive bool
}

func (p *RangePattern) patternNode() {}
