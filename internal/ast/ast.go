// Package ast defines the immutable syntax trees produced by the parser
// (out of scope) and consumed by every later phase. Nodes
// are plain data: no method does anything beyond traversal or formatting.
//
// Every node embeds Node for a stable Span; the sealed-interface-with-
// marker-method idiom (exprNode()/patternNode()/...) covers full surface
// syntax rather than a desugared ANF-style core.
package ast

import "github.com/cursive-lang/corec/internal/corelib"

// Node is embedded by every AST node to carry its source span.
type Node struct {
	NodeSpan corelib.Span
}

func (n Node) Span() corelib.Span { return n.NodeSpan }

// Visibility controls where a declaration is visible from
type Visibility int

const (
	Private Visibility = iota
	Internal
	Public
)

func (v Visibility) String() string {
	switch v {
	case Private:
		return "private"
	case Internal:
		return "internal"
	case Public:
		return "public"
	default:
		return "unknown"
	}
}

// Mode is a parameter/receiver passing mode.
type Mode int

const (
	ModeAlias Mode = iota // default: pass by alias, no responsibility transfer
	ModeMove              // `move`: transfers responsibility
)
