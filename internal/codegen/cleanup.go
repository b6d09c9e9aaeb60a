package codegen

import "github.com/cursive-lang/corec/internal/ast"

// CleanupActionKind distinguishes a registered defer body from a binding
// drop.
type CleanupActionKind int

const (
	CleanupDefer CleanupActionKind = iota
	CleanupDrop
)

// CleanupAction is one unit of scope-exit work the emitter must run ahead
// of a panic or an ordinary block exit.
type CleanupAction struct {
	Kind  CleanupActionKind
	Defer *ast.Block // set when Kind == CleanupDefer
	Name  string     // set when Kind == CleanupDrop: the binding being dropped
}

// ComputeCleanupPlanToFunctionRoot walks the lexical nesting from the
// innermost enclosing block (enclosing[0]) up to the function's top-level
// block (enclosing[len-1]), collecting the defer and drop actions that
// must run if control unwinds at the current point. Order matches the
// evaluator's own scope-exit order: defers LIFO within a block, innermost
// block's actions before outer ones, i.e. enclosing[0]'s defers first in
// reverse declaration order, then enclosing[0]'s Resp-binding drops in
// reverse declaration order, then the same for enclosing[1], and so on.
//
// bindingsOf reports, for one block, the Resp-responsible local bindings
// it introduces in declaration order (the caller supplies this since
// codegen has no resolver state of its own to derive it from).
func ComputeCleanupPlanToFunctionRoot(enclosing []*ast.Block, bindingsOf func(*ast.Block) []string) []CleanupAction {
	var plan []CleanupAction
	for _, b := range enclosing {
		for i := len(b.Stmts) - 1; i >= 0; i-- {
			if d, ok := b.Stmts[i].(*ast.DeferStmt); ok {
				plan = append(plan, CleanupAction{Kind: CleanupDefer, Defer: d.Body})
			}
		}
		names := bindingsOf(b)
		for i := len(names) - 1; i >= 0; i-- {
			plan = append(plan, CleanupAction{Kind: CleanupDrop, Name: names[i]})
		}
	}
	return plan
}

// EmitCleanupOnPanic renders a cleanup plan as the ordered list of symbol
// names the emitter must call before writing the panic record and
// returning: a defer action lowers to a call of its block's own generated
// body function, a drop action lowers to the binding's drop helper symbol
// as reported by dropSymbolOf (or is skipped entirely when dropSymbolOf
// reports none, as for a bitcopy type).
func EmitCleanupOnPanic(plan []CleanupAction, dropSymbolOf func(name string) (string, bool), deferBodySymbol func(*ast.Block) string) []string {
	out := make([]string, 0, len(plan))
	for _, action := range plan {
		switch action.Kind {
		case CleanupDefer:
			out = append(out, deferBodySymbol(action.Defer))
		case CleanupDrop:
			if sym, ok := dropSymbolOf(action.Name); ok {
				out = append(out, sym)
			}
		}
	}
	return out
}
