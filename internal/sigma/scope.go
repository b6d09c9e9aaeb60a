package sigma

import "github.com/cursive-lang/corec/internal/diag"

const diagScope = diag.LevelScope

// Scope is one runtime lexical scope: its liveness tag, its bindings in
// declaration order (the order eval.ExecBlock's Resp-drop pass reverses),
// and the deferred closures registered in it, in registration order
// (the order eval.ExecBlock's defer pass reverses).
//
// Defers are opaque closures rather than AST nodes because sigma sits
// below eval in the package graph (see DESIGN.md), eval constructs the
// closure that actually evaluates a deferred block's body.
type Scope struct {
	Tag     Tag
	Names   map[string]*Binding
	Order   []*Binding
	Defers  []func() (Control, error)
}

func (s *Sigma) topScope() *Scope {
	return s.scopes[len(s.scopes)-1]
}

// PushScope appends a fresh scope tagged with a new monotonically
// increasing scope ID.
func (s *Sigma) PushScope() *Scope {
	s.nextTagID++
	sc := &Scope{Tag: Tag{Kind: ScopeTagKind, ID: s.nextTagID}, Names: map[string]*Binding{}}
	s.scopes = append(s.scopes, sc)
	if s.Trace != nil {
		s.Trace.Emit(diagScope, "push scope %d (depth %d)", sc.Tag.ID, len(s.scopes))
	}
	return sc
}

// PopScope pops the innermost scope and marks its tag expired, so every
// address allocated within it (directly, or via a subplace AddrView)
// becomes unreadable through any surviving alias. It returns the popped
// scope so the caller (eval's cleanup pass) can run defers and Resp
// drops in the required order before further evaluation proceeds.
func (s *Sigma) PopScope() *Scope {
	sc := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	s.expiredTags[sc.Tag] = true
	if s.Trace != nil {
		s.Trace.Emit(diagScope, "pop scope %d (%d defers, %d bindings)", sc.Tag.ID, len(sc.Defers), len(sc.Order))
	}
	return sc
}

// DropCandidates returns sc's Resp-owned, not-yet-moved bindings in
// reverse declaration order, the order a scope-exit Drop::drop pass
// runs in. sigma only identifies which bindings are due and in what
// order; dispatching the actual destructor is eval's job (it alone
// knows how to look up and call a `drop` method).
func (sc *Scope) DropCandidates() []*Binding {
	var out []*Binding
	for i := len(sc.Order) - 1; i >= 0; i-- {
		b := sc.Order[i]
		if b.Info.Responsibility == Resp && b.State.Kind != BindMoved {
			out = append(out, b)
		}
	}
	return out
}

// RegisterDefer appends a deferred closure to the innermost scope.
func (s *Sigma) RegisterDefer(fn func() (Control, error)) {
	top := s.topScope()
	top.Defers = append(top.Defers, fn)
}

// VisibleBindings snapshots every name currently reachable from the
// innermost scope outward, keyed by its live address, the capture set
// a `func(...) {...}` lambda literal closes over. Inner scopes shadow
// outer ones of the same name, matching ordinary lexical lookup.
func (s *Sigma) VisibleBindings() map[string]Addr {
	out := map[string]Addr{}
	for _, sc := range s.scopes {
		for name, b := range sc.Names {
			out[name] = b.Addr
		}
	}
	return out
}
