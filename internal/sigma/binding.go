package sigma

// Movability distinguishes bindings the type system allows to be moved
// from those it does not.
type Movability int

const (
	Mov Movability = iota
	Immov
)

// Responsibility distinguishes a binding that owns its value (must drop
// it) from one that merely aliases another binding's address.
type Responsibility int

const (
	Resp Responsibility = iota
	Alias
)

// BindInfo is a binding's immutable movability/responsibility pair,
// fixed at the point of `let`/`var`/parameter binding.
type BindInfo struct {
	Movability     Movability
	Responsibility Responsibility
}

// BindStateKind discriminates a binding's move status.
type BindStateKind int

const (
	BindValid BindStateKind = iota
	BindPartiallyMoved
	BindMoved
)

// BindState is a binding's current move status. Fields records the
// moved-out field/tuple-index prefixes for BindPartiallyMoved.
type BindState struct {
	Kind   BindStateKind
	Fields map[string]bool
}

// Binding is one name bound in a runtime scope.
type Binding struct {
	Name  string
	Addr  Addr
	Info  BindInfo
	State BindState
}

// BindVal creates a binding for name in the current (innermost) scope,
// recording it in that scope's declaration order for cleanup/drop
// ordering at scope exit.
func (s *Sigma) BindVal(name string, addr Addr, info BindInfo) *Binding {
	b := &Binding{Name: name, Addr: addr, Info: info, State: BindState{Kind: BindValid}}
	top := s.topScope()
	top.Names[name] = b
	top.Order = append(top.Order, b)
	return b
}

// BindLocal allocates v in the innermost scope's storage and binds name
// to it in one step, the common case for `let`/`var`/parameter/pattern
// binding, where the value has no existing place of its own yet.
func (s *Sigma) BindLocal(name string, v Value, info BindInfo) (*Binding, Addr) {
	addr := s.AllocAddr(s.topScope().Tag, v)
	return s.BindVal(name, addr, info), addr
}

// LookupBinding walks the scope stack innermost-first for name.
func (s *Sigma) LookupBinding(name string) (*Binding, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if b, ok := s.scopes[i].Names[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// MovePlace marks b (or, for a sub-place move, one of its field/tuple
// prefixes) as moved. A second move of an already-moved prefix returns
// false, the caller panics with the appropriate evaluation-panic code.
func (s *Sigma) MovePlace(b *Binding, fieldHead string) bool {
	if b.State.Kind == BindMoved {
		return false
	}
	if fieldHead == "" {
		if b.State.Kind == BindPartiallyMoved {
			return false
		}
		b.State = BindState{Kind: BindMoved}
		return true
	}
	if b.State.Fields == nil {
		b.State.Fields = map[string]bool{}
	}
	if b.State.Fields[fieldHead] {
		return false
	}
	b.State.Fields[fieldHead] = true
	b.State.Kind = BindPartiallyMoved
	return true
}

// Readable reports whether b (or its fieldHead prefix, if non-empty) may
// currently be read.
func (b *Binding) Readable(fieldHead string) bool {
	switch b.State.Kind {
	case BindMoved:
		return false
	case BindPartiallyMoved:
		if fieldHead == "" {
			return false
		}
		return !b.State.Fields[fieldHead]
	default:
		return true
	}
}

// PrepareAssign reports whether assigning through b requires a drop of
// its current value first (Immov+Resp bindings trigger DropOnAssign),
// returning the value to drop. Actual `Drop::drop` dispatch is the
// evaluator's responsibility (see DESIGN.md); sigma only identifies when
// it is due.
func (s *Sigma) PrepareAssign(b *Binding) (old Value, needsDrop bool) {
	if b.Info.Movability != Immov || b.Info.Responsibility != Resp {
		return nil, false
	}
	if b.State.Kind == BindMoved {
		return nil, false
	}
	v, _ := s.ReadAddr(b.Addr)
	return v, true
}
