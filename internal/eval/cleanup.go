package eval

import (
	"github.com/cursive-lang/corec/internal/diag"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// runDrops dispatches Drop::drop for every candidate in scope, reverse
// declaration order, combining any resulting panics with sigma's
// Ok/Panic/Abort rule. Called after a popped scope's defers have already
// run.
func (ev *Evaluator) runDrops(s *sigma.Sigma, scope *sigma.Scope) sigma.Control {
	ctrl := sigma.Control{}
	for _, b := range scope.DropCandidates() {
		v, ok := s.ReadAddr(b.Addr)
		if !ok {
			continue
		}
		if s.Trace != nil {
			s.Trace.Emit(diag.LevelDrop, "drop %s (scope %d)", b.Name, scope.Tag.ID)
		}
		ctrl = sigma.CombinePanic(ctrl, ev.dropValue(s, v))
		if ctrl.Kind == sigma.CtrlAbort {
			return ctrl
		}
	}
	return ctrl
}

// dropBeforeAssign runs DropOnAssign: an Immov+Resp binding's current
// value is dropped before a new one overwrites it. Only a direct
// assignment to the binding itself is in scope (p.Head == ""); assigning
// through a field or index only replaces part of the value, not the
// whole resource the binding owns.
func (ev *Evaluator) dropBeforeAssign(s *sigma.Sigma, p place) sigma.Control {
	if p.Root == nil || p.Head != "" {
		return sigma.Control{}
	}
	old, needsDrop := s.PrepareAssign(p.Root)
	if !needsDrop {
		return sigma.Control{}
	}
	return ev.dropValue(s, old)
}

// dropValue runs v's destructor: built-in Managed string/bytes storage
// credits its length back to the heap quota, anything else dispatches a
// user-defined `drop` method if its nominal type declares one. Values
// with no drop of either kind are left alone.
func (ev *Evaluator) dropValue(s *sigma.Sigma, v sigma.Value) sigma.Control {
	switch vv := v.(type) {
	case sigma.StringVal:
		if vv.State == semtype.StateManaged {
			s.HeapDealloc(uint64(len(vv.Bytes)))
		}
		return sigma.Control{}
	case sigma.BytesVal:
		if vv.State == semtype.StateManaged {
			s.HeapDealloc(uint64(len(vv.Bytes)))
		}
		return sigma.Control{}
	}
	name, state := typeNameOf(v)
	if name == "" {
		return sigma.Control{}
	}
	meth, ok := ev.Prog.Methods[methodKey{Type: name, State: state, Name: "drop"}]
	if !ok {
		return sigma.Control{}
	}
	_, ctrl := ev.runMethod(s, meth, v, nil)
	return ctrl
}
