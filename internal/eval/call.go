package eval

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/diag"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// evalCall evaluates a CallExpr: a record/enum constructor reference, a
// resolved top-level procedure, a namespace-qualified builtin, a local
// closure value, or an indirect call through a stored ProcRefVal/
// ClosureVal.
func (ev *Evaluator) evalCall(s *sigma.Sigma, e *ast.CallExpr) (sigma.Value, sigma.Control) {
	if qi, ok := e.Callee.(*ast.QualifiedIdent); ok && len(qi.Path) == 1 {
		args, ctrl := ev.evalArgs(s, e.Args)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		if v, c, handled := dispatchNamespaceCall(s, qi.Path[0], qi.Name, args); handled {
			return v, c
		}
		if proc, ok := ev.Prog.Procs[qi.Name]; ok {
			return ev.RunProc(s, proc, args)
		}
	}

	if id, ok := e.Callee.(*ast.Ident); ok {
		if proc, ok := ev.Prog.Procs[id.Name]; ok {
			args, ctrl := ev.evalArgs(s, e.Args)
			if ctrl.Kind != sigma.CtrlNone {
				return nil, ctrl
			}
			return ev.RunProc(s, proc, args)
		}
	}

	callee, ctrl := ev.EvalExpr(s, e.Callee)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}
	args, ctrl := ev.evalArgs(s, e.Args)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}
	switch c := callee.(type) {
	case sigma.ProcRefVal:
		proc, ok := ev.Prog.Procs[lastOf(c.Path)]
		if !ok {
			return nil, s.Raise(sigma.Other, "unresolved procedure "+lastOf(c.Path))
		}
		return ev.RunProc(s, proc, args)
	case sigma.ClosureVal:
		return ev.RunClosure(s, c, args)
	case sigma.RecordCtorVal:
		return ev.constructRecordPositional(s, lastOf(c.Path), args)
	default:
		return nil, s.Raise(sigma.Other, "value is not callable")
	}
}

// evalMethodCall evaluates a MethodCallExpr: the receiver expression is
// resolved to a place whenever possible (so mutating builtin capability
// operations can write their grown/updated value back through it), then
// dispatched first against the capability-stdlib builtin tables, falling
// back to a user-declared record/enum method or modal transition.
func (ev *Evaluator) evalMethodCall(s *sigma.Sigma, e *ast.MethodCallExpr) (sigma.Value, sigma.Control) {
	p, ctrl := ev.resolvePlace(s, e.Receiver)
	var recv sigma.Value
	if ctrl.Kind == sigma.CtrlNone {
		recv, ctrl = ev.readPlace(s, p)
	}
	if ctrl.Kind != sigma.CtrlNone {
		recv, ctrl = ev.EvalExpr(s, e.Receiver)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		p = place{}
	}

	args, ctrl := ev.evalArgs(s, e.Args)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}

	if v, c, handled := dispatchBuiltinMethod(s, recv, p.recvPlace(), e.Method, args); handled {
		return v, c
	}

	typeName, state := typeNameOf(recv)
	if tr, ok := ev.Prog.Transitions[methodKey{Type: typeName, State: state, Name: e.Method}]; ok {
		if p.Root != nil {
			s.MovePlace(p.Root, p.Head)
		}
		return ev.RunTransition(s, tr, recv, args)
	}
	if meth, ok := ev.Prog.Methods[methodKey{Type: typeName, State: state, Name: e.Method}]; ok {
		return ev.runMethod(s, meth, recv, args)
	}
	return nil, s.Raise(sigma.Other, "no method "+e.Method+" on "+typeName)
}

// constructRecord evaluates a RecordLit into a RecordVal.
func (ev *Evaluator) constructRecord(s *sigma.Sigma, e *ast.RecordLit) (sigma.Value, sigma.Control) {
	fields := make(map[string]sigma.Value, len(e.Fields))
	for _, fi := range e.Fields {
		v, ctrl := ev.EvalExpr(s, fi.Value)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		fields[fi.Name] = v
	}
	return sigma.RecordVal{Type: semtype.PathType{Path: e.Type[:len(e.Type)-1], Name: lastOf(e.Type)}, Fields: fields}, sigma.Control{}
}

func (ev *Evaluator) constructRecordPositional(s *sigma.Sigma, name string, args []sigma.Value) (sigma.Value, sigma.Control) {
	decl, ok := ev.Prog.Records[name]
	if !ok {
		return nil, s.Raise(sigma.Other, "unknown record "+name)
	}
	fields := make(map[string]sigma.Value, len(decl.Fields))
	for i, f := range decl.Fields {
		if i < len(args) {
			fields[f.Name] = args[i]
		}
	}
	return sigma.RecordVal{Type: semtype.PathType{Name: name}, Fields: fields}, sigma.Control{}
}

// constructEnum evaluates an EnumLit into an EnumVal, following the
// single-field-unwrapped tuple-payload convention internal/match's
// matchTuplePayload already assumes on the read side.
func (ev *Evaluator) constructEnum(s *sigma.Sigma, e *ast.EnumLit) (sigma.Value, sigma.Control) {
	ty := semtype.PathType{Path: e.Type[:len(e.Type)-1], Name: lastOf(e.Type)}
	var payload sigma.Value
	switch {
	case e.Tuple != nil:
		if len(e.Tuple) == 1 {
			v, ctrl := ev.EvalExpr(s, e.Tuple[0])
			if ctrl.Kind != sigma.CtrlNone {
				return nil, ctrl
			}
			payload = v
		} else {
			elems := make([]sigma.Value, len(e.Tuple))
			for i, te := range e.Tuple {
				v, ctrl := ev.EvalExpr(s, te)
				if ctrl.Kind != sigma.CtrlNone {
					return nil, ctrl
				}
				elems[i] = v
			}
			payload = sigma.TupleVal{Elems: elems}
		}
	case e.Fields != nil:
		fields := make(map[string]sigma.Value, len(e.Fields))
		for _, fi := range e.Fields {
			v, ctrl := ev.EvalExpr(s, fi.Value)
			if ctrl.Kind != sigma.CtrlNone {
				return nil, ctrl
			}
			fields[fi.Name] = v
		}
		payload = sigma.RecordVal{Type: ty, Fields: fields}
	}
	return sigma.EnumVal{Type: ty, Variant: e.Variant, Payload: payload}, sigma.Control{}
}

// RunProc calls a top-level procedure with already-evaluated args.
func (ev *Evaluator) RunProc(s *sigma.Sigma, proc *ast.ProcDecl, args []sigma.Value) (sigma.Value, sigma.Control) {
	if s.Trace != nil {
		s.Trace.Emit(diag.LevelCall, "proc %s(%d args)", proc.Name, len(args))
	}
	s.PushScope()
	defer s.PopScope()
	for i, param := range proc.Params {
		if i < len(args) {
			s.BindLocal(param.Name, args[i], paramInfo(param.Mode))
		}
	}
	return ev.execBlockResult(s, proc.Body)
}

// runMethod calls a record/enum/modal-state method: self binds as the
// first implicit parameter.
func (ev *Evaluator) runMethod(s *sigma.Sigma, meth *ast.ProcDecl, self sigma.Value, args []sigma.Value) (sigma.Value, sigma.Control) {
	if s.Trace != nil {
		s.Trace.Emit(diag.LevelCall, "method %s(%d args)", meth.Name, len(args))
	}
	s.PushScope()
	defer s.PopScope()
	s.BindLocal("self", self, sigma.BindInfo{Movability: sigma.Immov, Responsibility: sigma.Alias})
	for i, param := range meth.Params {
		if i < len(args) {
			s.BindLocal(param.Name, args[i], paramInfo(param.Mode))
		}
	}
	return ev.execBlockResult(s, meth.Body)
}

// RunTransition calls a modal transition: self moves in (its binding is
// never reachable again through the caller's place) and the transition's
// result becomes the modal value in its new state.
func (ev *Evaluator) RunTransition(s *sigma.Sigma, tr *ast.TransitionDecl, self sigma.Value, args []sigma.Value) (sigma.Value, sigma.Control) {
	if s.Trace != nil {
		s.Trace.Emit(diag.LevelCall, "transition %s(%d args)", tr.Name, len(args))
	}
	s.PushScope()
	defer s.PopScope()
	s.BindLocal("self", self, sigma.BindInfo{Movability: sigma.Mov, Responsibility: sigma.Resp})
	for i, param := range tr.Params {
		if i < len(args) {
			s.BindLocal(param.Name, args[i], paramInfo(param.Mode))
		}
	}
	return ev.execBlockResult(s, tr.Body)
}

// RunClosure calls a lambda literal's captured body, rebinding its
// capture set alongside its parameters.
func (ev *Evaluator) RunClosure(s *sigma.Sigma, c sigma.ClosureVal, args []sigma.Value) (sigma.Value, sigma.Control) {
	if s.Trace != nil {
		s.Trace.Emit(diag.LevelCall, "closure call (%d args)", len(args))
	}
	s.PushScope()
	defer s.PopScope()
	for name, addr := range c.Captured {
		if v, ok := s.ReadAddr(addr); ok {
			s.BindLocal(name, v, sigma.BindInfo{Movability: sigma.Immov, Responsibility: sigma.Alias})
		}
	}
	for i, param := range c.Params {
		if i < len(args) {
			s.BindLocal(param.Name, args[i], paramInfo(param.Mode))
		}
	}
	return ev.execBlockResult(s, c.Body)
}
