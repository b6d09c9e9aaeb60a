package eval

import (
	"math/big"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/match"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// Evaluator bundles the static program table and the lowering contexts
// match/semtype need, so EvalExpr/ExecStmt can run purely as methods
// against a *sigma.Sigma without re-deriving type/layout information on
// every call.
type Evaluator struct {
	Prog     *Program
	TypeEnv  *TypeEnv
	MatchCtx *match.Ctx
}

// NewEvaluator flattens mods into a Program and wires the shared
// TypeEnv/match.Ctx every later dispatch call reuses.
func NewEvaluator(mods []*ast.Module) *Evaluator {
	prog := NewProgram(mods)
	tenv := &TypeEnv{Prog: prog}
	ctx := &match.Ctx{TypeEnv: tenv, ConstLen: tenv.constLen, Layout: tenv}
	return &Evaluator{Prog: prog, TypeEnv: tenv, MatchCtx: ctx}
}

// EvalExpr big-steps e against s, returning either its value (Control
// is CtrlNone) or an abrupt Control (CtrlReturn/Break/Continue/Result/
// Panic/Abort) that the enclosing ExecBlock/loop propagates.
func (ev *Evaluator) EvalExpr(s *sigma.Sigma, e ast.Expr) (sigma.Value, sigma.Control) {
	switch ex := e.(type) {
	case *ast.Literal:
		return evalLiteral(ex)

	case *ast.Ident:
		return ev.evalIdent(s, ex.Name)

	case *ast.QualifiedIdent:
		return ev.evalIdent(s, ex.Name)

	case *ast.UnaryExpr:
		v, ctrl := ev.EvalExpr(s, ex.Operand)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		return EvalUnaryArith(s, ex.Op, v)

	case *ast.BinaryExpr:
		if ex.Op == ast.OpAnd || ex.Op == ast.OpOr {
			return ev.evalShortCircuit(s, ex)
		}
		l, ctrl := ev.EvalExpr(s, ex.Left)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		r, ctrl := ev.EvalExpr(s, ex.Right)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		return EvalBinaryArith(s, ex.Op, l, r)

	case *ast.CastExpr:
		v, ctrl := ev.EvalExpr(s, ex.Value)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		return ev.evalCast(s, v, ex.Type)

	case *ast.TransmuteExpr:
		return ev.EvalExpr(s, ex.Value)

	case *ast.AddrOfExpr:
		p, ctrl := ev.resolvePlace(s, ex.Place)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		return sigma.PtrVal{State: semtype.PtrValid, Addr: p.Addr}, sigma.Control{}

	case *ast.DerefExpr:
		p, ctrl := ev.resolvePlace(s, ex)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		return ev.readPlace(s, p)

	case *ast.TryExpr:
		return ev.evalTry(s, ex)

	case *ast.RecordLit:
		return ev.constructRecord(s, ex)

	case *ast.EnumLit:
		return ev.constructEnum(s, ex)

	case *ast.TupleExpr:
		elems := make([]sigma.Value, len(ex.Elems))
		for i, el := range ex.Elems {
			v, ctrl := ev.EvalExpr(s, el)
			if ctrl.Kind != sigma.CtrlNone {
				return nil, ctrl
			}
			elems[i] = v
		}
		return sigma.TupleVal{Elems: elems}, sigma.Control{}

	case *ast.ArrayExpr:
		elems := make([]sigma.Value, len(ex.Elems))
		for i, el := range ex.Elems {
			v, ctrl := ev.EvalExpr(s, el)
			if ctrl.Kind != sigma.CtrlNone {
				return nil, ctrl
			}
			elems[i] = v
		}
		return sigma.ArrayVal{Elems: elems}, sigma.Control{}

	case *ast.RangeExpr:
		rv := sigma.RangeVal{Kind: semtype.RangeExclusive}
		if ex.Inclusive {
			rv.Kind = semtype.RangeInclusive
		}
		if ex.Lo != nil {
			v, ctrl := ev.EvalExpr(s, ex.Lo)
			if ctrl.Kind != sigma.CtrlNone {
				return nil, ctrl
			}
			iv := v.(sigma.IntVal)
			rv.Lo = &iv
		}
		if ex.Hi != nil {
			v, ctrl := ev.EvalExpr(s, ex.Hi)
			if ctrl.Kind != sigma.CtrlNone {
				return nil, ctrl
			}
			iv := v.(sigma.IntVal)
			rv.Hi = &iv
		}
		return rv, sigma.Control{}

	case *ast.IndexExpr, *ast.TupleAccessExpr, *ast.FieldAccessExpr:
		p, ctrl := ev.resolvePlace(s, ex)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		return ev.readPlace(s, p)

	case *ast.IfExpr:
		c, ctrl := ev.EvalExpr(s, ex.Cond)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		if c.(sigma.BoolVal).V {
			return ev.ExecBlock(s, ex.Then)
		}
		if ex.Else != nil {
			return ev.EvalExpr(s, ex.Else)
		}
		return sigma.UnitVal{}, sigma.Control{}

	case *ast.BlockExpr:
		return ev.ExecBlock(s, ex.Block)

	case *ast.MatchExpr:
		return ev.evalMatch(s, ex)

	case *ast.ForExpr:
		return ev.evalFor(s, ex)

	case *ast.WhileExpr:
		return ev.evalWhile(s, ex)

	case *ast.CallExpr:
		return ev.evalCall(s, ex)

	case *ast.MethodCallExpr:
		return ev.evalMethodCall(s, ex)

	case *ast.RegionExpr:
		return ev.evalRegion(s, ex.Alias, ex.Body)

	case *ast.FrameExpr:
		return ev.evalRegion(s, "", ex.Body)

	case *ast.AllocExpr:
		return ev.evalAlloc(s, ex)

	case *ast.LambdaExpr:
		return sigma.ClosureVal{Params: ex.Params, Ret: ex.Ret, Body: ex.Body, Captured: s.VisibleBindings()}, sigma.Control{}

	default:
		return nil, s.Raise(sigma.Other, "unhandled expression form")
	}
}

func (ev *Evaluator) evalIdent(s *sigma.Sigma, name string) (sigma.Value, sigma.Control) {
	if b, ok := s.LookupBinding(name); ok {
		if !b.Readable("") {
			return nil, s.Raise(sigma.Other, "use of moved value "+name)
		}
		v, _ := s.ReadAddr(b.Addr)
		return v, sigma.Control{}
	}
	if decl, ok := ev.Prog.Statics[name]; ok {
		return ev.loadStatic(s, name, decl)
	}
	if _, ok := ev.Prog.Procs[name]; ok {
		return sigma.ProcRefVal{Path: []string{name}}, sigma.Control{}
	}
	if _, ok := ev.Prog.Records[name]; ok {
		return sigma.RecordCtorVal{Path: []string{name}}, sigma.Control{}
	}
	return nil, s.Raise(sigma.Other, "unbound name "+name)
}

func (ev *Evaluator) loadStatic(s *sigma.Sigma, name string, decl *ast.StaticDecl) (sigma.Value, sigma.Control) {
	key := sigma.StaticKey{Name: name}
	if addr, ok := s.LookupStatic(key); ok {
		v, _ := s.ReadAddr(addr)
		return v, sigma.Control{}
	}
	if s.Poisoned(name) {
		return nil, s.Raise(sigma.InitPanic, name)
	}
	v, ctrl := ev.EvalExpr(s, decl.Init)
	if ctrl.Kind != sigma.CtrlNone {
		s.Poison(append([]string{name}, ev.Prog.transitiveDependents(name)...))
		return nil, ctrl
	}
	addr := s.AllocAddr(sigma.Tag{}, v)
	s.BindStatic(key, addr)
	return v, sigma.Control{}
}

func (ev *Evaluator) evalShortCircuit(s *sigma.Sigma, ex *ast.BinaryExpr) (sigma.Value, sigma.Control) {
	l, ctrl := ev.EvalExpr(s, ex.Left)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}
	lb := l.(sigma.BoolVal).V
	if ex.Op == ast.OpAnd && !lb {
		return sigma.BoolVal{V: false}, sigma.Control{}
	}
	if ex.Op == ast.OpOr && lb {
		return sigma.BoolVal{V: true}, sigma.Control{}
	}
	r, ctrl := ev.EvalExpr(s, ex.Right)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}
	return r, sigma.Control{}
}

func (ev *Evaluator) evalMatch(s *sigma.Sigma, ex *ast.MatchExpr) (sigma.Value, sigma.Control) {
	scrut, ctrl := ev.EvalExpr(s, ex.Scrutinee)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}
	for _, arm := range ex.Arms {
		env, matched, err := match.MatchPattern(ev.MatchCtx, arm.Pattern, scrut)
		if err != nil {
			return nil, s.Raise(sigma.Other, err.Error())
		}
		if !matched {
			continue
		}
		s.PushScope()
		for _, name := range env.Order {
			s.BindLocal(name, env.Vals[name], letInfo)
		}
		if arm.Guard != nil {
			g, ctrl := ev.EvalExpr(s, arm.Guard)
			if ctrl.Kind != sigma.CtrlNone {
				s.PopScope()
				return nil, ctrl
			}
			if !g.(sigma.BoolVal).V {
				s.PopScope()
				continue
			}
		}
		v, ctrl := ev.EvalExpr(s, arm.Body)
		s.PopScope()
		return v, ctrl
	}
	return nil, s.Raise(sigma.Other, "no match arm matched")
}

func (ev *Evaluator) evalFor(s *sigma.Sigma, ex *ast.ForExpr) (sigma.Value, sigma.Control) {
	src, ctrl := ev.EvalExpr(s, ex.Source)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}
	items, ctrl := iterate(s, src)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}
	for _, item := range items {
		s.PushScope()
		matched, ctrl := ev.bindPattern(s, ex.Pattern, item, letInfo)
		if ctrl.Kind != sigma.CtrlNone {
			s.PopScope()
			return nil, ctrl
		}
		if !matched {
			s.PopScope()
			continue
		}
		_, ctrl = ev.ExecBlock(s, ex.Body)
		s.PopScope()
		switch ctrl.Kind {
		case sigma.CtrlBreak:
			return ctrl.Value, sigma.Control{}
		case sigma.CtrlContinue, sigma.CtrlNone:
			continue
		default:
			return nil, ctrl
		}
	}
	return sigma.UnitVal{}, sigma.Control{}
}

func iterate(s *sigma.Sigma, v sigma.Value) ([]sigma.Value, sigma.Control) {
	switch it := v.(type) {
	case sigma.ArrayVal:
		return it.Elems, sigma.Control{}
	case sigma.RangeVal:
		if it.Lo == nil || it.Hi == nil {
			return nil, s.Raise(sigma.Other, "unbounded range is not iterable")
		}
		lo, hi := it.Lo.Magnitude.Lo, it.Hi.Magnitude.Lo
		if it.Kind == semtype.RangeInclusive {
			hi++
		}
		out := make([]sigma.Value, 0, int(hi-lo))
		for i := lo; i < hi; i++ {
			out = append(out, sigma.IntVal{Kind: it.Lo.Kind, Magnitude: corelib.FromUint64(i)})
		}
		return out, sigma.Control{}
	default:
		return nil, s.Raise(sigma.Other, "value is not iterable")
	}
}

func (ev *Evaluator) evalWhile(s *sigma.Sigma, ex *ast.WhileExpr) (sigma.Value, sigma.Control) {
	for {
		c, ctrl := ev.EvalExpr(s, ex.Cond)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		if !c.(sigma.BoolVal).V {
			return sigma.UnitVal{}, sigma.Control{}
		}
		_, ctrl = ev.ExecBlock(s, ex.Body)
		switch ctrl.Kind {
		case sigma.CtrlBreak:
			return ctrl.Value, sigma.Control{}
		case sigma.CtrlContinue, sigma.CtrlNone:
			continue
		default:
			return nil, ctrl
		}
	}
}

// evalTry implements `expr?`: expr must evaluate to a UnionVal. A member
// whose PathType name ends in "Error" propagates via CtrlResult (the
// enclosing procedure's union return carries it onward); any other
// member unwraps to its plain value. This name-suffix heuristic stands
// in for a full two-member-union success/error classification, which
// would need the static checker's resolved union shape threaded through
// here; see DESIGN.md.
func (ev *Evaluator) evalTry(s *sigma.Sigma, ex *ast.TryExpr) (sigma.Value, sigma.Control) {
	v, ctrl := ev.EvalExpr(s, ex.Value)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}
	uv, ok := v.(sigma.UnionVal)
	if !ok {
		return v, sigma.Control{}
	}
	if pt, ok := uv.Member.(*semtype.PathType); ok && isErrorName(pt.Name) {
		return nil, sigma.Control{Kind: sigma.CtrlResult, Value: v}
	}
	return uv.Value, sigma.Control{}
}

func isErrorName(name string) bool {
	return len(name) >= 5 && name[len(name)-5:] == "Error"
}

func (ev *Evaluator) evalRegion(s *sigma.Sigma, alias string, body *ast.Block) (sigma.Value, sigma.Control) {
	r := s.PushRegion()
	defer s.PopRegion()
	if alias != "" {
		s.BindLocal(alias, sigma.RegionVal{Entry: r}, sigma.BindInfo{Movability: sigma.Immov, Responsibility: sigma.Alias})
	}
	return ev.ExecBlock(s, body)
}

func (ev *Evaluator) evalAlloc(s *sigma.Sigma, ex *ast.AllocExpr) (sigma.Value, sigma.Control) {
	v, ctrl := ev.EvalExpr(s, ex.Value)
	if ctrl.Kind != sigma.CtrlNone {
		return nil, ctrl
	}
	r := s.TopRegion()
	if ex.Region != "" {
		if b, ok := s.LookupBinding(ex.Region); ok {
			if rv, ok2 := func() (sigma.RegionVal, bool) {
				val, _ := s.ReadAddr(b.Addr)
				rv, ok := val.(sigma.RegionVal)
				return rv, ok
			}(); ok2 {
				r = rv.Entry
			}
		}
	}
	if r == nil {
		return nil, s.Raise(sigma.Other, "alloc outside any region")
	}
	addr, ok := s.AllocInRegion(r, v)
	if !ok {
		return nil, s.Raise(sigma.Other, "allocation into a frozen region")
	}
	return sigma.PtrVal{State: semtype.PtrValid, Addr: addr}, sigma.Control{}
}

func (ev *Evaluator) evalCast(s *sigma.Sigma, v sigma.Value, ty ast.TypeNode) (sigma.Value, sigma.Control) {
	target, err := semtype.LowerType(ty, ev.TypeEnv, ev.TypeEnv.constLen)
	if err != nil {
		return nil, s.Raise(sigma.Cast, err.Error())
	}
	prim, ok := target.(*semtype.Prim)
	if !ok {
		return v, sigma.Control{}
	}
	switch iv := v.(type) {
	case sigma.IntVal:
		if prim.Kind.IsFloat() {
			f, _ := new(big.Float).SetInt(toBig(iv)).Float64()
			return sigma.FloatFromFloat64(prim.Kind, f), sigma.Control{}
		}
		// `as` truncates rather than panics.
		return fromBigWrapped(toBig(iv), prim.Kind), sigma.Control{}
	case sigma.FloatVal:
		if prim.Kind.IsFloat() {
			return sigma.FloatFromFloat64(prim.Kind, iv.Float64()), sigma.Control{}
		}
		n, _ := big.NewFloat(iv.Float64()).Int(nil)
		return fromBigWrapped(n, prim.Kind), sigma.Control{}
	default:
		return v, sigma.Control{}
	}
}

// execBlockResult runs a procedure/method/closure body, translating a
// Return control into its plain value and leaving every other control
// (panic/abort) to propagate to the caller.
func (ev *Evaluator) execBlockResult(s *sigma.Sigma, b *ast.Block) (sigma.Value, sigma.Control) {
	v, ctrl := ev.ExecBlock(s, b)
	if ctrl.Kind == sigma.CtrlReturn {
		return ctrl.Value, sigma.Control{}
	}
	if ctrl.Kind == sigma.CtrlResult {
		return ctrl.Value, sigma.Control{}
	}
	return v, ctrl
}

// ExecBlock runs b's statements in a fresh scope. On the way out,
// regardless of how the block exited, it runs any registered defers
// (innermost-first) and then drops the scope's surviving Resp-owned
// bindings in reverse declaration order, combining the outcomes per the
// Ok/Panic rule.
func (ev *Evaluator) ExecBlock(s *sigma.Sigma, b *ast.Block) (sigma.Value, sigma.Control) {
	s.PushScope()
	ctrl := sigma.Control{}
	for _, st := range b.Stmts {
		ctrl = ev.ExecStmt(s, st)
		if ctrl.Kind != sigma.CtrlNone {
			break
		}
	}
	var result sigma.Value = sigma.UnitVal{}
	if ctrl.Kind == sigma.CtrlNone && b.Result != nil {
		result, ctrl = ev.EvalExpr(s, b.Result)
	}
	scope := s.PopScope()
	cleanupCtrl := sigma.Control{}
	for i := len(scope.Defers) - 1; i >= 0; i-- {
		c, _ := scope.Defers[i]()
		cleanupCtrl = sigma.CombinePanic(cleanupCtrl, c)
	}
	if cleanupCtrl.Kind != sigma.CtrlAbort {
		cleanupCtrl = sigma.CombinePanic(cleanupCtrl, ev.runDrops(s, scope))
	}
	if cleanupCtrl.Kind == sigma.CtrlPanic || cleanupCtrl.Kind == sigma.CtrlAbort {
		return nil, cleanupCtrl
	}
	return result, ctrl
}

// ExecStmt runs one statement, returning CtrlNone on normal completion or
// the abrupt control it produced/propagated.
func (ev *Evaluator) ExecStmt(s *sigma.Sigma, st ast.Stmt) sigma.Control {
	switch stm := st.(type) {
	case *ast.LetStmt:
		v, ctrl := ev.EvalExpr(s, stm.Init)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		_, ctrl = ev.bindPattern(s, stm.Pattern, v, letInfo)
		return ctrl

	case *ast.VarStmt:
		v, ctrl := ev.EvalExpr(s, stm.Init)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		_, ctrl = ev.bindPattern(s, stm.Pattern, v, varInfo)
		return ctrl

	case *ast.ShadowLetStmt:
		v, ctrl := ev.EvalExpr(s, stm.Init)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		_, ctrl = ev.bindPattern(s, stm.Pattern, v, letInfo)
		return ctrl

	case *ast.ShadowVarStmt:
		v, ctrl := ev.EvalExpr(s, stm.Init)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		_, ctrl = ev.bindPattern(s, stm.Pattern, v, varInfo)
		return ctrl

	case *ast.AssignStmt:
		p, ctrl := ev.resolvePlace(s, stm.Place)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		v, ctrl := ev.EvalExpr(s, stm.Value)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		if dctrl := ev.dropBeforeAssign(s, p); dctrl.Kind != sigma.CtrlNone {
			return dctrl
		}
		s.WriteAddr(p.Addr, v)
		if p.Root != nil {
			p.Root.State = sigma.BindState{Kind: sigma.BindValid}
		}
		return sigma.Control{}

	case *ast.CompoundAssignStmt:
		p, ctrl := ev.resolvePlace(s, stm.Place)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		cur, ctrl := ev.readPlace(s, p)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		rhs, ctrl := ev.EvalExpr(s, stm.Value)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		next, ctrl := EvalBinaryArith(s, stm.Op, cur, rhs)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		if dctrl := ev.dropBeforeAssign(s, p); dctrl.Kind != sigma.CtrlNone {
			return dctrl
		}
		s.WriteAddr(p.Addr, next)
		return sigma.Control{}

	case *ast.ReturnStmt:
		if stm.Value == nil {
			return sigma.Control{Kind: sigma.CtrlReturn, Value: sigma.UnitVal{}}
		}
		v, ctrl := ev.EvalExpr(s, stm.Value)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		return sigma.Control{Kind: sigma.CtrlReturn, Value: v}

	case *ast.ResultStmt:
		v, ctrl := ev.EvalExpr(s, stm.Value)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		return sigma.Control{Kind: sigma.CtrlResult, Value: v}

	case *ast.BreakStmt:
		if stm.Value == nil {
			return sigma.Control{Kind: sigma.CtrlBreak, Value: sigma.UnitVal{}}
		}
		v, ctrl := ev.EvalExpr(s, stm.Value)
		if ctrl.Kind != sigma.CtrlNone {
			return ctrl
		}
		return sigma.Control{Kind: sigma.CtrlBreak, Value: v}

	case *ast.ContinueStmt:
		return sigma.Control{Kind: sigma.CtrlContinue}

	case *ast.ErrorStmt:
		detail := ""
		if stm.Message != nil {
			v, ctrl := ev.EvalExpr(s, stm.Message)
			if ctrl.Kind != sigma.CtrlNone {
				return ctrl
			}
			detail = v.String()
		}
		return s.Raise(sigma.ErrorStmt, detail)

	case *ast.DeferStmt:
		body := stm.Body
		s.RegisterDefer(func() (sigma.Control, error) {
			_, ctrl := ev.ExecBlock(s, body)
			return ctrl, nil
		})
		return sigma.Control{}

	case *ast.ExprStmt:
		_, ctrl := ev.EvalExpr(s, stm.Value)
		return ctrl

	default:
		return s.Raise(sigma.Other, "unhandled statement form")
	}
}
