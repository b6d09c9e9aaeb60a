package sigma

import "github.com/cursive-lang/corec/internal/diag"

// PanicReason enumerates the evaluation panic causes.
type PanicReason int

const (
	ErrorExpr PanicReason = iota
	ErrorStmt
	DivZero
	Overflow
	Shift
	Bounds
	Cast
	NullDeref
	ExpiredDeref
	InitPanic
	Other
)

// PanicCode maps a PanicReason to its wire code: `0x01-0x0A` for the
// named reasons in declaration order, `0xFF` for Other.
func (r PanicReason) PanicCode() uint32 {
	if r == Other {
		return 0xFF
	}
	return uint32(r) + 1
}

// DiagCode maps a PanicReason to its diag.Code, mirroring PanicCode 1:1
// (see diag.codes.go's EVAL001-EVAL011 block).
func (r PanicReason) DiagCode() diag.Code {
	switch r {
	case ErrorExpr:
		return diag.EvalErrorExpr
	case ErrorStmt:
		return diag.EvalErrorStmt
	case DivZero:
		return diag.EvalDivZero
	case Overflow:
		return diag.EvalOverflow
	case Shift:
		return diag.EvalShift
	case Bounds:
		return diag.EvalBounds
	case Cast:
		return diag.EvalCast
	case NullDeref:
		return diag.EvalNullDeref
	case ExpiredDeref:
		return diag.EvalExpiredDeref
	case InitPanic:
		return diag.EvalInitPanic
	default:
		return diag.EvalOther
	}
}

// PanicInfo is a latched panic: its reason, and for Other/InitPanic an
// optional free-form detail string for assert-style panics and poisoned
// module paths.
type PanicInfo struct {
	Reason PanicReason
	Detail string
}

// ControlKind discriminates an evaluation step's abrupt-return outcome.
type ControlKind int

const (
	CtrlNone ControlKind = iota
	CtrlReturn
	CtrlBreak
	CtrlContinue
	CtrlResult
	CtrlPanic
	CtrlAbort
)

// Control is the outcome of evaluating a statement/block: either normal
// completion (CtrlNone) or one of the abrupt escapes (return/break/
// continue/result/panic/abort).
type Control struct {
	Kind  ControlKind
	Value Value // optional payload for Return/Break/Result
	Panic *PanicInfo
}

// CombinePanic implements the cleanup-combination rule: `Ok+Ok=Ok`,
// `Ok+Panic=Panic`, `Panic+Panic=Abort`.
func CombinePanic(a, b Control) Control {
	aPanics := a.Kind == CtrlPanic || a.Kind == CtrlAbort
	bPanics := b.Kind == CtrlPanic || b.Kind == CtrlAbort
	switch {
	case !aPanics && !bPanics:
		return a
	case aPanics && !bPanics:
		return a
	case !aPanics && bPanics:
		return b
	default:
		return Control{Kind: CtrlAbort}
	}
}

// Raise latches a panic on σ and returns the corresponding Control.
func (s *Sigma) Raise(reason PanicReason, detail string) Control {
	info := &PanicInfo{Reason: reason, Detail: detail}
	s.panicLatch = info
	if s.Trace != nil {
		s.Trace.Emit(diag.LevelPanic, "%s: %s", reason.DiagCode(), detail)
	}
	return Control{Kind: CtrlPanic, Panic: info}
}

// Poison marks every module in paths as poisoned (a transitive
// init_eager_edges closure the evaluator computes upstream of sigma).
func (s *Sigma) Poison(paths []string) {
	for _, p := range paths {
		s.poisoned[p] = true
	}
}

// Poisoned reports whether modulePath (its canonical "::"-joined form)
// was marked poisoned by a prior init panic.
func (s *Sigma) Poisoned(modulePath string) bool {
	return s.poisoned[modulePath]
}
