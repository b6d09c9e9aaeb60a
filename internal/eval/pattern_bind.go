package eval

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/match"
	"github.com/cursive-lang/corec/internal/sigma"
)

// bindPattern matches pat against v and binds every name it captures into
// the current scope with info, in the pattern's deterministic left-to-
// right depth-first order (match.BindEnv.Order), the single
// destructuring path `let`, `var`, `for`, and `match` arms all share, so
// this package carries only one implementation of "how a pattern binds
// names to values" rather than a duplicate per binding site.
func (ev *Evaluator) bindPattern(s *sigma.Sigma, pat ast.Pattern, v sigma.Value, info sigma.BindInfo) (bool, sigma.Control) {
	env, matched, err := match.MatchPattern(ev.MatchCtx, pat, v)
	if err != nil {
		return false, s.Raise(sigma.Other, err.Error())
	}
	if !matched {
		return false, sigma.Control{}
	}
	for _, name := range env.Order {
		s.BindLocal(name, env.Vals[name], info)
	}
	return true, sigma.Control{}
}

// letInfo/varInfo are the default BindInfo assigned to `let`/`var`
// bindings, which (unlike parameters) carry no explicit alias/move mode
// in the surface syntax: both own their value (Resp), and differ only in
// whether rebinding through them is permitted (`var` is Immov so
// PrepareAssign's drop-before-overwrite rule applies; `let` is Mov since
// it is never reassigned, so move-out is the only way its value leaves).
var letInfo = sigma.BindInfo{Movability: sigma.Mov, Responsibility: sigma.Resp}
var varInfo = sigma.BindInfo{Movability: sigma.Immov, Responsibility: sigma.Resp}
