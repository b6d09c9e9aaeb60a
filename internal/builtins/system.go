package builtins

import "github.com/cursive-lang/corec/internal/sigma"

// SystemExit implements `System::exit(code)`: an immediate, unwinding-
// free process termination, modelled as a Control{Kind: CtrlAbort} that
// the evaluator propagates past every enclosing frame without running
// cleanup, unlike a panic, which does run cleanup on the way out.
func SystemExit(code int32) sigma.Control {
	return sigma.Control{Kind: sigma.CtrlAbort}
}
