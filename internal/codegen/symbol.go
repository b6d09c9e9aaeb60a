package codegen

import "github.com/cursive-lang/corec/internal/corelib"

// MethodSym names a record or enum method: <mangled_record_path>__method_<name>.
func MethodSym(typePath []string, name string) string {
	return corelib.PathSig(typePath) + "__method_" + corelib.Mangle(name)
}

// StateMethodSym names a method declared on modal M's state S, taking a
// receiver of mode R ("alias" or "move").
func StateMethodSym(modalPath []string, state, mode, name string) string {
	return corelib.PathSig(modalPath) + "__state_" + corelib.Mangle(state) +
		"__method_" + corelib.Mangle(mode) + "_" + corelib.Mangle(name)
}

// TransitionSym names a state transition on modal M's state S.
func TransitionSym(modalPath []string, state, name string) string {
	return corelib.PathSig(modalPath) + "__transition_" + corelib.Mangle(state) +
		"_" + corelib.Mangle(name)
}

// BuiltinSym names a runtime interface entry point, e.g.
// BuiltinSym("fs", "open_read") = PathSig(["cursive","runtime","fs","open_read"]).
func BuiltinSym(parts ...string) string {
	path := make([]string, 0, len(parts)+2)
	path = append(path, "cursive", "runtime")
	path = append(path, parts...)
	return corelib.PathSig(path)
}

// ReceiverMode renders a param mode the way StateMethodSym expects it.
func ReceiverMode(isMove bool) string {
	if isMove {
		return "move"
	}
	return "alias"
}
