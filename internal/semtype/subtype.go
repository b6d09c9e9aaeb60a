package semtype

// Subtyping implements the subtyping rule: "T <: U iff T is structurally
// equivalent to U or U is a union containing a member equivalent to T.
// Otherwise T ≮: U. Function subtyping is invariant in parameters (no
// variance)." Invariance in parameters falls straight out of TypeEquiv,
// which never treats Func specially beyond structural recursion.
func Subtyping(t, u Type) bool {
	if TypeEquiv(t, u) {
		return true
	}
	if union, ok := u.(*Union); ok {
		for _, m := range union.Members {
			if TypeEquiv(t, m) {
				return true
			}
		}
	}
	return false
}
