package codegen

import "github.com/cursive-lang/corec/internal/semtype"

// CheckIndex is the bounds guard a single-index access lowers to.
func CheckIndex(length, idx int64) bool {
	return idx >= 0 && idx < length
}

// SliceBounds computes a slice's concrete [start, end) bounds against a
// backing length, or reports that no valid bounds exist (the emitter
// lowers a false ok into a Bounds panic).
func SliceBounds(lo, hi *int64, inclusive bool, length int64) (start, end int64, ok bool) {
	start = 0
	if lo != nil {
		start = *lo
	}
	end = length
	if hi != nil {
		end = *hi
		if inclusive {
			end++
		}
	}
	if start < 0 || end > length || start > end {
		return 0, 0, false
	}
	return start, end, true
}

// CheckTransmute is the size-equality guard transmute lowering emits
// ahead of the bitcast; a mismatch lowers to a Cast panic.
func CheckTransmute(srcSize, dstSize int64) bool {
	return srcSize == dstSize
}

// RawDerefAction is what a raw-pointer dereference lowers to, branching
// on the pointer's statically known state (null, expired, or unknown).
type RawDerefAction int

const (
	DerefRead RawDerefAction = iota
	DerefPanicNull
	DerefPanicExpired
)

// LowerRawDeref picks the raw-deref lowering for a statically known
// pointer state. An unknown static state always lowers to a plain read;
// the null/expired checks those states would need happen dynamically at
// evaluation time instead, exactly as sigma.PtrVal/RawPtrVal already do.
func LowerRawDeref(qual semtype.RawQual, knownNull, knownExpired bool) RawDerefAction {
	switch {
	case knownNull:
		return DerefPanicNull
	case knownExpired:
		return DerefPanicExpired
	default:
		return DerefRead
	}
}
