// Package builtins implements capability surface:
// string::*/bytes::*, Region::*, FileSystem/File/DirIter, HeapAllocator,
// and System::exit. Every function here is an atomic evaluator step
// (none of them recursively call back into eval), operating directly on
// a *sigma.Sigma's store, heap quota, and virtual filesystem, per the
// architecture eval's own doc comment will describe: built-ins are
// special-cased by fully-qualified name at the call site, not ordinary
// user procedures.
//
// One file per domain: string.go/bytes.go/region.go/heap.go/fs.go/
// system.go, following the capability-as-struct-of-resources pattern σ
// itself already follows.
package builtins

import (
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// allocationErrorType names the nominal AllocationError enum every
// allocating builtin's failure union member resolves to.
var allocationErrorType = &semtype.PathType{Name: "AllocationError"}

// outOfMemory constructs AllocationError::OutOfMemory{size}.
func outOfMemory(size uint64) sigma.Value {
	return sigma.EnumVal{
		Type:    *allocationErrorType,
		Variant: "OutOfMemory",
		Payload: sigma.RecordVal{Fields: map[string]sigma.Value{
			"size": sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.FromUint64(size)},
		}},
	}
}

// wrapAlloc charges size bytes against quota and returns either
// Ok(successType, v) or Err(AllocationError, OutOfMemory{size}): every
// allocating operation either succeeds producing a union-wrapped success
// value or fails with an AllocationError::OutOfMemory{size}. The
// allocating string/bytes constructors call this; append charges
// s.HeapAlloc itself so it can also return the grown value, and
// HeapAllocator::alloc_raw reports quota exhaustion as ok=false instead
// of a union. The non-allocating
// ones (length, is_empty, as_view, char_at, starts_with, ends_with,
// find) cannot exhaust the quota and so return their value directly, see DESIGN.md's Open Question decision on this split.
func wrapAlloc(s *sigma.Sigma, successType semtype.Type, size uint64, v sigma.Value) sigma.Value {
	if !s.HeapAlloc(size) {
		return sigma.UnionVal{Member: allocationErrorType, Value: outOfMemory(size)}
	}
	return sigma.UnionVal{Member: successType, Value: v}
}
