package builtins

import (
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// HeapAllocatorWithQuota implements `HeapAllocator::with_quota(u)`: a
// capability value is just the quota number itself. The evaluator keeps
// one σ-wide heap counter (Config.HeapQuota); alloc_raw/dealloc_raw
// charge that counter, and the quota value carried here is not enforced
// separately.
func HeapAllocatorWithQuota(u uint64) sigma.Value {
	return sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.FromUint64(u)}
}

// HeapAllocRaw implements `HeapAllocator::alloc_raw(size)`, charging
// size against σ's heap quota and returning a zeroed raw buffer's
// address, or ok=false on quota exhaustion.
func HeapAllocRaw(s *sigma.Sigma, size uint64) (sigma.Value, bool) {
	if !s.HeapAlloc(size) {
		return nil, false
	}
	buf := make([]byte, size)
	addr := s.AllocHeap(sigma.BytesVal{State: semtype.StateManaged, Bytes: buf})
	return sigma.RawPtrVal{Qual: semtype.RawMut, Addr: addr}, true
}

// HeapDeallocRaw implements `HeapAllocator::dealloc_raw(ptr, size)`,
// crediting size back to the quota and invalidating ptr. Reports
// ok=false if ptr does not name a live heap allocation.
func HeapDeallocRaw(s *sigma.Sigma, ptr sigma.RawPtrVal, size uint64) bool {
	if !s.DeallocAddr(ptr.Addr) {
		return false
	}
	s.HeapDealloc(size)
	return true
}
