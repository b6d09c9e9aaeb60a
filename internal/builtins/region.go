package builtins

import (
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// RegionNewScoped implements `Region::new_scoped`: pushes a fresh region
// entry and returns a handle to it. The evaluator special-cases this by
// name  rather than dispatching it as an ordinary call.
func RegionNewScoped(s *sigma.Sigma) sigma.Value {
	return sigma.RegionVal{Entry: s.PushRegion()}
}

// RegionAlloc implements `Region::alloc(r, v)`, returning a raw pointer
// into r's arena, or ok=false if r is frozen.
func RegionAlloc(s *sigma.Sigma, r sigma.RegionVal, v sigma.Value) (sigma.Value, bool) {
	addr, ok := s.AllocInRegion(r.Entry, v)
	if !ok {
		return nil, false
	}
	return sigma.RawPtrVal{Qual: semtype.RawMut, Addr: addr}, true
}

// RegionResetUnchecked implements `Region::reset_unchecked`.
func RegionResetUnchecked(s *sigma.Sigma, r sigma.RegionVal) {
	s.ResetUnchecked(r.Entry)
}

// RegionFreeze implements `Region::freeze`.
func RegionFreeze(r sigma.RegionVal) { r.Entry.Freeze() }

// RegionThaw implements `Region::thaw`.
func RegionThaw(r sigma.RegionVal) { r.Entry.Thaw() }

// RegionFreeUnchecked implements `Region::free_unchecked`.
func RegionFreeUnchecked(s *sigma.Sigma, r sigma.RegionVal) {
	s.FreeUnchecked(r.Entry)
}

// RegionHighWaterMark implements `Region::high_water_mark`.
func RegionHighWaterMark(r sigma.RegionVal) sigma.Value {
	return sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.FromUint64(uint64(r.Entry.HighWaterMark()))}
}
