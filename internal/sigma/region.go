package sigma

import "github.com/cursive-lang/corec/internal/diag"

const diagRegion = diag.LevelRegion

// RegionEntry is one arena stack entry: its own liveness tag (distinct
// from the enclosing scope's), the scope it was pushed within, and
// allocation-count bookkeeping for high_water_mark introspection.
//
// `frame [in r] { ... }` is implemented as another RegionEntry pushed on
// the same stack: its own tag isolates exactly the allocations made
// during the frame, so popping it on frame exit invalidates only those,
// leaving the enclosing region's earlier allocations untouched, the
// same liveness mechanism `region` itself uses, just nested one level
// deeper, rather than a separate arena-cursor "mark" scheme.
type RegionEntry struct {
	Tag        Tag
	ScopeID    int64 // the Tag.ID of the scope this region was pushed in
	allocCount int64
	highWater  int64
	frozen     bool
}

// PushRegion pushes a fresh region entry tagged with a new monotonically
// increasing region ID, nested inside the current scope.
func (s *Sigma) PushRegion() *RegionEntry {
	s.nextTagID++
	r := &RegionEntry{Tag: Tag{Kind: RegionTagKind, ID: s.nextTagID}, ScopeID: s.topScope().Tag.ID}
	s.regions = append(s.regions, r)
	if s.Trace != nil {
		s.Trace.Emit(diagRegion, "push region %d in scope %d", r.Tag.ID, r.ScopeID)
	}
	return r
}

// PopRegion pops the innermost region and marks its tag expired,
// invalidating every alias into it.
func (s *Sigma) PopRegion() *RegionEntry {
	r := s.regions[len(s.regions)-1]
	s.regions = s.regions[:len(s.regions)-1]
	s.expiredTags[r.Tag] = true
	if s.Trace != nil {
		s.Trace.Emit(diagRegion, "pop region %d (%d allocations, high water %d)", r.Tag.ID, r.allocCount, r.highWater)
	}
	return r
}

// TopRegion returns the innermost region entry, or nil if none is open.
func (s *Sigma) TopRegion() *RegionEntry {
	if len(s.regions) == 0 {
		return nil
	}
	return s.regions[len(s.regions)-1]
}

// AllocInRegion allocates v tagged with r's liveness tag and bumps r's
// high-water mark (`Region::high_water_mark`). Reports ok=false without
// allocating if r is frozen.
func (s *Sigma) AllocInRegion(r *RegionEntry, v Value) (Addr, bool) {
	if r.frozen {
		return 0, false
	}
	a := s.AllocAddr(r.Tag, v)
	r.allocCount++
	if r.allocCount > r.highWater {
		r.highWater = r.allocCount
	}
	return a, true
}

// HighWaterMark reports the largest allocation count r has ever reached.
func (r *RegionEntry) HighWaterMark() int64 { return r.highWater }

// Frozen reports whether r currently forbids allocation via Freeze.
func (r *RegionEntry) Frozen() bool { return r.frozen }

// Freeze forbids further allocation from r until Thaw.
func (r *RegionEntry) Freeze() { r.frozen = true }

// Thaw lifts a prior Freeze.
func (r *RegionEntry) Thaw() { r.frozen = false }

// ResetUnchecked rewinds r's allocation-count bookkeeping to zero without
// invalidating any address already allocated from r. "Unchecked" because
// a real bump allocator would let a subsequent alloc reuse those bytes;
// this reference interpreter has no byte buffer to alias, so addresses
// taken before the reset stay safely readable, naming a later alloc's
// result over an earlier one's lifetime is the caller's responsibility,
// not something this evaluator detects.
func (s *Sigma) ResetUnchecked(r *RegionEntry) {
	r.allocCount = 0
}

// FreeUnchecked invalidates r immediately, independent of its position on
// the region stack, bypassing PopRegion's structured LIFO ordering, as
// its name implies. Callers that bypass lexical nesting this way are
// responsible for not leaving the region stack and scope stack out of
// sync; this evaluator does not detect that misuse.
func (s *Sigma) FreeUnchecked(r *RegionEntry) {
	s.expiredTags[r.Tag] = true
}
