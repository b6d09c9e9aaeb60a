package sigma

import (
	"bytes"

	"github.com/cursive-lang/corec/internal/diag"
)

// Config bundles the quota limits and initial FS/tracing configuration an
// embedder supplies when constructing a Sigma. There is no config *file*
// format here (the non-goal names config-file parsing, not configuration
// itself), this is a plain Go struct the embedder populates directly.
type Config struct {
	HeapQuota uint64 // 0 = unlimited
	Trace     bool
	InitialFS *FSState // nil = empty filesystem
}

// Sigma is the evaluator's operational-semantics state's
// "Store (σ)": the address-indexed store, subplace views, liveness tags,
// the scope and region stacks, the static-address table, the poison set,
// the panic latch, the FS virtual state, and the stdout/stderr buffers.
type Sigma struct {
	store map[Addr]Value
	views map[Addr]AddrView
	tags  map[Addr]Tag

	nextAddr  Addr
	nextTagID int64

	expiredTags map[Tag]bool

	scopes  []*Scope
	regions []*RegionEntry

	statics map[string]Addr

	poisoned   map[string]bool
	panicLatch *PanicInfo

	FS     *FSState
	Stdout bytes.Buffer
	Stderr bytes.Buffer

	Config Config
	Trace  *diag.Trace

	heapUsed uint64
}

// New constructs an initial σ with an empty store and a single top-level
// scope, ready for a program's static initialisation to run.
func New(cfg Config) *Sigma {
	fs := cfg.InitialFS
	if fs == nil {
		fs = NewFSState()
	}
	s := &Sigma{
		store:       map[Addr]Value{},
		views:       map[Addr]AddrView{},
		tags:        map[Addr]Tag{},
		expiredTags: map[Tag]bool{},
		statics:     map[string]Addr{},
		poisoned:    map[string]bool{},
		FS:          fs,
		Config:      cfg,
		Trace:       diag.NewTrace(nil, cfg.Trace),
	}
	s.PushScope()
	return s
}

// PanicLatch returns the currently latched panic, if any.
func (s *Sigma) PanicLatch() *PanicInfo { return s.panicLatch }

// ClearPanicLatch clears the latch, e.g. after a caught `match`-style
// recovery point, no such recovery mechanism exists today, but the
// latch is exposed read/write for forward compatibility with
// `Control::Abort` reporting at the top level.
func (s *Sigma) ClearPanicLatch() { s.panicLatch = nil }

// BindStatic records addr as the canonical address for a module-level
// static, keyed by its StaticKey.
func (s *Sigma) BindStatic(key StaticKey, addr Addr) {
	s.statics[key.String()] = addr
}

// LookupStatic resolves a previously bound static address.
func (s *Sigma) LookupStatic(key StaticKey) (Addr, bool) {
	a, ok := s.statics[key.String()]
	return a, ok
}

// HeapAlloc charges size bytes against the configured heap quota,
// reporting false (out of memory) if the quota would be exceeded.
func (s *Sigma) HeapAlloc(size uint64) bool {
	if s.Config.HeapQuota > 0 && s.heapUsed+size > s.Config.HeapQuota {
		return false
	}
	s.heapUsed += size
	return true
}

// HeapDealloc credits size bytes back to the heap quota.
func (s *Sigma) HeapDealloc(size uint64) {
	if size > s.heapUsed {
		s.heapUsed = 0
		return
	}
	s.heapUsed -= size
}

// HeapUsed reports current heap usage charged via HeapAlloc/HeapDealloc.
func (s *Sigma) HeapUsed() uint64 { return s.heapUsed }
