package sigma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/layout"
	"github.com/cursive-lang/corec/internal/semtype"
)

type fakeEnv struct {
	records map[string][]layout.FieldSpec
	enums   map[string][]layout.VariantSpec
	modals  map[string][]layout.VariantSpec
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{records: map[string][]layout.FieldSpec{}, enums: map[string][]layout.VariantSpec{}, modals: map[string][]layout.VariantSpec{}}
}

func key(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += "::"
		}
		s += p
	}
	return s
}

func (e *fakeEnv) RecordFields(path []string) ([]layout.FieldSpec, bool) {
	v, ok := e.records[key(path)]
	return v, ok
}
func (e *fakeEnv) EnumVariants(path []string) ([]layout.VariantSpec, bool) {
	v, ok := e.enums[key(path)]
	return v, ok
}
func (e *fakeEnv) ModalStates(path []string) ([]layout.VariantSpec, bool) {
	v, ok := e.modals[key(path)]
	return v, ok
}

func prim(k semtype.PrimKind) semtype.Type { return &semtype.Prim{Kind: k} }

func TestPushPopScopeExpiresAddresses(t *testing.T) {
	s := New(Config{})
	sc := s.PushScope()
	a := s.AllocAddr(sc.Tag, BoolVal{V: true})
	assert.False(t, s.Expired(a))
	s.PopScope()
	assert.True(t, s.Expired(a))
}

func TestBindValAndMovePlace(t *testing.T) {
	s := New(Config{})
	sc := s.topScope()
	a := s.AllocAddr(sc.Tag, IntVal{Kind: semtype.I32, Magnitude: corelib.FromUint64(42)})
	b := s.BindVal("x", a, BindInfo{Movability: Mov, Responsibility: Resp})

	found, ok := s.LookupBinding("x")
	require.True(t, ok)
	assert.Same(t, b, found)

	assert.True(t, s.MovePlace(b, ""))
	assert.False(t, b.Readable(""))
	assert.False(t, s.MovePlace(b, ""), "second move of an already-moved binding must fail")
}

func TestAddrViewProjectsThroughRecordField(t *testing.T) {
	s := New(Config{})
	sc := s.topScope()
	rv := RecordVal{Type: semtype.PathType{Name: "Point"}, Fields: map[string]Value{"x": IntVal{Kind: semtype.I32, Magnitude: corelib.FromUint64(1)}}}
	a := s.AllocAddr(sc.Tag, rv)
	view := s.AllocView(a, AddrView{Parent: a, Kind: ViewField, Field: "x"})

	v, ok := s.ReadAddr(view)
	require.True(t, ok)
	assert.Equal(t, IntVal{Kind: semtype.I32, Magnitude: corelib.FromUint64(1)}, v)

	require.True(t, s.WriteAddr(view, IntVal{Kind: semtype.I32, Magnitude: corelib.FromUint64(9)}))
	updated, _ := s.ReadAddr(a)
	assert.Equal(t, corelib.FromUint64(9), updated.(RecordVal).Fields["x"].(IntVal).Magnitude)
}

func TestRegionPushPopInvalidatesAllocations(t *testing.T) {
	s := New(Config{})
	r := s.PushRegion()
	a, ok := s.AllocInRegion(r, UnitVal{})
	require.True(t, ok)
	assert.Equal(t, int64(1), r.HighWaterMark())
	assert.False(t, s.Expired(a))
	s.PopRegion()
	assert.True(t, s.Expired(a))
}

func TestCombinePanic(t *testing.T) {
	ok := Control{Kind: CtrlNone}
	pan := Control{Kind: CtrlPanic, Panic: &PanicInfo{Reason: DivZero}}

	assert.Equal(t, CtrlNone, CombinePanic(ok, ok).Kind)
	assert.Equal(t, CtrlPanic, CombinePanic(ok, pan).Kind)
	assert.Equal(t, CtrlPanic, CombinePanic(pan, ok).Kind)
	assert.Equal(t, CtrlAbort, CombinePanic(pan, pan).Kind)
}

func TestPanicReasonCodes(t *testing.T) {
	assert.Equal(t, uint32(0x01), ErrorExpr.PanicCode())
	assert.Equal(t, uint32(0x0A), InitPanic.PanicCode())
	assert.Equal(t, uint32(0xFF), Other.PanicCode())
}

func TestValueBitsIntRoundTripsTwosComplement(t *testing.T) {
	env := newFakeEnv()
	b, err := ValueBits(prim(semtype.I32), IntVal{Kind: semtype.I32, Magnitude: corelib.FromUint64(1), Negative: true}, env)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, b)
}

func TestValueBitsModalNicheAcceptsPayloadAndEmptyState(t *testing.T) {
	env := newFakeEnv()
	states := []layout.VariantSpec{
		{Name: "Closed", Discriminant: 0, Kind: layout.PayloadUnit},
		{Name: "Open", Discriminant: 1, Kind: layout.PayloadTuple,
			Tuple: []semtype.Type{&semtype.Ptr{Elem: prim(semtype.U8), Qual: semtype.PtrValid}}},
	}
	env.modals["M"] = states
	modalT := &semtype.PathType{Name: "M"}

	closed := ModalVal{Type: *modalT, State: "Closed"}
	b, err := ValueBits(modalT, closed, env)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 8), b)

	open := ModalVal{Type: *modalT, State: "Open", Payload: PtrVal{State: semtype.PtrValid, Addr: 5}}
	b, err = ValueBits(modalT, open, env)
	require.NoError(t, err)
	assert.NotEqual(t, make([]byte, 8), b)
}

func TestValueBitsModalNicheRejectsPayloadAliasingEmptyState(t *testing.T) {
	env := newFakeEnv()
	states := []layout.VariantSpec{
		{Name: "Closed", Discriminant: 0, Kind: layout.PayloadUnit},
		{Name: "Open", Discriminant: 1, Kind: layout.PayloadTuple,
			Tuple: []semtype.Type{&semtype.Ptr{Elem: prim(semtype.U8), Qual: semtype.PtrValid}}},
	}
	env.modals["M"] = states
	modalT := &semtype.PathType{Name: "M"}

	open := ModalVal{Type: *modalT, State: "Open", Payload: PtrVal{State: semtype.PtrNull, Addr: 0}}
	_, err := ValueBits(modalT, open, env)
	assert.Error(t, err)
}
