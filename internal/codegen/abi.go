package codegen

import "github.com/cursive-lang/corec/internal/layout"

// kByValMax is the largest size (inclusive) a value can have and still
// cross a call boundary by value rather than through a hidden pointer.
const kByValMax = 16

// ABIClass is how one value crosses a call boundary.
type ABIClass int

const (
	ByValue ABIClass = iota
	ByRef
	SRet
)

func (c ABIClass) String() string {
	switch c {
	case ByValue:
		return "by_value"
	case ByRef:
		return "by_ref"
	case SRet:
		return "sret"
	default:
		return "unknown"
	}
}

func fitsByValue(l layout.Layout) bool {
	return l.Size <= kByValMax && l.Align <= 8
}

// ParamClass classifies one parameter: by-value iff the caller passes
// ownership (move mode) and the value is small and naturally aligned,
// by-ref otherwise, an aliased parameter is always passed by reference
// regardless of size, since the callee must observe writes through it.
func ParamClass(l layout.Layout, isMove bool) ABIClass {
	if isMove && fitsByValue(l) {
		return ByValue
	}
	return ByRef
}

// RetClass classifies a return value: by-value if small and aligned,
// otherwise a hidden out-pointer (sret) prepended to the parameter list.
func RetClass(l layout.Layout) ABIClass {
	if fitsByValue(l) {
		return ByValue
	}
	return SRet
}

// ParamABI is one classified call parameter.
type ParamABI struct {
	Layout layout.Layout
	Move   bool
	Class  ABIClass
}

// CallABI is the full classification of one call signature.
type CallABI struct {
	Params  []ParamABI
	Ret     ParamABI
	HasSRet bool
}

// ABICall classifies every parameter and the return type of one call
// signature, in declaration order.
func ABICall(paramLayouts []layout.Layout, paramMoves []bool, ret layout.Layout) CallABI {
	params := make([]ParamABI, len(paramLayouts))
	for i, l := range paramLayouts {
		move := paramMoves[i]
		params[i] = ParamABI{Layout: l, Move: move, Class: ParamClass(l, move)}
	}
	retClass := RetClass(ret)
	return CallABI{
		Params:  params,
		Ret:     ParamABI{Layout: ret, Class: retClass},
		HasSRet: retClass == SRet,
	}
}

// PanicRecord is the out-parameter every user-defined procedure receives
// in addition to its declared parameters, mirroring the emitter's
// `rawptr[mut, PanicRecord]` convention.
type PanicRecord struct {
	Panicked bool
	Code     uint32
}

// PanicRecordLayout is PanicRecord's fixed layout: a bool then a u32,
// padded to 4-byte alignment.
var PanicRecordLayout = layout.Layout{Size: 8, Align: 4}

// PanicOutParamName is the out-parameter's name in the emitted signature.
const PanicOutParamName = "__panic"

// EntryPointSkipsPanicParam reports whether a procedure named name is the
// entry point `main`, which does not receive the panic out-parameter. Only
// `main` is recognised; runtime/builtin symbol names are not detected here
// and report false.
func EntryPointSkipsPanicParam(name string) bool {
	return name == "main"
}
