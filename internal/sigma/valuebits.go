package sigma

import (
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/diag"
	"github.com/cursive-lang/corec/internal/layout"
	"github.com/cursive-lang/corec/internal/semtype"
)

// ValueBits serialises a runtime value into the canonical byte layout for
// t: padding is zero, tagged enums/modals/unions write
// the discriminant at offset 0 then the payload at its aligned offset,
// and niche layouts reject a payload encoding that would alias the
// donated empty-state pattern.
func ValueBits(t semtype.Type, v Value, env layout.LayoutEnv) ([]byte, error) {
	l, err := layout.LayoutOf(t, env)
	if err != nil {
		return nil, err
	}
	switch tv := t.(type) {
	case *semtype.Prim:
		return primBits(tv.Kind, v, l.Size)
	case *semtype.Perm:
		return ValueBits(tv.Base, v, env)
	case *semtype.Refine:
		return ValueBits(tv.Base, v, env)
	case *semtype.Ptr:
		return ptrBits(v, l.Size)
	case *semtype.RawPtr:
		return ptrBits(v, l.Size)
	case *semtype.Tuple:
		tup, ok := v.(TupleVal)
		if !ok || len(tup.Elems) != len(tv.Elems) {
			return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "value does not match tuple shape")
		}
		types := make([]layout.FieldSpec, len(tv.Elems))
		for i, e := range tv.Elems {
			types[i] = layout.FieldSpec{Type: e}
		}
		return bitsFields(types, func(i int) Value { return tup.Elems[i] }, env, l.Size)
	case *semtype.Array:
		arr, ok := v.(ArrayVal)
		if !ok {
			return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "value does not match array shape")
		}
		el, err := layout.LayoutOf(tv.Elem, env)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, l.Size)
		for i, e := range arr.Elems {
			b, err := ValueBits(tv.Elem, e, env)
			if err != nil {
				return nil, err
			}
			copy(buf[int64(i)*el.Size:], b)
		}
		return buf, nil
	case *semtype.PathType:
		return nominalBits(tv.Path, tv.Name, v, env, l.Size)
	case *semtype.ModalState:
		return nominalBits(tv.Modal.Path, tv.Modal.Name, v, env, l.Size)
	case *semtype.Union:
		return unionBits(tv.Members, v, env, l.Size)
	default:
		// Heap-backed handles (string/bytes/slice/dynamic/func/proc-ref)
		// have no byte-exact representation in this reference interpreter
		//, their real memory layout is the codegen backend's concern,
		// not the tree-walking evaluator's. A correctly sized zero buffer
		// keeps ValueBits total for callers that read it unconditionally.
		return make([]byte, l.Size), nil
	}
}

func primBits(k semtype.PrimKind, v Value, size int64) ([]byte, error) {
	switch val := v.(type) {
	case BoolVal:
		if val.V {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case CharVal:
		buf := make([]byte, 4)
		c := uint32(val.V)
		buf[0], buf[1], buf[2], buf[3] = byte(c), byte(c>>8), byte(c>>16), byte(c>>24)
		return buf, nil
	case IntVal:
		mag := val.Magnitude
		if val.Negative {
			mag = mag.Not().Add(corelib.FromUint64(1))
		}
		return mag.Bytes(int(size)), nil
	case FloatVal:
		buf := make([]byte, size)
		for i := int64(0); i < size; i++ {
			buf[i] = byte(val.Bits >> (8 * i))
		}
		return buf, nil
	case UnitVal:
		return []byte{}, nil
	default:
		return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "value does not match primitive kind %s", k)
	}
}

func ptrBits(v Value, size int64) ([]byte, error) {
	var addr Addr
	switch val := v.(type) {
	case PtrVal:
		if val.State == semtype.PtrNull {
			return make([]byte, size), nil
		}
		addr = val.Addr
	case RawPtrVal:
		addr = val.Addr
	default:
		return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "value does not match pointer kind")
	}
	buf := make([]byte, size)
	u := uint64(addr)
	for i := int64(0); i < size && i < 8; i++ {
		buf[i] = byte(u >> (8 * i))
	}
	return buf, nil
}

func bitsFields(types []layout.FieldSpec, at func(int) Value, env layout.LayoutEnv, total int64) ([]byte, error) {
	rl, err := layout.RecordLayoutOf(types, env)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, total)
	for i, f := range rl.Fields {
		b, err := ValueBits(f.Type, at(i), env)
		if err != nil {
			return nil, err
		}
		copy(buf[f.Offset:], b)
	}
	return buf, nil
}

func nominalBits(path []string, name string, v Value, env layout.LayoutEnv, total int64) ([]byte, error) {
	full := append(append([]string{}, path...), name)
	if fields, ok := env.RecordFields(full); ok {
		rec, ok := v.(RecordVal)
		if !ok {
			return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "value does not match record %v", full)
		}
		return recordBits(fields, rec, env, total)
	}
	if variants, ok := env.EnumVariants(full); ok {
		en, ok := v.(EnumVal)
		if !ok {
			return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "value does not match enum %v", full)
		}
		return taggedBits(variants, en.Variant, en.Payload, env, total)
	}
	if states, ok := env.ModalStates(full); ok {
		mv, ok := v.(ModalVal)
		if !ok {
			return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "value does not match modal %v", full)
		}
		return modalBits(states, mv.State, mv.Payload, env, total)
	}
	return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "unknown nominal type %v", full)
}

func recordBits(fields []layout.FieldSpec, rec RecordVal, env layout.LayoutEnv, total int64) ([]byte, error) {
	rl, err := layout.RecordLayoutOf(fields, env)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, total)
	for _, f := range rl.Fields {
		b, err := ValueBits(f.Type, rec.Fields[f.Name], env)
		if err != nil {
			return nil, err
		}
		copy(buf[f.Offset:], b)
	}
	return buf, nil
}

func taggedBits(variants []layout.VariantSpec, variant string, payload Value, env layout.LayoutEnv, total int64) ([]byte, error) {
	el, err := layout.EnumLayoutOf(variants, env)
	if err != nil {
		return nil, err
	}
	vl, ok := el.Variants[variant]
	if !ok {
		return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "unknown variant %q", variant)
	}
	buf := make([]byte, total)
	disc := uint64(vl.Discriminant)
	for i := int64(0); i < el.DiscSize; i++ {
		buf[i] = byte(disc >> (8 * i))
	}
	if len(vl.Fields) == 1 && payload != nil {
		fl, err := layout.LayoutOf(vl.Fields[0].Type, env)
		if err != nil {
			return nil, err
		}
		b, err := ValueBits(vl.Fields[0].Type, payload, env)
		if err != nil {
			return nil, err
		}
		copy(buf[el.PayloadOffset+vl.Fields[0].Offset:], b[:fl.Size])
	} else if tup, ok := payload.(TupleVal); ok {
		for i, f := range vl.Fields {
			fl, err := layout.LayoutOf(f.Type, env)
			if err != nil {
				return nil, err
			}
			b, err := ValueBits(f.Type, tup.Elems[i], env)
			if err != nil {
				return nil, err
			}
			copy(buf[el.PayloadOffset+f.Offset:], b[:fl.Size])
		}
	}
	return buf, nil
}

func modalBits(states []layout.VariantSpec, state string, payload Value, env layout.LayoutEnv, total int64) ([]byte, error) {
	ml, err := layout.ModalLayoutOf(states, env)
	if err != nil {
		return nil, err
	}
	if !ml.Niche {
		return taggedBits(states, state, payload, env, total)
	}
	if state == ml.EmptyState {
		return make([]byte, total), nil
	}
	var fieldType semtype.Type
	for _, s := range states {
		if s.Name == ml.PayloadState {
			fieldType = variantPayloadType(s)
		}
	}
	b, err := ValueBits(fieldType, payload, env)
	if err != nil {
		return nil, err
	}
	allZero := true
	for _, byt := range b {
		if byt != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "payload bits alias the modal's empty-state niche pattern")
	}
	return b, nil
}

func unionBits(members []semtype.Type, v Value, env layout.LayoutEnv, total int64) ([]byte, error) {
	uv, ok := v.(UnionVal)
	if !ok {
		return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "value does not match union shape")
	}
	ul, err := layout.UnionLayoutOf(members, env)
	if err != nil {
		return nil, err
	}
	if ul.Niche {
		return ValueBits(members[ul.NicheIndex], uv.Value, env)
	}
	variants := make([]layout.VariantSpec, len(members))
	idx := -1
	for i, m := range members {
		variants[i] = layout.VariantSpec{Name: memberNameSigma(i), Discriminant: int64(i), Kind: layout.PayloadTuple, Tuple: []semtype.Type{m}}
		if semtype.TypeEquiv(m, uv.Member) {
			idx = i
		}
	}
	if idx < 0 {
		return nil, diag.Errorf(diag.EncodeConstRange, diag.Span{}, "union value's member type not found among declared members")
	}
	return taggedBits(variants, memberNameSigma(idx), uv.Value, env, total)
}

func memberNameSigma(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return "member_" + string(digits[i])
	}
	s := ""
	for n := i; n > 0; n /= 10 {
		s = string(digits[n%10]) + s
	}
	return "member_" + s
}

func variantPayloadType(s layout.VariantSpec) semtype.Type {
	switch s.Kind {
	case layout.PayloadTuple:
		if len(s.Tuple) > 0 {
			return s.Tuple[0]
		}
	case layout.PayloadRecord:
		if len(s.Fields) > 0 {
			return s.Fields[0].Type
		}
	}
	return nil
}
