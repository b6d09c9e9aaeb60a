package layout

import (
	"github.com/cursive-lang/corec/internal/semtype"
)

// ValidValue reports whether bits is a valid bit pattern for t:
// bool only 0/1, char only a valid (non-surrogate, <=
// 0x10FFFF) Unicode scalar value, Valid-qualified pointers never
// all-zero, aggregates valid field-by-field, and enum/modal/union values
// valid only when their discriminant (or niche pattern) selects a known
// variant and that variant's payload is itself valid.
func ValidValue(t semtype.Type, bits []byte, env LayoutEnv) (bool, error) {
	switch v := t.(type) {
	case *semtype.Prim:
		return validPrim(v.Kind, bits), nil
	case *semtype.Perm:
		return ValidValue(v.Base, bits, env)
	case *semtype.Refine:
		return ValidValue(v.Base, bits, env)
	case *semtype.Ptr:
		allZero := allZero(bits)
		switch v.Qual {
		case semtype.PtrValid:
			return !allZero, nil
		case semtype.PtrNull:
			return allZero, nil
		default:
			return true, nil
		}
	case *semtype.RawPtr:
		return true, nil
	case *semtype.Tuple:
		types := make([]FieldSpec, len(v.Elems))
		for i, e := range v.Elems {
			types[i] = FieldSpec{Type: e}
		}
		fields, _, err := layoutFields(types, env)
		if err != nil {
			return false, err
		}
		return validFields(fields, bits, env)
	case *semtype.Array:
		el, err := LayoutOf(v.Elem, env)
		if err != nil {
			return false, err
		}
		for i := int64(0); i < v.Len; i++ {
			off := i * el.Size
			ok, err := ValidValue(v.Elem, bits[off:off+el.Size], env)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case *semtype.PathType:
		return validNominal(v.Path, v.Name, bits, env)
	case *semtype.ModalState:
		return validNominal(v.Modal.Path, v.Modal.Name, bits, env)
	case *semtype.Union:
		ul, err := UnionLayoutOf(v.Members, env)
		if err != nil {
			return false, err
		}
		return validUnion(ul, v.Members, bits, env)
	default:
		// Func/Slice/Dynamic/StringTy/BytesTy/Range/Opaque handles are
		// treated as opaque runtime representations: any bit pattern the
		// evaluator itself produced is by construction valid, there being
		// no invalid encoding defined for them.
		return true, nil
	}
}

func validPrim(k semtype.PrimKind, bits []byte) bool {
	switch k {
	case semtype.Bool:
		return len(bits) >= 1 && (bits[0] == 0 || bits[0] == 1)
	case semtype.Char:
		if len(bits) < 4 {
			return false
		}
		v := uint32(bits[0]) | uint32(bits[1])<<8 | uint32(bits[2])<<16 | uint32(bits[3])<<24
		if v > 0x10FFFF {
			return false
		}
		if v >= 0xD800 && v <= 0xDFFF {
			return false
		}
		return true
	default:
		// Every IEEE-754 bit pattern, including every NaN payload, is a
		// valid float value; all other prim kinds (integers, unit, never)
		// have no invalid bit pattern at all.
		return true
	}
}

func allZero(bits []byte) bool {
	for _, b := range bits {
		if b != 0 {
			return false
		}
	}
	return true
}

func validFields(fields []FieldLayout, bits []byte, env LayoutEnv) (bool, error) {
	for _, f := range fields {
		l, err := LayoutOf(f.Type, env)
		if err != nil {
			return false, err
		}
		ok, err := ValidValue(f.Type, bits[f.Offset:f.Offset+l.Size], env)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func validNominal(path []string, name string, bits []byte, env LayoutEnv) (bool, error) {
	full := append(append([]string{}, path...), name)
	if fields, ok := env.RecordFields(full); ok {
		fl, _, err := layoutFields(fields, env)
		if err != nil {
			return false, err
		}
		return validFields(fl, bits, env)
	}
	if variants, ok := env.EnumVariants(full); ok {
		el, err := EnumLayoutOf(variants, env)
		if err != nil {
			return false, err
		}
		return validTaggedVariants(el, bits, env)
	}
	if states, ok := env.ModalStates(full); ok {
		ml, err := ModalLayoutOf(states, env)
		if err != nil {
			return false, err
		}
		return validModal(ml, states, bits, env)
	}
	return false, nil
}

func validTaggedVariants(el EnumLayout, bits []byte, env LayoutEnv) (bool, error) {
	disc := readUint(bits[:el.DiscSize])
	for _, vl := range el.Variants {
		if uint64(vl.Discriminant) != disc {
			continue
		}
		payload := bits[el.PayloadOffset:]
		for _, f := range vl.Fields {
			l, err := LayoutOf(f.Type, env)
			if err != nil {
				return false, err
			}
			ok, err := ValidValue(f.Type, payload[f.Offset:f.Offset+l.Size], env)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
	return false, nil
}

func validModal(ml ModalLayout, states []VariantSpec, bits []byte, env LayoutEnv) (bool, error) {
	if !ml.Niche {
		return validTaggedVariants(*ml.Tagged, bits, env)
	}
	// Niche layout: the bit pattern is either a valid encoding of the
	// payload state's single field, or the donated all-zero (Null)
	// pattern standing for the empty state.
	var payloadField semtype.Type
	for _, s := range states {
		if s.Name == ml.PayloadState {
			fields := variantFieldSpecs(s)
			payloadField = fields[0].Type
			break
		}
	}
	if payloadField == nil {
		return false, nil
	}
	if allZero(bits) {
		return true, nil
	}
	return ValidValue(payloadField, bits, env)
}

func validUnion(ul UnionLayout, members []semtype.Type, bits []byte, env LayoutEnv) (bool, error) {
	if ul.Niche {
		return ValidValue(members[ul.NicheIndex], bits, env)
	}
	return validTaggedVariants(*ul.Tagged, bits, env)
}

func readUint(bits []byte) uint64 {
	var v uint64
	for i, b := range bits {
		v |= uint64(b) << (8 * i)
	}
	return v
}
