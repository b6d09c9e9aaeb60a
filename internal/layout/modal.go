package layout

// ModalLayout is a modal type's computed layout: either niche-optimised
// (Niche true, no discriminant byte) or tagged (same shape as an
// EnumLayout, one "variant" per state).
type ModalLayout struct {
	Layout
	Niche    bool
	// NicheFieldOffset is the payload offset of the single niche-bearing
	// field, valid only when Niche is true.
	NicheFieldOffset int64
	PayloadState     string // the one state with payload, valid when Niche
	EmptyState       string // the one empty state, valid when Niche

	Tagged *EnumLayout // set iff !Niche
}

// ModalLayoutOf computes a modal type's layout, applying the niche rule
// when it is satisfied and falling back to tagged layout (identical in
// shape to EnumLayoutOf) otherwise.
//
// Niche layout applies when: (i) exactly one state has payload, (ii) that
// payload is a single niche-bearing field, and (iii) every other state is
// empty with a combined count of at most NicheCount(field_type) = 1, in
// practice this means exactly one payload state and exactly one empty
// state.
func ModalLayoutOf(states []VariantSpec, env LayoutEnv) (ModalLayout, error) {
	var payloadStates, emptyStates []VariantSpec
	for _, s := range states {
		if len(variantFieldSpecs(s)) == 0 {
			emptyStates = append(emptyStates, s)
		} else {
			payloadStates = append(payloadStates, s)
		}
	}

	if len(payloadStates) == 1 && len(emptyStates) == 1 {
		fields := variantFieldSpecs(payloadStates[0])
		if len(fields) == 1 && isNicheBearing(fields[0].Type) {
			fl, err := LayoutOf(fields[0].Type, env)
			if err != nil {
				return ModalLayout{}, err
			}
			return ModalLayout{
				Layout:           Layout{Size: fl.Size, Align: fl.Align},
				Niche:            true,
				NicheFieldOffset: 0,
				PayloadState:     payloadStates[0].Name,
				EmptyState:       emptyStates[0].Name,
			}, nil
		}
	}

	el, err := EnumLayoutOf(states, env)
	if err != nil {
		return ModalLayout{}, err
	}
	return ModalLayout{Layout: el.Layout, Tagged: &el}, nil
}
