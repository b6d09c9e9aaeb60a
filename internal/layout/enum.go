package layout

// VariantLayout is one enum variant's computed discriminant value and
// payload field offsets (offsets are relative to the payload's own start,
// not the enum's base, EnumLayout.PayloadOffset gives that base).
type VariantLayout struct {
	Name         string
	Discriminant int64
	Fields       []FieldLayout
}

// EnumLayout is a tagged enum's full computed layout
// "No niche optimisation is attempted for enums in this spec."
type EnumLayout struct {
	Layout
	DiscSize      int64
	PayloadOffset int64
	Variants      map[string]VariantLayout
}

// EnumLayoutOf computes the discriminant width (the smallest unsigned
// integer type covering every declared discriminant), the padded
// max-over-variants payload, and the combined `{disc | pad | payload}`
// layout aligned to max(disc_align, payload_align).
func EnumLayoutOf(variants []VariantSpec, env LayoutEnv) (EnumLayout, error) {
	discSize, discAlign := discriminantWidth(variants)

	var payloadSize, payloadAlign int64 = 0, 1
	variantFields := make(map[string][]FieldLayout, len(variants))
	for _, v := range variants {
		fl, l, err := layoutFields(variantFieldSpecs(v), env)
		if err != nil {
			return EnumLayout{}, err
		}
		if l.Size > payloadSize {
			payloadSize = l.Size
		}
		if l.Align > payloadAlign {
			payloadAlign = l.Align
		}
		variantFields[v.Name] = fl
	}

	overallAlign := discAlign
	if payloadAlign > overallAlign {
		overallAlign = payloadAlign
	}
	payloadOffset := pad(discSize, payloadAlign)
	total := pad(payloadOffset+payloadSize, overallAlign)

	out := make(map[string]VariantLayout, len(variants))
	for _, v := range variants {
		out[v.Name] = VariantLayout{Name: v.Name, Discriminant: v.Discriminant, Fields: variantFields[v.Name]}
	}

	return EnumLayout{
		Layout:        Layout{Size: total, Align: overallAlign},
		DiscSize:      discSize,
		PayloadOffset: payloadOffset,
		Variants:      out,
	}, nil
}

func variantFieldSpecs(v VariantSpec) []FieldSpec {
	switch v.Kind {
	case PayloadTuple:
		out := make([]FieldSpec, len(v.Tuple))
		for i, t := range v.Tuple {
			out[i] = FieldSpec{Type: t}
		}
		return out
	case PayloadRecord:
		return v.Fields
	default:
		return nil
	}
}

// discriminantWidth returns the smallest unsigned-integer (size, align)
// pair covering every declared discriminant value (EnumDiscriminants).
func discriminantWidth(variants []VariantSpec) (size, align int64) {
	var max int64
	for _, v := range variants {
		if v.Discriminant > max {
			max = v.Discriminant
		}
	}
	switch {
	case max < 1<<8:
		return 1, 1
	case max < 1<<16:
		return 2, 2
	case max < 1<<32:
		return 4, 4
	default:
		return 8, 8
	}
}
