package layout

// RecordLayout is a record or tuple's computed field offsets plus its
// overall size/alignment.
type RecordLayout struct {
	Layout
	Fields []FieldLayout
}

// RecordLayoutOf pads each field to its alignment, emits offsets, and
// sets align/size An empty record has size=0, align=1.
func RecordLayoutOf(fields []FieldSpec, env LayoutEnv) (RecordLayout, error) {
	fl, l, err := layoutFields(fields, env)
	if err != nil {
		return RecordLayout{}, err
	}
	return RecordLayout{Layout: l, Fields: fl}, nil
}
