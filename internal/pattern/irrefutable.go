package pattern

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/semtype"
)

// IrrefutablePattern reports whether p is guaranteed to match any value
// of type expected: "true iff every ADT decomposition
// is total (records with all fields irrefutable, tuples similarly,
// modals matching the statically known state)." Used to gate `let`
// irrefutability, callers must already have run TypeMatchPattern
// successfully with the same (p, expected) pair.
func IrrefutablePattern(info Info, p ast.Pattern, expected semtype.Type) bool {
	stripped := semtype.StripPerm(expected)
	switch v := p.(type) {
	case *ast.WildcardPattern, *ast.IdentPattern:
		return true

	case *ast.LitPattern:
		return false

	case *ast.TypedPattern:
		// Binds against exactly one union member: refutable unless the
		// union is a singleton, which TypeEquiv would have already
		// collapsed upstream, treated conservatively as refutable.
		return false

	case *ast.TuplePattern:
		tup, ok := stripped.(*semtype.Tuple)
		if !ok || len(tup.Elems) != len(v.Elems) {
			return len(v.Elems) == 0
		}
		for i, sub := range v.Elems {
			if !IrrefutablePattern(info, sub, tup.Elems[i]) {
				return false
			}
		}
		return true

	case *ast.RecordPattern:
		pt, ok := stripped.(*semtype.PathType)
		if !ok {
			return false
		}
		path := fullPath(pt)
		for _, fp := range v.Fields {
			ftype, _, _, ok := info.RecordFieldType(path, fp.Name)
			if !ok {
				return false
			}
			if !IrrefutablePattern(info, fieldSubPattern(fp), ftype) {
				return false
			}
		}
		return true

	case *ast.EnumPattern:
		pt, ok := stripped.(*semtype.PathType)
		if !ok {
			return false
		}
		path := fullPath(pt)
		if info.EnumVariantCount(path) != 1 {
			return false
		}
		kind, tupleTypes, fieldTypes, ok := info.EnumVariantShape(path, v.Variant)
		if !ok {
			return false
		}
		switch kind {
		case ast.PayloadUnit:
			return true
		case ast.PayloadTuple:
			if len(v.Tuple) != len(tupleTypes) {
				return false
			}
			for i, sub := range v.Tuple {
				if !IrrefutablePattern(info, sub, tupleTypes[i]) {
					return false
				}
			}
			return true
		case ast.PayloadRecord:
			byName := make(map[string]semtype.Type, len(fieldTypes))
			for _, f := range fieldTypes {
				byName[f.Name] = f.Type
			}
			for _, fp := range v.Fields {
				ftype, ok := byName[fp.Name]
				if !ok {
					return false
				}
				if !IrrefutablePattern(info, fieldSubPattern(fp), ftype) {
					return false
				}
			}
			return true
		default:
			return false
		}

	case *ast.ModalPattern:
		var path []string
		switch e := stripped.(type) {
		case *semtype.ModalState:
			if e.State != v.State {
				return false
			}
			path = fullPath(&e.Modal)
		case *semtype.PathType:
			if info.ModalStateCount(fullPath(e)) != 1 {
				return false
			}
			path = fullPath(e)
		default:
			return false
		}
		fields, ok := info.ModalStateFields(path, v.State)
		if !ok {
			return false
		}
		byName := make(map[string]semtype.Type, len(fields))
		for _, f := range fields {
			byName[f.Name] = f.Type
		}
		for _, fp := range v.Fields {
			ftype, ok := byName[fp.Name]
			if !ok {
				return false
			}
			if !IrrefutablePattern(info, fieldSubPattern(fp), ftype) {
				return false
			}
		}
		return true

	case *ast.RangePattern:
		return false

	default:
		return false
	}
}
