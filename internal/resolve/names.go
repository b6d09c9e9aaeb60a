package resolve

import "github.com/cursive-lang/corec/internal/ast"

// DeclNames returns the names a top-level declaration introduces into its
// module's NameMap. Most declarations introduce exactly one name; a
// StaticDecl introduces whatever names its pattern binds, in the pattern's
// deterministic left-to-right order (drop-order determinism ties directly
// to this ordering, so PatNames below must agree).
func DeclNames(d ast.Decl) []string {
	switch v := d.(type) {
	case *ast.ProcDecl:
		return []string{v.Name}
	case *ast.RecordDecl:
		return []string{v.Name}
	case *ast.EnumDecl:
		return []string{v.Name}
	case *ast.ModalDecl:
		return []string{v.Name}
	case *ast.ClassDecl:
		return []string{v.Name}
	case *ast.TypeAliasDecl:
		return []string{v.Name}
	case *ast.StaticDecl:
		return PatNames(v.Pattern)
	case *ast.UsingDecl:
		return nil
	default:
		return nil
	}
}

// PatNames returns the identifiers a pattern binds, in deterministic
// left-to-right, depth-first order. This order is load-bearing: it is the
// same order sigma uses to decide drop order for pattern-destructured
// bindings.
func PatNames(p ast.Pattern) []string {
	switch v := p.(type) {
	case *ast.WildcardPattern:
		return nil
	case *ast.IdentPattern:
		return []string{v.Name}
	case *ast.LitPattern:
		return nil
	case *ast.TypedPattern:
		return []string{v.Name}
	case *ast.TuplePattern:
		var out []string
		for _, el := range v.Elems {
			out = append(out, PatNames(el)...)
		}
		return out
	case *ast.RecordPattern:
		var out []string
		for _, f := range v.Fields {
			out = append(out, fieldPatternNames(f)...)
		}
		return out
	case *ast.EnumPattern:
		var out []string
		for _, el := range v.Tuple {
			out = append(out, PatNames(el)...)
		}
		for _, f := range v.Fields {
			out = append(out, fieldPatternNames(f)...)
		}
		return out
	case *ast.ModalPattern:
		var out []string
		for _, f := range v.Fields {
			out = append(out, fieldPatternNames(f)...)
		}
		return out
	case *ast.RangePattern:
		return nil
	default:
		return nil
	}
}

// fieldPatternNames returns the names a single `name = pattern` field
// entry binds: the sub-pattern's names, or (for the `name` shorthand,
// Sub == nil) the field name itself.
func fieldPatternNames(f ast.FieldPattern) []string {
	if f.Sub == nil {
		return []string{f.Name}
	}
	return PatNames(f.Sub)
}
