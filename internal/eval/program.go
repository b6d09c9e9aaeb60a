// Package eval is the big-step evaluator: EvalExpr/ExecStmt/ExecBlock walk
// a type-checked AST against a *sigma.Sigma, calling into internal/match
// for pattern matching and internal/builtins for capability operations.
// Grounded on eval_evaluator.go, eval_expressions.go, eval_operations.go,
// and eval_patterns.go's dispatch-by-node-kind big-step structure (a
// switch per AST node kind rather than a visitor), generalised from a
// garbage-collected value representation to an address-indexed,
// ownership-tracked store.
package eval

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/layout"
	"github.com/cursive-lang/corec/internal/semtype"
)

// methodKey identifies one method/transition: its receiver's nominal type
// name, the modal state it applies in ("" for record/enum methods, which
// are not state-scoped), and its name.
type methodKey struct {
	Type  string
	State string
	Name  string
}

// Program indexes a set of parsed modules by declaration name: the table
// eval consults to construct record/enum literals, dispatch methods and
// transitions, and resolve top-level procedure/static references.
type Program struct {
	Procs       map[string]*ast.ProcDecl
	Records     map[string]*ast.RecordDecl
	Enums       map[string]*ast.EnumDecl
	Modals      map[string]*ast.ModalDecl
	Classes     map[string]*ast.ClassDecl
	Statics     map[string]*ast.StaticDecl
	Methods     map[methodKey]*ast.ProcDecl
	Transitions map[methodKey]*ast.TransitionDecl

	// Dependents is the reverse eager-edge graph over Statics: Dependents[D]
	// lists every static whose init expression reads D. A panic during D's
	// init must poison all of D's transitive dependents too (see
	// transitiveDependents), not just D itself.
	Dependents map[string][]string
}

// NewProgram flattens mods into a single lookup table. Module-qualified
// shadowing across modules is not modelled: a later module's declaration
// of the same bare name overwrites an earlier one's, since this reference
// evaluator (unlike the static resolver) only ever runs after name
// resolution has already rejected genuine ambiguity.
func NewProgram(mods []*ast.Module) *Program {
	p := &Program{
		Procs:       map[string]*ast.ProcDecl{},
		Records:     map[string]*ast.RecordDecl{},
		Enums:       map[string]*ast.EnumDecl{},
		Modals:      map[string]*ast.ModalDecl{},
		Classes:     map[string]*ast.ClassDecl{},
		Statics:     map[string]*ast.StaticDecl{},
		Methods:     map[methodKey]*ast.ProcDecl{},
		Transitions: map[methodKey]*ast.TransitionDecl{},
	}
	for _, m := range mods {
		for _, proc := range m.Procs() {
			p.Procs[proc.Name] = proc
		}
		for _, r := range m.Records() {
			p.Records[r.Name] = r
			for _, meth := range r.Methods {
				p.Methods[methodKey{Type: r.Name, Name: meth.Name}] = meth
			}
		}
		for _, en := range m.Enums() {
			p.Enums[en.Name] = en
			for _, meth := range en.Methods {
				p.Methods[methodKey{Type: en.Name, Name: meth.Name}] = meth
			}
		}
		for _, md := range m.Modals() {
			p.Modals[md.Name] = md
			for si := range md.States {
				st := &md.States[si]
				for _, meth := range st.Methods {
					p.Methods[methodKey{Type: md.Name, State: st.Name, Name: meth.Name}] = meth
				}
				for ti := range st.Transitions {
					tr := &st.Transitions[ti]
					p.Transitions[methodKey{Type: md.Name, State: st.Name, Name: tr.Name}] = tr
				}
			}
		}
		for _, c := range m.Classes() {
			p.Classes[c.Name] = c
		}
		for _, st := range m.Statics() {
			p.Statics[resolve(st.Pattern)] = st
		}
	}
	p.Dependents = staticDependents(p)
	return p
}

func resolve(pat ast.Pattern) string {
	if id, ok := pat.(*ast.IdentPattern); ok {
		return id.Name
	}
	return ""
}

// TypeEnv implements semtype.TypeEnv and layout.LayoutEnv over a Program's
// declaration tables, so match.Ctx (and, transitively, layout.EncodeConst)
// can answer "what are T's fields/variants/states" without depending on
// the static checker's own resolver state, eval builds its own minimal
// view straight from the parsed declarations it already has in hand.
type TypeEnv struct {
	Prog *Program
}

func (e *TypeEnv) LookupTypeArity(path []string) (int, bool) {
	name := lastOf(path)
	if r, ok := e.Prog.Records[name]; ok {
		return len(r.TypeParams), true
	}
	if en, ok := e.Prog.Enums[name]; ok {
		return len(en.TypeParams), true
	}
	if md, ok := e.Prog.Modals[name]; ok {
		return len(md.TypeParams), true
	}
	return 0, false
}

func (e *TypeEnv) RecordFields(path []string) ([]layout.FieldSpec, bool) {
	r, ok := e.Prog.Records[lastOf(path)]
	if !ok {
		return nil, false
	}
	return e.lowerFields(r.Fields), true
}

func (e *TypeEnv) EnumVariants(path []string) ([]layout.VariantSpec, bool) {
	en, ok := e.Prog.Enums[lastOf(path)]
	if !ok {
		return nil, false
	}
	return e.lowerVariants(en.Variants), true
}

func (e *TypeEnv) ModalStates(path []string) ([]layout.VariantSpec, bool) {
	md, ok := e.Prog.Modals[lastOf(path)]
	if !ok {
		return nil, false
	}
	out := make([]layout.VariantSpec, len(md.States))
	for i, st := range md.States {
		out[i] = layout.VariantSpec{
			Name:   st.Name,
			Kind:   layout.PayloadRecord,
			Fields: e.lowerFields(st.Fields),
		}
	}
	return out, true
}

func (e *TypeEnv) lowerFields(fields []ast.Field) []layout.FieldSpec {
	out := make([]layout.FieldSpec, len(fields))
	for i, f := range fields {
		t, err := semtype.LowerType(f.Type, e, e.constLen)
		if err != nil {
			t = &semtype.Prim{Kind: semtype.Never}
		}
		out[i] = layout.FieldSpec{Name: f.Name, Type: t}
	}
	return out
}

func (e *TypeEnv) lowerVariants(variants []ast.Variant) []layout.VariantSpec {
	out := make([]layout.VariantSpec, len(variants))
	for i, v := range variants {
		spec := layout.VariantSpec{Name: v.Name}
		if v.Discriminant != nil {
			spec.Discriminant = *v.Discriminant
		} else {
			spec.Discriminant = int64(i)
		}
		switch v.PayloadKind {
		case ast.PayloadTuple:
			spec.Kind = layout.PayloadTuple
			spec.Tuple = make([]semtype.Type, len(v.Tuple))
			for j, tn := range v.Tuple {
				t, err := semtype.LowerType(tn, e, e.constLen)
				if err != nil {
					t = &semtype.Prim{Kind: semtype.Never}
				}
				spec.Tuple[j] = t
			}
		case ast.PayloadRecord:
			spec.Kind = layout.PayloadRecord
			spec.Fields = e.lowerFields(v.Fields)
		default:
			spec.Kind = layout.PayloadUnit
		}
		out[i] = spec
	}
	return out
}

// constLen evaluates array-length expressions that are bare integer
// literals, the only constant form this reference evaluator folds
// without running a full const-evaluator (no user-defined const-fn
// evaluation at layout time).
func (e *TypeEnv) constLen(expr ast.Expr) (int64, bool) {
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Kind != ast.LitInt {
		return 0, false
	}
	clean := stripDigits(lit.Text)
	n := int64(0)
	for _, r := range clean {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int64(r-'0')
	}
	return n, true
}

func stripDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func lastOf(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}
