package eval

import "github.com/cursive-lang/corec/internal/ast"

// staticDependents builds the reverse eager-edge graph over p.Statics:
// for every static S whose init expression reads another static D, the
// returned map records D -> [S, ...]. A panic poisoning D must also
// poison everything staticDependents puts in its transitive closure, so
// a later read of any of them raises InitPanic immediately rather than
// re-running (and re-failing) an init that is already known to be
// unreachable.
//
// Only the expression forms that actually appear in static initialisers
// are walked, including block and if bodies; loops and lambdas are
// treated as opaque.
func staticDependents(p *Program) map[string][]string {
	deps := map[string][]string{}
	for name, decl := range p.Statics {
		refs := map[string]bool{}
		collectStaticRefs(decl.Init, p, refs)
		for r := range refs {
			if r == name {
				continue
			}
			deps[r] = append(deps[r], name)
		}
	}
	return deps
}

func collectStaticRefs(e ast.Expr, p *Program, out map[string]bool) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ast.Ident:
		if _, ok := p.Statics[ex.Name]; ok {
			out[ex.Name] = true
		}
	case *ast.QualifiedIdent:
		if _, ok := p.Statics[ex.Name]; ok {
			out[ex.Name] = true
		}
	case *ast.UnaryExpr:
		collectStaticRefs(ex.Operand, p, out)
	case *ast.BinaryExpr:
		collectStaticRefs(ex.Left, p, out)
		collectStaticRefs(ex.Right, p, out)
	case *ast.CastExpr:
		collectStaticRefs(ex.Value, p, out)
	case *ast.TransmuteExpr:
		collectStaticRefs(ex.Value, p, out)
	case *ast.AddrOfExpr:
		collectStaticRefs(ex.Place, p, out)
	case *ast.DerefExpr:
		collectStaticRefs(ex.Ptr, p, out)
	case *ast.TryExpr:
		collectStaticRefs(ex.Value, p, out)
	case *ast.RecordLit:
		for _, f := range ex.Fields {
			collectStaticRefs(f.Value, p, out)
		}
	case *ast.EnumLit:
		for _, a := range ex.Tuple {
			collectStaticRefs(a, p, out)
		}
		for _, f := range ex.Fields {
			collectStaticRefs(f.Value, p, out)
		}
	case *ast.TupleExpr:
		for _, el := range ex.Elems {
			collectStaticRefs(el, p, out)
		}
	case *ast.ArrayExpr:
		for _, el := range ex.Elems {
			collectStaticRefs(el, p, out)
		}
	case *ast.RangeExpr:
		collectStaticRefs(ex.Lo, p, out)
		collectStaticRefs(ex.Hi, p, out)
	case *ast.IndexExpr:
		collectStaticRefs(ex.Base, p, out)
		collectStaticRefs(ex.Index, p, out)
	case *ast.TupleAccessExpr:
		collectStaticRefs(ex.Base, p, out)
	case *ast.FieldAccessExpr:
		collectStaticRefs(ex.Base, p, out)
	case *ast.IfExpr:
		collectStaticRefs(ex.Cond, p, out)
		collectStaticBlockRefs(ex.Then, p, out)
		collectStaticRefs(ex.Else, p, out)
	case *ast.MatchExpr:
		collectStaticRefs(ex.Scrutinee, p, out)
		for _, arm := range ex.Arms {
			collectStaticRefs(arm.Guard, p, out)
			collectStaticRefs(arm.Body, p, out)
		}
	case *ast.CallExpr:
		collectStaticRefs(ex.Callee, p, out)
		for _, a := range ex.Args {
			collectStaticRefs(a.Value, p, out)
		}
	case *ast.MethodCallExpr:
		collectStaticRefs(ex.Receiver, p, out)
		for _, a := range ex.Args {
			collectStaticRefs(a.Value, p, out)
		}
	case *ast.BlockExpr:
		collectStaticBlockRefs(ex.Block, p, out)
	case *ast.AllocExpr:
		collectStaticRefs(ex.Value, p, out)
	}
}

func collectStaticBlockRefs(b *ast.Block, p *Program, out map[string]bool) {
	if b == nil {
		return
	}
	for _, st := range b.Stmts {
		switch s := st.(type) {
		case *ast.LetStmt:
			collectStaticRefs(s.Init, p, out)
		case *ast.VarStmt:
			collectStaticRefs(s.Init, p, out)
		case *ast.ExprStmt:
			collectStaticRefs(s.Value, p, out)
		case *ast.ReturnStmt:
			collectStaticRefs(s.Value, p, out)
		case *ast.ResultStmt:
			collectStaticRefs(s.Value, p, out)
		}
	}
	collectStaticRefs(b.Result, p, out)
}

// transitiveDependents walks p's reverse eager-edge graph from name
// outward, returning every static (directly or indirectly) whose init
// reads it, the set a panic poisoning name must poison alongside it.
func (p *Program) transitiveDependents(name string) []string {
	seen := map[string]bool{name: true}
	queue := []string{name}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range p.Dependents[cur] {
			if !seen[dep] {
				seen[dep] = true
				out = append(out, dep)
				queue = append(queue, dep)
			}
		}
	}
	return out
}
