package semtype

import (
	"strings"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/diag"
)

// TypeEnv answers the questions LowerType needs about declared nominal
// types without depending on the resolve package directly (that would
// cycle: resolve -> ast, semtype -> ast, resolve, see DESIGN.md for the
// package graph). A caller building this from a *resolve.Resolver just
// looks up the path's Entity and reports its declared type-parameter
// count.
type TypeEnv interface {
	// LookupTypeArity reports the declared type-parameter count for the
	// nominal type named by path, or ok=false if no such type exists.
	LookupTypeArity(path []string) (arity int, ok bool)
}

// ConstLenEval evaluates an array-length expression to a constant
// non-negative integer, or reports that it is not constant-evaluable.
// LowerType does not evaluate expressions itself (that is eval's job);
// the caller supplies this hook "Array lengths must be
// constant-evaluable (ConstLen)".
type ConstLenEval func(e ast.Expr) (int64, bool)

// LowerType converts a syntactic type node to its canonical semantic
// form. LowerType is total except for two checked failure modes: an
// unresolvable nominal name (UnknownTypeName) and a non-constant array
// length (ConstLenNotConst); generic-arity mismatches fail WFApplyArityErr.
func LowerType(syn ast.TypeNode, env TypeEnv, constLen ConstLenEval) (Type, error) {
	switch n := syn.(type) {
	case *ast.PrimType:
		return lowerPrim(n)
	case *ast.PermType:
		base, err := LowerType(n.Base, env, constLen)
		if err != nil {
			return nil, err
		}
		return &Perm{Kind: PermKind(n.Perm), Base: base}, nil
	case *ast.PtrType:
		elem, err := LowerType(n.Elem, env, constLen)
		if err != nil {
			return nil, err
		}
		return &Ptr{Elem: elem, Qual: ptrQualOf(n.State)}, nil
	case *ast.RawPtrType:
		elem, err := LowerType(n.Elem, env, constLen)
		if err != nil {
			return nil, err
		}
		return &RawPtr{Elem: elem, Qual: RawQual(n.Qual)}, nil
	case *ast.TupleType:
		elems := make([]Type, 0, len(n.Elems))
		for _, e := range n.Elems {
			t, err := LowerType(e, env, constLen)
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}
		return &Tuple{Elems: elems}, nil
	case *ast.ArrayType:
		elem, err := LowerType(n.Elem, env, constLen)
		if err != nil {
			return nil, err
		}
		length, ok := constLen(n.Len)
		if !ok {
			return nil, diag.Errorf(diag.ConstLenNotConst, spanOf(n), "array length must be a constant integer expression")
		}
		return &Array{Elem: elem, Len: length}, nil
	case *ast.SliceType:
		elem, err := LowerType(n.Elem, env, constLen)
		if err != nil {
			return nil, err
		}
		return &Slice{Elem: elem}, nil
	case *ast.FuncType:
		params := make([]Type, 0, len(n.Params))
		for _, p := range n.Params {
			t, err := LowerType(p, env, constLen)
			if err != nil {
				return nil, err
			}
			params = append(params, t)
		}
		ret, err := LowerType(n.Ret, env, constLen)
		if err != nil {
			return nil, err
		}
		return &Func{Params: params, Ret: ret}, nil
	case *ast.UnionType:
		members := make([]Type, 0, len(n.Members))
		for _, m := range n.Members {
			t, err := LowerType(m, env, constLen)
			if err != nil {
				return nil, err
			}
			members = append(members, t)
		}
		return &Union{Members: members}, nil
	case *ast.RangeType:
		// The syntax carries no element type; range element types are
		// pinned by the range expression's own endpoints during type
		// checking, not by this node.
		return &Range{Elem: &Prim{Kind: ISize}}, nil
	case *ast.StringType:
		return &StringTy{State: StringState(n.State)}, nil
	case *ast.BytesType:
		return &BytesTy{State: StringState(n.State)}, nil
	case *ast.DynamicType:
		return &Dynamic{Class: strings.Join(n.ClassPath, "::")}, nil
	case *ast.RefineType:
		base, err := LowerType(n.Base, env, constLen)
		if err != nil {
			return nil, err
		}
		return &Refine{Base: base, Pred: exprPlaceholder(n.Predicate)}, nil
	case *ast.OpaqueType:
		if _, ok := env.LookupTypeArity(n.Path); !ok {
			return nil, diag.Errorf(diag.UnknownTypeName, spanOf(n), "unknown type: %s", strings.Join(n.Path, "::"))
		}
		args, err := lowerArgs(n.TypeArgs, env, constLen)
		if err != nil {
			return nil, err
		}
		if arity, _ := env.LookupTypeArity(n.Path); arity != len(args) {
			return nil, diag.Errorf(diag.WFApplyArityErr, spanOf(n), "%s expects %d type argument(s), got %d", strings.Join(n.Path, "::"), arity, len(args))
		}
		return &Opaque{Name: strings.Join(n.Path, "::"), Args: args}, nil
	case *ast.PathType:
		arity, ok := env.LookupTypeArity(n.Path)
		if !ok {
			return nil, diag.Errorf(diag.UnknownTypeName, spanOf(n), "unknown type: %s", strings.Join(n.Path, "::"))
		}
		args, err := lowerArgs(n.TypeArgs, env, constLen)
		if err != nil {
			return nil, err
		}
		if arity != len(args) {
			return nil, diag.Errorf(diag.WFApplyArityErr, spanOf(n), "%s expects %d type argument(s), got %d", strings.Join(n.Path, "::"), arity, len(args))
		}
		path, name := splitPath(n.Path)
		return &PathType{Path: path, Name: name, Args: args}, nil
	case *ast.ModalStateType:
		arity, ok := env.LookupTypeArity(n.Path)
		if !ok {
			return nil, diag.Errorf(diag.UnknownTypeName, spanOf(n), "unknown type: %s", strings.Join(n.Path, "::"))
		}
		args, err := lowerArgs(n.TypeArgs, env, constLen)
		if err != nil {
			return nil, err
		}
		if arity != len(args) {
			return nil, diag.Errorf(diag.WFApplyArityErr, spanOf(n), "%s expects %d type argument(s), got %d", strings.Join(n.Path, "::"), arity, len(args))
		}
		path, name := splitPath(n.Path)
		return &ModalState{Modal: PathType{Path: path, Name: name, Args: args}, State: n.State}, nil
	default:
		return nil, diag.Errorf(diag.UnknownTypeName, diag.Span{}, "unrecognised type syntax %T", syn)
	}
}

func lowerArgs(args []ast.TypeNode, env TypeEnv, constLen ConstLenEval) ([]Type, error) {
	out := make([]Type, 0, len(args))
	for _, a := range args {
		t, err := LowerType(a, env, constLen)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func splitPath(path []string) ([]string, string) {
	if len(path) == 0 {
		return nil, ""
	}
	return path[:len(path)-1], path[len(path)-1]
}

func ptrQualOf(state string) PtrQual {
	switch state {
	case "Valid":
		return PtrValid
	case "Null":
		return PtrNull
	default:
		return PtrUnspecified
	}
}

var primByName = map[string]PrimKind{
	"i8": I8, "u8": U8, "i16": I16, "u16": U16, "i32": I32, "u32": U32,
	"i64": I64, "u64": U64, "isize": ISize, "usize": USize,
	"i128": I128, "u128": U128, "f16": F16, "f32": F32, "f64": F64,
	"bool": Bool, "char": Char, "()": Unit, "!": Never,
}

func lowerPrim(n *ast.PrimType) (Type, error) {
	k, ok := primByName[n.Name]
	if !ok {
		return nil, diag.Errorf(diag.UnknownTypeName, spanOf(n), "unknown primitive type: %s", n.Name)
	}
	return &Prim{Kind: k}, nil
}

// spanOf adapts an ast.TypeNode's corelib.Span to a diag.Span. The two
// Span types are deliberately distinct (corelib.Span is the parser's
// position type; diag.Span is what diagnostics carry) so diag never
// depends on corelib's richer Offset bookkeeping.
func spanOf(n ast.TypeNode) diag.Span {
	s := n.Span()
	return diag.Span{StartLine: s.Start.Line, StartCol: s.Start.Col, EndLine: s.End.Line, EndCol: s.End.Col}
}

// exprPlaceholder renders a refinement predicate expression for display
// purposes only; LowerType does not evaluate or type-check it (that is a
// static-analysis concern upstream of this package).
func exprPlaceholder(e ast.Expr) string {
	if e == nil {
		return ""
	}
	return "<predicate>"
}
