package eval

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// place is a resolved lvalue: the store address to read/write, plus (when
// the place roots in a named binding) the binding and the single-level
// field/tuple-index prefix move-tracking applies to, mirroring
// sigma.BindState's one-level-deep partial-move model.
type place struct {
	Addr     sigma.Addr
	Root     *sigma.Binding
	Head     string
	HasPlace bool
}

func (p place) recvPlace() recvPlace { return recvPlace{Addr: p.Addr, HasPlace: p.HasPlace} }

// resolvePlace walks a place expression (Ident/FieldAccessExpr/
// TupleAccessExpr/IndexExpr/DerefExpr) down to its store address. Any
// other expression form is evaluated for its value and reported as not a
// place (HasPlace=false), callers that need a place for such an
// expression have a type-checker bug upstream, not a runtime case to
// handle gracefully.
func (ev *Evaluator) resolvePlace(s *sigma.Sigma, e ast.Expr) (place, sigma.Control) {
	switch ex := e.(type) {
	case *ast.Ident:
		b, ok := s.LookupBinding(ex.Name)
		if !ok {
			return place{}, s.Raise(sigma.Other, "unbound name "+ex.Name)
		}
		return place{Addr: b.Addr, Root: b, HasPlace: true}, sigma.Control{}

	case *ast.FieldAccessExpr:
		base, ctrl := ev.resolvePlace(s, ex.Base)
		if ctrl.Kind != sigma.CtrlNone {
			return place{}, ctrl
		}
		addr := s.AllocView(base.Addr, sigma.AddrView{Parent: base.Addr, Kind: sigma.ViewField, Field: ex.Name})
		head := ex.Name
		if base.Head != "" {
			head = base.Head
		}
		return place{Addr: addr, Root: base.Root, Head: head, HasPlace: base.HasPlace}, sigma.Control{}

	case *ast.TupleAccessExpr:
		base, ctrl := ev.resolvePlace(s, ex.Base)
		if ctrl.Kind != sigma.CtrlNone {
			return place{}, ctrl
		}
		head := indexHead(ex.Index)
		if base.Head != "" {
			head = base.Head
		}
		addr := s.AllocView(base.Addr, sigma.AddrView{Parent: base.Addr, Kind: sigma.ViewTuple, Index: ex.Index})
		return place{Addr: addr, Root: base.Root, Head: head, HasPlace: base.HasPlace}, sigma.Control{}

	case *ast.IndexExpr:
		base, ctrl := ev.resolvePlace(s, ex.Base)
		if ctrl.Kind != sigma.CtrlNone {
			return place{}, ctrl
		}
		idxVal, ctrl := ev.EvalExpr(s, ex.Index)
		if ctrl.Kind != sigma.CtrlNone {
			return place{}, ctrl
		}
		iv, ok := idxVal.(sigma.IntVal)
		if !ok {
			return place{}, s.Raise(sigma.Other, "index is not an integer")
		}
		idx := int(iv.Magnitude.Lo)
		head := indexHead(idx)
		if base.Head != "" {
			head = base.Head
		}
		addr := s.AllocView(base.Addr, sigma.AddrView{Parent: base.Addr, Kind: sigma.ViewIndex, Index: idx})
		return place{Addr: addr, Root: base.Root, Head: head, HasPlace: base.HasPlace}, sigma.Control{}

	case *ast.DerefExpr:
		v, ctrl := ev.EvalExpr(s, ex.Ptr)
		if ctrl.Kind != sigma.CtrlNone {
			return place{}, ctrl
		}
		switch p := v.(type) {
		case sigma.PtrVal:
			if p.State == semtype.PtrNull {
				return place{}, s.Raise(sigma.NullDeref, "")
			}
			if s.Expired(p.Addr) {
				return place{}, s.Raise(sigma.ExpiredDeref, "")
			}
			return place{Addr: p.Addr, HasPlace: true}, sigma.Control{}
		case sigma.RawPtrVal:
			if s.Expired(p.Addr) {
				return place{}, s.Raise(sigma.ExpiredDeref, "")
			}
			return place{Addr: p.Addr, HasPlace: true}, sigma.Control{}
		default:
			return place{}, s.Raise(sigma.Other, "deref of non-pointer")
		}

	default:
		v, ctrl := ev.EvalExpr(s, e)
		if ctrl.Kind != sigma.CtrlNone {
			return place{}, ctrl
		}
		return place{Addr: s.AllocAddr(sigma.Tag{}, v)}, sigma.Control{}
	}
}

func indexHead(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return digits[i : i+1]
	}
	s := ""
	for i > 0 {
		s = string(digits[i%10]) + s
		i /= 10
	}
	return s
}

// readPlace reads p's current value, raising Other if the root binding
// has already moved this place away.
func (ev *Evaluator) readPlace(s *sigma.Sigma, p place) (sigma.Value, sigma.Control) {
	if p.Root != nil && !p.Root.Readable(p.Head) {
		return nil, s.Raise(sigma.Other, "use of moved value "+p.Root.Name)
	}
	v, ok := s.ReadAddr(p.Addr)
	if !ok {
		return nil, s.Raise(sigma.Other, "read of invalid address")
	}
	return v, sigma.Control{}
}

// evalArgs evaluates a call's arguments left to right, resolving each
// `move`-marked argument's place and transferring responsibility via
// MovePlace; other arguments
// evaluate by ordinary (implicitly aliasing) value.
func (ev *Evaluator) evalArgs(s *sigma.Sigma, args []ast.Arg) ([]sigma.Value, sigma.Control) {
	out := make([]sigma.Value, len(args))
	for i, a := range args {
		if a.Move {
			p, ctrl := ev.resolvePlace(s, a.Value)
			if ctrl.Kind != sigma.CtrlNone {
				return nil, ctrl
			}
			v, ctrl := ev.readPlace(s, p)
			if ctrl.Kind != sigma.CtrlNone {
				return nil, ctrl
			}
			if p.Root != nil {
				s.MovePlace(p.Root, p.Head)
			}
			out[i] = v
			continue
		}
		v, ctrl := ev.EvalExpr(s, a.Value)
		if ctrl.Kind != sigma.CtrlNone {
			return nil, ctrl
		}
		out[i] = v
	}
	return out, sigma.Control{}
}

func paramInfo(m ast.Mode) sigma.BindInfo {
	if m == ast.ModeMove {
		return sigma.BindInfo{Movability: sigma.Mov, Responsibility: sigma.Resp}
	}
	return sigma.BindInfo{Movability: sigma.Immov, Responsibility: sigma.Alias}
}

func typeNameOf(v sigma.Value) (name, state string) {
	switch rv := v.(type) {
	case sigma.RecordVal:
		return rv.Type.Name, ""
	case sigma.EnumVal:
		return rv.Type.Name, ""
	case sigma.ModalVal:
		return rv.Type.Name, rv.State
	default:
		return "", ""
	}
}
