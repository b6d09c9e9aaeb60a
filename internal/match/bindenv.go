package match

import "github.com/cursive-lang/corec/internal/sigma"

// BindEnv is the result of a successful MatchPattern: the names a
// pattern bound, in left-to-right depth-first order (this
// fixes drop order at scope exit), plus each name's value.
type BindEnv struct {
	Order []string
	Vals  map[string]sigma.Value
}

func newBindEnv() *BindEnv {
	return &BindEnv{Vals: map[string]sigma.Value{}}
}

func (e *BindEnv) bind(name string, v sigma.Value) {
	if _, exists := e.Vals[name]; !exists {
		e.Order = append(e.Order, name)
	}
	e.Vals[name] = v
}

func (e *BindEnv) merge(o *BindEnv) {
	for _, n := range o.Order {
		e.bind(n, o.Vals[n])
	}
}
