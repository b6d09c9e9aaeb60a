package layout

import "github.com/cursive-lang/corec/internal/semtype"

// ArrayLayoutOf computes `size = n * size(elem), align = align(elem)`,
//
func ArrayLayoutOf(elem semtype.Type, n int64, env LayoutEnv) (Layout, error) {
	el, err := LayoutOf(elem, env)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Size: n * el.Size, Align: el.Align}, nil
}
