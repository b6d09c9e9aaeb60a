package layout

import (
	"strconv"

	"github.com/cursive-lang/corec/internal/semtype"
)

// UnionLayout is a union type's computed layout: niche-optimised (exactly
// one niche-bearing member, every other member Unit) or tagged (one
// "variant" per member, keyed by its position since union members are
// unordered but layout needs a stable index).
type UnionLayout struct {
	Layout
	Niche      bool
	NicheIndex int // index of the niche-bearing member, valid iff Niche
	Tagged     *EnumLayout
}

// UnionLayoutOf applies union niche rule: "exactly one
// member is niche-bearing and every other member is Unit; otherwise
// tagged."
func UnionLayoutOf(members []semtype.Type, env LayoutEnv) (UnionLayout, error) {
	nicheIdx := -1
	allOthersUnit := true
	for i, m := range members {
		if isNicheBearing(m) {
			if nicheIdx != -1 {
				allOthersUnit = false
				break
			}
			nicheIdx = i
			continue
		}
		if !isUnitType(m) {
			allOthersUnit = false
		}
	}

	if nicheIdx != -1 && allOthersUnit {
		l, err := LayoutOf(members[nicheIdx], env)
		if err != nil {
			return UnionLayout{}, err
		}
		return UnionLayout{Layout: l, Niche: true, NicheIndex: nicheIdx}, nil
	}

	variants := make([]VariantSpec, len(members))
	for i, m := range members {
		variants[i] = VariantSpec{
			Name:         memberName(i),
			Discriminant: int64(i),
			Kind:         PayloadTuple,
			Tuple:        []semtype.Type{m},
		}
	}
	el, err := EnumLayoutOf(variants, env)
	if err != nil {
		return UnionLayout{}, err
	}
	return UnionLayout{Layout: el.Layout, Tagged: &el}, nil
}

func memberName(i int) string {
	return "member_" + strconv.Itoa(i)
}
