package lattice

import (
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/subtype"
	"github.com/funvibe/typecore/internal/types"
)

// Meet returns the greatest lower bound of s and t (§4.D), the dual of
// Join, plus the two additional rules: non-overlapping operands bottom out
// at Uninhabited (strict mode) or None (legacy), and same-length tuples
// meet pointwise while mismatched-length tuples are Uninhabited.
func Meet(s, t types.Type, opts config.Options) types.Type {
	if types.IsAny(s) {
		return t
	}
	if types.IsAny(t) {
		return s
	}
	if subtype.IsSubtype(s, t, opts) {
		return s
	}
	if subtype.IsSubtype(t, s, opts) {
		return t
	}

	stup, stupOK := s.(*types.Tuple)
	ttup, ttupOK := t.(*types.Tuple)
	if stupOK && ttupOK {
		if len(stup.Items) != len(ttup.Items) {
			return bottom(opts)
		}
		items := make([]types.Type, len(stup.Items))
		for i := range items {
			items[i] = Meet(stup.Items[i], ttup.Items[i], opts)
		}
		return &types.Tuple{Items: items, PartialFallback: fallbackTuple(stup, ttup)}
	}

	si, sOK := s.(*types.Instance)
	ti, tOK := t.(*types.Instance)
	if sOK && tOK && si.TypeInfo.Fullname == ti.TypeInfo.Fullname {
		n := len(si.Args)
		if len(ti.Args) < n {
			n = len(ti.Args)
		}
		args := make([]types.Type, n)
		for i := 0; i < n; i++ {
			switch si.TypeInfo.VarianceOf(i) {
			case types.Covariant:
				args[i] = Meet(si.Args[i], ti.Args[i], opts)
			case types.Contravariant:
				args[i] = Join(si.Args[i], ti.Args[i], opts)
			default:
				if subtype.SameType(si.Args[i], ti.Args[i]) {
					args[i] = si.Args[i]
				} else {
					return bottom(opts)
				}
			}
		}
		return &types.Instance{TypeInfo: si.TypeInfo, Args: args}
	}

	// Neither operand is a subtype of the other and neither is a
	// tuple/instance pair we can decompose further: overlapping or not,
	// distinct instances meet to bottom, so there is no overlap branch here.
	return bottom(opts)
}

func bottom(opts config.Options) types.Type {
	if opts.StrictOptional {
		return &types.Uninhabited{}
	}
	return types.NewNone()
}
