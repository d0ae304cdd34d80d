// Package lattice implements join (least upper bound) and meet (greatest
// lower bound) on the subtype lattice, plus the overlap test used by meet
// and by isinstance-narrowing (§4.D).
package lattice

import (
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/subtype"
	"github.com/funvibe/typecore/internal/types"
)

// Join returns the least upper bound of s and t (§4.D).
func Join(s, t types.Type, opts config.Options) types.Type {
	if types.IsAny(s) {
		return s
	}
	if types.IsAny(t) {
		return t
	}
	if _, ok := s.(*types.Erased); ok {
		return s
	}
	if _, ok := t.(*types.Erased); ok {
		return t
	}
	if types.IsNone(s) && !types.IsNone(t) && !types.IsUninhabited(t) {
		return t
	}
	if types.IsNone(t) && !types.IsNone(s) && !types.IsUninhabited(s) {
		return s
	}
	if subtype.IsSubtype(s, t, opts) {
		return t
	}
	if subtype.IsSubtype(t, s, opts) {
		return s
	}

	si, sOK := s.(*types.Instance)
	ti, tOK := t.(*types.Instance)
	if sOK && tOK {
		return joinInstances(si, ti, opts)
	}

	sc, scOK := s.(*types.Callable)
	tc, tcOK := t.(*types.Callable)
	if scOK && tcOK {
		if j, ok := joinCallables(sc, tc, opts); ok {
			return j
		}
		return fallbackOf(sc, tc)
	}

	stup, stupOK := s.(*types.Tuple)
	ttup, ttupOK := t.(*types.Tuple)
	if stupOK && ttupOK {
		return joinTuples(stup, ttup, opts)
	}

	if su, ok := s.(*types.Union); ok {
		return subtype.SimplifyUnion(append(append([]types.Type{}, su.Items...), t), opts)
	}
	if tu, ok := t.(*types.Union); ok {
		return subtype.SimplifyUnion(append(append([]types.Type{}, tu.Items...), s), opts)
	}

	return types.NewInstance(types.Object)
}

func joinInstances(s, t *types.Instance, opts config.Options) types.Type {
	if s.TypeInfo.Fullname == t.TypeInfo.Fullname {
		n := len(s.Args)
		if len(t.Args) < n {
			n = len(t.Args)
		}
		args := make([]types.Type, n)
		for i := 0; i < n; i++ {
			switch s.TypeInfo.VarianceOf(i) {
			case types.Covariant:
				args[i] = Join(s.Args[i], t.Args[i], opts)
			case types.Contravariant:
				args[i] = Meet(s.Args[i], t.Args[i], opts)
			default:
				if subtype.SameType(s.Args[i], t.Args[i]) {
					args[i] = s.Args[i]
				} else {
					return types.NewInstance(types.Object)
				}
			}
		}
		return &types.Instance{TypeInfo: s.TypeInfo, Args: args}
	}

	if s.TypeInfo.InMRO(t.TypeInfo) {
		if mapped, ok := subtype.MapInstanceToSupertype(s, t.TypeInfo); ok {
			return joinInstances(mapped, t, opts)
		}
	}
	if t.TypeInfo.InMRO(s.TypeInfo) {
		if mapped, ok := subtype.MapInstanceToSupertype(t, s.TypeInfo); ok {
			return joinInstances(s, mapped, opts)
		}
	}

	if s.TypeInfo.Promote != nil {
		if p, ok := s.TypeInfo.Promote.(*types.Instance); ok {
			return Join(p, t, opts)
		}
	}
	if t.TypeInfo.Promote != nil {
		if p, ok := t.TypeInfo.Promote.(*types.Instance); ok {
			return Join(s, p, opts)
		}
	}

	for _, anc := range s.TypeInfo.MRO {
		for _, tanc := range t.TypeInfo.MRO {
			if anc.Fullname == tanc.Fullname {
				return types.NewInstance(anc)
			}
		}
	}
	return types.NewInstance(types.Object)
}

// similarCallables reports whether two callables have the same arity, the
// same min_args, the same var-arg shape and the same argument kinds — the
// precondition for joining them pointwise instead of falling back to
// `function` (§4.D). It compares shape only; it does not check the two
// callables for mutual subtyping.
func similarCallables(s, t *types.Callable) bool {
	if len(s.ArgTypes) != len(t.ArgTypes) {
		return false
	}
	if s.MinArgs() != t.MinArgs() {
		return false
	}
	if s.HasStar() != t.HasStar() || s.HasStarStar() != t.HasStarStar() {
		return false
	}
	for i := range s.ArgKinds {
		if s.ArgKinds[i] != t.ArgKinds[i] {
			return false
		}
	}
	return true
}

func joinCallables(s, t *types.Callable, opts config.Options) (*types.Callable, bool) {
	if !similarCallables(s, t) {
		return nil, false
	}
	argTypes := make([]types.Type, len(s.ArgTypes))
	for i := range argTypes {
		argTypes[i] = Join(s.ArgTypes[i], t.ArgTypes[i], opts)
	}
	return &types.Callable{
		ArgTypes: argTypes,
		ArgKinds: s.ArgKinds,
		ArgNames: s.ArgNames,
		RetType:  Join(s.RetType, t.RetType, opts),
		Fallback: fallbackOf(s, t),
	}, true
}

func fallbackOf(s, t *types.Callable) *types.Instance {
	if s.Fallback != nil {
		return s.Fallback
	}
	return t.Fallback
}

func joinTuples(s, t *types.Tuple, opts config.Options) types.Type {
	if len(s.Items) == len(t.Items) {
		items := make([]types.Type, len(s.Items))
		for i := range items {
			items[i] = Join(s.Items[i], t.Items[i], opts)
		}
		return &types.Tuple{Items: items, PartialFallback: fallbackTuple(s, t)}
	}
	all := append(append([]types.Type{}, s.Items...), t.Items...)
	joined := all[0]
	for _, it := range all[1:] {
		joined = Join(joined, it, opts)
	}
	return types.NewInstance(tupleFallbackInfo(s, t), joined)
}

func fallbackTuple(s, t *types.Tuple) *types.Instance {
	if s.PartialFallback != nil {
		return s.PartialFallback
	}
	return t.PartialFallback
}

func tupleFallbackInfo(s, t *types.Tuple) *types.TypeInfo {
	if s.PartialFallback != nil {
		return s.PartialFallback.TypeInfo
	}
	if t.PartialFallback != nil {
		return t.PartialFallback.TypeInfo
	}
	return &types.TypeInfo{Fullname: "tuple", TypeVars: []types.TypeVarDecl{{Name: "T", Variance: types.Covariant}}}
}
