// Package inference implements generic-function argument inference (§4.F):
// freshening a callable's own type variables into unification variables,
// generating and solving constraints against the actual call arguments in
// two passes, and substituting the solution back into the callee.
package inference

import (
	"github.com/funvibe/typecore/internal/argmap"
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/constraints"
	"github.com/funvibe/typecore/internal/diagnostics"
	"github.com/funvibe/typecore/internal/erasure"
	"github.com/funvibe/typecore/internal/subtype"
	"github.com/funvibe/typecore/internal/tuplenf"
	"github.com/funvibe/typecore/internal/types"
)

// freshenVariables replaces every TypeVarLike in callee.Variables with a
// fresh meta unification variable of the same shape, returning the
// freshened callable, the substitution used, and the fresh ids in
// declaration order (§4.F step 1).
func freshenVariables(callee *types.Callable, gen *types.IdGen) (*types.Callable, erasure.Subst, []types.VarId, map[types.VarId]types.TypeVarLike) {
	m := make(erasure.Subst, len(callee.Variables))
	freshIds := make([]types.VarId, 0, len(callee.Variables))
	declByFresh := make(map[types.VarId]types.TypeVarLike, len(callee.Variables))

	for _, tv := range callee.Variables {
		fresh := gen.Fresh(true)
		freshIds = append(freshIds, fresh)
		switch v := tv.(type) {
		case *types.TypeVar:
			freshened := &types.TypeVar{Id: fresh, Name: v.Name, Values: v.Values, UpperBound: v.UpperBound, VarVariance: v.VarVariance}
			m[v.Id] = freshened
			declByFresh[fresh] = freshened
		case *types.TypeVarTuple:
			freshened := &types.TypeVarTuple{Id: fresh, Name: v.Name, TupleFallback: v.TupleFallback}
			m[v.Id] = freshened
			declByFresh[fresh] = freshened
		case *types.ParamSpec:
			freshened := &types.ParamSpec{Id: fresh, Name: v.Name, UpperBound: v.UpperBound}
			m[v.Id] = freshened
			declByFresh[fresh] = freshened
		}
	}

	fresh, ok := erasure.Expand(callee, m).(*types.Callable)
	if !ok {
		fresh = callee
	}
	return fresh, m, freshIds, declByFresh
}

// replaceMetaVars substitutes every meta TypeVarLike reachable from t with
// the Erased placeholder, mypy's replace_meta_vars step for using a
// return-type context that may itself carry unsolved meta-variables from an
// enclosing, not-yet-solved call (§4.F step 2).
func replaceMetaVars(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	ids := types.FreeTypeVars(t)
	m := make(erasure.Subst)
	for _, id := range ids {
		if id.Meta {
			m[id] = &types.Erased{}
		}
	}
	if len(m) == 0 {
		return t
	}
	return erasure.Expand(t, m)
}

// isDeferred reports whether t contains a Callable whose return type
// mentions one of freshIds — a callback argument whose own return type is
// still being solved for, deferred to pass 2 (§4.F step 4).
func isDeferred(t types.Type, freshIds map[types.VarId]bool) bool {
	deferred := false
	types.Walk(t, func(n types.Type) bool {
		if deferred {
			return false
		}
		c, ok := n.(*types.Callable)
		if !ok {
			return true
		}
		for _, id := range types.FreeTypeVars(c.RetType) {
			if freshIds[id] {
				deferred = true
				return false
			}
		}
		return true
	})
	return deferred
}

// Actual is one call-site argument as InferFunctionArguments needs it: its
// static type and, for named/star actuals, argmap's own Actual shape.
type Actual struct {
	Type types.Type
	argmap.Actual
}

// InferFunctionArguments runs the two-pass inference of §4.F and returns
// the callee with every one of its own type variables substituted by the
// inferred solution (unsolved variables become Any, with a diagnostic at
// pos).
func InferFunctionArguments(
	callee *types.Callable,
	actuals []Actual,
	formalToActual [][]int,
	retContext types.Type,
	gen *types.IdGen,
	sink *diagnostics.Sink,
	pos diagnostics.Pos,
	opts config.Options,
) *types.Callable {
	fresh, _, freshIds, declByFresh := freshenVariables(callee, gen)
	if len(freshIds) == 0 {
		return fresh
	}
	freshSet := make(map[types.VarId]bool, len(freshIds))
	for _, id := range freshIds {
		freshSet[id] = true
	}

	var cs []constraints.Constraint
	if retContext != nil {
		cs = append(cs, constraints.InferConstraints(fresh.RetType, replaceMetaVars(retContext), constraints.SupertypeOf)...)
	}

	var deferredFormals []int
	for formalIdx, actualIdxs := range formalToActual {
		if formalIdx >= len(fresh.ArgTypes) {
			continue
		}
		formalType := fresh.ArgTypes[formalIdx]
		if isDeferred(formalType, freshSet) {
			deferredFormals = append(deferredFormals, formalIdx)
			continue
		}
		cs = append(cs, inferFormalConstraints(formalType, actualIdxs, actuals, constraints.SupertypeOf)...)
	}

	solved := constraints.Solve(freshIds, cs, opts)

	// Pass 1 substitution: apply what's known so far so pass 2's deferred
	// constraints see a partially-instantiated callee (§4.F step 5-6).
	partial := substituteKnown(fresh, solved)

	var moreConstraints []constraints.Constraint
	for _, formalIdx := range deferredFormals {
		formalType := partial.ArgTypes[formalIdx]
		moreConstraints = append(moreConstraints, inferFormalConstraints(formalType, formalToActual[formalIdx], actuals, constraints.SupertypeOf)...)
	}
	if len(moreConstraints) > 0 {
		resolved := constraints.Solve(freshIds, append(cs, moreConstraints...), opts)
		for id, t := range resolved {
			solved[id] = t
		}
	}

	return ApplyGenericArguments(fresh, freshIds, solved, declByFresh, sink, pos, opts)
}

// inferFormalConstraints generates constraints for one formal against all of
// its bound actuals. A non-variadic formal (or one bound to at most one
// actual) is handled the ordinary pointwise way; a TypeVarTuple/ParamSpec
// formal bound to several actuals is not — re-running InferConstraints once
// per actual against the same formal would generate unsound, mutually
// contradictory constraints on that one variable, so its actuals are first
// concatenated through Tuple Normal Form (§4.I) into a single tuple and
// constrained once (§4.E, §4.F).
func inferFormalConstraints(formalType types.Type, actualIdxs []int, actuals []Actual, direction constraints.Direction) []constraints.Constraint {
	if !isVariadicFormal(formalType) || len(actualIdxs) <= 1 {
		var cs []constraints.Constraint
		for _, ai := range actualIdxs {
			if ai >= len(actuals) {
				continue
			}
			cs = append(cs, constraints.InferConstraints(formalType, actuals[ai].Type, direction)...)
		}
		return cs
	}

	tnfs := make([]tuplenf.TNF, 0, len(actualIdxs))
	for _, ai := range actualIdxs {
		if ai >= len(actuals) {
			continue
		}
		a := actuals[ai]
		if a.StarArity > 0 {
			tnfs = append(tnfs, tuplenf.FromStarArgument(a.Type))
		} else {
			tnfs = append(tnfs, tuplenf.TNF{Prefix: []types.Type{a.Type}})
		}
	}
	combined := tuplenf.CombineConcat(tnfs)
	items := append([]types.Type{}, combined.Prefix...)
	if combined.Variadic != nil {
		items = append(items, &types.Unpack{Inner: combined.Variadic})
	}
	items = append(items, combined.Suffix...)
	return constraints.InferConstraints(formalType, &types.Tuple{Items: items}, direction)
}

func isVariadicFormal(t types.Type) bool {
	switch v := t.(type) {
	case *types.TypeVarTuple, *types.ParamSpec:
		return true
	case *types.Unpack:
		return isVariadicFormal(v.Inner)
	default:
		return false
	}
}

func substituteKnown(callee *types.Callable, solved map[types.VarId]types.Type) *types.Callable {
	if len(solved) == 0 {
		return callee
	}
	m := make(erasure.Subst, len(solved))
	for id, t := range solved {
		m[id] = t
	}
	result, ok := erasure.Expand(callee, m).(*types.Callable)
	if !ok {
		return callee
	}
	return result
}

// ApplyGenericArguments substitutes inferred into callee's own freshened
// variables (freshIds), reporting a could-not-infer diagnostic for every
// variable left unsolved (replaced by Any) and a typevar-value-invalid
// diagnostic when a solution fails its `values`/`upper_bound` restriction
// (§4.F step 7-8, §6's apply_generic_arguments).
func ApplyGenericArguments(
	callee *types.Callable,
	freshIds []types.VarId,
	inferred map[types.VarId]types.Type,
	declByFresh map[types.VarId]types.TypeVarLike,
	sink *diagnostics.Sink,
	pos diagnostics.Pos,
	opts config.Options,
) *types.Callable {
	m := make(erasure.Subst, len(freshIds))
	for _, id := range freshIds {
		t, ok := inferred[id]
		if !ok {
			if sink != nil {
				sink.Reportf(pos, diagnostics.ErrInferCouldNotInfer, "could not infer type parameter")
			}
			m[id] = types.NewAny(types.AnyFromError)
			continue
		}
		if tv, ok := declByFresh[id].(*types.TypeVar); ok && sink != nil {
			if !satisfiesValues(t, tv.Values, opts) || !satisfiesUpperBound(t, tv.UpperBound, opts) {
				sink.Reportf(pos, diagnostics.ErrInferTypeVarValue, "%q is not a valid value for type variable %q", t.String(), tv.Name)
			}
		}
		m[id] = t
	}

	result, ok := erasure.Expand(callee, m).(*types.Callable)
	if !ok {
		result = callee
	}
	return result
}

func satisfiesValues(t types.Type, values []types.Type, opts config.Options) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if subtype.SameType(t, v) || (subtype.IsSubtype(t, v, opts) && subtype.IsSubtype(v, t, opts)) {
			return true
		}
	}
	return false
}

func satisfiesUpperBound(t, upperBound types.Type, opts config.Options) bool {
	if upperBound == nil {
		return true
	}
	return subtype.IsSubtype(t, upperBound, opts)
}
