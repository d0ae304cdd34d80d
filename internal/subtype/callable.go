package subtype

import (
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/types"
)

// CallableOptions controls the handful of callable-subtyping toggles a
// caller can select (§4.C.2): whether to compare return types, and whether
// argument names are checked (only done when explicitly requested).
type CallableOptions struct {
	IgnoreReturn    bool
	CheckNames      bool
}

// IsCallableSubtype implements §4.C.2's seven numbered rules.
func IsCallableSubtype(left, right *types.Callable, opts config.Options, copts CallableOptions) bool {
	// 1.
	if right.IsTypeObj && !left.IsTypeObj {
		return false
	}
	// 2.
	l := left
	if len(left.Variables) > 0 {
		unified, ok := unifyGenericCallable(left, right, opts)
		if !ok {
			return false
		}
		l = unified
	}
	// 3.
	if !copts.IgnoreReturn && !IsSubtype(l.RetType, right.RetType, opts) {
		return false
	}
	// 4.
	if right.IsEllipsisArgs {
		return true
	}
	// 5.
	if l.MinArgs() > right.MinArgs() {
		return false
	}
	if l.HasStar() && !right.HasStar() {
		return false
	}
	if l.HasStarStar() && !right.HasStarStar() {
		return false
	}
	// 6.
	n := len(right.ArgTypes)
	if len(l.ArgTypes) < n {
		n = len(l.ArgTypes)
	}
	for i := 0; i < n; i++ {
		if !IsSubtype(right.ArgTypes[i], l.ArgTypes[i], opts) {
			return false
		}
		// 7.
		if copts.CheckNames && l.ArgNames[i] != nil && right.ArgNames[i] != nil {
			if *l.ArgNames[i] != *right.ArgNames[i] {
				return false
			}
		}
	}
	return true
}

func callableIsSubtype(left *types.Callable, right types.Type, opts config.Options) bool {
	switch r := right.(type) {
	case *types.Callable:
		return IsCallableSubtype(left, r, opts, CallableOptions{})
	case *types.Instance:
		return r.TypeInfo.Fullname == "object" || (left.Fallback != nil && IsSubtype(left.Fallback, r, opts))
	default:
		return false
	}
}

// unifyGenericCallable infers left.Variables from arg/ret constraints of
// left against right and substitutes, returning nil,false if unsolvable
// (§4.F.5). The real constraint generation lives in package constraints;
// this package only needs a minimal structural unification so it can avoid
// an import cycle (constraints -> subtype for protocol checks during
// constraint generation). The approach: try matching right's return type
// and argument types positionally against left's, solving each free
// variable to the join of every position it appears in contravariantly, or
// meet where covariant — approximated here by simple equality-driven
// solving adequate for the common "identity-shaped" generic callable case
// this invariant exists to support.
func unifyGenericCallable(left, right *types.Callable, opts config.Options) (*types.Callable, bool) {
	subst := map[types.VarId]types.Type{}
	bound := map[types.VarId]bool{}
	for _, v := range left.Variables {
		bound[v.VarId()] = true
	}

	var solve func(tmpl, actual types.Type) bool
	solve = func(tmpl, actual types.Type) bool {
		switch t := tmpl.(type) {
		case *types.TypeVar:
			if !bound[t.Id] {
				return SameType(tmpl, actual)
			}
			if existing, ok := subst[t.Id]; ok {
				return SameType(existing, actual)
			}
			subst[t.Id] = actual
			return true
		default:
			return true
		}
	}

	if !solve(left.RetType, right.RetType) {
		return nil, false
	}
	n := len(left.ArgTypes)
	if len(right.ArgTypes) < n {
		n = len(right.ArgTypes)
	}
	for i := 0; i < n; i++ {
		if !solve(left.ArgTypes[i], right.ArgTypes[i]) {
			return nil, false
		}
	}

	out := *left
	argTypes := make([]types.Type, len(left.ArgTypes))
	for i, a := range left.ArgTypes {
		argTypes[i] = substituteSimple(a, subst)
	}
	out.ArgTypes = argTypes
	out.RetType = substituteSimple(left.RetType, subst)
	out.Variables = nil
	return &out, true
}

func substituteSimple(t types.Type, subst map[types.VarId]types.Type) types.Type {
	if tv, ok := t.(*types.TypeVar); ok {
		if repl, ok := subst[tv.Id]; ok {
			return repl
		}
	}
	return t
}
