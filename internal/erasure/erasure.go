// Package erasure implements type-variable erasure and substitution
// ("expansion"), §4.B. Both operations are pure: they never mutate a Type,
// they return a new one.
package erasure

import "github.com/funvibe/typecore/internal/types"

// Erase replaces every TypeVar/TypeVarTuple/ParamSpec with Any; replaces a
// Callable with an empty callable () -> None that preserves the original's
// fallback; replaces Tuple/TypedDict with their fallback instance; and
// recurses into Union, Instance (its args), and TypeType.
func Erase(t types.Type) types.Type {
	switch v := t.(type) {
	case *types.TypeVar, *types.TypeVarTuple, *types.ParamSpec:
		return types.NewAny(types.AnyImplementationArtifact)
	case *types.Instance:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Erase(a)
		}
		return &types.Instance{TypeInfo: v.TypeInfo, Args: args}
	case *types.Callable:
		return &types.Callable{RetType: types.NewNone(), Fallback: v.Fallback}
	case *types.Tuple:
		if v.PartialFallback != nil {
			return Erase(v.PartialFallback)
		}
		return v
	case *types.TypedDict:
		if v.Fallback != nil {
			return Erase(v.Fallback)
		}
		return v
	case *types.Union:
		items := make([]types.Type, len(v.Items))
		for i, it := range v.Items {
			items[i] = Erase(it)
		}
		return types.NewUnion(items)
	case *types.TypeType:
		return &types.TypeType{Item: Erase(v.Item)}
	case *types.Overloaded:
		items := make([]*types.Callable, len(v.Items))
		for i, it := range v.Items {
			items[i] = Erase(it).(*types.Callable)
		}
		return &types.Overloaded{Items: items}
	default:
		return t
	}
}

// EraseTypeVars is like Erase but restricted to a set of ids when ids is
// non-nil: only TypeVar/TypeVarTuple/ParamSpec values whose id is in ids are
// erased, everything else is left untouched. Meta-variables (VarId.Meta)
// are erased to replacement instead of Any, used by inference to produce
// Erased placeholders for deferred (pass-2) constraint generation (§4.F
// step 2, "replace_meta_vars").
func EraseTypeVars(t types.Type, ids map[types.VarId]bool, replacement types.Type) types.Type {
	var walk func(types.Type) types.Type
	walk = func(t types.Type) types.Type {
		switch v := t.(type) {
		case *types.TypeVar:
			if ids != nil && !ids[v.Id] {
				return v
			}
			if v.Id.Meta && replacement != nil {
				return replacement
			}
			return types.NewAny(types.AnyImplementationArtifact)
		case *types.TypeVarTuple:
			if ids != nil && !ids[v.Id] {
				return v
			}
			if v.Id.Meta && replacement != nil {
				return replacement
			}
			return types.NewAny(types.AnyImplementationArtifact)
		case *types.ParamSpec:
			if ids != nil && !ids[v.Id] {
				return v
			}
			if v.Id.Meta && replacement != nil {
				return replacement
			}
			return types.NewAny(types.AnyImplementationArtifact)
		case *types.Instance:
			args := make([]types.Type, len(v.Args))
			for i, a := range v.Args {
				args[i] = walk(a)
			}
			return &types.Instance{TypeInfo: v.TypeInfo, Args: args}
		case *types.Callable:
			argTypes := make([]types.Type, len(v.ArgTypes))
			for i, a := range v.ArgTypes {
				argTypes[i] = walk(a)
			}
			cp := *v
			cp.ArgTypes = argTypes
			cp.RetType = walk(v.RetType)
			return &cp
		case *types.Union:
			items := make([]types.Type, len(v.Items))
			for i, it := range v.Items {
				items[i] = walk(it)
			}
			return types.NewUnion(items)
		case *types.Tuple:
			items := make([]types.Type, len(v.Items))
			for i, it := range v.Items {
				items[i] = walk(it)
			}
			cp := *v
			cp.Items = items
			return &cp
		case *types.TypeType:
			return &types.TypeType{Item: walk(v.Item)}
		default:
			return t
		}
	}
	return walk(t)
}
