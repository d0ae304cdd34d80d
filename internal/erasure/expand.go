package erasure

import "github.com/funvibe/typecore/internal/types"

// Subst is a substitution keyed by VarId, not by name — expansion is
// capture-free exactly because lookups never go through a name (§4.B).
type Subst map[types.VarId]types.Type

// Expand substitutes every TypeVar/TypeVarTuple/ParamSpec whose id is in m,
// recursing into every composite. For a Callable, argument and return types
// are substituted but Variables is left untouched except that any variable
// bound in m is removed from it (it is no longer a free parameter of the
// resulting callable). A substituted leaf is returned as-is, not
// recursively re-expanded — this is what makes expand(expand(t,m),m) ==
// expand(t,m) hold whenever m is closed (§8, property 9).
func Expand(t types.Type, m Subst) types.Type {
	if len(m) == 0 {
		return t
	}
	switch v := t.(type) {
	case *types.TypeVar:
		if repl, ok := m[v.Id]; ok {
			return repl
		}
		return v
	case *types.TypeVarTuple:
		if repl, ok := m[v.Id]; ok {
			return repl
		}
		return v
	case *types.ParamSpec:
		if repl, ok := m[v.Id]; ok {
			return repl
		}
		return v
	case *types.Instance:
		args := make([]types.Type, len(v.Args))
		changed := false
		for i, a := range v.Args {
			args[i] = Expand(a, m)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return &types.Instance{TypeInfo: v.TypeInfo, Args: args}
	case *types.Callable:
		cp := *v
		cp.ArgTypes = make([]types.Type, len(v.ArgTypes))
		for i, a := range v.ArgTypes {
			cp.ArgTypes[i] = Expand(a, m)
		}
		cp.RetType = Expand(v.RetType, m)
		if v.TypeGuard != nil {
			cp.TypeGuard = Expand(v.TypeGuard, m)
		}
		if len(v.Variables) > 0 {
			remaining := make([]types.TypeVarLike, 0, len(v.Variables))
			for _, tv := range v.Variables {
				if _, bound := m[tv.VarId()]; !bound {
					remaining = append(remaining, tv)
				}
			}
			cp.Variables = remaining
		}
		return &cp
	case *types.Overloaded:
		items := make([]*types.Callable, len(v.Items))
		for i, it := range v.Items {
			items[i] = Expand(it, m).(*types.Callable)
		}
		return &types.Overloaded{Items: items}
	case *types.Union:
		items := make([]types.Type, len(v.Items))
		for i, it := range v.Items {
			items[i] = Expand(it, m)
		}
		return types.NewUnion(items)
	case *types.Tuple:
		items := make([]types.Type, len(v.Items))
		for i, it := range v.Items {
			items[i] = Expand(it, m)
		}
		cp := *v
		cp.Items = items
		return &cp
	case *types.TypedDict:
		items := make([]types.TypedDictItem, len(v.Items))
		for i, it := range v.Items {
			items[i] = types.TypedDictItem{Name: it.Name, Type: Expand(it.Type, m)}
		}
		cp := *v
		cp.Items = items
		return &cp
	case *types.TypeType:
		return types.NormalizeTypeType(Expand(v.Item, m))
	case *types.Unpack:
		return &types.Unpack{Inner: Expand(v.Inner, m)}
	case *types.Partial:
		inner := make([]types.Type, len(v.InnerTypes))
		for i, it := range v.InnerTypes {
			inner[i] = Expand(it, m)
		}
		cp := *v
		cp.InnerTypes = inner
		return &cp
	default:
		return t
	}
}

// ExpandByInstance builds a substitution from declared (treated
// positionally) to inst.Args and applies Expand. It fails if the arities
// differ (§4.B).
func ExpandByInstance(t types.Type, inst *types.Instance, declared []types.VarId) (types.Type, bool) {
	if len(declared) != len(inst.Args) {
		return nil, false
	}
	m := make(Subst, len(declared))
	for i, id := range declared {
		m[id] = inst.Args[i]
	}
	return Expand(t, m), true
}
