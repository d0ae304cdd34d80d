package types

// Walk calls visit on t and recursively on every structural child, depth
// first. visit returning false stops recursion into that subterm (but
// siblings are still visited) — the same short-circuit shape as the
// teacher's query helpers ("does this type contain a TypeVar?").
func Walk(t Type, visit func(Type) bool) {
	if t == nil || !visit(t) {
		return
	}
	switch v := t.(type) {
	case *Instance:
		for _, a := range v.Args {
			Walk(a, visit)
		}
	case *Callable:
		for _, a := range v.ArgTypes {
			Walk(a, visit)
		}
		Walk(v.RetType, visit)
		if v.TypeGuard != nil {
			Walk(v.TypeGuard, visit)
		}
	case *Overloaded:
		for _, it := range v.Items {
			Walk(it, visit)
		}
	case *Tuple:
		for _, it := range v.Items {
			Walk(it, visit)
		}
	case *TypedDict:
		for _, it := range v.Items {
			Walk(it.Type, visit)
		}
	case *Union:
		for _, it := range v.Items {
			Walk(it, visit)
		}
	case *TypeType:
		Walk(v.Item, visit)
	case *Unpack:
		Walk(v.Inner, visit)
	case *Partial:
		for _, it := range v.InnerTypes {
			Walk(it, visit)
		}
	case *TypeVar:
		if v.UpperBound != nil {
			Walk(v.UpperBound, visit)
		}
	}
}

// Contains reports whether t or any structural child matches pred.
func Contains(t Type, pred func(Type) bool) bool {
	found := false
	Walk(t, func(x Type) bool {
		if found {
			return false
		}
		if pred(x) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ContainsTypeVar reports whether t mentions any type variable.
func ContainsTypeVar(t Type) bool {
	return Contains(t, func(x Type) bool {
		switch x.(type) {
		case *TypeVar, *TypeVarTuple, *ParamSpec:
			return true
		}
		return false
	})
}

// ContainsErased reports whether t mentions the Erased placeholder.
func ContainsErased(t Type) bool {
	return Contains(t, func(x Type) bool {
		_, ok := x.(*Erased)
		return ok
	})
}

// FreeTypeVars collects the ids of every TypeVar/TypeVarTuple/ParamSpec
// reachable from t, excluding those bound by a nested Callable's own
// Variables (they are locally quantified at that point, not free in t as a
// whole) — used by scope (§4.J, "free type variables of the enclosing
// generic class") and by inference to decide which variables still need
// solving.
func FreeTypeVars(t Type) []VarId {
	seen := make(map[VarId]bool)
	var order []VarId
	var walk func(Type, map[VarId]bool)
	walk = func(t Type, bound map[VarId]bool) {
		if t == nil {
			return
		}
		switch v := t.(type) {
		case *TypeVar:
			if !bound[v.Id] && !seen[v.Id] {
				seen[v.Id] = true
				order = append(order, v.Id)
			}
		case *TypeVarTuple:
			if !bound[v.Id] && !seen[v.Id] {
				seen[v.Id] = true
				order = append(order, v.Id)
			}
		case *ParamSpec:
			if !bound[v.Id] && !seen[v.Id] {
				seen[v.Id] = true
				order = append(order, v.Id)
			}
		case *Instance:
			for _, a := range v.Args {
				walk(a, bound)
			}
		case *Callable:
			inner := bound
			if len(v.Variables) > 0 {
				inner = cloneBound(bound)
				for _, tv := range v.Variables {
					inner[tv.VarId()] = true
				}
			}
			for _, a := range v.ArgTypes {
				walk(a, inner)
			}
			walk(v.RetType, inner)
		case *Overloaded:
			for _, it := range v.Items {
				walk(it, bound)
			}
		case *Tuple:
			for _, it := range v.Items {
				walk(it, bound)
			}
		case *TypedDict:
			for _, it := range v.Items {
				walk(it.Type, bound)
			}
		case *Union:
			for _, it := range v.Items {
				walk(it, bound)
			}
		case *TypeType:
			walk(v.Item, bound)
		case *Unpack:
			walk(v.Inner, bound)
		case *Partial:
			for _, it := range v.InnerTypes {
				walk(it, bound)
			}
		}
	}
	walk(t, map[VarId]bool{})
	return order
}

func cloneBound(m map[VarId]bool) map[VarId]bool {
	out := make(map[VarId]bool, len(m)+2)
	for k, v := range m {
		out[k] = v
	}
	return out
}
