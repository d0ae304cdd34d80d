package binder

import (
	"github.com/funvibe/typecore/internal/ast"
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/lattice"
	"github.com/funvibe/typecore/internal/subtype"
	"github.com/funvibe/typecore/internal/types"
)

// TypeMap assigns refined types to expression keys on one branch of a
// condition. A nil TypeMap means the branch is statically unreachable; an
// empty, non-nil TypeMap means the branch is reachable but nothing new was
// learned (§4.H).
type TypeMap map[ast.LiteralKey]types.Type

// TypeOf resolves the current (pre-narrowing) type of an expression, e.g.
// the binder's own Get combined with a static fallback.
type TypeOf func(ast.Expression) (types.Type, bool)

// Cond is the small boolean-expression IR find_isinstance_check pattern
// matches over: isinstance/issubclass/callable calls, None/equality/
// membership comparisons, boolean combinators, and bare references (§4.H).
type Cond interface{ isCond() }

// Isinstance represents `isinstance(Expr, Target)`.
type Isinstance struct {
	Expr   ast.Expression
	Target types.Type
}

// Issubclass represents `issubclass(Expr, Target)`, where Expr's static
// type is Type[...] rather than an instance.
type Issubclass struct {
	Expr   ast.Expression
	Target types.Type
}

// Callable represents `callable(Expr)`.
type Callable struct{ Expr ast.Expression }

// IsNone represents `Expr is None` (or `Expr is not None` when Negated).
type IsNone struct {
	Expr    ast.Expression
	Negated bool
}

// EqualsOptional represents `Optional == Other` where exactly one side's
// static type is Optional and the two overlap.
type EqualsOptional struct {
	Optional ast.Expression
	Other    ast.Expression
}

// InContainer represents `Expr in Container` (or `not in` when Negated)
// where Container's element type overlaps with Expr's Optional type.
type InContainer struct {
	Expr      ast.Expression
	Container ast.Expression
	ElemType  types.Type
	Negated   bool
}

// And/Or/Not/Ref are the boolean combinators and the bare-reference
// truthiness case.
type And struct{ Left, Right Cond }
type Or struct{ Left, Right Cond }
type Not struct{ Inner Cond }
type Ref struct{ Expr ast.Expression }

func (*Isinstance) isCond()     {}
func (*Issubclass) isCond()     {}
func (*Callable) isCond()       {}
func (*IsNone) isCond()         {}
func (*EqualsOptional) isCond() {}
func (*InContainer) isCond()    {}
func (*And) isCond()            {}
func (*Or) isCond()             {}
func (*Not) isCond()            {}
func (*Ref) isCond()            {}

// FindIsinstanceCheck computes the if/else refinement maps for cond (§4.H).
// Guaranteed to never return (nil, nil); it may return ({}, {}) when no
// refinement can be derived.
func FindIsinstanceCheck(cond Cond, typeOf TypeOf, opts config.Options) (TypeMap, TypeMap) {
	switch c := cond.(type) {
	case *Isinstance:
		return conditionalTypeMap(c.Expr, typeOf, c.Target, opts)

	case *Issubclass:
		vartype, ok := typeOf(c.Expr)
		if !ok {
			return TypeMap{}, TypeMap{}
		}
		item, ok := typeTypeItem(vartype)
		if !ok {
			return TypeMap{}, TypeMap{}
		}
		ifM, elseM := conditionalTypeMapFor(c.Expr, item, c.Target, opts)
		return wrapTypeType(ifM), wrapTypeType(elseM)

	case *Callable:
		vartype, ok := typeOf(c.Expr)
		if !ok || types.IsAny(vartype) {
			return TypeMap{}, TypeMap{}
		}
		key, ok := c.Expr.LiteralKey()
		if !ok {
			return TypeMap{}, TypeMap{}
		}
		callables, uncallables := partitionByCallable(vartype)
		var ifM, elseM TypeMap
		if len(callables) > 0 {
			ifM = TypeMap{key: unionOf(callables)}
		}
		if len(uncallables) > 0 {
			elseM = TypeMap{key: unionOf(uncallables)}
		}
		return ifM, elseM

	case *IsNone:
		vartype, ok := typeOf(c.Expr)
		if !ok {
			return TypeMap{}, TypeMap{}
		}
		ifM, elseM := conditionalTypeMapFor(c.Expr, vartype, types.NewNone(), opts)
		if c.Negated {
			ifM, elseM = elseM, ifM
		}
		return ifM, elseM

	case *EqualsOptional:
		optType, ok1 := typeOf(c.Optional)
		otherType, ok2 := typeOf(c.Other)
		if !ok1 || !ok2 {
			return TypeMap{}, TypeMap{}
		}
		optIsOptional := isOptional(optType)
		otherIsOptional := isOptional(otherType)
		if optIsOptional == otherIsOptional {
			return TypeMap{}, TypeMap{}
		}
		target := optType
		targetExpr := c.Optional
		compare := otherType
		if !optIsOptional {
			target, targetExpr, compare = otherType, c.Other, optType
		}
		if !lattice.IsOverlapping(target, compare, true, opts) {
			return TypeMap{}, TypeMap{}
		}
		key, ok := targetExpr.LiteralKey()
		if !ok {
			return TypeMap{}, TypeMap{}
		}
		return TypeMap{key: removeOptional(target)}, TypeMap{}

	case *InContainer:
		vartype, ok := typeOf(c.Expr)
		if !ok || !isOptional(vartype) {
			return TypeMap{}, TypeMap{}
		}
		if !lattice.IsOverlapping(vartype, c.ElemType, true, opts) {
			return TypeMap{}, TypeMap{}
		}
		key, ok := c.Expr.LiteralKey()
		if !ok {
			return TypeMap{}, TypeMap{}
		}
		narrowed := TypeMap{key: removeOptional(vartype)}
		if c.Negated {
			return TypeMap{}, narrowed
		}
		return narrowed, TypeMap{}

	case *Ref:
		vartype, ok := typeOf(c.Expr)
		if !ok {
			return TypeMap{}, TypeMap{}
		}
		key, ok := c.Expr.LiteralKey()
		if !ok {
			return TypeMap{}, TypeMap{}
		}
		ifType := trueOnly(vartype)
		elseType := falseOnly(vartype)
		var ifM, elseM TypeMap
		if !types.IsUninhabited(ifType) {
			ifM = TypeMap{key: ifType}
		}
		if !types.IsUninhabited(elseType) {
			elseM = TypeMap{key: elseType}
		}
		return ifM, elseM

	case *And:
		lIf, lElse := FindIsinstanceCheck(c.Left, typeOf, opts)
		rIf, rElse := FindIsinstanceCheck(c.Right, typeOf, opts)
		return andMaps(lIf, rIf), orMaps(lElse, rElse)

	case *Or:
		lIf, lElse := FindIsinstanceCheck(c.Left, typeOf, opts)
		rIf, rElse := FindIsinstanceCheck(c.Right, typeOf, opts)
		return orMaps(lIf, rIf), andMaps(lElse, rElse)

	case *Not:
		ifM, elseM := FindIsinstanceCheck(c.Inner, typeOf, opts)
		return elseM, ifM
	}
	return TypeMap{}, TypeMap{}
}

func conditionalTypeMap(expr ast.Expression, typeOf TypeOf, target types.Type, opts config.Options) (TypeMap, TypeMap) {
	vartype, ok := typeOf(expr)
	if !ok {
		return TypeMap{}, TypeMap{}
	}
	return conditionalTypeMapFor(expr, vartype, target, opts)
}

// conditionalTypeMapFor narrows current against target: the if-branch gets
// current ⊓ target, the else-branch gets current with every member that is
// a subtype of target removed (§4.H).
func conditionalTypeMapFor(expr ast.Expression, current, target types.Type, opts config.Options) (TypeMap, TypeMap) {
	key, ok := expr.LiteralKey()
	if !ok {
		return TypeMap{}, TypeMap{}
	}

	if subtype.IsSubtype(current, target, opts) {
		return TypeMap{}, nil
	}
	if !lattice.IsOverlapping(current, target, true, opts) {
		return nil, TypeMap{}
	}

	ifType := lattice.Meet(current, target, opts)
	elseType := subtractSubtype(current, target, opts)

	var ifM, elseM TypeMap
	if !types.IsUninhabited(ifType) {
		ifM = TypeMap{key: ifType}
	} else {
		ifM = nil
	}
	elseM = TypeMap{key: elseType}
	return ifM, elseM
}

// subtractSubtype removes every union member that is a subtype of target
// from current; a non-union current that is itself a subtype of target
// subtracts to Uninhabited.
func subtractSubtype(current, target types.Type, opts config.Options) types.Type {
	if u, ok := current.(*types.Union); ok {
		var kept []types.Type
		for _, m := range u.Items {
			if !subtype.IsSubtype(m, target, opts) {
				kept = append(kept, m)
			}
		}
		return subtype.SimplifyUnion(kept, opts)
	}
	if subtype.IsSubtype(current, target, opts) {
		return &types.Uninhabited{}
	}
	return current
}

func removeOptional(t types.Type) types.Type {
	u, ok := t.(*types.Union)
	if !ok {
		return t
	}
	var kept []types.Type
	for _, m := range u.Items {
		if !types.IsNone(m) {
			kept = append(kept, m)
		}
	}
	return types.NewUnion(kept)
}

func isOptional(t types.Type) bool {
	if types.IsNone(t) {
		return true
	}
	u, ok := t.(*types.Union)
	if !ok {
		return false
	}
	for _, m := range u.Items {
		if types.IsNone(m) {
			return true
		}
	}
	return false
}

func typeTypeItem(t types.Type) (types.Type, bool) {
	switch v := t.(type) {
	case *types.TypeType:
		return v.Item, true
	case *types.Union:
		var items []types.Type
		for _, m := range v.Items {
			item, ok := typeTypeItem(m)
			if !ok {
				return nil, false
			}
			items = append(items, item)
		}
		return types.NewUnion(items), true
	default:
		return nil, false
	}
}

func wrapTypeType(m TypeMap) TypeMap {
	if m == nil {
		return nil
	}
	out := make(TypeMap, len(m))
	for k, v := range m {
		out[k] = &types.TypeType{Item: v}
	}
	return out
}

// partitionByCallable splits a type into the members that are always
// callable and the members that are never callable (§4.H, "callable(e)").
func partitionByCallable(t types.Type) (callables, uncallables []types.Type) {
	switch v := t.(type) {
	case *types.Callable, *types.Overloaded, *types.TypeType:
		return []types.Type{t}, nil
	case *types.Any:
		return []types.Type{t}, []types.Type{t}
	case *types.Union:
		for _, m := range v.Items {
			c, u := partitionByCallable(m)
			callables = append(callables, c...)
			uncallables = append(uncallables, u...)
		}
		return callables, uncallables
	case *types.Instance:
		if v.TypeInfo != nil {
			if _, ok := v.TypeInfo.Members["__call__"]; ok {
				return []types.Type{t}, nil
			}
		}
		return nil, []types.Type{t}
	default:
		return nil, []types.Type{t}
	}
}

func unionOf(items []types.Type) types.Type {
	if len(items) == 1 {
		return items[0]
	}
	return types.NewUnion(items)
}

// trueOnly/falseOnly restrict a type to the values that are truthy/falsy
// respectively: None and a Literal[False]/Literal[0]/Literal[""] are the
// only statically-known falsy values (§4.H, name/ref truthiness narrowing).
func trueOnly(t types.Type) types.Type {
	if types.IsNone(t) {
		return &types.Uninhabited{}
	}
	if isFalsyLiteral(t) {
		return &types.Uninhabited{}
	}
	if u, ok := t.(*types.Union); ok {
		var kept []types.Type
		for _, m := range u.Items {
			r := trueOnly(m)
			if !types.IsUninhabited(r) {
				kept = append(kept, r)
			}
		}
		return types.NewUnion(kept)
	}
	return t
}

func falseOnly(t types.Type) types.Type {
	if types.IsNone(t) {
		return t
	}
	if isFalsyLiteral(t) {
		return t
	}
	if u, ok := t.(*types.Union); ok {
		var kept []types.Type
		for _, m := range u.Items {
			if types.IsNone(m) || isFalsyLiteral(m) {
				kept = append(kept, m)
			}
		}
		if len(kept) == 0 {
			return &types.Uninhabited{}
		}
		return types.NewUnion(kept)
	}
	return &types.Uninhabited{}
}

func isFalsyLiteral(t types.Type) bool {
	l, ok := t.(*types.Literal)
	if !ok {
		return false
	}
	switch l.ValueKind {
	case types.LiteralBool:
		return !l.BoolValue
	case types.LiteralInt:
		return l.IntValue == 0
	case types.LiteralStr:
		return l.StrValue == ""
	default:
		return false
	}
}

// andMaps/orMaps implement mypy checker.py's and_conditional_maps/
// or_conditional_maps (§4.H: "Boolean combinators").
func andMaps(m1, m2 TypeMap) TypeMap {
	if m1 == nil || m2 == nil {
		return nil
	}
	result := make(TypeMap, len(m1)+len(m2))
	for k, v := range m2 {
		result[k] = v
	}
	for k, v := range m1 {
		if _, exists := result[k]; !exists {
			result[k] = v
		}
	}
	return result
}

func orMaps(m1, m2 TypeMap) TypeMap {
	if m1 == nil {
		return m2
	}
	if m2 == nil {
		return m1
	}
	result := TypeMap{}
	for k, v1 := range m1 {
		if v2, ok := m2[k]; ok {
			result[k] = types.NewUnion([]types.Type{v1, v2})
		}
	}
	return result
}
