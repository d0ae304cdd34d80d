// Package subtype implements structural equality and the asymmetric <:
// decision (§4.C), including variance, protocol structural conformance, and
// callable contra/covariance.
package subtype

import "github.com/funvibe/typecore/internal/types"

// SameType is structural equality with Unbound treated as equal to
// everything, tolerating pre-resolution errors (§4.C). It is implemented as
// a Go type switch on a, dispatching against b — the "explicit helper
// function per left-variant" style §9 asks for instead of double-dispatch
// through interface methods.
func SameType(a, b types.Type) bool {
	if _, ok := a.(*types.Unbound); ok {
		return true
	}
	if _, ok := b.(*types.Unbound); ok {
		return true
	}
	switch x := a.(type) {
	case *types.Any:
		_, ok := b.(*types.Any)
		return ok
	case *types.NoneType:
		_, ok := b.(*types.NoneType)
		return ok
	case *types.Uninhabited:
		_, ok := b.(*types.Uninhabited)
		return ok
	case *types.Deleted:
		_, ok := b.(*types.Deleted)
		return ok
	case *types.Erased:
		_, ok := b.(*types.Erased)
		return ok
	case *types.Instance:
		y, ok := b.(*types.Instance)
		if !ok || x.TypeInfo.Fullname != y.TypeInfo.Fullname || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !SameType(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *types.TypeVar:
		y, ok := b.(*types.TypeVar)
		return ok && x.Id == y.Id
	case *types.TypeVarTuple:
		y, ok := b.(*types.TypeVarTuple)
		return ok && x.Id == y.Id
	case *types.ParamSpec:
		y, ok := b.(*types.ParamSpec)
		return ok && x.Id == y.Id
	case *types.Callable:
		y, ok := b.(*types.Callable)
		if !ok || len(x.ArgTypes) != len(y.ArgTypes) {
			return false
		}
		if !SameType(x.RetType, y.RetType) {
			return false
		}
		for i := range x.ArgTypes {
			if x.ArgKinds[i] != y.ArgKinds[i] || !SameType(x.ArgTypes[i], y.ArgTypes[i]) {
				return false
			}
		}
		return true
	case *types.Overloaded:
		y, ok := b.(*types.Overloaded)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !SameType(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *types.Tuple:
		y, ok := b.(*types.Tuple)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !SameType(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *types.TypedDict:
		y, ok := b.(*types.TypedDict)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if x.Items[i].Name != y.Items[i].Name || !SameType(x.Items[i].Type, y.Items[i].Type) {
				return false
			}
		}
		return true
	case *types.Literal:
		y, ok := b.(*types.Literal)
		if !ok || x.ValueKind != y.ValueKind {
			return false
		}
		switch x.ValueKind {
		case types.LiteralInt:
			return x.IntValue == y.IntValue
		case types.LiteralStr, types.LiteralBytes:
			return x.StrValue == y.StrValue
		case types.LiteralBool:
			return x.BoolValue == y.BoolValue
		}
		return false
	case *types.Union:
		y, ok := b.(*types.Union)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !SameType(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *types.TypeType:
		y, ok := b.(*types.TypeType)
		return ok && SameType(x.Item, y.Item)
	case *types.Unpack:
		y, ok := b.(*types.Unpack)
		return ok && SameType(x.Inner, y.Inner)
	default:
		return false
	}
}
