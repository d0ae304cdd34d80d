package subtype

import (
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/types"
)

// ParamChecker compares a class's type argument pair under its declared
// variance; is_subtype's default is DefaultVarianceChecker, but join/meet
// and protocol checks supply their own when they need stricter behaviour
// (§4.C).
type ParamChecker func(l, r types.Type, variance types.Variance, opts config.Options) bool

// DefaultVarianceChecker implements covariant (l <: r), contravariant (r <:
// l), and invariant (mutual subtype) comparison.
func DefaultVarianceChecker(l, r types.Type, variance types.Variance, opts config.Options) bool {
	switch variance {
	case types.Covariant:
		return IsSubtype(l, r, opts)
	case types.Contravariant:
		return IsSubtype(r, l, opts)
	default:
		return IsSubtype(l, r, opts) && IsSubtype(r, l, opts)
	}
}

// IsSubtype is the asymmetric <: decision (§4.C), using the default
// variance checker for nested type arguments.
func IsSubtype(left, right types.Type, opts config.Options) bool {
	return IsSubtypeChecked(left, right, opts, DefaultVarianceChecker)
}

// IsSubtypeChecked is IsSubtype parameterised by the variance checker used
// for nested Instance type arguments (§4.C's param_checker parameter).
func IsSubtypeChecked(left, right types.Type, opts config.Options, checker ParamChecker) bool {
	switch right.(type) {
	case *types.Any, *types.Unbound, *types.Erased:
		return true
	}

	if ru, ok := right.(*types.Union); ok {
		if _, leftIsUnion := left.(*types.Union); !leftIsUnion {
			for _, member := range ru.Items {
				if IsSubtypeChecked(left, member, opts, checker) {
					return true
				}
			}
			return false
		}
	}

	switch l := left.(type) {
	case *types.Any, *types.Unbound, *types.Erased, *types.Deleted:
		return true
	case *types.NoneType:
		if _, ok := right.(*types.NoneType); ok {
			return true
		}
		if opts.StrictOptional {
			if ri, ok := right.(*types.Instance); ok && ri.TypeInfo.Fullname == "object" {
				return true
			}
			return false
		}
		return true
	case *types.Uninhabited:
		return true
	case *types.Instance:
		return instanceIsSubtype(l, right, opts, checker)
	case *types.TypeVar:
		if rv, ok := right.(*types.TypeVar); ok && rv.Id == l.Id {
			return true
		}
		if l.UpperBound != nil {
			return IsSubtypeChecked(l.UpperBound, right, opts, checker)
		}
		return false
	case *types.Callable:
		return callableIsSubtype(l, right, opts)
	case *types.Overloaded:
		return overloadedIsSubtype(l, right, opts)
	case *types.Tuple:
		return tupleIsSubtype(l, right, opts, checker)
	case *types.Union:
		for _, it := range l.Items {
			if !IsSubtypeChecked(it, right, opts, checker) {
				return false
			}
		}
		return true
	case *types.TypeType:
		return typeTypeIsSubtype(l, right, opts)
	case *types.TypedDict:
		if r, ok := right.(*types.TypedDict); ok {
			return typedDictIsSubtype(l, r, opts, checker)
		}
		if r, ok := right.(*types.Instance); ok && l.Fallback != nil {
			return IsSubtypeChecked(l.Fallback, r, opts, checker)
		}
		return false
	case *types.Literal:
		if r, ok := right.(*types.Literal); ok {
			return SameType(l, r)
		}
		if l.Fallback != nil {
			return IsSubtypeChecked(l.Fallback, right, opts, checker)
		}
		return false
	case *types.ParamSpec:
		if rv, ok := right.(*types.ParamSpec); ok {
			return rv.Id == l.Id
		}
		return false
	case *types.TypeVarTuple:
		if rv, ok := right.(*types.TypeVarTuple); ok {
			return rv.Id == l.Id
		}
		return false
	case *types.Partial:
		return true
	default:
		return false
	}
}

func instanceIsSubtype(l *types.Instance, right types.Type, opts config.Options, checker ParamChecker) bool {
	if l.TypeInfo.FallbackToAny {
		return true
	}
	if l.TypeInfo.Promote != nil && IsSubtypeChecked(l.TypeInfo.Promote, right, opts, checker) {
		return true
	}
	switch r := right.(type) {
	case *types.Instance:
		if r.TypeInfo.IsProtocol && !l.TypeInfo.InMRO(r.TypeInfo) {
			return protocolConforms(l, r, opts)
		}
		mapped, ok := MapInstanceToSupertype(l, r.TypeInfo)
		if !ok {
			return false
		}
		for i := range mapped.Args {
			if i >= len(r.Args) {
				break
			}
			variance := r.TypeInfo.VarianceOf(i)
			if !checker(mapped.Args[i], r.Args[i], variance, opts) {
				return false
			}
		}
		return true
	case *types.TypeType:
		return l.TypeInfo.Fullname == "type" || l.TypeInfo.Fullname == "object"
	default:
		return false
	}
}

func typedDictIsSubtype(l, r *types.TypedDict, opts config.Options, checker ParamChecker) bool {
	for _, item := range r.Items {
		lt, ok := l.Get(item.Name)
		if !ok {
			return false
		}
		if !SameType(lt, item.Type) {
			return false
		}
		if r.RequiredKeys[item.Name] && !l.RequiredKeys[item.Name] {
			return false
		}
	}
	return true
}

func overloadedIsSubtype(l *types.Overloaded, right types.Type, opts config.Options) bool {
	switch r := right.(type) {
	case *types.Callable:
		for _, item := range l.Items {
			if callableIsSubtype(item, r, opts) {
				return true
			}
		}
		return false
	case *types.Overloaded:
		if len(l.Items) != len(r.Items) {
			return false
		}
		for i := range l.Items {
			if !callableIsSubtype(l.Items[i], r.Items[i], opts) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func typeTypeIsSubtype(l *types.TypeType, right types.Type, opts config.Options) bool {
	switch r := right.(type) {
	case *types.TypeType:
		return IsSubtype(l.Item, r.Item, opts)
	case *types.Callable:
		return r.IsTypeObj && IsSubtype(l.Item, r.RetType, opts)
	case *types.Instance:
		return r.TypeInfo.Fullname == "type" || r.TypeInfo.Fullname == "object"
	default:
		return false
	}
}
