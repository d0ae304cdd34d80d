package subtype

import (
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/tuplenf"
	"github.com/funvibe/typecore/internal/types"
)

// tupleIsSubtype decides l <: right for a Tuple left-hand side (§4.C),
// normalizing both sides through Tuple Normal Form (§4.I) so a `*Ts` or
// `*tuple[int, ...]` unpack is compared structurally instead of as one
// opaque element.
func tupleIsSubtype(l *types.Tuple, right types.Type, opts config.Options, checker ParamChecker) bool {
	switch r := right.(type) {
	case *types.Tuple:
		ok := tupleTNFIsSubtype(tuplenf.FromItems(l.Items), tuplenf.FromItems(r.Items), opts, checker)
		if ok && l.PartialFallback != nil && r.PartialFallback != nil {
			return IsSubtypeChecked(l.PartialFallback, r.PartialFallback, opts, checker)
		}
		return ok
	case *types.Instance:
		return tupleInstanceIsSubtype(l, r, opts, checker)
	default:
		return false
	}
}

// tupleTNFIsSubtype compares two tuples already reduced to normal form. A
// fixed-length right side requires an exact, variadic-free shape match; a
// variadic right side absorbs whatever of the left's middle elements don't
// fit its own prefix/suffix.
func tupleTNFIsSubtype(ltnf, rtnf tuplenf.TNF, opts config.Options, checker ParamChecker) bool {
	if rtnf.Variadic == nil {
		if ltnf.Variadic != nil {
			return false
		}
		if len(ltnf.Prefix) != len(rtnf.Prefix) {
			return false
		}
		for i := range ltnf.Prefix {
			if !checker(ltnf.Prefix[i], rtnf.Prefix[i], types.Invariant, opts) {
				return false
			}
		}
		return true
	}

	required := len(rtnf.Prefix) + len(rtnf.Suffix)
	if ltnf.Variadic == nil && len(ltnf.Prefix) < required {
		return false
	}

	for i := 0; i < len(rtnf.Prefix); i++ {
		elem := ltnf.Variadic
		if i < len(ltnf.Prefix) {
			elem = ltnf.Prefix[i]
		}
		if !checker(elem, rtnf.Prefix[i], types.Invariant, opts) {
			return false
		}
	}
	for i := 0; i < len(rtnf.Suffix); i++ {
		elem := ltnf.Variadic
		if i < len(ltnf.Suffix) {
			elem = ltnf.Suffix[len(ltnf.Suffix)-1-i]
		}
		if !checker(elem, rtnf.Suffix[len(rtnf.Suffix)-1-i], types.Invariant, opts) {
			return false
		}
	}

	if ltnf.Variadic != nil {
		return checker(ltnf.Variadic, rtnf.Variadic, types.Invariant, opts)
	}
	for i := len(rtnf.Prefix); i < len(ltnf.Prefix)-len(rtnf.Suffix); i++ {
		if !IsSubtypeChecked(ltnf.Prefix[i], rtnf.Variadic, opts, checker) {
			return false
		}
	}
	return true
}

// tupleInstanceIsSubtype checks a Tuple against a generic Sequence-like
// Instance (§4.C): every normalized element, including the variadic one if
// present, must be a subtype of the instance's element type argument.
func tupleInstanceIsSubtype(l *types.Tuple, r *types.Instance, opts config.Options, checker ParamChecker) bool {
	tnf := tuplenf.FromItems(l.Items)
	elems := make([]types.Type, 0, len(tnf.Prefix)+len(tnf.Suffix)+1)
	elems = append(elems, tnf.Prefix...)
	if tnf.Variadic != nil {
		elems = append(elems, tnf.Variadic)
	}
	elems = append(elems, tnf.Suffix...)

	for _, elem := range elems {
		target := elem
		if len(r.Args) > 0 {
			target = r.Args[0]
		}
		if !IsSubtypeChecked(elem, target, opts, checker) {
			return false
		}
	}
	if l.PartialFallback != nil {
		return IsSubtypeChecked(l.PartialFallback, r, opts, checker)
	}
	return true
}
