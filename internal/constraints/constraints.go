// Package constraints generates <:/> constraints from template/actual type
// pairs and solves them by join/meet (§4.E).
package constraints

import (
	"github.com/funvibe/typecore/internal/subtype"
	"github.com/funvibe/typecore/internal/tuplenf"
	"github.com/funvibe/typecore/internal/types"
)

// Direction is the direction constraint generation assumes between template
// and actual.
type Direction int

const (
	SubtypeOf Direction = iota
	SupertypeOf
)

// Op is the relational operator a solved Constraint places on its variable.
type Op int

const (
	// SupertypeOfOp records a lower bound: var :> target.
	SupertypeOfOp Op = iota
	// SubtypeOfOp records an upper bound: var <: target.
	SubtypeOfOp
)

// Constraint is the triple (var_id, op, target) of §4.E.
type Constraint struct {
	VarId  types.VarId
	Op     Op
	Target types.Type
}

// InferConstraints emits constraints such that substituting their solution
// makes template <direction> actual hold (§4.E).
func InferConstraints(template, actual types.Type, direction Direction) []Constraint {
	var out []Constraint
	infer(template, actual, direction, &out)
	return out
}

func infer(template, actual types.Type, direction Direction, out *[]Constraint) {
	if types.IsAny(actual) {
		// actual = Any: tie every template variable to Any in both
		// directions ("trivial" constraints, §4.E).
		for _, id := range types.FreeTypeVars(template) {
			*out = append(*out, Constraint{VarId: id, Op: SupertypeOfOp, Target: actual})
			*out = append(*out, Constraint{VarId: id, Op: SubtypeOfOp, Target: actual})
		}
		return
	}

	switch tmpl := template.(type) {
	case *types.TypeVar:
		op := SupertypeOfOp
		if direction == SubtypeOf {
			op = SubtypeOfOp
		}
		*out = append(*out, Constraint{VarId: tmpl.Id, Op: op, Target: actual})

	case *types.Instance:
		actualInst, ok := actual.(*types.Instance)
		if !ok {
			return
		}
		var c, a *types.Instance
		if direction == SupertypeOf {
			if !actualInst.TypeInfo.InMRO(tmpl.TypeInfo) {
				return
			}
			mapped, ok := subtype.MapInstanceToSupertype(actualInst, tmpl.TypeInfo)
			if !ok {
				return
			}
			c, a = tmpl, mapped
		} else {
			if !tmpl.TypeInfo.InMRO(actualInst.TypeInfo) {
				return
			}
			mapped, ok := subtype.MapInstanceToSupertype(tmpl, actualInst.TypeInfo)
			if !ok {
				return
			}
			c, a = mapped, actualInst
		}
		n := len(c.Args)
		if len(a.Args) < n {
			n = len(a.Args)
		}
		for i := 0; i < n; i++ {
			// The class's declared variance picks the direction: covariant
			// keeps it, contravariant flips it, and an invariant parameter
			// emits both the constraint and its negation (§4.E).
			switch c.TypeInfo.VarianceOf(i) {
			case types.Covariant:
				infer(c.Args[i], a.Args[i], direction, out)
			case types.Contravariant:
				infer(c.Args[i], a.Args[i], flip(direction), out)
			default:
				infer(c.Args[i], a.Args[i], SupertypeOf, out)
				infer(c.Args[i], a.Args[i], SubtypeOf, out)
			}
		}

	case *types.Callable:
		actualC, ok := actual.(*types.Callable)
		if !ok {
			return
		}
		n := len(tmpl.ArgTypes)
		if len(actualC.ArgTypes) < n {
			n = len(actualC.ArgTypes)
		}
		flipped := flip(direction)
		for i := 0; i < n; i++ {
			// Contravariant on arguments: negate by flipping direction.
			infer(tmpl.ArgTypes[i], actualC.ArgTypes[i], flipped, out)
		}
		// Covariant on return.
		infer(tmpl.RetType, actualC.RetType, direction, out)

	case *types.Tuple:
		actualT, ok := actual.(*types.Tuple)
		if !ok {
			return
		}
		inferTupleConstraints(tmpl, actualT, direction, out)

	case *types.Union:
		// Let the solver pick: actual must match at least one branch, so
		// we just emit each branch's constraints against the same actual.
		for _, member := range tmpl.Items {
			infer(member, actual, direction, out)
		}

	case *types.TypeVarTuple:
		inferVariadicTarget(tmpl.Id, normalizeVariadicActual(actual), direction, out)

	case *types.ParamSpec:
		inferVariadicTarget(tmpl.Id, normalizeVariadicActual(actual), direction, out)

	case *types.Unpack:
		infer(tmpl.Inner, actual, direction, out)
	}
}

// inferTupleConstraints handles a Tuple template, reducing both sides to
// Tuple Normal Form (§4.I) so a `*Ts` element is matched structurally rather
// than length-for-length with the actual tuple.
func inferTupleConstraints(tmpl, actualT *types.Tuple, direction Direction, out *[]Constraint) {
	tmplTNF := tuplenf.FromItems(tmpl.Items)
	actualTNF := tuplenf.FromItems(actualT.Items)

	if tmplTNF.Variadic == nil {
		if actualTNF.Variadic != nil || len(tmplTNF.Prefix) != len(actualTNF.Prefix) {
			return
		}
		for i := range tmplTNF.Prefix {
			infer(tmplTNF.Prefix[i], actualTNF.Prefix[i], direction, out)
		}
		return
	}

	if len(actualTNF.Prefix) < len(tmplTNF.Prefix) || len(actualTNF.Suffix) < len(tmplTNF.Suffix) {
		return
	}
	for i := range tmplTNF.Prefix {
		infer(tmplTNF.Prefix[i], actualTNF.Prefix[i], direction, out)
	}
	for i := range tmplTNF.Suffix {
		infer(tmplTNF.Suffix[len(tmplTNF.Suffix)-1-i], actualTNF.Suffix[len(actualTNF.Suffix)-1-i], direction, out)
	}

	// Whatever of actual's middle doesn't map onto tmpl's fixed prefix/suffix
	// is what tmpl's *Ts/**P captures; rewrap it as a tuple and bind it.
	middle := append([]types.Type{}, actualTNF.Prefix[len(tmplTNF.Prefix):]...)
	if actualTNF.Variadic != nil {
		middle = append(middle, &types.Unpack{Inner: actualTNF.Variadic})
	}
	if rest := len(actualTNF.Suffix) - len(tmplTNF.Suffix); rest > 0 {
		middle = append(middle, actualTNF.Suffix[:rest]...)
	}

	varLike, ok := tmplTNF.Variadic.(types.TypeVarLike)
	if !ok {
		return
	}
	inferVariadicTarget(varLike.VarId(), &types.Tuple{Items: middle}, direction, out)
}

// normalizeVariadicActual reduces a Tuple actual through Tuple Normal Form
// before it is bound to a TypeVarTuple/ParamSpec constraint target, so a
// tuple carrying its own nested `*Unpack` collapses to one flat shape first.
func normalizeVariadicActual(actual types.Type) types.Type {
	actualTuple, ok := actual.(*types.Tuple)
	if !ok {
		return actual
	}
	tnf := tuplenf.FromItems(actualTuple.Items)
	items := make([]types.Type, 0, len(tnf.Prefix)+len(tnf.Suffix)+1)
	items = append(items, tnf.Prefix...)
	if tnf.Variadic != nil {
		items = append(items, &types.Unpack{Inner: tnf.Variadic})
	}
	items = append(items, tnf.Suffix...)
	return &types.Tuple{Items: items}
}

func inferVariadicTarget(varId types.VarId, target types.Type, direction Direction, out *[]Constraint) {
	op := SupertypeOfOp
	if direction == SubtypeOf {
		op = SubtypeOfOp
	}
	*out = append(*out, Constraint{VarId: varId, Op: op, Target: target})
}

func flip(d Direction) Direction {
	if d == SubtypeOf {
		return SupertypeOf
	}
	return SubtypeOf
}
