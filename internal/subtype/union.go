package subtype

import (
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/types"
)

// SimplifyUnion is the full union constructor: it starts from
// types.NewUnion's flatten/Any-collapse/dedupe-by-string/singleton-unwrap
// and additionally absorbs any member that is a proper subtype of another
// member (S2: Union.of([int, Employee, Manager]) with Manager <: Employee
// becomes Union[int, Employee]). This is kept out of package types because
// it needs IsSubtype, which would otherwise import types and create a
// cycle — the same split mypy itself uses between UnionType.make_union and
// typeops.make_simplified_union (SPEC_FULL.md §3).
func SimplifyUnion(items []types.Type, opts config.Options) types.Type {
	bare := types.NewUnion(items)
	u, ok := bare.(*types.Union)
	if !ok {
		return bare
	}

	keep := make([]types.Type, 0, len(u.Items))
	for i, it := range u.Items {
		absorbed := false
		for j, other := range u.Items {
			if i == j {
				continue
			}
			if SameType(it, other) {
				if j < i {
					absorbed = true
				}
				continue
			}
			if IsSubtype(it, other, opts) && !IsSubtype(other, it, opts) {
				absorbed = true
				break
			}
		}
		if !absorbed {
			keep = append(keep, it)
		}
	}

	if len(keep) == 1 {
		return keep[0]
	}
	return &types.Union{Items: keep}
}
