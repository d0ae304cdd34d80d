package constraints

import (
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/lattice"
	"github.com/funvibe/typecore/internal/subtype"
	"github.com/funvibe/typecore/internal/types"
)

// Solve partitions constraints by variable id and, for each of varIds (in
// order), returns its inferred type or nil if unsolved (§4.E):
// candidate = join(lower bounds) if any lower bound exists, else
// meet(upper bounds), else unsolved; the candidate is then verified against
// every bound and discarded (back to unsolved) if it fails either check.
func Solve(varIds []types.VarId, cs []Constraint, opts config.Options) map[types.VarId]types.Type {
	lowers := map[types.VarId][]types.Type{}
	uppers := map[types.VarId][]types.Type{}
	for _, c := range cs {
		if c.Op == SupertypeOfOp {
			lowers[c.VarId] = append(lowers[c.VarId], c.Target)
		} else {
			uppers[c.VarId] = append(uppers[c.VarId], c.Target)
		}
	}

	out := make(map[types.VarId]types.Type, len(varIds))
	for _, id := range varIds {
		lb := lowers[id]
		ub := uppers[id]

		var candidate types.Type
		switch {
		case len(lb) > 0:
			candidate = lb[0]
			for _, t := range lb[1:] {
				candidate = lattice.Join(candidate, t, opts)
			}
		case len(ub) > 0:
			candidate = ub[0]
			for _, t := range ub[1:] {
				candidate = lattice.Meet(candidate, t, opts)
			}
		default:
			continue // unsolved
		}

		ok := true
		for _, u := range ub {
			if !subtype.IsSubtype(candidate, u, opts) {
				ok = false
				break
			}
		}
		for _, l := range lb {
			if !subtype.IsSubtype(l, candidate, opts) {
				ok = false
				break
			}
		}
		if ok {
			out[id] = candidate
		}
	}
	return out
}
