// Package argmap maps actual call arguments (positional, *, **, named) to
// the formal parameters of a callable (§4.G).
package argmap

import "github.com/funvibe/typecore/internal/types"

// Actual is one call-site argument.
type Actual struct {
	Kind types.ArgKind
	Name string // only meaningful when Kind.IsNamed()
	// StarArity is the known fixed length of a STAR actual's Tuple type, or
	// -1 if its arity is not statically known (spread of a non-Tuple
	// iterable).
	StarArity int
}

// Formal is one parameter of the callable being called.
type Formal struct {
	Kind types.ArgKind
	Name string
}

// Map computes formal_to_actual: for each formal (by index), the indices of
// the actuals that bind it (§4.G).
func Map(actuals []Actual, formals []Formal) [][]int {
	formalToActual := make([][]int, len(formals))
	nextPos := 0
	starStarFormal := -1
	for i, f := range formals {
		if f.Kind == types.STARSTAR {
			starStarFormal = i
		}
	}

	advancePos := func() int {
		for nextPos < len(formals) {
			k := formals[nextPos].Kind
			if k == types.POS || k == types.POSOpt || k == types.NAMED || k == types.NAMEDOpt {
				return nextPos
			}
			if k == types.STAR {
				return nextPos
			}
			nextPos++
		}
		return -1
	}

	for ai, a := range actuals {
		switch {
		case a.Kind == types.POS:
			idx := advancePos()
			if idx == -1 {
				continue
			}
			formalToActual[idx] = append(formalToActual[idx], ai)
			if formals[idx].Kind != types.STAR {
				nextPos = idx + 1
			}

		case a.Kind == types.STAR:
			if a.StarArity >= 0 {
				for n := 0; n < a.StarArity; n++ {
					idx := advancePos()
					if idx == -1 {
						break
					}
					formalToActual[idx] = append(formalToActual[idx], ai)
					if formals[idx].Kind != types.STAR {
						nextPos = idx + 1
					}
				}
			} else {
				for {
					idx := advancePos()
					if idx == -1 || formals[idx].Kind == types.STARSTAR {
						break
					}
					formalToActual[idx] = append(formalToActual[idx], ai)
					if formals[idx].Kind != types.STAR {
						nextPos++
					} else {
						break
					}
				}
			}

		case a.Kind.IsNamed() && a.Kind != types.STARSTAR:
			found := -1
			for i, f := range formals {
				if f.Name == a.Name && (f.Kind == types.NAMED || f.Kind == types.NAMEDOpt || f.Kind == types.POS || f.Kind == types.POSOpt) {
					found = i
					break
				}
			}
			if found == -1 {
				found = starStarFormal
			}
			if found >= 0 {
				formalToActual[found] = append(formalToActual[found], ai)
			}

		case a.Kind == types.STARSTAR:
			usedNames := map[string]bool{}
			for i, f := range formals {
				if f.Kind == types.NAMED || f.Kind == types.NAMEDOpt {
					if !usedNames[f.Name] {
						formalToActual[i] = append(formalToActual[i], ai)
					}
				}
			}
			if starStarFormal >= 0 {
				formalToActual[starStarFormal] = append(formalToActual[starStarFormal], ai)
			}
		}
	}

	return formalToActual
}

// CheckArity reports whether every mandatory formal has exactly one bound
// actual, and that any duplicate binding only involves STAR/STAR_STAR
// actuals (§4.G).
func CheckArity(actuals []Actual, formals []Formal, formalToActual [][]int) (ok bool, missing []int, tooMany []int) {
	for i, f := range formals {
		bound := formalToActual[i]
		switch {
		case len(bound) == 0:
			if !f.Kind.IsOptional() {
				missing = append(missing, i)
			}
		case len(bound) > 1:
			allStar := true
			for _, ai := range bound {
				k := actuals[ai].Kind
				if k != types.STAR && k != types.STARSTAR {
					allStar = false
					break
				}
			}
			if !allStar {
				tooMany = append(tooMany, i)
			}
		}
	}
	return len(missing) == 0 && len(tooMany) == 0, missing, tooMany
}
