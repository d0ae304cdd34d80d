// Package types defines the closed algebra of type terms this checker
// operates on (§3.1, §4.A): a tagged sum with exhaustive dispatch via Go
// type switches rather than double-dispatch through runtime inheritance
// (§9, "open recursion through visitors"). Values are immutable; every
// "modification" documented elsewhere in this repo is a structural
// copy-with-replacement, so sharing a Type between two call sites is always
// safe.
package types

import (
	"strconv"

	"github.com/funvibe/typecore/internal/diagnostics"
)

// Type is implemented by every variant in §3.1. The unexported marker
// method seals the set to this package, matching the "tagged enum with
// exhaustive matching" design note (§9).
type Type interface {
	String() string
	typeNode()
}

// Located is implemented by every variant; all carry an optional source
// position for diagnostics, ignored by structural equality and hashing.
type Located interface {
	Pos() diagnostics.Pos
}

// VarId is a globally-unique identifier for a type variable, with a "meta"
// bit used during two-pass inference to distinguish fresh unification
// variables from the user's own declared ones (§3.1).
type VarId struct {
	N    int64
	Meta bool
}

func (id VarId) String() string {
	if id.Meta {
		return "?" + strconv.FormatInt(id.N, 10)
	}
	return "'" + strconv.FormatInt(id.N, 10)
}

// IdGen hands out fresh VarIds. It is owned by whichever traversal needs
// it (the checker's traversal, for inference) rather than kept as a package global — the source's
// per-thread "current experiment" global is exactly the pattern §9 asks us
// not to repeat.
type IdGen struct {
	next int64
}

// Fresh returns a new, never-before-issued VarId with the given meta bit.
func (g *IdGen) Fresh(meta bool) VarId {
	g.next++
	return VarId{N: g.next, Meta: meta}
}

// Variance is a type parameter's co-/contra-/in-variance with respect to
// subtyping of the parameterised type (glossary).
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "+"
	case Contravariant:
		return "-"
	default:
		return ""
	}
}

// ArgKind classifies a formal parameter or an actual call argument (§3.2).
type ArgKind int

const (
	POS ArgKind = iota
	POSOpt
	NAMED
	NAMEDOpt
	STAR
	STARSTAR
)

func (k ArgKind) String() string {
	switch k {
	case POS:
		return "POS"
	case POSOpt:
		return "POS_OPT"
	case NAMED:
		return "NAMED"
	case NAMEDOpt:
		return "NAMED_OPT"
	case STAR:
		return "STAR"
	case STARSTAR:
		return "STAR_STAR"
	default:
		return "?"
	}
}

// IsOptional reports whether an unfilled formal of this kind is acceptable.
func (k ArgKind) IsOptional() bool {
	return k == POSOpt || k == NAMEDOpt || k == STAR || k == STARSTAR
}

// IsPositional reports whether actuals of this kind can fill a positional
// slot.
func (k ArgKind) IsPositional() bool {
	return k == POS || k == POSOpt || k == STAR
}

// IsNamed reports whether actuals of this kind carry / accept a name.
func (k ArgKind) IsNamed() bool {
	return k == NAMED || k == NAMEDOpt || k == STARSTAR
}
