package lattice

import (
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/types"
)

// IsOverlapping reports whether some runtime value could inhabit both s and
// t (§4.D.1). Top-level type variables are erased to their upper bound
// before comparison, matching the rule that a bare TypeVar overlaps with
// whatever its bound allows.
func IsOverlapping(s, t types.Type, usePromotions bool, opts config.Options) bool {
	s = stripTypeVar(s)
	t = stripTypeVar(t)

	if types.IsAny(s) || types.IsAny(t) {
		return true
	}

	if su, ok := s.(*types.Union); ok {
		for _, m := range su.Items {
			if IsOverlapping(m, t, usePromotions, opts) {
				return true
			}
		}
		return false
	}
	if tu, ok := t.(*types.Union); ok {
		for _, m := range tu.Items {
			if IsOverlapping(s, m, usePromotions, opts) {
				return true
			}
		}
		return false
	}

	if opts.StrictOptional {
		sNone, tNone := types.IsNone(s), types.IsNone(t)
		if sNone != tNone {
			return false
		}
	}

	if stt, ok := s.(*types.TypeType); ok {
		if ttt, ok := t.(*types.TypeType); ok {
			return IsOverlapping(stt.Item, ttt.Item, usePromotions, opts)
		}
		if ti, ok := t.(*types.Instance); ok {
			return ti.TypeInfo.Fullname == "object" || ti.TypeInfo.Fullname == "type"
		}
		return false
	}
	if _, ok := t.(*types.TypeType); ok {
		if si, ok := s.(*types.Instance); ok {
			return si.TypeInfo.Fullname == "object" || si.TypeInfo.Fullname == "type"
		}
		return false
	}

	si, sOK := s.(*types.Instance)
	ti, tOK := t.(*types.Instance)
	if sOK && tOK {
		if si.TypeInfo.InMRO(ti.TypeInfo) || ti.TypeInfo.InMRO(si.TypeInfo) {
			return true
		}
		if usePromotions {
			if si.TypeInfo.Promote != nil && IsOverlapping(si.TypeInfo.Promote, t, usePromotions, opts) {
				return true
			}
			if ti.TypeInfo.Promote != nil && IsOverlapping(s, ti.TypeInfo.Promote, usePromotions, opts) {
				return true
			}
		}
		return false
	}

	return true
}

func stripTypeVar(t types.Type) types.Type {
	switch v := t.(type) {
	case *types.TypeVar:
		if v.UpperBound != nil {
			return stripTypeVar(v.UpperBound)
		}
		return types.NewAny(types.AnyImplementationArtifact)
	default:
		return t
	}
}
