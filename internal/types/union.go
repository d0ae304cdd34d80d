package types

// NewUnion is the low-level Union constructor (mirrors mypy's bare
// UnionType.make_union): it flattens nested unions, collapses to Any if any
// member is Any, removes structural duplicates by rendered string, and
// unwraps a singleton result. It deliberately does NOT perform
// subclass-absorption (dropping Manager when Employee is also present) —
// that needs is_subtype, which would import this package and create a
// cycle; full simplification including absorption lives in
// subtype.SimplifyUnion, grounded on mypy's typeops.make_simplified_union
// being a distinct, higher-level wrapper around the bare constructor
// (SPEC_FULL.md §3).
func NewUnion(items []Type) Type {
	flat := make([]Type, 0, len(items))
	var flatten func(Type)
	flatten = func(t Type) {
		if u, ok := t.(*Union); ok {
			for _, it := range u.Items {
				flatten(it)
			}
			return
		}
		flat = append(flat, t)
	}
	for _, it := range items {
		flatten(it)
	}

	for _, it := range flat {
		if IsAny(it) {
			return it
		}
	}

	seen := make(map[string]bool)
	deduped := make([]Type, 0, len(flat))
	for _, it := range flat {
		key := it.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, it)
	}

	if len(deduped) == 1 {
		return deduped[0]
	}
	if len(deduped) == 0 {
		return &Uninhabited{}
	}
	return &Union{Items: deduped}
}

// IsAny reports whether t is the Any variant.
func IsAny(t Type) bool {
	_, ok := t.(*Any)
	return ok
}

// IsNone reports whether t is the None variant.
func IsNone(t Type) bool {
	_, ok := t.(*NoneType)
	return ok
}

// IsUninhabited reports whether t is the bottom type.
func IsUninhabited(t Type) bool {
	_, ok := t.(*Uninhabited)
	return ok
}

// NormalizeTypeType collapses TypeType(Union[A,B]) to Union[TypeType(A),
// TypeType(B)] (§4.A, "TypeType.normalised").
func NormalizeTypeType(item Type) Type {
	if u, ok := item.(*Union); ok {
		wrapped := make([]Type, len(u.Items))
		for i, it := range u.Items {
			wrapped[i] = NormalizeTypeType(it)
		}
		return NewUnion(wrapped)
	}
	return &TypeType{Item: item}
}
