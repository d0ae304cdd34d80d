// Package tuplenf implements Tuple Normal Form, the canonical (prefix,
// variadic, suffix) representation used for variadic-tuple operations
// (§4.I). A tuple is canonically written (P_1, …, P_n, *V?, S_1, …, S_m)
// where *V is at most one unpack.
package tuplenf

import (
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/types"
)

// TNF is a tuple in canonical normal form.
type TNF struct {
	Prefix   []types.Type
	Variadic types.Type // nil when there is no variadic part
	Suffix   []types.Type
}

// FromItems builds the normal form of a list of tuple items, flattening any
// nested Unpack of another already-normalized Tuple.
func FromItems(items []types.Type) TNF {
	var prefix, suffix []types.Type
	var variadic types.Type
	seenVariadic := false

	for _, it := range items {
		up, isUnpack := it.(*types.Unpack)
		if !isUnpack {
			if seenVariadic {
				suffix = append(suffix, it)
			} else {
				prefix = append(prefix, it)
			}
			continue
		}
		if inner, ok := up.Inner.(*types.Tuple); ok {
			nested := FromItems(inner.Items)
			if seenVariadic {
				suffix = append(suffix, nested.Prefix...)
				if nested.Variadic != nil {
					variadic = nested.Variadic
				}
				suffix = append(suffix, nested.Suffix...)
			} else {
				prefix = append(prefix, nested.Prefix...)
				if nested.Variadic != nil {
					variadic = nested.Variadic
					seenVariadic = true
				}
				prefix = append(prefix, nested.Suffix...)
			}
			continue
		}
		// A single *V for a TypeVarTuple/ParamSpec/other variadic: at most
		// one is allowed (§3.1 invariant), so a second occurrence replaces
		// nothing — the caller is expected to have validated the invariant
		// upstream; we simply take the first and treat later ones as
		// suffix-starting.
		if !seenVariadic {
			variadic = up.Inner
			seenVariadic = true
		} else {
			suffix = append(suffix, it)
		}
	}

	return TNF{Prefix: prefix, Variadic: variadic, Suffix: suffix}
}

// FromStarArgument constructs the TNF for a single `*x` call argument.
// When x's type is already a Tuple, its own normal form is used directly.
// When x is a Union of Tuples, the per-branch TNFs are combined with
// CombineUnion. Any other variadic type (e.g. a TypeVarTuple, or a plain
// Sequence[T]) is wrapped as the sole variadic element.
func FromStarArgument(t types.Type) TNF {
	switch v := t.(type) {
	case *types.Tuple:
		return FromItems(v.Items)
	case *types.Union:
		tnfs := make([]TNF, len(v.Items))
		for i, m := range v.Items {
			tnfs[i] = FromStarArgument(m)
		}
		return CombineUnion(tnfs)
	default:
		return TNF{Variadic: t}
	}
}

// CombineConcat concatenates several TNFs in order (§4.I), used e.g. when a
// tuple literal mixes several `*spread` expressions and literal elements.
func CombineConcat(tnfs []TNF) TNF {
	var out TNF
	for _, t := range tnfs {
		if out.Variadic == nil {
			out.Prefix = append(out.Prefix, t.Prefix...)
			if t.Variadic != nil {
				out.Variadic = t.Variadic
				out.Suffix = append(out.Suffix, t.Suffix...)
			} else {
				out.Prefix = append(out.Prefix, t.Suffix...)
			}
		} else {
			out.Suffix = append(out.Suffix, t.Prefix...)
			if t.Variadic != nil {
				// Two variadic parts cannot both survive normal form;
				// collapse the newer one into the suffix as an unpack so no
				// information is silently dropped.
				out.Suffix = append(out.Suffix, &types.Unpack{Inner: t.Variadic})
			}
			out.Suffix = append(out.Suffix, t.Suffix...)
		}
	}
	return out
}

// CombineUnion combines several TNFs position-by-position, pushing any
// prefix/suffix position that runs off the shortest TNF's length into the
// variadic part (§4.I). Position-wise reconciliation uses the structural
// union constructor rather than the full join lattice: lattice.Join depends
// on subtype, and subtype is itself a required TNF consumer (§4.I), so
// reaching for it here would form an import cycle. opts is accepted for
// call-site stability but unused — NewUnion needs no Options.
func CombineUnion(tnfs []TNF, opts ...config.Options) TNF {
	_ = opts
	if len(tnfs) == 0 {
		return TNF{}
	}
	minPrefix := len(tnfs[0].Prefix)
	minSuffix := len(tnfs[0].Suffix)
	anyVariadic := false
	for _, t := range tnfs {
		if len(t.Prefix) < minPrefix {
			minPrefix = len(t.Prefix)
		}
		if len(t.Suffix) < minSuffix {
			minSuffix = len(t.Suffix)
		}
		if t.Variadic != nil {
			anyVariadic = true
		}
	}
	for _, t := range tnfs {
		if len(t.Prefix) != minPrefix || len(t.Suffix) != minSuffix {
			anyVariadic = true
		}
	}

	out := TNF{}
	for i := 0; i < minPrefix; i++ {
		elems := make([]types.Type, len(tnfs))
		for j, t := range tnfs {
			elems[j] = t.Prefix[i]
		}
		out.Prefix = append(out.Prefix, types.NewUnion(elems))
	}
	for i := 0; i < minSuffix; i++ {
		elems := make([]types.Type, len(tnfs))
		for j, t := range tnfs {
			elems[j] = t.suffixFromEnd(i)
		}
		out.Suffix = append([]types.Type{types.NewUnion(elems)}, out.Suffix...)
	}

	if anyVariadic {
		var rest []types.Type
		for _, t := range tnfs {
			rest = append(rest, t.Prefix[minPrefix:]...)
			if t.Variadic != nil {
				rest = append(rest, t.Variadic)
			}
			if minSuffix > 0 {
				rest = append(rest, t.Suffix[:len(t.Suffix)-minSuffix]...)
			} else {
				rest = append(rest, t.Suffix...)
			}
		}
		if len(rest) > 0 {
			out.Variadic = types.NewUnion(rest)
		} else {
			out.Variadic = &types.Uninhabited{}
		}
	}

	return out
}

func (t TNF) suffixFromEnd(i int) types.Type {
	return t.Suffix[len(t.Suffix)-1-i]
}

// GetItem returns the element at index i, treating the variadic part as
// infinitely extensible (§4.I): a negative or out-of-range index against
// the prefix/suffix falls into the variadic element if one exists.
func GetItem(t TNF, i int) (types.Type, bool) {
	n := len(t.Prefix)
	m := len(t.Suffix)
	if i >= 0 {
		if i < n {
			return t.Prefix[i], true
		}
		if t.Variadic != nil {
			return t.Variadic, true
		}
		j := i - n
		if j < m {
			return t.Suffix[j], true
		}
		return nil, false
	}
	j := -i - 1
	if j < m {
		return t.Suffix[m-1-j], true
	}
	if t.Variadic != nil {
		return t.Variadic, true
	}
	k := n - 1 - (j - m)
	if k >= 0 && k < n {
		return t.Prefix[k], true
	}
	return nil, false
}

// GetSlice returns the TNF for t[start:stop:step], treating the variadic
// part as infinitely extensible. Only the common step=1 case is resolved
// structurally; any other step falls back to re-wrapping the whole tuple as
// a single variadic element, since a strided slice of a variadic tuple has
// no finite normal form in general.
func GetSlice(t TNF, start, stop int, step int) TNF {
	if step != 1 {
		return TNF{Variadic: reassemble(t)}
	}
	n := len(t.Prefix)
	m := len(t.Suffix)

	if stop <= n && t.Variadic == nil {
		return TNF{Prefix: sliceClamp(t.Prefix, start, stop)}
	}
	if start >= n && t.Variadic == nil {
		return TNF{Prefix: sliceClamp(t.Prefix, start, stop)}
	}

	var prefix []types.Type
	if start < n {
		end := stop
		if end > n {
			end = n
		}
		prefix = sliceClamp(t.Prefix, start, end)
	}
	_ = m
	return TNF{Prefix: prefix, Variadic: t.Variadic, Suffix: nil}
}

func sliceClamp(items []types.Type, start, stop int) []types.Type {
	if start < 0 {
		start = 0
	}
	if stop > len(items) {
		stop = len(items)
	}
	if start >= stop {
		return nil
	}
	return items[start:stop]
}

func reassemble(t TNF) types.Type {
	items := append([]types.Type{}, t.Prefix...)
	if t.Variadic != nil {
		items = append(items, &types.Unpack{Inner: t.Variadic})
	}
	items = append(items, t.Suffix...)
	return &types.Tuple{Items: items}
}
