package diagnostics

import "sort"

// Sink accumulates diagnostics for a single checking run, deduplicating by
// (file, line, column, code, message) and yielding them sorted by source
// position. It is a single-writer accumulator — see §5's concurrency model —
// one Sink per traversal, never shared across concurrent runs.
type Sink struct {
	seen  map[string]bool
	items []*DiagnosticError
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{seen: make(map[string]bool)}
}

// Report adds d to the sink unless an identical diagnostic was already
// recorded at the same site.
func (s *Sink) Report(d *DiagnosticError) {
	if d == nil {
		return
	}
	k := d.key()
	if s.seen[k] {
		return
	}
	s.seen[k] = true
	s.items = append(s.items, d)
}

// Reportf is a convenience wrapper building and reporting a DiagnosticError
// in one call.
func (s *Sink) Reportf(pos Pos, code Code, format string, args ...interface{}) {
	s.Report(New(pos, code, format, args...))
}

// Internal reports an internal_error diagnostic: an exhaustive switch hit an
// impossible arm, or another invariant the core relies on was violated. It
// never panics; the caller should still return a best-effort Any-shaped
// result alongside it.
func (s *Sink) Internal(pos Pos, format string, args ...interface{}) {
	s.Report(New(pos, ErrInternal, format, args...))
}

// Empty reports whether no diagnostics have been recorded.
func (s *Sink) Empty() bool {
	return len(s.items) == 0
}

// All returns every recorded diagnostic sorted in source order within a
// file. Pos.File participates in the sort key, so diagnostics from
// different files recorded in one Sink come out ordered by file name, not
// by the order in which they were reported.
func (s *Sink) All() []*DiagnosticError {
	out := make([]*DiagnosticError, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Pos != b.Pos {
			return a.Pos.less(b.Pos)
		}
		return a.Code < b.Code
	})
	return out
}
