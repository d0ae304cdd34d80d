// Package ast defines the minimal surface the core consumes from its
// external collaborators: a pre-resolved AST with per-expression literal-key
// fingerprints, and the declared-type lookup the binder needs the first
// time it sees a key (§3.3, §4.H). Lexing, parsing, and semantic resolution
// themselves are explicitly out of scope (§1); this package only shapes the
// contract.
package ast

import (
	"strconv"
	"strings"

	"github.com/funvibe/typecore/internal/diagnostics"
	"github.com/funvibe/typecore/internal/types"
)

// NodeKind distinguishes the handful of expression shapes the core cares
// about: whether an expression is a local variable reference, an attribute
// access, a module reference, or something else pre-resolution already
// classified.
type NodeKind int

const (
	NodeOther NodeKind = iota
	NodeLocal
	NodeAttribute
	NodeIndex
	NodeModuleRef
)

// Node is the common surface of every AST node the core touches: a position
// for diagnostics and a pre-resolved kind.
type Node interface {
	Pos() diagnostics.Pos
	Kind() NodeKind
}

// Expression is a Node that can additionally be fingerprinted for binder
// lookups. LiteralKey returns ok=false for expressions with no stable
// fingerprint (e.g. a fresh call result) — the binder then never tracks a
// refinement for it.
type Expression interface {
	Node
	LiteralKey() (LiteralKey, bool)
}

// LiteralKey canonically identifies an expression for binder purposes, e.g.
// "x.a[0]" (§3.3, glossary).
type LiteralKey string

// DeclarationLookup is asked, the first time the binder sees a key, for that
// variable's originally-declared type (§4.H, push: "record its declaration
// by asking the pre-resolution for the variable's declared type").
type DeclarationLookup interface {
	DeclaredType(key LiteralKey) (types.Type, bool)
}

// Var is a local-variable reference expression.
type Var struct {
	Position diagnostics.Pos
	Name     string
}

func (v *Var) Pos() diagnostics.Pos { return v.Position }
func (v *Var) Kind() NodeKind       { return NodeLocal }
func (v *Var) LiteralKey() (LiteralKey, bool) {
	return LiteralKey(v.Name), true
}

// Attr is a dotted attribute access, e.g. `x.a`.
type Attr struct {
	Position diagnostics.Pos
	Base     Expression
	Name     string
}

func (a *Attr) Pos() diagnostics.Pos { return a.Position }
func (a *Attr) Kind() NodeKind       { return NodeAttribute }
func (a *Attr) LiteralKey() (LiteralKey, bool) {
	base, ok := a.Base.LiteralKey()
	if !ok {
		return "", false
	}
	return LiteralKey(string(base) + "." + a.Name), true
}

// Index is a constant-index subscript, e.g. `x[0]`. Non-constant indices
// have no stable fingerprint.
type Index struct {
	Position diagnostics.Pos
	Base     Expression
	Const    int
	IsConst  bool
}

func (i *Index) Pos() diagnostics.Pos { return i.Position }
func (i *Index) Kind() NodeKind       { return NodeIndex }
func (i *Index) LiteralKey() (LiteralKey, bool) {
	if !i.IsConst {
		return "", false
	}
	base, ok := i.Base.LiteralKey()
	if !ok {
		return "", false
	}
	return LiteralKey(string(base) + "[" + strconv.Itoa(i.Const) + "]"), true
}

// Other is a catch-all expression with no literal key, e.g. a call result
// or literal constant, used in tests and by callers that only need Pos.
type Other struct {
	Position diagnostics.Pos
}

func (o *Other) Pos() diagnostics.Pos { return o.Position }
func (o *Other) Kind() NodeKind       { return NodeOther }
func (o *Other) LiteralKey() (LiteralKey, bool) {
	return "", false
}

// DependsOn reports whether child's literal key depends on base (e.g. `x`
// is a dependency of `x.a` and `x.a.b`), per §4.H's "assigning x.a
// invalidates x.a.b".
func DependsOn(base, child LiteralKey) bool {
	if base == child {
		return true
	}
	s := string(child)
	b := string(base)
	if !strings.HasPrefix(s, b) {
		return false
	}
	rest := s[len(b):]
	return strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, "[")
}
