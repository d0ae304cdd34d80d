// Package checker wires every other component into the single entry point
// the expression checker and driver consume (§6): TypeChecker.Check runs one
// pre-resolved file's checkable units through the binder, subtype checker,
// and inference engine, and returns a deduplicated, source-ordered
// diagnostic list.
//
// Grounded on internal/analyzer/analyzer.go's Analyzer/walker split: a
// stateless facade (here, the package-level Subtype/Join/Meet/Erase/Expand
// wrappers) plus a stateful per-traversal driver (Analyzer.Analyze /
// walker.addError/getErrors) that accumulates and dedupes diagnostics.
// Run identification extends that shape with a github.com/google/uuid tag
// per run (§5: "an outer driver may abandon a traversal" — the ID lets a
// caller tell two overlapping or superseded runs' diagnostics apart without
// a global).
package checker

import (
	"github.com/google/uuid"

	"github.com/funvibe/typecore/internal/argmap"
	"github.com/funvibe/typecore/internal/ast"
	"github.com/funvibe/typecore/internal/binder"
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/diagnostics"
	"github.com/funvibe/typecore/internal/erasure"
	"github.com/funvibe/typecore/internal/inference"
	"github.com/funvibe/typecore/internal/lattice"
	"github.com/funvibe/typecore/internal/scope"
	"github.com/funvibe/typecore/internal/subtype"
	"github.com/funvibe/typecore/internal/types"
)

// Subtype, Join, Meet, Erase and Expand are the stateless, collaborator-free
// operations §6 lists directly on the core (subtype, join, meet, erase,
// expand) — thin re-exports so a caller outside internal/ only needs to
// import this one package for the whole external interface.
func Subtype(left, right types.Type, opts config.Options) bool {
	return subtype.IsSubtype(left, right, opts)
}

func Join(a, b types.Type, opts config.Options) types.Type { return lattice.Join(a, b, opts) }
func Meet(a, b types.Type, opts config.Options) types.Type { return lattice.Meet(a, b, opts) }
func Erase(t types.Type) types.Type                        { return erasure.Erase(t) }
func Expand(t types.Type, m erasure.Subst) types.Type      { return erasure.Expand(t, m) }

// FindIsinstanceCheck re-exports §4.H's narrowing entry point under the name
// §6 gives it directly on the core.
func FindIsinstanceCheck(cond binder.Cond, typeOf binder.TypeOf, opts config.Options) (binder.TypeMap, binder.TypeMap) {
	return binder.FindIsinstanceCheck(cond, typeOf, opts)
}

// InferFunctionArguments and ApplyGenericArguments re-export §4.F under the
// names §6 gives them directly on the core.
func InferFunctionArguments(callee *types.Callable, actuals []inference.Actual, formalToActual [][]int, retContext types.Type, gen *types.IdGen, sink *diagnostics.Sink, pos diagnostics.Pos, opts config.Options) *types.Callable {
	return inference.InferFunctionArguments(callee, actuals, formalToActual, retContext, gen, sink, pos, opts)
}

func ApplyGenericArguments(callee *types.Callable, freshIds []types.VarId, inferred map[types.VarId]types.Type, declByFresh map[types.VarId]types.TypeVarLike, sink *diagnostics.Sink, pos diagnostics.Pos, opts config.Options) *types.Callable {
	return inference.ApplyGenericArguments(callee, freshIds, inferred, declByFresh, sink, pos, opts)
}

// Unit is one checkable item of a pre-resolved file. The core has no
// statement AST of its own (§1: parsing and resolution are out of scope),
// so a driver hands the checker a flat sequence of the handful of checkable
// shapes §7 enumerates diagnostics for; a real driver would derive this
// sequence by walking its own statement tree and emitting one Unit per
// assignment, call, and isinstance-guarded branch it finds.
type Unit interface {
	check(tc *TypeChecker)
}

// Assign checks that Value is assignable to Target's declared type (§7
// "assignment target incompatible"), and records the narrowed type in the
// binder (§4.H's assign_type).
type Assign struct {
	Target   ast.Expression
	Declared types.Type
	Value    types.Type
	Pos      diagnostics.Pos
}

func (u *Assign) check(tc *TypeChecker) {
	if !subtype.IsSubtype(u.Value, u.Declared, tc.opts) && !types.IsAny(u.Value) {
		tc.sink.Reportf(u.Pos, diagnostics.ErrAssignIncompatible,
			"incompatible types in assignment (expression has type %q, variable has type %q)",
			u.Value.String(), u.Declared.String())
	}
	tc.binder.AssignType(u.Target, u.Value, u.Declared, false)
}

// Call checks a call site: maps Actuals onto Callee's formals and checks
// their arity (§4.G), infers Callee's own type variables against them
// (§4.F), then verifies every actual is a subtype of its resolved formal
// (§7 "argument type incompatible"; testable property 10).
type Call struct {
	Callee     *types.Callable
	Actuals    []inference.Actual
	RetContext types.Type
	Pos        diagnostics.Pos
}

// formalsOf derives argmap.Formal descriptors straight from Callee's own
// parameter lists, so a caller only has to hand Call its actuals — the
// formal side of module G's mapping never needs to be hand-built.
func formalsOf(c *types.Callable) []argmap.Formal {
	formals := make([]argmap.Formal, len(c.ArgTypes))
	for i := range c.ArgTypes {
		var kind types.ArgKind
		if i < len(c.ArgKinds) {
			kind = c.ArgKinds[i]
		}
		var name string
		if i < len(c.ArgNames) && c.ArgNames[i] != nil {
			name = *c.ArgNames[i]
		}
		formals[i] = argmap.Formal{Kind: kind, Name: name}
	}
	return formals
}

func (u *Call) check(tc *TypeChecker) {
	formals := formalsOf(u.Callee)
	actuals := make([]argmap.Actual, len(u.Actuals))
	for i, a := range u.Actuals {
		actuals[i] = a.Actual
	}
	formalToActual := argmap.Map(actuals, formals)

	if ok, missing, tooMany := argmap.CheckArity(actuals, formals, formalToActual); !ok {
		for _, idx := range missing {
			tc.sink.Reportf(u.Pos, diagnostics.ErrCallArity, "missing argument for parameter %d", idx)
		}
		for _, idx := range tooMany {
			tc.sink.Reportf(u.Pos, diagnostics.ErrCallArity, "too many arguments for parameter %d", idx)
		}
	}

	resolved := inference.InferFunctionArguments(u.Callee, u.Actuals, formalToActual, u.RetContext, tc.gen, tc.sink, u.Pos, tc.opts)
	for formalIdx, actualIdxs := range formalToActual {
		if formalIdx >= len(resolved.ArgTypes) {
			continue
		}
		formalType := resolved.ArgTypes[formalIdx]
		for _, ai := range actualIdxs {
			if ai >= len(u.Actuals) {
				continue
			}
			actual := u.Actuals[ai]
			if types.IsAny(actual.Type) || types.IsAny(formalType) {
				continue
			}
			if !subtype.IsSubtype(actual.Type, formalType, tc.opts) {
				tc.sink.Reportf(u.Pos, diagnostics.ErrSubtype,
					"argument has incompatible type %q; expected %q",
					actual.Type.String(), formalType.String())
			}
		}
	}
}

// IsinstanceBranch narrows Cond's subject within Then and within Else, each
// in its own binder frame, and afterwards leaves the enclosing frame with
// the join of what the two branches left, mirroring checker.py's
// branch-local binder push/pop around an isinstance guard (§3.3, §4.H, S6).
type IsinstanceBranch struct {
	Cond    binder.Cond
	TypeOf  binder.TypeOf
	Then    []Unit
	Else    []Unit
	ThenPos diagnostics.Pos
}

func (u *IsinstanceBranch) check(tc *TypeChecker) {
	ifMap, elseMap := binder.FindIsinstanceCheck(u.Cond, u.TypeOf, tc.opts)

	wasBreaking := tc.binder.BreakingOut()
	tc.binder.PushFrame()
	tc.binder.PushFrame()
	if ifMap == nil {
		tc.binder.Unreachable()
	} else {
		for key, t := range ifMap {
			pushNarrowed(tc.binder, key, t)
		}
	}
	tc.runUnits(u.Then)
	tc.binder.PopFrame(2)
	tc.binder.Resume(wasBreaking)

	tc.binder.PushFrame()
	if elseMap == nil {
		tc.binder.Unreachable()
	} else {
		for key, t := range elseMap {
			pushNarrowed(tc.binder, key, t)
		}
	}
	tc.runUnits(u.Else)
	tc.binder.PopFrame(2)
	tc.binder.Resume(wasBreaking)
	tc.binder.PopFrame(0)
}

// pushNarrowed records a narrowed type for a literal key the binder has
// already seen under its original expression; FindIsinstanceCheck works in
// literal-key space while Binder.Push wants the original ast.Expression, so
// a synthetic key-only Var stands in (its LiteralKey is the key itself,
// which is all Binder.Push/addDependencies consult).
func pushNarrowed(b *binder.Binder, key ast.LiteralKey, t types.Type) {
	b.Push(&ast.Var{Name: string(key)}, t)
}

// TypeChecker runs the Unit sequence of one pre-resolved file, threading a
// single binder and scope stack through the whole traversal per §5 (one
// mutable binder stack per traversal, never shared across concurrent runs).
type TypeChecker struct {
	binder *binder.Binder
	scope  *scope.Stack
	sink   *diagnostics.Sink
	gen    *types.IdGen
	opts   config.Options
	RunID  string
}

// New creates a TypeChecker for one file traversal. lookup answers the
// binder's first-sight declared-type queries (§4.H).
func New(lookup ast.DeclarationLookup, opts config.Options) *TypeChecker {
	return &TypeChecker{
		binder: binder.New(lookup, opts),
		scope:  scope.New(),
		sink:   diagnostics.NewSink(),
		gen:    &types.IdGen{},
		opts:   opts,
		RunID:  uuid.NewString(),
	}
}

// Binder exposes the traversal's binder so a caller can drive
// push_frame/get/assign_type directly (§6 lists these as core entry points
// in their own right, not only through Unit).
func (tc *TypeChecker) Binder() *binder.Binder { return tc.binder }

// Scope exposes the traversal's enclosing function/class stack (§4.J).
func (tc *TypeChecker) Scope() *scope.Stack { return tc.scope }

// Sink exposes the traversal's diagnostic accumulator directly, e.g. for a
// caller that wants to render with diagnostics.TextSink rather than consume
// the plain slice Check returns.
func (tc *TypeChecker) Sink() *diagnostics.Sink { return tc.sink }

func (tc *TypeChecker) runUnits(units []Unit) {
	for _, u := range units {
		u.check(tc)
	}
}

// Check runs every unit of one pre-resolved file and returns its
// diagnostics, each tagged with this traversal's RunID, sorted in source
// order, deduplicated by (file, line, column, code, message) (§5, §7).
func (tc *TypeChecker) Check(units []Unit) []*diagnostics.DiagnosticError {
	tc.runUnits(units)
	out := tc.sink.All()
	for _, d := range out {
		d.RunID = tc.RunID
	}
	return out
}
