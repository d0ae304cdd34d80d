// Package binder implements occurrence typing: the frame-stack state
// machine that refines the type of an expression along a control-flow path
// (§3.3, §4.H).
package binder

import (
	"github.com/funvibe/typecore/internal/ast"
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/lattice"
	"github.com/funvibe/typecore/internal/subtype"
	"github.com/funvibe/typecore/internal/types"
)

// Frame maps an expression's literal key to its refined type in one branch
// of control flow.
type Frame map[ast.LiteralKey]types.Type

func (f Frame) clone() Frame {
	out := make(Frame, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Binder is the occurrence-typing state for one function-body traversal
// (§5: not shared between traversals; a nested function pushes its own
// isolated Binder).
type Binder struct {
	frames          []Frame
	optionsOnReturn [][]Frame
	declarations    map[ast.LiteralKey]types.Type
	dependencies    map[ast.LiteralKey]map[ast.LiteralKey]bool
	breakingOut     bool
	lastPopChanged  bool
	tryFrames       map[int]bool
	loopFrames      []int

	lookup ast.DeclarationLookup
	opts   config.Options
}

// New returns a Binder with a single empty top-level frame.
func New(lookup ast.DeclarationLookup, opts config.Options) *Binder {
	return &Binder{
		frames:          []Frame{{}},
		optionsOnReturn: [][]Frame{},
		declarations:    map[ast.LiteralKey]types.Type{},
		dependencies:    map[ast.LiteralKey]map[ast.LiteralKey]bool{},
		tryFrames:       map[int]bool{},
		lookup:          lookup,
		opts:            opts,
	}
}

func (b *Binder) top() int { return len(b.frames) - 1 }

// PushFrame enters a new nested frame.
func (b *Binder) PushFrame() {
	b.frames = append(b.frames, Frame{})
	b.optionsOnReturn = append(b.optionsOnReturn, nil)
}

// MarkTryFrame records the frame just pushed as an enclosing try-frame, so
// that every AssignType inside it also escapes to its except/finally
// handlers (§4.H).
func (b *Binder) MarkTryFrame() {
	b.tryFrames[b.top()] = true
}

// UnmarkTryFrame clears the try-frame marker, typically paired with
// PopFrame for the frame MarkTryFrame was called on.
func (b *Binder) UnmarkTryFrame() {
	delete(b.tryFrames, b.top())
}

// PushLoopFrame records the current frame as a loop's body frame, the
// target for HandleBreak/HandleContinue escapes.
func (b *Binder) PushLoopFrame() {
	b.loopFrames = append(b.loopFrames, b.top())
}

// PopLoopFrame leaves the innermost loop context.
func (b *Binder) PopLoopFrame() {
	if len(b.loopFrames) > 0 {
		b.loopFrames = b.loopFrames[:len(b.loopFrames)-1]
	}
}

// PopFrame pops the current frame and merges its accumulated escape options
// into the new top frame. When fallThrough > 0 and the frame did not break
// out, a snapshot of the popped frame also escapes to the ancestor
// fallThrough levels above (so a loop/try body that falls through still
// contributes its bindings to the frame it is nested in).
func (b *Binder) PopFrame(fallThrough int) Frame {
	if fallThrough > 0 && !b.breakingOut {
		b.AllowJump(-fallThrough)
	}

	result := b.frames[b.top()]
	b.frames = b.frames[:b.top()]
	options := b.optionsOnReturn[len(b.optionsOnReturn)-1]
	b.optionsOnReturn = b.optionsOnReturn[:len(b.optionsOnReturn)-1]

	b.lastPopChanged = b.updateFromOptions(options)
	return result
}

// BreakingOut reports whether the current flow is known unreachable.
func (b *Binder) BreakingOut() bool { return b.breakingOut }

// Unreachable marks the current flow as unreachable (explicit return,
// raise, or a statement the checker otherwise knows never falls through).
func (b *Binder) Unreachable() { b.breakingOut = true }

// HandleBreak records an escape to the innermost loop's post-loop frame and
// marks the current flow unreachable.
func (b *Binder) HandleBreak() {
	if len(b.loopFrames) > 0 {
		b.AllowJump(b.loopFrames[len(b.loopFrames)-1])
	}
	b.breakingOut = true
}

// HandleContinue records an escape back to the innermost loop's frame and
// marks the current flow unreachable.
func (b *Binder) HandleContinue() {
	if len(b.loopFrames) > 0 {
		b.AllowJump(b.loopFrames[len(b.loopFrames)-1])
	}
	b.breakingOut = true
}

// Resume clears breakingOut; callers restore the pre-frame value after a
// PushFrame/PopFrame pair the way mypy's binder frame_context does, so a
// break inside one branch doesn't leak unreachability into its siblings.
func (b *Binder) Resume(wasBreakingOut bool) { b.breakingOut = wasBreakingOut }

func (b *Binder) pushAt(key ast.LiteralKey, t types.Type, index int) {
	b.frames[index][key] = t
}

func (b *Binder) getAt(key ast.LiteralKey, index int) (types.Type, bool) {
	for i := index; i >= 0; i-- {
		if t, ok := b.frames[i][key]; ok {
			return t, true
		}
	}
	return nil, false
}

// Push records that expr's refined type at this point in the flow is t.
func (b *Binder) Push(expr ast.Expression, t types.Type) {
	key, ok := expr.LiteralKey()
	if !ok {
		return
	}
	if _, seen := b.declarations[key]; !seen {
		decl, _ := b.lookup.DeclaredType(key)
		b.declarations[key] = decl
		b.addDependencies(key)
	}
	b.pushAt(key, t, b.top())
}

// addDependencies links key with every already-known key it is a prefix or
// suffix of (§4.H: "assigning x.a invalidates x.a.b").
func (b *Binder) addDependencies(key ast.LiteralKey) {
	for other := range b.declarations {
		if other == key {
			continue
		}
		if ast.DependsOn(key, other) {
			if b.dependencies[key] == nil {
				b.dependencies[key] = map[ast.LiteralKey]bool{}
			}
			b.dependencies[key][other] = true
		}
		if ast.DependsOn(other, key) {
			if b.dependencies[other] == nil {
				b.dependencies[other] = map[ast.LiteralKey]bool{}
			}
			b.dependencies[other][key] = true
		}
	}
}

// Get returns the most specific known refinement of expr, if any.
func (b *Binder) Get(expr ast.Expression) (types.Type, bool) {
	key, ok := expr.LiteralKey()
	if !ok {
		return nil, false
	}
	return b.getAt(key, b.top())
}

func (b *Binder) cleanseKey(key ast.LiteralKey) {
	for _, f := range b.frames {
		delete(f, key)
	}
}

// InvalidateDependencies removes every key that depends on expr's key (but
// not the key itself), e.g. assigning x invalidates x.a and x.a.b.
func (b *Binder) InvalidateDependencies(expr ast.Expression) {
	key, ok := expr.LiteralKey()
	if !ok {
		return
	}
	for dep := range b.dependencies[key] {
		b.cleanseKey(dep)
	}
}

func (b *Binder) mostRecentEnclosingType(expr ast.Expression, t types.Type) types.Type {
	key, ok := expr.LiteralKey()
	if !ok {
		return nil
	}
	decl := b.declarations[key]
	if types.IsAny(t) {
		return decl
	}
	result := decl
	for _, f := range b.frames {
		if v, ok := f[key]; ok && subtype.IsSubtype(t, v, b.opts) {
			result = v
		}
	}
	return result
}

// AssignType records the effect of `expr = inferred` where expr's
// originally-declared type is declared (§4.H).
func (b *Binder) AssignType(expr ast.Expression, inferred, declared types.Type, restrictAny bool) {
	if _, ok := expr.LiteralKey(); !ok {
		return
	}
	b.InvalidateDependencies(expr)
	if declared == nil {
		return
	}
	if !subtype.IsSubtype(inferred, declared, b.opts) {
		return
	}

	recent := b.mostRecentEnclosingType(expr, inferred)
	switch {
	case types.IsAny(recent) && !restrictAny:
		// Keep the existing Any binding; narrowing from Any is opt-in.
	case types.IsAny(inferred):
		b.Push(expr, declared)
	default:
		b.Push(expr, inferred)
	}

	for idx := range b.tryFrames {
		b.AllowJump(idx)
	}
}

// AllowJump copies the union of frames above index into
// optionsOnReturn[index], so that frame's eventual PopFrame sees this
// escape when merging (§4.H). A negative index counts back from the top of
// optionsOnReturn, mirroring PopFrame's own fallThrough convention.
func (b *Binder) AllowJump(index int) {
	if index < 0 {
		index += len(b.optionsOnReturn)
	}
	if index < 0 || index >= len(b.optionsOnReturn) {
		return
	}
	frame := Frame{}
	for _, f := range b.frames[index+1:] {
		for k, v := range f {
			frame[k] = v
		}
	}
	b.optionsOnReturn[index] = append(b.optionsOnReturn[index], frame)
}

// updateFromOptions merges the escape frames accumulated for the
// just-popped frame into the new top frame, joining each key's values
// across options — unless it is declared Any, in which case it is only
// kept when every option agrees (§4.H).
func (b *Binder) updateFromOptions(options []Frame) bool {
	if len(options) == 0 {
		return false
	}
	keys := map[ast.LiteralKey]bool{}
	for _, f := range options {
		for k := range f {
			keys[k] = true
		}
	}

	changed := false
	top := b.top()
	for key := range keys {
		current, hasCurrent := b.getAt(key, top)
		var resultingValues []types.Type
		allPresent := true
		for _, f := range options {
			if v, ok := f[key]; ok {
				resultingValues = append(resultingValues, v)
			} else if hasCurrent {
				resultingValues = append(resultingValues, current)
			} else {
				allPresent = false
				break
			}
		}
		if !allPresent || len(resultingValues) == 0 {
			continue
		}

		var merged types.Type
		if types.IsAny(b.declarations[key]) {
			merged = resultingValues[0]
			for _, v := range resultingValues[1:] {
				if !subtype.SameType(merged, v) {
					merged = types.NewAny(types.AnyFromAnotherAny)
					break
				}
			}
		} else {
			merged = resultingValues[0]
			for _, v := range resultingValues[1:] {
				merged = lattice.Join(merged, v, b.opts)
			}
		}

		if !hasCurrent || !subtype.SameType(merged, current) {
			b.pushAt(key, merged, top)
			changed = true
		}
	}
	return changed
}
