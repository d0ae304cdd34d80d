// Package scope tracks the stack of enclosing function/class/module
// contexts a traversal is inside, and answers self-type/enclosing-class
// queries inference and override checking need (§4.J).
package scope

import "github.com/funvibe/typecore/internal/types"

// FunctionContext is one enclosing function's relevant state: its own
// declared type variables (used to compute free type variables of an
// enclosing generic class) and its return-type context, if known.
type FunctionContext struct {
	Name       string
	TypeParams []types.TypeVarLike
	ReturnCtx  types.Type
}

// ClassContext is one enclosing class.
type ClassContext struct {
	Info *types.TypeInfo
	// SelfArgs is the type-argument list that instantiates Info's own type
	// parameters to the identity substitution (T -> T), used to build
	// ActiveSelfType.
	SelfArgs []types.Type
}

// Stack is the scope stack for one function-body traversal. It is not
// shared between traversals (§5: nested-function traversals push an
// isolated stack).
type Stack struct {
	functions []*FunctionContext
	classes   []*ClassContext
}

// New returns an empty Stack.
func New() *Stack {
	return &Stack{}
}

// PushFunction enters a function context; the caller must call PopFunction
// when the traversal of that function body ends.
func (s *Stack) PushFunction(fc *FunctionContext) {
	s.functions = append(s.functions, fc)
}

// PopFunction leaves the current function context.
func (s *Stack) PopFunction() {
	if len(s.functions) > 0 {
		s.functions = s.functions[:len(s.functions)-1]
	}
}

// PushClass enters a class context.
func (s *Stack) PushClass(cc *ClassContext) {
	s.classes = append(s.classes, cc)
}

// PopClass leaves the current class context.
func (s *Stack) PopClass() {
	if len(s.classes) > 0 {
		s.classes = s.classes[:len(s.classes)-1]
	}
}

// TopFunction returns the innermost enclosing function, or nil at module
// scope.
func (s *Stack) TopFunction() *FunctionContext {
	if len(s.functions) == 0 {
		return nil
	}
	return s.functions[len(s.functions)-1]
}

// ActiveClass returns the innermost class context, or nil when no class is
// entered. Function contexts are kept on a separate stack and do not hide
// it, so this is the same context EnclosingClass returns.
func (s *Stack) ActiveClass() *ClassContext {
	if len(s.classes) == 0 {
		return nil
	}
	return s.classes[len(s.classes)-1]
}

// EnclosingClass returns the nearest class context regardless of
// intervening functions (used to resolve `self` inside a nested closure).
func (s *Stack) EnclosingClass() *ClassContext {
	return s.ActiveClass()
}

// ActiveSelfType produces the self instance of the active class with its
// type parameters filled in as themselves (T -> T), or nil if there is no
// active class.
func (s *Stack) ActiveSelfType() *types.Instance {
	cc := s.ActiveClass()
	if cc == nil {
		return nil
	}
	return &types.Instance{TypeInfo: cc.Info, Args: cc.SelfArgs}
}

// FreeTypeVarsOfEnclosing returns the free type variables contributed by
// every function and class context currently on the stack — the set
// inference must treat as already-bound rather than solvable (§4.J).
func (s *Stack) FreeTypeVarsOfEnclosing() map[types.VarId]bool {
	out := map[types.VarId]bool{}
	for _, fc := range s.functions {
		for _, tp := range fc.TypeParams {
			out[tp.VarId()] = true
		}
	}
	for _, cc := range s.classes {
		for _, a := range cc.SelfArgs {
			for _, id := range types.FreeTypeVars(a) {
				out[id] = true
			}
		}
	}
	return out
}
