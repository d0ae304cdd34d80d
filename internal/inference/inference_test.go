package inference

import (
	"testing"

	"github.com/funvibe/typecore/internal/argmap"
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/constraints"
	"github.com/funvibe/typecore/internal/diagnostics"
	"github.com/funvibe/typecore/internal/types"
)

func intInfo() *types.TypeInfo { return &types.TypeInfo{Fullname: "int"} }
func intT() *types.Instance    { return types.NewInstance(intInfo()) }
func strT() *types.Instance    { return types.NewInstance(&types.TypeInfo{Fullname: "str"}) }

// identity[T](x: T) -> T
func identityCallable(tv *types.TypeVar) *types.Callable {
	return &types.Callable{
		ArgTypes:  []types.Type{tv},
		ArgKinds:  []types.ArgKind{types.POS},
		ArgNames:  []*string{nil},
		RetType:   tv,
		Variables: []types.TypeVarLike{tv},
	}
}

func TestInferFunctionArgumentsSolvesSimpleIdentity(t *testing.T) {
	gen := &types.IdGen{}
	tv := &types.TypeVar{Id: types.VarId{N: 1}, Name: "T"}
	callee := identityCallable(tv)

	actuals := []Actual{{Type: intT(), Actual: argmap.Actual{Kind: types.POS}}}
	formalToActual := [][]int{{0}}

	sink := diagnostics.NewSink()
	result := InferFunctionArguments(callee, actuals, formalToActual, nil, gen, sink, diagnostics.Pos{}, config.Default())

	if result.RetType.String() != "int" {
		t.Fatalf("expected T solved to int, got %s", result.RetType.String())
	}
	if !sink.Empty() {
		t.Fatalf("expected no diagnostics for a clean solve, got %v", sink.All())
	}
}

func TestInferFunctionArgumentsUnsolvedBecomesAnyWithDiagnostic(t *testing.T) {
	gen := &types.IdGen{}
	tv := &types.TypeVar{Id: types.VarId{N: 2}, Name: "T"}
	// f() -> T, called with no arguments that mention T.
	callee := &types.Callable{RetType: tv, Variables: []types.TypeVarLike{tv}}

	sink := diagnostics.NewSink()
	result := InferFunctionArguments(callee, nil, nil, nil, gen, sink, diagnostics.Pos{}, config.Default())

	if !types.IsAny(result.RetType) {
		t.Fatalf("expected unsolved T to become Any, got %s", result.RetType.String())
	}
	if sink.Empty() {
		t.Fatalf("expected a could-not-infer diagnostic")
	}
}

// f(*args: *Ts) binds Ts to the tuple of all of args' actual types, not one
// constraint per actual against the same variable.
func TestInferFormalConstraintsConcatenatesVariadicFormalActuals(t *testing.T) {
	ts := &types.TypeVarTuple{Id: types.VarId{N: 4}, Name: "Ts"}
	formalType := &types.Unpack{Inner: ts}
	actuals := []Actual{
		{Type: intT(), Actual: argmap.Actual{Kind: types.STAR}},
		{Type: strT(), Actual: argmap.Actual{Kind: types.STAR}},
	}

	cs := inferFormalConstraints(formalType, []int{0, 1}, actuals, constraints.SupertypeOf)
	if len(cs) != 1 {
		t.Fatalf("expected exactly one constraint binding Ts, got %d: %+v", len(cs), cs)
	}
	target, ok := cs[0].Target.(*types.Tuple)
	if !ok || len(target.Items) != 2 {
		t.Fatalf("expected Ts bound to a two-element tuple, got %+v", cs[0].Target)
	}
	if target.Items[0].String() != "int" || target.Items[1].String() != "str" {
		t.Fatalf("expected (int, str), got (%s, %s)", target.Items[0].String(), target.Items[1].String())
	}
}

func TestInferFunctionArgumentsUsesReturnContext(t *testing.T) {
	gen := &types.IdGen{}
	tv := &types.TypeVar{Id: types.VarId{N: 3}, Name: "T"}
	callee := &types.Callable{RetType: tv, Variables: []types.TypeVarLike{tv}}

	sink := diagnostics.NewSink()
	result := InferFunctionArguments(callee, nil, nil, strT(), gen, sink, diagnostics.Pos{}, config.Default())

	if result.RetType.String() != "str" {
		t.Fatalf("expected T solved from the return context to str, got %s", result.RetType.String())
	}
}
