package checker

import (
	"testing"

	"github.com/funvibe/typecore/internal/argmap"
	"github.com/funvibe/typecore/internal/ast"
	"github.com/funvibe/typecore/internal/binder"
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/diagnostics"
	"github.com/funvibe/typecore/internal/inference"
	"github.com/funvibe/typecore/internal/types"
)

type fixedLookup struct {
	declared map[ast.LiteralKey]types.Type
}

func (f fixedLookup) DeclaredType(key ast.LiteralKey) (types.Type, bool) {
	t, ok := f.declared[key]
	return t, ok
}

func intT() *types.Instance { return types.NewInstance(&types.TypeInfo{Fullname: "int"}) }
func strT() *types.Instance { return types.NewInstance(&types.TypeInfo{Fullname: "str"}) }

func TestCheckAssignRejectsIncompatibleType(t *testing.T) {
	lookup := fixedLookup{declared: map[ast.LiteralKey]types.Type{"x": intT()}}
	tc := New(lookup, config.Default())
	x := &ast.Var{Name: "x"}

	units := []Unit{
		&Assign{Target: x, Declared: intT(), Value: strT(), Pos: diagnostics.Pos{Line: 1, Column: 1}},
	}
	diags := tc.Check(units)
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrAssignIncompatible {
		t.Fatalf("expected one assignment-incompatible diagnostic, got %v", diags)
	}
	if diags[0].RunID == "" {
		t.Fatalf("expected diagnostics to be tagged with the traversal's run id")
	}
}

func TestCheckCallInfersGenericIdentity(t *testing.T) {
	lookup := fixedLookup{}
	tc := New(lookup, config.Default())

	tv := &types.TypeVar{Id: types.VarId{N: 1}, Name: "T"}
	callee := &types.Callable{
		ArgTypes:  []types.Type{tv},
		ArgKinds:  []types.ArgKind{types.POS},
		ArgNames:  []*string{nil},
		RetType:   tv,
		Variables: []types.TypeVarLike{tv},
	}
	units := []Unit{
		&Call{
			Callee:  callee,
			Actuals: []inference.Actual{{Type: intT(), Actual: argmap.Actual{Kind: types.POS}}},
			Pos:     diagnostics.Pos{Line: 2, Column: 1},
		},
	}
	diags := tc.Check(units)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for a successfully-inferred call, got %v", diags)
	}
}

func TestCheckCallReportsMissingArgument(t *testing.T) {
	lookup := fixedLookup{}
	tc := New(lookup, config.Default())

	// f(x: int, y: str) called with only one actual: y never gets bound.
	callee := &types.Callable{
		ArgTypes: []types.Type{intT(), strT()},
		ArgKinds: []types.ArgKind{types.POS, types.POS},
		ArgNames: []*string{nil, nil},
	}
	units := []Unit{
		&Call{
			Callee:  callee,
			Actuals: []inference.Actual{{Type: intT(), Actual: argmap.Actual{Kind: types.POS}}},
			Pos:     diagnostics.Pos{Line: 3, Column: 1},
		},
	}
	diags := tc.Check(units)
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrCallArity {
		t.Fatalf("expected one call-arity-mismatch diagnostic, got %v", diags)
	}
}

func TestCheckIsinstanceBranchNarrowsBothSides(t *testing.T) {
	lookup := fixedLookup{declared: map[ast.LiteralKey]types.Type{"x": &types.Union{Items: []types.Type{intT(), strT()}}}}
	tc := New(lookup, config.Default())
	x := &ast.Var{Name: "x"}
	tc.Binder().Push(x, &types.Union{Items: []types.Type{intT(), strT()}})

	var sawThenInt, sawElseStr bool
	typeOf := func(e ast.Expression) (types.Type, bool) {
		return tc.Binder().Get(e)
	}
	units := []Unit{
		&IsinstanceBranch{
			Cond:   &binder.Isinstance{Expr: x, Target: intT()},
			TypeOf: typeOf,
			Then: []Unit{
				unitFunc(func(tc *TypeChecker) {
					got, _ := tc.Binder().Get(x)
					sawThenInt = got != nil && got.String() == "int"
				}),
			},
			Else: []Unit{
				unitFunc(func(tc *TypeChecker) {
					got, _ := tc.Binder().Get(x)
					sawElseStr = got != nil && got.String() == "str"
				}),
			},
		},
	}
	tc.Check(units)
	if !sawThenInt {
		t.Fatalf("expected x narrowed to int inside the then-branch")
	}
	if !sawElseStr {
		t.Fatalf("expected x narrowed to str inside the else-branch")
	}
}

// unitFunc adapts a plain func to the Unit interface for test-only probes.
type unitFunc func(tc *TypeChecker)

func (f unitFunc) check(tc *TypeChecker) { f(tc) }
