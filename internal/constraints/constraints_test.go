package constraints

import (
	"testing"

	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/types"
)

func TestInferAndSolveSimpleTypeVar(t *testing.T) {
	opts := config.Default()
	intT := types.NewInstance(&types.TypeInfo{Fullname: "int"})
	tv := &types.TypeVar{Id: types.VarId{N: 1, Meta: true}, Name: "T"}

	cs := InferConstraints(tv, intT, SupertypeOf)
	solved := Solve([]types.VarId{tv.Id}, cs, opts)

	got, ok := solved[tv.Id]
	if !ok {
		t.Fatalf("expected T to be solved")
	}
	if got.String() != "int" {
		t.Fatalf("expected T = int, got %s", got.String())
	}
}

func TestInferConstraintsTupleTemplateWithVariadicBindsMiddle(t *testing.T) {
	opts := config.Default()
	intT := types.NewInstance(&types.TypeInfo{Fullname: "int"})
	strT := types.NewInstance(&types.TypeInfo{Fullname: "str"})
	ts := &types.TypeVarTuple{Id: types.VarId{N: 5, Meta: true}, Name: "Ts"}

	// tmpl = (int, *Ts); actual = (int, str, str).
	tmpl := &types.Tuple{Items: []types.Type{intT, &types.Unpack{Inner: ts}}}
	actual := &types.Tuple{Items: []types.Type{intT, strT, strT}}

	cs := InferConstraints(tmpl, actual, SupertypeOf)
	solved := Solve([]types.VarId{ts.Id}, cs, opts)

	got, ok := solved[ts.Id].(*types.Tuple)
	if !ok || len(got.Items) != 2 {
		t.Fatalf("expected Ts = (str, str), got %v", solved[ts.Id])
	}
	if got.Items[0].String() != "str" || got.Items[1].String() != "str" {
		t.Fatalf("expected Ts = (str, str), got (%s, %s)", got.Items[0].String(), got.Items[1].String())
	}
}

func TestInferConstraintsInstanceArgsInvariant(t *testing.T) {
	object := &types.TypeInfo{Fullname: "object"}
	listInfo := &types.TypeInfo{Fullname: "list", MRO: []*types.TypeInfo{}, TypeVars: []types.TypeVarDecl{{Name: "T"}}}
	listInfo.MRO = []*types.TypeInfo{listInfo, object}

	tv := &types.TypeVar{Id: types.VarId{N: 2, Meta: true}, Name: "T"}
	tmpl := types.NewInstance(listInfo, tv)
	intT := types.NewInstance(&types.TypeInfo{Fullname: "int"})
	actual := types.NewInstance(listInfo, intT)

	cs := InferConstraints(tmpl, actual, SupertypeOf)
	opts := config.Default()
	solved := Solve([]types.VarId{tv.Id}, cs, opts)
	if solved[tv.Id] == nil || solved[tv.Id].String() != "int" {
		t.Fatalf("expected T = int from list[T] vs list[int], got %v", solved[tv.Id])
	}
}
