package erasure

import (
	"testing"

	"github.com/funvibe/typecore/internal/types"
)

func intInstance() *types.Instance {
	return types.NewInstance(&types.TypeInfo{Fullname: "int"})
}

func listInfo(elem *types.TypeInfo) *types.TypeInfo {
	return &types.TypeInfo{
		Fullname: "list",
		TypeVars: []types.TypeVarDecl{{Name: "T", Variance: types.Covariant}},
	}
}

func TestEraseIdempotent(t *testing.T) {
	tv := &types.TypeVar{Id: types.VarId{N: 1}, Name: "T"}
	listT := types.NewInstance(listInfo(nil), tv)

	once := Erase(listT)
	twice := Erase(once)
	if once.String() != twice.String() {
		t.Fatalf("erase not idempotent: %s vs %s", once.String(), twice.String())
	}
}

func TestEraseCallablePreservesFallback(t *testing.T) {
	fallback := intInstance()
	tv := &types.TypeVar{Id: types.VarId{N: 1}, Name: "T"}
	c := &types.Callable{
		ArgTypes: []types.Type{tv},
		ArgKinds: []types.ArgKind{types.POS},
		RetType:  tv,
		Fallback: fallback,
	}
	erased := Erase(c).(*types.Callable)
	if erased.Fallback != fallback {
		t.Fatalf("expected fallback preserved")
	}
	if len(erased.ArgTypes) != 0 {
		t.Fatalf("expected erased callable to have no args, got %v", erased.ArgTypes)
	}
	if !types.IsNone(erased.RetType) {
		t.Fatalf("expected erased callable to return None, got %s", erased.RetType.String())
	}
}

func TestExpandRoundTripWhenClosed(t *testing.T) {
	tv := &types.TypeVar{Id: types.VarId{N: 1}, Name: "T"}
	listT := types.NewInstance(listInfo(nil), tv)
	m := Subst{tv.Id: intInstance()}

	once := Expand(listT, m)
	twice := Expand(once, m)
	if once.String() != twice.String() {
		t.Fatalf("expand not idempotent for closed substitution: %s vs %s", once.String(), twice.String())
	}
	if once.String() != "list[int]" {
		t.Fatalf("expected list[int], got %s", once.String())
	}
}

func TestExpandRemovesBoundVariable(t *testing.T) {
	tv := &types.TypeVar{Id: types.VarId{N: 1}, Name: "T"}
	c := &types.Callable{
		ArgTypes:  []types.Type{tv},
		ArgKinds:  []types.ArgKind{types.POS},
		RetType:   tv,
		Variables: []types.TypeVarLike{tv},
	}
	out := Expand(c, Subst{tv.Id: intInstance()}).(*types.Callable)
	if len(out.Variables) != 0 {
		t.Fatalf("expected bound variable removed from Variables, got %v", out.Variables)
	}
}
