package subtype

import (
	"testing"

	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/types"
)

func tupleIntT() *types.Instance { return types.NewInstance(&types.TypeInfo{Fullname: "int"}) }
func tupleStrT() *types.Instance { return types.NewInstance(&types.TypeInfo{Fullname: "str"}) }

func TestTupleIsSubtypeFixedLengthExactMatch(t *testing.T) {
	opts := config.Default()
	l := &types.Tuple{Items: []types.Type{tupleIntT(), tupleStrT()}}
	r := &types.Tuple{Items: []types.Type{tupleIntT(), tupleStrT()}}
	if !IsSubtype(l, r, opts) {
		t.Fatalf("expected (int, str) <: (int, str)")
	}
}

func TestTupleIsSubtypeFixedLengthMismatchRejected(t *testing.T) {
	opts := config.Default()
	l := &types.Tuple{Items: []types.Type{tupleIntT()}}
	r := &types.Tuple{Items: []types.Type{tupleIntT(), tupleStrT()}}
	if IsSubtype(l, r, opts) {
		t.Fatalf("expected a shorter fixed tuple not to be a subtype of a longer one")
	}
}

func TestTupleIsSubtypeVariadicAbsorbsMiddle(t *testing.T) {
	opts := config.Default()
	// l = (int, int, int); r = (int, *tuple[int, ...]) via Unpack of int.
	l := &types.Tuple{Items: []types.Type{tupleIntT(), tupleIntT(), tupleIntT()}}
	r := &types.Tuple{Items: []types.Type{tupleIntT(), &types.Unpack{Inner: tupleIntT()}}}
	if !IsSubtype(l, r, opts) {
		t.Fatalf("expected (int, int, int) <: (int, *int) with the trailing ints absorbed by the variadic")
	}
}

func TestTupleIsSubtypeVariadicRejectsWrongMiddleType(t *testing.T) {
	opts := config.Default()
	l := &types.Tuple{Items: []types.Type{tupleIntT(), tupleStrT(), tupleIntT()}}
	r := &types.Tuple{Items: []types.Type{tupleIntT(), &types.Unpack{Inner: tupleIntT()}}}
	if IsSubtype(l, r, opts) {
		t.Fatalf("expected a str in the middle to reject subsumption by *int")
	}
}
