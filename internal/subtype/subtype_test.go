package subtype

import (
	"testing"

	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/diagnostics"
	"github.com/funvibe/typecore/internal/types"
)

func mkInfo(name string, bases ...*types.TypeInfo) *types.TypeInfo {
	mro := []*types.TypeInfo{}
	info := &types.TypeInfo{Fullname: name}
	mro = append(mro, info)
	for _, b := range bases {
		mro = append(mro, b.MRO...)
	}
	seen := map[string]bool{}
	uniq := mro[:0]
	for _, m := range mro {
		if seen[m.Fullname] {
			continue
		}
		seen[m.Fullname] = true
		uniq = append(uniq, m)
	}
	info.MRO = uniq
	return info
}

func mkGenericInfo(name string, variance types.Variance, bases ...*types.TypeInfo) *types.TypeInfo {
	info := mkInfo(name, bases...)
	info.TypeVars = []types.TypeVarDecl{{Name: "T", Variance: variance}}
	return info
}

func TestReflexivityOfEquality(t *testing.T) {
	intInfo := mkInfo("int")
	cases := []types.Type{
		types.NewAny(types.AnyExplicit),
		types.NewNone(),
		types.NewInstance(intInfo),
		&types.TypeVar{Id: types.VarId{N: 1}, Name: "T"},
	}
	for _, c := range cases {
		if !SameType(c, c) {
			t.Errorf("same_type(%s, %s) expected true", c, c)
		}
	}
}

func TestReflexivityOfSubtyping(t *testing.T) {
	opts := config.Default()
	intInfo := mkInfo("int")
	cases := []types.Type{
		types.NewAny(types.AnyExplicit),
		types.NewNone(),
		types.NewInstance(intInfo),
	}
	for _, c := range cases {
		if !IsSubtype(c, c, opts) {
			t.Errorf("is_subtype(%s, %s) expected true", c, c)
		}
	}
}

func TestAnyIsTopAndBottom(t *testing.T) {
	opts := config.Default()
	any := types.NewAny(types.AnyExplicit)
	intT := types.NewInstance(mkInfo("int"))
	if !IsSubtype(intT, any, opts) {
		t.Errorf("expected int <: Any")
	}
	if !IsSubtype(any, intT, opts) {
		t.Errorf("expected Any <: int")
	}
}

func TestTransitivitySmallStep(t *testing.T) {
	opts := config.Default()
	object := mkInfo("object")
	animal := mkInfo("Animal", object)
	dog := mkInfo("Dog", animal)

	a := types.NewInstance(dog)
	b := types.NewInstance(animal)
	c := types.NewInstance(object)

	if !(IsSubtype(a, b, opts) && IsSubtype(b, c, opts) && IsSubtype(a, c, opts)) {
		t.Fatalf("expected Dog <: Animal <: object, and Dog <: object")
	}
}

// S1 — covariance.
func TestS1Covariance(t *testing.T) {
	opts := config.Default()
	object := mkInfo("object")
	a := mkInfo("A", object)
	b := mkInfo("B", a)

	listInfo := mkGenericInfo("list", types.Invariant)
	listB := types.NewInstance(listInfo, types.NewInstance(b))
	listA := types.NewInstance(listInfo, types.NewInstance(a))
	if IsSubtype(listB, listA, opts) {
		t.Errorf("expected List[B] not<: List[A] under invariance")
	}

	seqInfo := mkGenericInfo("Sequence", types.Covariant)
	seqB := types.NewInstance(seqInfo, types.NewInstance(b))
	seqA := types.NewInstance(seqInfo, types.NewInstance(a))
	if !IsSubtype(seqB, seqA, opts) {
		t.Errorf("expected Sequence[B] <: Sequence[A] under covariance")
	}
}

// S2 — union absorption.
func TestS2UnionAbsorption(t *testing.T) {
	opts := config.Default()
	object := mkInfo("object")
	employee := mkInfo("Employee", object)
	manager := mkInfo("Manager", employee)
	intInfo := mkInfo("int")

	result := SimplifyUnion([]types.Type{
		types.NewInstance(intInfo),
		types.NewInstance(employee),
		types.NewInstance(manager),
	}, opts)

	u, ok := result.(*types.Union)
	if !ok {
		t.Fatalf("expected a Union, got %T: %s", result, result.String())
	}
	if len(u.Items) != 2 {
		t.Fatalf("expected 2 members after absorption, got %d: %s", len(u.Items), result.String())
	}
}

// S3 — Optional shorthand.
func TestS3OptionalShorthand(t *testing.T) {
	intInfo := mkInfo("int")
	strInfo := mkInfo("str")
	u1 := types.NewUnion([]types.Type{types.NewInstance(intInfo), types.NewNone()})
	if u1.String() != "Optional[int]" {
		t.Errorf("expected Optional[int], got %s", u1.String())
	}
	u2 := types.NewUnion([]types.Type{types.NewInstance(intInfo), types.NewNone(), types.NewInstance(strInfo)})
	if u2.String() != "Union[int, None, str]" {
		t.Errorf("expected Union[int, None, str], got %s", u2.String())
	}
}

// S7 — protocol conformance.
func TestS7ProtocolConformance(t *testing.T) {
	opts := config.Default()
	intInfo := mkInfo("int")
	strInfo := mkInfo("str")

	protocolInfo := mkInfo("P")
	protocolInfo.IsProtocol = true
	protocolInfo.Members = map[string]types.Type{"foo": types.NewInstance(intInfo)}
	protocol := types.NewInstance(protocolInfo)

	cInfo := mkInfo("C", mkInfo("object"))
	cInfo.Members = map[string]types.Type{"foo": types.NewInstance(strInfo)}
	c := types.NewInstance(cInfo)

	sink := diagnostics.NewSink()
	ok := CheckProtocolConformance(c, protocol, opts, diagnostics.Pos{Line: 1}, sink)
	if ok {
		t.Fatalf("expected protocol conformance to fail")
	}
	all := sink.All()
	if len(all) != 1 || all[0].Code != diagnostics.ErrProtocolConflict {
		t.Fatalf("expected a single protocol member conflict diagnostic, got %v", all)
	}
}

func TestUnionLeftAllMembersMustMatch(t *testing.T) {
	opts := config.Default()
	intInfo := mkInfo("int")
	strInfo := mkInfo("str")
	object := mkInfo("object")
	u := types.NewUnion([]types.Type{types.NewInstance(intInfo), types.NewInstance(strInfo)})
	if !IsSubtype(u, types.NewInstance(object), opts) {
		t.Errorf("expected Union[int, str] <: object")
	}
	if IsSubtype(u, types.NewInstance(intInfo), opts) {
		t.Errorf("expected Union[int, str] not<: int")
	}
}
