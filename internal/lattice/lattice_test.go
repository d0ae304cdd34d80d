package lattice

import (
	"testing"

	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/subtype"
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

func TestJoinUpperBoundness(t *testing.T) {
	opts := config.Default()
	object := mkInfo("object")
	animal := mkInfo("Animal", object)
	dog := mkInfo("Dog", animal)
	cat := mkInfo("Cat", animal)

	a := types.NewInstance(dog)
	b := types.NewInstance(cat)
	j := Join(a, b, opts)

	if !subtype.IsSubtype(a, j, opts) {
		t.Errorf("expected Dog <: join(Dog, Cat) = %s", j.String())
	}
	if !subtype.IsSubtype(b, j, opts) {
		t.Errorf("expected Cat <: join(Dog, Cat) = %s", j.String())
	}
}

func TestMeetLowerBoundness(t *testing.T) {
	opts := config.Default()
	object := mkInfo("object")
	animal := mkInfo("Animal", object)
	dog := mkInfo("Dog", animal)

	a := types.NewInstance(animal)
	b := types.NewInstance(dog)
	m := Meet(a, b, opts)

	if !subtype.IsSubtype(m, a, opts) {
		t.Errorf("expected meet(Animal, Dog) <: Animal, got %s", m.String())
	}
	if !subtype.IsSubtype(m, b, opts) {
		t.Errorf("expected meet(Animal, Dog) <: Dog, got %s", m.String())
	}
}

func TestJoinSameClassRespectsVariance(t *testing.T) {
	opts := config.Default()
	object := mkInfo("object")
	animal := mkInfo("Animal", object)
	dog := mkInfo("Dog", animal)
	cat := mkInfo("Cat", animal)
	listInfo := mkInfo("list")
	listInfo.TypeVars = []types.TypeVarDecl{{Name: "T", Variance: types.Covariant}}

	listDog := types.NewInstance(listInfo, types.NewInstance(dog))
	listCat := types.NewInstance(listInfo, types.NewInstance(cat))
	j := Join(listDog, listCat, opts)

	ji, ok := j.(*types.Instance)
	if !ok || ji.TypeInfo.Fullname != "list" {
		t.Fatalf("expected list[...], got %s", j.String())
	}
	if ji.Args[0].String() != "Animal" {
		t.Errorf("expected list[Animal], got %s", j.String())
	}
}

func TestIsOverlappingStrictOptionalExcludesNone(t *testing.T) {
	opts := config.Default()
	intT := types.NewInstance(mkInfo("int"))
	if IsOverlapping(types.NewNone(), intT, true, opts) {
		t.Errorf("expected None not to overlap int under strict-optional")
	}
}
