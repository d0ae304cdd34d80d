package scope

import (
	"testing"

	"github.com/funvibe/typecore/internal/types"
)

func TestPushPopFunction(t *testing.T) {
	s := New()
	if s.TopFunction() != nil {
		t.Fatalf("expected no enclosing function at module scope")
	}
	fc := &FunctionContext{Name: "f"}
	s.PushFunction(fc)
	if s.TopFunction() != fc {
		t.Fatalf("expected TopFunction to return the pushed context")
	}
	s.PopFunction()
	if s.TopFunction() != nil {
		t.Fatalf("expected no enclosing function after pop")
	}
}

func TestActiveSelfTypeNilOutsideClass(t *testing.T) {
	s := New()
	if s.ActiveSelfType() != nil {
		t.Fatalf("expected nil self type outside any class")
	}
}

func TestActiveSelfTypeInsideClass(t *testing.T) {
	s := New()
	info := &types.TypeInfo{Fullname: "pkg.C", TypeVars: []types.TypeVarDecl{{Name: "T"}}}
	tv := &types.TypeVar{Id: types.VarId{N: 1}, Name: "T"}
	s.PushClass(&ClassContext{Info: info, SelfArgs: []types.Type{tv}})

	self := s.ActiveSelfType()
	if self == nil || self.TypeInfo.Fullname != "pkg.C" {
		t.Fatalf("expected self type of pkg.C, got %v", self)
	}
	if len(self.Args) != 1 || self.Args[0] != types.Type(tv) {
		t.Fatalf("expected self args to carry the class's own type var, got %v", self.Args)
	}

	s.PopClass()
	if s.ActiveSelfType() != nil {
		t.Fatalf("expected nil self type after popping the class")
	}
}

func TestFreeTypeVarsOfEnclosingCollectsFunctionAndClass(t *testing.T) {
	s := New()
	classInfo := &types.TypeInfo{Fullname: "pkg.C", TypeVars: []types.TypeVarDecl{{Name: "T"}}}
	classTV := &types.TypeVar{Id: types.VarId{N: 1}, Name: "T"}
	s.PushClass(&ClassContext{Info: classInfo, SelfArgs: []types.Type{classTV}})

	fnTV := &types.TypeVar{Id: types.VarId{N: 2, Meta: true}, Name: "S"}
	s.PushFunction(&FunctionContext{Name: "m", TypeParams: []types.TypeVarLike{fnTV}})

	free := s.FreeTypeVarsOfEnclosing()
	if !free[classTV.Id] {
		t.Fatalf("expected the class's own type var to be free, got %v", free)
	}
	if !free[fnTV.Id] {
		t.Fatalf("expected the function's own type var to be free, got %v", free)
	}
}

func TestEnclosingClassSeenThroughNestedFunction(t *testing.T) {
	s := New()
	info := &types.TypeInfo{Fullname: "pkg.C"}
	s.PushClass(&ClassContext{Info: info})
	s.PushFunction(&FunctionContext{Name: "m"})
	s.PushFunction(&FunctionContext{Name: "inner"})

	if s.EnclosingClass() == nil || s.EnclosingClass().Info.Fullname != "pkg.C" {
		t.Fatalf("expected EnclosingClass to still see pkg.C through nested functions")
	}
}
