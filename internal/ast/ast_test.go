package ast

import "testing"

func TestAttrLiteralKeyChainsBase(t *testing.T) {
	x := &Var{Name: "x"}
	xa := &Attr{Base: x, Name: "a"}
	key, ok := xa.LiteralKey()
	if !ok || key != "x.a" {
		t.Fatalf("expected x.a, got %q ok=%v", key, ok)
	}
}

func TestIndexLiteralKeyRequiresConstIndex(t *testing.T) {
	x := &Var{Name: "x"}
	idx := &Index{Base: x, IsConst: false}
	if _, ok := idx.LiteralKey(); ok {
		t.Fatalf("expected a non-constant index to have no literal key")
	}

	constIdx := &Index{Base: x, Const: 0, IsConst: true}
	key, ok := constIdx.LiteralKey()
	if !ok || key != "x[0]" {
		t.Fatalf("expected x[0], got %q ok=%v", key, ok)
	}
}

func TestDependsOnPrefixAndSuffix(t *testing.T) {
	cases := []struct {
		base, child LiteralKey
		want        bool
	}{
		{"x", "x", true},
		{"x", "x.a", true},
		{"x", "x[0]", true},
		{"x", "xy", false},
		{"x.a", "x.a.b", true},
		{"x.a", "x", false},
	}
	for _, c := range cases {
		if got := DependsOn(c.base, c.child); got != c.want {
			t.Errorf("DependsOn(%q, %q) = %v, want %v", c.base, c.child, got, c.want)
		}
	}
}

func TestOtherHasNoLiteralKey(t *testing.T) {
	o := &Other{}
	if _, ok := o.LiteralKey(); ok {
		t.Fatalf("expected Other to never have a literal key")
	}
	if o.Kind() != NodeOther {
		t.Fatalf("expected NodeOther, got %v", o.Kind())
	}
}
