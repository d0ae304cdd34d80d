package types

import "testing"

func instanceNamed(name string) *Instance {
	return NewInstance(&TypeInfo{Fullname: name})
}

func TestNewUnionFlattensNested(t *testing.T) {
	inner := NewUnion([]Type{instanceNamed("int"), instanceNamed("str")})
	outer := NewUnion([]Type{inner, instanceNamed("bool")})
	u, ok := outer.(*Union)
	if !ok {
		t.Fatalf("expected a flattened Union, got %T", outer)
	}
	if len(u.Items) != 3 {
		t.Fatalf("expected 3 flattened members, got %d: %v", len(u.Items), u.Items)
	}
}

func TestNewUnionCollapsesToAnyWhenAnyMember(t *testing.T) {
	result := NewUnion([]Type{instanceNamed("int"), NewAny(AnyFromError)})
	if !IsAny(result) {
		t.Fatalf("expected Any to absorb the whole union, got %s", result.String())
	}
}

func TestNewUnionDedupsStructuralDuplicates(t *testing.T) {
	result := NewUnion([]Type{instanceNamed("int"), instanceNamed("int")})
	if result.String() != "int" {
		t.Fatalf("expected duplicate int to collapse to a single member, got %s", result.String())
	}
}

func TestNewUnionUnwrapsSingleton(t *testing.T) {
	result := NewUnion([]Type{instanceNamed("int")})
	if _, ok := result.(*Union); ok {
		t.Fatalf("expected a singleton union to unwrap to its one member, got %T", result)
	}
}

func TestNewUnionEmptyIsUninhabited(t *testing.T) {
	result := NewUnion(nil)
	if !IsUninhabited(result) {
		t.Fatalf("expected an empty union to collapse to Uninhabited, got %s", result.String())
	}
}

// S3 — Optional shorthand: Union.of([X, None]) prints as Optional[X];
// Union.of([X, None, Y]) prints as Union[X, None, Y].
func TestUnionStringOptionalShorthand(t *testing.T) {
	x := instanceNamed("X")
	result := NewUnion([]Type{x, &NoneType{}})
	if result.String() != "Optional[X]" {
		t.Fatalf("expected Optional[X], got %s", result.String())
	}
}

func TestUnionStringThreeMembersIsPlainUnion(t *testing.T) {
	x := instanceNamed("X")
	y := instanceNamed("Y")
	result := NewUnion([]Type{x, &NoneType{}, y})
	u, ok := result.(*Union)
	if !ok {
		t.Fatalf("expected a Union, got %T", result)
	}
	if u.String() != "Union[X, None, Y]" {
		t.Fatalf("expected Union[X, None, Y], got %s", u.String())
	}
}
