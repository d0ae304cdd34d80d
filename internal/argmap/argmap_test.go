package argmap

import (
	"testing"

	"github.com/funvibe/typecore/internal/types"
)

func TestMapSimplePositional(t *testing.T) {
	actuals := []Actual{{Kind: types.POS}, {Kind: types.POS}}
	formals := []Formal{{Kind: types.POS, Name: "a"}, {Kind: types.POS, Name: "b"}}
	m := Map(actuals, formals)
	if len(m[0]) != 1 || m[0][0] != 0 {
		t.Fatalf("expected formal 0 bound to actual 0, got %v", m)
	}
	if len(m[1]) != 1 || m[1][0] != 1 {
		t.Fatalf("expected formal 1 bound to actual 1, got %v", m)
	}
	ok, missing, tooMany := CheckArity(actuals, formals, m)
	if !ok || len(missing) != 0 || len(tooMany) != 0 {
		t.Fatalf("expected a clean arity check, got ok=%v missing=%v tooMany=%v", ok, missing, tooMany)
	}
}

func TestMapNamedActual(t *testing.T) {
	actuals := []Actual{{Kind: types.NAMED, Name: "b"}, {Kind: types.POS}}
	formals := []Formal{{Kind: types.POS, Name: "a"}, {Kind: types.NAMED, Name: "b"}}
	m := Map(actuals, formals)
	if len(m[0]) != 1 || m[0][0] != 1 {
		t.Fatalf("expected formal a bound to positional actual, got %v", m)
	}
	if len(m[1]) != 1 || m[1][0] != 0 {
		t.Fatalf("expected formal b bound to named actual, got %v", m)
	}
}

func TestMapMissingMandatoryFormal(t *testing.T) {
	actuals := []Actual{{Kind: types.POS}}
	formals := []Formal{{Kind: types.POS, Name: "a"}, {Kind: types.POS, Name: "b"}}
	m := Map(actuals, formals)
	ok, missing, _ := CheckArity(actuals, formals, m)
	if ok || len(missing) != 1 || missing[0] != 1 {
		t.Fatalf("expected formal b reported missing, got ok=%v missing=%v", ok, missing)
	}
}

func TestMapStarStarToNamedFormals(t *testing.T) {
	actuals := []Actual{{Kind: types.STARSTAR}}
	formals := []Formal{{Kind: types.NAMEDOpt, Name: "a"}, {Kind: types.NAMEDOpt, Name: "b"}}
	m := Map(actuals, formals)
	if len(m[0]) != 1 || len(m[1]) != 1 {
		t.Fatalf("expected ** actual to bind every named formal, got %v", m)
	}
}
