// Command typecheck is a minimal demo driver over internal/checker: it
// loads an Options bag from an optional YAML config file and runs a small
// fixed set of checkable units through a TypeChecker, printing diagnostics
// to stderr.
//
// There is no lexer/parser in this core (§1 places source parsing and name
// resolution out of scope), so this driver stands in for the expression
// checker a real frontend would drive: the fixture below exercises the same
// shapes as S1/S4/S6 (assignment, generic call inference, isinstance
// narrowing) rather than reading source files from disk. Argument handling
// follows the teacher's cmd/funxy/main.go idiom of inspecting os.Args
// directly rather than reaching for the flag package.
package main

import (
	"fmt"
	"os"

	"github.com/funvibe/typecore/internal/argmap"
	"github.com/funvibe/typecore/internal/ast"
	"github.com/funvibe/typecore/internal/binder"
	"github.com/funvibe/typecore/internal/checker"
	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/diagnostics"
	"github.com/funvibe/typecore/internal/inference"
	"github.com/funvibe/typecore/internal/types"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [config.yaml]\n", os.Args[0])
}

func loadOptions() config.Options {
	if len(os.Args) < 2 {
		return config.Default()
	}
	if os.Args[1] == "-help" || os.Args[1] == "--help" || os.Args[1] == "help" {
		usage()
		os.Exit(0)
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "typecheck: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	opts, err := config.Load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "typecheck: %v\n", err)
		os.Exit(1)
	}
	return opts
}

func intType() *types.Instance { return types.NewInstance(&types.TypeInfo{Fullname: "int"}) }
func strType() *types.Instance { return types.NewInstance(&types.TypeInfo{Fullname: "str"}) }

// declaredTypes stands in for the pre-resolved declared-type lookup a real
// frontend would supply from its own symbol table (§4.H's DeclarationLookup).
type declaredTypes map[ast.LiteralKey]types.Type

func (d declaredTypes) DeclaredType(key ast.LiteralKey) (types.Type, bool) {
	t, ok := d[key]
	return t, ok
}

// fixture builds the sample Unit sequence this demo checks: an incompatible
// assignment (S-shaped per §7's "assignment target incompatible") and a
// generic identity call (S4); main appends the isinstance branch narrowing
// a union (S6) itself.
func fixture() []checker.Unit {
	x := &ast.Var{Name: "x"}
	tv := &types.TypeVar{Id: types.VarId{N: 1}, Name: "T"}
	identity := &types.Callable{
		ArgTypes:  []types.Type{tv},
		ArgKinds:  []types.ArgKind{types.POS},
		ArgNames:  []*string{nil},
		RetType:   tv,
		Variables: []types.TypeVarLike{tv},
	}

	return []checker.Unit{
		&checker.Assign{
			Target:   x,
			Declared: intType(),
			Value:    strType(),
			Pos:      diagnostics.Pos{File: "demo.py", Line: 1, Column: 1},
		},
		&checker.Call{
			Callee:  identity,
			Actuals: []inference.Actual{{Type: intType(), Actual: argmap.Actual{Kind: types.POS}}},
			Pos:     diagnostics.Pos{File: "demo.py", Line: 2, Column: 1},
		},
	}
}

func main() {
	opts := loadOptions()

	y := &ast.Var{Name: "y"}
	lookup := declaredTypes{"y": &types.Union{Items: []types.Type{intType(), strType()}}}
	tc := checker.New(lookup, opts)
	tc.Binder().Push(y, &types.Union{Items: []types.Type{intType(), strType()}})

	units := fixture()
	units = append(units, &checker.IsinstanceBranch{
		Cond: &binder.Isinstance{Expr: y, Target: intType()},
		TypeOf: func(e ast.Expression) (types.Type, bool) {
			return tc.Binder().Get(e)
		},
	})

	tc.Check(units)

	out := diagnostics.NewTextSink(os.Stderr)
	out.Render(tc.Sink())

	if !tc.Sink().Empty() {
		os.Exit(1)
	}
}
