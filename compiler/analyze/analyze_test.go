package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wizuall/wizu/compiler/ast"
)

func TestScan(t *testing.T) {
	ctx := context.Background()

	call := func(name string, args ...ast.Node) ast.Node {
		return ast.NewCall(name, ast.NewList(args...))
	}

	x := ast.NewIdent("x")

	for _, tc := range []struct {
		Name string
		In   ast.Node
		Exp  []Requirement
	}{
		{"empty", ast.NewProgram(nil), nil},
		{"nil", nil, nil},
		{"plain_call", ast.NewProgram(ast.NewList(call("sort", x))), nil},
		{"viz", ast.NewProgram(ast.NewList(ast.NewVizCall("plot", ast.NewList(x)))), []Requirement{Plotting}},
		{"running_sum", ast.NewProgram(ast.NewList(ast.NewAssignment("y", call("runningSum", x)))), []Requirement{Numeric}},
		{"nested_call_args", call("avg", call("sort", call("pairwiseCompare", x))), []Requirement{PairwiseHelper}},
		{"viz_positional", ast.NewVizCall("histogram", ast.NewList(call("paretoSet", x))), []Requirement{Plotting, ParetoHelper}},
		{"viz_keyword", ast.NewVizCall("plot", ast.NewList(x, ast.NewKeywordArg("label", call("runningSum", x)))), []Requirement{Plotting, Numeric}},
		{"viz_assign_pair", ast.NewVizCall("plot", ast.NewList(ast.NewBinaryOp(ast.Assign, ast.NewIdent("y"), call("runningSum", x)))), []Requirement{Plotting, Numeric}},
		{"vector_elems", ast.NewVector(ast.NewList(call("paretoSet", x))), []Requirement{ParetoHelper}},
		{"if_cond", ast.NewIfElse(call("runningSum", x), nil, nil), []Requirement{Numeric}},
		{"else_body", ast.NewIfElse(x, nil, ast.NewList(ast.NewVizCall("scatter", nil))), []Requirement{Plotting}},
		{"while_body", ast.NewWhile(x, ast.NewList(call("pairwiseCompare", x))), []Requirement{PairwiseHelper}},
		{"for_init_incr", ast.NewFor(
			ast.NewAssignment("i", call("runningSum", x)),
			x,
			ast.NewAssignment("i", call("paretoSet", x)),
			nil,
		), []Requirement{Numeric, ParetoHelper}},
		{"all", ast.NewProgram(ast.NewList(
			ast.NewVizCall("boxplot", nil),
			call("runningSum", x),
			call("pairwiseCompare", x),
			call("paretoSet", x),
			ast.NewAux("print(1)"),
			ast.NewImport("lib.wz"),
		)), []Requirement{Plotting, Numeric, PairwiseHelper, ParetoHelper}},
	} {
		tc := tc

		t.Run(tc.Name, func(t *testing.T) {
			r := Scan(ctx, tc.In)

			assert.Equal(t, tc.Exp, list(r))
		})
	}
}

func TestScanDeterministic(t *testing.T) {
	ctx := context.Background()

	p := ast.NewProgram(ast.NewList(
		ast.NewCall("paretoSet", nil),
		ast.NewVizCall("plot", nil),
		ast.NewCall("runningSum", nil),
	))

	a := Scan(ctx, p)
	b := Scan(ctx, p)

	assert.Equal(t, list(a), list(b))
	assert.Equal(t, []Requirement{Plotting, Numeric, ParetoHelper}, list(a))
}

func TestRequirementString(t *testing.T) {
	assert.Equal(t, "plotting", Plotting.String())
	assert.Equal(t, "pareto_helper", ParetoHelper.String())
	assert.Equal(t, "Requirement(9)", Requirement(9).String())
}

func list(r Requirements) (l []Requirement) {
	r.Range(func(q Requirement) bool {
		l = append(l, q)
		return true
	})

	return l
}
