package back

import (
	"strconv"

	"github.com/wizuall/wizu/compiler/analyze"
	"github.com/wizuall/wizu/compiler/ast"
)

type builtin struct {
	args int

	// tmpl is the output text, $N is replaced with the N-th argument.
	tmpl string
}

var builtins = map[string]builtin{
	"avg":             {args: 1, tmpl: "(sum($1) / len($1))"},
	"sort":            {args: 1, tmpl: "sorted($1)"},
	"reverse":         {args: 1, tmpl: "list(reversed($1))"},
	"slice":           {args: 3, tmpl: "$1[$2:$3]"},
	"transpose":       {args: 1, tmpl: "list(map(list, zip(*$1)))"},
	"runningSum":      {args: 1, tmpl: "np.cumsum($1)"},
	"pairwiseCompare": {args: 1, tmpl: "pairwise_compare($1)"},
	"paretoSet":       {args: 1, tmpl: "pareto_set($1)"},
}

func (g *genContext) expr(b []byte, x ast.Node) []byte {
	switch x := x.(type) {
	case *ast.Number:
		return strconv.AppendFloat(b, x.Value, 'g', -1, 64)
	case *ast.Ident:
		return append(b, x.Name...)
	case *ast.String:
		return append(b, x.Text...)
	case *ast.Vector:
		b = append(b, '[')
		b = g.args(b, x.Elems, 0)

		return append(b, ']')
	case *ast.BinaryOp:
		b = g.expr(b, x.Left)
		b = append(b, ' ')
		b = append(b, x.Op.String()...)
		b = append(b, ' ')

		return g.expr(b, x.Right)
	case *ast.KeywordArg:
		b = append(b, x.Name...)
		b = append(b, '=')

		return g.expr(b, x.Value)
	case *ast.Call:
		return g.call(b, x)
	default:
		g.diag(x, Error, "%s in expression position", analyze.NewUnsupportedNode(x).Error())

		return append(b, "None"...)
	}
}

// args emits a comma separated list, n is the number of items already emitted.
func (g *genContext) args(b []byte, l ast.List, n int) []byte {
	for i, x := range l {
		b = comma(b, n+i)
		b = g.expr(b, x)
	}

	return b
}

func (g *genContext) call(b []byte, x *ast.Call) []byte {
	f, ok := builtins[x.Name]
	if !ok {
		b = append(b, x.Name...)
		b = append(b, '(')
		b = g.args(b, x.Args, 0)

		return append(b, ')')
	}

	if g.tr.If("builtin") {
		g.tr.Printw("builtin", "name", x.Name, "args", len(x.Args), "want", f.args)
	}

	if len(x.Args) < f.args {
		msg := x.Name + " expects " + strconv.Itoa(f.args) + " argument"
		if f.args != 1 {
			msg += "s"
		}

		g.diag(x, Error, "%s, got %d", msg, len(x.Args))
		g.marks = append(g.marks, msg)

		return append(b, "None"...)
	}

	if extra := len(x.Args) - f.args; extra != 0 {
		g.diag(x, Warning, "%s: %d extra arguments ignored", x.Name, extra)
	}

	args := make([][]byte, f.args)

	for i := range args {
		args[i] = g.expr(nil, x.Args[i])
	}

	return f.expand(b, args)
}

func (f builtin) expand(b []byte, args [][]byte) []byte {
	t := f.tmpl

	for i := 0; i < len(t); i++ {
		if t[i] == '$' && i+1 < len(t) && t[i+1] >= '1' && t[i+1] <= '9' {
			b = append(b, args[t[i+1]-'1']...)
			i++

			continue
		}

		b = append(b, t[i])
	}

	return b
}

func comma(b []byte, n int) []byte {
	if n == 0 {
		return b
	}

	return append(b, ", "...)
}
