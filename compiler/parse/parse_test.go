package parse

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizuall/wizu/compiler/ast"
)

func dump(t *testing.T, x ast.Node) string {
	t.Helper()

	var b strings.Builder

	err := ast.Dump(&b, x)
	require.NoError(t, err)

	return b.String()
}

func TestParseStatements(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte(`
# data
x = [1, 2.5, -3];
y = avg(x) + 1 * 2; // trailing
plot(x, y, title = "T", color='red');
import "lib.wz";
`))
	require.NoError(t, err)

	assert.Equal(t, `Program
  Assignment to x
    VectorLiteral
      Number: 1
      Number: 2.5
      Number: -3
  Assignment to y
    BinaryOp (+)
      FunctionCall: avg
        Identifier: x
      BinaryOp (*)
        Number: 1
        Number: 2
  VisualizationCall: plot
    Identifier: x
    Identifier: y
    Keyword: title
      String: "T"
    Keyword: color
      String: 'red'
  Import: lib.wz
`, dump(t, p))
}

func TestParseControlFlow(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte(`
if (x > 1) { show(x); } else {}
while (i < 3) { i = i + 1; }
for (i = 0; i < 5; i = i + 1) { s(i); }
`))
	require.NoError(t, err)

	assert.Equal(t, `Program
  IfElse
    BinaryOp (>)
      Identifier: x
      Number: 1
  IfBody:
      FunctionCall: show
        Identifier: x
  ElseBody:
  WhileLoop
    BinaryOp (<)
      Identifier: i
      Number: 3
  Body:
      Assignment to i
        BinaryOp (+)
          Identifier: i
          Number: 1
  ForLoop
    Assignment to i
      Number: 0
    BinaryOp (<)
      Identifier: i
      Number: 5
    Assignment to i
      BinaryOp (+)
        Identifier: i
        Number: 1
  Body:
      FunctionCall: s
        Identifier: i
`, dump(t, p))

	ifs := p.Stmts[0].(*ast.IfElse)
	assert.Len(t, ifs.Then, 1)
	assert.Len(t, ifs.Else, 0)
}

func TestParseLeftAssociative(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte(`r = a - b - c / d / e;`))
	require.NoError(t, err)

	assert.Equal(t, `Program
  Assignment to r
    BinaryOp (-)
      BinaryOp (-)
        Identifier: a
        Identifier: b
      BinaryOp (/)
        BinaryOp (/)
          Identifier: c
          Identifier: d
        Identifier: e
`, dump(t, p))
}

func TestParseGroupingLeavesNoNode(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte(`r = (a + b) * c;`))
	require.NoError(t, err)

	assert.Equal(t, `Program
  Assignment to r
    BinaryOp (*)
      BinaryOp (+)
        Identifier: a
        Identifier: b
      Identifier: c
`, dump(t, p))
}

func TestParseEmptyLists(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte(`x = []; f(); plot();`))
	require.NoError(t, err)
	require.Len(t, p.Stmts, 3)

	a := p.Stmts[0].(*ast.Assignment)
	assert.Len(t, a.Expr.(*ast.Vector).Elems, 0)

	assert.Len(t, p.Stmts[1].(*ast.Call).Args, 0)
	assert.Len(t, p.Stmts[2].(*ast.VizCall).Args, 0)
}

func TestParseNumbers(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		In  string
		Exp float64
	}{
		{"12", 12},
		{"2.5", 2.5},
		{"1e3", 1000},
		{"1.5E-2", 0.015},
		{".5", 0.5},
		{"-4", -4},
	} {
		p, err := Parse(ctx, []byte("x = "+tc.In+";"))
		require.NoError(t, err, tc.In)

		n, ok := p.Stmts[0].(*ast.Assignment).Expr.(*ast.Number)
		require.True(t, ok, tc.In)
		assert.Equal(t, tc.Exp, n.Value, tc.In)
	}
}

func TestParseAux(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte("x = 1;\n%{\n    print(x)\n%}\n"))
	require.NoError(t, err)
	require.Len(t, p.Stmts, 2)

	aux, ok := p.Stmts[1].(*ast.Aux)
	require.True(t, ok)
	assert.Equal(t, "\n    print(x)\n", aux.Code)
}

func TestParsePositions(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte(`x = 1;`))
	require.NoError(t, err)

	a := p.Stmts[0].(*ast.Assignment)
	assert.Equal(t, ast.Base{Pos: 0, End: 5}, a.Base)
	assert.Equal(t, ast.Base{Pos: 4, End: 5}, a.Expr.Position())
}

func TestSyntaxError(t *testing.T) {
	ctx := context.Background()

	_, err := Parse(ctx, []byte("x = 1;\ny = ;"))
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)

	assert.Equal(t, "", se.File)
	assert.Equal(t, 2, se.Line)
	assert.Equal(t, 5, se.Col)
	assert.False(t, se.Incomplete)
	assert.True(t, strings.HasPrefix(err.Error(), "<input>:2:5: syntax error:"), err.Error())
	assert.Contains(t, err.Error(), "unexpected ';'")
}

func TestSyntaxErrorMissingElse(t *testing.T) {
	ctx := context.Background()

	_, err := Parse(ctx, []byte("if (a) { b(); } c();"))
	require.Error(t, err)
	assert.False(t, IsIncomplete(err))
	assert.Contains(t, err.Error(), `keyword "else"`)
}

func TestIsIncomplete(t *testing.T) {
	ctx := context.Background()

	for _, in := range []string{
		"if (x < 1) {",
		"plot(x,",
		"x = [1, 2",
		"y = 'abc",
		"%{ print(1)",
		"for (i = 0; i < 3;",
	} {
		_, err := Parse(ctx, []byte(in))
		require.Error(t, err, in)
		assert.True(t, IsIncomplete(err), "%q: %v", in, err)
	}

	_, err := Parse(ctx, []byte("x = ) ;"))
	require.Error(t, err)
	assert.False(t, IsIncomplete(err))

	assert.False(t, IsIncomplete(nil))
}

func TestParseFile(t *testing.T) {
	ctx := context.Background()

	name := filepath.Join(t.TempDir(), "a.wz")

	err := os.WriteFile(name, []byte("x = 1;\nplot(x;\n"), 0o644)
	require.NoError(t, err)

	_, err = ParseFile(ctx, name)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, name, se.File)
	assert.Equal(t, 2, se.Line)
	assert.Equal(t, 7, se.Col)
}

func TestPositionMultipleFiles(t *testing.T) {
	s := New()

	s.AddFile("a", []byte("x = 1;\n"))
	s.AddFile("b", []byte("y = 2;\nz = 3;\n"))

	name, line, col := s.Position(9)
	assert.Equal(t, "b", name)
	assert.Equal(t, 1, line)
	assert.Equal(t, 3, col)

	name, line, col = s.Position(7)
	assert.Equal(t, "b", name)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	name, line, col = s.Position(15)
	assert.Equal(t, "b", name)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
}

func TestParseLastFile(t *testing.T) {
	ctx := context.Background()

	s := New()

	s.AddFile("a", []byte("x = 1;\n"))
	s.AddFile("b", []byte("y = 2;\n"))

	p, err := s.Parse(ctx)
	require.NoError(t, err)
	require.Len(t, p.Stmts, 1)

	a := p.Stmts[0].(*ast.Assignment)
	assert.Equal(t, "y", a.Name)
	assert.Equal(t, 7, a.Pos)
	assert.Equal(t, 12, a.End)
}
