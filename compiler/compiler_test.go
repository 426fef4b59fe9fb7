package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizuall/wizu/compiler/analyze"
	"github.com/wizuall/wizu/compiler/parse"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, text := range files {
		path := filepath.Join(dir, name)

		err := os.MkdirAll(filepath.Dir(path), 0o755)
		require.NoError(t, err)

		err = os.WriteFile(path, []byte(text), 0o644)
		require.NoError(t, err)
	}

	return dir
}

func TestCompileFile(t *testing.T) {
	ctx := context.Background()

	dir := writeFiles(t, map[string]string{
		"main.wz":     "import \"lib/data.wz\";\nhistogram(runningSum(d));\n",
		"lib/data.wz": "d = [1, 2, 3];\nimport 'more.wz';\n",
		"lib/more.wz": "n = len(d);\n",
	})

	res, err := CompileFile(ctx, filepath.Join(dir, "main.wz"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, `import matplotlib.pyplot as plt
import numpy as np

d = [1, 2, 3]
n = len(d)
plt.hist(np.cumsum(d), bins=10, color='skyblue', edgecolor='black', density=False)
plt.title('Histogram')
plt.xlabel('Value')
plt.ylabel('Frequency')
plt.grid(True)
plt.show()
`, string(res.Text))

	assert.True(t, res.Requirements.IsSet(analyze.Plotting))
	assert.True(t, res.Requirements.IsSet(analyze.Numeric))
	assert.False(t, res.Requirements.IsSet(analyze.ParetoHelper))
	assert.Empty(t, res.Diagnostics)
}

func TestCompileImportInBlock(t *testing.T) {
	ctx := context.Background()

	dir := writeFiles(t, map[string]string{
		"main.wz": "while (x) { import \"step.wz\"; }\n",
		"step.wz": "x = x - 1;\n",
	})

	res, err := CompileFile(ctx, filepath.Join(dir, "main.wz"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "while x:\n    x = x - 1\n", string(res.Text))
}

func TestCompileImportCycle(t *testing.T) {
	ctx := context.Background()

	dir := writeFiles(t, map[string]string{
		"a.wz": "import \"b.wz\";\n",
		"b.wz": "import \"a.wz\";\n",
	})

	a := filepath.Join(dir, "a.wz")

	_, err := CompileFile(ctx, a, DefaultOptions())
	require.Error(t, err)

	var cyc ImportCycleError
	require.ErrorAs(t, err, &cyc)

	assert.Equal(t, []string{a, filepath.Join(dir, "b.wz"), a}, cyc.Chain)
	assert.Contains(t, err.Error(), "import cycle: "+a+" -> ")
}

func TestCompileImportMissing(t *testing.T) {
	ctx := context.Background()

	dir := writeFiles(t, map[string]string{
		"a.wz": "import \"nope.wz\";\n",
	})

	_, err := CompileFile(ctx, filepath.Join(dir, "a.wz"), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompileImportSyntaxError(t *testing.T) {
	ctx := context.Background()

	dir := writeFiles(t, map[string]string{
		"a.wz": "x = 1;\nimport \"b.wz\";\n",
		"b.wz": "y = ;\n",
	})

	_, err := CompileFile(ctx, filepath.Join(dir, "a.wz"), DefaultOptions())

	var se *parse.SyntaxError
	require.ErrorAs(t, err, &se)

	assert.Equal(t, filepath.Join(dir, "b.wz"), se.File)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 5, se.Col)
}

func TestCompileNoResolve(t *testing.T) {
	ctx := context.Background()

	res, err := Compile(ctx, "", []byte(`import "lib.wz"; x = 1;`), Options{})
	require.NoError(t, err)

	assert.Equal(t, "# import \"lib.wz\"\nx = 1\n", string(res.Text))
}

func TestCompileSyntaxError(t *testing.T) {
	ctx := context.Background()

	_, err := Compile(ctx, "in.wz", []byte("plot(x"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, parse.IsIncomplete(err))
}

func TestCompileDiagnosticPositions(t *testing.T) {
	ctx := context.Background()

	res, err := Compile(ctx, "in.wz", []byte("x = 1;\ny = slice(x);\n"), Options{Indent: 2})
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)

	d := res.Diagnostics[0]
	assert.Equal(t, "in.wz", d.File)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, 5, d.Col)
	assert.Equal(t, "in.wz:2:5: error: slice expects 3 arguments, got 1", d.String())
}
