package ast

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAppendKeepsOrder(t *testing.T) {
	var l List

	a, b, c := NewIdent("a"), NewIdent("b"), NewIdent("c")

	l = l.Append(a)
	l = l.Append(b)
	l = l.Append(c)

	require.Len(t, l, 3)
	assert.Same(t, a, l[0])
	assert.Same(t, b, l[1])
	assert.Same(t, c, l[2])
}

func TestKeyword(t *testing.T) {
	v := NewNumber(1)

	name, val, ok := Keyword(NewKeywordArg("bins", v))
	assert.True(t, ok)
	assert.Equal(t, "bins", name)
	assert.Same(t, v, val)

	name, val, ok = Keyword(NewBinaryOp(Assign, NewIdent("color"), v))
	assert.True(t, ok)
	assert.Equal(t, "color", name)
	assert.Same(t, v, val)

	_, _, ok = Keyword(NewBinaryOp(Add, NewIdent("a"), v))
	assert.False(t, ok)

	_, _, ok = Keyword(NewBinaryOp(Assign, NewNumber(2), v))
	assert.False(t, ok)

	_, _, ok = Keyword(NewIdent("x"))
	assert.False(t, ok)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "+", Add.String())
	assert.Equal(t, ">", Gt.String())
	assert.Equal(t, "=", Assign.String())
	assert.Equal(t, "?", Op(100).String())
}

func TestDump(t *testing.T) {
	p := NewProgram(NewList(
		NewAssignment("x", NewVector(NewList(NewNumber(1), NewNumber(2.5)))),
		NewIfElse(
			NewBinaryOp(Lt, NewIdent("x"), NewNumber(3)),
			NewList(NewVizCall("plot", NewList(NewIdent("x"), NewKeywordArg("title", NewString(`"T"`))))),
			nil,
		),
	))

	var b strings.Builder

	err := Dump(&b, p)
	require.NoError(t, err)

	assert.Equal(t, `Program
  Assignment to x
    VectorLiteral
      Number: 1
      Number: 2.5
  IfElse
    BinaryOp (<)
      Identifier: x
      Number: 3
  IfBody:
      VisualizationCall: plot
        Identifier: x
        Keyword: title
          String: "T"
  ElseBody:
`, b.String())
}

func TestDumpLoops(t *testing.T) {
	p := NewProgram(NewList(
		NewWhile(NewIdent("x"), NewList(NewCall("f", nil))),
		NewFor(
			NewAssignment("i", NewNumber(0)),
			NewBinaryOp(Lt, NewIdent("i"), NewNumber(2)),
			NewAssignment("i", NewBinaryOp(Add, NewIdent("i"), NewNumber(1))),
			nil,
		),
	))

	var b strings.Builder

	err := Dump(&b, p)
	require.NoError(t, err)

	assert.Equal(t, `Program
  WhileLoop
    Identifier: x
  Body:
      FunctionCall: f
  ForLoop
    Assignment to i
      Number: 0
    BinaryOp (<)
      Identifier: i
      Number: 2
    Assignment to i
      BinaryOp (+)
        Identifier: i
        Number: 1
  Body:
`, b.String())
}

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, io.ErrShortWrite
	}

	w.n--

	return len(p), nil
}

func TestDumpWriteError(t *testing.T) {
	w := &failWriter{n: 1}

	err := Dump(w, NewProgram(NewList(NewIdent("a"), NewIdent("b"))))
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, 0, w.n)
}
