package back

import (
	"context"
	"strconv"
	"strings"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wizuall/wizu/compiler/analyze"
	"github.com/wizuall/wizu/compiler/ast"
)

type (
	// Compiler lowers a program into Python source.
	// It holds configuration only and may be reused.
	Compiler struct {
		// Indent is the number of spaces per block level.
		Indent int
	}

	genContext struct {
		*Compiler

		tr tlog.Span

		req   analyze.Requirements
		depth int

		marks []string // trailing error comments for the current line
		diags Diagnostics
	}
)

const DefaultIndent = 4

func New() *Compiler {
	return &Compiler{Indent: DefaultIndent}
}

// Generate appends Python source for p to b.
func (c *Compiler) Generate(ctx context.Context, b []byte, p *ast.Program) (_ []byte, diags Diagnostics, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "back: generate")
	defer tr.Finish("err", &err)

	if p == nil {
		return nil, nil, errors.New("nil program")
	}

	g := &genContext{
		Compiler: c,
		tr:       tr,
	}

	g.req = analyze.Scan(ctx, p)

	st := len(b)

	b = g.preamble(b)

	for _, s := range p.Stmts {
		b = g.stmt(b, s)
	}

	if tr.If("dump_python") {
		tr.Printw("generated", "requirements", g.req, "diagnostics", len(g.diags), "text", b[st:])
	}

	return b, g.diags, nil
}

func (g *genContext) preamble(b []byte) []byte {
	st := len(b)

	if g.req.IsSet(analyze.Plotting) {
		b = g.line(b, "import matplotlib.pyplot as plt")
		b = g.endLine(b)
	}

	if g.req.IsSet(analyze.Numeric) {
		b = g.line(b, "import numpy as np")
		b = g.endLine(b)
	}

	if g.req.IsSet(analyze.PairwiseHelper) {
		b = g.helper(b, len(b) != st, "pairwise_compare", "[x[i+1] - x[i] for i in range(len(x)-1)]")
	}

	if g.req.IsSet(analyze.ParetoHelper) {
		b = g.helper(b, len(b) != st, "pareto_set", "list(dict.fromkeys(x))")
	}

	if len(b) != st {
		b = append(b, '\n')
	}

	return b
}

func (g *genContext) helper(b []byte, sep bool, name, ret string) []byte {
	if sep {
		b = append(b, '\n')
	}

	b = g.line(b, "def %s(x):", name)
	b = g.endLine(b)

	g.depth++

	b = g.line(b, "return %s", ret)
	b = g.endLine(b)

	g.depth--

	return b
}

func (g *genContext) stmt(b []byte, x ast.Node) []byte {
	switch x := x.(type) {
	case nil:
	case *ast.Program:
		for _, s := range x.Stmts {
			b = g.stmt(b, s)
		}
	case *ast.Assignment:
		b = g.line(b, "%s = ", x.Name)
		b = g.expr(b, x.Expr)
		b = g.endLine(b)
	case *ast.VizCall:
		b = g.viz(b, x)
	case *ast.IfElse:
		b = g.line(b, "if ")
		b = g.expr(b, x.Cond)
		b = append(b, ':')
		b = g.endLine(b)

		b = g.block(b, x.Then, nil)

		b = g.line(b, "else:")
		b = g.endLine(b)

		b = g.block(b, x.Else, nil)
	case *ast.While:
		b = g.loop(b, x.Cond)
		b = g.block(b, x.Body, nil)
	case *ast.For:
		b = g.stmt(b, x.Init)
		b = g.loop(b, x.Cond)
		b = g.block(b, x.Body, x.Incr)
	case *ast.Import:
		b = g.line(b, "# import %s", strconv.Quote(x.File))
		b = g.endLine(b)
	case *ast.Aux:
		b = g.aux(b, x)
	default:
		b = g.line(b, "")
		b = g.expr(b, x)
		b = g.endLine(b)
	}

	return b
}

func (g *genContext) loop(b []byte, cond ast.Node) []byte {
	b = g.line(b, "while ")
	b = g.expr(b, cond)
	b = append(b, ':')

	return g.endLine(b)
}

// block emits l one level deeper followed by tail if not nil.
func (g *genContext) block(b []byte, l ast.List, tail ast.Node) []byte {
	g.depth++
	defer func() { g.depth-- }()

	st := len(b)

	for _, s := range l {
		b = g.stmt(b, s)
	}

	b = g.stmt(b, tail)

	if len(b) == st {
		b = g.line(b, "pass")
		b = g.endLine(b)
	}

	return b
}

func (g *genContext) aux(b []byte, x *ast.Aux) []byte {
	lines := strings.Split(x.Code, "\n")

	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}

	for len(lines) != 0 && lines[0] == "" {
		lines = lines[1:]
	}

	for len(lines) != 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	pref := commonIndent(lines)

	for _, l := range lines {
		if l == "" {
			b = append(b, '\n')
			continue
		}

		b = g.line(b, "%s", l[len(pref):])
		b = g.endLine(b)
	}

	return b
}

func commonIndent(lines []string) (p string) {
	first := true

	for _, l := range lines {
		if l == "" {
			continue
		}

		w := l[:len(l)-len(strings.TrimLeft(l, " \t"))]

		if first {
			p, first = w, false
			continue
		}

		for !strings.HasPrefix(w, p) {
			p = p[:len(p)-1]
		}
	}

	return p
}

// line starts a new line at the current depth.
func (g *genContext) line(b []byte, f string, args ...any) []byte {
	n := g.Indent
	if n <= 0 {
		n = DefaultIndent
	}

	for i := 0; i < g.depth*n; i++ {
		b = append(b, ' ')
	}

	return hfmt.Appendf(b, f, args...)
}

// endLine terminates the current line with pending error markers.
func (g *genContext) endLine(b []byte) []byte {
	for _, m := range g.marks {
		b = append(b, "  # ERROR: "...)
		b = append(b, m...)
	}

	g.marks = g.marks[:0]

	return append(b, '\n')
}
