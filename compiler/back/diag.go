package back

import (
	"strconv"

	"github.com/nikandfor/hacked/hfmt"

	"github.com/wizuall/wizu/compiler/ast"
)

type (
	Level int

	// Diagnostic is a problem found during generation.
	// Generation continues after any of them.
	Diagnostic struct {
		Pos   int
		End   int
		Level Level
		Msg   string

		// Filled by the caller that owns the sources.
		File string
		Line int
		Col  int
	}

	Diagnostics []Diagnostic
)

const (
	Warning Level = iota
	Error
)

func (g *genContext) diag(x ast.Node, lvl Level, f string, args ...any) {
	d := Diagnostic{
		Level: lvl,
		Msg:   string(hfmt.Appendf(nil, f, args...)),
	}

	if x != nil {
		p := x.Position()
		d.Pos, d.End = p.Pos, p.End
	}

	if g.tr.If("diag") {
		g.tr.Printw("diagnostic", "level", lvl.String(), "msg", d.Msg, "pos", d.Pos)
	}

	g.diags = append(g.diags, d)
}

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
}

func (d Diagnostic) String() string {
	var b []byte

	if d.Line != 0 {
		name := d.File
		if name == "" {
			name = "<input>"
		}

		b = hfmt.Appendf(b, "%s:%d:%d: ", name, d.Line, d.Col)
	}

	b = hfmt.Appendf(b, "%s: %s", d.Level.String(), d.Msg)

	return string(b)
}

func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Level == Error {
			return true
		}
	}

	return false
}
