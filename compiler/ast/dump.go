package ast

import (
	"io"
	"reflect"
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
)

// Dump writes an indented debug tree of x.
func Dump(w io.Writer, x Node) error {
	d := dumper{w: w}

	d.node(x, 0)

	return d.err
}

type dumper struct {
	w   io.Writer
	b   []byte
	err error
}

func (d *dumper) line(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}

	d.b = d.b[:0]

	for i := 0; i < depth; i++ {
		d.b = append(d.b, "  "...)
	}

	d.b = hfmt.Appendf(d.b, format, args...)
	d.b = append(d.b, '\n')

	_, d.err = d.w.Write(d.b)
}

func (d *dumper) list(l List, depth int) {
	for _, x := range l {
		d.node(x, depth)
	}
}

func (d *dumper) node(x Node, depth int) {
	switch x := x.(type) {
	case nil:
	case *Program:
		d.line(depth, "Program")
		d.list(x.Stmts, depth+1)
	case *Import:
		d.line(depth, "Import: %s", x.File)
	case *Assignment:
		d.line(depth, "Assignment to %s", x.Name)
		d.node(x.Expr, depth+1)
	case *BinaryOp:
		d.line(depth, "BinaryOp (%s)", x.Op.String())
		d.node(x.Left, depth+1)
		d.node(x.Right, depth+1)
	case *KeywordArg:
		d.line(depth, "Keyword: %s", x.Name)
		d.node(x.Value, depth+1)
	case *Number:
		d.line(depth, "Number: %s", strconv.FormatFloat(x.Value, 'g', -1, 64))
	case *Ident:
		d.line(depth, "Identifier: %s", x.Name)
	case *String:
		d.line(depth, "String: %s", x.Text)
	case *Vector:
		d.line(depth, "VectorLiteral")
		d.list(x.Elems, depth+1)
	case *Call:
		d.line(depth, "FunctionCall: %s", x.Name)
		d.list(x.Args, depth+1)
	case *VizCall:
		d.line(depth, "VisualizationCall: %s", x.Kind)
		d.list(x.Args, depth+1)
	case *IfElse:
		d.line(depth, "IfElse")
		d.node(x.Cond, depth+1)
		d.line(depth, "IfBody:")
		d.list(x.Then, depth+2)
		d.line(depth, "ElseBody:")
		d.list(x.Else, depth+2)
	case *While:
		d.line(depth, "WhileLoop")
		d.node(x.Cond, depth+1)
		d.line(depth, "Body:")
		d.list(x.Body, depth+2)
	case *For:
		d.line(depth, "ForLoop")
		d.node(x.Init, depth+1)
		d.node(x.Cond, depth+1)
		d.node(x.Incr, depth+1)
		d.line(depth, "Body:")
		d.list(x.Body, depth+2)
	case *Aux:
		d.line(depth, "AuxiliaryCodeBlock")
	default:
		d.line(depth, "Unknown Node Type: %s", reflect.TypeOf(x).String())
	}
}
