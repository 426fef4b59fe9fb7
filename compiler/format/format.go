package format

import (
	"context"
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/wizuall/wizu/compiler/ast"
)

// Format appends canonical source text of x to b.
// x is a Program, a statement or an expression.
func Format(ctx context.Context, b []byte, x ast.Node) ([]byte, error) {
	switch x := x.(type) {
	case *ast.Program:
		return formatBlock(ctx, b, x.Stmts, 0)
	case *ast.Assignment, *ast.Import, *ast.Call, *ast.VizCall, *ast.IfElse, *ast.While, *ast.For, *ast.Aux:
		return formatStmt(ctx, b, x, 0)
	default:
		return formatExpr(ctx, b, x)
	}
}

func formatBlock(ctx context.Context, b []byte, l ast.List, d int) (_ []byte, err error) {
	for i, s := range l {
		b, err = formatStmt(ctx, b, s, d)
		if err != nil {
			return nil, errors.Wrap(err, "stmt %d", i)
		}
	}

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, x ast.Node, d int) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Import:
		b = app(b, d, "import %s;\n", strconv.Quote(x.File))
	case *ast.Assignment:
		b, err = formatAssignment(ctx, b, x, d)
		if err != nil {
			return nil, err
		}

		b = append(b, ";\n"...)
	case *ast.IfElse:
		b = app(b, d, "if (")

		b, err = formatExpr(ctx, b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, ") {\n"...)

		b, err = formatBlock(ctx, b, x.Then, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "then block")
		}

		b = app(b, d, "} else {\n")

		b, err = formatBlock(ctx, b, x.Else, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "else block")
		}

		b = app(b, d, "}\n")
	case *ast.While:
		b = app(b, d, "while (")

		b, err = formatExpr(ctx, b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, ") {\n"...)

		b, err = formatBlock(ctx, b, x.Body, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}

		b = app(b, d, "}\n")
	case *ast.For:
		b, err = formatFor(ctx, b, x, d)
		if err != nil {
			return nil, err
		}
	case *ast.Aux:
		b = app(b, d, "")
		b = append(b, "%{"...)
		b = append(b, x.Code...)
		b = append(b, "%}\n"...)
	case *ast.Call, *ast.VizCall:
		b = app(b, d, "")

		b, err = formatExpr(ctx, b, x)
		if err != nil {
			return nil, err
		}

		b = append(b, ";\n"...)
	default:
		return nil, errors.New("unsupported stmt: %T", x)
	}

	return b, nil
}

func formatAssignment(ctx context.Context, b []byte, x ast.Node, d int) (_ []byte, err error) {
	a, ok := x.(*ast.Assignment)
	if !ok {
		return nil, errors.New("want assignment, got %T", x)
	}

	b = app(b, d, "%s = ", a.Name)

	b, err = formatExpr(ctx, b, a.Expr)
	if err != nil {
		return nil, errors.Wrap(err, "assign %v", a.Name)
	}

	return b, nil
}

func formatFor(ctx context.Context, b []byte, x *ast.For, d int) (_ []byte, err error) {
	b = app(b, d, "for (")

	b, err = formatAssignment(ctx, b, x.Init, 0)
	if err != nil {
		return nil, errors.Wrap(err, "init")
	}

	b = append(b, "; "...)

	b, err = formatExpr(ctx, b, x.Cond)
	if err != nil {
		return nil, errors.Wrap(err, "cond")
	}

	b = append(b, "; "...)

	b, err = formatAssignment(ctx, b, x.Incr, 0)
	if err != nil {
		return nil, errors.Wrap(err, "increment")
	}

	b = append(b, ") {\n"...)

	b, err = formatBlock(ctx, b, x.Body, d+1)
	if err != nil {
		return nil, errors.Wrap(err, "body")
	}

	b = app(b, d, "}\n")

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, x ast.Node) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Ident:
		b = append(b, x.Name...)
	case *ast.Number:
		b = strconv.AppendFloat(b, x.Value, 'g', -1, 64)
	case *ast.String:
		b = append(b, x.Text...)
	case *ast.Vector:
		b = append(b, '[')

		b, err = formatList(ctx, b, x.Elems)
		if err != nil {
			return nil, errors.Wrap(err, "vector")
		}

		b = append(b, ']')
	case *ast.BinaryOp:
		b, err = formatOperand(ctx, b, x.Left, prec(x.Left) < prec(x))
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = app(b, 0, " %s ", x.Op.String())

		b, err = formatOperand(ctx, b, x.Right, prec(x.Right) <= prec(x))
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}
	case *ast.KeywordArg:
		b = app(b, 0, "%s = ", x.Name)

		b, err = formatExpr(ctx, b, x.Value)
		if err != nil {
			return nil, errors.Wrap(err, "keyword %v", x.Name)
		}
	case *ast.Call:
		b = app(b, 0, "%s(", x.Name)

		b, err = formatList(ctx, b, x.Args)
		if err != nil {
			return nil, errors.Wrap(err, "call %v", x.Name)
		}

		b = append(b, ')')
	case *ast.VizCall:
		b = app(b, 0, "%s(", x.Kind)

		b, err = formatList(ctx, b, x.Args)
		if err != nil {
			return nil, errors.Wrap(err, "%v", x.Kind)
		}

		b = append(b, ')')
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}

func formatOperand(ctx context.Context, b []byte, x ast.Node, paren bool) (_ []byte, err error) {
	if paren {
		b = append(b, '(')
	}

	b, err = formatExpr(ctx, b, x)
	if err != nil {
		return nil, err
	}

	if paren {
		b = append(b, ')')
	}

	return b, nil
}

func formatList(ctx context.Context, b []byte, l ast.List) (_ []byte, err error) {
	for i, x := range l {
		if i != 0 {
			b = append(b, ", "...)
		}

		b, err = formatExpr(ctx, b, x)
		if err != nil {
			return nil, errors.Wrap(err, "elem %d", i)
		}
	}

	return b, nil
}

// prec is the binding strength of x, operands bind tightest.
func prec(x ast.Node) int {
	op, ok := x.(*ast.BinaryOp)
	if !ok {
		return 3
	}

	switch op.Op {
	case ast.Mul, ast.Div:
		return 2
	case ast.Assign:
		return 0
	default:
		return 1
	}
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	for d > len(tabs) {
		b = append(b, tabs...)
		d -= len(tabs)
	}
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
