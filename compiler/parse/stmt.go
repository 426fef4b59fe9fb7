package parse

import (
	"context"
	"strconv"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wizuall/wizu/compiler/ast"
)

func (s *State) parseStatement(ctx context.Context, st int) (x ast.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)

	switch tk := tk.(type) {
	case Keyword:
		switch tk {
		case "import":
			return s.parseImport(ctx, tst, i)
		case "if":
			return s.parseIf(ctx, tst, i)
		case "while":
			return s.parseWhile(ctx, tst, i)
		case "for":
			return s.parseFor(ctx, tst, i)
		}

		if _, ok := vizKinds[tk]; ok {
			x, i, err = s.parseVizCall(ctx, tst, i, string(tk))
			if err != nil {
				return
			}

			i, err = s.expect(ctx, i, Char(';'))

			return x, i, err
		}

		return nil, tst, NewUnexpected(tk)
	case Ident:
		nx, nst, j := s.next(ctx, i)

		switch nx {
		case Char('='):
			x, i, err = s.parseAssignment(ctx, st)
		case Char('('):
			x, i, err = s.parseCall(ctx, tst, j, string(tk))
		default:
			return nil, nst, NewUnexpected(nx, Char('='), Char('('))
		}

		if err != nil {
			return
		}

		i, err = s.expect(ctx, i, Char(';'))

		return x, i, err
	case Aux:
		return &ast.Aux{
			Base: ast.Base{Pos: tst, End: i},
			Code: string(tk),
		}, i, nil
	default:
		return nil, tst, NewUnexpected(tk, Ident(""), Keyword(""))
	}
}

func (s *State) parseImport(ctx context.Context, st, vst int) (x ast.Node, i int, err error) {
	tk, tst, i := s.next(ctx, vst)

	name, ok := tk.(String)
	if !ok {
		return nil, tst, NewUnexpected(tk, String(""))
	}

	file, err := unquote(string(name))
	if err != nil {
		return nil, tst, errors.Wrap(err, "import")
	}

	i, err = s.expect(ctx, i, Char(';'))
	if err != nil {
		return nil, i, errors.Wrap(err, "import")
	}

	if tr := tlog.SpanFromContext(ctx); tr.If("import") {
		tr.Printw("import", "file", file)
	}

	return &ast.Import{
		Base: ast.Base{Pos: st, End: i},
		File: file,
	}, i, nil
}

func (s *State) parseAssignment(ctx context.Context, st int) (x *ast.Assignment, i int, err error) {
	tk, tst, i := s.next(ctx, st)

	name, ok := tk.(Ident)
	if !ok {
		return nil, tst, NewUnexpected(tk, Ident(""))
	}

	i, err = s.expect(ctx, i, Char('='))
	if err != nil {
		return nil, i, errors.Wrap(err, "assignment")
	}

	rhs, i, err := s.parseExpr(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "assign %v", string(name))
	}

	return &ast.Assignment{
		Base: ast.Base{Pos: tst, End: i},
		Name: string(name),
		Expr: rhs,
	}, i, nil
}

func (s *State) parseIf(ctx context.Context, st, vst int) (x ast.Node, i int, err error) {
	cond, i, err := s.parseCond(ctx, vst)
	if err != nil {
		return nil, i, errors.Wrap(err, "if")
	}

	then, i, err := s.parseBlock(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "if: then")
	}

	tk, tst, i := s.next(ctx, i)
	if tk != Keyword("else") {
		return nil, tst, errors.Wrap(NewUnexpected(tk, Keyword("else")), "if")
	}

	els, i, err := s.parseBlock(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "if: else")
	}

	return &ast.IfElse{
		Base: ast.Base{Pos: st, End: i},
		Cond: cond,
		Then: then,
		Else: els,
	}, i, nil
}

func (s *State) parseWhile(ctx context.Context, st, vst int) (x ast.Node, i int, err error) {
	cond, i, err := s.parseCond(ctx, vst)
	if err != nil {
		return nil, i, errors.Wrap(err, "while")
	}

	body, i, err := s.parseBlock(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "while: body")
	}

	return &ast.While{
		Base: ast.Base{Pos: st, End: i},
		Cond: cond,
		Body: body,
	}, i, nil
}

func (s *State) parseFor(ctx context.Context, st, vst int) (x ast.Node, i int, err error) {
	i, err = s.expect(ctx, vst, Char('('))
	if err != nil {
		return nil, i, errors.Wrap(err, "for")
	}

	pre, i, err := s.parseAssignment(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "for: init")
	}

	i, err = s.expect(ctx, i, Char(';'))
	if err != nil {
		return nil, i, errors.Wrap(err, "for: init")
	}

	cond, i, err := s.parseExpr(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "for: cond")
	}

	i, err = s.expect(ctx, i, Char(';'))
	if err != nil {
		return nil, i, errors.Wrap(err, "for: cond")
	}

	incr, i, err := s.parseAssignment(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "for: increment")
	}

	i, err = s.expect(ctx, i, Char(')'))
	if err != nil {
		return nil, i, errors.Wrap(err, "for")
	}

	body, i, err := s.parseBlock(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "for: body")
	}

	return &ast.For{
		Base: ast.Base{Pos: st, End: i},
		Init: pre,
		Cond: cond,
		Incr: incr,
		Body: body,
	}, i, nil
}

// parseCond parses "(" Expr ")".
func (s *State) parseCond(ctx context.Context, st int) (x ast.Node, i int, err error) {
	i, err = s.expect(ctx, st, Char('('))
	if err != nil {
		return nil, i, err
	}

	x, i, err = s.parseExpr(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "cond")
	}

	i, err = s.expect(ctx, i, Char(')'))
	if err != nil {
		return nil, i, errors.Wrap(err, "cond")
	}

	return x, i, nil
}

func (s *State) parseBlock(ctx context.Context, st int) (l ast.List, i int, err error) {
	i, err = s.expect(ctx, st, Char('{'))
	if err != nil {
		return nil, i, err
	}

	for {
		tk, _, e := s.next(ctx, i)
		if tk == Char('}') {
			return l, e, nil
		}

		var x ast.Node

		x, i, err = s.parseStatement(ctx, i)
		if err != nil {
			return nil, i, err
		}

		l = l.Append(x)
	}
}

func (s *State) expect(ctx context.Context, st int, want Token) (i int, err error) {
	tk, tst, i := s.next(ctx, st)
	if tk != want {
		return tst, NewUnexpected(tk, want)
	}

	return i, nil
}

func unquote(q string) (string, error) {
	if len(q) >= 2 && q[0] == '\'' && q[len(q)-1] == '\'' {
		q = `"` + q[1:len(q)-1] + `"`
	}

	r, err := strconv.Unquote(q)
	if err != nil {
		return "", errors.Wrap(err, "unquote %s", q)
	}

	return r, nil
}
