package parse

import (
	"context"
	"strconv"

	"tlog.app/go/errors"

	"github.com/wizuall/wizu/compiler/ast"
)

var (
	sumOps = map[Token]ast.Op{
		Char('+'): ast.Add,
		Char('-'): ast.Sub,
		Char('<'): ast.Lt,
		Char('>'): ast.Gt,
	}

	mulOps = map[Token]ast.Op{
		Char('*'): ast.Mul,
		Char('/'): ast.Div,
	}
)

func (s *State) parseExpr(ctx context.Context, st int) (x ast.Node, i int, err error) {
	return s.parseLeftToRight(ctx, st, sumOps, s.parseTerm)
}

func (s *State) parseTerm(ctx context.Context, st int) (x ast.Node, i int, err error) {
	return s.parseLeftToRight(ctx, st, mulOps, s.parseFactor)
}

func (s *State) parseLeftToRight(ctx context.Context, st int, ops map[Token]ast.Op,
	arg func(context.Context, int) (ast.Node, int, error)) (x ast.Node, i int, err error) {
	x, i, err = arg(ctx, st)
	if err != nil {
		return nil, i, err
	}

	for {
		tk, _, e := s.next(ctx, i)

		op, ok := ops[tk]
		if !ok {
			return x, i, nil
		}

		var r ast.Node
		r, i, err = arg(ctx, e)
		if err != nil {
			return nil, i, errors.Wrap(err, "%v", op)
		}

		x = &ast.BinaryOp{
			Base:  ast.Base{Pos: x.Position().Pos, End: i},
			Op:    op,
			Left:  x,
			Right: r,
		}
	}
}

func (s *State) parseFactor(ctx context.Context, st int) (x ast.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)

	switch tk := tk.(type) {
	case Number:
		return s.number(tst, i, string(tk), false)
	case String:
		return &ast.String{
			Base: ast.Base{Pos: tst, End: i},
			Text: string(tk),
		}, i, nil
	case Ident:
		nx, _, j := s.next(ctx, i)
		if nx == Char('(') {
			return s.parseCall(ctx, tst, j, string(tk))
		}

		return &ast.Ident{
			Base: ast.Base{Pos: tst, End: i},
			Name: string(tk),
		}, i, nil
	case Char:
		switch tk {
		case '-':
			nx, nst, e := s.next(ctx, i)

			num, ok := nx.(Number)
			if !ok {
				return nil, nst, NewUnexpected(nx, Number(""))
			}

			return s.number(tst, e, string(num), true)
		case '[':
			return s.parseVector(ctx, tst, i)
		case '(':
			x, i, err = s.parseExpr(ctx, i)
			if err != nil {
				return nil, i, errors.Wrap(err, "group")
			}

			i, err = s.expect(ctx, i, Char(')'))
			if err != nil {
				return nil, i, errors.Wrap(err, "group")
			}

			return x, i, nil
		}
	}

	return nil, tst, NewUnexpected(tk, Number(""), String(""), Ident(""), Char('['), Char('('))
}

func (s *State) number(st, end int, text string, neg bool) (x ast.Node, i int, err error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, st, errors.Wrap(err, "parse number")
	}

	if neg {
		v = -v
	}

	return &ast.Number{
		Base:  ast.Base{Pos: st, End: end},
		Value: v,
	}, end, nil
}

func (s *State) parseVector(ctx context.Context, st, vst int) (x ast.Node, i int, err error) {
	elems, i, err := s.parseList(ctx, vst, Char(']'), false)
	if err != nil {
		return nil, i, errors.Wrap(err, "vector")
	}

	return &ast.Vector{
		Base:  ast.Base{Pos: st, End: i},
		Elems: elems,
	}, i, nil
}

// parseCall parses arguments of a function call, vst points after "(".
func (s *State) parseCall(ctx context.Context, st, vst int, name string) (x ast.Node, i int, err error) {
	args, i, err := s.parseList(ctx, vst, Char(')'), false)
	if err != nil {
		return nil, i, errors.Wrap(err, "call %v", name)
	}

	return &ast.Call{
		Base: ast.Base{Pos: st, End: i},
		Name: name,
		Args: args,
	}, i, nil
}

// parseVizCall parses a visualization call, vst points after the kind keyword.
func (s *State) parseVizCall(ctx context.Context, st, vst int, kind string) (x ast.Node, i int, err error) {
	i, err = s.expect(ctx, vst, Char('('))
	if err != nil {
		return nil, i, errors.Wrap(err, "%v", kind)
	}

	args, i, err := s.parseList(ctx, i, Char(')'), true)
	if err != nil {
		return nil, i, errors.Wrap(err, "%v", kind)
	}

	return &ast.VizCall{
		Base: ast.Base{Pos: st, End: i},
		Kind: kind,
		Args: args,
	}, i, nil
}

// parseList parses comma separated expressions up to the closing token.
// Keyword pairs are accepted if kw is set.
func (s *State) parseList(ctx context.Context, st int, end Token, kw bool) (l ast.List, i int, err error) {
	tk, _, e := s.next(ctx, st)
	if tk == end {
		return nil, e, nil
	}

	i = st

	for {
		var x ast.Node

		if kw {
			x, i, err = s.parseArg(ctx, i)
		} else {
			x, i, err = s.parseExpr(ctx, i)
		}
		if err != nil {
			return nil, i, errors.Wrap(err, "arg %d", len(l))
		}

		l = l.Append(x)

		tk, tst, e := s.next(ctx, i)

		switch tk {
		case Char(','):
			i = e
		case end:
			return l, e, nil
		default:
			return nil, tst, NewUnexpected(tk, Char(','), end)
		}
	}
}

func (s *State) parseArg(ctx context.Context, st int) (x ast.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)

	if name, ok := tk.(Ident); ok {
		if nx, _, e := s.next(ctx, i); nx == Char('=') {
			val, i, err := s.parseExpr(ctx, e)
			if err != nil {
				return nil, i, errors.Wrap(err, "keyword %v", string(name))
			}

			return &ast.KeywordArg{
				Base:  ast.Base{Pos: tst, End: i},
				Name:  string(name),
				Value: val,
			}, i, nil
		}
	}

	return s.parseExpr(ctx, st)
}
