package parse

import (
	"context"
	"fmt"

	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type (
	Token any

	Char    byte
	Keyword string
	Ident   string
	Number  string
	String  string
	Aux     string

	// Bad is a malformed token.
	// EOF is set if the input ended inside of it.
	Bad struct {
		Msg string
		EOF bool
	}
)

var keywords = map[string]struct{}{
	"if":     {},
	"else":   {},
	"while":  {},
	"for":    {},
	"import": {},

	"plot":      {},
	"histogram": {},
	"heatmap":   {},
	"barchart":  {},
	"piechart":  {},
	"scatter":   {},
	"boxplot":   {},
	"timeline":  {},
}

var vizKinds = map[Keyword]struct{}{
	"plot":      {},
	"histogram": {},
	"heatmap":   {},
	"barchart":  {},
	"piechart":  {},
	"scatter":   {},
	"boxplot":   {},
	"timeline":  {},
}

// next returns the token following st, its start and end.
// Token is nil at the end of input.
func (s *State) next(ctx context.Context, st int) (tk Token, tst int, i int) {
	if tr := tlog.SpanFromContext(ctx); tr.If("next_token") {
		defer func(st int) {
			tr.Printw("next token", "st", st, "tk", tk, "tst", tst, "i", i, "from", loc.Callers(1, 3))
		}(st)
	}

	st = skipBlank(s.b, st)
	i = st

	if i == len(s.b) {
		return nil, st, i
	}

	c := s.b[i]

	switch c {
	case '+', '-', '*', '/', '<', '>', '=', ',', ';', '(', ')', '{', '}', '[', ']':
		return Char(c), st, i + 1
	case '"', '\'':
		e := skipString(s.b, i)
		if e < 0 {
			e = skipLine(s.b, i)

			return Bad{Msg: "unterminated string", EOF: e == len(s.b)}, st, e
		}

		return String(s.b[i:e]), st, e
	case '%':
		if i+1 < len(s.b) && s.b[i+1] == '{' {
			return s.aux(st)
		}
	}

	switch {
	case isIdentStart(c):
		e := skipIdent(s.b, i)
		w := string(s.b[i:e])

		if _, ok := keywords[w]; ok {
			return Keyword(w), st, e
		}

		return Ident(w), st, e
	case isDigit(c) || c == '.':
		e := skipNum(s.b, i)
		if e != i {
			return Number(s.b[i:e]), st, e
		}
	}

	return Bad{Msg: fmt.Sprintf("unexpected character %q", c)}, st, i + 1
}

func (s *State) aux(st int) (tk Token, tst int, i int) {
	for i = st + 2; i+1 < len(s.b); i++ {
		if s.b[i] == '%' && s.b[i+1] == '}' {
			return Aux(s.b[st+2 : i]), st, i + 2
		}
	}

	return Bad{Msg: "unterminated aux block", EOF: true}, st, len(s.b)
}

func describe(tk Token) string {
	switch tk := tk.(type) {
	case nil:
		return "end of input"
	case Char:
		return fmt.Sprintf("%q", rune(tk))
	case Keyword:
		if tk == "" {
			return "keyword"
		}

		return fmt.Sprintf("keyword %q", string(tk))
	case Ident:
		if tk == "" {
			return "identifier"
		}

		return fmt.Sprintf("identifier %q", string(tk))
	case Number:
		if tk == "" {
			return "number"
		}

		return fmt.Sprintf("number %s", string(tk))
	case String:
		if tk == "" {
			return "string"
		}

		return fmt.Sprintf("string %s", string(tk))
	case Aux:
		return "aux block"
	case Bad:
		return tk.Msg
	default:
		return fmt.Sprintf("%v (%T)", tk, tk)
	}
}

func (c Char) String() string {
	return string(c)
}
