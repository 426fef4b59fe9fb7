package parse

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wizuall/wizu/compiler/ast"
)

type (
	State struct {
		b []byte // all files concatenated

		files []file
	}

	file struct {
		base int
		name string
	}

	UnexpectedError struct {
		Token Token
		Want  []Token
	}

	// SyntaxError is the only error Parse returns for bad input.
	SyntaxError struct {
		Pos  int
		File string
		Line int
		Col  int

		// Incomplete is set if the input ended before the program did.
		Incomplete bool

		Err error
	}
)

func ParseFile(ctx context.Context, name string) (*ast.Program, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	s := New()

	s.AddFile(name, data)

	return s.Parse(ctx)
}

func Parse(ctx context.Context, text []byte) (*ast.Program, error) {
	s := New()

	s.AddFile("", text)

	return s.Parse(ctx)
}

func New() *State {
	return &State{}
}

func (s *State) AddFile(name string, text []byte) {
	f := file{
		name: name,
		base: len(s.b),
	}

	s.b = append(s.b, text...)

	s.files = append(s.files, f)
}

// Position converts offset into file name, line and column, all 1-based.
func (s *State) Position(pos int) (name string, line, col int) {
	base := 0

	for _, f := range s.files {
		if f.base > pos {
			break
		}

		name, base = f.name, f.base
	}

	line, col = 1, 1

	for _, c := range s.b[base:pos] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return name, line, col
}

// Parse parses the most recently added file.
func (s *State) Parse(ctx context.Context) (p *ast.Program, err error) {
	st := 0
	name := ""

	if len(s.files) != 0 {
		f := s.files[len(s.files)-1]
		st, name = f.base, f.name
	}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "file", name, "size", len(s.b)-st)
	defer tr.Finish("err", &err)

	p = &ast.Program{}

	var x ast.Node

	for i := st; ; {
		tk, tst, _ := s.next(ctx, i)
		if tk == nil {
			p.Base = ast.Base{Pos: st, End: tst}
			break
		}

		x, i, err = s.parseStatement(ctx, i)
		if err != nil {
			return nil, s.syntaxError(i, err)
		}

		p.Stmts = p.Stmts.Append(x)
	}

	if tr.If("dump_ast") {
		tr.Printw("ast", "stmts", len(p.Stmts), "program", p)
	}

	return p, nil
}

func (s *State) syntaxError(pos int, err error) *SyntaxError {
	e := &SyntaxError{
		Pos: pos,
		Err: err,
	}

	e.File, e.Line, e.Col = s.Position(pos)

	var u UnexpectedError
	if errors.As(err, &u) {
		switch tk := u.Token.(type) {
		case nil:
			e.Incomplete = true
		case Bad:
			e.Incomplete = tk.EOF
		}
	}

	return e
}

// IsIncomplete reports whether err is a syntax error caused by truncated input.
func IsIncomplete(err error) bool {
	var e *SyntaxError

	return errors.As(err, &e) && e.Incomplete
}

func NewUnexpected(got Token, want ...Token) error {
	return UnexpectedError{
		Token: got,
		Want:  want,
	}
}

func (e UnexpectedError) Error() string {
	if len(e.Want) == 0 {
		return fmt.Sprintf("unexpected %v", describe(e.Token))
	}

	l := make([]string, len(e.Want))

	for i := range e.Want {
		l[i] = describe(e.Want[i])
	}

	return fmt.Sprintf("unexpected %v, want %v", describe(e.Token), strings.Join(l, " or "))
}

func (e *SyntaxError) Error() string {
	name := e.File
	if name == "" {
		name = "<input>"
	}

	return fmt.Sprintf("%s:%d:%d: syntax error: %v", name, e.Line, e.Col, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
