package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wizuall/wizu/compiler/analyze"
	"github.com/wizuall/wizu/compiler/ast"
	"github.com/wizuall/wizu/compiler/back"
	"github.com/wizuall/wizu/compiler/parse"
)

type (
	Options struct {
		// Indent is the number of spaces per Python block level.
		Indent int

		// ResolveImports splices imported files in place of import statements.
		ResolveImports bool
	}

	Result struct {
		Text         []byte
		Requirements analyze.Requirements
		Diagnostics  back.Diagnostics
	}

	ImportCycleError struct {
		Chain []string
	}

	resolver struct {
		st    *parse.State
		stack []string
	}
)

func DefaultOptions() Options {
	return Options{
		Indent:         back.DefaultIndent,
		ResolveImports: true,
	}
}

func CompileFile(ctx context.Context, name string, opts Options) (*Result, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text, opts)
}

// Compile translates text into a Python script.
// name is used for positions and as the base for relative imports.
func Compile(ctx context.Context, name string, text []byte, opts Options) (res *Result, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	if name != "" {
		name = filepath.Clean(name)
	}

	st := parse.New()

	st.AddFile(name, text)

	p, err := st.Parse(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	if opts.ResolveImports {
		r := &resolver{
			st:    st,
			stack: []string{name},
		}

		stmts, err := r.list(ctx, filepath.Dir(name), p.Stmts)
		if err != nil {
			return nil, errors.Wrap(err, "resolve imports")
		}

		p = &ast.Program{Base: p.Base, Stmts: stmts}
	}

	c := &back.Compiler{Indent: opts.Indent}

	out, diags, err := c.Generate(ctx, nil, p)
	if err != nil {
		return nil, errors.Wrap(err, "generate")
	}

	for i := range diags {
		d := &diags[i]
		d.File, d.Line, d.Col = st.Position(d.Pos)
	}

	res = &Result{
		Text:         out,
		Requirements: analyze.Scan(ctx, p),
		Diagnostics:  diags,
	}

	return res, nil
}

func (r *resolver) list(ctx context.Context, dir string, l ast.List) (res ast.List, err error) {
	for _, s := range l {
		switch s := s.(type) {
		case *ast.Import:
			stmts, err := r.file(ctx, dir, s)
			if err != nil {
				return nil, err
			}

			for _, x := range stmts {
				res = res.Append(x)
			}

			continue
		case *ast.IfElse:
			n := *s

			n.Then, err = r.list(ctx, dir, s.Then)
			if err != nil {
				return nil, errors.Wrap(err, "then")
			}

			n.Else, err = r.list(ctx, dir, s.Else)
			if err != nil {
				return nil, errors.Wrap(err, "else")
			}

			res = res.Append(&n)
		case *ast.While:
			n := *s

			n.Body, err = r.list(ctx, dir, s.Body)
			if err != nil {
				return nil, errors.Wrap(err, "while")
			}

			res = res.Append(&n)
		case *ast.For:
			n := *s

			n.Body, err = r.list(ctx, dir, s.Body)
			if err != nil {
				return nil, errors.Wrap(err, "for")
			}

			res = res.Append(&n)
		default:
			res = res.Append(s)
		}
	}

	return res, nil
}

func (r *resolver) file(ctx context.Context, dir string, imp *ast.Import) (_ ast.List, err error) {
	path := imp.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	for _, f := range r.stack {
		if f == path {
			chain := append([]string{}, r.stack...)

			return nil, ImportCycleError{Chain: append(chain, path)}
		}
	}

	if tr := tlog.SpanFromContext(ctx); tr.If("import") {
		tr.Printw("import", "file", imp.File, "path", path, "depth", len(r.stack))
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "import %q", imp.File)
	}

	r.st.AddFile(path, text)

	p, err := r.st.Parse(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "import %q", imp.File)
	}

	r.stack = append(r.stack, path)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	return r.list(ctx, filepath.Dir(path), p.Stmts)
}

func (e ImportCycleError) Error() string {
	return "import cycle: " + strings.Join(e.Chain, " -> ")
}
