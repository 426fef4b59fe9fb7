package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wizuall/wizu/compiler"
	"github.com/wizuall/wizu/compiler/ast"
	"github.com/wizuall/wizu/compiler/back"
	"github.com/wizuall/wizu/compiler/format"
	"github.com/wizuall/wizu/compiler/parse"
)

const historyFile = ".wizu_history"

func main() {
	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "translate a WizuAll script into a python script",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "output.py", "output file"),
			cli.NewFlag("stdout", false, "print the result instead of writing output file"),
			cli.NewFlag("indent", back.DefaultIndent, "spaces per python block level"),
			cli.NewFlag("no-resolve", false, "keep imports as comments"),
		},
	}

	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "dump abstract syntax tree",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	fmtCmd := &cli.Command{
		Name:        "fmt",
		Description: "print scripts in canonical form",
		Action:      fmtAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("write,w", false, "rewrite files in place"),
		},
	}

	replCmd := &cli.Command{
		Name:        "repl",
		Description: "translate statements interactively",
		Action:      replAct,
		Flags: []*cli.Flag{
			cli.NewFlag("indent", back.DefaultIndent, "spaces per python block level"),
		},
	}

	app := &cli.Command{
		Name:        "wizu",
		Description: "wizu translates WizuAll visualization scripts into python",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("log", "stderr", "log output file"),
			cli.NewFlag("verbosity,v", "", "logger verbosity topics"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			compileCmd,
			parseCmd,
			fmtCmd,
			replCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	var w io.Writer = os.Stderr

	switch q := c.String("log"); q {
	case "", "stderr":
	case "stdout", "-":
		w = os.Stdout
	default:
		f, err := os.OpenFile(q, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}

		w = f
	}

	tlog.DefaultLogger = tlog.New(tlog.NewConsoleWriter(w, tlog.LstdFlags))

	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	if len(c.Args) > 1 {
		return errors.New("compile takes at most one file, got %d", len(c.Args))
	}

	opts := compiler.Options{
		Indent:         c.Int("indent"),
		ResolveImports: !c.Bool("no-resolve"),
	}

	var res *compiler.Result

	if len(c.Args) == 0 {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "read stdin")
		}

		res, err = compiler.Compile(ctx, "", text, opts)
		if err != nil {
			return errors.Wrap(err, "compile stdin")
		}
	} else {
		res, err = compiler.CompileFile(ctx, c.Args[0], opts)
		if err != nil {
			return errors.Wrap(err, "compile %v", c.Args[0])
		}
	}

	fmt.Fprintf(os.Stderr, "Parsing successful\n")

	derr := reportDiagnostics(os.Stderr, res.Diagnostics)

	if c.Bool("stdout") {
		_, err = os.Stdout.Write(res.Text)
		if err != nil {
			return errors.Wrap(err, "write stdout")
		}
	} else {
		out := c.String("output")

		err = os.WriteFile(out, res.Text, 0o644)
		if err != nil {
			return errors.Wrap(err, "write output")
		}

		fmt.Fprintf(os.Stderr, "Python code written to %v\n", out)
	}

	return derr
}

// reportDiagnostics prints diags to w and fails if any of them is an error.
// The output is still written then so the marked lines can be inspected.
func reportDiagnostics(w io.Writer, diags back.Diagnostics) error {
	for _, d := range diags {
		fmt.Fprintf(w, "%v\n", d.String())
	}

	if diags.HasErrors() {
		return errors.New("code generation reported errors")
	}

	return nil
}

func parseAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	return eachProgram(ctx, c.Args, func(name string, p *ast.Program) error {
		return ast.Dump(os.Stdout, p)
	})
}

func fmtAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	write := c.Bool("write")

	return eachProgram(ctx, c.Args, func(name string, p *ast.Program) error {
		b, err := format.Format(ctx, nil, p)
		if err != nil {
			return errors.Wrap(err, "format")
		}

		if write && name != "" {
			return os.WriteFile(name, b, 0o644)
		}

		_, err = os.Stdout.Write(b)

		return err
	})
}

// eachProgram parses every named file, or stdin if there are none, and calls f.
func eachProgram(ctx context.Context, args []string, f func(name string, p *ast.Program) error) error {
	if len(args) == 0 {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "read stdin")
		}

		p, err := parse.Parse(ctx, text)
		if err != nil {
			return err
		}

		return f("", p)
	}

	for _, a := range args {
		p, err := parse.ParseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "%v", a)
		}

		err = f(a, p)
		if err != nil {
			return errors.Wrap(err, "%v", a)
		}
	}

	return nil
}

func replAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	comp := &back.Compiler{Indent: c.Int("indent")}

	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)

	var hist string

	if home, err := os.UserHomeDir(); err == nil {
		hist = filepath.Join(home, historyFile)

		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	for {
		src, p, err := readEntry(ctx, ln)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}

		if strings.TrimSpace(src) == ":quit" {
			break
		}

		if src != "" {
			ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		}

		if err != nil {
			fmt.Println(err)
			continue
		}

		if p == nil || len(p.Stmts) == 0 {
			continue
		}

		out, diags, err := comp.Generate(ctx, nil, p)
		if err != nil {
			fmt.Println(err)
			continue
		}

		for _, d := range diags {
			fmt.Println(d)
		}

		fmt.Printf("%s", out)
	}

	if hist != "" {
		if f, err := os.Create(hist); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}

	return nil
}

// readEntry reads lines until they form a complete program.
func readEntry(ctx context.Context, ln *liner.State) (src string, p *ast.Program, err error) {
	var b strings.Builder

	for {
		prompt := "wizu> "
		if b.Len() != 0 {
			prompt = "....> "
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", nil, nil
		}
		if err != nil {
			return b.String(), nil, err
		}

		if b.Len() != 0 {
			b.WriteByte('\n')
		}

		b.WriteString(line)

		src = b.String()

		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, nil, nil
		}

		p, err = parse.Parse(ctx, []byte(src))
		if parse.IsIncomplete(err) && strings.TrimSpace(line) != "" {
			continue
		}

		return src, p, err
	}
}
