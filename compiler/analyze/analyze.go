package analyze

import (
	"context"
	"fmt"
	"reflect"

	"tlog.app/go/tlog"

	"github.com/wizuall/wizu/compiler/ast"
	"github.com/wizuall/wizu/compiler/set"
)

type (
	Requirement int

	// Requirements is the set of imports and helpers a program needs.
	Requirements = set.Bits[Requirement]

	UnsupportedNodeError struct{ T ast.Node }
)

const (
	Plotting Requirement = iota
	Numeric
	PairwiseHelper
	ParetoHelper
)

var reqNames = [...]string{
	Plotting:       "plotting",
	Numeric:        "numeric",
	PairwiseHelper: "pairwise_helper",
	ParetoHelper:   "pareto_helper",
}

// CallRequirements maps function names to what their lowering needs.
var CallRequirements = map[string]Requirement{
	"runningSum":      Numeric,
	"pairwiseCompare": PairwiseHelper,
	"paretoSet":       ParetoHelper,
}

// Scan walks the whole tree and collects requirements.
func Scan(ctx context.Context, x ast.Node) (r Requirements) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "scan")
	defer tr.Finish("requirements", &r)

	s := scanner{tr: tr}

	s.node(x)

	return s.r
}

type scanner struct {
	tr tlog.Span
	r  Requirements
}

func (s *scanner) list(l ast.List) {
	for _, x := range l {
		s.node(x)
	}
}

func (s *scanner) node(x ast.Node) {
	switch x := x.(type) {
	case nil:
	case *ast.Program:
		s.list(x.Stmts)
	case *ast.Assignment:
		s.node(x.Expr)
	case *ast.BinaryOp:
		s.node(x.Left)
		s.node(x.Right)
	case *ast.KeywordArg:
		s.node(x.Value)
	case *ast.Vector:
		s.list(x.Elems)
	case *ast.Call:
		if q, ok := CallRequirements[x.Name]; ok {
			s.set(q, x.Name)
		}

		s.list(x.Args)
	case *ast.VizCall:
		s.set(Plotting, x.Kind)
		s.list(x.Args)
	case *ast.IfElse:
		s.node(x.Cond)
		s.list(x.Then)
		s.list(x.Else)
	case *ast.While:
		s.node(x.Cond)
		s.list(x.Body)
	case *ast.For:
		s.node(x.Init)
		s.node(x.Cond)
		s.node(x.Incr)
		s.list(x.Body)
	case *ast.Import, *ast.Number, *ast.Ident, *ast.String, *ast.Aux:
	default:
		if s.tr.If("scan") {
			s.tr.Printw("skip node", "type", reflect.TypeOf(x))
		}
	}
}

func (s *scanner) set(q Requirement, by string) {
	if s.tr.If("scan") && !s.r.IsSet(q) {
		s.tr.Printw("requirement", "req", q, "by", by)
	}

	s.r.Set(q)
}

func (q Requirement) String() string {
	if q < 0 || int(q) >= len(reqNames) {
		return fmt.Sprintf("Requirement(%d)", int(q))
	}

	return reqNames[q]
}

func NewUnsupportedNode(x ast.Node) UnsupportedNodeError {
	return UnsupportedNodeError{
		T: x,
	}
}

func (e UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node: %v", reflect.TypeOf(e.T))
}
