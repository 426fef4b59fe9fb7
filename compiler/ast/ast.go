package ast

type (
	Node interface {
		Position() Base
	}

	// Base is the source span of a node.
	// Synthetic nodes have zero span.
	Base struct {
		Pos int
		End int
	}

	List []Node

	Op int

	Program struct {
		Base `tlog:",embed"`

		Stmts List
	}

	Import struct {
		Base `tlog:",embed"`

		File string
	}

	Assignment struct {
		Base `tlog:",embed"`

		Name string
		Expr Node
	}

	BinaryOp struct {
		Base `tlog:",embed"`

		Op    Op
		Left  Node
		Right Node
	}

	// KeywordArg is a name = value pair in a call argument list.
	KeywordArg struct {
		Base `tlog:",embed"`

		Name  string
		Value Node
	}

	Vector struct {
		Base `tlog:",embed"`

		Elems List
	}

	Number struct {
		Base `tlog:",embed"`

		Value float64
	}

	Ident struct {
		Base `tlog:",embed"`

		Name string
	}

	// String holds the literal with its quotes.
	String struct {
		Base `tlog:",embed"`

		Text string
	}

	Call struct {
		Base `tlog:",embed"`

		Name string
		Args List
	}

	VizCall struct {
		Base `tlog:",embed"`

		Kind string
		Args List
	}

	IfElse struct {
		Base `tlog:",embed"`

		Cond Node
		Then List
		Else List
	}

	While struct {
		Base `tlog:",embed"`

		Cond Node
		Body List
	}

	For struct {
		Base `tlog:",embed"`

		Init Node
		Cond Node
		Incr Node
		Body List
	}

	// Aux is a raw block of target code passed through as is.
	Aux struct {
		Base `tlog:",embed"`

		Code string
	}
)

const (
	Add Op = iota
	Sub
	Mul
	Div
	Assign
	Lt
	Gt
)

var opText = [...]string{
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Assign: "=",
	Lt:     "<",
	Gt:     ">",
}

func (b Base) Position() Base { return b }

func (op Op) String() string {
	if op < 0 || int(op) >= len(opText) {
		return "?"
	}

	return opText[op]
}

func NewList(n ...Node) List {
	return List(n)
}

// Append adds n to the tail.
func (l List) Append(n Node) List {
	return append(l, n)
}

func NewProgram(stmts List) *Program {
	return &Program{Stmts: stmts}
}

func NewImport(file string) *Import {
	return &Import{File: file}
}

func NewAssignment(name string, expr Node) *Assignment {
	return &Assignment{Name: name, Expr: expr}
}

func NewBinaryOp(op Op, l, r Node) *BinaryOp {
	return &BinaryOp{Op: op, Left: l, Right: r}
}

func NewKeywordArg(name string, val Node) *KeywordArg {
	return &KeywordArg{Name: name, Value: val}
}

func NewVector(elems List) *Vector {
	return &Vector{Elems: elems}
}

func NewNumber(v float64) *Number {
	return &Number{Value: v}
}

func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

func NewString(text string) *String {
	return &String{Text: text}
}

func NewCall(name string, args List) *Call {
	return &Call{Name: name, Args: args}
}

func NewVizCall(kind string, args List) *VizCall {
	return &VizCall{Kind: kind, Args: args}
}

func NewIfElse(cond Node, then, els List) *IfElse {
	return &IfElse{Cond: cond, Then: then, Else: els}
}

func NewWhile(cond Node, body List) *While {
	return &While{Cond: cond, Body: body}
}

func NewFor(init, cond, incr Node, body List) *For {
	return &For{Init: init, Cond: cond, Incr: incr, Body: body}
}

func NewAux(code string) *Aux {
	return &Aux{Code: code}
}

// Keyword reports whether n is a keyword pair in an argument list
// and returns its parts.
// Both KeywordArg and BinaryOp(Assign) with an Ident on the left qualify.
func Keyword(n Node) (name string, val Node, ok bool) {
	switch n := n.(type) {
	case *KeywordArg:
		return n.Name, n.Value, true
	case *BinaryOp:
		if n.Op != Assign {
			return "", nil, false
		}

		id, ok := n.Left.(*Ident)
		if !ok {
			return "", nil, false
		}

		return id.Name, n.Right, true
	}

	return "", nil, false
}
