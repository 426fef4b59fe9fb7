package back

import (
	"strconv"

	"github.com/wizuall/wizu/compiler/ast"
)

type (
	vizKind struct {
		fn       string
		defaults []param
		decors   []decor

		// drop lists keywords the call accepts and ignores.
		drop []string

		// rename maps user keyword names onto matplotlib ones.
		rename map[string]string
	}

	param struct {
		key string
		val string // empty means computed from the call
	}

	decor struct {
		key  string
		call string
		def  string

		auto   bool   // emitted without a user value
		when   string // emitted without a user value if this keyword is given
		toggle bool   // True means bare call, False means skip
	}

	kwarg struct {
		name string
		val  ast.Node
	}
)

const tickLabels = "tick_labels"

var vizKinds = map[string]*vizKind{
	"plot": {
		fn: "plot",
		defaults: []param{
			{"color", "'blue'"},
			{"linestyle", "'-'"},
			{"marker", "''"},
			{"markersize", "5"},
			{"linewidth", "2"},
		},
		decors: []decor{
			title("'Plot'"), xlabel("'X-axis'"), ylabel("'Y-axis'"), grid("True"),
			{key: "legend", call: "plt.legend", toggle: true, when: "label"},
		},
	},
	"histogram": {
		fn: "hist",
		defaults: []param{
			{"bins", "10"},
			{"color", "'skyblue'"},
			{"edgecolor", "'black'"},
			{"density", "False"},
		},
		decors: []decor{
			title("'Histogram'"), xlabel("'Value'"), ylabel("'Frequency'"), grid("True"),
		},
	},
	"heatmap": {
		fn: "imshow",
		defaults: []param{
			{"cmap", "'viridis'"},
			{"interpolation", "'nearest'"},
			{"aspect", "'auto'"},
		},
		decors: []decor{
			title("'Heatmap'"), xlabel("'X-axis'"), ylabel("'Y-axis'"),
			{key: "colorbar", call: "plt.colorbar", toggle: true, auto: true},
		},
	},
	"barchart": {
		fn: "bar",
		defaults: []param{
			{"color", "'orange'"},
		},
		decors: []decor{
			title("'Bar Chart'"), xlabel("'Categories'"), ylabel("'Values'"), grid("axis='y'"),
		},
	},
	"piechart": {
		fn: "pie",
		decors: []decor{
			title("'Pie Chart'"),
		},
		drop: []string{"xlabel", "ylabel", "grid"},
	},
	"scatter": {
		fn: "scatter",
		defaults: []param{
			{"color", "'blue'"},
			{"marker", "'o'"},
			{"s", "100"},
			{"alpha", "0.6"},
		},
		decors: []decor{
			title("'Scatter Plot'"), xlabel("'X-axis'"), ylabel("'Y-axis'"), grid("True"),
		},
	},
	"boxplot": {
		fn: "boxplot",
		defaults: []param{
			{"notch", "False"},
			{"vert", "True"},
			{"patch_artist", "True"},
			{tickLabels, ""},
		},
		decors: []decor{
			title("'Box Plot'"), xlabel("'Groups'"), ylabel("'Values'"), grid("True"),
		},
		rename: map[string]string{"labels": tickLabels},
	},
	"timeline": {
		fn: "plot",
		defaults: []param{
			{"color", "'purple'"},
		},
		decors: []decor{
			title("'Timeline'"), xlabel("'Date'"), ylabel("'Value'"), grid("True"),
			{key: "autofmt_xdate", call: "plt.gcf().autofmt_xdate", toggle: true, auto: true},
		},
	},
}

func title(def string) decor  { return decor{key: "title", call: "plt.title", def: def, auto: true} }
func xlabel(def string) decor { return decor{key: "xlabel", call: "plt.xlabel", def: def, auto: true} }
func ylabel(def string) decor { return decor{key: "ylabel", call: "plt.ylabel", def: def, auto: true} }
func grid(def string) decor   { return decor{key: "grid", call: "plt.grid", def: def, auto: true} }

func (g *genContext) viz(b []byte, x *ast.VizCall) []byte {
	k, ok := vizKinds[x.Kind]
	if !ok {
		g.diag(x, Warning, "unknown visualization: %s", x.Kind)

		b = g.line(b, "# Unknown visualization: %s", x.Kind)

		return g.endLine(b)
	}

	pos, kws := k.partition(x.Args)

	user := make(map[string][]ast.Node, len(kws))

	for _, kw := range kws {
		if _, dup := user[kw.name]; dup {
			g.diag(kw.val, Warning, "%s: keyword %s given twice", x.Kind, kw.name)
		}

		if k.dropped(kw.name) {
			g.diag(kw.val, Warning, "%s: keyword %s ignored", x.Kind, kw.name)
		}

		user[kw.name] = append(user[kw.name], kw.val)
	}

	if g.tr.If("viz") {
		g.tr.Printw("viz", "kind", x.Kind, "fn", k.fn, "positional", len(pos), "keywords", len(kws))
	}

	b = g.line(b, "plt.%s(", k.fn)

	n := 0

	for _, a := range pos {
		b = comma(b, n)
		b = g.expr(b, a)
		n++
	}

	for _, kw := range kws {
		if k.reserved(kw.name) {
			continue
		}

		b = comma(b, n)
		b = append(b, kw.name...)
		b = append(b, '=')
		b = g.expr(b, kw.val)
		n++
	}

	for _, d := range k.defaults {
		if _, ok := user[d.key]; ok {
			continue
		}

		b = comma(b, n)
		b = append(b, d.key...)
		b = append(b, '=')

		if d.val != "" {
			b = append(b, d.val...)
		} else {
			b = appendTickLabels(b, groups(pos))
		}

		n++
	}

	b = append(b, ')')
	b = g.endLine(b)

	for _, d := range k.decors {
		b = g.decorate(b, d, user)
	}

	b = g.line(b, "plt.show()")

	return g.endLine(b)
}

// partition splits args into positional and keyword groups keeping order.
func (k *vizKind) partition(args ast.List) (pos []ast.Node, kws []kwarg) {
	for _, a := range args {
		name, val, ok := ast.Keyword(a)
		if !ok {
			pos = append(pos, a)
			continue
		}

		if r, ok := k.rename[name]; ok {
			name = r
		}

		kws = append(kws, kwarg{name: name, val: val})
	}

	return pos, kws
}

// reserved reports whether name is consumed by the kind itself
// instead of being passed to the plotting call.
func (k *vizKind) reserved(name string) bool {
	for _, d := range k.decors {
		if d.key == name {
			return true
		}
	}

	return k.dropped(name)
}

func (k *vizKind) dropped(name string) bool {
	for _, d := range k.drop {
		if d == name {
			return true
		}
	}

	return false
}

// decorate emits d once per user value in order, or its default if there are none.
func (g *genContext) decorate(b []byte, d decor, user map[string][]ast.Node) []byte {
	vals := user[d.key]

	for _, v := range vals {
		switch {
		case d.toggle && isBool(v, true):
			b = g.line(b, "%s()", d.call)
		case d.toggle && isBool(v, false):
			continue
		default:
			b = g.line(b, "%s(", d.call)
			b = g.expr(b, v)
			b = append(b, ')')
		}

		b = g.endLine(b)
	}

	if len(vals) != 0 {
		return b
	}

	if !d.auto && (d.when == "" || len(user[d.when]) == 0) {
		return b
	}

	b = g.line(b, "%s(%s)", d.call, d.def)

	return g.endLine(b)
}

func isBool(x ast.Node, v bool) bool {
	id, ok := x.(*ast.Ident)
	if !ok {
		return false
	}

	if v {
		return id.Name == "True" || id.Name == "true"
	}

	return id.Name == "False" || id.Name == "false"
}

// groups is the number of data groups passed to a boxplot.
func groups(pos []ast.Node) int {
	if len(pos) != 0 {
		if v, ok := pos[0].(*ast.Vector); ok {
			return len(v.Elems)
		}
	}

	return len(pos)
}

func appendTickLabels(b []byte, n int) []byte {
	b = append(b, '[')

	for i := 0; i < n; i++ {
		b = comma(b, i)
		b = append(b, "'Data "...)
		b = strconv.AppendInt(b, int64(i+1), 10)
		b = append(b, '\'')
	}

	return append(b, ']')
}
