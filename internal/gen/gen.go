// Package gen renders component trees as Go constructor functions.
package gen

import (
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/skinnyjames/hokusai-pocket/ast"
	"github.com/skinnyjames/hokusai-pocket/style"
)

const (
	astPath   = "github.com/skinnyjames/hokusai-pocket/ast"
	stylePath = "github.com/skinnyjames/hokusai-pocket/style"
)

// Template is a single constructor to generate.
type Template struct {
	// Func is the constructor name, see FuncName.
	Func string
	Tree *ast.Tree
}

// FuncName derives a constructor name from a template file path: "side_menu.hml" gives "NewSideMenu".
func FuncName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	sb := &strings.Builder{}
	sb.WriteString("New")
	for _, part := range strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	if sb.Len() == 3 {
		sb.WriteString("Template")
	}
	return sb.String()
}

// Generate writes a Go file of package pkg with a constructor per template.
func Generate(w io.Writer, pkg string, templates ...Template) error {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by hmlc. DO NOT EDIT.")
	for _, t := range templates {
		f.Commentf("%s builds the component tree of the template.", t.Func)
		f.Func().Id(t.Func).Params().Params(jen.Op("*").Qual(astPath, "Tree"), jen.Error()).Block(constructor(t.Tree)...)
	}
	return f.Render(w)
}

func ids(i int) *jen.Statement {
	return jen.Id("ids").Index(jen.Lit(i))
}

func constructor(tree *ast.Tree) []jen.Code {
	var order []ast.NodeID
	index := map[ast.NodeID]int{}
	tree.Walk(func(id ast.NodeID, _ int) {
		index[id] = len(order)
		order = append(order, id)
	})

	types := make([]jen.Code, len(order))
	for i, id := range order {
		types[i] = jen.Lit(tree.Node(id).Type)
	}

	body := []jen.Code{
		jen.Id("t").Op(":=").Qual(astPath, "NewTree").Call(),
		jen.Id("ids").Op(":=").Make(jen.Index().Qual(astPath, "NodeID"), jen.Lit(len(order))),
		jen.For(jen.List(jen.Id("i"), jen.Id("typ")).Op(":=").Range().Index().String().Values(types...)).Block(
			jen.List(jen.Id("id"), jen.Err()).Op(":=").Id("t").Dot("NewNode").Call(jen.Id("typ")),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
			jen.Id("ids").Index(jen.Id("i")).Op("=").Id("id"),
		),
	}

	var assign []jen.Code
	for i, id := range order {
		assign = append(assign, fields(i, tree.Node(id))...)
	}
	if len(assign) > 0 {
		body = append(body, jen.Line(), jen.Var().Id("n").Op("*").Qual(astPath, "Node"))
		body = append(body, assign...)
	}

	body = append(body, jen.Line())
	for _, id := range order {
		for _, c := range tree.Children(id) {
			body = append(body, jen.Id("t").Dot("AppendChild").Call(ids(index[id]), ids(index[c])))
		}
		if branch := tree.ElseBranch(id); len(branch) > 0 {
			body = append(body, jen.Id("t").Dot("SetElse").Call(ids(index[id]), ids(index[branch[0]])))
			for _, s := range branch[1:] {
				body = append(body, jen.Id("t").Dot("AppendSibling").Call(ids(index[branch[0]]), ids(index[s])))
			}
		}
	}

	if len(order) > 0 {
		body = append(body, jen.Id("t").Dot("SetRoot").Call(ids(0)))
	}
	if tree.Styles != nil {
		body = append(body, jen.Id("t").Dot("Styles").Op("=").Add(sheet(tree.Styles)))
	}
	return append(body, jen.Return(jen.Id("t"), jen.Nil()))
}

func fields(i int, n *ast.Node) []jen.Code {
	result := []jen.Code{jen.Id("n").Op("=").Id("t").Dot("Node").Call(ids(i))}
	set := func(field string, value jen.Code) {
		result = append(result, jen.Id("n").Dot(field).Op("=").Add(value))
	}

	if n.Root {
		set("Root", jen.True())
	}
	if n.ID != "" {
		set("ID", jen.Lit(n.ID))
	}
	if len(n.Classes) > 0 {
		set("Classes", stringSlice(n.Classes))
	}
	if len(n.Styles) > 0 {
		set("Styles", stringSlice(n.Styles))
	}
	if n.ChildLen > 0 {
		set("ChildLen", jen.Lit(n.ChildLen))
	}
	if n.Error != "" {
		set("Error", jen.Lit(n.Error))
		set("ErrorAt", jen.Lit(n.ErrorAt))
	}
	if n.Loop != nil {
		set("Loop", jen.Op("&").Qual(astPath, "Loop").Values(jen.Dict{
			jen.Id("Name"):     jen.Lit(n.Loop.Name),
			jen.Id("ListName"): jen.Lit(n.Loop.ListName),
		}))
	}
	if n.Cond != nil {
		set("Cond", jen.Op("&").Qual(astPath, "Condition").Values(jen.Dict{
			jen.Id("Not"):  jen.Lit(n.Cond.Not),
			jen.Id("Call"): call(n.Cond.Call),
		}))
	}
	for _, name := range n.PropNames() {
		p := n.Props[name]
		result = append(result, jen.Id("n").Dot("Props").Index(jen.Lit(name)).Op("=").Op("&").Qual(astPath, "Prop").Values(jen.Dict{
			jen.Id("Name"):     jen.Lit(p.Name),
			jen.Id("Computed"): jen.Lit(p.Computed),
			jen.Id("Call"):     call(p.Call),
		}))
	}
	for _, name := range n.EventNames() {
		ev := n.Events[name]
		result = append(result, jen.Id("n").Dot("Events").Index(jen.Lit(name)).Op("=").Op("&").Qual(astPath, "Event").Values(jen.Dict{
			jen.Id("Name"): jen.Lit(ev.Name),
			jen.Id("Call"): call(ev.Call),
		}))
	}
	if len(result) == 1 {
		return nil
	}
	return result
}

func stringSlice(items []string) *jen.Statement {
	values := make([]jen.Code, len(items))
	for i, s := range items {
		values[i] = jen.Lit(s)
	}
	return jen.Index().String().Values(values...)
}

func call(c *ast.FuncCall) jen.Code {
	if c == nil {
		return jen.Nil()
	}
	return jen.Op("&").Qual(astPath, "FuncCall").Values(jen.Dict{
		jen.Id("Name"): jen.Lit(c.Name),
		jen.Id("Args"): stringSlice(c.Args),
	})
}

var typeNames = map[style.Type]string{
	style.Int:    "Int",
	style.Float:  "Float",
	style.Bool:   "Bool",
	style.String: "String",
	style.Func:   "Func",
}

func sheet(s *style.Sheet) jen.Code {
	blocks := make([]jen.Code, len(s.Blocks))
	for i, b := range s.Blocks {
		attrs := make([]jen.Code, len(b.Attributes))
		for j, a := range b.Attributes {
			attrs[j] = jen.Values(jen.Dict{
				jen.Id("Name"):     jen.Lit(a.Name),
				jen.Id("Value"):    jen.Lit(a.Value),
				jen.Id("Type"):     jen.Qual(stylePath, typeNames[a.Type]),
				jen.Id("Function"): jen.Lit(a.Function),
			})
		}
		blocks[i] = jen.Values(jen.Dict{
			jen.Id("Name"):       jen.Lit(b.Name),
			jen.Id("Event"):      jen.Lit(b.Event),
			jen.Id("Attributes"): jen.Index().Op("*").Qual(stylePath, "Attribute").Values(attrs...),
		})
	}
	return jen.Op("&").Qual(stylePath, "Sheet").Values(jen.Dict{
		jen.Id("Blocks"): jen.Index().Op("*").Qual(stylePath, "Block").Values(blocks...),
	})
}
