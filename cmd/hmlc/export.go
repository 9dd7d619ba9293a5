package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skinnyjames/hokusai-pocket/ast"
	"github.com/skinnyjames/hokusai-pocket/style"
)

type exportCall struct {
	Name string   `yaml:"name" json:"name"`
	Args []string `yaml:"args,flow" json:"args"`
}

type exportAttr struct {
	Name     string      `yaml:"name" json:"name"`
	Computed bool        `yaml:"computed,omitempty" json:"computed,omitempty"`
	Call     *exportCall `yaml:"call" json:"call"`
}

type exportLoop struct {
	Name string `yaml:"name" json:"name"`
	List string `yaml:"list" json:"list"`
}

type exportCond struct {
	Not  bool        `yaml:"not,omitempty" json:"not,omitempty"`
	Call *exportCall `yaml:"call" json:"call"`
}

type exportNode struct {
	Type     string        `yaml:"type" json:"type"`
	ID       string        `yaml:"id,omitempty" json:"id,omitempty"`
	Classes  []string      `yaml:"classes,omitempty,flow" json:"classes,omitempty"`
	Styles   []string      `yaml:"styles,omitempty,flow" json:"styles,omitempty"`
	Props    []exportAttr  `yaml:"props,omitempty" json:"props,omitempty"`
	Events   []exportAttr  `yaml:"events,omitempty" json:"events,omitempty"`
	Loop     *exportLoop   `yaml:"loop,omitempty" json:"loop,omitempty"`
	Cond     *exportCond   `yaml:"condition,omitempty" json:"condition,omitempty"`
	Error    string        `yaml:"error,omitempty" json:"error,omitempty"`
	Children []*exportNode `yaml:"children,omitempty" json:"children,omitempty"`
	Else     []*exportNode `yaml:"else,omitempty" json:"else,omitempty"`
}

type exportStyle struct {
	Name       string            `yaml:"name" json:"name"`
	Event      string            `yaml:"event" json:"event"`
	Attributes []exportStyleAttr `yaml:"attributes" json:"attributes"`
}

type exportStyleAttr struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Value    string `yaml:"value" json:"value"`
	Function string `yaml:"function,omitempty" json:"function,omitempty"`
}

type exportDoc struct {
	Template *exportNode   `yaml:"template" json:"template"`
	Styles   []exportStyle `yaml:"styles,omitempty" json:"styles,omitempty"`
}

func newExportCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Serialize component tree and style sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, e := a.parse(args[0])
			if e != nil {
				return e
			}
			return writeExport(cmd.OutOrStdout(), format, exportTree(tree))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func writeExport(w io.Writer, format string, doc *exportDoc) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if e := enc.Encode(doc); e != nil {
			return e
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return fmt.Errorf("unknown export format %q", format)
}

func exportTree(t *ast.Tree) *exportDoc {
	doc := &exportDoc{}
	if nodes := exportChain(t, []ast.NodeID{t.Root()}); len(nodes) > 0 {
		doc.Template = nodes[0]
	}
	if t.Styles != nil {
		for _, b := range t.Styles.Blocks {
			doc.Styles = append(doc.Styles, exportBlock(b))
		}
	}
	return doc
}

func exportChain(t *ast.Tree, ids []ast.NodeID) []*exportNode {
	var result []*exportNode
	for _, id := range ids {
		n := t.Node(id)
		if n == nil {
			continue
		}

		en := &exportNode{
			Type:     n.Type,
			ID:       n.ID,
			Classes:  n.Classes,
			Styles:   n.Styles,
			Error:    n.Error,
			Children: exportChain(t, t.Children(id)),
			Else:     exportChain(t, t.ElseBranch(id)),
		}
		for _, name := range n.PropNames() {
			p := n.Props[name]
			en.Props = append(en.Props, exportAttr{Name: name, Computed: p.Computed, Call: exportFuncCall(p.Call)})
		}
		for _, name := range n.EventNames() {
			en.Events = append(en.Events, exportAttr{Name: name, Call: exportFuncCall(n.Events[name].Call)})
		}
		if n.Loop != nil {
			en.Loop = &exportLoop{Name: n.Loop.Name, List: n.Loop.ListName}
		}
		if n.Cond != nil {
			en.Cond = &exportCond{Not: n.Cond.Not, Call: exportFuncCall(n.Cond.Call)}
		}
		result = append(result, en)
	}
	return result
}

func exportFuncCall(c *ast.FuncCall) *exportCall {
	if c == nil {
		return nil
	}
	return &exportCall{Name: c.Name, Args: c.Args}
}

func exportBlock(b *style.Block) exportStyle {
	s := exportStyle{Name: b.Name, Event: b.EventName()}
	for _, a := range b.Attributes {
		s.Attributes = append(s.Attributes, exportStyleAttr{
			Name:     a.Name,
			Type:     a.Type.String(),
			Value:    a.Value,
			Function: a.Function,
		})
	}
	return s
}
