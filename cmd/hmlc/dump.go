package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/skinnyjames/hokusai-pocket/ast"
	"github.com/skinnyjames/hokusai-pocket/cst"
	"github.com/skinnyjames/hokusai-pocket/parser"
)

func newDumpCommand(a *app) *cobra.Command {
	var plain, concrete bool
	cmd := &cobra.Command{
		Use:   "dump FILE...",
		Short: "Print component trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				if len(args) > 1 {
					fmt.Fprintf(out, "%s:\n", path)
				}
				var e error
				if concrete {
					e = a.dumpSyntax(out, path)
				} else {
					e = a.dumpTree(out, path, a.cfg.Color && !plain)
				}
				if e != nil {
					return e
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	cmd.Flags().BoolVar(&concrete, "cst", false, "print concrete syntax tree instead")
	return cmd
}

func (a *app) dumpSyntax(out io.Writer, path string) error {
	content, e := os.ReadFile(path)
	if e != nil {
		return e
	}
	tree, e := parser.Parse(path, content, parser.WithLogger(a.log))
	if e != nil {
		return e
	}
	_, e = fmt.Fprintln(out, cst.Sexp(tree.Root()))
	return e
}

// dumpTree prints the tree even if it records errors, the first one is returned afterwards.
func (a *app) dumpTree(out io.Writer, path string, color bool) error {
	tree, e := a.parse(path)
	if tree == nil {
		return e
	}

	var de error
	if color {
		de = newPalette(out).dump(out, tree)
	} else {
		de = tree.Dump(out)
	}
	if de != nil {
		return de
	}
	return e
}

type palette struct {
	typ, id, class, count, flag, kind, call lipgloss.Style
}

func newPalette(out io.Writer) *palette {
	r := lipgloss.NewRenderer(out)
	return &palette{
		typ:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6")),
		id:    r.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
		class: r.NewStyle().Foreground(lipgloss.Color("#10b981")),
		count: r.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
		flag:  r.NewStyle().Italic(true).Foreground(lipgloss.Color("#ef4444")),
		kind:  r.NewStyle().Foreground(lipgloss.Color("#64748b")),
		call:  r.NewStyle().Foreground(lipgloss.Color("#a855f7")),
	}
}

// dump writes the same lines as ast.Tree.Dump with styled parts.
func (p *palette) dump(w io.Writer, t *ast.Tree) error {
	bw := bufio.NewWriter(w)
	t.Walk(func(id ast.NodeID, depth int) {
		n := t.Node(id)
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(bw, "%s%s\n", indent, p.header(n))
		for _, name := range n.PropNames() {
			fmt.Fprintf(bw, "%s %s (%s = %s)\n", indent, p.kind.Render("prop"), name, p.call.Render(n.Props[name].Call.String()))
		}
		for _, name := range n.EventNames() {
			fmt.Fprintf(bw, "%s %s (%s = %s)\n", indent, p.kind.Render("event"), name, p.call.Render(n.Events[name].Call.String()))
		}
	})
	return bw.Flush()
}

func (p *palette) header(n *ast.Node) string {
	sb := &strings.Builder{}
	sb.WriteString(p.typ.Render(n.Type))
	if n.ID != "" {
		sb.WriteString(p.id.Render("#" + n.ID))
	}
	for _, c := range n.Classes {
		sb.WriteString(p.class.Render("." + c))
	}
	sb.WriteString(" " + p.count.Render(fmt.Sprintf("[%d]", n.PropCount()+n.EventCount())))
	if n.Loop != nil {
		sb.WriteString(" " + p.flag.Render("(loop)") + " ")
	}
	if n.Cond != nil {
		sb.WriteString(" " + p.flag.Render("(condition)") + " ")
	}
	return sb.String()
}
