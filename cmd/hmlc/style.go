package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/skinnyjames/hokusai-pocket/parser"
	"github.com/skinnyjames/hokusai-pocket/style"
)

func newStyleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "style FILE",
		Short: "Print resolved style values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, e := os.ReadFile(args[0])
			if e != nil {
				return e
			}
			sheet, e := style.ParseNamed(args[0], content, parser.WithLogger(a.log))
			if e != nil {
				return e
			}

			// unresolved attributes are omitted from the listing and reported afterwards
			values, le := sheet.Lookup(style.DefaultFunctions())
			out := cmd.OutOrStdout()
			for _, name := range sheet.Names() {
				events := values[name]
				for _, event := range slices.Sorted(maps.Keys(events)) {
					fmt.Fprintf(out, "%s@%s\n", name, event)
					attrs := events[event]
					for _, attr := range slices.Sorted(maps.Keys(attrs)) {
						fmt.Fprintf(out, "  %s = %v\n", attr, attrs[attr])
					}
				}
			}
			return le
		},
	}
}
