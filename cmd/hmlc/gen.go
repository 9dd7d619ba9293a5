package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skinnyjames/hokusai-pocket/internal/gen"
)

func newGenCommand(a *app) *cobra.Command {
	var pkg, output string
	cmd := &cobra.Command{
		Use:   "gen FILE...",
		Short: "Generate Go constructors for component trees",
		Long: `gen writes a Go file with a New<Name> function per template,
the name is derived from the file name: side_menu.hml gives NewSideMenu.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("package") {
				pkg = a.cfg.Gen.Package
			}
			if !cmd.Flags().Changed("output") {
				output = a.cfg.Gen.Output
			}

			templates := make([]gen.Template, 0, len(args))
			seen := make(map[string]string)
			for _, path := range args {
				tree, e := a.parse(path)
				if e != nil {
					return e
				}
				name := gen.FuncName(path)
				if prev, found := seen[name]; found {
					return fmt.Errorf("%s and %s both generate %s", prev, path, name)
				}
				seen[name] = path
				templates = append(templates, gen.Template{Func: name, Tree: tree})
			}

			buf := &bytes.Buffer{}
			if e := gen.Generate(buf, pkg, templates...); e != nil {
				return e
			}
			if output == "" {
				_, e := cmd.OutOrStdout().Write(buf.Bytes())
				return e
			}
			a.log.Info("writing generated code", "output", output, "templates", len(templates))
			return os.WriteFile(output, buf.Bytes(), 0o644)
		},
	}

	cmd.Flags().StringVarP(&pkg, "package", "p", "", "package name, defaults to gen.package setting")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, defaults to gen.output setting or stdout")
	return cmd
}
