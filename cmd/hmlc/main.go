// Command hmlc parses HML component templates and style sheets.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/skinnyjames/hokusai-pocket/ast"
	"github.com/skinnyjames/hokusai-pocket/internal/config"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if e := newRootCommand().ExecuteContext(ctx); e != nil {
		fmt.Fprintln(os.Stderr, e)
		stop()
		os.Exit(1)
	}
}

// app holds settings shared by all commands, populated before any command runs.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "hmlc",
		Short: "hmlc - HML template compiler front end",
		Long: `hmlc parses HML component templates, reports structural errors,
prints and exports component trees and generates Go constructors for them.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newDumpCommand(a))
	root.AddCommand(newCheckCommand(a))
	root.AddCommand(newExportCommand(a))
	root.AddCommand(newGenCommand(a))
	root.AddCommand(newWatchCommand(a))
	root.AddCommand(newStyleCommand(a))
	return root
}

func (a *app) setup(logOut io.Writer) error {
	cfg, e := config.Load(a.configPath)
	if e != nil {
		return e
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if e = cfg.Validate(); e != nil {
			return e
		}
	}

	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.Level()}))
	a.log.Debug("configuration loaded", "path", a.configPath, "root_type", cfg.RootType, "jobs", cfg.Jobs)
	return nil
}

// parse reads and builds a template file.
// A tree with error nodes is returned along with the first error.
func (a *app) parse(path string) (*ast.Tree, error) {
	content, e := os.ReadFile(path)
	if e != nil {
		return nil, e
	}
	return ast.Parse(content,
		ast.WithSourceName(path),
		ast.WithRootType(a.cfg.RootType),
		ast.WithLogger(a.log.With("file", path)),
	)
}
