package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check PATH...",
		Short: "Parse template files and report errors",
		Long: `check parses every given file and every file with a configured extension
found in given directories. Each failure is reported as "file: message".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, e := a.templateFiles(args)
			if e != nil {
				return e
			}
			if e = a.check(cmd.Context(), files); e != nil {
				return e
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d files\n", len(files))
			return nil
		},
	}
}

// templateFiles expands directories to contained template files, files are kept as is.
func (a *app) templateFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, e := os.Stat(path)
		if e != nil {
			return nil, e
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		e = filepath.WalkDir(path, func(p string, d fs.DirEntry, e error) error {
			if e != nil {
				return e
			}
			if d.IsDir() && p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !d.IsDir() && a.cfg.HasExtension(p) {
				files = append(files, p)
			}
			return nil
		})
		if e != nil {
			return nil, e
		}
	}
	return files, nil
}

// check parses files concurrently and returns all failures in file order.
func (a *app) check(ctx context.Context, files []string) error {
	failures := make([]error, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Jobs)
	for i, path := range files {
		g.Go(func() error {
			if e := ctx.Err(); e != nil {
				return e
			}
			if _, e := a.parse(path); e != nil {
				a.log.Info("check failed", "file", path, "error", e)
				failures[i] = fmt.Errorf("%s: %w", path, e)
			}
			return nil
		})
	}
	if e := g.Wait(); e != nil {
		return e
	}

	var result *multierror.Error
	for _, e := range failures {
		if e != nil {
			result = multierror.Append(result, e)
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = func(errs []error) string {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = e.Error()
		}
		return fmt.Sprintf("%d of %d files failed:\n%s", len(errs), len(files), strings.Join(lines, "\n"))
	}
	return result
}
