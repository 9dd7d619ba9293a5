package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const watchDebounce = 100 * time.Millisecond

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Re-check template files when they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, e := a.newWatcher(args[0], cmd.OutOrStdout())
			if e != nil {
				return e
			}
			defer w.close()

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", args[0])
			return w.run(cmd.Context())
		},
	}
}

type watcher struct {
	app    *app
	fs     *fsnotify.Watcher
	out    io.Writer
	report func(path string, e error)
}

// newWatcher watches dir and its subdirectories except hidden ones.
func (a *app) newWatcher(dir string, out io.Writer) (*watcher, error) {
	fw, e := fsnotify.NewWatcher()
	if e != nil {
		return nil, e
	}

	w := &watcher{app: a, fs: fw, out: out}
	w.report = w.print
	e = filepath.WalkDir(dir, func(path string, d fs.DirEntry, e error) error {
		if e != nil {
			return e
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
	if e != nil {
		fw.Close()
		return nil, e
	}
	return w, nil
}

func (w *watcher) close() error {
	return w.fs.Close()
}

func (w *watcher) print(path string, e error) {
	if e == nil {
		fmt.Fprintf(w.out, "%s: ok\n", path)
	} else {
		fmt.Fprintf(w.out, "%s: %s\n", path, e)
	}
}

// relevant reports whether the event changes a template file.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	return (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) && w.app.cfg.HasExtension(ev.Name)
}

// run collects events until ctx is done, changed files are checked in batches once events settle.
func (w *watcher) run(ctx context.Context) error {
	debounce := time.NewTimer(0)
	<-debounce.C

	var pending []string
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				w.watchCreated(ev.Name)
			}
			if !w.relevant(ev) {
				continue
			}
			if !slices.Contains(pending, ev.Name) {
				pending = append(pending, ev.Name)
			}
			debounce.Reset(watchDebounce)

		case e, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.app.log.Warn("watcher error", "error", e)

		case <-debounce.C:
			files := pending
			pending = nil
			for _, path := range files {
				_, e := w.app.parse(path)
				w.report(path, e)
			}
		}
	}
}

// watchCreated starts watching a directory created inside the watched tree.
func (w *watcher) watchCreated(path string) {
	info, e := os.Stat(path)
	if e != nil || !info.IsDir() || strings.HasPrefix(info.Name(), ".") {
		return
	}
	if e = w.fs.Add(path); e != nil {
		w.app.log.Warn("cannot watch directory", "path", path, "error", e)
	}
}
