// Package watch reprocesses icons as they are written into a directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"iconkit/internal/imageio"
)

// DefaultDebounce is how long a file must be quiet before it is handed on.
// Editors and exporters usually write an image in several chunks.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls OnChange once per settled create/write of an image file.
type Watcher struct {
	Dir      string
	Skip     string // directory whose events are ignored, usually the output dir
	Debounce time.Duration
	OnChange func(path string)
}

// Run watches Dir and its subdirectories until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	skip := ""
	if w.Skip != "" {
		skip, _ = filepath.Abs(w.Skip)
	}

	addTree := func(root string) {
		filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if abs, _ := filepath.Abs(path); abs == skip {
				return filepath.SkipDir
			}
			if err := fw.Add(path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: watch %s: %v\n", path, err)
			}
			return nil
		})
	}
	addTree(w.Dir)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watch: %v\n", err)
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			abs, _ := filepath.Abs(ev.Name)
			if skip != "" && isUnder(abs, skip) {
				continue
			}
			if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
				if ev.Has(fsnotify.Create) {
					addTree(ev.Name)
				}
				continue
			}
			if !imageio.IsInput(ev.Name) {
				continue
			}

			name := ev.Name
			mu.Lock()
			if t, ok := timers[name]; ok {
				t.Reset(debounce)
			} else {
				timers[name] = time.AfterFunc(debounce, func() {
					mu.Lock()
					delete(timers, name)
					mu.Unlock()
					if ctx.Err() == nil {
						w.OnChange(name)
					}
				})
			}
			mu.Unlock()
		}
	}
}

// isUnder reports whether path is dir or inside it.
func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
