// Package watch re-triggers work when files under a folder change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ShayCichocki/agentbuilder/internal/scanner"
)

// DefaultDebounce is the quiet period that must pass before a batch fires.
const DefaultDebounce = 300 * time.Millisecond

// Change is one debounced batch of filesystem events.
type Change struct {
	// Paths are slash separated, relative to the watched root, sorted and unique.
	Paths []string
}

// Watcher watches a folder tree recursively.
type Watcher struct {
	root     string
	debounce time.Duration
	skipDirs map[string]bool
	watcher  *fsnotify.Watcher
}

// New starts watching root and every directory below it except skipDirs.
// root is resolved the same way the scanner resolves it, so "~" works.
func New(root string, debounce time.Duration, skipDirs ...string) (*Watcher, error) {
	abs, err := scanner.ResolveRoot(root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s is not a directory", abs)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		root:     abs,
		debounce: debounce,
		skipDirs: make(map[string]bool, len(skipDirs)),
		watcher:  fw,
	}
	for _, d := range skipDirs {
		w.skipDirs[d] = true
	}

	for _, dir := range w.collectDirs(abs) {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Root returns the absolute watched path.
func (w *Watcher) Root() string {
	return w.root
}

// Run delivers debounced changes to onChange until ctx is done.
// onChange runs on the Run goroutine, so a slow callback delays the next batch.
func (w *Watcher) Run(ctx context.Context, onChange func(Change)) error {
	defer w.watcher.Close()

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			rel, relevant := w.relevant(event)
			if !relevant {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.addIfDir(event.Name)
			}
			pending[rel] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			timer = nil
			onChange(Change{Paths: sortedKeys(pending)})
			pending = make(map[string]bool)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[watch] watcher error on %s: %v", w.root, err)
		}
	}
}

// relevant filters out chmod-only events and anything under a skipped dir.
func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	for _, seg := range strings.Split(rel, "/") {
		if w.skipDirs[seg] {
			return "", false
		}
	}
	return rel, true
}

// addIfDir extends the watch to a newly created directory tree.
func (w *Watcher) addIfDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	for _, dir := range w.collectDirs(path) {
		if err := w.watcher.Add(dir); err != nil {
			log.Printf("[watch] cannot watch %s: %v", dir, err)
		}
	}
}

// collectDirs lists start and its subdirectories, skipping configured names.
func (w *Watcher) collectDirs(start string) []string {
	var dirs []string
	_ = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != start {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != start && w.skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
