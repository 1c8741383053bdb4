package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_RejectsBadRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), 0); err == nil {
		t.Error("expected error for missing root")
	}

	file := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(file, 0); err == nil {
		t.Error("expected error for file root")
	}
}

func TestNew_ExpandsHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.Mkdir(filepath.Join(home, "proj"), 0755); err != nil {
		t.Fatal(err)
	}

	w, err := New("~/proj", time.Millisecond)
	if err != nil {
		t.Fatalf("New(~/proj) error: %v", err)
	}
	defer w.watcher.Close()

	if want := filepath.Join(home, "proj"); w.Root() != want {
		t.Errorf("Root() = %q, want %q", w.Root(), want)
	}
}

func TestCollectDirs_SkipsConfiguredNames(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"src/pkg", "node_modules/lib", ".git/objects"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0755); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New(root, time.Millisecond, "node_modules", ".git")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.watcher.Close()

	got := map[string]bool{}
	for _, d := range w.collectDirs(root) {
		rel, _ := filepath.Rel(root, d)
		got[filepath.ToSlash(rel)] = true
	}

	for _, want := range []string{".", "src", "src/pkg"} {
		if !got[want] {
			t.Errorf("collectDirs missing %q (got %v)", want, got)
		}
	}
	for _, skipped := range []string{"node_modules", "node_modules/lib", ".git", ".git/objects"} {
		if got[skipped] {
			t.Errorf("collectDirs should skip %q", skipped)
		}
	}
}

func TestRun_DeliversDebouncedChange(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Change, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(c Change) { changes <- c })
	}()

	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-changes:
		found := false
		for _, p := range c.Paths {
			if p == "main.go" {
				found = true
			}
		}
		if !found {
			t.Errorf("change paths = %v, want main.go", c.Paths)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSortedKeys(t *testing.T) {
	got := sortedKeys(map[string]bool{"b": true, "a": true, "c/d": true})
	want := []string{"a", "b", "c/d"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sortedKeys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
