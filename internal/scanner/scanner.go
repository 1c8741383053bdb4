// Package scanner inspects a folder tree and produces a FolderInsight snapshot.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

// ErrInvalidPath is returned when the scan root is missing or not a directory.
var ErrInvalidPath = errors.New("invalid folder path")

// Scanner walks a directory tree and tallies file extensions and sizes.
// It is stateless; one instance may scan any number of roots.
type Scanner struct {
	skipDirs map[string]bool
}

// New creates a Scanner that never descends into the named directories.
func New(skipDirs ...string) *Scanner {
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}
	return &Scanner{skipDirs: skip}
}

// Scan walks root recursively and returns a snapshot of its regular files.
// The root may start with "~" and may be relative to the working directory.
func (s *Scanner) Scan(root string) (*models.FolderInsight, error) {
	abs, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, abs)
	}

	counts := make(map[string]int)
	var files []models.FileInsight

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries, continue walking
		}

		if d.IsDir() {
			if path != abs && s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		fi, ok := regularFileInfo(path, d)
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return nil
		}

		ext := extensionOf(d.Name())
		counts[ext]++
		files = append(files, models.FileInsight{
			Path:      filepath.ToSlash(rel),
			Extension: ext,
			SizeBytes: fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return &models.FolderInsight{
		Root:            abs,
		FileCount:       len(files),
		ExtensionCounts: counts,
		Files:           files,
	}, nil
}

// ResolveRoot expands a leading "~" and makes the path absolute.
// It does not check that the path exists.
func ResolveRoot(root string) (string, error) {
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: cannot expand %s: %v", ErrInvalidPath, root, err)
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidPath, root, err)
	}
	return abs, nil
}

// regularFileInfo reports whether the entry is a regular file, following
// symlinks that point at files.
func regularFileInfo(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			return nil, false
		}
		return fi, true
	}
	if !d.Type().IsRegular() {
		return nil, false
	}
	fi, err := d.Info()
	if err != nil {
		return nil, false
	}
	return fi, true
}

// extensionOf returns the lower-cased suffix of a file name.
// Dotfiles such as ".env" have no extension; "a.tar.gz" yields ".gz".
func extensionOf(name string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimLeft(name, ".")))
	if ext == "" || ext == "." {
		return models.NoExtension
	}
	return ext
}
