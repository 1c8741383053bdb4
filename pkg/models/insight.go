package models

import "sort"

// NoExtension is the extension recorded for files without a suffix.
const NoExtension = "<no_ext>"

// FileInsight describes a single regular file found during a scan.
type FileInsight struct {
	// Path is relative to the scan root and slash separated.
	Path string `json:"path" yaml:"path"`
	// Extension is the lower-cased suffix including the dot, or NoExtension.
	Extension string `json:"extension" yaml:"extension"`
	// SizeBytes is the file size at scan time.
	SizeBytes int64 `json:"size_bytes" yaml:"size_bytes"`
}

// FolderInsight is the immutable snapshot produced by a folder scan.
type FolderInsight struct {
	// Root is the absolute path that was scanned.
	Root string `json:"root" yaml:"root"`
	// FileCount is the number of regular files found.
	FileCount int `json:"file_count" yaml:"file_count"`
	// ExtensionCounts maps each extension to its file count.
	ExtensionCounts map[string]int `json:"extensions" yaml:"extensions"`
	// Files is ordered by Path.
	Files []FileInsight `json:"files" yaml:"files"`
}

// Extensions returns the observed extensions in lexicographic order.
func (fi *FolderInsight) Extensions() []string {
	exts := make([]string, 0, len(fi.ExtensionCounts))
	for ext := range fi.ExtensionCounts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Dominant returns the extension with the highest file count.
// Ties go to the lexicographically smallest extension. ok is false when
// no extensions were observed.
func (fi *FolderInsight) Dominant() (ext string, count int, ok bool) {
	for _, e := range fi.Extensions() {
		if c := fi.ExtensionCounts[e]; c > count {
			ext, count, ok = e, c, true
		}
	}
	return ext, count, ok
}
