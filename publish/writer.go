// Package publish writes feed files and the homepage listing, and
// optionally mirrors the output to S3.
package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes run outputs under a root directory, remembering every
// path it wrote so the run can mirror them afterwards.
type Writer struct {
	root    string
	written []string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{root: dir}
}

// Write stores data at relPath under the root, UTF-8 with newlines
// normalized to \n. Parent directories are created as needed.
func (w *Writer) Write(relPath string, data []byte) error {
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasSuffix(normalized, "\n") {
		normalized += "\n"
	}

	path := filepath.Join(w.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir for %s: %w", relPath, err)
	}
	if err := os.WriteFile(path, []byte(normalized), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}

	w.written = append(w.written, relPath)
	return nil
}

// Written lists the relative paths written so far, in write order.
func (w *Writer) Written() []string {
	return w.written
}

// Root returns the output root directory.
func (w *Writer) Root() string {
	return w.root
}
