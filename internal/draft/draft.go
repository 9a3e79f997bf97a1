// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft names and writes generated articles.
// A draft lives at <dir>/<YYYY-MM-DD>-<slug>.md and holds the generated
// text verbatim.
package draft

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

const (
	dateLayout = "2006-01-02"
	fileExt    = ".md"

	// untitledSlug stands in for topics with no ASCII alphanumerics.
	untitledSlug = "untitled"
)

// nonAlnumPattern matches one or more characters outside [a-z0-9].
var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lower-cases topic and replaces every run of non-alphanumeric
// characters with a single hyphen. Leading and trailing hyphens are
// dropped, so "Caching: Write-Through vs Write-Back!!" becomes
// "caching-write-through-vs-write-back".
func Slug(topic types.Topic) string {
	s := nonAlnumPattern.ReplaceAllString(strings.ToLower(topic), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return untitledSlug
	}
	return s
}

// FileName returns the draft path for topic on date: dir/<date>-<slug>.md.
// The date is taken in UTC. Two topics with the same slug on the same day
// map to the same path.
func FileName(dir string, topic types.Topic, date time.Time) string {
	name := date.UTC().Format(dateLayout) + "-" + Slug(topic) + fileExt
	return filepath.Join(dir, name)
}

// Writer writes draft files.
type Writer struct {
	Fs afero.Fs
}

// NewWriter returns a Writer over the OS filesystem.
func NewWriter() *Writer {
	return &Writer{Fs: afero.NewOsFs()}
}

// WriteDraft creates (or overwrites) path with content, creating the parent
// directory if needed. Failures are *types.StorageError.
func (w *Writer) WriteDraft(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := w.Fs.MkdirAll(dir, 0o755); err != nil {
			return &types.StorageError{Op: "write", Path: path, Err: fmt.Errorf("creating %s: %w", dir, err)}
		}
	}
	if err := afero.WriteFile(w.Fs, path, []byte(content), 0o644); err != nil {
		return &types.StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Exists reports whether a draft is already present at path.
func (w *Writer) Exists(path string) bool {
	ok, err := afero.Exists(w.Fs, path)
	return err == nil && ok
}
