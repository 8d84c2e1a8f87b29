// Package storage persists uploads and grading reports on the local
// filesystem: raw uploads keyed by sanitized filename, reports keyed by
// their identifier.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradelab/code-grading-api/internal/core/domain"
)

// UploadStore writes accepted uploads into a working directory. Client
// filenames are reduced to their base name so path separators can never
// escape the directory. Last writer wins on collisions.
type UploadStore struct {
	dir     string
	allowed map[string]struct{}
}

// NewUploadStore creates the working directory if needed. Extensions are
// matched case-insensitively and without a leading dot.
func NewUploadStore(dir string, allowedExtensions []string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}

	return &UploadStore{dir: dir, allowed: allowed}, nil
}

// Save validates the client-supplied filename against the allow-list and
// persists the content. It returns the sanitized filename and the stored
// path. Validation failures wrap domain.ErrInvalidUpload.
func (s *UploadStore) Save(filename string, r io.Reader) (string, string, error) {
	name, err := s.sanitize(filename)
	if err != nil {
		return "", "", err
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", "", fmt.Errorf("write upload file: %w", err)
	}

	return name, path, nil
}

// Read returns the stored upload as text.
func (s *UploadStore) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	return string(data), nil
}

func (s *UploadStore) sanitize(filename string) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: missing filename", domain.ErrInvalidUpload)
	}
	if strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: hidden filenames are not accepted", domain.ErrInvalidUpload)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: filename has no extension", domain.ErrInvalidUpload)
	}
	if _, ok := s.allowed[ext]; !ok {
		return "", fmt.Errorf("%w: extension %q is not allowed", domain.ErrInvalidUpload, ext)
	}

	return name, nil
}
