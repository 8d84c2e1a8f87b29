package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradelab/code-grading-api/internal/core/domain"
)

// FileReportStore keeps one JSON record per grading report, named by the
// report identifier. Records are immutable once written.
type FileReportStore struct {
	dir string
}

func NewFileReportStore(dir string) (*FileReportStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	return &FileReportStore{dir: dir}, nil
}

func (s *FileReportStore) Save(report *domain.GradingReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(s.path(report.ID), data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (s *FileReportStore) Get(id string) (*domain.GradingReport, error) {
	// Identifiers are UUIDs we allocated; anything path-like is foreign.
	if id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return nil, domain.ErrReportNotFound
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report domain.GradingReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &report, nil
}

// List returns the identifiers of all persisted reports.
func (s *FileReportStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	return ids, nil
}

func (s *FileReportStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
