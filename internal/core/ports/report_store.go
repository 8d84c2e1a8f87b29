package ports

import "github.com/gradelab/code-grading-api/internal/core/domain"

// ReportStore persists grading reports, one record per identifier.
type ReportStore interface {
	Save(report *domain.GradingReport) error
	Get(id string) (*domain.GradingReport, error)
	List() ([]string, error)
}
