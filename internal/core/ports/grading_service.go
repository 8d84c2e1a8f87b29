package ports

import (
	"context"

	"github.com/gradelab/code-grading-api/internal/core/domain"
)

type GradingService interface {
	GradeUpload(ctx context.Context, filename, content string) (*domain.GradingReport, error)
}
