package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gradelab/code-grading-api/internal/api/metrics"
	"github.com/gradelab/code-grading-api/internal/core/domain"
	"github.com/gradelab/code-grading-api/internal/core/ports"
)

const (
	// TruncateLimit is the character budget applied to submissions before
	// they are embedded in the grading prompt.
	TruncateLimit = 8000
	// TruncationMarker is appended to oversized submissions to signal that
	// content was cut.
	TruncationMarker = "\n# Truncated due to length"

	promptPrefix   = "Grade this code and give helpful, constructive feedback:\n\n"
	fallbackReport = "No response received."
)

// GradingService orchestrates a single grading call: truncate, build the
// prompt, query the inference backend, persist the report.
type GradingService struct {
	inference ports.InferenceClient
	reports   ports.ReportStore
	cache     ports.GradeCache // nil disables response caching
	model     string
	logger    zerolog.Logger
}

func NewGradingService(inference ports.InferenceClient, reports ports.ReportStore, cache ports.GradeCache, model string, logger zerolog.Logger) *GradingService {
	return &GradingService{
		inference: inference,
		reports:   reports,
		cache:     cache,
		model:     model,
		logger:    logger,
	}
}

// GradeUpload grades one uploaded file and persists the resulting report.
// Every successful call allocates a fresh identifier and writes exactly one
// new record, even when the model response came from the cache.
func (s *GradingService) GradeUpload(ctx context.Context, filename, content string) (*domain.GradingReport, error) {
	// The budget counts characters, not bytes: a byte slice could split a
	// multibyte rune and persist invalid UTF-8.
	if runes := []rune(content); len(runes) > TruncateLimit {
		content = string(runes[:TruncateLimit]) + TruncationMarker
	}

	prompt := promptPrefix + content

	report, hit := s.cachedResponse(ctx, prompt)
	if !hit {
		var err error
		report, err = s.inference.Generate(ctx, prompt)
		if err != nil {
			if errors.Is(err, domain.ErrUpstream) {
				metrics.GradingsTotal.WithLabelValues("upstream_error").Inc()
			} else {
				metrics.GradingsTotal.WithLabelValues("internal_error").Inc()
			}
			s.logger.Error().Err(err).Str("filename", filename).Msg("inference call failed")
			return nil, err
		}
		if report == "" {
			report = fallbackReport
		}
		s.storeResponse(ctx, prompt, report)
	}

	result := &domain.GradingReport{
		ID: uuid.NewString(),
		File: domain.GradedFile{
			Filename: filename,
			Content:  content,
		},
		Report: report,
	}

	if err := s.reports.Save(result); err != nil {
		metrics.GradingsTotal.WithLabelValues("internal_error").Inc()
		return nil, fmt.Errorf("persist report: %w", err)
	}

	if hit {
		metrics.GradingsTotal.WithLabelValues("cache_hit").Inc()
	} else {
		metrics.GradingsTotal.WithLabelValues("ok").Inc()
	}

	s.logger.Info().
		Str("id", result.ID).
		Str("filename", filename).
		Bool("cache_hit", hit).
		Msg("grading report created")

	return result, nil
}

func (s *GradingService) cachedResponse(ctx context.Context, prompt string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	report, ok, err := s.cache.Get(ctx, s.cacheKey(prompt))
	if err != nil {
		// Cache trouble must never fail a grading call.
		s.logger.Warn().Err(err).Msg("grade cache lookup failed")
		return "", false
	}
	return report, ok
}

func (s *GradingService) storeResponse(ctx context.Context, prompt, report string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(prompt), report); err != nil {
		s.logger.Warn().Err(err).Msg("grade cache store failed")
	}
}

func (s *GradingService) cacheKey(prompt string) string {
	h := sha256.New()
	h.Write([]byte(s.model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}
