package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/gradelab/code-grading-api/internal/api/metrics"
	"github.com/gradelab/code-grading-api/internal/core/domain"
)

type stubInference struct {
	response string
	err      error
	prompts  []string
}

func (s *stubInference) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubInference) Warmup(ctx context.Context) error {
	_, err := s.Generate(ctx, "Hello")
	return err
}

type memReportStore struct {
	reports map[string]*domain.GradingReport
}

func newMemReportStore() *memReportStore {
	return &memReportStore{reports: make(map[string]*domain.GradingReport)}
}

func (s *memReportStore) Save(report *domain.GradingReport) error {
	s.reports[report.ID] = report
	return nil
}

func (s *memReportStore) Get(id string) (*domain.GradingReport, error) {
	r, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return r, nil
}

func (s *memReportStore) List() ([]string, error) {
	ids := make([]string, 0, len(s.reports))
	for id := range s.reports {
		ids = append(ids, id)
	}
	return ids, nil
}

type memGradeCache struct {
	entries map[string]string
}

func newMemGradeCache() *memGradeCache {
	return &memGradeCache{entries: make(map[string]string)}
}

func (c *memGradeCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memGradeCache) Set(_ context.Context, key, report string) error {
	c.entries[key] = report
	return nil
}

func TestGradingService_Success(t *testing.T) {
	inference := &stubInference{response: "Looks good."}
	store := newMemReportStore()
	svc := NewGradingService(inference, store, nil, "mistral", zerolog.Nop())

	report, err := svc.GradeUpload(context.Background(), "main.py", "print('hi')")
	if err != nil {
		t.Fatalf("GradeUpload returned error: %v", err)
	}
	if report.ID == "" {
		t.Fatalf("expected an identifier")
	}
	if report.File.Filename != "main.py" || report.File.Content != "print('hi')" {
		t.Fatalf("unexpected file payload: %+v", report.File)
	}
	if report.Report != "Looks good." {
		t.Fatalf("unexpected report text: %q", report.Report)
	}
	if _, err := store.Get(report.ID); err != nil {
		t.Fatalf("report not persisted: %v", err)
	}
	if len(inference.prompts) != 1 || !strings.Contains(inference.prompts[0], "print('hi')") {
		t.Fatalf("prompt did not embed the submission: %v", inference.prompts)
	}
}

func TestGradingService_Truncation(t *testing.T) {
	inference := &stubInference{response: "ok"}
	store := newMemReportStore()
	svc := NewGradingService(inference, store, nil, "mistral", zerolog.Nop())

	content := strings.Repeat("a", TruncateLimit+500)
	report, err := svc.GradeUpload(context.Background(), "big.py", content)
	if err != nil {
		t.Fatalf("GradeUpload returned error: %v", err)
	}

	want := strings.Repeat("a", TruncateLimit) + TruncationMarker
	if report.File.Content != want {
		t.Fatalf("stored content is not the truncated text: len=%d", len(report.File.Content))
	}
	// The prompt must carry exactly what the report records.
	if !strings.HasSuffix(inference.prompts[0], want) {
		t.Fatalf("prompt does not match the stored content")
	}
}

func TestGradingService_TruncationCountsCharacters(t *testing.T) {
	inference := &stubInference{response: "ok"}
	store := newMemReportStore()
	svc := NewGradingService(inference, store, nil, "mistral", zerolog.Nop())

	// 3000 characters but 9000 bytes: within the character budget, so it
	// must pass through untouched.
	content := strings.Repeat("界", 3000)
	report, err := svc.GradeUpload(context.Background(), "cjk.py", content)
	if err != nil {
		t.Fatalf("GradeUpload returned error: %v", err)
	}
	if report.File.Content != content {
		t.Fatalf("multibyte content under the character limit must not be truncated")
	}
}

func TestGradingService_TruncationNeverSplitsRunes(t *testing.T) {
	inference := &stubInference{response: "ok"}
	store := newMemReportStore()
	svc := NewGradingService(inference, store, nil, "mistral", zerolog.Nop())

	content := strings.Repeat("界", TruncateLimit+100)
	report, err := svc.GradeUpload(context.Background(), "big_cjk.py", content)
	if err != nil {
		t.Fatalf("GradeUpload returned error: %v", err)
	}

	want := strings.Repeat("界", TruncateLimit) + TruncationMarker
	if report.File.Content != want {
		t.Fatalf("expected %d characters plus marker, got %d characters",
			TruncateLimit, utf8.RuneCountInString(report.File.Content))
	}
	if !utf8.ValidString(report.File.Content) {
		t.Fatalf("truncated content is not valid UTF-8")
	}
	if !strings.HasSuffix(inference.prompts[0], want) {
		t.Fatalf("prompt does not match the stored content")
	}
}

func TestGradingService_AtLimitNotTruncated(t *testing.T) {
	inference := &stubInference{response: "ok"}
	svc := NewGradingService(inference, newMemReportStore(), nil, "mistral", zerolog.Nop())

	content := strings.Repeat("b", TruncateLimit)
	report, err := svc.GradeUpload(context.Background(), "edge.py", content)
	if err != nil {
		t.Fatalf("GradeUpload returned error: %v", err)
	}
	if report.File.Content != content {
		t.Fatalf("content at the limit must not be truncated")
	}
}

func TestGradingService_DistinctIDs(t *testing.T) {
	inference := &stubInference{response: "ok"}
	store := newMemReportStore()
	svc := NewGradingService(inference, store, nil, "mistral", zerolog.Nop())

	first, err := svc.GradeUpload(context.Background(), "a.py", "x = 1")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.GradeUpload(context.Background(), "a.py", "x = 1")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct identifiers, both were %s", first.ID)
	}
	if len(store.reports) != 2 {
		t.Fatalf("expected two persisted records, got %d", len(store.reports))
	}
}

func TestGradingService_OutcomeCounters(t *testing.T) {
	okBefore := testutil.ToFloat64(metrics.GradingsTotal.WithLabelValues("ok"))
	hitBefore := testutil.ToFloat64(metrics.GradingsTotal.WithLabelValues("cache_hit"))

	inference := &stubInference{response: "cached verdict"}
	svc := NewGradingService(inference, newMemReportStore(), newMemGradeCache(), "mistral", zerolog.Nop())

	if _, err := svc.GradeUpload(context.Background(), "a.py", "x = 1"); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if _, err := svc.GradeUpload(context.Background(), "a.py", "x = 1"); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if got := testutil.ToFloat64(metrics.GradingsTotal.WithLabelValues("ok")) - okBefore; got != 1 {
		t.Fatalf("expected one ok grading, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.GradingsTotal.WithLabelValues("cache_hit")) - hitBefore; got != 1 {
		t.Fatalf("expected one cache hit grading, got %v", got)
	}
}

func TestGradingService_UpstreamErrorNotPersisted(t *testing.T) {
	inference := &stubInference{err: &domain.UpstreamError{StatusCode: 503, Body: "model loading"}}
	store := newMemReportStore()
	svc := NewGradingService(inference, store, nil, "mistral", zerolog.Nop())

	if _, err := svc.GradeUpload(context.Background(), "a.py", "x = 1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(store.reports) != 0 {
		t.Fatalf("no report must be persisted on upstream failure, got %d", len(store.reports))
	}
}

func TestGradingService_EmptyResponseFallback(t *testing.T) {
	inference := &stubInference{response: ""}
	svc := NewGradingService(inference, newMemReportStore(), nil, "mistral", zerolog.Nop())

	report, err := svc.GradeUpload(context.Background(), "a.py", "x = 1")
	if err != nil {
		t.Fatalf("GradeUpload returned error: %v", err)
	}
	if report.Report != "No response received." {
		t.Fatalf("expected fallback text, got %q", report.Report)
	}
}

func TestGradingService_CacheHitSkipsInference(t *testing.T) {
	inference := &stubInference{response: "cached verdict"}
	store := newMemReportStore()
	cache := newMemGradeCache()
	svc := NewGradingService(inference, store, cache, "mistral", zerolog.Nop())

	first, err := svc.GradeUpload(context.Background(), "a.py", "x = 1")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.GradeUpload(context.Background(), "a.py", "x = 1")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if len(inference.prompts) != 1 {
		t.Fatalf("expected one inference call, got %d", len(inference.prompts))
	}
	if second.Report != first.Report {
		t.Fatalf("cache must return the same response text")
	}
	// A cache hit still allocates a fresh identifier and record.
	if first.ID == second.ID {
		t.Fatalf("cache hit must not reuse the report identifier")
	}
	if len(store.reports) != 2 {
		t.Fatalf("expected two persisted records, got %d", len(store.reports))
	}
}
