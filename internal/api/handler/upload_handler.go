package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gradelab/code-grading-api/internal/api/metrics"
	"github.com/gradelab/code-grading-api/internal/core/domain"
	"github.com/gradelab/code-grading-api/internal/core/ports"
)

// UploadStore is the slice of the upload storage the handler needs.
type UploadStore interface {
	Save(filename string, r io.Reader) (name, path string, err error)
	Read(path string) (string, error)
}

// UploadHandler accepts a multipart source file, runs it through the grading
// orchestrator, and returns the persisted report.
type UploadHandler struct {
	uploads UploadStore
	grading ports.GradingService
}

func NewUploadHandler(uploads UploadStore, grading ports.GradingService) *UploadHandler {
	return &UploadHandler{uploads: uploads, grading: grading}
}

type uploadErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code,omitempty"`
	Response   string `json:"response,omitempty"`
}

// Upload grades an uploaded source file.
//
// @Summary      Upload a source file for grading
// @Tags         grading
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Source file to grade"
// @Success      200   {object}  domain.GradingReport
// @Failure      400   {object}  uploadErrorResponse
// @Failure      401   {object}  uploadErrorResponse
// @Failure      502   {object}  uploadErrorResponse
// @Router       /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusBadRequest, uploadErrorResponse{Error: "no file part in request"})
	}
	if fileHeader.Filename == "" {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusBadRequest, uploadErrorResponse{Error: "no file selected"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	name, path, err := h.uploads.Save(fileHeader.Filename, src)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUpload) {
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, uploadErrorResponse{Error: err.Error()})
		}
		return err
	}
	metrics.UploadsTotal.WithLabelValues("accepted").Inc()

	content, err := h.uploads.Read(path)
	if err != nil {
		return err
	}

	// Outcome counters live in the grading service, which is the only layer
	// that can tell a cache hit from a fresh inference call.
	start := time.Now()
	report, err := h.grading.GradeUpload(c.Request().Context(), name, content)
	metrics.GradingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		var upstream *domain.UpstreamError
		switch {
		case errors.As(err, &upstream):
			return c.JSON(http.StatusBadGateway, uploadErrorResponse{
				Error:      "inference backend error",
				StatusCode: upstream.StatusCode,
				Response:   upstream.Body,
			})
		case errors.Is(err, domain.ErrUpstream):
			return c.JSON(http.StatusBadGateway, uploadErrorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, report)
}
