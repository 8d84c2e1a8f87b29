package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gradelab/code-grading-api/internal/core/domain"
	"github.com/gradelab/code-grading-api/internal/core/ports"
)

// ReportHandler exposes read access to previously persisted grading reports.
type ReportHandler struct {
	reports ports.ReportStore
}

func NewReportHandler(reports ports.ReportStore) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type reportListResponse struct {
	Reports []string `json:"reports"`
}

// List returns the identifiers of all stored reports.
//
// @Summary      List grading report identifiers
// @Tags         grading
// @Produce      json
// @Success      200  {object}  reportListResponse
// @Router       /reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	ids, err := h.reports.List()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportListResponse{Reports: ids})
}

// Get returns one stored report by identifier.
//
// @Summary      Fetch a grading report
// @Tags         grading
// @Produce      json
// @Param        id   path      string  true  "Report identifier"
// @Success      200  {object}  domain.GradingReport
// @Failure      404  {object}  map[string]string
// @Router       /reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	report, err := h.reports.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "report not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, report)
}
