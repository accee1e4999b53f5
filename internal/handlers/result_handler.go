package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/services"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
	reportService services.ReportService
}

func NewResultHandler(
	resultService services.ResultService,
	reportService services.ReportService,
	logger utils.Logger,
) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
		reportService: reportService,
	}
}

// ViewResultRequest reconstructs one raw result for review.
type ViewResultRequest struct {
	Email  string           `json:"email" validate:"required,email"`
	Result models.RawResult `json:"result" validate:"required"`
}

// ListResults returns the viewer's completed results.
// @Summary List results
// @Tags results
// @Produce json
// @Param email query string true "Viewer email"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /results [get]
func (h *ResultHandler) ListResults(c *gin.Context) {
	email := c.Query("email")

	raw, err := h.resultService.List(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// A viewer with nothing completed gets an empty list, not an error.
	if raw == nil {
		raw = []models.RawResult{}
	}
	c.JSON(http.StatusOK, gin.H{"results": raw})
}

// ViewResult rebuilds the review state for one stored result.
// @Summary View result
// @Tags results
// @Accept json
// @Produce json
// @Param view body ViewResultRequest true "Result to reconstruct"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /results/view [post]
func (h *ResultHandler) ViewResult(c *gin.Context) {
	var req ViewResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	view, err := h.resultService.View(c.Request.Context(), req.Email, req.Result)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetPerformance summarizes the viewer's recent results.
// @Summary Viewer performance summary
// @Tags accounts
// @Produce json
// @Param email path string true "Viewer email"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{email}/performance [get]
func (h *ResultHandler) GetPerformance(c *gin.Context) {
	email := ParseEmailParam(c)
	if email == "" {
		return
	}

	summary, err := h.resultService.Performance(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DownloadReport streams the viewer's performance spreadsheet.
// @Summary Download performance report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param email path string true "Viewer email"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /reports/{email} [get]
func (h *ResultHandler) DownloadReport(c *gin.Context) {
	email := ParseEmailParam(c)
	if email == "" {
		return
	}

	h.LogRequest(c, "Exporting performance report", "email", email)

	data, err := h.reportService.ExportPerformanceReport(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="performance_report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
