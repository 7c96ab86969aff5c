package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vitalis.app/pulse/internal/http/dto"
	"vitalis.app/pulse/internal/service"
)

type AnalysisHandler struct {
	analysisService service.AnalysisService
}

func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Allowed analysis windows, in days.
var allowedWindows = map[int]bool{7: true, 30: true, 90: true}

func (h *AnalysisHandler) Correlations(c *gin.Context) {
	ctx := c.Request.Context()

	subjectID := c.Param("id")
	days, ok := windowDays(c)
	if !ok {
		return
	}

	results, err := h.analysisService.Correlations(ctx, subjectID, days)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCorrelationsResponse(subjectID, days, results))
}

func (h *AnalysisHandler) Score(c *gin.Context) {
	ctx := c.Request.Context()

	subjectID := c.Param("id")
	days, ok := windowDays(c)
	if !ok {
		return
	}

	score, err := h.analysisService.Score(ctx, subjectID, days)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToScoreResponse(subjectID, days, *score))
}

func (h *AnalysisHandler) DailyReport(c *gin.Context) {
	ctx := c.Request.Context()

	subjectID := c.Param("id")

	report, err := h.analysisService.DailyReport(ctx, subjectID)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyReportResponse(subjectID, *report))
}

func windowDays(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("days", "30")
	days, err := strconv.Atoi(raw)
	if err != nil || !allowedWindows[days] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be one of 7, 30, 90"})
		return 0, false
	}
	return days, true
}

func respondAnalysisError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, service.ErrInvalidSubject):
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject id is required"})
	case errors.Is(err, service.ErrNoUsableData):
		slog.InfoContext(ctx, "analysis requested for subject without data", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no usable biomarker source for subject"})
	default:
		slog.ErrorContext(ctx, "analysis request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
	}
}
