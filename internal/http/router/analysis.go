package router

import (
	"github.com/gin-gonic/gin"

	"vitalis.app/pulse/internal/http/handler"
)

func AnalysisRouter(group *gin.RouterGroup, h *handler.AnalysisHandler) {
	group.GET("/:id/correlations", h.Correlations)
	group.GET("/:id/score", h.Score)
	group.GET("/:id/briefing", h.DailyReport)
}
