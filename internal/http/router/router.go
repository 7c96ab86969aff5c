package router

import (
	"github.com/gin-gonic/gin"

	"vitalis.app/pulse/internal/http/handler"
	"vitalis.app/pulse/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		analysisHandler := handler.NewAnalysisHandler(services.Analysis())
		AnalysisRouter(v1.Group("/subjects"), analysisHandler)
	}
}
