package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the settings the router needs from the service config
type RouterConfig struct {
	MaxFileSize int64
	CORSOrigins []string
}

// SetupRouter wires the handlers under /api/v1
func SetupRouter(cfg RouterConfig, documents *DocumentHandler, sessions *SessionHandler) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize
	router.Use(corsMiddleware(cfg.CORSOrigins))

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "healthy",
				"service": "PDF Invoice Extractor",
			})
		})

		api.POST("/documents/extract", documents.ExtractDocument)
		api.POST("/text/extract", documents.ExtractText)

		session := api.Group("/sessions/:id")
		{
			session.GET("", sessions.GetSession)
			session.DELETE("", sessions.CloseSession)
			session.POST("/select", sessions.SelectField)
			session.POST("/tokens/:index/toggle", sessions.ToggleToken)
			session.POST("/finalize", sessions.Finalize)
			session.GET("/export", sessions.Export)
		}
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return cors.New(config)
}
