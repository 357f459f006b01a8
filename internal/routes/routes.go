package routes

import (
	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	clientHandler *handlers.ClientHandler,
	equipmentHandler *handlers.EquipmentHandler,
	taskHandler *handlers.TaskHandler,
	imageHandler *handlers.ImageHandler,
	notificationHandler *handlers.NotificationHandler,
	reportHandler *handlers.ReportHandler,
	authHandler *handlers.AuthHandler, // nil when auth is disabled
) *gin.Engine {
	api := r.Group("/api")

	api.GET("/health", handlers.Health)

	if authHandler != nil {
		api.POST("/auth/pair", authHandler.Pair)
	}

	// STRANKE
	stranke := api.Group("/stranke")
	{
		stranke.GET("", clientHandler.GetAll)
		stranke.POST("", clientHandler.Create)
		stranke.PUT("/:id", clientHandler.Update)
		stranke.DELETE("/:id", clientHandler.Delete)
	}

	// OPREMA
	oprema := api.Group("/oprema")
	{
		oprema.GET("", equipmentHandler.GetAll)
		oprema.POST("", equipmentHandler.Create)
		oprema.PUT("/:id", equipmentHandler.Update)
		oprema.DELETE("/:id", equipmentHandler.Delete)
	}

	// NALOGI
	nalogi := api.Group("/nalogi")
	{
		nalogi.GET("", taskHandler.GetAll)
		nalogi.POST("", taskHandler.Create)
		nalogi.GET("/:id", taskHandler.GetByID)
		nalogi.PUT("/:id", taskHandler.Update)
		nalogi.DELETE("/:id", taskHandler.Delete)
		nalogi.POST("/:id/slike", imageHandler.Upload)
		nalogi.GET("/:id/slike", imageHandler.GetByTask)
		nalogi.GET("/:id/obvestila", notificationHandler.GetByTask)
	}

	// POROCILA
	porocila := api.Group("/porocila")
	{
		porocila.GET("/nalogi", reportHandler.TaskReport)
		porocila.GET("/nalogi/pdf", reportHandler.TaskReportPDF)
	}

	return r
}
