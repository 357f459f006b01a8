package app

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/auth"
	"vzdrzevanje/internal/config"
	"vzdrzevanje/internal/db"
	"vzdrzevanje/internal/handlers"
	"vzdrzevanje/internal/middleware"
	"vzdrzevanje/internal/pdf"
	"vzdrzevanje/internal/repositories"
	"vzdrzevanje/internal/routes"
	"vzdrzevanje/internal/services"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "vzdrzevanje/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	database, err := db.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := db.EnsureSchema(database); err != nil {
		log.Fatal("failed to init schema: ", err)
	}

	// === Repos ===
	clientRepo := repositories.NewClientRepository(database)
	equipmentRepo := repositories.NewEquipmentRepository(database)
	taskRepo := repositories.NewTaskRepository(database)
	imageRepo := repositories.NewImageRepository(database)
	notificationRepo := repositories.NewNotificationRepository(database)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	var tgService *services.TelegramService
	if cfg.Telegram.BotToken != "" {
		tgService, err = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("telegram disabled: %v", err)
			tgService = nil
		}
	}

	clientService := services.NewClientService(clientRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo)
	taskService := services.NewTaskService(taskRepo)
	imageService := services.NewImageService(imageRepo, cfg.Uploads.RootDir)
	notificationService := services.NewNotificationService(notificationRepo)
	reportService := services.NewReportService(taskRepo)

	reminderService := services.NewReminderService(taskRepo, notificationRepo, emailService, tgService)
	if err := reminderService.Start(cfg.Reminders.CronSpec); err != nil {
		log.Fatal("failed to schedule reminders: ", err)
	}
	defer reminderService.Stop()

	// === Handlers ===
	clientHandler := handlers.NewClientHandler(clientService)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentService)
	taskHandler := handlers.NewTaskHandler(taskService)
	imageHandler := handlers.NewImageHandler(imageService, taskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService, taskService, pdf.NewReportGenerator())

	var authHandler *handlers.AuthHandler
	var tokenManager *auth.TokenManager
	if cfg.Auth.Enabled {
		tokenManager = auth.NewTokenManager(cfg.Auth.TokenSecret, 0)
		authHandler = handlers.NewAuthHandler(tokenManager, cfg.Auth.PasswordHash)
	}

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// uploaded task photos
	router.Static("/uploads", cfg.Uploads.RootDir)

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Auth.Enabled {
		router.Use(middleware.AuthMiddleware(tokenManager))
	}

	routes.SetupRoutes(
		router,
		clientHandler,
		equipmentHandler,
		taskHandler,
		imageHandler,
		notificationHandler,
		reportHandler,
		authHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
