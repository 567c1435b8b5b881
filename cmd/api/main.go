package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/matjiblog/matjiblog-backend/internal/config"
	"github.com/matjiblog/matjiblog-backend/internal/handler"
	"github.com/matjiblog/matjiblog-backend/internal/middleware"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
	"github.com/matjiblog/matjiblog-backend/internal/service"
	"github.com/matjiblog/matjiblog-backend/pkg/database"
	"github.com/matjiblog/matjiblog-backend/pkg/email"
	jwtPkg "github.com/matjiblog/matjiblog-backend/pkg/jwt"
	"github.com/matjiblog/matjiblog-backend/pkg/storage"
	"github.com/matjiblog/matjiblog-backend/pkg/utils"
)

func main() {
	// Load .env (optional outside local development)
	_ = godotenv.Load()

	cfg := config.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()

	if cfg.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET is not set")
	}

	// Database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Object storage
	s3Storage, err := storage.NewS3Storage(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// Email service
	emailService := email.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom)

	// Token manager
	jwtManager := jwtPkg.NewManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Services
	authService := service.NewAuthService(userRepo, emailService, jwtManager, zapLogger)
	userService := service.NewUserService(userRepo, photoRepo, s3Storage, zapLogger)
	photoService := service.NewPhotoService(photoRepo, userRepo, s3Storage, zapLogger)
	reportService := service.NewReportService(reportRepo, photoRepo)
	statsService := service.NewStatsService(userRepo, photoRepo, reportRepo)

	// Validator
	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	photoHandler := handler.NewPhotoHandler(photoService, validator)
	reportHandler := handler.NewReportHandler(reportService, validator)
	adminHandler := handler.NewAdminHandler(statsService)

	// Router
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadSize,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/photos/feed", photoHandler.GetPublicFeed)
	api.Get("/photos/public/:userId", photoHandler.GetUserPublicPhotos)

	// Protected routes
	api.Use(middleware.Auth(jwtManager))
	{
		api.Get("/auth/me", authHandler.Me)
		api.Delete("/user/profile", userHandler.DeleteMyAccount)

		photos := api.Group("/photos")
		photos.Get("/", photoHandler.GetMyPhotos)
		photos.Post("/", photoHandler.CreatePhoto)
		photos.Get("/:id", photoHandler.GetPhoto)
		photos.Put("/:id", photoHandler.UpdatePhoto)
		photos.Delete("/:id", photoHandler.DeletePhoto)
		photos.Post("/:id/comments", photoHandler.AddComment)
		photos.Delete("/:id/comments/:commentId", photoHandler.DeleteComment)
		photos.Post("/:id/like", photoHandler.ToggleLike)

		api.Post("/reports", reportHandler.CreateReport)

		// Admin routes
		api.Get("/users", middleware.AdminOnly(), userHandler.GetAllUsers)

		admin := api.Group("/admin", middleware.AdminOnly())
		admin.Put("/users/:id", userHandler.AdminUpdateUser)
		admin.Get("/stats", adminHandler.GetStats)
		admin.Get("/reports", reportHandler.ListReports)
		admin.Put("/reports/:id", reportHandler.ResolveReport)
	}

	zapLogger.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
