package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "billtrack/internal/controller/http"
	"billtrack/internal/hub"
	"billtrack/internal/repo/persistent"
	"billtrack/internal/scheduler"
	"billtrack/internal/usecase"
	"billtrack/pkg/cache"
	"billtrack/pkg/config"
	"billtrack/pkg/database"
	"billtrack/pkg/jwt"
	"billtrack/pkg/logger"
	"billtrack/pkg/middleware"
	"billtrack/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	hub         *hub.Hub
	location    *time.Location
	scheduler   *scheduler.Scheduler
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without rate limiting)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Error("Failed to load timezone %q: %v", cfg.Timezone, err)
		return nil, err
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		hub:         hub.New(log),
		location:    location,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	billRepo := persistent.NewBillRepository(a.db)
	notificationRepo := persistent.NewNotificationRepository(a.db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, a.log)
	billUseCase := usecase.NewBillUseCase(billRepo, a.s3Client, a.location, a.log)
	notificationUseCase := usecase.NewNotificationUseCase(
		billRepo,
		notificationRepo,
		a.hub,
		a.location,
		a.log,
	)

	// Initialize HTTP handlers
	authHandler := httpapi.NewAuthHandler(authUseCase)
	billHandler := httpapi.NewBillHandler(billUseCase, a.location)
	notificationHandler := httpapi.NewNotificationHandler(
		notificationUseCase,
		a.hub,
		a.jwtService,
		a.log,
	)

	// Setup router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		public := api.Group("")
		if a.redisClient != nil {
			public.Use(middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute))
		}
		{
			public.POST("/register", authHandler.Register)
			public.POST("/login", authHandler.Login)
		}

		// WebSocket authenticates via a token query parameter because
		// browser WebSocket clients cannot set an Authorization header.
		api.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		{
			protected.GET("/me", authHandler.Me)
			protected.POST("/change-password", authHandler.ChangePassword)

			protected.POST("/bills", billHandler.CreateBill)
			protected.GET("/bills", billHandler.GetBills)
			protected.PATCH("/bills/:id", billHandler.UpdateBill)
			protected.DELETE("/bills/:id", billHandler.DeleteBill)
			protected.POST("/bills/:id/receipt", billHandler.UploadReceipt)

			protected.GET("/notifications", notificationHandler.GetNotifications)
			protected.POST("/notifications/evaluate", notificationHandler.TriggerEvaluation)
		}
	}

	// Start the reminder scheduler
	a.scheduler = scheduler.New(notificationUseCase, a.cfg.ReminderInterval, a.log)
	a.scheduler.Start()

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Billtrack starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down billtrack...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop the scheduler before the server so no evaluation pass races
	// the database teardown
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Shutdown server
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Billtrack exited")
	return nil
}
