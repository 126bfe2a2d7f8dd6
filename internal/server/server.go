package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/config"
	"sandalo.app/clubpoints/internal/handler"
	"sandalo.app/clubpoints/internal/middleware"
	"sandalo.app/clubpoints/internal/repository"
	"sandalo.app/clubpoints/internal/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	adjustmentRepo := repository.NewAdjustmentRepository(db)
	scoreRepo := repository.NewScoreRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authSvc)

	userSvc := service.NewUserService(userRepo, completionRepo, scoreRepo)
	userHandler := handler.NewUserHandler(userSvc)

	activitySvc := service.NewActivityService(activityRepo)
	activityHandler := handler.NewActivityHandler(activitySvc)

	completionSvc := service.NewCompletionService(completionRepo, userRepo, activityRepo)
	completionHandler := handler.NewCompletionHandler(completionSvc)

	adjustmentSvc := service.NewAdjustmentService(adjustmentRepo, userRepo)
	adjustmentHandler := handler.NewAdjustmentHandler(adjustmentSvc)

	rankingSvc := service.NewRankingService(userRepo, scoreRepo, cfg.DefaultLimit, cfg.RankingTimeout)
	exportSvc := service.NewExportService(rankingSvc)
	rankingHandler := handler.NewRankingHandler(rankingSvc, exportSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.IPRateLimit(cfg.LoginRatePerMin), authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.POST("/users", middleware.MutationLock(redisClient, "create_user", cfg.AdminMutationLock), userHandler.CreateUser)
			admin.GET("/users", userHandler.GetAllUsers)
			admin.PUT("/users/:id", userHandler.UpdateUser)
			admin.DELETE("/users/:id", userHandler.DeleteUser)
		}

		protected.GET("/activities", activityHandler.GetAllActivities)
		activities := protected.Group("/activities")
		activities.Use(authMiddleware.RequireAdmin())
		{
			activities.POST("", middleware.MutationLock(redisClient, "create_activity", cfg.AdminMutationLock), activityHandler.CreateActivity)
			activities.PUT("/:id", activityHandler.UpdateActivity)
			activities.DELETE("/:id", activityHandler.DeleteActivity)
		}

		protected.GET("/completions", completionHandler.GetCompletions)
		protected.POST("/completions", authMiddleware.RequireAdmin(), middleware.MutationLock(redisClient, "record_completion", cfg.AdminMutationLock), completionHandler.RecordCompletion)

		protected.GET("/adjustments", adjustmentHandler.GetAdjustments)
		protected.POST("/adjustments", authMiddleware.RequireAdmin(), middleware.MutationLock(redisClient, "record_adjustment", cfg.AdminMutationLock), adjustmentHandler.RecordAdjustment)

		protected.GET("/ranking", rankingHandler.GetRanking)
		protected.GET("/ranking/me", rankingHandler.GetMyScore)
		protected.GET("/ranking/export", authMiddleware.RequireAdmin(), rankingHandler.ExportRanking)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
