package main

import (
	"os"

	"github.com/redis/go-redis/v9"
	"sandalo.app/clubpoints/internal/bootstrap"
	"sandalo.app/clubpoints/internal/config"
	"sandalo.app/clubpoints/internal/server"
	"sandalo.app/clubpoints/pkg/database"
	"sandalo.app/clubpoints/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Sugar.Fatalw("failed to load config", "error", err)
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.LogLevel,
		Path:       cfg.LogPath,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	}); err != nil {
		os.Exit(1)
	}
	defer logger.Logger.Sync()

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		logger.Sugar.Fatalw("migration failed", "error", err)
	}

	if cfg.AppEnv == "development" {
		adminEmail := os.Getenv("ADMIN_EMAIL")
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminEmail != "" && adminPassword != "" {
			if err := bootstrap.SeedAdminUser(db, adminEmail, adminPassword); err != nil {
				logger.Sugar.Fatalw("failed to seed admin user", "error", err)
			}
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Sugar.Fatalw("invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
	}

	srv := server.New(cfg, db, redisClient)

	logger.Sugar.Infow("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := srv.Run(":" + cfg.Port); err != nil {
		logger.Sugar.Fatalw("server exited with error", "error", err)
	}
}
