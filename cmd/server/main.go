package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"c2b-order-backend/internal/auth"
	"c2b-order-backend/internal/config"
	"c2b-order-backend/internal/database"
	"c2b-order-backend/internal/handlers"
	"c2b-order-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.MySQLDSN())
	if err != nil {
		logrus.Fatalf("Failed to connect to MySQL: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("Failed to migrate schema: %v", err)
	}
	logrus.Info("Database connected and migrated")

	store, err := storage.NewLocalStorage(cfg.UploadDir, "/uploads")
	if err != nil {
		logrus.Fatalf("Failed to initialize upload storage: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		logrus.WithField("addr", cfg.RedisAddr).Info("Redis rate limiting enabled")
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		DB:        database.NewClient(db),
		Codes:     auth.NewStaticCodeService(cfg.SMSCode),
		Store:     store,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		DevMode:   cfg.Environment != "production",
		Redis:     rdb,
	})

	logrus.Infof("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
