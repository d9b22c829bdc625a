package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"usersvc/store"
	"usersvc/token"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lgr := setupLogger(cfg.Env)

	codec, err := token.NewCodec(cfg.Secret, cfg.JWTExpiration)
	if err != nil {
		log.Fatalf("SECRET_KEY must be set: %v", err)
	}

	db, err := openDB(cfg.DatabaseDSN, lgr)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	a := newApp(cfg, lgr, store.NewGorm(db), codec)

	if cfg.Env == envProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	a.setupRoutes(r)

	lgr.Info("server starting", "port", cfg.ServerPort, "env", cfg.Env)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupLogger(env string) *slog.Logger {
	if env == envLocal {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
