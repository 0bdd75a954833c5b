package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/folio-sync/internal/config"
	"github.com/khoahotran/folio-sync/internal/devserver"
	"github.com/khoahotran/folio-sync/pkg/auth"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

func main() {
	fmt.Println("Start folio-sync mock server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	store := devserver.NewStore()
	if _, err := store.Seed("demo@folio.dev", "password", "demo", "Demo", "User"); err != nil {
		log.Fatalf("FATAL: cannot seed demo account: %v", err)
	}
	appLogger.Info("seeded demo account", zap.String("email", "demo@folio.dev"), zap.String("password", "password"))

	jwtSvc := auth.NewJWTService(cfg.Mock.JWTSecret, cfg.Mock.TokenTTL)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := devserver.NewRouter(store, jwtSvc, appLogger)

	addr := ":" + cfg.Mock.Port
	appLogger.Info("mock server listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatalf("FATAL: server stopped: %v", err)
	}
}
