package main

import (
	"net/http"

	"resto-pos/internal/backup"
	"resto-pos/internal/command"
	"resto-pos/internal/config"
	"resto-pos/internal/db"
	"resto-pos/internal/httpapi"
	"resto-pos/internal/logger"
	"resto-pos/internal/menu"
	"resto-pos/internal/middleware"
	"resto-pos/internal/sales"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	menuRepo := menu.NewRepository(database)
	menuSvc := menu.NewService(menuRepo)

	salesRepo := sales.NewRepository(database)
	backupSvc := backup.NewService(menuRepo, salesRepo)

	app := command.NewApp(menuSvc, salesRepo)

	handler := httpapi.NewHandler(app, menuSvc, backupSvc, cfg.Currency)
	router := httpapi.NewRouter(handler)

	srv := middleware.LoggingMiddleware(middleware.RateLimitMiddleware(router))

	logger.L().Info("POS server running", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, srv); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
