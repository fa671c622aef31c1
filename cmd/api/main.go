package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"orcafacil/internal/adapter/http/routes"
	"orcafacil/internal/config"
	"orcafacil/internal/infrastructure/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title           OrçaFácil API
// @version         1.0
// @description     Estimate (orçamento) builder: documents, company profile and payments over a key-value store.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("[app][main] invalid configuration")
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("[app][main] failed to start the application")
	}
}
