package main

import (
	"edurooms/config"
	"edurooms/di"
	"edurooms/helper"
	"edurooms/infras/metrics"
	"edurooms/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title EduRooms API
// @version 1.0
// @description Room booking backend for schools.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)
	logger.SetOutput(cfg)

	metrics.Register()

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
