package main

import (
	"tablebook/config"
	"tablebook/di"
	"tablebook/shared/logger"
)

// @title tablebook API
// @version 1.0
// @description Reservations and table seating for a single restaurant.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
