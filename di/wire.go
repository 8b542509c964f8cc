//go:build wireinject
// +build wireinject

package di

import (
	"tablebook/config"
	"tablebook/infras/otel"
	"tablebook/infras/postgres"
	"tablebook/infras/redis"
	"tablebook/shared/cache"
	gRepo "tablebook/shared/repository"
	"tablebook/transport/http"
	"tablebook/transport/http/middleware"
	"tablebook/transport/http/router"

	reservationRepository "tablebook/internal/domains/reservation/repository"
	reservationService "tablebook/internal/domains/reservation/service"
	reservationValidation "tablebook/internal/domains/reservation/validation"
	reservationHandler "tablebook/internal/handlers/reservation"

	tableRepository "tablebook/internal/domains/table/repository"
	tableService "tablebook/internal/domains/table/service"
	tableHandler "tablebook/internal/handlers/table"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationValidation.New,
	reservationService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var domains = wire.NewSet(
	reservationDomain,
	tableDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	reservationHandler.New,
	tableHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
