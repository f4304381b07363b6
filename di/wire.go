//go:build wireinject
// +build wireinject

package di

import (
	"edurooms/config"
	"edurooms/infras/holiday"
	"edurooms/infras/jwt"
	"edurooms/infras/kafka"
	"edurooms/infras/otel"
	"edurooms/infras/postgres"
	"edurooms/infras/redis"
	"edurooms/permissions"
	"edurooms/shared/cache"
	"edurooms/shared/timezone"
	"edurooms/transport/http"
	"edurooms/transport/http/middleware"
	"edurooms/transport/http/router"

	authService "edurooms/internal/domains/auth/service"
	calendarService "edurooms/internal/domains/calendar/service"
	incidentRepository "edurooms/internal/domains/incident/repository"
	incidentService "edurooms/internal/domains/incident/service"
	reservationEvent "edurooms/internal/domains/reservation/event"
	reservationRepository "edurooms/internal/domains/reservation/repository"
	reservationService "edurooms/internal/domains/reservation/service"
	roomRepository "edurooms/internal/domains/room/repository"
	roomService "edurooms/internal/domains/room/service"
	userRepository "edurooms/internal/domains/user/repository"
	userService "edurooms/internal/domains/user/service"
	authHandler "edurooms/internal/handlers/auth"
	healthHandler "edurooms/internal/handlers/health"
	incidentHandler "edurooms/internal/handlers/incident"
	reservationHandler "edurooms/internal/handlers/reservation"
	roomHandler "edurooms/internal/handlers/room"
	userHandler "edurooms/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	holiday.New,
	timezone.NewClock,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var calendarDomain = wire.NewSet(
	calendarService.NewHolidayCache,
	calendarService.NewEligibility,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationEvent.NewPublisher,
	reservationService.New,
	reservationService.NewCompleter,
)

var domains = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
	roomRepository.New,
	roomService.New,
	incidentRepository.New,
	incidentService.New,
	calendarDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	incidentHandler.New,
	reservationHandler.New,
	healthHandler.New,
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
