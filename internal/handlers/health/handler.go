package health

import (
	"context"
	"net/http"
	"time"

	"edurooms/infras/postgres"
	"edurooms/shared/constant"
	"edurooms/transport/http/response"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 2 * time.Second

const (
	statusUp   = "up"
	statusDown = "down"
)

// Dependency checks one backing dependency.
type Dependency struct {
	Name  string
	Check func(ctx context.Context) error
}

type Handler struct {
	dependencies []Dependency
}

func New(db *postgres.Connection, redisClient *goRedis.Client) Handler {
	return NewWithDependencies(
		Dependency{Name: "postgres", Check: db.Write.PingContext},
		Dependency{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	)
}

func NewWithDependencies(dependencies ...Dependency) Handler {
	return Handler{dependencies: dependencies}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports the state of every dependency.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[map[string]string] "OK"
// @Failure 503 {object} response.Data[map[string]string] "SERVER UNHEALTHY"
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	statuses := make(map[string]string, len(handler.dependencies))
	healthy := true

	for _, dependency := range handler.dependencies {
		if err := dependency.Check(ctx); err != nil {
			log.Error().Err(err).Str("dependency", dependency.Name).Msg("health check failed")

			statuses[dependency.Name] = statusDown
			healthy = false

			continue
		}

		statuses[dependency.Name] = statusUp
	}

	if !healthy {
		response.WithJSON(w, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy, statuses)

		return
	}

	response.WithJSON(w, http.StatusOK, "OK", statuses)
}
