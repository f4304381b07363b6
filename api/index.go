package handler

import (
	"net/http"
	"sync"

	"edurooms/config"
	"edurooms/di"
	"edurooms/infras/metrics"
	"edurooms/shared/logger"
)

var (
	once    sync.Once
	service http.Handler
)

// Handler is the serverless entrypoint. The dependency graph is built on the first call
// and reused by warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)
		logger.SetOutput(cfg)

		metrics.Register()

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
