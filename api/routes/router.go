package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/subtrackhq/subtrack-backend/api/controllers"
	subscriptioncontrollers "github.com/subtrackhq/subtrack-backend/api/controllers/subscriptions"
	"github.com/subtrackhq/subtrack-backend/api/middleware"
	internalsubs "github.com/subtrackhq/subtrack-backend/internal/subscriptions"
	"github.com/subtrackhq/subtrack-backend/pkg/config"
	"github.com/subtrackhq/subtrack-backend/pkg/logger"
	"github.com/subtrackhq/subtrack-backend/pkg/metrics"
	"github.com/subtrackhq/subtrack-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store controllers.ReadyChecker,
	redisClient *redis.Client,
	subscriptionsService internalsubs.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	writeLimit := func(next http.Handler) http.Handler { return next }
	var redisPinger controllers.Pinger
	if redisClient != nil {
		redisPinger = redisClient
		policy := middleware.NewWriteRateLimitPolicy(
			"subscriptions",
			cfg.RateLimit.WriteWindow,
			cfg.RateLimit.WriteIPLimit,
		)
		writeLimit = middleware.WriteRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, store, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/subscriptions", func(r chi.Router) {
		r.Get("/", subscriptioncontrollers.List(subscriptionsService, logg))
		r.With(writeLimit).Post("/", subscriptioncontrollers.Create(subscriptionsService, logg))
		r.With(writeLimit).Patch("/{subscriptionId}", subscriptioncontrollers.Update(subscriptionsService, logg))
		r.With(writeLimit).Delete("/{subscriptionId}", subscriptioncontrollers.Archive(subscriptionsService, logg))
	})

	return r
}
