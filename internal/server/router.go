// Package server собирает HTTP API сервиса активации.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/activator/internal/server/handlers"
	"github.com/iudanet/activator/internal/server/metrics"
	"github.com/iudanet/activator/internal/server/middleware"
)

// Deps содержит зависимости роутера
type Deps struct {
	Logger       *slog.Logger
	Pinger       handlers.Pinger
	Issuer       middleware.CredentialVerifier
	Registration handlers.Registrar
	Directory    handlers.Directory
	Metrics      *metrics.Metrics
	// RateLimiter может быть nil: ограничение отключено
	RateLimiter *middleware.RateLimiter
	Version     string
}

// NewRouter creates the HTTP router with all API routes
func NewRouter(d Deps) http.Handler {
	deviceHandler := handlers.NewDeviceHandler(d.Logger, d.Directory, d.Issuer, d.Metrics)
	registrationHandler := handlers.NewRegistrationHandler(d.Logger, d.Registration)
	profileHandler := handlers.NewProfileHandler(d.Logger, d.Directory)
	accountHandler := handlers.NewAccountHandler(d.Logger, d.Directory)
	healthHandler := handlers.NewHealthHandler(d.Logger, d.Pinger, d.Version)

	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingWithSkip(d.Logger, d.Metrics, []string{"/metrics", "/api/v1/health"}))
	r.Use(middleware.RecoveryMiddleware(d.Logger))

	// Служебные endpoints не ограничиваются
	r.Get("/api/v1/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Group(func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}

		// Публичные endpoints: доказательство владения deviceId или credential в теле
		r.Get("/api/v1/devices/{deviceId}/registration/{deviceIdHash}", deviceHandler.CheckRegistration)
		r.Post("/api/v1/credential/verify", deviceHandler.VerifyCredential)
		r.Get("/api/v1/credential/refresh", deviceHandler.RefreshCredential)

		// Защищенные endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(d.Logger, d.Issuer, d.Metrics))

			r.Post("/api/v1/registration", registrationHandler.Redeem)
			r.Get("/api/v1/profile", profileHandler.Get)
			r.Put("/api/v1/profile", profileHandler.Update)
			r.Get("/api/v1/contract", accountHandler.Contract)
			r.Delete("/api/v1/account", accountHandler.Delete)
			r.Post("/api/v1/account/restore", accountHandler.Restore)
		})
	})

	return r
}
