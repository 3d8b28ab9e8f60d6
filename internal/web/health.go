package web

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/qrinvite/internal/apiclient"
)

// HealthCheckTimeout bounds the startup check of the invite API.
// Requests made on behalf of a user carry no timeout.
const HealthCheckTimeout = 5 * time.Second

// HealthChecker reports the invite API status
type HealthChecker interface {
	Health(ctx context.Context) (*apiclient.HealthResult, error)
}

// CheckAPI checks the invite API once, giving up after timeout.
// The server starts either way; the result is only logged.
func CheckAPI(ctx context.Context, api HealthChecker, timeout time.Duration, logger *slog.Logger) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	health, err := api.Health(ctx)
	if err != nil {
		logger.Warn("invite API not reachable", slog.String("error", err.Error()))
		return false
	}
	logger.Info("invite API reachable", slog.String("status", health.Status))
	return true
}
