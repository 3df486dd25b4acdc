package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/app"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/utils"
)

// HealthResponse is the liveness and readiness body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheck returns a simple health check handler
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, HealthResponse{Status: "ok"})
	}
}

// ReadinessCheck pings the store.
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		response := HealthResponse{Status: "ready", Checks: map[string]string{}}
		status := http.StatusOK

		switch {
		case deps.Store == nil:
			response.Status = "not_ready"
			response.Checks["store"] = "not_initialized"
		default:
			if err := deps.Store.HealthCheck(ctx); err != nil {
				deps.Logger.Error("store health check failed", zap.Error(err))
				response.Status = "not_ready"
				response.Checks["store"] = "unhealthy"
			} else {
				response.Checks["store"] = "healthy"
			}
		}

		if response.Status != "ready" {
			status = http.StatusServiceUnavailable
		}
		_ = utils.WriteJSON(w, status, response)
	}
}
