package api

import (
	"context"
	"net/http"
	"time"

	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/models/entities"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the database and cache are reachable.
// @Tags Misc
// @Router /healthCheck [get]
func (h *Handlers) HealthCheckHandler(upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		svcs := make(map[string]entities.ServiceStatus)

		dbStatus := entities.ServiceStatus{Status: "ok", Details: string(h.deps.Config.DBDriver) + " connected"}
		if err := h.deps.Repo.Statistics.Ping(ctx); err != nil {
			dbStatus = entities.ServiceStatus{Status: "down", Details: err.Error()}
		}
		svcs["database"] = dbStatus

		cacheStatus := entities.ServiceStatus{Status: "ok", Details: "in-memory"}
		if p, ok := h.deps.Cache.(pinger); ok {
			cacheStatus.Details = "redis connected"
			if err := p.Ping(ctx); err != nil {
				cacheStatus = entities.ServiceStatus{Status: "down", Details: err.Error()}
			}
		}
		svcs["cache"] = cacheStatus

		overallStatus := "ok"
		for _, svc := range svcs {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		airports, _ := h.deps.Repo.Airports.Count(ctx)

		resp := entities.HealthCheckResponse{
			Services: svcs,
			Status:   overallStatus,
			UpSince:  upSince.UTC(),
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Airports: airports,
		}

		if overallStatus != "ok" {
			common.RespondSuccess(w, initTime, constants.MsgDegraded, resp, http.StatusServiceUnavailable)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgHealthy, resp)
	}
}
