package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/api/shared"
)

// Pinger checks that a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /api/health-check.
type HealthResponse struct {
	Success bool `json:"success"`
	Ver     int  `json:"ver"`
}

const healthPingTimeout = 2 * time.Second

// HealthCheck reports service health. With a nil pinger it only reports that
// the process is serving.
func HealthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
					"Database unavailable", err)
				return
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Success: true, Ver: 1})
	}
}
