package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/concert-booking/api"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	httpStatus := http.StatusOK

	sessionStore := "UP"
	if app.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		err := app.redis.Ping(ctx).Err()
		if err != nil {
			app.contextGetLogger(r).Error("session store unreachable", "error", err)
			sessionStore = "DOWN"
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	systemInfo := api.SystemInfo{
		Version:     version,
		Environment: app.config.Env,
	}

	resp := api.HealthcheckResponse{
		Status:       status,
		SessionStore: sessionStore,
		SystemInfo:   systemInfo,
	}

	err := app.writeJSON(w, httpStatus, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
