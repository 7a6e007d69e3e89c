package app

import (
	"net/http"

	"github.com/metinatakli/concert-booking/api"
)

func (app *Application) GetNotifications(w http.ResponseWriter, r *http.Request) {
	resp := api.NotificationListResponse{
		Notifications: app.contextGetBookingSession(r).Notifications(),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
