package app

import (
	"net/http"

	"github.com/metinatakli/concert-booking/api"
	"github.com/metinatakli/concert-booking/internal/store"
)

func (app *Application) EnterShow(w http.ResponseWriter, r *http.Request) {
	show, ok := app.showFromRequest(w, r)
	if !ok {
		return
	}

	session := app.contextGetBookingSession(r)

	// seating failures are recorded in the rows store and shown inline
	err := session.EnterShow(r.Context(), show)
	if err != nil {
		app.contextGetLogger(r).Warn("entered show without seating", "show_id", show.ID, "error", err)
	}

	resp := api.BookingPageResponse{
		Show:        show,
		Seating:     toSeatingResponse(show.ID, session.Rows().Snapshot()),
		Reservation: session.ReservationView(show.ID),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) LeaveShow(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIntParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session := app.contextGetBookingSession(r)

	if _, err := session.CurrentShow(showID); err == nil {
		session.LeaveShow()
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetSeating(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIntParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session := app.contextGetBookingSession(r)

	_, err = session.CurrentShow(showID)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSeatingResponse(showID, session.Rows().Snapshot()), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatingResponse(showID int, snap store.RowsSnapshot) api.SeatingResponse {
	return api.SeatingResponse{
		ShowId:    showID,
		Rows:      snap.Rows,
		IsLoading: snap.IsLoading,
		Error:     snap.Error,
	}
}
