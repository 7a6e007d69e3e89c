package app

import (
	"net/http"

	"github.com/metinatakli/concert-booking/api"
)

func (app *Application) GetReservation(w http.ResponseWriter, r *http.Request) {
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

	resp := api.ReservationResponse{Reservation: session.ReservationView(showID)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showID, err := app.readIntParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ToggleSeatRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	session := app.contextGetBookingSession(r)

	selected, err := session.ToggleSeat(r.Context(), showID, input.Row, input.Seat)
	if err != nil {
		logger.Warn("seat toggle rejected", "show_id", showID, "row", input.Row, "seat", input.Seat, "error", err)
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.ToggleSeatResponse{
		Selected:    selected,
		Reservation: session.ReservationView(showID),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ClearReservation(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIntParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.contextGetBookingSession(r).ClearReservation(showID)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) ProceedToDetails(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIntParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	view, err := app.contextGetBookingSession(r).ProceedToDetails(showID)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.ReservationResponse{Reservation: view}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
