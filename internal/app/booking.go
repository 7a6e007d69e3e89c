package app

import (
	"net/http"

	"github.com/metinatakli/concert-booking/api"
	"github.com/metinatakli/concert-booking/internal/domain"
)

func (app *Application) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showID, err := app.readIntParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.BookingRequest

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

	result, err := session.SubmitBooking(r.Context(), showID, domain.BookingDetails{
		Name:    input.Name,
		Address: input.Address,
		City:    input.City,
		Zip:     input.Zip,
		Country: input.Country,
	})
	if err != nil {
		logger.Warn("booking failed", "show_id", showID, "error", err)
		app.bookingErrorResponse(w, r, err)
		return
	}

	// the tickets page looks the booking up again with these
	if len(result.Tickets) > 0 {
		app.sessionManager.Put(r.Context(), SessionKeyLastTicketName.String(), result.Tickets[0].Name)
		app.sessionManager.Put(r.Context(), SessionKeyLastTicketCode.String(), result.Tickets[0].Code)
	}

	resp := api.BookingResponse{
		Tickets: result.Tickets,
		Details: result.Details,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
