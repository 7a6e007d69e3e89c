package app

import (
	"net/http"

	"github.com/metinatakli/concert-booking/api"
)

func (app *Application) LookupTickets(w http.ResponseWriter, r *http.Request) {
	var input api.TicketCredentialsRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	app.writeTickets(w, r, input.Name, input.Code)
}

// GetLatestTickets returns the tickets of the last booking made in this
// browser session.
func (app *Application) GetLatestTickets(w http.ResponseWriter, r *http.Request) {
	name := app.sessionManager.GetString(r.Context(), SessionKeyLastTicketName.String())
	code := app.sessionManager.GetString(r.Context(), SessionKeyLastTicketCode.String())

	if name == "" || code == "" {
		app.errorResponse(w, r, http.StatusNotFound, "no booking has been made in this session")
		return
	}

	app.writeTickets(w, r, name, code)
}

func (app *Application) writeTickets(w http.ResponseWriter, r *http.Request, name, code string) {
	tickets, err := app.tickets.Lookup(r.Context(), name, code)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.TicketListResponse{Tickets: tickets}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelTicket(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	ticketID, err := app.readIntParam(r, "ticketId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.TicketCredentialsRequest

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

	err = app.tickets.Cancel(r.Context(), ticketID, input.Name, input.Code)
	if err != nil {
		logger.Warn("ticket cancellation failed", "ticket_id", ticketID, "error", err)
		app.bookingErrorResponse(w, r, err)
		return
	}

	logger.Info("ticket cancelled", "ticket_id", ticketID)

	w.WriteHeader(http.StatusNoContent)
}
