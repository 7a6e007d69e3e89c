package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/concert-booking/api"
	"github.com/metinatakli/concert-booking/internal/booking"
	"github.com/metinatakli/concert-booking/internal/domain"
	"github.com/metinatakli/concert-booking/internal/store"
	appvalidator "github.com/metinatakli/concert-booking/internal/validator"
)

const ErrInternalServer = "The server encountered a problem and could not process your request"

func (app *Application) logError(r *http.Request, err error) {
	app.contextGetLogger(r).Error(err.Error())
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "The " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) invalidRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.contextGetLogger(r).Warn("request rejected by openapi validation", "error", err)

	message := err.Error()

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Parameter != nil {
		message = "invalid " + reqErr.Parameter.Name + " parameter"
	}

	app.errorResponse(w, r, http.StatusBadRequest, message)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	errs := make([]api.ValidationError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		errs = append(errs, api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	resp := api.ValidationErrorResponse{
		Message:          "One or more fields have invalid values",
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: errs,
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bookingErrorResponse maps errors of the booking flow and the booking API to
// responses. Messages coming from the booking API are passed through.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger := app.contextGetLogger(r)

	switch {
	case errors.Is(err, booking.ErrReservationInFlight),
		errors.Is(err, booking.ErrDetailsActive),
		errors.Is(err, store.ErrReservationSuperseded),
		errors.Is(err, booking.ErrNoShowEntered),
		errors.Is(err, booking.ErrNoSeatsSelected),
		errors.Is(err, booking.ErrReservationNotConfirmed),
		errors.Is(err, booking.ErrReservationMissing),
		errors.Is(err, booking.ErrSelectionExpired),
		errors.Is(err, domain.ErrSeatUnavailable):
		app.errorResponse(w, r, http.StatusConflict, err.Error())

	case errors.Is(err, domain.ErrInvalidSeat),
		errors.Is(err, booking.ErrTicketCredentials):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, booking.ErrTicketsNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrUnauthorized):
		app.errorResponse(w, r, http.StatusForbidden, err.Error())

	case errors.Is(err, domain.ErrNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrValidation):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, booking.ErrTicketLookupFailed):
		logger.Error("ticket lookup failed", "error", err)
		app.errorResponse(w, r, http.StatusBadGateway, booking.ErrTicketLookupFailed.Error())

	case errors.Is(err, domain.ErrUnexpected):
		logger.Error("booking api request failed", "error", err)
		app.errorResponse(w, r, http.StatusBadGateway, err.Error())

	default:
		app.serverErrorResponse(w, r, err)
	}
}
