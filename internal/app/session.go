package app

import (
	"log/slog"
	"net/http"

	"github.com/metinatakli/concert-booking/internal/booking"
)

type sessionKey string

const (
	SessionKeyBookingID      = sessionKey("bookingID")
	SessionKeyLastTicketName = sessionKey("lastTicketName")
	SessionKeyLastTicketCode = sessionKey("lastTicketCode")
)

func (s sessionKey) String() string {
	return string(s)
}

type contextKey string

const (
	loggerContextKey         = contextKey("logger")
	bookingSessionContextKey = contextKey("bookingSession")
)

func (app *Application) contextGetBookingSession(r *http.Request) *booking.Session {
	session, ok := r.Context().Value(bookingSessionContextKey).(*booking.Session)
	if !ok {
		panic("missing booking session from context")
	}

	return session
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
