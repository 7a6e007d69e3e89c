package booking

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/metinatakli/concert-booking/internal/booking"

type metrics struct {
	reservations metric.Int64Counter
	bookings     metric.Int64Counter
	tickets      metric.Int64Counter
	expirations  metric.Int64Counter
	sessions     metric.Int64UpDownCounter
}

// newMetrics builds the instruments against the global meter provider, which
// is a no-op until telemetry is initialized.
func newMetrics() *metrics {
	meter := otel.Meter(instrumentationName)

	m := &metrics{}

	m.reservations, _ = meter.Int64Counter("booking.reservation.attempts",
		metric.WithDescription("Reservation confirmations sent to the booking API"))
	m.bookings, _ = meter.Int64Counter("booking.bookings",
		metric.WithDescription("Booking submissions"))
	m.tickets, _ = meter.Int64Counter("booking.tickets.issued",
		metric.WithDescription("Tickets returned by successful bookings"))
	m.expirations, _ = meter.Int64Counter("booking.reservation.expired",
		metric.WithDescription("Holds dropped because their expiry passed"))
	m.sessions, _ = meter.Int64UpDownCounter("booking.sessions.active",
		metric.WithDescription("Booking sessions held in memory"))

	return m
}

func (m *metrics) reservationAttempt(ctx context.Context, err error) {
	m.reservations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome(err))))
}

func (m *metrics) booking(ctx context.Context, tickets int, err error) {
	m.bookings.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome(err))))
	if err == nil {
		m.tickets.Add(ctx, int64(tickets))
	}
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}

	return "success"
}
