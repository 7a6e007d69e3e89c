package domain

import "context"

// BookingClient is the remote booking API. Implementations translate transport
// and status failures into *APIError values.
type BookingClient interface {
	GetShows(ctx context.Context) ([]Show, error)
	GetSeating(ctx context.Context, concertID, showID int) ([]Row, error)
	Reserve(ctx context.Context, concertID, showID int, req ReservationRequest) (*ReservationResponse, error)
	Book(ctx context.Context, concertID, showID int, req BookingRequest) ([]Ticket, error)
	GetTickets(ctx context.Context, creds TicketCredentials) ([]Ticket, error)
	CancelTicket(ctx context.Context, ticketID int, creds TicketCredentials) error
}
