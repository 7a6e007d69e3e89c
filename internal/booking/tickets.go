package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/metinatakli/concert-booking/internal/domain"
)

// Tickets retrieves and cancels booked tickets by their name and code pair.
type Tickets struct {
	client domain.BookingClient
}

func NewTickets(client domain.BookingClient) *Tickets {
	return &Tickets{client: client}
}

func (t *Tickets) Lookup(ctx context.Context, name, code string) ([]domain.Ticket, error) {
	creds, err := credentials(name, code)
	if err != nil {
		return nil, err
	}

	tickets, err := t.client.GetTickets(ctx, creds)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, ErrTicketsNotFound
		}

		return nil, fmt.Errorf("%w: %w", ErrTicketLookupFailed, err)
	}

	if len(tickets) == 0 {
		return nil, ErrTicketsNotFound
	}

	return tickets, nil
}

func (t *Tickets) Cancel(ctx context.Context, ticketID int, name, code string) error {
	creds, err := credentials(name, code)
	if err != nil {
		return err
	}

	return t.client.CancelTicket(ctx, ticketID, creds)
}

func credentials(name, code string) (domain.TicketCredentials, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)

	if name == "" || code == "" {
		return domain.TicketCredentials{}, ErrTicketCredentials
	}

	return domain.TicketCredentials{Code: code, Name: name}, nil
}
