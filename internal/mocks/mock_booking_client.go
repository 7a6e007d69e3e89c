package mocks

import (
	"context"

	"github.com/metinatakli/concert-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingClient struct {
	mock.Mock
}

func (m *MockBookingClient) GetShows(ctx context.Context) ([]domain.Show, error) {
	args := m.Called(ctx)

	shows, _ := args.Get(0).([]domain.Show)
	return shows, args.Error(1)
}

func (m *MockBookingClient) GetSeating(ctx context.Context, concertID, showID int) ([]domain.Row, error) {
	args := m.Called(ctx, concertID, showID)

	rows, _ := args.Get(0).([]domain.Row)
	return rows, args.Error(1)
}

func (m *MockBookingClient) Reserve(
	ctx context.Context,
	concertID, showID int,
	req domain.ReservationRequest) (*domain.ReservationResponse, error) {

	args := m.Called(ctx, concertID, showID, req)

	resp, _ := args.Get(0).(*domain.ReservationResponse)
	return resp, args.Error(1)
}

func (m *MockBookingClient) Book(
	ctx context.Context,
	concertID, showID int,
	req domain.BookingRequest) ([]domain.Ticket, error) {

	args := m.Called(ctx, concertID, showID, req)

	tickets, _ := args.Get(0).([]domain.Ticket)
	return tickets, args.Error(1)
}

func (m *MockBookingClient) GetTickets(ctx context.Context, creds domain.TicketCredentials) ([]domain.Ticket, error) {
	args := m.Called(ctx, creds)

	tickets, _ := args.Get(0).([]domain.Ticket)
	return tickets, args.Error(1)
}

func (m *MockBookingClient) CancelTicket(ctx context.Context, ticketID int, creds domain.TicketCredentials) error {
	args := m.Called(ctx, ticketID, creds)
	return args.Error(0)
}
