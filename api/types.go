package api

import (
	"time"

	"github.com/metinatakli/concert-booking/internal/booking"
	"github.com/metinatakli/concert-booking/internal/domain"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status       string     `json:"status"`
	SessionStore string     `json:"sessionStore"`
	SystemInfo   SystemInfo `json:"systemInfo"`
}

type ShowListResponse struct {
	Shows     []domain.Show `json:"shows"`
	Artists   []string      `json:"artists"`
	Locations []string      `json:"locations"`
	Error     string        `json:"error,omitempty"`
}

type ShowResponse struct {
	Show domain.Show `json:"show"`
}

type SeatingResponse struct {
	ShowId    int          `json:"showId"`
	Rows      []domain.Row `json:"rows"`
	IsLoading bool         `json:"isLoading"`
	Error     string       `json:"error,omitempty"`
}

type BookingPageResponse struct {
	Show        domain.Show             `json:"show"`
	Seating     SeatingResponse         `json:"seating"`
	Reservation booking.ReservationView `json:"reservation"`
}

type ToggleSeatRequest struct {
	Row  int `json:"row" validate:"required,gt=0"`
	Seat int `json:"seat" validate:"required,gt=0"`
}

type ToggleSeatResponse struct {
	Selected    bool                    `json:"selected"`
	Reservation booking.ReservationView `json:"reservation"`
}

type ReservationResponse struct {
	Reservation booking.ReservationView `json:"reservation"`
}

type BookingRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=255"`
	Address string `json:"address" validate:"required,notblank,max=255"`
	City    string `json:"city" validate:"required,notblank,max=255"`
	Zip     string `json:"zip" validate:"required,notblank,max=32"`
	Country string `json:"country" validate:"required,country_code"`
}

type BookingResponse struct {
	Tickets []domain.Ticket        `json:"tickets"`
	Details booking.BookingSummary `json:"details"`
}

type TicketCredentialsRequest struct {
	Name string `json:"name" validate:"required,notblank"`
	Code string `json:"code" validate:"required,notblank"`
}

type TicketListResponse struct {
	Tickets []domain.Ticket `json:"tickets"`
}

type NotificationListResponse struct {
	Notifications []booking.Notification `json:"notifications"`
}
