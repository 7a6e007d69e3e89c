package domain

import "time"

// Reservation is the server-issued hold on the current selection. An empty
// Token means no hold exists yet.
type Reservation struct {
	Token         string
	ReservedUntil *time.Time
}

// Active reports whether the hold is still valid at now.
func (r Reservation) Active(now time.Time) bool {
	return r.Token != "" && r.ReservedUntil != nil && r.ReservedUntil.After(now)
}

type ReservationRequest struct {
	ReservationToken string         `json:"reservation_token,omitempty"`
	Reservations     []SelectedSeat `json:"reservations"`
}

type ReservationResponse struct {
	Reserved         bool
	ReservationToken string
	ReservedUntil    time.Time
}
