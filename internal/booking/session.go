package booking

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/metinatakli/concert-booking/internal/backend"
	"github.com/metinatakli/concert-booking/internal/domain"
	"github.com/metinatakli/concert-booking/internal/store"
)

type NotificationLevel string

const (
	LevelError   NotificationLevel = "error"
	LevelSuccess NotificationLevel = "success"
	LevelInfo    NotificationLevel = "info"
)

const BookingSucceededMessage = "Booking successful! Redirecting to your tickets..."

type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

type SeatView struct {
	Row     int    `json:"row"`
	RowName string `json:"rowName"`
	Seat    int    `json:"seat"`
}

type ReservationView struct {
	ShowID        int        `json:"showId"`
	SelectedSeats []SeatView `json:"selectedSeats"`
	IsLoading     bool       `json:"isLoading"`
	Confirmed     bool       `json:"confirmed"`
	ReservedUntil *time.Time `json:"reservedUntil,omitempty"`
	TimeLeft      string     `json:"timeLeft,omitempty"`
	DetailsActive bool       `json:"detailsActive"`
}

type BookingSummary struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	BookedOn string `json:"bookedOn"`
}

type BookingResult struct {
	Tickets []domain.Ticket `json:"tickets"`
	Details BookingSummary  `json:"details"`
}

// Session is the state owned by one browser session: the seating layout of
// the show being booked, the seat reservation and its expiry countdown.
type Session struct {
	ID string

	client      domain.BookingClient
	logger      *slog.Logger
	metrics     *metrics
	now         func() time.Time
	rows        *store.RowsStore
	reservation *store.ReservationStore
	countdown   *store.Countdown

	// seatMu is held for the whole optimistic toggle and for booking, so at
	// most one selection snapshot is in flight per session.
	seatMu sync.Mutex

	mu            sync.Mutex
	show          *domain.Show
	notifications []Notification
	lastSeen      time.Time

	// detailsGen is the reservation generation the details form was opened
	// in. The form closes by itself once the reservation is cleared.
	detailsOpen bool
	detailsGen  uint64
}

func newSession(id string, client domain.BookingClient, logger *slog.Logger, m *metrics, now func() time.Time, opts ...store.CountdownOption) *Session {
	s := &Session{
		ID:          id,
		client:      client,
		logger:      logger.With("booking_session", id),
		metrics:     m,
		now:         now,
		rows:        store.NewRowsStore(client),
		reservation: store.NewReservationStore(client),
		lastSeen:    now(),
	}

	opts = append([]store.CountdownOption{
		store.WithClock(now),
		store.WithExpireHook(func() {
			s.logger.Info("seat reservation expired")
			m.expirations.Add(context.Background(), 1)
		}),
	}, opts...)

	s.countdown = store.NewCountdown(s.reservation, func(msg string) {
		s.Notify(LevelError, msg)
	}, opts...)

	return s
}

func (s *Session) Rows() *store.RowsStore {
	return s.rows
}

func (s *Session) Reservation() *store.ReservationStore {
	return s.reservation
}

func (s *Session) Countdown() *store.Countdown {
	return s.countdown
}

// EnterShow makes show the one being booked. Switching to a different show
// drops the previous hold. The seating layout is refetched every time; a
// fetch failure is recorded in the rows store and returned.
func (s *Session) EnterShow(ctx context.Context, show domain.Show) error {
	s.mu.Lock()
	switched := s.show == nil || s.show.ID != show.ID
	current := show
	s.show = &current
	s.mu.Unlock()

	if switched {
		s.reservation.ClearReservation()
	}

	err := s.rows.FetchRows(ctx, show.ConcertID, show.ID)
	if err != nil {
		s.logger.Warn("failed to fetch seating", "show_id", show.ID, "error", err)
		return err
	}

	return nil
}

// LeaveShow discards everything tied to the show being booked.
func (s *Session) LeaveShow() {
	s.mu.Lock()
	s.show = nil
	s.mu.Unlock()

	s.reservation.ClearReservation()
	s.rows.Reset()
}

func (s *Session) CurrentShow(showID int) (domain.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.show == nil || s.show.ID != showID {
		return domain.Show{}, ErrNoShowEntered
	}

	return *s.show, nil
}

// ToggleSeat selects or deselects a seat and confirms the resulting selection
// with the server. The local edit is applied first; when the server rejects
// the selection the inverse edit is applied and the error returned. A rejected
// token additionally drops the whole reservation. It reports whether the seat
// ended up selected.
func (s *Session) ToggleSeat(ctx context.Context, showID, rowID, seat int) (bool, error) {
	show, err := s.CurrentShow(showID)
	if err != nil {
		return false, err
	}

	if !s.seatMu.TryLock() {
		return false, ErrReservationInFlight
	}
	defer s.seatMu.Unlock()

	row, ok := s.rows.Row(rowID)
	if !ok || !row.HasSeat(seat) {
		return false, domain.ErrInvalidSeat
	}

	wasSelected := s.reservation.IsSelected(rowID, seat)

	if !wasSelected && s.rows.IsSeatUnavailable(row.ID, seat) {
		return false, domain.ErrSeatUnavailable
	}

	if !wasSelected && s.detailsActive() {
		return false, ErrDetailsActive
	}

	if wasSelected {
		s.reservation.RemoveSelectedSeat(rowID, seat)
	} else {
		s.reservation.AddSelectedSeat(rowID, seat)
	}

	err = s.reservation.Reserve(ctx, show.ConcertID, show.ID)
	s.metrics.reservationAttempt(ctx, err)

	// the reservation was cleared meanwhile, there is nothing left to undo
	if errors.Is(err, store.ErrReservationSuperseded) {
		s.logger.Info("discarded reservation response for a cleared reservation", "show_id", show.ID)
		return false, err
	}

	if err != nil {
		if wasSelected {
			s.reservation.AddSelectedSeat(rowID, seat)
		} else {
			s.reservation.RemoveSelectedSeat(rowID, seat)
		}

		if errors.Is(err, domain.ErrUnauthorized) {
			s.logger.Warn("reservation token rejected, dropping reservation", "show_id", show.ID)
			s.reservation.ClearReservation()
		}

		s.Notify(LevelError, domain.ErrorMessage(err, "Failed to update reservation. Please try again."))

		return wasSelected, err
	}

	return !wasSelected, nil
}

// ClearReservation drops the selection and hold of the show being booked.
func (s *Session) ClearReservation(showID int) error {
	if _, err := s.CurrentShow(showID); err != nil {
		return err
	}

	s.reservation.ClearReservation()

	return nil
}

// ProceedToDetails checks the selection is confirmed and ready for the
// booking details form.
func (s *Session) ProceedToDetails(showID int) (ReservationView, error) {
	if _, err := s.CurrentShow(showID); err != nil {
		return ReservationView{}, err
	}

	snap := s.reservation.Snapshot()

	if len(snap.SelectedSeats) == 0 {
		return ReservationView{}, ErrNoSeatsSelected
	}

	if snap.ReservedUntil == nil {
		return ReservationView{}, ErrReservationNotConfirmed
	}

	s.mu.Lock()
	s.detailsOpen = true
	s.detailsGen = s.reservation.Generation()
	s.mu.Unlock()

	return s.ReservationView(showID), nil
}

// SubmitBooking turns the confirmed reservation into tickets. Missing token
// or an empty selection drop the reservation. On success the reservation is
// cleared.
func (s *Session) SubmitBooking(ctx context.Context, showID int, details domain.BookingDetails) (*BookingResult, error) {
	show, err := s.CurrentShow(showID)
	if err != nil {
		return nil, err
	}

	if !s.seatMu.TryLock() {
		return nil, ErrReservationInFlight
	}
	defer s.seatMu.Unlock()

	snap := s.reservation.Snapshot()

	if snap.Token == "" {
		s.reservation.ClearReservation()
		return nil, ErrReservationMissing
	}

	if len(snap.SelectedSeats) == 0 {
		s.reservation.ClearReservation()
		return nil, ErrSelectionExpired
	}

	country := CountryName(details.Country)

	tickets, err := s.client.Book(ctx, show.ConcertID, show.ID, domain.BookingRequest{
		ReservationToken: snap.Token,
		Name:             details.Name,
		Address:          details.Address,
		City:             details.City,
		Zip:              details.Zip,
		Country:          country,
	})
	s.metrics.booking(ctx, len(tickets), err)

	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.reservation.ClearReservation()
		}

		s.Notify(LevelError, domain.ErrorMessage(err, "An unexpected error occurred during booking."))

		return nil, err
	}

	s.reservation.ClearReservation()
	s.Notify(LevelSuccess, BookingSucceededMessage)

	s.logger.Info("booking completed", "show_id", show.ID, "tickets", len(tickets))

	return &BookingResult{
		Tickets: tickets,
		Details: BookingSummary{
			Name:     details.Name,
			Address:  details.Address,
			City:     details.City,
			Zip:      details.Zip,
			Country:  country,
			BookedOn: s.now().Format(backend.DateLayout),
		},
	}, nil
}

// detailsActive reports whether the booking details form is open for the
// current reservation. Only deselection is allowed while it is.
func (s *Session) detailsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.detailsOpen && s.detailsGen == s.reservation.Generation()
}

func (s *Session) ReservationView(showID int) ReservationView {
	snap := s.reservation.Snapshot()

	seats := make([]SeatView, len(snap.SelectedSeats))
	for i, sel := range snap.SelectedSeats {
		seats[i] = SeatView{Row: sel.Row, RowName: s.rows.RowName(sel.Row), Seat: sel.Seat}
	}

	return ReservationView{
		ShowID:        showID,
		SelectedSeats: seats,
		IsLoading:     snap.IsLoading,
		Confirmed:     snap.Reservation().Active(s.now()),
		DetailsActive: s.detailsActive(),
		ReservedUntil: snap.ReservedUntil,
		TimeLeft:      s.countdown.TimeLeft(),
	}
}

func (s *Session) Notify(level NotificationLevel, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, Notification{Level: level, Message: message})
}

// Notifications returns and forgets the pending notifications.
func (s *Session) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := slices.Clone(s.notifications)
	if pending == nil {
		pending = []Notification{}
	}
	s.notifications = nil

	return pending
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = s.now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSeen
}

func (s *Session) close() {
	s.countdown.Close()
}
