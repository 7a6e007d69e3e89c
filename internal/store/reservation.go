package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/metinatakli/concert-booking/internal/domain"
)

// ErrReservationSuperseded is returned by Reserve when the reservation was
// cleared while the request was in flight. The response has been discarded.
var ErrReservationSuperseded = errors.New("the reservation was cleared while it was being updated")

type Reserver interface {
	Reserve(ctx context.Context, concertID, showID int, req domain.ReservationRequest) (*domain.ReservationResponse, error)
}

type ReservationSnapshot struct {
	SelectedSeats []domain.SelectedSeat
	IsLoading     bool
	Token         string
	ReservedUntil *time.Time
}

func (s ReservationSnapshot) Reservation() domain.Reservation {
	return domain.Reservation{Token: s.Token, ReservedUntil: s.ReservedUntil}
}

// ReservationStore holds the seats the user is currently selecting together
// with the hold the server issued for them.
//
// Selection edits are local only. Reserve pushes the whole selection, echoing
// the current token, and replaces token and expiry together on success. On
// failure token and expiry are left untouched; undoing the selection edit that
// preceded the call is the caller's job.
//
// Every clear starts a new generation. A Reserve response that belongs to an
// older generation is dropped.
type ReservationStore struct {
	client Reserver

	mu            sync.Mutex
	selectedSeats []domain.SelectedSeat
	isLoading     bool
	token         string
	reservedUntil *time.Time
	generation    uint64
	listeners     []func(ReservationSnapshot)
}

func NewReservationStore(client Reserver) *ReservationStore {
	return &ReservationStore{
		client:        client,
		selectedSeats: []domain.SelectedSeat{},
	}
}

// Subscribe registers fn to be called with a fresh snapshot after every state
// change. fn runs outside the store lock and may call back into the store.
func (s *ReservationStore) Subscribe(fn func(ReservationSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
}

func (s *ReservationStore) AddSelectedSeat(row, seat int) {
	s.update(func() bool {
		if s.isSelectedLocked(row, seat) {
			return false
		}

		s.selectedSeats = append(s.selectedSeats, domain.SelectedSeat{Row: row, Seat: seat})
		return true
	})
}

func (s *ReservationStore) RemoveSelectedSeat(row, seat int) {
	s.update(func() bool {
		before := len(s.selectedSeats)
		s.selectedSeats = slices.DeleteFunc(s.selectedSeats, func(sel domain.SelectedSeat) bool {
			return sel.Row == row && sel.Seat == seat
		})

		return len(s.selectedSeats) != before
	})
}

func (s *ReservationStore) IsSelected(row, seat int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isSelectedLocked(row, seat)
}

func (s *ReservationStore) isSelectedLocked(row, seat int) bool {
	return slices.ContainsFunc(s.selectedSeats, func(sel domain.SelectedSeat) bool {
		return sel.Row == row && sel.Seat == seat
	})
}

// Reserve confirms the entire current selection with the server.
func (s *ReservationStore) Reserve(ctx context.Context, concertID, showID int) error {
	var (
		req        domain.ReservationRequest
		generation uint64
	)

	s.update(func() bool {
		generation = s.generation
		s.isLoading = true
		req = domain.ReservationRequest{
			ReservationToken: s.token,
			Reservations:     slices.Clone(s.selectedSeats),
		}

		return true
	})

	resp, err := s.client.Reserve(ctx, concertID, showID, req)

	superseded := false

	s.update(func() bool {
		if s.generation != generation {
			superseded = true
			return false
		}

		s.isLoading = false

		if err != nil {
			return true
		}

		reservedUntil := resp.ReservedUntil
		s.token = resp.ReservationToken
		s.reservedUntil = &reservedUntil

		return true
	})

	if superseded {
		return ErrReservationSuperseded
	}

	return err
}

// ClearReservation drops the selection and the hold unconditionally.
func (s *ReservationStore) ClearReservation() {
	s.update(func() bool {
		s.selectedSeats = []domain.SelectedSeat{}
		s.token = ""
		s.reservedUntil = nil
		s.isLoading = false
		s.generation++

		return true
	})
}

// ExpireIfBefore clears the reservation when its hold ended at or before now.
// The check and the clear happen under one lock, so a hold extended in the
// meantime is kept.
func (s *ReservationStore) ExpireIfBefore(now time.Time) bool {
	expired := false

	s.update(func() bool {
		if s.reservedUntil == nil || s.reservedUntil.After(now) {
			return false
		}

		s.selectedSeats = []domain.SelectedSeat{}
		s.token = ""
		s.reservedUntil = nil
		s.isLoading = false
		s.generation++
		expired = true

		return true
	})

	return expired
}

// Generation changes every time the reservation is cleared.
func (s *ReservationStore) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generation
}

func (s *ReservationStore) Snapshot() ReservationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *ReservationStore) snapshotLocked() ReservationSnapshot {
	snap := ReservationSnapshot{
		SelectedSeats: slices.Clone(s.selectedSeats),
		IsLoading:     s.isLoading,
		Token:         s.token,
	}

	if s.reservedUntil != nil {
		reservedUntil := *s.reservedUntil
		snap.ReservedUntil = &reservedUntil
	}

	return snap
}

// update applies fn under the lock and notifies listeners when fn reports a
// change.
func (s *ReservationStore) update(fn func() bool) {
	s.mu.Lock()
	changed := fn()
	if !changed {
		s.mu.Unlock()
		return
	}

	snap := s.snapshotLocked()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}
