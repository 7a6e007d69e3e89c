package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/metinatakli/concert-booking/internal/domain"
)

const rowsFetchFallback = "Failed to load seating information."

type SeatingFetcher interface {
	GetSeating(ctx context.Context, concertID, showID int) ([]domain.Row, error)
}

// RowsStore holds the seating layout of the show currently being booked.
// Every fetch starts from an empty layout, and responses of superseded fetches
// are dropped.
type RowsStore struct {
	client SeatingFetcher

	mu         sync.RWMutex
	rows       []domain.Row
	concertID  int
	showID     int
	isLoading  bool
	err        string
	generation uint64
}

type RowsSnapshot struct {
	ConcertID int
	ShowID    int
	Rows      []domain.Row
	IsLoading bool
	Error     string
}

func NewRowsStore(client SeatingFetcher) *RowsStore {
	return &RowsStore{
		client: client,
		rows:   []domain.Row{},
	}
}

func (s *RowsStore) FetchRows(ctx context.Context, concertID, showID int) error {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.rows = []domain.Row{}
	s.concertID = concertID
	s.showID = showID
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()

	rows, err := s.client.GetSeating(ctx, concertID, showID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return nil
	}

	s.isLoading = false

	if err != nil {
		s.rows = []domain.Row{}
		s.err = domain.ErrorMessage(err, rowsFetchFallback)
		return err
	}

	s.rows = rows

	return nil
}

// Reset empties the store, discarding interest in any fetch still in flight.
func (s *RowsStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.rows = []domain.Row{}
	s.concertID = 0
	s.showID = 0
	s.isLoading = false
	s.err = ""
}

func (s *RowsStore) Snapshot() RowsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Row, len(s.rows))
	for i, row := range s.rows {
		row.Seats.Unavailable = slices.Clone(row.Seats.Unavailable)
		rows[i] = row
	}

	return RowsSnapshot{
		ConcertID: s.concertID,
		ShowID:    s.showID,
		Rows:      rows,
		IsLoading: s.isLoading,
		Error:     s.err,
	}
}

func (s *RowsStore) Row(rowID int) (domain.Row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows {
		if row.ID == rowID {
			return row, true
		}
	}

	return domain.Row{}, false
}

// RowName returns the display name of rowID, falling back to "Row ID <n>"
// while loading or when the row is unknown.
func (s *RowsStore) RowName(rowID int) string {
	s.mu.RLock()
	loading := s.isLoading
	s.mu.RUnlock()

	if !loading {
		if row, ok := s.Row(rowID); ok {
			return row.Name
		}
	}

	return fmt.Sprintf("Row ID %d", rowID)
}

func (s *RowsStore) IsSeatUnavailable(rowID, seat int) bool {
	row, ok := s.Row(rowID)
	if !ok {
		return false
	}

	return row.IsUnavailable(seat)
}
