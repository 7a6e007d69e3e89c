package store

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/metinatakli/concert-booking/internal/backend"
	"github.com/metinatakli/concert-booking/internal/domain"
	"golang.org/x/sync/singleflight"
)

type ShowsFetcher interface {
	GetShows(ctx context.Context) ([]domain.Show, error)
}

// ShowsStore is the process wide show directory. The list is fetched once and
// kept for the lifetime of the process; filtering always runs against the
// unfiltered master list.
type ShowsStore struct {
	client ShowsFetcher
	group  singleflight.Group

	mu        sync.RWMutex
	shows     []domain.Show
	artists   []string
	locations []string
	isLoading bool
	err       error
}

type ShowsSnapshot struct {
	Shows     []domain.Show
	Artists   []string
	Locations []string
	IsLoading bool
	Err       error
}

func NewShowsStore(client ShowsFetcher) *ShowsStore {
	return &ShowsStore{
		client:    client,
		shows:     []domain.Show{},
		artists:   []string{},
		locations: []string{},
	}
}

// FetchShows loads the directory unless it is already populated. Concurrent
// callers share a single request. A failure leaves the store empty with the
// error recorded and is also returned.
func (s *ShowsStore) FetchShows(ctx context.Context) error {
	s.mu.RLock()
	loaded := len(s.shows) > 0 && !s.isLoading
	s.mu.RUnlock()

	if loaded {
		return nil
	}

	_, err, _ := s.group.Do("shows", func() (any, error) {
		s.mu.Lock()
		if len(s.shows) > 0 {
			s.mu.Unlock()
			return nil, nil
		}
		s.isLoading = true
		s.mu.Unlock()

		// The fetch is shared, so one caller going away must not fail it for the rest.
		shows, err := s.client.GetShows(context.WithoutCancel(ctx))

		s.mu.Lock()
		defer s.mu.Unlock()

		s.isLoading = false

		if err != nil {
			s.shows = []domain.Show{}
			s.artists = []string{}
			s.locations = []string{}
			s.err = err
			return nil, err
		}

		s.shows = shows
		s.artists = uniqueSorted(shows, func(show domain.Show) string { return show.Artist })
		s.locations = uniqueSorted(shows, func(show domain.Show) string { return show.Location })
		s.err = nil

		return nil, nil
	})

	return err
}

func (s *ShowsStore) Snapshot() ShowsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ShowsSnapshot{
		Shows:     slices.Clone(s.shows),
		Artists:   slices.Clone(s.artists),
		Locations: slices.Clone(s.locations),
		IsLoading: s.isLoading,
		Err:       s.err,
	}
}

// FilterShows applies the artist, location and date predicates as an AND
// filter. An empty predicate places no constraint. date is expected as
// yyyy-mm-dd and compared against the show's dd/mm/yyyy date.
func (s *ShowsStore) FilterShows(artist, location, date string) []domain.Show {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := NormalizeFilterDate(date)
	filtered := make([]domain.Show, 0, len(s.shows))

	for _, show := range s.shows {
		if artist != "" && show.Artist != artist {
			continue
		}
		if location != "" && show.Location != location {
			continue
		}
		if day != "" && show.Date != day {
			continue
		}

		filtered = append(filtered, show)
	}

	return filtered
}

func (s *ShowsStore) ShowByID(id int) (domain.Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, show := range s.shows {
		if show.ID == id {
			return show, nil
		}
	}

	return domain.Show{}, domain.ErrNotFound
}

// NormalizeFilterDate converts yyyy-mm-dd into the dd/mm/yyyy form shows are
// stored in. Anything else is returned unchanged.
func NormalizeFilterDate(date string) string {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}

	return day.Format(backend.DateLayout)
}

func uniqueSorted(shows []domain.Show, key func(domain.Show) string) []string {
	seen := make(map[string]struct{}, len(shows))
	values := make([]string, 0, len(shows))

	for _, show := range shows {
		v := key(show)
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		values = append(values, v)
	}

	sort.Strings(values)

	return values
}
