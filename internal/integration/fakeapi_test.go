package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/concert-booking/internal/domain"
)

// FakeBookingAPI is an in-memory stand-in for the remote booking API. It
// issues a fresh token on every accepted reservation and rejects stale ones.
type FakeBookingAPI struct {
	server *httptest.Server

	mu        sync.Mutex
	holds     map[string][]domain.SelectedSeat
	taken     map[int][]int
	tickets   []domain.Ticket
	lastToken int
	failAll   bool
}

func NewFakeBookingAPI() *FakeBookingAPI {
	f := &FakeBookingAPI{}
	f.Reset()

	r := chi.NewRouter()
	r.Get("/concerts", f.concerts)
	r.Get("/concerts/{concertId}/shows/{showId}/seating", f.seating)
	r.Post("/concerts/{concertId}/shows/{showId}/reservation", f.reserve)
	r.Post("/concerts/{concertId}/shows/{showId}/booking", f.book)
	r.Post("/tickets", f.lookup)
	r.Post("/tickets/{ticketId}/cancel", f.cancel)

	f.server = httptest.NewServer(r)

	return f
}

func (f *FakeBookingAPI) URL() string {
	return f.server.URL
}

func (f *FakeBookingAPI) Close() {
	f.server.Close()
}

func (f *FakeBookingAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.holds = make(map[string][]domain.SelectedSeat)
	f.taken = map[int][]int{TestRowID: {TestTakenSeat}}
	f.tickets = nil
	f.lastToken = 0
	f.failAll = false
}

// FailAll makes every endpoint answer with 500.
func (f *FakeBookingAPI) FailAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failAll = true
}

// Take marks a seat as sold to someone else.
func (f *FakeBookingAPI) Take(row, seat int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.taken[row] = append(f.taken[row], seat)
}

func (f *FakeBookingAPI) failing(w http.ResponseWriter) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failAll {
		writeFake(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return f.failAll
}

func (f *FakeBookingAPI) concerts(w http.ResponseWriter, r *http.Request) {
	if f.failing(w) {
		return
	}

	writeFake(w, http.StatusOK, map[string]any{
		"concerts": []domain.Concert{
			{
				ID:       TestConcertID,
				Artist:   TestArtist,
				Location: domain.Location{ID: 1, Name: TestLocation},
				Shows:    []domain.ConcertShow{{ID: TestShowID, Start: TestShowStart, End: TestShowEnd}},
			},
			{
				ID:       TestSecondConcertID,
				Artist:   TestSecondArtist,
				Location: domain.Location{ID: 2, Name: TestSecondLocation},
				Shows:    []domain.ConcertShow{{ID: TestSecondShowID, Start: "2095-07-01T20:00:00Z", End: "2095-07-01T22:00:00Z"}},
			},
		},
	})
}

func (f *FakeBookingAPI) seating(w http.ResponseWriter, r *http.Request) {
	if f.failing(w) {
		return
	}

	if !f.knownShow(r) {
		writeFake(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	f.mu.Lock()
	unavailable := slices.Clone(f.taken[TestRowID])
	f.mu.Unlock()

	writeFake(w, http.StatusOK, map[string]any{
		"rows": []domain.Row{
			{ID: TestRowID, Name: TestRowName, Seats: domain.RowSeats{Total: TestRowSeats, Unavailable: unavailable}},
		},
	})
}

func (f *FakeBookingAPI) reserve(w http.ResponseWriter, r *http.Request) {
	if f.failing(w) {
		return
	}

	if !f.knownShow(r) {
		writeFake(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	var req domain.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if req.ReservationToken != "" {
		if _, ok := f.holds[req.ReservationToken]; !ok {
			writeFake(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		delete(f.holds, req.ReservationToken)
	}

	for _, sel := range req.Reservations {
		if slices.Contains(f.taken[sel.Row], sel.Seat) {
			writeFake(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "seat not available",
				"fields": map[string]any{"reservations": []string{"Seat is already taken."}},
			})
			return
		}
	}

	f.lastToken++
	token := fmt.Sprintf("token-%d", f.lastToken)
	f.holds[token] = slices.Clone(req.Reservations)

	writeFake(w, http.StatusOK, map[string]any{
		"reserved":          true,
		"reservation_token": token,
		"reserved_until":    time.Now().UTC().Add(TestHoldMinutes * time.Minute).Format(time.RFC3339),
	})
}

func (f *FakeBookingAPI) book(w http.ResponseWriter, r *http.Request) {
	if f.failing(w) {
		return
	}

	var req domain.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	seats, ok := f.holds[req.ReservationToken]
	if !ok {
		writeFake(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		return
	}
	delete(f.holds, req.ReservationToken)

	var booked []domain.Ticket
	for _, sel := range seats {
		f.taken[sel.Row] = append(f.taken[sel.Row], sel.Seat)

		ticket := domain.Ticket{
			ID:      len(f.tickets) + 1,
			Code:    TestTicketCode,
			Name:    req.Name,
			Row:     domain.TicketRow{ID: sel.Row, Name: TestRowName},
			Seat:    sel.Seat,
			Address: req.Address,
			City:    req.City,
			Zip:     req.Zip,
			Country: req.Country,
			Show: domain.TicketShow{
				ID:    TestShowID,
				Start: TestShowStart,
				End:   TestShowEnd,
				Concert: domain.TicketConcert{
					ID:       TestConcertID,
					Artist:   TestArtist,
					Location: domain.Location{ID: 1, Name: TestLocation},
				},
			},
		}

		f.tickets = append(f.tickets, ticket)
		booked = append(booked, ticket)
	}

	writeFake(w, http.StatusCreated, map[string]any{"tickets": booked})
}

func (f *FakeBookingAPI) lookup(w http.ResponseWriter, r *http.Request) {
	if f.failing(w) {
		return
	}

	var creds domain.TicketCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var found []domain.Ticket
	for _, t := range f.tickets {
		if t.Code == creds.Code && t.Name == creds.Name {
			found = append(found, t)
		}
	}

	if len(found) == 0 {
		writeFake(w, http.StatusUnauthorized, map[string]string{"error": "mismatch"})
		return
	}

	writeFake(w, http.StatusOK, map[string]any{"tickets": found})
}

func (f *FakeBookingAPI) cancel(w http.ResponseWriter, r *http.Request) {
	if f.failing(w) {
		return
	}

	id, _ := strconv.Atoi(chi.URLParam(r, "ticketId"))

	var creds domain.TicketCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	idx := slices.IndexFunc(f.tickets, func(t domain.Ticket) bool { return t.ID == id })
	if idx < 0 {
		writeFake(w, http.StatusNotFound, map[string]string{})
		return
	}

	if f.tickets[idx].Code != creds.Code || f.tickets[idx].Name != creds.Name {
		writeFake(w, http.StatusForbidden, map[string]string{})
		return
	}

	f.tickets = slices.Delete(f.tickets, idx, idx+1)

	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBookingAPI) knownShow(r *http.Request) bool {
	concertID, _ := strconv.Atoi(chi.URLParam(r, "concertId"))
	showID, _ := strconv.Atoi(chi.URLParam(r, "showId"))

	return (concertID == TestConcertID && showID == TestShowID) ||
		(concertID == TestSecondConcertID && showID == TestSecondShowID)
}

func writeFake(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
