package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/concert-booking/api"
	"github.com/metinatakli/concert-booking/internal/booking"
	"github.com/metinatakli/concert-booking/internal/domain"
	"github.com/metinatakli/concert-booking/internal/mocks"
	"github.com/metinatakli/concert-booking/internal/store"
	"github.com/metinatakli/concert-booking/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testShow = domain.Show{ID: 10, Artist: "Radiohead", Location: "Berlin", Date: "14/06/2025", Start: "19:30", End: "22:00", ConcertID: 1}

	testShows = []domain.Show{
		testShow,
		{ID: 11, Artist: "Radiohead", Location: "Amsterdam", Date: "16/06/2025", Start: "20:00", End: "22:30", ConcertID: 1},
		{ID: 20, Artist: "Björk", Location: "Berlin", Date: "16/06/2025", Start: "20:00", End: "22:00", ConcertID: 2},
	}

	testRows = []domain.Row{
		{ID: 1, Name: "A", Seats: domain.RowSeats{Total: 10, Unavailable: []int{3}}},
		{ID: 2, Name: "B", Seats: domain.RowSeats{Total: 8, Unavailable: []int{}}},
	}
)

func newTestApplication(t *testing.T, client *mocks.MockBookingClient, opts ...func(*Application)) *Application {
	t.Helper()

	router, err := api.NewRouter(context.Background())
	require.NoError(t, err)

	cfg := Config{
		Env: "test",
		Session: SessionConfig{
			IdleTimeout:   20 * time.Minute,
			SweepInterval: time.Minute,
		},
	}

	app := NewApp(
		cfg,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
		validator.NewValidator(),
		scs.New(),
		router,
		client,
		booking.WithCountdownOptions(store.WithTickInterval(time.Hour)),
	)

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// showsClient returns a booking client mock that serves the test directory
// and seating plan.
func showsClient() *mocks.MockBookingClient {
	client := &mocks.MockBookingClient{}
	client.On("GetShows", mock.Anything).Return(testShows, nil).Maybe()
	client.On("GetSeating", mock.Anything, 1, 10).Return(testRows, nil).Maybe()

	return client
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}

		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	return w, r
}

// browser replays the session cookie across requests the way a browser does.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newBrowser(t *testing.T, app *Application) *browser {
	return &browser{t: t, handler: app.Routes()}
}

func (b *browser) do(method, url string, body any) *httptest.ResponseRecorder {
	b.t.Helper()

	w, r := executeRequest(b.t, method, url, body)
	for _, c := range b.cookies {
		r.AddCookie(c)
	}

	b.handler.ServeHTTP(w, r)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		b.cookies = cookies
	}

	return w
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return resp
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if w.Code != tt.wantStatus {
		t.Errorf("Status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
	}

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		if len(validationResp.ValidationErrors) == 0 {
			if tt.wantErrMessage != "" && validationResp.Message != tt.wantErrMessage {
				t.Errorf("Error message = %v, want %v", validationResp.Message, tt.wantErrMessage)
			}
			return
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}
