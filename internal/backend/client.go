package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/metinatakli/concert-booking/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBodySize = 1 << 20

// HTTPClient talks JSON to the remote booking API.
type HTTPClient struct {
	baseURL  *url.URL
	http     *http.Client
	location *time.Location
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

// WithLocation sets the time zone shows are formatted in.
func WithLocation(loc *time.Location) Option {
	return func(c *HTTPClient) {
		c.location = loc
	}
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid booking API url %q: %w", baseURL, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid booking API url %q: scheme and host are required", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		location: time.Local,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *HTTPClient) GetShows(ctx context.Context) ([]domain.Show, error) {
	var resp struct {
		Concerts []domain.Concert `json:"concerts"`
	}

	err := c.do(ctx, http.MethodGet, "/concerts", nil, &resp, errorMessages{
		fallback: "Failed to fetch shows.",
	})
	if err != nil {
		return nil, err
	}

	return flattenConcerts(resp.Concerts, c.location), nil
}

func (c *HTTPClient) GetSeating(ctx context.Context, concertID, showID int) ([]domain.Row, error) {
	var resp struct {
		Rows []domain.Row `json:"rows"`
	}

	path := fmt.Sprintf("/concerts/%d/shows/%d/seating", concertID, showID)

	err := c.do(ctx, http.MethodGet, path, nil, &resp, errorMessages{
		notFound: "Seating information not found for this show.",
		fallback: "Failed to fetch seating information.",
	})
	if err != nil {
		return nil, err
	}

	for i := range resp.Rows {
		if resp.Rows[i].Seats.Unavailable == nil {
			resp.Rows[i].Seats.Unavailable = []int{}
		}
	}

	return resp.Rows, nil
}

func (c *HTTPClient) Reserve(
	ctx context.Context,
	concertID, showID int,
	req domain.ReservationRequest) (*domain.ReservationResponse, error) {

	if req.Reservations == nil {
		req.Reservations = []domain.SelectedSeat{}
	}

	var resp struct {
		Reserved         bool   `json:"reserved"`
		ReservationToken string `json:"reservation_token"`
		ReservedUntil    string `json:"reserved_until"`
	}

	path := fmt.Sprintf("/concerts/%d/shows/%d/reservation", concertID, showID)
	msgs := errorMessages{
		unauthorized: "Unauthorized: Invalid reservation token.",
		notFound:     "A concert or show with this ID does not exist.",
		fallback:     "Failed to update reservation. Please try again.",
	}

	err := c.do(ctx, http.MethodPost, path, req, &resp, msgs)
	if err != nil {
		return nil, err
	}

	reservedUntil, ok := ParseInstant(resp.ReservedUntil, c.location)
	if !ok || resp.ReservationToken == "" {
		return nil, domain.NewAPIError(domain.ErrUnexpected, http.StatusOK, msgs.fallback)
	}

	return &domain.ReservationResponse{
		Reserved:         resp.Reserved,
		ReservationToken: resp.ReservationToken,
		ReservedUntil:    reservedUntil,
	}, nil
}

func (c *HTTPClient) Book(
	ctx context.Context,
	concertID, showID int,
	req domain.BookingRequest) ([]domain.Ticket, error) {

	var resp struct {
		Tickets []domain.Ticket `json:"tickets"`
	}

	path := fmt.Sprintf("/concerts/%d/shows/%d/booking", concertID, showID)

	err := c.do(ctx, http.MethodPost, path, req, &resp, errorMessages{
		unauthorized: "Unauthorized: Invalid reservation token.",
		notFound:     "A concert or show with this ID does not exist.",
		fallback:     "An unexpected error occurred during booking.",
	})
	if err != nil {
		return nil, err
	}

	return resp.Tickets, nil
}

func (c *HTTPClient) GetTickets(ctx context.Context, creds domain.TicketCredentials) ([]domain.Ticket, error) {
	var resp struct {
		Tickets []domain.Ticket `json:"tickets"`
	}

	err := c.do(ctx, http.MethodPost, "/tickets", creds, &resp, errorMessages{
		unauthorized: "Unauthorized: Code or name mismatch.",
		fallback:     "Failed to retrieve tickets.",
	})
	if err != nil {
		return nil, err
	}

	return resp.Tickets, nil
}

func (c *HTTPClient) CancelTicket(ctx context.Context, ticketID int, creds domain.TicketCredentials) error {
	path := fmt.Sprintf("/tickets/%d/cancel", ticketID)

	return c.do(ctx, http.MethodPost, path, creds, nil, errorMessages{
		unauthorized: "Unauthorized: Code or name mismatch for cancellation.",
		notFound:     "A ticket with this ID does not exist.",
		fallback:     "Failed to cancel ticket.",
	})
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, dst any, msgs errorMessages) error {
	var reader io.Reader

	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return domain.NewAPIError(domain.ErrUnexpected, 0, msgs.fallback)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return msgs.fromResponse(res)
	}

	if dst == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	err = json.NewDecoder(res.Body).Decode(dst)
	if err != nil {
		return domain.NewAPIError(domain.ErrUnexpected, res.StatusCode, msgs.fallback)
	}

	return nil
}
