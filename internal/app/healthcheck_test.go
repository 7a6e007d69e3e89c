package app

import (
	"errors"
	"net/http"
	"testing"

	"github.com/metinatakli/concert-booking/api"
	"github.com/metinatakli/concert-booking/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetHealth(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   api.HealthcheckResponse
	}{
		{
			name:       "session store reachable",
			wantStatus: http.StatusOK,
			wantBody: api.HealthcheckResponse{
				Status:       "UP",
				SessionStore: "UP",
				SystemInfo:   api.SystemInfo{Version: version, Environment: "test"},
			},
		},
		{
			name:       "session store down",
			pingErr:    errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody: api.HealthcheckResponse{
				Status:       "DOWN",
				SessionStore: "DOWN",
				SystemInfo:   api.SystemInfo{Version: version, Environment: "test"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisClient := &mocks.MockRedisClient{}
			redisClient.On("Ping", mock.Anything).Return(redis.NewStatusResult("PONG", tt.pingErr))

			app := newTestApplication(t, &mocks.MockBookingClient{}, func(a *Application) {
				a.redis = redisClient
			})

			w, r := executeRequest(t, http.MethodGet, "/healthcheck", nil)
			app.Routes().ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, decodeResponse[api.HealthcheckResponse](t, w))

			redisClient.AssertExpectations(t)
		})
	}
}
