package integration_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/metinatakli/concert-booking/api"
	"github.com/metinatakli/concert-booking/internal/app"
	"github.com/metinatakli/concert-booking/internal/backend"
	appvalidator "github.com/metinatakli/concert-booking/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App   *app.Application
	Redis *redis.Client
	API   *FakeBookingAPI
}

func newTestApp(cfg app.Config, fakeAPI *FakeBookingAPI) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	openapiRouter, err := api.NewRouter(context.Background())
	if err != nil {
		redisClient.Close()
		return nil, err
	}

	client, err := backend.NewHTTPClient(cfg.BookingAPI.URL, cfg.BookingAPI.Timeout, backend.WithLocation(time.UTC))
	if err != nil {
		redisClient.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient, cfg.Session.IdleTimeout)

	application := app.NewApp(
		cfg,
		logger,
		redisClient,
		validator,
		sessionManager,
		openapiRouter,
		client,
	)

	return &TestApp{
		App:   application,
		Redis: redisClient,
		API:   fakeAPI,
	}, nil
}
