package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/getkin/kin-openapi/routers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/concert-booking/api"
	"github.com/metinatakli/concert-booking/internal/backend"
	"github.com/metinatakli/concert-booking/internal/booking"
	"github.com/metinatakli/concert-booking/internal/domain"
	"github.com/metinatakli/concert-booking/internal/store"
	appvalidator "github.com/metinatakli/concert-booking/internal/validator"
	"github.com/metinatakli/concert-booking/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

const serviceName = "concert-booking"

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	openapiRouter  routers.Router

	client   domain.BookingClient
	shows    *store.ShowsStore
	bookings *booking.Registry
	tickets  *booking.Tickets
}

func Run() error {
	cfg, displayVersion, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, logger, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid time zone %q: %w", cfg.TimeZone, err)
	}

	client, err := backend.NewHTTPClient(cfg.BookingAPI.URL, cfg.BookingAPI.Timeout, backend.WithLocation(loc))
	if err != nil {
		return err
	}

	openapiRouter, err := api.NewRouter(context.Background())
	if err != nil {
		return err
	}

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	app := NewApp(
		cfg,
		logger,
		redisClient,
		appvalidator.NewValidator(),
		NewSessionManager(redisClient, cfg.Session.IdleTimeout),
		openapiRouter,
		client,
	)

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	openapiRouter routers.Router,
	client domain.BookingClient,
	opts ...booking.RegistryOption) *Application {

	opts = append([]booking.RegistryOption{booking.WithIdleTimeout(cfg.Session.IdleTimeout)}, opts...)

	return &Application{
		config:         cfg,
		logger:         logger,
		redis:          redisClient,
		validator:      validator,
		sessionManager: sessionManager,
		openapiRouter:  openapiRouter,
		client:         client,
		shows:          store.NewShowsStore(client),
		bookings:       booking.NewRegistry(client, logger, opts...),
		tickets:        booking.NewTickets(client),
	}
}

func NewSessionManager(client *redis.Client, idleTimeout time.Duration) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = idleTimeout
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to instrument redis client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.bookings.Run(janitorCtx, app.config.Session.SweepInterval)
	}()

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)

		stopJanitor()
		wg.Wait()

		shutdownError <- err
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "booking_api", app.config.BookingAPI.URL)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		stopJanitor()
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)
	r.Use(app.validateRequest)

	r.Get("/healthcheck", app.GetHealth)

	r.Get("/shows", app.GetShows)
	r.Get("/shows/{showId}", app.GetShow)

	// everything below needs a booking session bound to the browser session
	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)
		r.Use(app.ensureBookingSession)

		r.Post("/shows/{showId}/enter", app.EnterShow)
		r.Post("/shows/{showId}/leave", app.LeaveShow)
		r.Get("/shows/{showId}/seating", app.GetSeating)

		r.Get("/shows/{showId}/reservation", app.GetReservation)
		r.Delete("/shows/{showId}/reservation", app.ClearReservation)
		r.Post("/shows/{showId}/reservation/seats", app.ToggleSeat)

		r.Post("/shows/{showId}/details", app.ProceedToDetails)
		r.Post("/shows/{showId}/booking", app.SubmitBooking)

		r.Post("/tickets/lookup", app.LookupTickets)
		r.Get("/tickets/latest", app.GetLatestTickets)
		r.Post("/tickets/{ticketId}/cancel", app.CancelTicket)

		r.Get("/notifications", app.GetNotifications)
	})

	return r
}
