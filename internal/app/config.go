package app

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	TimeZone         string
	Redis            RedisConfig
	BookingAPI       BookingAPIConfig
	Session          SessionConfig
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type BookingAPIConfig struct {
	URL     string
	Timeout time.Duration
}

type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

// loadConfig reads the configuration from command line flags. Every flag
// defaults to its environment variable, and a .env file in the working
// directory is loaded into the environment first when present.
func loadConfig(args []string) (Config, bool, error) {
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("concert-booking", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	fs.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")
	fs.StringVar(&cfg.TimeZone, "time-zone", envString("TIME_ZONE", "Local"), "IANA time zone used to display show dates")

	fs.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	fs.StringVar(&cfg.BookingAPI.URL, "booking-api-url", envString("BOOKING_API_URL", "http://localhost:8080"), "Base URL of the booking API")
	fs.DurationVar(&cfg.BookingAPI.Timeout, "booking-api-timeout", envDuration("BOOKING_API_TIMEOUT", 10*time.Second), "Booking API request timeout")

	fs.DurationVar(&cfg.Session.IdleTimeout, "session-idle-timeout", envDuration("SESSION_IDLE_TIMEOUT", 20*time.Minute), "Idle timeout of browser sessions")
	fs.DurationVar(&cfg.Session.SweepInterval, "session-sweep-interval", envDuration("SESSION_SWEEP_INTERVAL", time.Minute), "How often idle booking sessions are evicted")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	return cfg, *displayVersion, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}
