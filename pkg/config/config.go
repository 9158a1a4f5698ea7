package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	BlobProviderHTTP  = "http"
	BlobProviderDrive = "drive"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Storage struct {
		Driver     string `env:"STORAGE_DRIVER" env-default:"postgres"`
		SqlitePath string `env:"SQLITE_PATH" env-default:"./flashfeed.db"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
		// MaxConns caps the pool; feed fan-out holds one connection per worker.
		MaxConns int32 `env:"POSTGRES_MAX_CONNS" env-default:"16"`
	}
	Retry struct {
		MaxRetries      uint64        `env:"RETRY_MAX_RETRIES" env-default:"3"`
		InitialInterval time.Duration `env:"RETRY_INITIAL_INTERVAL" env-default:"500ms"`
		MaxInterval     time.Duration `env:"RETRY_MAX_INTERVAL" env-default:"5s"`
	}
	Auth struct {
		JWTSecret string `env:"AUTH_JWT_SECRET"`
		Issuer    string `env:"AUTH_ISSUER"`
		Audience  string `env:"AUTH_AUDIENCE"`
	}
	Blob struct {
		Provider         string `env:"BLOB_PROVIDER" env-default:"http"`
		BaseURL          string `env:"BLOB_BASE_URL"`
		DriveCredentials string `env:"BLOB_DRIVE_CREDENTIALS"`
	}
	Feed struct {
		FanoutWorkers  int           `env:"FEED_FANOUT_WORKERS" env-default:"8"`
		StreamInterval time.Duration `env:"FEED_STREAM_INTERVAL" env-default:"30s"`
	}
	Cleanup struct {
		Retention time.Duration `env:"CLEANUP_RETENTION" env-default:"48h"`
		Hour      uint          `env:"CLEANUP_HOUR" env-default:"3"`
		Timezone  string        `env:"CLEANUP_TIMEZONE" env-default:"UTC"`
	}
	RateLimit struct {
		Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"10"`
		Per      time.Duration `env:"RATE_LIMIT_PER" env-default:"10s"`
		Burst    int           `env:"RATE_LIMIT_BURST" env-default:"20"`
	}
	Otel struct {
		Endpoint    string  `env:"OTEL_ENDPOINT"`
		SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" env-default:"1"`
	}
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// New returns the process-wide configuration, reading the environment once.
func New() (*Config, error) {
	once.Do(func() {
		cfg, loadErr = Load()
	})
	return cfg, loadErr
}

// Load reads a fresh configuration from the environment.
func Load() (*Config, error) {
	c := &Config{}
	if err := cleanenv.ReadEnv(c); err != nil {
		help, _ := cleanenv.GetDescription(c, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	switch c.Blob.Provider {
	case BlobProviderHTTP, BlobProviderDrive:
	default:
		return fmt.Errorf("unsupported BLOB_PROVIDER %q", c.Blob.Provider)
	}
	if c.Feed.FanoutWorkers <= 0 {
		return fmt.Errorf("FEED_FANOUT_WORKERS must be positive, got %d", c.Feed.FanoutWorkers)
	}
	if c.Otel.SampleRatio < 0 || c.Otel.SampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATIO must be within 0-1, got %v", c.Otel.SampleRatio)
	}
	if c.Cleanup.Hour > 23 {
		return fmt.Errorf("CLEANUP_HOUR must be within 0-23, got %d", c.Cleanup.Hour)
	}
	return nil
}

// GetDSN returns the Postgres connection string in key/value form.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// PostgresURL returns the Postgres connection string in URL form, as pgxpool expects.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Postgres.User, c.Postgres.Pass),
		Host:     net.JoinHostPort(c.Postgres.Host, strconv.Itoa(c.Postgres.Port)),
		Path:     "/" + c.Postgres.Name,
		RawQuery: url.Values{"sslmode": {c.Postgres.SslMode}}.Encode(),
	}
	return u.String()
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
