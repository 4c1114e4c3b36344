package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the blog CLI.
//
// Fields:
//   - APIBaseURL: root of the blogging API; every endpoint path is joined to it.
//   - StoragePath: SQLite file that keeps the session between runs.
//   - PerPage: posts per page in listings.
//   - SearchDebounce: quiet time after the last search keystroke before the
//     search request is sent.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogBackend, LogLevel, LogFormat: see logging.Options.
//   - WrapContent: send post bodies as a {"version","content"} envelope.
type Config struct {
	APIBaseURL     string        `validate:"required,url"`
	StoragePath    string        `validate:"required"`
	PerPage        int           `validate:"gte=1,lte=100"`
	SearchDebounce time.Duration `validate:"gte=0"`
	RequestTimeout time.Duration `validate:"gt=0"`
	LogBackend     string        `validate:"oneof=slog zap"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	LogFormat      string        `validate:"oneof=text json console"`
	WrapContent    bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.StoragePath = defaultStoragePath()
	c.PerPage = 10
	c.SearchDebounce = 500 * time.Millisecond
	c.RequestTimeout = 10 * time.Second
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.WrapContent = false
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gophblog.db"
	}
	return filepath.Join(dir, "gophblog", "session.db")
}

// Validate checks value ranges after all sources are applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
