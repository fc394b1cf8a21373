package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName    string `env:"APP_NAME" envDefault:"Intranet Empresa"`
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	Port       string `env:"PORT" envDefault:"8080"`
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	StaticDir  string `env:"STATIC_DIR" envDefault:"static"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"logs/app.log"`

	NotifyWorkers     int           `env:"NOTIFY_WORKERS" envDefault:"5"`
	NotifyQueueSize   int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"100"`
	NotifyShowDelay   time.Duration `env:"NOTIFY_SHOW_DELAY" envDefault:"10ms"`
	NotifyDisplay     time.Duration `env:"NOTIFY_DISPLAY" envDefault:"3s"`
	NotifyRemoveDelay time.Duration `env:"NOTIFY_REMOVE_DELAY" envDefault:"300ms"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.NotifyWorkers < 1 {
		return fmt.Errorf("NOTIFY_WORKERS must be at least 1, got %d", c.NotifyWorkers)
	}
	if c.NotifyQueueSize < 1 {
		return fmt.Errorf("NOTIFY_QUEUE_SIZE must be at least 1, got %d", c.NotifyQueueSize)
	}
	if c.NotifyShowDelay < 0 || c.NotifyDisplay < 0 || c.NotifyRemoveDelay < 0 {
		return errors.New("notification timings must not be negative")
	}
	return nil
}
