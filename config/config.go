package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when present; environment variables override it.
const DefaultFile = "farmhub.yaml"

type AppConfig struct {
	Port        string        `yaml:"port"`
	Backend     string        `yaml:"backend"` // remote | mock | sqlite
	MockLatency time.Duration `yaml:"mock_latency"`
	Seed        string        `yaml:"seed"` // dir or .xlsx; empty uses the built-in dataset
	DBPath      string        `yaml:"db_path"`
	APIKey      string        `yaml:"api_key"`
	LogLevel    string        `yaml:"log_level"`
	LogJSON     bool          `yaml:"log_json"`
	Apper       ApperConfig   `yaml:"apper"`
}

type ApperConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	ProjectID string        `yaml:"project_id"`
	PublicKey string        `yaml:"public_key"`
	Timeout   time.Duration `yaml:"timeout"`
	PageSize  int           `yaml:"page_size"`
}

func Defaults() AppConfig {
	return AppConfig{
		Port:        "8080",
		Backend:     "mock",
		MockLatency: 300 * time.Millisecond,
		DBPath:      "farmhub.db",
		LogLevel:    "info",
		Apper:       ApperConfig{Timeout: 20 * time.Second, PageSize: 500},
	}
}

// Load reads .env, then the YAML file at path (DefaultFile when empty,
// skipped if missing), then environment overrides. Callers run Validate
// after applying their own overrides.
func Load(path string) (AppConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Defaults()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg.Port = get("PORT", cfg.Port)
	cfg.Backend = get("FARMHUB_BACKEND", cfg.Backend)
	cfg.Seed = get("FARMHUB_SEED", cfg.Seed)
	cfg.DBPath = get("DB_PATH", cfg.DBPath)
	cfg.APIKey = get("FARMHUB_API_KEY", cfg.APIKey)
	cfg.LogLevel = get("LOG_LEVEL", cfg.LogLevel)
	cfg.Apper.Endpoint = get("APPER_ENDPOINT", cfg.Apper.Endpoint)
	cfg.Apper.ProjectID = get("APPER_PROJECT_ID", cfg.Apper.ProjectID)
	cfg.Apper.PublicKey = get("APPER_PUBLIC_KEY", cfg.Apper.PublicKey)

	var err error
	if v := os.Getenv("LOG_JSON"); v != "" {
		if cfg.LogJSON, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("LOG_JSON: %w", err)
		}
	}
	if v := os.Getenv("FARMHUB_MOCK_LATENCY"); v != "" {
		if cfg.MockLatency, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("FARMHUB_MOCK_LATENCY: %w", err)
		}
	}
	if v := os.Getenv("APPER_TIMEOUT"); v != "" {
		if cfg.Apper.Timeout, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("APPER_TIMEOUT: %w", err)
		}
	}
	return nil
}

func (c AppConfig) Validate() error {
	switch c.Backend {
	case "mock", "sqlite":
	case "remote":
		if c.Apper.Endpoint == "" || c.Apper.ProjectID == "" || c.Apper.PublicKey == "" {
			return errors.New("config: remote backend needs APPER_ENDPOINT, APPER_PROJECT_ID and APPER_PUBLIC_KEY")
		}
	default:
		return fmt.Errorf("config: unknown backend %q (want remote, mock or sqlite)", c.Backend)
	}
	if c.MockLatency < 0 {
		return errors.New("config: mock latency must not be negative")
	}
	return nil
}

// Redacted is safe to log.
func (c AppConfig) Redacted() AppConfig {
	if c.APIKey != "" {
		c.APIKey = "***"
	}
	if c.Apper.PublicKey != "" {
		c.Apper.PublicKey = "***"
	}
	return c
}
