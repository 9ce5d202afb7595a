package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/skillsphere/skillsphere/internal/errors"
)

// Config is the global Skillsphere configuration stored at
// ~/.skillsphere/config.yaml. Environment variables prefixed with
// SKILLSPHERE_ override file values.
type Config struct {
	// BackendURL is the base URL of the Skillsphere REST backend
	BackendURL string `yaml:"backend_url" validate:"required,url"`

	// CookieFile is where the backend-issued session cookie is persisted
	// between CLI invocations. The client only ever stores what the
	// backend set; it never fabricates a cookie.
	CookieFile string `yaml:"cookie_file"`

	// Log controls structured logging
	Log LogConfig `yaml:"log"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

var validate = validator.New()

// DefaultPath returns the default configuration file path
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".skillsphere", "config.yaml"), nil
}

// Default returns the built-in configuration
func Default() Config {
	cfg := Config{
		BackendURL: "http://localhost:4000/api",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.CookieFile = filepath.Join(home, ".skillsphere", "cookies.json")
	}
	return cfg
}

// Load reads the configuration file at path, applies environment
// overrides, and validates the result. A missing file is not an error:
// defaults apply, so a fresh install works without any setup.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("read configuration file: %s", path), err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.NewConfigInvalidError(path, err)
		}
	}

	applyEnv(&cfg)

	if err := validate.Struct(cfg); err != nil {
		return Config{}, errors.NewConfigInvalidError(path, err)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating parent directories
func Save(cfg Config, path string) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "invalid configuration", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigWriteFailed, "marshal configuration", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWriteFailed, fmt.Sprintf("create configuration directory: %s", filepath.Dir(path)), err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWriteFailed, fmt.Sprintf("write configuration file: %s", path), err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SKILLSPHERE_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("SKILLSPHERE_COOKIE_FILE"); v != "" {
		cfg.CookieFile = v
	}
	if v := os.Getenv("SKILLSPHERE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SKILLSPHERE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
