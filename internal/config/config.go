// Package config loads runtime settings from defaults, an optional config
// file, an optional .env file and BUCKETLIST_* environment variables.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment modes.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTesting     = "testing"
)

// Config keys.
const (
	KeyEnv             = "env"
	KeyDatabasePath    = "database_path"
	KeySecretKey       = "secret_key"
	KeyTokenExpiration = "token_expiration"
	KeyAddr            = "addr"
	KeyLogLevel        = "log_level"
	KeyLoginRate       = "login_rate"
	KeyLoginBurst      = "login_burst"
)

const (
	envPrefix       = "BUCKETLIST"
	secretKeyLength = 24
)

// DefaultDatabasePath is where the production and development database lives.
var DefaultDatabasePath = filepath.Join("data", "bucketlist-data.sqlite")

// Config is passed explicitly to everything that needs settings.
type Config struct {
	// Env is production, development or testing.
	Env string

	// DatabasePath is the SQLite file. In testing mode it defaults to ":memory:".
	DatabasePath string

	// SecretKey signs auth tokens. Random per process when not configured.
	SecretKey []byte

	// TokenExpiration is the default auth token lifetime.
	TokenExpiration time.Duration

	// Addr is the listen address of the RPC server.
	Addr string

	// LogLevel is debug, info, warn or error.
	LogLevel string

	// LoginRate is the sustained number of Login/Register calls per second.
	LoginRate float64

	// LoginBurst is how many Login/Register calls may arrive at once.
	LoginBurst int
}

// Debug reports whether the environment enables debug behavior.
func (c *Config) Debug() bool {
	return c.Env != EnvProduction
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvProduction, EnvDevelopment, EnvTesting:
	default:
		return fmt.Errorf("unknown environment %q", c.Env)
	}
	if c.DatabasePath == "" {
		return errors.New("database path is required")
	}
	if len(c.SecretKey) == 0 {
		return errors.New("secret key is required")
	}
	if c.TokenExpiration <= 0 {
		return fmt.Errorf("token expiration must be positive, got %s", c.TokenExpiration)
	}
	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return errors.New("login rate and burst must be positive")
	}
	return nil
}

// Options select where Load looks for settings.
type Options struct {
	// ConfigFile is an explicit config file. Empty searches the working
	// directory for config.yaml and treats a missing file as no overrides.
	ConfigFile string

	// DotEnvFile is loaded into the process environment before reading
	// variables. Empty tries .env in the working directory.
	DotEnvFile string

	// Env overrides the environment from every other source.
	Env string
}

// Load builds a Config from defaults, the config file, the environment and opts.
func Load(opts Options) (*Config, error) {
	if err := loadDotEnv(opts.DotEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Env != "" {
		v.Set(KeyEnv, opts.Env)
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyEnv, EnvDevelopment)
	v.SetDefault(KeyTokenExpiration, "1800s")
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyLoginRate, 5.0)
	v.SetDefault(KeyLoginBurst, 10)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:             strings.ToLower(v.GetString(KeyEnv)),
		DatabasePath:    v.GetString(KeyDatabasePath),
		SecretKey:       []byte(v.GetString(KeySecretKey)),
		TokenExpiration: v.GetDuration(KeyTokenExpiration),
		Addr:            v.GetString(KeyAddr),
		LogLevel:        strings.ToLower(v.GetString(KeyLogLevel)),
		LoginRate:       v.GetFloat64(KeyLoginRate),
		LoginBurst:      v.GetInt(KeyLoginBurst),
	}

	if cfg.DatabasePath == "" {
		if cfg.Env == EnvTesting {
			cfg.DatabasePath = ":memory:"
		} else {
			cfg.DatabasePath = DefaultDatabasePath
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
		if cfg.Debug() {
			cfg.LogLevel = "debug"
		}
	}

	if len(cfg.SecretKey) == 0 {
		key, err := RandomSecretKey()
		if err != nil {
			return nil, err
		}
		cfg.SecretKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// RandomSecretKey returns a fresh 24-byte key. Tokens signed with it stop
// verifying once the process exits.
func RandomSecretKey() ([]byte, error) {
	key := make([]byte, secretKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate secret key: %w", err)
	}
	return key, nil
}

func loadDotEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		return nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}
	return nil
}
