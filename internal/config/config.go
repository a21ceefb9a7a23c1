// Package config loads the QuickBite service configuration.
//
// Configuration comes from one YAML file named by the --config flag. Keys that
// are absent keep their defaults, and a missing file means "all defaults". A
// few secrets can also be supplied through the environment so they stay out
// of the file:
//
//	QUICKBITE_JWT_SECRET      overrides auth.jwt_secret
//	QUICKBITE_ADMIN_PASSWORD  overrides auth.admin.password
//	QUICKBITE_DATABASE_DSN    overrides database.dsn
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Menu     MenuConfig     `yaml:"menu"`
	Ordering OrderingConfig `yaml:"ordering"`
	Kitchen  KitchenConfig  `yaml:"kitchen"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig configures the HTTP listeners.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	MetricsPort     int           `yaml:"metrics_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig selects the log level and encoding ("json" or "console").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MenuConfig points at the menu file.
type MenuConfig struct {
	Path string `yaml:"path"`
}

// OrderingConfig bounds the number of orders per pickup slot.
type OrderingConfig struct {
	SlotCapacity int `yaml:"slot_capacity"`
}

// KitchenConfig holds the weights of the ready-time estimate.
type KitchenConfig struct {
	BasePrepMinutes      int `yaml:"base_prep_minutes"`
	MinutesPerItem       int `yaml:"minutes_per_item"`
	MinutesPerOrderAhead int `yaml:"minutes_per_order_ahead"`
}

// AuthConfig configures tokens, password hashing and the seeded administrator.
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
	Admin      AdminConfig   `yaml:"admin"`
}

// AdminConfig describes the administrator account created at startup.
type AdminConfig struct {
	StudentID string `yaml:"student_id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
}

// DatabaseConfig configures the order journal. The journal is off unless
// enabled; the in-memory ledger stays authoritative either way.
type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled"`
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
	LogSQL  bool   `yaml:"log_sql"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			MetricsPort:     9090,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Menu: MenuConfig{
			Path: "data/menu.json",
		},
		Ordering: OrderingConfig{
			SlotCapacity: 125,
		},
		Kitchen: KitchenConfig{
			BasePrepMinutes:      5,
			MinutesPerItem:       2,
			MinutesPerOrderAhead: 2,
		},
		Auth: AuthConfig{
			JWTSecret:  "quickbite-secret-key-for-development",
			TokenTTL:   12 * time.Hour,
			BcryptCost: 10,
			Admin: AdminConfig{
				StudentID: "admin",
				Name:      "Admin User",
				Email:     "admin@school.edu",
				Password:  "admin123",
			},
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "quickbite.db",
		},
	}
}

// Load reads the file at path on top of the defaults and applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("QUICKBITE_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("QUICKBITE_ADMIN_PASSWORD"); v != "" {
		c.Auth.Admin.Password = v
	}
	if v := os.Getenv("QUICKBITE_DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
}

// Validate checks that the configuration can run a server.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.MetricsPort <= 0 {
		return errors.New("config: server ports must be positive")
	}
	if c.Server.Port == c.Server.MetricsPort {
		return errors.New("config: server.port and server.metrics_port must differ")
	}
	if c.Ordering.SlotCapacity <= 0 {
		return errors.New("config: ordering.slot_capacity must be positive")
	}
	if c.Kitchen.BasePrepMinutes < 0 || c.Kitchen.MinutesPerItem < 0 || c.Kitchen.MinutesPerOrderAhead < 0 {
		return errors.New("config: kitchen minutes must not be negative")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("config: auth.token_ttl must be positive")
	}
	if c.Auth.Admin.StudentID == "" || c.Auth.Admin.Password == "" {
		return errors.New("config: auth.admin.student_id and auth.admin.password are required")
	}
	if c.Database.Enabled {
		switch c.Database.Driver {
		case "sqlite3", "postgres":
		default:
			return fmt.Errorf("config: unsupported database.driver %q", c.Database.Driver)
		}
		if c.Database.DSN == "" {
			return errors.New("config: database.dsn is required when the journal is enabled")
		}
	}
	return nil
}

// PrepDurations returns the kitchen weights as durations: base, per item and
// per order ahead.
func (k KitchenConfig) PrepDurations() (base, perItem, perOrderAhead time.Duration) {
	return time.Duration(k.BasePrepMinutes) * time.Minute,
		time.Duration(k.MinutesPerItem) * time.Minute,
		time.Duration(k.MinutesPerOrderAhead) * time.Minute
}
