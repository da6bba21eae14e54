// Package config holds the server runtime configuration. Values arrive from
// CLI flags and environment variables; validation happens once at startup so
// a misconfigured process fails fast instead of limping.
package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Store drivers accepted by the --store-driver flag.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// HTTP configures the API listener.
type HTTP struct {
	Host string
	Port int
}

// Addr returns the listen address in host:port form.
func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// Catalog configures template loading.
type Catalog struct {
	Dir   string
	Watch bool
}

// Redis configures the redis-backed document store.
type Redis struct {
	Addr string
	DB   int
}

// SQLite configures the sqlite-backed document store.
type SQLite struct {
	Path string
}

// Store selects and configures document persistence.
type Store struct {
	Driver string
	Redis  Redis
	SQLite SQLite
}

// Config is the full server configuration.
type Config struct {
	LogLevel       string
	HTTP           HTTP
	Catalog        Catalog
	Store          Store
	AllowedOrigins []string
}

// Default returns the configuration used when no flags are set.
func Default() Config {
	return Config{
		LogLevel: "info",
		HTTP:     HTTP{Host: "0.0.0.0", Port: 8080},
		Catalog:  Catalog{Dir: "./templates", Watch: true},
		Store: Store{
			Driver: DriverMemory,
			Redis:  Redis{Addr: "localhost:6379"},
			SQLite: SQLite{Path: "./docforge.db"},
		},
	}
}

// Validate checks the configuration is internally consistent.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&c.HTTP,
		validation.Field(&c.HTTP.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := validation.ValidateStruct(&c.Catalog,
		validation.Field(&c.Catalog.Dir, validation.Required),
	); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return c.Store.validate()
}

func (s Store) validate() error {
	if err := validation.ValidateStruct(&s,
		validation.Field(&s.Driver, validation.Required, validation.In(DriverMemory, DriverRedis, DriverSQLite)),
	); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	switch s.Driver {
	case DriverRedis:
		if err := validation.ValidateStruct(&s.Redis,
			validation.Field(&s.Redis.Addr, validation.Required, is.DialString),
		); err != nil {
			return fmt.Errorf("store redis: %w", err)
		}
	case DriverSQLite:
		if err := validation.ValidateStruct(&s.SQLite,
			validation.Field(&s.SQLite.Path, validation.Required),
		); err != nil {
			return fmt.Errorf("store sqlite: %w", err)
		}
	}
	return nil
}
