package config

import "testing"

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"port out of range", func(c *Config) { c.HTTP.Port = 70000 }},
		{"missing catalog dir", func(c *Config) { c.Catalog.Dir = "" }},
		{"unknown store driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"redis without addr", func(c *Config) { c.Store.Driver = DriverRedis; c.Store.Redis.Addr = "" }},
		{"sqlite without path", func(c *Config) { c.Store.Driver = DriverSQLite; c.Store.SQLite.Path = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestHTTPAddr(t *testing.T) {
	h := HTTP{Host: "127.0.0.1", Port: 9000}
	if got := h.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", got)
	}
}
