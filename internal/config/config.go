package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Supported warehouse drivers.
const (
	DriverSnowflake = "snowflake"
	DriverPostgres  = "postgres"
)

// Config represents the application configuration.
type Config struct {
	Profiles    []Profile   `mapstructure:"profiles" yaml:"profiles"`
	Preferences Preferences `mapstructure:"preferences" yaml:"preferences"`
}

// Profile represents a saved warehouse connection profile. The credential is
// never stored here; it comes from the secret store (see secrets.go).
type Profile struct {
	Name      string `mapstructure:"name" yaml:"name"`
	Driver    string `mapstructure:"driver" yaml:"driver"`
	Account   string `mapstructure:"account" yaml:"account,omitempty"` // snowflake account identifier
	Host      string `mapstructure:"host" yaml:"host,omitempty"`       // postgres only
	Port      int    `mapstructure:"port" yaml:"port,omitempty"`       // postgres only
	User      string `mapstructure:"user" yaml:"user"`
	Role      string `mapstructure:"role" yaml:"role,omitempty"`
	Warehouse string `mapstructure:"warehouse" yaml:"warehouse,omitempty"`
	Database  string `mapstructure:"database" yaml:"database"`
	Schema    string `mapstructure:"schema" yaml:"schema,omitempty"`
	SSLMode   string `mapstructure:"sslmode" yaml:"sslmode,omitempty"`
}

// Preferences holds user preferences.
type Preferences struct {
	Theme          string `mapstructure:"theme" yaml:"theme"`
	DefaultProfile string `mapstructure:"default_profile" yaml:"default_profile"`
}

// Validate checks that every parameter the profile's driver needs is present.
func (p Profile) Validate() error {
	var missing []string

	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	require("name", p.Name)
	require("user", p.User)
	require("database", p.Database)

	switch p.Driver {
	case DriverSnowflake:
		require("account", p.Account)
		require("warehouse", p.Warehouse)
		require("schema", p.Schema)
	case DriverPostgres:
		require("host", p.Host)
	case "":
		missing = append(missing, "driver")
	default:
		return fmt.Errorf("unknown driver %q (want %q or %q)", p.Driver, DriverSnowflake, DriverPostgres)
	}

	if len(missing) > 0 {
		return fmt.Errorf("profile %q: missing required parameters: %s", p.Name, strings.Join(missing, ", "))
	}
	return nil
}

// PostgresDSN builds a PostgreSQL connection string from the profile.
func (p Profile) PostgresDSN(password string) string {
	dsn := "postgresql://"
	if p.User != "" {
		dsn += p.User
		if password != "" {
			dsn += ":" + password
		}
		dsn += "@"
	}
	dsn += p.Host
	if p.Port > 0 {
		dsn += ":" + strconv.Itoa(p.Port)
	}
	dsn += "/" + p.Database
	if p.SSLMode != "" {
		dsn += "?sslmode=" + p.SSLMode
	}
	return dsn
}

// DisplayString returns a human-readable summary of the profile target.
func (p Profile) DisplayString() string {
	switch p.Driver {
	case DriverSnowflake:
		s := p.Account + "/" + p.Database
		if p.Schema != "" {
			s += "." + p.Schema
		}
		if p.Warehouse != "" {
			s += " (" + p.Warehouse + ")"
		}
		return s
	default:
		s := p.Host
		if p.Port > 0 {
			s += ":" + strconv.Itoa(p.Port)
		}
		return s + "/" + p.Database
	}
}

// HasProfile checks if a profile with the given name already exists.
func (cfg *Config) HasProfile(name string) bool {
	for _, p := range cfg.Profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Profile returns the named profile, or nil if it does not exist.
func (cfg *Config) Profile(name string) *Profile {
	for i := range cfg.Profiles {
		if cfg.Profiles[i].Name == name {
			return &cfg.Profiles[i]
		}
	}
	return nil
}
