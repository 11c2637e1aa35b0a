package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Profiles)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	want := &Config{
		Profiles: []Profile{
			{
				Name:      "prod",
				Driver:    DriverSnowflake,
				Account:   "acme-eu",
				User:      "dashboard",
				Role:      "ANALYST",
				Warehouse: "REPORTING_WH",
				Database:  "ANALYTICS",
				Schema:    "ENG_METRICS",
			},
			{
				Name:     "local",
				Driver:   DriverPostgres,
				Host:     "localhost",
				Port:     5432,
				User:     "dev",
				Database: "metrics",
				SSLMode:  "disable",
			},
		},
		Preferences: Preferences{
			Theme:          "default",
			DefaultProfile: "prod",
		},
	}

	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)

	require.Len(t, got.Profiles, 2)
	assert.Equal(t, want.Profiles[0], got.Profiles[0])
	assert.Equal(t, want.Profiles[1], got.Profiles[1])
	assert.Equal(t, "prod", got.Preferences.DefaultProfile)
}

func TestDefaultProfile(t *testing.T) {
	cfg := &Config{
		Profiles: []Profile{
			{Name: "a"},
			{Name: "b"},
		},
	}

	// No preference: first profile wins.
	assert.Equal(t, "a", DefaultProfile(cfg).Name)

	cfg.Preferences.DefaultProfile = "b"
	assert.Equal(t, "b", DefaultProfile(cfg).Name)

	// Dangling preference falls back to the first profile.
	cfg.Preferences.DefaultProfile = "missing"
	assert.Equal(t, "a", DefaultProfile(cfg).Name)

	assert.Nil(t, DefaultProfile(&Config{}))
}

func TestPasswordEnvOverride(t *testing.T) {
	t.Setenv(EnvPassword, "from-env")

	pw, err := Password("prod")
	require.NoError(t, err)
	assert.Equal(t, "from-env", pw)
}
