package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/gitpulse/gitpulse/internal/app"
	"github.com/gitpulse/gitpulse/internal/config"
	"github.com/gitpulse/gitpulse/internal/logging"
	"github.com/gitpulse/gitpulse/internal/metrics"
	"github.com/gitpulse/gitpulse/internal/tui"
	"github.com/gitpulse/gitpulse/internal/warehouse"
	"github.com/gitpulse/gitpulse/internal/warehouse/postgres"
	"github.com/gitpulse/gitpulse/internal/warehouse/snowflake"
)

func main() {
	profileName := flag.String("profile", "", "warehouse profile name from config.yaml (default: preferences.default_profile)")
	auth := flag.Bool("auth", false, "prompt for the warehouse credential and store it in the OS keychain")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	profile := pickProfile(cfg, *profileName)
	if profile == nil {
		configDir, _ := config.Dir()
		log.Fatalf("no warehouse profile configured; add one to %s/config.yaml", configDir)
	}

	// Missing parameters are fatal before any dial is attempted.
	if err := profile.Validate(); err != nil {
		cfgErr := &app.ErrConfig{Cause: err}
		log.Fatal(cfgErr)
	}

	if *auth {
		if err := storeCredential(profile.Name); err != nil {
			log.Fatalf("store credential: %v", err)
		}
		fmt.Printf("Credential stored for profile %q.\n", profile.Name)
		return
	}

	password, err := config.Password(profile.Name)
	if err != nil && profile.Driver == config.DriverSnowflake {
		// Postgres may run without a password (trust/peer auth); Snowflake cannot.
		log.Fatal(&app.ErrConfig{Cause: err})
	}

	configDir, err := config.Dir()
	if err != nil {
		log.Fatalf("config dir: %v", err)
	}
	logger, logCloser, err := logging.New(configDir, *debug)
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer logCloser.Close()

	manager := warehouse.NewManager(opener(*profile, password))
	defer manager.Close()

	service := app.NewService(manager, logger)
	store := metrics.NewStore(service)

	model := tui.NewModel(store, manager, *profile)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("tui exited with error")
		log.Fatalf("Error running program: %v", err)
	}
}

// opener builds the per-driver dial function handed to the connection manager.
func opener(profile config.Profile, password string) warehouse.Opener {
	return func(ctx context.Context) (warehouse.Driver, error) {
		var drv warehouse.Driver
		switch profile.Driver {
		case config.DriverSnowflake:
			drv = snowflake.New(snowflake.Config{
				Account:   profile.Account,
				User:      profile.User,
				Password:  password,
				Role:      profile.Role,
				Warehouse: profile.Warehouse,
				Database:  profile.Database,
				Schema:    profile.Schema,
			})
		case config.DriverPostgres:
			drv = postgres.New(profile.PostgresDSN(password))
		default:
			return nil, &app.ErrConfig{Cause: fmt.Errorf("unknown driver %q", profile.Driver)}
		}

		if err := drv.Connect(ctx); err != nil {
			return nil, fmt.Errorf("open %s: %w", profile.DisplayString(), err)
		}
		return drv, nil
	}
}

func pickProfile(cfg *config.Config, name string) *config.Profile {
	if name != "" {
		return cfg.Profile(name)
	}
	return config.DefaultProfile(cfg)
}

func storeCredential(profileName string) error {
	fmt.Printf("Password for profile %q: ", profileName)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimSpace(string(raw))
	if password == "" {
		return fmt.Errorf("empty password")
	}
	return config.StorePassword(profileName, password)
}
