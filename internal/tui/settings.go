package tui

import (
	"strings"

	"github.com/gitpulse/gitpulse/internal/config"
	"github.com/gitpulse/gitpulse/internal/tui/theme"
)

// settingsModel renders the active profile and pointers to the config files.
type settingsModel struct {
	profile config.Profile
}

func newSettingsModel(profile config.Profile) settingsModel {
	return settingsModel{profile: profile}
}

func (v *settingsModel) view(width int) string {
	var sb strings.Builder

	sb.WriteString(theme.StyleTitle.Render("Settings & About"))
	sb.WriteString("\n\n")

	sb.WriteString(theme.StyleSection.Render("Active Profile"))
	sb.WriteString("\n")

	field := func(name, value string) {
		if value == "" {
			value = "—"
		}
		sb.WriteString(theme.StyleMuted.Render(padLabel(name, 10)))
		sb.WriteString(" ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	field("name", v.profile.Name)
	field("driver", v.profile.Driver)
	field("target", v.profile.DisplayString())
	field("user", v.profile.User)
	field("role", v.profile.Role)

	configDir, err := config.Dir()
	if err == nil {
		sb.WriteString("\n")
		sb.WriteString(theme.StyleSection.Render("Files"))
		sb.WriteString("\n")
		field("config", configDir + "/config.yaml")
		field("log", configDir + "/gitpulse.log")
	}

	sb.WriteString("\n")
	sb.WriteString(theme.StyleSection.Render("About"))
	sb.WriteString("\n")
	sb.WriteString(theme.StyleMuted.Render(
		"gitpulse reads pre-modeled metric tables (dbt + warehouse) and renders\n" +
			"repo velocity, reviewer load, PR review summaries and DORA metrics.\n" +
			"All aggregation happens upstream; this client only runs SELECTs."))
	sb.WriteString("\n")

	return sb.String()
}
