package settings

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/constants"
	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/utils"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"List current settings."`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	ctx.Println("Current Settings:")
	ctx.Printf("  Timezone:              %s\n", s.Timezone)
	ctx.Printf("  Early Morning Block:   %v\n", s.EarlyMorningEnabled)
	ctx.Printf("  Library Cache TTL:     %d min\n", s.LibraryCacheTTLMin)
	ctx.Println("\nReminder Settings:")
	ctx.Printf("  Reminders Enabled:     %v\n", s.RemindersEnabled)
	ctx.Printf("  Minutes Before:        %d min\n", s.ReminderMinutesBefore)
	ctx.Printf("  Quiet Hours:           %v (%s-%s)\n", s.QuietHoursEnabled, s.QuietHoursStart, s.QuietHoursEnd)
	ctx.Printf("  Morning Briefing:      %v (%s)\n", s.MorningBriefingEnabled, s.MorningBriefingTime)
	ctx.Printf("  Evening Reflection:    %v\n", s.EveningReflectionEnabled)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key, e.g. quiet_hours_start."`
	Value string `arg:"" help:"New value."`
}

var timeKeys = []string{
	constants.SettingQuietHoursStart,
	constants.SettingQuietHoursEnd,
	constants.SettingMorningBriefingTime,
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	key := strings.ToLower(strings.TrimSpace(c.Key))
	value := strings.TrimSpace(c.Value)
	switch {
	case key == constants.SettingTimezone && !utils.ValidateTimezone(value):
		return fmt.Errorf("invalid timezone %q", value)
	case slices.Contains(timeKeys, key) && !utils.ValidateTimeFormat(value):
		return fmt.Errorf("invalid time %q for %s (expected HH:MM)", value, key)
	}

	if err := models.SetSetting(&s, key, value); err != nil {
		known := slices.Sorted(maps.Keys(models.SettingsToMap(s)))
		return fmt.Errorf("%w (known settings: %s)", err, strings.Join(known, ", "))
	}
	if s.ReminderMinutesBefore < 0 || s.LibraryCacheTTLMin < 0 {
		return fmt.Errorf("%s cannot be negative", key)
	}

	if err := ctx.Store.SaveSettings(s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
