package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/homeplan/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		var err error
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingEarlyMorningEnabled:
			settings.EarlyMorningEnabled = value == "true"
		case constants.SettingLibraryCacheTTLMin:
			settings.LibraryCacheTTLMin, err = strconv.Atoi(value)
		case constants.SettingRemindersEnabled:
			settings.RemindersEnabled = value == "true"
		case constants.SettingReminderMinutesBefore:
			settings.ReminderMinutesBefore, err = strconv.Atoi(value)
		case constants.SettingQuietHoursEnabled:
			settings.QuietHoursEnabled = value == "true"
		case constants.SettingQuietHoursStart:
			settings.QuietHoursStart = value
		case constants.SettingQuietHoursEnd:
			settings.QuietHoursEnd = value
		case constants.SettingMorningBriefingEnabled:
			settings.MorningBriefingEnabled = value == "true"
		case constants.SettingMorningBriefingTime:
			settings.MorningBriefingTime = value
		case constants.SettingEveningReflectionEnabled:
			settings.EveningReflectionEnabled = value == "true"
		}
		if err != nil {
			return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:                 settings.Timezone,
		constants.SettingEarlyMorningEnabled:      strconv.FormatBool(settings.EarlyMorningEnabled),
		constants.SettingLibraryCacheTTLMin:       strconv.Itoa(settings.LibraryCacheTTLMin),
		constants.SettingRemindersEnabled:         strconv.FormatBool(settings.RemindersEnabled),
		constants.SettingReminderMinutesBefore:    strconv.Itoa(settings.ReminderMinutesBefore),
		constants.SettingQuietHoursEnabled:        strconv.FormatBool(settings.QuietHoursEnabled),
		constants.SettingQuietHoursStart:          settings.QuietHoursStart,
		constants.SettingQuietHoursEnd:            settings.QuietHoursEnd,
		constants.SettingMorningBriefingEnabled:   strconv.FormatBool(settings.MorningBriefingEnabled),
		constants.SettingMorningBriefingTime:      settings.MorningBriefingTime,
		constants.SettingEveningReflectionEnabled: strconv.FormatBool(settings.EveningReflectionEnabled),
	}
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:                 constants.DefaultTimezone,
		EarlyMorningEnabled:      constants.DefaultEarlyMorningEnabled,
		LibraryCacheTTLMin:       constants.DefaultLibraryCacheTTLMin,
		RemindersEnabled:         constants.DefaultRemindersEnabled,
		ReminderMinutesBefore:    constants.DefaultReminderMinutesBefore,
		QuietHoursEnabled:        constants.DefaultQuietHoursEnabled,
		QuietHoursStart:          constants.DefaultQuietHoursStart,
		QuietHoursEnd:            constants.DefaultQuietHoursEnd,
		MorningBriefingEnabled:   constants.DefaultMorningBriefingEnabled,
		MorningBriefingTime:      constants.DefaultMorningBriefingTime,
		EveningReflectionEnabled: constants.DefaultEveningReflectionEnabled,
	}
}

// SetSetting updates a single setting by key, validating the value.
func SetSetting(settings *Settings, key, value string) error {
	current := SettingsToMap(*settings)
	if _, ok := current[key]; !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	current[key] = value
	updated, err := MapToSettings(current)
	if err != nil {
		return err
	}
	*settings = updated
	return nil
}
