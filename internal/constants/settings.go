package constants

const (
	// General Settings
	SettingTimezone            = "timezone"
	SettingEarlyMorningEnabled = "early_morning_enabled"
	SettingLibraryCacheTTLMin  = "library_cache_ttl_min"

	// Reminder Settings
	SettingRemindersEnabled         = "reminders_enabled"
	SettingReminderMinutesBefore    = "reminder_minutes_before"
	SettingQuietHoursEnabled        = "quiet_hours_enabled"
	SettingQuietHoursStart          = "quiet_hours_start"
	SettingQuietHoursEnd            = "quiet_hours_end"
	SettingMorningBriefingEnabled   = "morning_briefing_enabled"
	SettingMorningBriefingTime      = "morning_briefing_time"
	SettingEveningReflectionEnabled = "evening_reflection_enabled"

	// Default Settings Values
	DefaultTimezone                 = "Local" // Use system local timezone by default
	DefaultEarlyMorningEnabled      = false
	DefaultLibraryCacheTTLMin       = 10
	DefaultRemindersEnabled         = true
	DefaultReminderMinutesBefore    = 15
	DefaultQuietHoursEnabled        = false
	DefaultQuietHoursStart          = "22:00"
	DefaultQuietHoursEnd            = "07:00"
	DefaultMorningBriefingEnabled   = true
	DefaultMorningBriefingTime      = "07:00"
	DefaultEveningReflectionEnabled = true
	DefaultEveningReflectionTime    = "20:00"
	LatestEveningReflectionTime     = "21:30"
)
