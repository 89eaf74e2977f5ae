package models

// Settings represents application-wide settings
type Settings struct {
	Timezone                 string `json:"timezone"`                   // IANA timezone name, or "Local"
	EarlyMorningEnabled      bool   `json:"early_morning_enabled"`      // whether the early morning block produces slots
	LibraryCacheTTLMin       int    `json:"library_cache_ttl_min"`      // how long library lookups are cached
	RemindersEnabled         bool   `json:"reminders_enabled"`          // whether exercise reminders are planned
	ReminderMinutesBefore    int    `json:"reminder_minutes_before"`    // lead time for exercise reminders
	QuietHoursEnabled        bool   `json:"quiet_hours_enabled"`        // whether reminders inside quiet hours are dropped
	QuietHoursStart          string `json:"quiet_hours_start"`          // e.g. "22:00"
	QuietHoursEnd            string `json:"quiet_hours_end"`            // e.g. "07:00", may wrap past midnight
	MorningBriefingEnabled   bool   `json:"morning_briefing_enabled"`   // whether a daily briefing is planned
	MorningBriefingTime      string `json:"morning_briefing_time"`      // e.g. "07:00"
	EveningReflectionEnabled bool   `json:"evening_reflection_enabled"` // whether an evening reflection prompt is planned
}
