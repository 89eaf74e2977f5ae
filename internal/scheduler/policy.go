package scheduler

import "cmp"

// Policy holds the scheduling constants. Every field can be overridden
// from a profile file; zero values are replaced by DefaultPolicy's.
type Policy struct {
	// Conflict buffers (minutes)
	BreakfastPrepMin int    `yaml:"breakfast_prep_min" json:"breakfast_prep_min"`
	LunchPrepMin     int    `yaml:"lunch_prep_min" json:"lunch_prep_min"`
	DinnerPrepMin    int    `yaml:"dinner_prep_min" json:"dinner_prep_min"`
	DigestionMin     int    `yaml:"digestion_min" json:"digestion_min"`
	WindDownMin      int    `yaml:"wind_down_min" json:"wind_down_min"`
	NapMaxAge        int    `yaml:"nap_max_age" json:"nap_max_age"` // nap applies below this age
	NapStart         string `yaml:"nap_start" json:"nap_start"`
	NapEnd           string `yaml:"nap_end" json:"nap_end"`

	// Slot generation
	SlotStrideMin      int `yaml:"slot_stride_min" json:"slot_stride_min"`
	SlotMinLengthMin   int `yaml:"slot_min_length_min" json:"slot_min_length_min"`
	QuotaUnitMin       int `yaml:"quota_unit_min" json:"quota_unit_min"`
	DefaultExerciseMin int `yaml:"default_exercise_min" json:"default_exercise_min"`
	BreakMin           int `yaml:"break_min" json:"break_min"`

	// Early morning block (off unless enabled)
	EarlyMorningEnabled         bool   `yaml:"early_morning_enabled" json:"early_morning_enabled"`
	EarlyMorningStart           string `yaml:"early_morning_start" json:"early_morning_start"`
	EarlyMorningCeiling         string `yaml:"early_morning_ceiling" json:"early_morning_ceiling"`
	EarlyMorningBeforeBreakfast int    `yaml:"early_morning_before_breakfast_min" json:"early_morning_before_breakfast_min"`

	// Morning block
	MorningFloor          string `yaml:"morning_floor" json:"morning_floor"`
	MorningCeiling        string `yaml:"morning_ceiling" json:"morning_ceiling"`
	MorningAfterBreakfast int    `yaml:"morning_after_breakfast_min" json:"morning_after_breakfast_min"`
	MorningBeforeLunch    int    `yaml:"morning_before_lunch_min" json:"morning_before_lunch_min"`

	// Afternoon block
	AfterSchoolGap        int    `yaml:"after_school_gap_min" json:"after_school_gap_min"`
	AfterSchoolFloor      string `yaml:"after_school_floor" json:"after_school_floor"`
	AfterSchoolCeiling    string `yaml:"after_school_ceiling" json:"after_school_ceiling"`
	SchoolDayBeforeDinner int    `yaml:"school_day_before_dinner_min" json:"school_day_before_dinner_min"`
	AfternoonAfterLunch   int    `yaml:"afternoon_after_lunch_min" json:"afternoon_after_lunch_min"`
	AfternoonCeiling      string `yaml:"afternoon_ceiling" json:"afternoon_ceiling"`
	AfternoonBeforeDinner int    `yaml:"afternoon_before_dinner_min" json:"afternoon_before_dinner_min"`

	// Evening block
	EveningStartSchoolDay string `yaml:"evening_start_school_day" json:"evening_start_school_day"`
	EveningStart          string `yaml:"evening_start" json:"evening_start"`
	EveningBeforeDinner   int    `yaml:"evening_before_dinner_min" json:"evening_before_dinner_min"`

	// Night block
	NightAfterDinner int `yaml:"night_after_dinner_min" json:"night_after_dinner_min"`
	NightBeforeBed   int `yaml:"night_before_bed_min" json:"night_before_bed_min"`

	// Anchors assumed by slot discovery when the routine leaves them unset
	DefaultBreakfast string `yaml:"default_breakfast" json:"default_breakfast"`
	DefaultLunch     string `yaml:"default_lunch" json:"default_lunch"`
	DefaultDinner    string `yaml:"default_dinner" json:"default_dinner"`
	DefaultBedtime   string `yaml:"default_bedtime" json:"default_bedtime"`
	DefaultSchoolEnd string `yaml:"default_school_end" json:"default_school_end"`
}

// DefaultPolicy returns the standard constants.
func DefaultPolicy() Policy {
	return Policy{
		BreakfastPrepMin: 30,
		LunchPrepMin:     30,
		DinnerPrepMin:    45,
		DigestionMin:     60,
		WindDownMin:      30,
		NapMaxAge:        5,
		NapStart:         "13:00",
		NapEnd:           "15:00",

		SlotStrideMin:      20,
		SlotMinLengthMin:   15,
		QuotaUnitMin:       15,
		DefaultExerciseMin: 15,
		BreakMin:           10,

		EarlyMorningEnabled:         false,
		EarlyMorningStart:           "06:00",
		EarlyMorningCeiling:         "08:00",
		EarlyMorningBeforeBreakfast: 30,

		MorningFloor:          "09:30",
		MorningCeiling:        "11:30",
		MorningAfterBreakfast: 90,
		MorningBeforeLunch:    30,

		AfterSchoolGap:        45,
		AfterSchoolFloor:      "15:30",
		AfterSchoolCeiling:    "17:30",
		SchoolDayBeforeDinner: 45,
		AfternoonAfterLunch:   60,
		AfternoonCeiling:      "16:00",
		AfternoonBeforeDinner: 60,

		EveningStartSchoolDay: "17:30",
		EveningStart:          "16:00",
		EveningBeforeDinner:   45,

		NightAfterDinner: 60,
		NightBeforeBed:   45,

		DefaultBreakfast: "08:00",
		DefaultLunch:     "12:30",
		DefaultDinner:    "19:00",
		DefaultBedtime:   "22:15",
		DefaultSchoolEnd: "14:30",
	}
}

// WithDefaults fills every zero field from DefaultPolicy. The early
// morning flag is kept as is.
func (p Policy) WithDefaults() Policy {
	d := DefaultPolicy()
	p.BreakfastPrepMin = cmp.Or(p.BreakfastPrepMin, d.BreakfastPrepMin)
	p.LunchPrepMin = cmp.Or(p.LunchPrepMin, d.LunchPrepMin)
	p.DinnerPrepMin = cmp.Or(p.DinnerPrepMin, d.DinnerPrepMin)
	p.DigestionMin = cmp.Or(p.DigestionMin, d.DigestionMin)
	p.WindDownMin = cmp.Or(p.WindDownMin, d.WindDownMin)
	p.NapMaxAge = cmp.Or(p.NapMaxAge, d.NapMaxAge)
	p.NapStart = cmp.Or(p.NapStart, d.NapStart)
	p.NapEnd = cmp.Or(p.NapEnd, d.NapEnd)
	p.SlotStrideMin = cmp.Or(p.SlotStrideMin, d.SlotStrideMin)
	p.SlotMinLengthMin = cmp.Or(p.SlotMinLengthMin, d.SlotMinLengthMin)
	p.QuotaUnitMin = cmp.Or(p.QuotaUnitMin, d.QuotaUnitMin)
	p.DefaultExerciseMin = cmp.Or(p.DefaultExerciseMin, d.DefaultExerciseMin)
	p.BreakMin = cmp.Or(p.BreakMin, d.BreakMin)
	p.EarlyMorningStart = cmp.Or(p.EarlyMorningStart, d.EarlyMorningStart)
	p.EarlyMorningCeiling = cmp.Or(p.EarlyMorningCeiling, d.EarlyMorningCeiling)
	p.EarlyMorningBeforeBreakfast = cmp.Or(p.EarlyMorningBeforeBreakfast, d.EarlyMorningBeforeBreakfast)
	p.MorningFloor = cmp.Or(p.MorningFloor, d.MorningFloor)
	p.MorningCeiling = cmp.Or(p.MorningCeiling, d.MorningCeiling)
	p.MorningAfterBreakfast = cmp.Or(p.MorningAfterBreakfast, d.MorningAfterBreakfast)
	p.MorningBeforeLunch = cmp.Or(p.MorningBeforeLunch, d.MorningBeforeLunch)
	p.AfterSchoolGap = cmp.Or(p.AfterSchoolGap, d.AfterSchoolGap)
	p.AfterSchoolFloor = cmp.Or(p.AfterSchoolFloor, d.AfterSchoolFloor)
	p.AfterSchoolCeiling = cmp.Or(p.AfterSchoolCeiling, d.AfterSchoolCeiling)
	p.SchoolDayBeforeDinner = cmp.Or(p.SchoolDayBeforeDinner, d.SchoolDayBeforeDinner)
	p.AfternoonAfterLunch = cmp.Or(p.AfternoonAfterLunch, d.AfternoonAfterLunch)
	p.AfternoonCeiling = cmp.Or(p.AfternoonCeiling, d.AfternoonCeiling)
	p.AfternoonBeforeDinner = cmp.Or(p.AfternoonBeforeDinner, d.AfternoonBeforeDinner)
	p.EveningStartSchoolDay = cmp.Or(p.EveningStartSchoolDay, d.EveningStartSchoolDay)
	p.EveningStart = cmp.Or(p.EveningStart, d.EveningStart)
	p.EveningBeforeDinner = cmp.Or(p.EveningBeforeDinner, d.EveningBeforeDinner)
	p.NightAfterDinner = cmp.Or(p.NightAfterDinner, d.NightAfterDinner)
	p.NightBeforeBed = cmp.Or(p.NightBeforeBed, d.NightBeforeBed)
	p.DefaultBreakfast = cmp.Or(p.DefaultBreakfast, d.DefaultBreakfast)
	p.DefaultLunch = cmp.Or(p.DefaultLunch, d.DefaultLunch)
	p.DefaultDinner = cmp.Or(p.DefaultDinner, d.DefaultDinner)
	p.DefaultBedtime = cmp.Or(p.DefaultBedtime, d.DefaultBedtime)
	p.DefaultSchoolEnd = cmp.Or(p.DefaultSchoolEnd, d.DefaultSchoolEnd)
	return p
}

// Resolve merges an optional per-profile override over the defaults. The
// early morning block is on when either the override or the global
// setting enables it.
func Resolve(override *Policy, earlyMorning bool) Policy {
	pol := DefaultPolicy()
	if override != nil {
		pol = override.WithDefaults()
	}
	pol.EarlyMorningEnabled = pol.EarlyMorningEnabled || earlyMorning
	return pol
}
