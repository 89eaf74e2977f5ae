package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TimeBlock is a parent-declared availability period.
type TimeBlock string

// TherapyKind identifies a professional therapy discipline.
type TherapyKind string

// Importance ranks a parent priority exercise.
type Importance string

const (
	BlockEarlyMorning TimeBlock = "early_morning"
	BlockMorning      TimeBlock = "morning"
	BlockAfternoon    TimeBlock = "afternoon"
	BlockEvening      TimeBlock = "evening"
	BlockNight        TimeBlock = "night"

	TherapySpeech   TherapyKind = "speech"
	TherapyOT       TherapyKind = "ot"
	TherapyPhysical TherapyKind = "physical"
	TherapyABA      TherapyKind = "aba"
	TherapyCustom   TherapyKind = "custom"

	ImportanceCritical  Importance = "critical"
	ImportanceImportant Importance = "important"
)

// BlockOrder is the order in which blocks are scanned for slots.
var BlockOrder = []TimeBlock{BlockEarlyMorning, BlockMorning, BlockAfternoon, BlockEvening, BlockNight}

// UserProfile is the immutable input to one generation run.
type UserProfile struct {
	ID                    string               `json:"id" yaml:"id"`
	ChildName             string               `json:"child_name,omitempty" yaml:"child_name"`
	ChildAge              int                  `json:"child_age" yaml:"child_age"`
	Concerns              []string             `json:"concerns" yaml:"concerns"`
	Description           string               `json:"description,omitempty" yaml:"description"` // free text used for needs detection
	DailyRoutine          DailyRoutine         `json:"daily_routine" yaml:"daily_routine"`
	SchoolSchedule        SchoolSchedule       `json:"school_schedule" yaml:"school_schedule"`
	ProfessionalTherapies []TherapySession     `json:"professional_therapies" yaml:"professional_therapies"`
	AdditionalTherapies   []TherapySession     `json:"additional_therapies" yaml:"additional_therapies"`
	ParentAvailability    ParentAvailability   `json:"parent_availability" yaml:"parent_availability"`
	PriorityExercises     []PriorityExercise   `json:"priority_exercises" yaml:"priority_exercises"`
	PrescribedExercises   []PrescribedExercise `json:"therapist_prescribed_exercises" yaml:"therapist_prescribed_exercises"`
	CreatedAt             time.Time            `json:"created_at" yaml:"-"`
	UpdatedAt             time.Time            `json:"updated_at" yaml:"-"`
}

// DailyRoutine holds the fixed daily anchors. Empty strings mean unset.
type DailyRoutine struct {
	BreakfastTime string `json:"breakfast_time" yaml:"breakfast_time"`
	LunchTime     string `json:"lunch_time" yaml:"lunch_time"`
	DinnerTime    string `json:"dinner_time" yaml:"dinner_time"`
	Bedtime       string `json:"bedtime" yaml:"bedtime"`
}

type SchoolSchedule struct {
	HasSchool bool       `json:"has_school" yaml:"has_school"`
	StartTime string     `json:"start_time" yaml:"start_time"`
	EndTime   string     `json:"end_time" yaml:"end_time"`
	Days      WeekdaySet `json:"days" yaml:"days"`
}

// Attends reports whether d is one of the declared school days, weekends
// included.
func (s SchoolSchedule) Attends(d time.Weekday) bool {
	return s.HasSchool && s.Days.Contains(d)
}

// IsSchoolDay reports whether d uses the school-day slot layout. Weekends
// always use the weekend layout.
func (s SchoolSchedule) IsSchoolDay(d time.Weekday) bool {
	return s.Attends(d) && !IsWeekend(d)
}

// TherapySession is a recurring professional or additional therapy.
type TherapySession struct {
	Kind          TherapyKind     `json:"kind" yaml:"kind"`
	Name          string          `json:"name,omitempty" yaml:"name"`
	Enabled       bool            `json:"enabled" yaml:"enabled"`
	StartTime     string          `json:"start_time" yaml:"start_time"`
	DurationHours decimal.Decimal `json:"duration_hours" yaml:"duration_hours"`
	Days          WeekdaySet      `json:"days" yaml:"days"`
}

// DurationMinutes returns the session length, defaulting to one hour.
func (s TherapySession) DurationMinutes() int {
	if !s.DurationHours.IsPositive() {
		return 60
	}
	return int(s.DurationHours.Mul(decimal.NewFromInt(60)).Round(0).IntPart())
}

// Availability is the parent's capacity for one period type.
type Availability struct {
	Hours  decimal.Decimal `json:"hours" yaml:"hours"`
	Blocks []TimeBlock     `json:"blocks" yaml:"blocks"`
}

// HasBlock reports whether b was selected.
func (a Availability) HasBlock(b TimeBlock) bool {
	for _, block := range a.Blocks {
		if block == b {
			return true
		}
	}
	return false
}

type ParentAvailability struct {
	Weekday Availability `json:"weekday" yaml:"weekday"`
	Weekend Availability `json:"weekend" yaml:"weekend"`
}

// For returns the availability that applies on d.
func (p ParentAvailability) For(d time.Weekday) Availability {
	if IsWeekend(d) {
		return p.Weekend
	}
	return p.Weekday
}

// WeeklyHours returns the total declared parent hours for one week.
func (p ParentAvailability) WeeklyHours() decimal.Decimal {
	return p.Weekday.Hours.Mul(decimal.NewFromInt(5)).Add(p.Weekend.Hours.Mul(decimal.NewFromInt(2)))
}

type PriorityExercise struct {
	Name            string     `json:"name" yaml:"name"`
	DurationMinutes int        `json:"duration_minutes" yaml:"duration_minutes"`
	Importance      Importance `json:"importance" yaml:"importance"`
	Instructions    string     `json:"instructions,omitempty" yaml:"instructions"`
}

// PrescribedExercise is a therapist-assigned exercise, usually imported
// from the therapist's own records.
type PrescribedExercise struct {
	Name            string `json:"name" yaml:"name"`
	Type            string `json:"type" yaml:"type"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
	FrequencyPerDay int    `json:"frequency_per_day" yaml:"frequency_per_day"`
	Instructions    string `json:"instructions,omitempty" yaml:"instructions"`
	Tools           string `json:"tools,omitempty" yaml:"tools"`
	HowTo           string `json:"how_to,omitempty" yaml:"how_to"`
}

// Validate checks the structural fields of a profile. Missing times are
// allowed; malformed ones are not.
func (p *UserProfile) Validate() error {
	if p.ChildAge < 0 || p.ChildAge > 21 {
		return fmt.Errorf("child age must be between 0 and 21, got %d", p.ChildAge)
	}
	times := [][2]string{
		{"breakfast_time", p.DailyRoutine.BreakfastTime},
		{"lunch_time", p.DailyRoutine.LunchTime},
		{"dinner_time", p.DailyRoutine.DinnerTime},
		{"bedtime", p.DailyRoutine.Bedtime},
		{"school start_time", p.SchoolSchedule.StartTime},
		{"school end_time", p.SchoolSchedule.EndTime},
	}
	for _, field := range times {
		if field[1] == "" {
			continue
		}
		if _, err := time.Parse("15:04", field[1]); err != nil {
			return fmt.Errorf("invalid %s %q (expected HH:MM)", field[0], field[1])
		}
	}
	for i, s := range append(append([]TherapySession{}, p.ProfessionalTherapies...), p.AdditionalTherapies...) {
		if s.StartTime != "" {
			if _, err := time.Parse("15:04", s.StartTime); err != nil {
				return fmt.Errorf("therapy %d: invalid start_time %q (expected HH:MM)", i+1, s.StartTime)
			}
		}
		if s.DurationHours.IsNegative() {
			return fmt.Errorf("therapy %d: duration_hours cannot be negative", i+1)
		}
	}
	for _, a := range []Availability{p.ParentAvailability.Weekday, p.ParentAvailability.Weekend} {
		if a.Hours.IsNegative() {
			return fmt.Errorf("parent hours cannot be negative")
		}
		for _, b := range a.Blocks {
			if !validBlock(b) {
				return fmt.Errorf("invalid time block %q", b)
			}
		}
	}
	for _, e := range p.PriorityExercises {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("priority exercise name cannot be empty")
		}
	}
	return nil
}

func validBlock(b TimeBlock) bool {
	for _, known := range BlockOrder {
		if b == known {
			return true
		}
	}
	return false
}

// Label returns the display name used in conflict reasons and reports.
func (s TherapySession) Label() string {
	switch s.Kind {
	case TherapySpeech:
		return "Speech"
	case TherapyOT:
		return "OT"
	case TherapyPhysical:
		return "Physical"
	case TherapyABA:
		return "ABA"
	}
	if strings.TrimSpace(s.Name) == "" {
		return "Custom"
	}
	return cases.Title(language.English).String(strings.TrimSpace(s.Name))
}
