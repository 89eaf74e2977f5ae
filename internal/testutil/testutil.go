// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/storage/sqlite"
)

// Profile returns a school-age child with school, two therapies, a
// priority exercise list and availability on most blocks. It passes
// validation and schedules exercises on every day.
func Profile(id string) models.UserProfile {
	return models.UserProfile{
		ID:          id,
		ChildName:   "Ava",
		ChildAge:    6,
		Concerns:    []string{"speech", "physical"},
		Description: "She struggles with pronunciation and balance on the stairs.",
		DailyRoutine: models.DailyRoutine{
			BreakfastTime: "07:30",
			LunchTime:     "12:00",
			DinnerTime:    "18:30",
			Bedtime:       "21:00",
		},
		SchoolSchedule: models.SchoolSchedule{
			HasSchool: true,
			StartTime: "08:30",
			EndTime:   "14:30",
			Days:      models.WeekdaySet{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		},
		ProfessionalTherapies: []models.TherapySession{
			{Kind: models.TherapySpeech, Enabled: true, StartTime: "16:00", DurationHours: decimal.NewFromInt(1), Days: models.WeekdaySet{time.Tuesday}},
			{Kind: models.TherapyPhysical, Enabled: true, StartTime: "10:00", DurationHours: decimal.RequireFromString("0.5"), Days: models.WeekdaySet{time.Saturday}},
		},
		ParentAvailability: models.ParentAvailability{
			Weekday: models.Availability{
				Hours:  decimal.NewFromInt(1),
				Blocks: []models.TimeBlock{models.BlockAfternoon, models.BlockEvening, models.BlockNight},
			},
			Weekend: models.Availability{
				Hours:  decimal.RequireFromString("1.5"),
				Blocks: []models.TimeBlock{models.BlockMorning, models.BlockAfternoon},
			},
		},
		PriorityExercises: []models.PriorityExercise{
			{Name: "Straw drinking", DurationMinutes: 10, Importance: models.ImportanceImportant},
			{Name: "Balance beam", DurationMinutes: 15, Importance: models.ImportanceCritical},
		},
		PrescribedExercises: []models.PrescribedExercise{
			{Name: "Lip trills", Type: "Speech", DurationMinutes: 5, FrequencyPerDay: 1},
		},
	}
}

// Store returns an initialized SQLite store in a temporary directory that
// is closed when the test ends.
func Store(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "homeplan.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

// SeededStore returns a Store holding Profile(id).
func SeededStore(t *testing.T, id string) *sqlite.Store {
	t.Helper()
	store := Store(t)
	if err := store.SaveProfile(Profile(id)); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
	return store
}
