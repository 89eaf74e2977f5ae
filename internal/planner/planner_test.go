package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/scheduler"
	"github.com/julianstephens/homeplan/internal/storage"
	"github.com/julianstephens/homeplan/internal/testutil"
)

func TestGenerate_PersistsResult(t *testing.T) {
	store := testutil.SeededStore(t, "p1")
	svc := New(store)
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) }

	out, err := svc.Generate(context.Background(), "p1", Options{Environment: "test"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !out.Saved {
		t.Error("result should be saved")
	}
	if out.Result.TotalScheduled == 0 {
		t.Fatal("expected exercises to be scheduled")
	}
	if !out.Result.GeneratedAt.Equal(svc.now()) {
		t.Errorf("GeneratedAt = %v, want injected clock", out.Result.GeneratedAt)
	}

	stored, p, err := svc.Latest("p1")
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if stored.RunID != out.Result.RunID {
		t.Errorf("stored run %q, want %q", stored.RunID, out.Result.RunID)
	}
	if p.ChildName != "Ava" {
		t.Errorf("Latest returned profile %q", p.ChildName)
	}
}

func TestGenerate_PrescribedExercisesComeFirst(t *testing.T) {
	store := testutil.SeededStore(t, "p1")
	out, err := New(store).Generate(context.Background(), "p1", Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, day := range models.ScheduleWeekOrder {
		if exercises := out.Result.Schedule[day]; len(exercises) > 0 {
			if exercises[0].Source != models.SourceTherapistAssigned {
				t.Errorf("first exercise of the week has source %q, want therapist assigned", exercises[0].Source)
			}
			return
		}
	}
	t.Fatal("no exercises scheduled")
}

func TestGenerate_BlockedByValidation(t *testing.T) {
	store := testutil.Store(t)
	p := testutil.Profile("p1")
	p.ParentAvailability.Weekday.Hours = decimal.Zero
	p.ParentAvailability.Weekend.Hours = decimal.Zero
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	svc := New(store)

	out, err := svc.Generate(context.Background(), "p1", Options{})
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("Generate error = %v, want ErrInvalidProfile", err)
	}
	if out.Validation.IsValid() {
		t.Error("validation result should carry the blocking issue")
	}

	// Forcing past validation still finds nothing to schedule.
	out, err = svc.Generate(context.Background(), "p1", Options{Force: true})
	if !errors.Is(err, scheduler.ErrNothingScheduled) {
		t.Fatalf("forced Generate error = %v, want ErrNothingScheduled", err)
	}
	if out.Saved {
		t.Error("an empty week must not be saved")
	}
	if _, err := store.GetGeneration("p1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetGeneration error = %v, want ErrNotFound", err)
	}
}

func TestGenerate_UnknownProfile(t *testing.T) {
	svc := New(testutil.Store(t))
	if _, err := svc.Generate(context.Background(), "missing", Options{}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Generate error = %v, want ErrNotFound", err)
	}
}

func TestGenerate_EarlyMorningSetting(t *testing.T) {
	store := testutil.Store(t)
	p := testutil.Profile("p1")
	p.ParentAvailability.Weekend.Blocks = []models.TimeBlock{models.BlockEarlyMorning}
	p.ParentAvailability.Weekday.Blocks = []models.TimeBlock{models.BlockEarlyMorning}
	p.ProfessionalTherapies = nil
	p.DailyRoutine.BreakfastTime = "08:00"
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	svc := New(store)

	if _, err := svc.Generate(context.Background(), "p1", Options{}); !errors.Is(err, scheduler.ErrNothingScheduled) {
		t.Fatalf("with the block disabled, Generate error = %v, want ErrNothingScheduled", err)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	settings.EarlyMorningEnabled = true
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	out, err := svc.Generate(context.Background(), "p1", Options{})
	if err != nil {
		t.Fatalf("Generate with early morning enabled failed: %v", err)
	}
	for _, day := range models.ScheduleWeekOrder {
		for _, e := range out.Result.Schedule[day] {
			if e.Period != models.BlockEarlyMorning {
				t.Errorf("%s %s scheduled in %s", day, e.Time, e.Period)
			}
		}
	}
}
