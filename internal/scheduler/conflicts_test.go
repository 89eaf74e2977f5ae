package scheduler

import (
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/homeplan/internal/models"
)

func conflictProfile() models.UserProfile {
	return models.UserProfile{
		ChildAge: 7,
		DailyRoutine: models.DailyRoutine{
			BreakfastTime: "08:00",
			LunchTime:     "12:00",
			DinnerTime:    "18:00",
			Bedtime:       "20:30",
		},
		SchoolSchedule: models.SchoolSchedule{
			HasSchool: true,
			StartTime: "08:30",
			EndTime:   "14:30",
			Days:      models.WeekdaySet{time.Monday, time.Wednesday},
		},
		ProfessionalTherapies: []models.TherapySession{
			{
				Kind:          models.TherapySpeech,
				Enabled:       true,
				StartTime:     "16:00",
				DurationHours: decimal.RequireFromString("1.5"),
				Days:          models.WeekdaySet{time.Tuesday},
			},
			{
				Kind:      models.TherapyOT,
				Enabled:   false,
				StartTime: "16:00",
				Days:      models.WeekdaySet{time.Tuesday},
			},
		},
		AdditionalTherapies: []models.TherapySession{
			{
				Kind:      models.TherapyCustom,
				Name:      "Hippotherapy",
				Enabled:   true,
				StartTime: "10:00",
				Days:      models.WeekdaySet{time.Saturday},
			},
		},
	}
}

func TestDetectConflicts_MealBuffers(t *testing.T) {
	p := conflictProfile()
	pol := DefaultPolicy()

	tests := []struct {
		name      string
		candidate string
		want      string
		wantNone  bool
	}{
		{name: "breakfast prep", candidate: "07:40", want: "Breakfast prep time"},
		{name: "breakfast prep boundary", candidate: "07:30", want: "Breakfast prep time"},
		{name: "breakfast digestion", candidate: "08:15", want: "Digestion time after Breakfast"},
		{name: "after breakfast digestion", candidate: "09:30", wantNone: true},
		{name: "dinner prep is 45 minutes", candidate: "17:15", want: "Dinner prep time"},
		{name: "before dinner prep", candidate: "17:10", wantNone: true},
		{name: "lunch digestion", candidate: "12:59", want: "Digestion time after Lunch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons := DetectConflicts(time.Sunday, tt.candidate, p, pol)
			if tt.wantNone {
				for _, r := range reasons {
					if r == "Breakfast prep time" || r == "Digestion time after Breakfast" || r == "Dinner prep time" {
						t.Errorf("expected no meal conflict at %s, got %v", tt.candidate, reasons)
					}
				}
				return
			}
			if !slices.Contains(reasons, tt.want) {
				t.Errorf("DetectConflicts(%s) = %v, want it to contain %q", tt.candidate, reasons, tt.want)
			}
		})
	}
}

func TestDetectConflicts_MealTimeIsBothPrepAndDigestion(t *testing.T) {
	reasons := DetectConflicts(time.Sunday, "08:00", conflictProfile(), DefaultPolicy())
	want := []string{"Breakfast prep time", "Digestion time after Breakfast"}
	if !slices.Equal(reasons, want) {
		t.Errorf("DetectConflicts(08:00) = %v, want %v", reasons, want)
	}
}

func TestDetectConflicts_Bedtime(t *testing.T) {
	p := conflictProfile()
	if reasons := DetectConflicts(time.Sunday, "19:55", p, DefaultPolicy()); slices.Contains(reasons, "Too close to bedtime - winding down time") {
		t.Errorf("19:55 should not be in wind-down, got %v", reasons)
	}
	if reasons := DetectConflicts(time.Sunday, "20:00", p, DefaultPolicy()); !slices.Contains(reasons, "Too close to bedtime - winding down time") {
		t.Errorf("20:00 should be in wind-down, got %v", reasons)
	}
}

func TestDetectConflicts_NapOnlyForYoungChildren(t *testing.T) {
	p := conflictProfile()
	if reasons := DetectConflicts(time.Sunday, "13:30", p, DefaultPolicy()); len(reasons) != 0 {
		t.Errorf("expected no conflicts for a 7 year old at 13:30, got %v", reasons)
	}

	p.ChildAge = 3
	reasons := DetectConflicts(time.Sunday, "13:30", p, DefaultPolicy())
	if !slices.Equal(reasons, []string{"Typical nap time for young children"}) {
		t.Errorf("expected nap conflict, got %v", reasons)
	}
	if reasons := DetectConflicts(time.Sunday, "15:00", p, DefaultPolicy()); len(reasons) != 0 {
		t.Errorf("nap window is half-open, 15:00 should be free, got %v", reasons)
	}

	p.ChildAge = 0
	if reasons := DetectConflicts(time.Sunday, "13:30", p, DefaultPolicy()); len(reasons) != 0 {
		t.Errorf("unset age should not imply a nap, got %v", reasons)
	}
}

func TestDetectConflicts_SchoolHours(t *testing.T) {
	p := conflictProfile()
	if reasons := DetectConflicts(time.Monday, "10:00", p, DefaultPolicy()); !slices.Contains(reasons, "School hours") {
		t.Errorf("expected school conflict on Monday, got %v", reasons)
	}
	if reasons := DetectConflicts(time.Monday, "14:30", p, DefaultPolicy()); slices.Contains(reasons, "School hours") {
		t.Errorf("school end is exclusive, got %v", reasons)
	}
	if reasons := DetectConflicts(time.Tuesday, "10:00", p, DefaultPolicy()); slices.Contains(reasons, "School hours") {
		t.Errorf("Tuesday is not a school day, got %v", reasons)
	}

	p.SchoolSchedule.Days = append(p.SchoolSchedule.Days, time.Saturday)
	if reasons := DetectConflicts(time.Saturday, "11:00", p, DefaultPolicy()); !slices.Contains(reasons, "School hours") {
		t.Errorf("expected school conflict on a Saturday school day, got %v", reasons)
	}
	if reasons := DetectConflicts(time.Sunday, "11:00", p, DefaultPolicy()); slices.Contains(reasons, "School hours") {
		t.Errorf("Sunday is not a school day, got %v", reasons)
	}

	p.SchoolSchedule.HasSchool = false
	for _, day := range []time.Weekday{time.Monday, time.Saturday} {
		if reasons := DetectConflicts(day, "10:00", p, DefaultPolicy()); slices.Contains(reasons, "School hours") {
			t.Errorf("school disabled, got %v on %s", reasons, day)
		}
	}
}

func TestDetectConflicts_TherapySessions(t *testing.T) {
	p := conflictProfile()

	reasons := DetectConflicts(time.Tuesday, "17:20", p, DefaultPolicy())
	if !slices.Contains(reasons, "Speech therapy session") {
		t.Errorf("expected 1.5h speech session to cover 17:20, got %v", reasons)
	}
	if slices.Contains(reasons, "OT therapy session") {
		t.Errorf("disabled OT session must not conflict, got %v", reasons)
	}
	if reasons := DetectConflicts(time.Tuesday, "17:30", p, DefaultPolicy()); slices.Contains(reasons, "Speech therapy session") {
		t.Errorf("session end is exclusive, got %v", reasons)
	}

	reasons = DetectConflicts(time.Saturday, "10:45", p, DefaultPolicy())
	if !slices.Contains(reasons, "Hippotherapy session") {
		t.Errorf("expected additional therapy conflict with default one hour, got %v", reasons)
	}

	p.AdditionalTherapies[0].Name = ""
	reasons = DetectConflicts(time.Saturday, "10:45", p, DefaultPolicy())
	if !slices.Contains(reasons, "Additional therapy session") {
		t.Errorf("expected unnamed additional therapy label, got %v", reasons)
	}
}

func TestDetectConflicts_UnsetAnchorsAreSkipped(t *testing.T) {
	p := models.UserProfile{ChildAge: 8}
	for _, candidate := range []string{"07:40", "08:15", "12:30", "18:00", "21:45"} {
		if reasons := DetectConflicts(time.Monday, candidate, p, DefaultPolicy()); len(reasons) != 0 {
			t.Errorf("DetectConflicts(%s) with empty routine = %v, want none", candidate, reasons)
		}
	}
}

func TestDetectConflicts_PolicyOverride(t *testing.T) {
	p := conflictProfile()
	pol := Policy{DinnerPrepMin: 60}
	if reasons := DetectConflicts(time.Sunday, "17:05", p, pol); !slices.Contains(reasons, "Dinner prep time") {
		t.Errorf("expected overridden dinner prep to cover 17:05, got %v", reasons)
	}
}
