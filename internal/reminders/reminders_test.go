package reminders

import (
	"testing"
	"time"

	"github.com/julianstephens/homeplan/internal/models"
)

func TestReflectionTime(t *testing.T) {
	tests := []struct {
		dinner string
		want   string
	}{
		{"", "20:00"},
		{"18:30", "19:30"},
		{"20:45", "21:45"},
		{"21:00", "21:30"},
		{"23:15", "21:30"},
		{"bad", "20:00"},
	}
	for _, tt := range tests {
		t.Run(tt.dinner, func(t *testing.T) {
			if got := ReflectionTime(tt.dinner); got != tt.want {
				t.Errorf("ReflectionTime(%q) = %q, want %q", tt.dinner, got, tt.want)
			}
		})
	}
}

func TestInQuietHours(t *testing.T) {
	tests := []struct {
		name       string
		at         string
		start, end string
		want       bool
	}{
		{"overnight late", "23:00", "22:00", "07:00", true},
		{"overnight early", "06:59", "22:00", "07:00", true},
		{"overnight end exclusive", "07:00", "22:00", "07:00", false},
		{"overnight daytime", "12:00", "22:00", "07:00", false},
		{"same day inside", "13:30", "13:00", "15:00", true},
		{"same day outside", "15:00", "13:00", "15:00", false},
		{"defaults", "22:30", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InQuietHours(tt.at, tt.start, tt.end); got != tt.want {
				t.Errorf("InQuietHours(%q, %q, %q) = %v, want %v", tt.at, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	schedule := models.NewDayMap[models.ScheduledExercise]()
	schedule[time.Monday] = []models.ScheduledExercise{
		{Time: "07:05", ExerciseAssignment: models.ExerciseAssignment{Name: "Mirror Practice", DurationMinutes: 5}},
		{Time: "16:00", ExerciseAssignment: models.ExerciseAssignment{Name: "Ball Games", DurationMinutes: 10}},
	}
	p := models.UserProfile{ChildName: "Sam", DailyRoutine: models.DailyRoutine{DinnerTime: "18:00"}}
	s := models.Settings{
		RemindersEnabled:         true,
		ReminderMinutesBefore:    10,
		QuietHoursEnabled:        true,
		QuietHoursStart:          "22:00",
		QuietHoursEnd:            "07:00",
		MorningBriefingEnabled:   true,
		MorningBriefingTime:      "06:30",
		EveningReflectionEnabled: true,
	}

	plan := Plan(schedule, p, s)

	if len(plan) != 7 {
		t.Fatalf("plan should have all 7 days, got %d", len(plan))
	}
	if len(plan[time.Tuesday]) != 0 {
		t.Errorf("day without exercises should have no reminders, got %+v", plan[time.Tuesday])
	}

	got := plan[time.Monday]
	// the 06:30 briefing and the 06:55 exercise reminder are both quiet
	want := []struct {
		time string
		kind Kind
	}{
		{"15:50", KindExercise},
		{"19:00", KindEveningReflection},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d reminders, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Time != w.time || got[i].Kind != w.kind {
			t.Errorf("reminder %d = %s %s, want %s %s", i, got[i].Time, got[i].Kind, w.time, w.kind)
		}
	}
	if got[1].Body != "Reflecting on therapy time with Sam" {
		t.Errorf("reflection body = %q", got[1].Body)
	}
}

func TestPlan_QuietHoursOff(t *testing.T) {
	schedule := models.NewDayMap[models.ScheduledExercise]()
	schedule[time.Saturday] = []models.ScheduledExercise{
		{Time: "09:30", ExerciseAssignment: models.ExerciseAssignment{Name: "Sensory Bin"}},
	}
	s := models.Settings{RemindersEnabled: true, MorningBriefingEnabled: true}

	got := Plan(schedule, models.UserProfile{}, s)[time.Saturday]

	if len(got) != 2 {
		t.Fatalf("got %d reminders, want 2: %+v", len(got), got)
	}
	if got[0].Kind != KindMorningBriefing || got[0].Time != "07:00" {
		t.Errorf("first reminder = %+v, want default 07:00 briefing", got[0])
	}
	if got[0].Body != "Good morning! your child has 1 therapy sessions today, starting at 09:30." {
		t.Errorf("briefing body = %q", got[0].Body)
	}
	if got[1].Time != "09:15" {
		t.Errorf("exercise reminder at %s, want default 15 minutes before", got[1].Time)
	}
}
