package progress

import (
	"slices"
	"testing"
	"time"

	"github.com/julianstephens/homeplan/internal/models"
)

func done(date string, status models.CompletionStatus) models.Completion {
	return models.Completion{ProfileID: "p", ExerciseName: "Bubble Blowing", Date: date, Status: status}
}

func TestStreak(t *testing.T) {
	today := time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		completions []models.Completion
		want        int
	}{
		{"nothing logged", nil, 0},
		{
			name: "today counts",
			completions: []models.Completion{
				done("2025-06-11", models.CompletionComplete),
				done("2025-06-10", models.CompletionPartial),
				done("2025-06-09", models.CompletionComplete),
			},
			want: 3,
		},
		{
			name: "empty today does not break",
			completions: []models.Completion{
				done("2025-06-10", models.CompletionComplete),
				done("2025-06-09", models.CompletionComplete),
			},
			want: 2,
		},
		{
			name: "gap ends streak",
			completions: []models.Completion{
				done("2025-06-10", models.CompletionComplete),
				done("2025-06-08", models.CompletionComplete),
			},
			want: 1,
		},
		{
			name: "skipped day ends streak",
			completions: []models.Completion{
				done("2025-06-11", models.CompletionComplete),
				done("2025-06-10", models.CompletionSkipped),
				done("2025-06-09", models.CompletionComplete),
			},
			want: 1,
		},
		{
			name: "skip and complete on same day counts",
			completions: []models.Completion{
				done("2025-06-11", models.CompletionSkipped),
				done("2025-06-11", models.CompletionComplete),
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.completions, today); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeekActivity(t *testing.T) {
	// Wednesday
	today := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	completions := []models.Completion{
		done("2025-06-08", models.CompletionPartial),
		done("2025-06-10", models.CompletionComplete),
		done("2025-06-10", models.CompletionSkipped),
		done("2025-06-15", models.CompletionComplete),
		done("2025-06-16", models.CompletionComplete),
	}

	week := WeekActivity(completions, today)

	if len(week) != 7 {
		t.Fatalf("got %d days, want 7", len(week))
	}
	if week[0].Date != "2025-06-08" || week[0].Weekday != time.Sunday {
		t.Errorf("week should start on Sunday 2025-06-08, got %+v", week[0])
	}
	if week[6].Date != "2025-06-14" || week[6].Weekday != time.Saturday {
		t.Errorf("week should end on Saturday 2025-06-14, got %+v", week[6])
	}
	if week[0].Status != models.CompletionPartial {
		t.Errorf("Sunday status = %q, want partial", week[0].Status)
	}
	if week[2].Status != models.CompletionComplete || week[2].Logged != 2 {
		t.Errorf("Tuesday = %+v, want complete with 2 logged", week[2])
	}
	if week[1].Status != "" || week[1].Logged != 0 {
		t.Errorf("Monday should be empty, got %+v", week[1])
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		in   string
		want []Category
	}{
		{"", []Category{CategoryGeneral}},
		{"Speech", []Category{CategorySpeech}},
		{"ST, OT", []Category{CategorySpeech, CategoryOT}},
		{"Occupational Therapy (Therapist Assigned)", []Category{CategoryOT}},
		{"Physical", []Category{CategoryPT}},
		{"ABA", []Category{CategoryBehavior}},
		{"Parent Priority", []Category{CategoryGeneral}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Categorize(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Categorize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoryStats(t *testing.T) {
	schedule := models.NewDayMap[models.ScheduledExercise]()
	add := func(d time.Weekday, therapy string) {
		schedule[d] = append(schedule[d], models.ScheduledExercise{
			Time:               "10:00",
			ExerciseAssignment: models.ExerciseAssignment{TherapyType: therapy},
		})
	}
	add(time.Monday, "Speech")
	add(time.Monday, "Speech")
	add(time.Tuesday, "Speech")
	add(time.Tuesday, "OT")
	add(time.Wednesday, "")

	completions := []models.Completion{
		{Date: "2025-06-09", TherapyType: "Speech", Status: models.CompletionComplete},
		{Date: "2025-06-10", TherapyType: "Speech", Status: models.CompletionPartial},
		{Date: "2025-06-10", TherapyType: "OT", Status: models.CompletionSkipped},
		{Date: "2025-06-11", TherapyType: "", Status: models.CompletionComplete},
		{Date: "2025-06-12", TherapyType: "", Status: models.CompletionComplete},
	}

	got := CategoryStats(schedule, completions)
	want := []CategoryStat{
		{Name: CategorySpeech, Scheduled: 3, Completed: 2, Percentage: 67},
		{Name: CategoryOT, Scheduled: 1, Completed: 0, Percentage: 0},
		{Name: CategoryGeneral, Scheduled: 1, Completed: 2, Percentage: 100},
	}
	if !slices.Equal(got, want) {
		t.Errorf("CategoryStats = %+v, want %+v", got, want)
	}
}
