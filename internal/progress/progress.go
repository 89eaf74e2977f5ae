// Package progress summarizes logged exercise completions.
package progress

import (
	"math"
	"strings"
	"time"

	"github.com/julianstephens/homeplan/internal/constants"
	"github.com/julianstephens/homeplan/internal/models"
)

// maxStreakDays bounds how far back a streak is counted.
const maxStreakDays = 365

// byDate groups completions by their YYYY-MM-DD date.
func byDate(completions []models.Completion) map[string][]models.Completion {
	out := make(map[string][]models.Completion)
	for _, c := range completions {
		out[c.Date] = append(out[c.Date], c)
	}
	return out
}

// dayStatus returns the best status logged on a day. A day with any
// complete entry is complete; otherwise any partial makes it partial.
func dayStatus(entries []models.Completion) models.CompletionStatus {
	status := models.CompletionStatus("")
	for _, c := range entries {
		switch {
		case c.Status == models.CompletionComplete:
			return models.CompletionComplete
		case c.Status == models.CompletionPartial:
			status = models.CompletionPartial
		case status == "":
			status = c.Status
		}
	}
	return status
}

// Streak counts consecutive days, ending today, with complete or partial
// activity. Nothing logged yet today does not break the streak.
func Streak(completions []models.Completion, today time.Time) int {
	days := byDate(completions)
	streak := 0
	for i := range maxStreakDays {
		key := today.AddDate(0, 0, -i).Format(constants.DateFormat)
		entries, ok := days[key]
		if !ok {
			if i == 0 {
				continue
			}
			break
		}
		if s := dayStatus(entries); s != models.CompletionComplete && s != models.CompletionPartial {
			break
		}
		streak++
	}
	return streak
}

// DayActivity is one day of the current calendar week.
type DayActivity struct {
	Date    string                  `json:"date"`
	Weekday time.Weekday            `json:"weekday"`
	Status  models.CompletionStatus `json:"status,omitempty"`
	Logged  int                     `json:"logged"`
}

// WeekActivity returns the Sunday-first calendar week containing today.
func WeekActivity(completions []models.Completion, today time.Time) []DayActivity {
	days := byDate(completions)
	start := today.AddDate(0, 0, -int(today.Weekday()))
	out := make([]DayActivity, 0, len(models.CalendarWeekOrder))
	for i, wd := range models.CalendarWeekOrder {
		key := start.AddDate(0, 0, i).Format(constants.DateFormat)
		entries := days[key]
		out = append(out, DayActivity{
			Date:    key,
			Weekday: wd,
			Status:  dayStatus(entries),
			Logged:  len(entries),
		})
	}
	return out
}

// Category buckets therapy types for progress reporting.
type Category string

const (
	CategorySpeech   Category = "Speech"
	CategoryOT       Category = "OT"
	CategoryPT       Category = "PT"
	CategoryBehavior Category = "Behavior"
	CategoryGeneral  Category = "General"
)

var categoryOrder = []Category{CategorySpeech, CategoryOT, CategoryPT, CategoryBehavior, CategoryGeneral}

// Categorize maps each comma-separated part of a therapy type to a
// category. An empty type is General.
func Categorize(therapyType string) []Category {
	if strings.TrimSpace(therapyType) == "" {
		return []Category{CategoryGeneral}
	}
	parts := strings.Split(therapyType, ",")
	out := make([]Category, 0, len(parts))
	for _, part := range parts {
		out = append(out, categorize(strings.TrimSpace(part)))
	}
	return out
}

func categorize(t string) Category {
	switch {
	case strings.Contains(t, "ST") || strings.Contains(t, "Speech"):
		return CategorySpeech
	case strings.Contains(t, "OT") || strings.Contains(t, "Occupational"):
		return CategoryOT
	case strings.Contains(t, "PT") || strings.Contains(t, "Physical"):
		return CategoryPT
	case strings.Contains(t, "ABA") || strings.Contains(t, "Behavior"):
		return CategoryBehavior
	}
	return CategoryGeneral
}

// CategoryStat compares scheduled and completed exercises for one category.
type CategoryStat struct {
	Name       Category `json:"name"`
	Scheduled  int      `json:"scheduled"`
	Completed  int      `json:"completed"`
	Percentage int      `json:"percentage"`
}

// CategoryStats reports, per category present in the schedule, how many
// scheduled exercises were completed. Partial completions count.
// Percentages are capped at 100.
func CategoryStats(schedule models.WeekSchedule, completions []models.Completion) []CategoryStat {
	scheduled := map[Category]int{}
	for _, d := range models.ScheduleWeekOrder {
		for _, ex := range schedule[d] {
			for _, c := range Categorize(ex.TherapyType) {
				scheduled[c]++
			}
		}
	}
	completed := map[Category]int{}
	for _, c := range completions {
		if !c.Counts() {
			continue
		}
		for _, cat := range Categorize(c.TherapyType) {
			completed[cat]++
		}
	}

	out := []CategoryStat{}
	for _, cat := range categoryOrder {
		n := scheduled[cat]
		if n == 0 {
			continue
		}
		done := completed[cat]
		pct := int(math.Round(float64(done) / float64(n) * 100))
		out = append(out, CategoryStat{
			Name:       cat,
			Scheduled:  n,
			Completed:  done,
			Percentage: min(pct, 100),
		})
	}
	return out
}
