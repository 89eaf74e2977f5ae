// Package insights derives read-only analytics from a generated week.
package insights

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/utils"
)

// DayCount pairs a weekday with its exercise count.
type DayCount struct {
	Day   time.Weekday
	Count int
}

func (d DayCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Day   string `json:"day"`
		Count int    `json:"count"`
	}{d.Day.String(), d.Count})
}

// Distribution buckets exercises by the hour they start.
type Distribution struct {
	Morning   int `json:"morning"`   // before 12:00
	Afternoon int `json:"afternoon"` // 12:00 to 16:59
	Evening   int `json:"evening"`   // 17:00 to 18:59
	Night     int `json:"night"`     // 19:00 onward
}

type TherapyShare struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Report is everything shown on the insights screen.
type Report struct {
	BusiestDay          DayCount       `json:"busiest_day"`
	LightestDay         DayCount       `json:"lightest_day"`
	TimeDistribution    Distribution   `json:"time_distribution"`
	TherapyBreakdown    []TherapyShare `json:"therapy_breakdown"`
	FeasibilityWarnings []string       `json:"feasibility_warnings"`
	Tips                []string       `json:"tips"`
	TotalExercises      int            `json:"total_exercises"`
	AveragePerDay       int            `json:"average_per_day"`
}

// heavyTherapyHours is the weekly professional load above which a rest
// reminder is added.
const heavyTherapyHours = 10

// Analyze builds a Report for schedule. The profile and settings only
// feed the warnings and tips.
func Analyze(schedule models.WeekSchedule, p models.UserProfile, s models.Settings) Report {
	dist := TimeDistribution(schedule)
	r := Report{
		BusiestDay:       BusiestDay(schedule),
		LightestDay:      LightestDay(schedule),
		TimeDistribution: dist,
		TherapyBreakdown: TherapyBreakdown(schedule),
		TotalExercises:   schedule.Total(),
	}
	r.AveragePerDay = int(math.Round(float64(r.TotalExercises) / 7))
	r.FeasibilityWarnings = FeasibilityWarnings(schedule, s)
	r.Tips = tips(r, p)
	return r
}

// BusiestDay returns the day with the most exercises. Ties go to the
// earliest day in schedule order.
func BusiestDay(schedule models.WeekSchedule) DayCount {
	if len(schedule) == 0 {
		return DayCount{Day: time.Monday}
	}
	var best *DayCount
	for _, d := range models.ScheduleWeekOrder {
		c := DayCount{Day: d, Count: len(schedule[d])}
		if best == nil || c.Count > best.Count {
			best = &c
		}
	}
	return *best
}

// LightestDay returns the day with the fewest exercises. Ties go to the
// earliest day in schedule order.
func LightestDay(schedule models.WeekSchedule) DayCount {
	if len(schedule) == 0 {
		return DayCount{Day: time.Sunday}
	}
	var best *DayCount
	for _, d := range models.ScheduleWeekOrder {
		c := DayCount{Day: d, Count: len(schedule[d])}
		if best == nil || c.Count < best.Count {
			best = &c
		}
	}
	return *best
}

func TimeDistribution(schedule models.WeekSchedule) Distribution {
	var d Distribution
	for _, day := range models.ScheduleWeekOrder {
		for _, ex := range schedule[day] {
			c, ok := utils.ParseClock(ex.Time)
			if !ok {
				continue
			}
			switch h := c.Hour(); {
			case h < 12:
				d.Morning++
			case h < 17:
				d.Afternoon++
			case h < 19:
				d.Evening++
			default:
				d.Night++
			}
		}
	}
	return d
}

// TherapyBreakdown groups exercises by therapy type, most frequent first.
func TherapyBreakdown(schedule models.WeekSchedule) []TherapyShare {
	total := schedule.Total()
	if total == 0 {
		return []TherapyShare{}
	}
	counts := map[string]int{}
	for _, day := range models.ScheduleWeekOrder {
		for _, ex := range schedule[day] {
			counts[cmp.Or(ex.TherapyType, "General")]++
		}
	}
	out := make([]TherapyShare, 0, len(counts))
	for typ, n := range counts {
		out = append(out, TherapyShare{
			Type:       typ,
			Count:      n,
			Percentage: int(math.Round(float64(n) / float64(total) * 100)),
		})
	}
	slices.SortFunc(out, func(a, b TherapyShare) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Type, b.Type)
	})
	return out
}

// FeasibilityWarnings flags schedules that are likely to be hard to keep.
func FeasibilityWarnings(schedule models.WeekSchedule, s models.Settings) []string {
	warnings := []string{}
	busiest := BusiestDay(schedule)
	if busiest.Count > 7 {
		warnings = append(warnings, fmt.Sprintf("%s may be overwhelming with %d exercises", busiest.Day, busiest.Count))
	}
	if lateHeavy(schedule) {
		warnings = append(warnings, "Too many exercises scheduled after 7 PM")
	}
	if !s.RemindersEnabled {
		warnings = append(warnings, "No reminders set - easy to forget sessions")
	}
	return warnings
}

func lateHeavy(schedule models.WeekSchedule) bool {
	total := schedule.Total()
	return total > 0 && float64(TimeDistribution(schedule).Night) > float64(total)*0.3
}

func tips(r Report, p models.UserProfile) []string {
	out := []string{}
	if r.BusiestDay.Count > 6 {
		out = append(out, fmt.Sprintf("%s has %d exercises - consider spreading some to %s",
			r.BusiestDay.Day, r.BusiestDay.Count, r.LightestDay.Day))
	}
	if r.TotalExercises > 0 && float64(r.TimeDistribution.Night) > float64(r.TotalExercises)*0.3 {
		out = append(out, "Many exercises scheduled late - may affect bedtime routine")
	}
	if p.ChildAge < 5 && r.TimeDistribution.Afternoon > r.TimeDistribution.Morning {
		out = append(out, "Young children focus better in mornings - consider shifting exercises earlier")
	}
	if WeeklyTherapyHours(p).GreaterThan(decimal.NewFromInt(heavyTherapyHours)) {
		out = append(out, "Your child has many therapy hours. Ensure they have enough play and rest time.")
	}
	return out
}

// WeeklyTherapyHours sums the enabled professional sessions over a week.
func WeeklyTherapyHours(p models.UserProfile) decimal.Decimal {
	total := decimal.Zero
	for _, s := range p.ProfessionalTherapies {
		if !s.Enabled {
			continue
		}
		hours := decimal.NewFromInt(int64(s.DurationMinutes())).Div(decimal.NewFromInt(60))
		total = total.Add(hours.Mul(decimal.NewFromInt(int64(len(s.Days)))))
	}
	return total
}
