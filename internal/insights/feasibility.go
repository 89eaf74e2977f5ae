package insights

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/utils"
)

type RecommendationKind string

const (
	RecommendationWarning RecommendationKind = "warning"
	RecommendationTip     RecommendationKind = "tip"
)

// Recommendation is advice shown before a schedule is generated.
type Recommendation struct {
	Kind       RecommendationKind `json:"kind"`
	Message    string             `json:"message"`
	Suggestion string             `json:"suggestion"`
}

// Window defaults used when a routine anchor is missing.
const (
	defaultMorningWindow   = 120
	defaultAfternoonWindow = 180
	defaultEveningWindow   = 90
)

// RealisticMinutes estimates how many weekday minutes are actually free
// around the routine anchors.
func RealisticMinutes(p models.UserProfile) int {
	r := p.DailyRoutine
	morning := defaultMorningWindow
	if utils.IsSet(r.BreakfastTime) {
		morning = utils.WindowLength("06:00", utils.SubtractMinutes(r.BreakfastTime, 30))
	}
	afternoon := defaultAfternoonWindow
	if p.SchoolSchedule.HasSchool && utils.IsSet(p.SchoolSchedule.EndTime) && utils.IsSet(r.DinnerTime) {
		afternoon = utils.WindowLength(p.SchoolSchedule.EndTime, utils.SubtractMinutes(r.DinnerTime, 45))
	}
	evening := defaultEveningWindow
	if utils.IsSet(r.DinnerTime) && utils.IsSet(r.Bedtime) {
		evening = utils.WindowLength(utils.AddHour(r.DinnerTime), utils.SubtractMinutes(r.Bedtime, 30))
	}
	return morning + afternoon + evening
}

// Feasibility checks declared weekday hours against the routine.
func Feasibility(p models.UserProfile) []Recommendation {
	recs := []Recommendation{}
	hours := p.ParentAvailability.Weekday.Hours
	available := RealisticMinutes(p)

	if hours.Mul(decimal.NewFromInt(60)).GreaterThan(decimal.NewFromInt(int64(available))) {
		realistic := available / 60
		recs = append(recs, Recommendation{
			Kind:       RecommendationWarning,
			Message:    fmt.Sprintf("You selected %s hours but only %d hours realistically available", hours.String(), realistic),
			Suggestion: fmt.Sprintf("Consider reducing to %d hours for sustainability", realistic),
		})
	}
	if p.ChildAge < 5 && !p.ParentAvailability.Weekday.HasBlock(models.BlockEarlyMorning) {
		recs = append(recs, Recommendation{
			Kind:       RecommendationTip,
			Message:    "Young children respond best to morning exercises",
			Suggestion: "But your morning routine seems packed - consider weekend mornings instead",
		})
	}
	if hours.GreaterThan(decimal.NewFromInt(2)) {
		recs = append(recs, Recommendation{
			Kind:       RecommendationWarning,
			Message:    "More than 2 hours daily may lead to burnout",
			Suggestion: "Start with 1 hour and increase gradually",
		})
	}
	return recs
}
