package scheduler

import (
	"fmt"
	"sort"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/utils"
)

// shortfall explains a day that received fewer exercises than its quota.
func (s *Scheduler) shortfall(plan dayPlan, p models.UserProfile, scheduled int) models.Explanation {
	deficit := plan.needed - scheduled
	exp := models.Explanation{
		Severity: models.SeverityWarning,
		Message:  fmt.Sprintf("Only scheduled %d of %d exercises due to time constraints.", scheduled, plan.needed),
	}

	bed, hasBed := utils.ParseClock(p.DailyRoutine.Bedtime)
	dinner, hasDinner := utils.ParseClock(p.DailyRoutine.DinnerTime)

	if plan.available.HasBlock(models.BlockNight) && hasBed && bed.Hour() <= 21 {
		exp.Suggestions = append(exp.Suggestions, models.Suggestion{
			Kind: models.SuggestionActionable,
			Message: fmt.Sprintf("Moving bedtime 30min later (to %s) would add space for %d more exercises",
				utils.ClockOf(int(bed)+30), min(2, deficit)),
		})
	}

	if plan.available.HasBlock(models.BlockEvening) && hasDinner && dinner.Hour() >= 19 {
		exp.Suggestions = append(exp.Suggestions, models.Suggestion{
			Kind:    models.SuggestionActionable,
			Message: fmt.Sprintf("Moving dinner 30min earlier would add space for %d more exercises", min(2, deficit)),
		})
	}

	if !plan.available.HasBlock(models.BlockEarlyMorning) && p.ChildAge >= 5 {
		exp.Suggestions = append(exp.Suggestions, models.Suggestion{
			Kind:    models.SuggestionActionable,
			Message: fmt.Sprintf("Adding early morning slot (6-8am) would provide space for %d more exercises", min(3, deficit)),
		})
	}

	if hasDinner && hasBed {
		window := max(0, (int(bed)-s.policy.WindDownMin)-(int(dinner)+s.policy.DigestionMin))
		exp.Suggestions = append(exp.Suggestions, models.Suggestion{
			Kind: models.SuggestionInformational,
			Message: fmt.Sprintf("Current window: %s between dinner and bedtime = space for %d exercises",
				utils.FormatDuration(window), window/s.policy.SlotStrideMin),
		})
	}

	return exp
}

// sortExercises orders a day's exercises by start time.
func sortExercises(exercises []models.ScheduledExercise) {
	sort.SliceStable(exercises, func(i, j int) bool {
		return utils.ToMinutes(exercises[i].Time) < utils.ToMinutes(exercises[j].Time)
	})
}
