// Package reminders plans when notifications for a week schedule would
// fire. Delivery is left to the caller.
package reminders

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/julianstephens/homeplan/internal/constants"
	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/utils"
)

type Kind string

const (
	KindExercise          Kind = "exercise"
	KindMorningBriefing   Kind = "morning_briefing"
	KindEveningReflection Kind = "evening_reflection"
)

// Reminder is one planned notification.
type Reminder struct {
	Time     string `json:"time"`
	Kind     Kind   `json:"kind"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Exercise string `json:"exercise,omitempty"`
}

// Plan returns the reminders for every day of schedule. Days with no
// exercises get no reminders. Anything falling in quiet hours is dropped.
func Plan(schedule models.WeekSchedule, p models.UserProfile, s models.Settings) models.DayMap[Reminder] {
	out := models.NewDayMap[Reminder]()
	child := cmp.Or(p.ChildName, "your child")
	reflection := ReflectionTime(p.DailyRoutine.DinnerTime)

	for _, day := range models.ScheduleWeekOrder {
		exercises := schedule[day]
		if len(exercises) == 0 {
			continue
		}
		var planned []Reminder
		if s.MorningBriefingEnabled {
			planned = append(planned, Reminder{
				Time:  cmp.Or(s.MorningBriefingTime, constants.DefaultMorningBriefingTime),
				Kind:  KindMorningBriefing,
				Title: "Today's plan",
				Body: fmt.Sprintf("Good morning! %s has %d therapy sessions today, starting at %s.",
					child, len(exercises), exercises[0].Time),
			})
		}
		if s.RemindersEnabled {
			lead := cmp.Or(s.ReminderMinutesBefore, constants.DefaultReminderMinutesBefore)
			for _, ex := range exercises {
				planned = append(planned, Reminder{
					Time:     utils.SubtractMinutes(ex.Time, lead),
					Kind:     KindExercise,
					Title:    "Therapy reminder",
					Body:     fmt.Sprintf("%s at %s (%d min)", ex.Name, ex.Time, ex.DurationMinutes),
					Exercise: ex.Name,
				})
			}
		}
		if s.EveningReflectionEnabled {
			planned = append(planned, Reminder{
				Time:  reflection,
				Kind:  KindEveningReflection,
				Title: "How did today feel?",
				Body:  fmt.Sprintf("Reflecting on therapy time with %s", child),
			})
		}

		kept := planned[:0]
		for _, r := range planned {
			if s.QuietHoursEnabled && InQuietHours(r.Time, s.QuietHoursStart, s.QuietHoursEnd) {
				continue
			}
			kept = append(kept, r)
		}
		slices.SortStableFunc(kept, func(a, b Reminder) int {
			return cmp.Compare(utils.ToMinutes(a.Time), utils.ToMinutes(b.Time))
		})
		out[day] = append(out[day], kept...)
	}
	return out
}

// ReflectionTime is one hour after dinner, capped at 21:30 when that
// would land at 22:00 or later. No dinner time gives 20:00.
func ReflectionTime(dinner string) string {
	c, ok := utils.ParseClock(dinner)
	if !ok {
		return constants.DefaultEveningReflectionTime
	}
	if c.Hour()+1 >= 22 {
		return constants.LatestEveningReflectionTime
	}
	return utils.AddHour(dinner)
}

// InQuietHours reports whether at falls in [start, end). Windows where
// start is after end wrap past midnight.
func InQuietHours(at, start, end string) bool {
	t := utils.ToMinutes(at)
	s := utils.ToMinutesOr(start, constants.DefaultQuietHoursStart)
	e := utils.ToMinutesOr(end, constants.DefaultQuietHoursEnd)
	if s > e {
		return t >= s || t < e
	}
	return t >= s && t < e
}
