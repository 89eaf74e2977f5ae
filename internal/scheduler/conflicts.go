package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/utils"
)

type mealAnchor struct {
	name    string
	time    string
	prepMin int
}

// DetectConflicts returns every reason the candidate time is unusable on
// day. An empty result means the time is free. Anchors left unset in the
// profile are not checked.
func DetectConflicts(day time.Weekday, candidate string, p models.UserProfile, pol Policy) []string {
	pol = pol.WithDefaults()
	t := utils.ToMinutes(candidate)
	var reasons []string

	// Meal prep and digestion
	meals := []mealAnchor{
		{"Breakfast", p.DailyRoutine.BreakfastTime, pol.BreakfastPrepMin},
		{"Lunch", p.DailyRoutine.LunchTime, pol.LunchPrepMin},
		{"Dinner", p.DailyRoutine.DinnerTime, pol.DinnerPrepMin},
	}
	for _, meal := range meals {
		at, ok := utils.ParseClock(meal.time)
		if !ok {
			continue
		}
		m := int(at)
		if t >= m-meal.prepMin && t <= m {
			reasons = append(reasons, fmt.Sprintf("%s prep time", meal.name))
		}
		if t >= m && t < m+pol.DigestionMin {
			reasons = append(reasons, fmt.Sprintf("Digestion time after %s", meal.name))
		}
	}

	if bed, ok := utils.ParseClock(p.DailyRoutine.Bedtime); ok && t >= int(bed)-pol.WindDownMin {
		reasons = append(reasons, "Too close to bedtime - winding down time")
	}

	if p.ChildAge > 0 && p.ChildAge < pol.NapMaxAge && inWindow(t, utils.ToMinutes(pol.NapStart), utils.ToMinutes(pol.NapEnd)) {
		reasons = append(reasons, "Typical nap time for young children")
	}

	school := p.SchoolSchedule
	if school.Attends(day) {
		start, okStart := utils.ParseClock(school.StartTime)
		end, okEnd := utils.ParseClock(school.EndTime)
		if okStart && okEnd && inWindow(t, int(start), int(end)) {
			reasons = append(reasons, "School hours")
		}
	}

	for _, s := range p.ProfessionalTherapies {
		if sessionCovers(s, day, t) {
			reasons = append(reasons, fmt.Sprintf("%s therapy session", s.Label()))
		}
	}
	for _, s := range p.AdditionalTherapies {
		if sessionCovers(s, day, t) {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				name = "Additional therapy"
			}
			reasons = append(reasons, fmt.Sprintf("%s session", name))
		}
	}

	return reasons
}

// sessionCovers reports whether an enabled session on day occupies minute t.
func sessionCovers(s models.TherapySession, day time.Weekday, t int) bool {
	if !s.Enabled || !s.Days.Contains(day) {
		return false
	}
	start, ok := utils.ParseClock(s.StartTime)
	if !ok {
		return false
	}
	return inWindow(t, int(start), int(start)+s.DurationMinutes())
}

// inWindow reports whether t falls in [start, end).
func inWindow(t, start, end int) bool {
	return t >= start && t < end
}
