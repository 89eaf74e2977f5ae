package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/homeplan/internal/library"
	"github.com/julianstephens/homeplan/internal/logger"
	"github.com/julianstephens/homeplan/internal/models"
)

// DefaultChildAge is assumed for library queries when the profile has no age.
const DefaultChildAge = 5

// BuildPool orders the priority exercises: therapist-prescribed first, then
// critical parent priorities, then the remaining parent priorities.
// Prescribed exercises repeat once per daily frequency.
func BuildPool(p models.UserProfile) []models.ExerciseAssignment {
	var pool []models.ExerciseAssignment

	for _, e := range p.PrescribedExercises {
		therapyType := e.Type
		if therapyType == "" {
			therapyType = "Therapy"
		}
		a := models.ExerciseAssignment{
			Name:            e.Name,
			TherapyType:     fmt.Sprintf("%s (Therapist Assigned)", therapyType),
			DurationMinutes: e.DurationMinutes,
			Targets:         "As prescribed by therapist",
			Tools:           firstNonEmpty(e.Tools, "See instructions"),
			Instructions:    firstNonEmpty(e.HowTo, e.Instructions, "Follow guidance"),
			Source:          models.SourceTherapistAssigned,
		}
		for n := 0; n < max(1, e.FrequencyPerDay); n++ {
			pool = append(pool, a)
		}
	}

	for _, critical := range []bool{true, false} {
		for _, e := range p.PriorityExercises {
			if (e.Importance == models.ImportanceCritical) != critical {
				continue
			}
			a := models.ExerciseAssignment{
				Name:            e.Name,
				TherapyType:     "Parent Priority",
				DurationMinutes: e.DurationMinutes,
				Targets:         "Parent knows this works",
				Tools:           "None required",
				Instructions:    firstNonEmpty(e.Instructions, "Follow standard procedure"),
				Source:          models.SourceParentNormal,
			}
			if critical {
				a.TherapyType = "Parent Priority (Critical)"
				a.Source = models.SourceParentCritical
			}
			pool = append(pool, a)
		}
	}

	return pool
}

// Selector picks the exercise for the n-th filled slot of a run.
type Selector struct {
	pool            []models.ExerciseAssignment
	lib             library.Library
	query           models.LibraryQuery
	defaultDuration int
}

// NewSelector creates a selector over the given pool. lib may be nil, in
// which case placeholders are used once the pool runs out.
func NewSelector(pool []models.ExerciseAssignment, lib library.Library, p models.UserProfile, pol Policy) *Selector {
	age := p.ChildAge
	if age <= 0 {
		age = DefaultChildAge
	}
	return &Selector{
		pool:            pool,
		lib:             lib,
		query:           models.LibraryQuery{MinAge: age, MaxAge: age, Concerns: p.Concerns},
		defaultDuration: pol.WithDefaults().DefaultExerciseMin,
	}
}

// Select returns the assignment for the given run-wide index. It never
// fails: library errors and empty results degrade to a placeholder.
func (s *Selector) Select(ctx context.Context, index int) models.ExerciseAssignment {
	if index < len(s.pool) {
		a := s.pool[index]
		if a.DurationMinutes <= 0 {
			a.DurationMinutes = s.defaultDuration
		}
		return a
	}

	adjusted := index - len(s.pool)
	if s.lib != nil {
		exercises, err := s.lib.Lookup(ctx, s.query)
		if err != nil {
			logger.Warn("Exercise library lookup failed, using placeholder", "index", index, "error", err)
		} else if len(exercises) > 0 {
			return s.fromLibrary(exercises[adjusted%len(exercises)])
		}
	}

	return models.ExerciseAssignment{
		Name:            fmt.Sprintf("Activity %d", index+1),
		TherapyType:     "General",
		DurationMinutes: s.defaultDuration,
		Targets:         "General development",
		Tools:           "None required",
		Instructions:    "Follow standard procedure",
		Source:          models.SourceLibrary,
	}
}

func (s *Selector) fromLibrary(e models.LibraryExercise) models.ExerciseAssignment {
	duration := e.DurationMinutes
	if duration <= 0 {
		duration = s.defaultDuration
	}
	return models.ExerciseAssignment{
		Name:            e.Name,
		TherapyType:     joinOr(e.TherapyTypes, "General"),
		DurationMinutes: duration,
		Targets:         joinOr(e.Targets, "General development"),
		Tools:           joinOr(e.Tools, "None required"),
		Instructions:    firstNonEmpty(e.HowTo, "Follow standard procedure"),
		Source:          models.SourceLibrary,
	}
}

func joinOr(values []string, def string) string {
	if len(values) == 0 {
		return def
	}
	return strings.Join(values, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
