package models

import (
	"fmt"
	"strings"
)

// LibraryExercise is a record from the general exercise library.
type LibraryExercise struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	TherapyTypes    []string `json:"therapy_types" yaml:"therapy_types"`
	SkillAreas      []string `json:"skill_areas" yaml:"skill_areas"`
	Targets         []string `json:"targets" yaml:"targets"`
	DurationMinutes int      `json:"duration_minutes" yaml:"duration_minutes"`
	Tools           []string `json:"tools" yaml:"tools"`
	HowTo           string   `json:"how_to" yaml:"how_to"`
	MinAge          int      `json:"min_age" yaml:"min_age"`
	MaxAge          int      `json:"max_age" yaml:"max_age"`
}

// LibraryQuery narrows the library to an age range and a set of concerns.
type LibraryQuery struct {
	MinAge   int      `json:"min_age"`
	MaxAge   int      `json:"max_age"`
	Concerns []string `json:"concerns"`
}

// Key returns a stable cache key for the query.
func (q LibraryQuery) Key() string {
	return fmt.Sprintf("%d-%d-%s", q.MinAge, q.MaxAge, strings.Join(q.Concerns, ","))
}

// Matches reports whether e covers the query's age range and, when the
// query names concerns, shares at least one skill area with them.
func (q LibraryQuery) Matches(e LibraryExercise) bool {
	if e.MinAge > q.MinAge || e.MaxAge < q.MaxAge {
		return false
	}
	if len(q.Concerns) == 0 {
		return true
	}
	for _, area := range e.SkillAreas {
		for _, concern := range q.Concerns {
			if strings.EqualFold(area, concern) {
				return true
			}
		}
	}
	return false
}

func (e *LibraryExercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("exercise name cannot be empty")
	}
	if e.MinAge < 0 || e.MaxAge < e.MinAge {
		return fmt.Errorf("invalid age range %d-%d", e.MinAge, e.MaxAge)
	}
	if e.DurationMinutes < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	return nil
}
