package models

import (
	"fmt"
	"time"
)

// CompletionStatus is how much of an exercise was done.
type CompletionStatus string

const (
	CompletionComplete CompletionStatus = "complete"
	CompletionPartial  CompletionStatus = "partial"
	CompletionSkipped  CompletionStatus = "skipped"
)

// Completion is a logged attempt at a scheduled exercise.
type Completion struct {
	ID           string           `json:"id"`
	ProfileID    string           `json:"profile_id"`
	Date         string           `json:"date"` // YYYY-MM-DD
	Time         string           `json:"time"` // HH:MM
	ExerciseName string           `json:"exercise_name"`
	TherapyType  string           `json:"therapy_type"`
	Status       CompletionStatus `json:"status"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Counts reports whether the completion counts toward a streak.
func (c Completion) Counts() bool {
	return c.Status == CompletionComplete || c.Status == CompletionPartial
}

func (c *Completion) Validate() error {
	if c.ProfileID == "" {
		return fmt.Errorf("completion must reference a profile")
	}
	if c.ExerciseName == "" {
		return fmt.Errorf("exercise name cannot be empty")
	}
	if _, err := time.Parse("2006-01-02", c.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if c.Time != "" {
		if _, err := time.Parse("15:04", c.Time); err != nil {
			return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
		}
	}
	switch c.Status {
	case CompletionComplete, CompletionPartial, CompletionSkipped:
	default:
		return fmt.Errorf("invalid status %q", c.Status)
	}
	return nil
}
