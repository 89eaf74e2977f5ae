package models

import "time"

// SourceTag records where a scheduled exercise came from.
type SourceTag string

// Severity grades an explanation.
type Severity string

// SuggestionKind separates things the parent can change from plain facts.
type SuggestionKind string

const (
	SourceTherapistAssigned SourceTag = "therapist_assigned"
	SourceParentCritical    SourceTag = "parent_critical"
	SourceParentNormal      SourceTag = "parent_normal"
	SourceLibrary           SourceTag = "library"

	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"

	SuggestionActionable    SuggestionKind = "actionable"
	SuggestionInformational SuggestionKind = "informational"
)

// Slot is a candidate start time that has not been assigned yet.
type Slot struct {
	Time   string    `json:"time"`
	Period TimeBlock `json:"period"`
}

// ExerciseAssignment is what the selector returns for one slot.
type ExerciseAssignment struct {
	Name            string    `json:"name"`
	TherapyType     string    `json:"therapy_type"`
	DurationMinutes int       `json:"duration_minutes"`
	Targets         string    `json:"targets"`
	Tools           string    `json:"tools"`
	Instructions    string    `json:"instructions"`
	Source          SourceTag `json:"source"`
}

// ScheduledExercise is one placed exercise in the week schedule.
type ScheduledExercise struct {
	Time    string    `json:"time"`     // HH:MM
	EndTime string    `json:"end_time"` // HH:MM, includes the trailing break
	Period  TimeBlock `json:"period"`
	NoteKey string    `json:"note_key"` // "<Day>-<HH:MM>"
	ExerciseAssignment
}

// Conflict records a candidate slot rejected by the conflict detector.
type Conflict struct {
	Time    string   `json:"time"`
	Reasons []string `json:"reasons"`
}

type Suggestion struct {
	Kind    SuggestionKind `json:"kind"`
	Message string         `json:"message"`
}

// Explanation tells the parent why a day looks the way it does.
type Explanation struct {
	Severity    Severity     `json:"severity"`
	Message     string       `json:"message"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// WeekSchedule maps each weekday to its time-sorted exercises.
type WeekSchedule = DayMap[ScheduledExercise]

// GenerationContext carries the caller-side identity of a run. It is kept
// apart from the profile so the profile is never mutated.
type GenerationContext struct {
	ProfileID   string
	RunID       string
	Environment string
	Now         time.Time
}

// GenerationResult is the atomic output of one generation run.
type GenerationResult struct {
	RunID          string              `json:"run_id"`
	ProfileID      string              `json:"profile_id"`
	GeneratedAt    time.Time           `json:"generated_at"`
	Schedule       WeekSchedule        `json:"schedule"`
	Conflicts      DayMap[Conflict]    `json:"conflicts"`
	Explanations   DayMap[Explanation] `json:"explanations"`
	TotalScheduled int                 `json:"total_scheduled"`
	ExpectedTotal  int                 `json:"expected_total"`
}
