package storage

import (
	"errors"

	"github.com/julianstephens/homeplan/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profiles
	SaveProfile(models.UserProfile) error
	GetProfile(id string) (models.UserProfile, error)
	ListProfiles() ([]models.UserProfile, error)
	// DeleteProfile removes the profile together with its generation,
	// prescribed exercises and completions.
	DeleteProfile(id string) error

	// Generations
	// SaveGeneration replaces the stored result for the result's profile in
	// one transaction, so readers never see a partially written week.
	SaveGeneration(models.GenerationResult) error
	GetGeneration(profileID string) (models.GenerationResult, error)

	// Prescribed exercises
	SavePrescribedExercises(profileID string, exercises []models.PrescribedExercise) error
	GetPrescribedExercises(profileID string) ([]models.PrescribedExercise, error)

	// Exercise library
	AddLibraryExercise(models.LibraryExercise) error
	QueryLibrary(models.LibraryQuery) ([]models.LibraryExercise, error)
	ListLibrary() ([]models.LibraryExercise, error)

	// Completions
	AddCompletion(models.Completion) error
	// GetCompletions returns completions for a profile with startDay <= date
	// <= endDay. Empty bounds are open.
	GetCompletions(profileID, startDay, endDay string) ([]models.Completion, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by providers backed by the embedded SQL
// migrations.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}
