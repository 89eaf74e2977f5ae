// Package planner ties the scheduler to storage: it loads a profile,
// validates it, generates the week and persists the result.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/homeplan/internal/library"
	"github.com/julianstephens/homeplan/internal/logger"
	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/scheduler"
	"github.com/julianstephens/homeplan/internal/storage"
	"github.com/julianstephens/homeplan/internal/validation"
)

// ErrInvalidProfile is returned when validation finds blocking issues and
// the caller did not force generation.
var ErrInvalidProfile = errors.New("profile has blocking issues")

// Options adjusts a single generation run.
type Options struct {
	Force       bool              // generate even when validation reports issues
	Policy      *scheduler.Policy // overrides DefaultPolicy when set
	Environment string            // "cli" or "http", recorded in logs
}

// Outcome is everything a caller may want to show after a run.
type Outcome struct {
	Result     models.GenerationResult
	Validation validation.ValidationResult
	Saved      bool
}

type Service struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{store: store, now: time.Now}
}

// Now returns the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Library returns the lookup chain configured by the current settings.
func (s *Service) Library(settings models.Settings) library.Library {
	return library.New(s.store, time.Duration(settings.LibraryCacheTTLMin)*time.Minute)
}

// Generate builds and stores a new week for profileID. When nothing fits
// the result is returned unsaved together with
// scheduler.ErrNothingScheduled.
func (s *Service) Generate(ctx context.Context, profileID string, opts Options) (Outcome, error) {
	p, err := s.store.GetProfile(profileID)
	if err != nil {
		return Outcome{}, err
	}
	settings, err := s.store.GetSettings()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to get settings: %w", err)
	}

	out := Outcome{Validation: validation.New().ValidateProfile(p)}
	if !out.Validation.IsValid() && !opts.Force {
		return out, fmt.Errorf("%w: %d issue(s)", ErrInvalidProfile, len(out.Validation.Issues))
	}

	sched := scheduler.New(s.Library(settings), scheduler.Resolve(opts.Policy, settings.EarlyMorningEnabled))
	out.Result, err = sched.Build(ctx, p, models.GenerationContext{
		ProfileID:   p.ID,
		Environment: opts.Environment,
		Now:         s.now(),
	})
	if err != nil {
		if errors.Is(err, scheduler.ErrNothingScheduled) {
			return out, err
		}
		return Outcome{}, err
	}

	if err := s.store.SaveGeneration(out.Result); err != nil {
		return out, fmt.Errorf("failed to save schedule: %w", err)
	}
	out.Saved = true
	logger.Info("schedule generated",
		"profile", p.ID,
		"run", out.Result.RunID,
		"scheduled", out.Result.TotalScheduled,
		"expected", out.Result.ExpectedTotal,
		"env", opts.Environment)
	return out, nil
}

// Latest returns the stored week and the profile it belongs to.
func (s *Service) Latest(profileID string) (models.GenerationResult, models.UserProfile, error) {
	p, err := s.store.GetProfile(profileID)
	if err != nil {
		return models.GenerationResult{}, models.UserProfile{}, err
	}
	result, err := s.store.GetGeneration(profileID)
	if err != nil {
		return models.GenerationResult{}, models.UserProfile{}, err
	}
	return result, p, nil
}
