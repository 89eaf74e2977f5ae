package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/scheduler"
	"github.com/julianstephens/homeplan/internal/storage"
	"github.com/julianstephens/homeplan/internal/utils"
	"github.com/julianstephens/homeplan/internal/validation"
)

type check struct {
	name    string
	needsDB bool
	run     func(*cli.Context) error
}

var checks = []check{
	{"Database reachable", false, checkDBReachable},
	{"Schema version", true, checkSchemaVersion},
	{"Backups present", false, checkBackupsPresent},
	{"Settings", true, checkSettings},
	{"Profile validation", true, checkProfiles},
	{"Stored schedules", true, checkSchedules},
	{"Exercise library", true, checkLibrary},
	{"Clock/timezone", false, checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var w *warning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &w):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %s\n", w.msg)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
		if c.name == "Database reachable" {
			dbReachable = err == nil
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

// warning is a check result that is reported but does not fail the run.
type warning struct{ msg string }

func (w *warning) Error() string { return w.msg }

func warn(format string, args ...any) error {
	return &warning{msg: fmt.Sprintf(format, args...)}
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d - run 'homeplan migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return nil
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warn("no backups found - consider creating one with 'homeplan backup create'")
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone setting %q", s.Timezone)
	}
	for key, value := range map[string]string{
		"quiet_hours_start":     s.QuietHoursStart,
		"quiet_hours_end":       s.QuietHoursEnd,
		"morning_briefing_time": s.MorningBriefingTime,
	} {
		if value != "" && !utils.ValidateTimeFormat(value) {
			return fmt.Errorf("invalid %s setting %q", key, value)
		}
	}
	return nil
}

func checkProfiles(ctx *cli.Context) error {
	profiles, err := ctx.Store.ListProfiles()
	if err != nil {
		return err
	}
	v := validation.New()
	var blocked []string
	for _, p := range profiles {
		result := v.ValidateProfile(p)
		if !result.IsValid() {
			blocked = append(blocked, displayName(p))
		}
	}
	if len(blocked) > 0 {
		return warn("%d profile(s) cannot be scheduled as is: %v - run 'homeplan profile show <id>' for details", len(blocked), blocked)
	}
	return nil
}

// checkSchedules flags schedules generated before their profile last
// changed.
func checkSchedules(ctx *cli.Context) error {
	profiles, err := ctx.Store.ListProfiles()
	if err != nil {
		return err
	}
	var stale []string
	for _, p := range profiles {
		result, err := ctx.Store.GetGeneration(p.ID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load schedule for %s: %w", p.ID, err)
		}
		if result.ProfileID != p.ID {
			return fmt.Errorf("schedule stored under %s belongs to %s", p.ID, result.ProfileID)
		}
		if result.GeneratedAt.Before(p.UpdatedAt) {
			stale = append(stale, displayName(p))
		}
	}
	if len(stale) > 0 {
		return warn("schedules older than their profile: %v - run 'homeplan plan generate'", stale)
	}
	return nil
}

func checkLibrary(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	lookupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	age := scheduler.DefaultChildAge
	exercises, err := ctx.Planner().Library(settings).Lookup(lookupCtx, models.LibraryQuery{MinAge: age, MaxAge: age})
	if err != nil {
		return fmt.Errorf("library lookup failed: %w", err)
	}
	if len(exercises) == 0 {
		return warn("no library exercises available for age %d", age)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock appears to be wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation("UTC"); err != nil {
		return fmt.Errorf("timezone database unavailable: %w", err)
	}
	return nil
}

func displayName(p models.UserProfile) string {
	if p.ChildName != "" {
		return fmt.Sprintf("%s (%s)", p.ChildName, p.ID)
	}
	return p.ID
}
