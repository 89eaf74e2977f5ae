package profiles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/homeplan/internal/analyzer"
	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/insights"
	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/profile"
	"github.com/julianstephens/homeplan/internal/storage"
	"github.com/julianstephens/homeplan/internal/utils"
	"github.com/julianstephens/homeplan/internal/validation"
)

type ProfileCmd struct {
	Import ProfileImportCmd `cmd:"" help:"Import a child profile from a YAML or JSON file."`
	Show   ProfileShowCmd   `cmd:"" help:"Show a profile with its validation report."`
	List   ProfileListCmd   `cmd:"" help:"List stored profiles."`
	Delete ProfileDeleteCmd `cmd:"" help:"Delete a profile and everything stored for it."`
	Export ProfileExportCmd `cmd:"" help:"Write a stored profile to a file."`
}

// notFound rewrites a missing-profile error into a friendlier message.
func notFound(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no profile with ID %q (see 'homeplan profile list')", id)
	}
	return err
}

// report prints validation findings, feasibility advice and detected needs.
func report(ctx *cli.Context, p models.UserProfile) {
	cli.RenderValidation(ctx.Out, validation.New().ValidateProfile(p))
	if recs := insights.Feasibility(p); len(recs) > 0 {
		ctx.Println()
		cli.RenderRecommendations(ctx.Out, recs)
	}
	needs := analyzer.Analyze(p)
	suggestions, messages := analyzer.Suggestions(needs, p), analyzer.Insights(needs, p)
	if len(suggestions) > 0 || len(messages) > 0 {
		ctx.Println()
		cli.RenderNeeds(ctx.Out, suggestions, messages)
	}
}

type ProfileImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Profile file (.yaml, .yml or .json)."`
}

func (c *ProfileImportCmd) Run(ctx *cli.Context) error {
	f, err := profile.Load(c.File)
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetProfile(f.ID)
	switch {
	case err == nil:
		f.CreatedAt = existing.CreatedAt
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}
	profile.Touch(&f.UserProfile, ctx.Now())

	if err := ctx.Store.SaveProfile(f.UserProfile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	ctx.Printf("✓ Imported profile %s (%s)\n", f.ID, f.ChildName)
	if f.Policy != nil {
		ctx.Println("  Note: policy overrides are only applied with 'homeplan plan generate --file'.")
	}
	ctx.Println()
	report(ctx, f.UserProfile)
	return nil
}

type ProfileShowCmd struct {
	ID string `arg:"" help:"Profile ID."`
}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(c.ID)
	if err != nil {
		return notFound(c.ID, err)
	}

	ctx.Printf("%s, age %d (%s)\n", p.ChildName, p.ChildAge, p.ID)
	if len(p.Concerns) > 0 {
		ctx.Printf("  Concerns:        %s\n", strings.Join(p.Concerns, ", "))
	}
	r := p.DailyRoutine
	ctx.Printf("  Routine:         breakfast %s, lunch %s, dinner %s, bed %s\n",
		orUnset(r.BreakfastTime), orUnset(r.LunchTime), orUnset(r.DinnerTime), orUnset(r.Bedtime))
	if p.SchoolSchedule.HasSchool {
		ctx.Printf("  School:          %s-%s\n", orUnset(p.SchoolSchedule.StartTime), orUnset(p.SchoolSchedule.EndTime))
	}
	for _, s := range append(append([]models.TherapySession{}, p.ProfessionalTherapies...), p.AdditionalTherapies...) {
		if s.Enabled {
			ctx.Printf("  Therapy:         %s at %s for %s\n", s.Label(), orUnset(s.StartTime), utils.FormatDuration(s.DurationMinutes()))
		}
	}
	a := p.ParentAvailability
	ctx.Printf("  Parent hours:    weekday %s %v, weekend %s %v\n", a.Weekday.Hours, a.Weekday.Blocks, a.Weekend.Hours, a.Weekend.Blocks)
	ctx.Printf("  Priorities:      %d parent, %d prescribed\n", len(p.PriorityExercises), len(p.PrescribedExercises))
	ctx.Println()
	report(ctx, p)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(ctx *cli.Context) error {
	profiles, err := ctx.Store.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		ctx.Println("No profiles found. Import one with 'homeplan profile import <file>'.")
		return nil
	}
	for _, p := range profiles {
		ctx.Printf("  %-38s %-16s age %-3d updated %s\n", p.ID, p.ChildName, p.ChildAge, p.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

type ProfileDeleteCmd struct {
	ID  string `arg:"" help:"Profile ID."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ProfileDeleteCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(c.ID)
	if err != nil {
		return notFound(c.ID, err)
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %s and its schedule, prescriptions and progress?", p.ChildName))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteProfile(c.ID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	ctx.Printf("✓ Deleted profile %s\n", c.ID)
	return nil
}

type ProfileExportCmd struct {
	ID   string `arg:"" help:"Profile ID."`
	File string `arg:"" help:"Destination file (.json for JSON, YAML otherwise)."`
}

func (c *ProfileExportCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(c.ID)
	if err != nil {
		return notFound(c.ID, err)
	}
	if err := profile.Write(c.File, profile.File{UserProfile: p}); err != nil {
		return err
	}
	ctx.Printf("✓ Wrote %s\n", c.File)
	return nil
}
