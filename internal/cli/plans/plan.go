package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/homeplan/internal/cli"
	apperrors "github.com/julianstephens/homeplan/internal/errors"
	"github.com/julianstephens/homeplan/internal/planner"
	"github.com/julianstephens/homeplan/internal/profile"
	"github.com/julianstephens/homeplan/internal/scheduler"
	"github.com/julianstephens/homeplan/internal/storage"
)

type PlanCmd struct {
	Generate PlanGenerateCmd `cmd:"" help:"Generate the weekly home exercise schedule."`
	Show     PlanShowCmd     `cmd:"" help:"Show the stored weekly schedule."`
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}

func notFound(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.WithHint(err, "generate one with 'homeplan plan generate "+id+"'")
	}
	return err
}

type PlanGenerateCmd struct {
	ProfileID string `arg:"" optional:"" help:"Stored profile ID. Omit when --file is given."`
	File      string `short:"f" type:"existingfile" help:"Import this profile file first and apply its policy overrides."`
	Force     bool   `help:"Generate even when the profile has blocking issues."`
	JSON      bool   `name:"json" help:"Print the result as JSON."`
}

func (c *PlanGenerateCmd) Run(ctx *cli.Context) error {
	id := c.ProfileID
	var policy *scheduler.Policy
	if c.File != "" {
		f, err := profile.Load(c.File)
		if err != nil {
			return err
		}
		if id != "" && id != f.ID {
			return fmt.Errorf("profile file is for %q, not %q", f.ID, id)
		}
		if existing, err := ctx.Store.GetProfile(f.ID); err == nil {
			f.CreatedAt = existing.CreatedAt
		}
		profile.Touch(&f.UserProfile, ctx.Now())
		if err := ctx.Store.SaveProfile(f.UserProfile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		id, policy = f.ID, f.Policy
	}
	if id == "" {
		return errors.New("a profile ID or --file is required")
	}

	// Back up before an existing week is replaced.
	if _, err := ctx.Store.GetGeneration(id); err == nil {
		ctx.PerformAutomaticBackup()
	}

	out, err := ctx.Planner().Generate(context.Background(), id, planner.Options{
		Force:       c.Force,
		Policy:      policy,
		Environment: "cli",
	})
	switch {
	case errors.Is(err, planner.ErrInvalidProfile):
		cli.RenderValidation(ctx.Out, out.Validation)
		return apperrors.WithHint(err, "fix the profile and import it again, or pass --force")
	case errors.Is(err, scheduler.ErrNothingScheduled):
		cli.RenderWeek(ctx.Out, out.Result)
		return apperrors.WithHint(err, "the previous schedule, if any, was kept")
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.WithHint(err, "import the profile with 'homeplan profile import <file>'")
	case err != nil:
		return err
	}

	if c.JSON {
		return printJSON(ctx, out.Result)
	}
	if len(out.Validation.Warnings) > 0 || !out.Validation.IsValid() {
		cli.RenderValidation(ctx.Out, out.Validation)
	}
	cli.RenderWeek(ctx.Out, out.Result)
	return nil
}

type PlanShowCmd struct {
	ProfileID string `arg:"" help:"Profile ID."`
	JSON      bool   `name:"json" help:"Print the result as JSON."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	result, _, err := ctx.Planner().Latest(c.ProfileID)
	if err != nil {
		return notFound(c.ProfileID, err)
	}
	if c.JSON {
		return printJSON(ctx, result)
	}
	cli.RenderWeek(ctx.Out, result)
	return nil
}
