package profiles

import (
	"fmt"

	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/profile"
)

type PrescribeCmd struct {
	Import PrescribeImportCmd `cmd:"" help:"Import therapist-prescribed exercises for a profile."`
}

type PrescribeImportCmd struct {
	ProfileID string `arg:"" help:"Profile ID."`
	File      string `arg:"" type:"existingfile" help:"Exercise list (.yaml, .yml or .json)."`
	Append    bool   `help:"Add to the current prescription instead of replacing it."`
}

func (c *PrescribeImportCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetProfile(c.ProfileID); err != nil {
		return notFound(c.ProfileID, err)
	}
	exercises, err := profile.LoadPrescribed(c.File)
	if err != nil {
		return err
	}

	if c.Append {
		current, err := ctx.Store.GetPrescribedExercises(c.ProfileID)
		if err != nil {
			return fmt.Errorf("failed to get prescribed exercises: %w", err)
		}
		exercises = append(current, exercises...)
	}

	if err := ctx.Store.SavePrescribedExercises(c.ProfileID, exercises); err != nil {
		return fmt.Errorf("failed to save prescribed exercises: %w", err)
	}
	ctx.Printf("✓ %s now has %d prescribed exercise(s)\n", c.ProfileID, len(exercises))
	ctx.Println("  Run 'homeplan plan generate " + c.ProfileID + "' to rebuild the week.")
	return nil
}
