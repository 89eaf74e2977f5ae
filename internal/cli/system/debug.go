package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/storage"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpProfile  DebugDumpProfileCmd  `cmd:"" help:"Dump a stored profile as JSON."`
	DumpSchedule DebugDumpScheduleCmd `cmd:"" help:"Dump the stored generation result as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpProfileCmd struct {
	ID string `arg:"" help:"Profile ID."`
}

func (cmd *DebugDumpProfileCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no profile found with ID: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}
	return printJSON(ctx, p)
}

type DebugDumpScheduleCmd struct {
	ID string `arg:"" help:"Profile ID."`
}

func (cmd *DebugDumpScheduleCmd) Run(ctx *cli.Context) error {
	result, err := ctx.Store.GetGeneration(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no schedule found for profile: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	return printJSON(ctx, result)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings)
}
