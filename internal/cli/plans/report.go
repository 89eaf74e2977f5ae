package plans

import (
	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/insights"
	"github.com/julianstephens/homeplan/internal/reminders"
)

type ConflictsCmd struct {
	ProfileID string `arg:"" help:"Profile ID."`
}

func (c *ConflictsCmd) Run(ctx *cli.Context) error {
	result, _, err := ctx.Planner().Latest(c.ProfileID)
	if err != nil {
		return notFound(c.ProfileID, err)
	}
	cli.RenderConflicts(ctx.Out, result)
	return nil
}

type InsightsCmd struct {
	ProfileID string `arg:"" help:"Profile ID."`
	JSON      bool   `name:"json" help:"Print the report as JSON."`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	result, p, err := ctx.Planner().Latest(c.ProfileID)
	if err != nil {
		return notFound(c.ProfileID, err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	report := insights.Analyze(result.Schedule, p, settings)
	if c.JSON {
		return printJSON(ctx, report)
	}
	cli.RenderInsights(ctx.Out, report)
	if recs := insights.Feasibility(p); len(recs) > 0 {
		ctx.Println()
		cli.RenderRecommendations(ctx.Out, recs)
	}
	return nil
}

type RemindersCmd struct {
	ProfileID string `arg:"" help:"Profile ID."`
	JSON      bool   `name:"json" help:"Print the reminders as JSON."`
}

func (c *RemindersCmd) Run(ctx *cli.Context) error {
	result, p, err := ctx.Planner().Latest(c.ProfileID)
	if err != nil {
		return notFound(c.ProfileID, err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	planned := reminders.Plan(result.Schedule, p, settings)
	if c.JSON {
		return printJSON(ctx, planned)
	}
	cli.RenderReminders(ctx.Out, planned)
	return nil
}
