package completions

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/constants"
	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/progress"
	"github.com/julianstephens/homeplan/internal/storage"
	"github.com/julianstephens/homeplan/internal/utils"
)

type ProgressCmd struct {
	Log  ProgressLogCmd  `cmd:"" help:"Log a completed, partial or skipped exercise."`
	Show ProgressShowCmd `cmd:"" help:"Show streak, this week's activity and per-category completion."`
}

type ProgressLogCmd struct {
	ProfileID string `arg:"" help:"Profile ID."`
	Exercise  string `arg:"" help:"Exercise name as shown in the plan."`
	Status    string `help:"complete, partial or skipped." default:"complete" enum:"complete,partial,skipped"`
	Date      string `help:"Date (YYYY-MM-DD or 'today')." default:"today"`
	Time      string `help:"Time the exercise was done (HH:MM)."`
	Type      string `help:"Therapy type. Looked up in the stored plan when omitted."`
	Notes     string `help:"Free-form notes."`
}

func (c *ProgressLogCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetProfile(c.ProfileID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no profile with ID %q", c.ProfileID)
		}
		return err
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	date := today
	if c.Date != "today" {
		if date, err = utils.ParseDateInLocation(c.Date, today.Location()); err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
		}
	}

	entry := models.Completion{
		ProfileID:    c.ProfileID,
		Date:         date.Format(constants.DateFormat),
		Time:         c.Time,
		ExerciseName: strings.TrimSpace(c.Exercise),
		TherapyType:  c.Type,
		Status:       models.CompletionStatus(c.Status),
		Notes:        c.Notes,
		CreatedAt:    ctx.Now(),
	}
	if entry.TherapyType == "" {
		entry.TherapyType = c.lookupType(ctx, date.Weekday())
	}

	if err := ctx.Store.AddCompletion(entry); err != nil {
		return fmt.Errorf("failed to log progress: %w", err)
	}
	ctx.Printf("✓ Logged %s as %s on %s\n", entry.ExerciseName, entry.Status, entry.Date)
	return nil
}

// lookupType finds the exercise in the stored plan, preferring the given
// day. It returns "" when there is no plan or no match.
func (c *ProgressLogCmd) lookupType(ctx *cli.Context, day time.Weekday) string {
	result, err := ctx.Store.GetGeneration(c.ProfileID)
	if err != nil {
		return ""
	}
	days := append([]time.Weekday{day}, models.ScheduleWeekOrder...)
	for _, d := range days {
		for _, e := range result.Schedule[d] {
			if strings.EqualFold(e.Name, strings.TrimSpace(c.Exercise)) {
				return e.TherapyType
			}
		}
	}
	return ""
}

type ProgressShowCmd struct {
	ProfileID string `arg:"" help:"Profile ID."`
}

var statusMarks = map[models.CompletionStatus]string{
	models.CompletionComplete: "✓",
	models.CompletionPartial:  "◐",
	models.CompletionSkipped:  "✗",
}

func (c *ProgressShowCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	from := today.AddDate(-1, 0, 0).Format(constants.DateFormat)
	completions, err := ctx.Store.GetCompletions(c.ProfileID, from, today.Format(constants.DateFormat))
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}

	ctx.Printf("Current streak: %d day(s)\n\n", progress.Streak(completions, today))

	ctx.Println("This week:")
	for _, d := range progress.WeekActivity(completions, today) {
		mark := statusMarks[d.Status]
		if mark == "" {
			mark = "·"
		}
		ctx.Printf("  %s %-9s %s (%d logged)\n", mark, d.Weekday, d.Date, d.Logged)
	}

	result, err := ctx.Store.GetGeneration(c.ProfileID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	weekStart := today.AddDate(0, 0, -int(today.Weekday())).Format(constants.DateFormat)
	var thisWeek []models.Completion
	for _, entry := range completions {
		if entry.Date >= weekStart {
			thisWeek = append(thisWeek, entry)
		}
	}
	ctx.Println("\nBy category (this week vs. plan):")
	for _, s := range progress.CategoryStats(result.Schedule, thisWeek) {
		ctx.Printf("  %-9s %2d/%-2d %3d%%\n", s.Name, s.Completed, s.Scheduled, s.Percentage)
	}
	return nil
}
