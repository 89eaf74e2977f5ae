package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/homeplan/internal/analyzer"
	"github.com/julianstephens/homeplan/internal/insights"
	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/reminders"
	"github.com/julianstephens/homeplan/internal/utils"
	"github.com/julianstephens/homeplan/internal/validation"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// RenderWeek prints a generated week in schedule order with each day's
// explanations underneath.
func RenderWeek(w io.Writer, result models.GenerationResult) {
	fmt.Fprintf(w, "%s %s\n", dayStyle.Render("Weekly plan"),
		mutedStyle.Render(fmt.Sprintf("(%d of %d exercises, generated %s)",
			result.TotalScheduled, result.ExpectedTotal, result.GeneratedAt.Local().Format("2006-01-02 15:04"))))

	for _, day := range models.ScheduleWeekOrder {
		exercises := result.Schedule[day]
		minutes := 0
		for _, e := range exercises {
			minutes += e.DurationMinutes
		}
		fmt.Fprintf(w, "\n%s %s\n", dayStyle.Render(day.String()),
			mutedStyle.Render(fmt.Sprintf("%d exercises, %s", len(exercises), utils.FormatDuration(minutes))))

		for _, e := range exercises {
			fmt.Fprintf(w, "  %s  %s %s\n",
				timeStyle.Render(e.Time+"-"+e.EndTime),
				nameStyle.Render(e.Name),
				mutedStyle.Render(fmt.Sprintf("(%s, %d min)", e.TherapyType, e.DurationMinutes)))
		}
		for _, ex := range result.Explanations[day] {
			style := mutedStyle
			if ex.Severity == models.SeverityWarning {
				style = warningStyle
			}
			fmt.Fprintf(w, "  %s\n", style.Render(ex.Message))
			for _, s := range ex.Suggestions {
				fmt.Fprintf(w, "    - %s\n", s.Message)
			}
		}
	}
}

// RenderConflicts lists rejected slots and their reasons.
func RenderConflicts(w io.Writer, result models.GenerationResult) {
	if result.Conflicts.Total() == 0 {
		fmt.Fprintln(w, successStyle.Render("No conflicts were recorded."))
		return
	}
	for _, day := range models.ScheduleWeekOrder {
		conflicts := result.Conflicts[day]
		if len(conflicts) == 0 {
			continue
		}
		fmt.Fprintln(w, dayStyle.Render(day.String()))
		for _, c := range conflicts {
			fmt.Fprintf(w, "  %s  %s\n", timeStyle.Render(c.Time), strings.Join(c.Reasons, "; "))
		}
	}
}

// RenderInsights prints an insights report.
func RenderInsights(w io.Writer, r insights.Report) {
	fmt.Fprintln(w, dayStyle.Render("Insights"))
	fmt.Fprintf(w, "  Total exercises:  %d (avg %d/day)\n", r.TotalExercises, r.AveragePerDay)
	fmt.Fprintf(w, "  Busiest day:      %s (%d)\n", r.BusiestDay.Day, r.BusiestDay.Count)
	fmt.Fprintf(w, "  Lightest day:     %s (%d)\n", r.LightestDay.Day, r.LightestDay.Count)
	d := r.TimeDistribution
	fmt.Fprintf(w, "  Time of day:      morning %d, afternoon %d, evening %d, night %d\n",
		d.Morning, d.Afternoon, d.Evening, d.Night)

	if len(r.TherapyBreakdown) > 0 {
		fmt.Fprintln(w, "\n"+dayStyle.Render("Therapy breakdown"))
		for _, share := range r.TherapyBreakdown {
			fmt.Fprintf(w, "  %-36s %3d  %3d%%\n", share.Type, share.Count, share.Percentage)
		}
	}
	for _, warning := range r.FeasibilityWarnings {
		fmt.Fprintln(w, warningStyle.Render("! "+warning))
	}
	for _, tip := range r.Tips {
		fmt.Fprintln(w, mutedStyle.Render("* "+tip))
	}
}

// RenderRecommendations prints pre-generation feasibility advice.
func RenderRecommendations(w io.Writer, recs []insights.Recommendation) {
	for _, rec := range recs {
		style := mutedStyle
		if rec.Kind == insights.RecommendationWarning {
			style = warningStyle
		}
		fmt.Fprintln(w, style.Render(rec.Message))
		if rec.Suggestion != "" {
			fmt.Fprintf(w, "  %s\n", rec.Suggestion)
		}
	}
}

// RenderValidation prints the validation report, highlighting blocking
// issues.
func RenderValidation(w io.Writer, vr validation.ValidationResult) {
	report := vr.FormatReport()
	if !vr.IsValid() {
		report = dangerStyle.Render("Profile has blocking issues") + "\n" + report
	}
	fmt.Fprintln(w, report)
}

// RenderReminders prints planned reminders per day.
func RenderReminders(w io.Writer, planned models.DayMap[reminders.Reminder]) {
	if planned.Total() == 0 {
		fmt.Fprintln(w, "No reminders planned.")
		return
	}
	for _, day := range models.ScheduleWeekOrder {
		if len(planned[day]) == 0 {
			continue
		}
		fmt.Fprintln(w, dayStyle.Render(day.String()))
		for _, r := range planned[day] {
			fmt.Fprintf(w, "  %s  %s %s\n", timeStyle.Render(r.Time), nameStyle.Render(r.Title), mutedStyle.Render(r.Body))
		}
	}
}

// RenderNeeds prints therapies suggested by the description analysis.
func RenderNeeds(w io.Writer, suggestions []analyzer.SuggestedTherapy, messages []analyzer.Insight) {
	if len(suggestions) == 0 && len(messages) == 0 {
		return
	}
	fmt.Fprintln(w, dayStyle.Render("Possible additional needs"))
	for _, s := range suggestions {
		fmt.Fprintf(w, "  %s %s\n", nameStyle.Render(string(s.Kind)),
			mutedStyle.Render(fmt.Sprintf("(confidence %d) %s", s.Confidence, s.Reason)))
	}
	for _, m := range messages {
		style := mutedStyle
		if m.Priority == analyzer.PriorityHigh {
			style = warningStyle
		}
		fmt.Fprintf(w, "  %s\n", style.Render(m.Message))
		if m.Action != "" {
			fmt.Fprintf(w, "    %s\n", m.Action)
		}
	}
}
