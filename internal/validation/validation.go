package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/homeplan/internal/models"
)

// FindingType identifies which rule produced a finding
type FindingType string

const (
	FindingInvalidProfile   FindingType = "invalid_profile"
	FindingNoParentHours    FindingType = "no_parent_hours"
	FindingNoWeekdayBlocks  FindingType = "no_weekday_blocks"
	FindingNoWeekendBlocks  FindingType = "no_weekend_blocks"
	FindingMorningSessions  FindingType = "morning_sessions_recommended"
	FindingHighCommitment   FindingType = "high_time_commitment"
	FindingIntensiveTherapy FindingType = "intensive_therapy"
)

// Severity separates blocking issues from advice
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Finding is one problem or piece of advice about a profile
type Finding struct {
	Type     FindingType `json:"type"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Detail   string      `json:"detail"`
	Fix      string      `json:"fix"`
}

// ValidationResult holds the blocking issues and non-blocking warnings
type ValidationResult struct {
	Issues   []Finding `json:"issues"`
	Warnings []Finding `json:"warnings"`
}

// IsValid returns true if nothing blocks schedule generation
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Issues) == 0
}

// FormatReport returns a human-readable report of all findings
func (vr *ValidationResult) FormatReport() string {
	if vr.IsValid() && len(vr.Warnings) == 0 {
		return "No problems detected."
	}

	var b strings.Builder
	if len(vr.Issues) > 0 {
		b.WriteString("Issues:\n")
		for _, f := range vr.Issues {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", f.Message, f.Detail, f.Fix)
		}
	}
	if len(vr.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, f := range vr.Warnings {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", f.Message, f.Detail, f.Fix)
		}
	}
	return b.String()
}

// Thresholds for the warning rules.
const (
	youngChildAge        = 5
	maxParentWeeklyHours = 20
	maxTherapyHours      = 30
)

// Validator checks profiles before a schedule is generated
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateProfile runs every availability rule against p
func (v *Validator) ValidateProfile(p models.UserProfile) ValidationResult {
	result := ValidationResult{Issues: []Finding{}, Warnings: []Finding{}}

	if err := p.Validate(); err != nil {
		result.Issues = append(result.Issues, Finding{
			Type:     FindingInvalidProfile,
			Severity: SeverityCritical,
			Message:  "Invalid Profile",
			Detail:   err.Error(),
			Fix:      "Correct the profile file and import it again",
		})
	}

	avail := p.ParentAvailability
	weekly := avail.WeeklyHours()

	if weekly.IsZero() {
		result.Issues = append(result.Issues, Finding{
			Type:     FindingNoParentHours,
			Severity: SeverityCritical,
			Message:  "No Parent Hours Set",
			Detail:   "You must allocate some time for home exercises",
			Fix:      "Set at least 30 minutes on weekdays or weekends",
		})
	}

	if p.ChildAge > 0 && p.ChildAge < youngChildAge &&
		!avail.Weekday.HasBlock(models.BlockEarlyMorning) && !avail.Weekday.HasBlock(models.BlockMorning) {
		result.Warnings = append(result.Warnings, Finding{
			Type:     FindingMorningSessions,
			Severity: SeverityWarning,
			Message:  "Morning Sessions Recommended",
			Detail:   "Young children often respond better to morning therapy",
			Fix:      "Consider selecting morning time blocks",
		})
	}

	if weekly.GreaterThan(decimal.NewFromInt(maxParentWeeklyHours)) {
		result.Warnings = append(result.Warnings, Finding{
			Type:     FindingHighCommitment,
			Severity: SeverityWarning,
			Message:  "High Time Commitment",
			Detail:   fmt.Sprintf("You've committed %s hours/week. This may be challenging to maintain.", weekly),
			Fix:      "Consider starting with fewer hours and increasing gradually",
		})
	}

	if avail.Weekday.Hours.IsPositive() && len(avail.Weekday.Blocks) == 0 {
		result.Issues = append(result.Issues, Finding{
			Type:     FindingNoWeekdayBlocks,
			Severity: SeverityCritical,
			Message:  "No Weekday Time Blocks Selected",
			Detail:   fmt.Sprintf("You set %s hours but didn't select when", avail.Weekday.Hours),
			Fix:      "Select specific time blocks for weekdays",
		})
	}
	if avail.Weekend.Hours.IsPositive() && len(avail.Weekend.Blocks) == 0 {
		result.Issues = append(result.Issues, Finding{
			Type:     FindingNoWeekendBlocks,
			Severity: SeverityCritical,
			Message:  "No Weekend Time Blocks Selected",
			Detail:   fmt.Sprintf("You set %s hours but didn't select when", avail.Weekend.Hours),
			Fix:      "Select specific time blocks for weekends",
		})
	}

	if hours := therapyHours(p); hours.GreaterThan(decimal.NewFromInt(maxTherapyHours)) {
		result.Warnings = append(result.Warnings, Finding{
			Type:     FindingIntensiveTherapy,
			Severity: SeverityInfo,
			Message:  "Intensive Therapy Schedule",
			Detail:   fmt.Sprintf("Child receives %s hours of professional therapy weekly", hours),
			Fix:      "Home exercises should complement, not overwhelm",
		})
	}

	return result
}

// therapyHours sums session hours times days per week for enabled
// professional therapies. Sessions without a duration count as zero.
func therapyHours(p models.UserProfile) decimal.Decimal {
	total := decimal.Zero
	for _, s := range p.ProfessionalTherapies {
		if !s.Enabled {
			continue
		}
		total = total.Add(s.DurationHours.Mul(decimal.NewFromInt(int64(len(s.Days)))))
	}
	return total
}
