// Package analyzer looks for therapy needs the parent described but has
// not enrolled the child in.
package analyzer

import (
	"strings"

	"github.com/julianstephens/homeplan/internal/models"
)

// Category is a need area detected from free text.
type Category string

const (
	CategorySpeech     Category = "speech"
	CategoryOT         Category = "ot"
	CategoryPhysical   Category = "physical"
	CategoryBehavioral Category = "behavioral"
)

// Categories lists every category in report order.
var Categories = []Category{CategorySpeech, CategoryOT, CategoryPhysical, CategoryBehavioral}

const (
	hitWeight       = 10
	detectThreshold = 20
)

var keywords = map[Category][]string{
	CategorySpeech: {
		"speech", "talking", "words", "vocabulary", "pronunciation",
		"stutter", "articulation", "language", "verbal", "communication",
		"doesn't speak", "delayed speech", "unclear speech",
	},
	CategoryOT: {
		"writing", "fine motor", "pencil", "buttons", "scissors",
		"sensory", "texture", "coordination", "dressing", "eating issues",
		"clumsy", "drops things", "handwriting",
	},
	CategoryPhysical: {
		"walking", "running", "balance", "gross motor", "jumping",
		"stairs", "muscle", "strength", "posture", "falls often",
		"toe walking", "delayed walking",
	},
	CategoryBehavioral: {
		"tantrum", "behavior", "attention", "focus", "hyperactive",
		"aggressive", "social", "autism", "adhd", "emotional",
		"meltdown", "routine", "transition",
	},
}

// Need is the evidence collected for one category.
type Need struct {
	Detected   bool     `json:"detected"`
	Confidence int      `json:"confidence"`
	Indicators []string `json:"indicators"`
}

type Needs map[Category]Need

// Analyze scores the profile description and concerns against each
// keyword list. A category is detected once more than two keywords match.
func Analyze(p models.UserProfile) Needs {
	text := strings.ToLower(p.Description + " " + strings.Join(p.Concerns, " "))
	needs := make(Needs, len(Categories))
	for _, c := range Categories {
		n := Need{Indicators: []string{}}
		for _, kw := range keywords[c] {
			if strings.Contains(text, kw) {
				n.Confidence += hitWeight
				n.Indicators = append(n.Indicators, kw)
			}
		}
		n.Detected = n.Confidence > detectThreshold
		needs[c] = n
	}
	return needs
}

// SuggestedTherapy is a detected need with no matching enrolled therapy.
type SuggestedTherapy struct {
	Kind       models.TherapyKind `json:"kind"`
	Reason     string             `json:"reason"`
	Confidence int                `json:"confidence"`
}

// Suggestions returns one entry per detected speech, OT or physical need
// whose therapy is not enabled on the profile.
func Suggestions(needs Needs, p models.UserProfile) []SuggestedTherapy {
	out := []SuggestedTherapy{}
	for _, c := range []Category{CategorySpeech, CategoryOT, CategoryPhysical} {
		n := needs[c]
		kind := models.TherapyKind(c)
		if !n.Detected || enabled(p, kind) {
			continue
		}
		out = append(out, SuggestedTherapy{
			Kind:       kind,
			Reason:     "Detected: " + strings.Join(n.Indicators, ", "),
			Confidence: n.Confidence,
		})
	}
	return out
}

// Priority ranks an insight message.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

type Insight struct {
	Kind     string   `json:"kind"` // recommendation, tip or warning
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
	Action   string   `json:"action"`
}

// Insights turns detected needs into messages for the parent.
func Insights(needs Needs, p models.UserProfile) []Insight {
	out := []Insight{}
	if needs[CategorySpeech].Detected && !enabled(p, models.TherapySpeech) {
		out = append(out, Insight{
			Kind:     "recommendation",
			Priority: PriorityHigh,
			Message:  "Based on your description, we recommend adding speech exercises. Consider consulting a speech therapist.",
			Action:   "We've added suggested speech activities to your schedule.",
		})
	}
	if needs[CategoryOT].Detected && !enabled(p, models.TherapyOT) {
		out = append(out, Insight{
			Kind:     "recommendation",
			Priority: PriorityMedium,
			Message:  "Fine motor skills development could benefit your child. We've included OT exercises.",
			Action:   "Try these activities and track progress.",
		})
	}
	if needs[CategoryBehavioral].Detected {
		out = append(out, Insight{
			Kind:     "tip",
			Priority: PriorityHigh,
			Message:  "Consistency is key for behavioral improvements. Stick to the schedule as much as possible.",
			Action:   "Use our progress tracking to monitor behavior patterns.",
		})
	}
	return out
}

func enabled(p models.UserProfile, kind models.TherapyKind) bool {
	for _, s := range p.ProfessionalTherapies {
		if s.Kind == kind && s.Enabled {
			return true
		}
	}
	return false
}
