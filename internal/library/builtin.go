package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/homeplan/internal/models"
)

type catalogEntry struct {
	name     string
	targets  string
	duration int
}

// catalog is the built-in starter set, four activities per discipline.
var catalog = []struct {
	therapy    string
	skillAreas []string
	tools      []string
	entries    []catalogEntry
}{
	{
		therapy:    "Speech",
		skillAreas: []string{"speech", "communication"},
		tools:      []string{"Mirror", "Bubbles", "Picture book"},
		entries: []catalogEntry{
			{"Mirror Practice", "Practice sounds in mirror", 5},
			{"Bubble Blowing", "Strengthen mouth muscles", 5},
			{"Story Time", "Read and repeat words", 10},
			{"Sound Games", "Practice target sounds", 10},
		},
	},
	{
		therapy:    "OT",
		skillAreas: []string{"fine_motor", "sensory", "feeding", "daily", "school"},
		tools:      []string{"Playdough", "Beads", "Child scissors"},
		entries: []catalogEntry{
			{"Playdough Fun", "Strengthen hand muscles", 10},
			{"Bead Threading", "Fine motor practice", 10},
			{"Cutting Practice", "Scissor skills", 5},
			{"Sensory Bin", "Tactile exploration", 5},
		},
	},
	{
		therapy:    "PT",
		skillAreas: []string{"physical", "balance", "gross_motor"},
		tools:      []string{"Cushions", "Ball", "Yoga mat"},
		entries: []catalogEntry{
			{"Obstacle Course", "Balance and coordination", 10},
			{"Ball Games", "Gross motor skills", 10},
			{"Yoga Poses", "Strength and flexibility", 5},
			{"Dance Party", "Movement and rhythm", 5},
		},
	},
	{
		therapy:    "ABA",
		skillAreas: []string{"behavior", "social", "emotional"},
		tools:      []string{"Token board", "Story cards"},
		entries: []catalogEntry{
			{"Token Board", "Reward positive behavior", 10},
			{"Social Stories", "Practice social scenarios", 10},
			{"Choice Making", "Decision skills", 5},
			{"Calm Down Corner", "Self-regulation practice", 5},
		},
	},
}

// ageVariant swaps in simpler or harder activities by age.
func ageVariant(name string, age int) string {
	switch {
	case age < 3:
		switch name {
		case "Mirror Practice":
			return "Peek-a-boo Sounds"
		case "Playdough Fun":
			return "Finger Painting"
		}
	case age > 6:
		switch name {
		case "Story Time":
			return "Conversation Practice"
		case "Bead Threading":
			return "Writing Practice"
		}
	}
	return name
}

// Catalog returns the built-in exercises adjusted for age.
func Catalog(age int) []models.LibraryExercise {
	var out []models.LibraryExercise
	for _, group := range catalog {
		for i, e := range group.entries {
			out = append(out, models.LibraryExercise{
				ID:              fmt.Sprintf("builtin-%s-%d", strings.ToLower(group.therapy), i+1),
				Name:            ageVariant(e.name, age),
				TherapyTypes:    []string{group.therapy},
				SkillAreas:      group.skillAreas,
				Targets:         []string{e.targets},
				DurationMinutes: e.duration,
				Tools:           group.tools,
				HowTo:           e.targets,
				MinAge:          0,
				MaxAge:          18,
			})
		}
	}
	return out
}

// CatalogFor returns the built-in exercises for one discipline.
func CatalogFor(therapy string, age int) []models.LibraryExercise {
	var out []models.LibraryExercise
	for _, e := range Catalog(age) {
		if strings.EqualFold(e.TherapyTypes[0], therapy) {
			out = append(out, e)
		}
	}
	return out
}

type builtin struct{}

// Builtin returns a Library over the built-in catalog.
func Builtin() Library {
	return builtin{}
}

func (builtin) Lookup(ctx context.Context, q models.LibraryQuery) ([]models.LibraryExercise, error) {
	return Static(Catalog(q.MinAge)).Lookup(ctx, q)
}
