package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/homeplan/internal/models"
)

// LoadPrescribed reads a therapist's exercise list from a YAML or JSON
// file.
func LoadPrescribed(path string) ([]models.PrescribedExercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prescribed exercises: %w", err)
	}

	var exercises []models.PrescribedExercise
	if isJSON(path) {
		err = json.Unmarshal(data, &exercises)
	} else {
		err = yaml.Unmarshal(data, &exercises)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i, e := range exercises {
		switch {
		case strings.TrimSpace(e.Name) == "":
			return nil, fmt.Errorf("exercise %d: name cannot be empty", i+1)
		case e.DurationMinutes < 0:
			return nil, fmt.Errorf("exercise %d (%s): duration cannot be negative", i+1, e.Name)
		case e.FrequencyPerDay < 0:
			return nil, fmt.Errorf("exercise %d (%s): frequency cannot be negative", i+1, e.Name)
		}
	}
	return exercises, nil
}
