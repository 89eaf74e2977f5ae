// Package profile reads and writes profile files. A profile file is a
// UserProfile document with an optional policy section that overrides
// scheduling constants for that child.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/scheduler"
)

type File struct {
	models.UserProfile `yaml:",inline"`
	Policy *scheduler.Policy `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// EffectivePolicy returns the file's overrides merged over the defaults.
// The early morning flag from settings applies unless the file enables it.
func (f File) EffectivePolicy(settings models.Settings) scheduler.Policy {
	return scheduler.Resolve(f.Policy, settings.EarlyMorningEnabled)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Parse decodes a profile document. JSON is detected by a leading brace;
// anything else is read as YAML.
func Parse(data []byte) (File, error) {
	var f File
	var err error
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return File{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if err := f.Validate(); err != nil {
		return File{}, fmt.Errorf("invalid profile: %w", err)
	}
	return f, nil
}

// Load reads and validates a profile file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read profile file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Write saves f to path, as JSON when the extension is .json and YAML
// otherwise.
func Write(path string, f File) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(f, "", "  ")
	} else {
		data, err = yaml.Marshal(f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}
	return nil
}

// Touch stamps creation and update times on an imported profile.
func Touch(p *models.UserProfile, now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
