// Package library supplies general exercises once a child's priority pool
// is exhausted. Sources compose: a store-backed library can be wrapped
// with retries and a TTL cache and backed by the built-in catalog.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/homeplan/internal/models"
)

// ErrUnavailable is returned when a library source cannot be reached.
var ErrUnavailable = errors.New("exercise library unavailable")

// Library looks up exercises for an age range and concern set. Results
// must be in a stable order so that round-robin selection is repeatable.
type Library interface {
	Lookup(ctx context.Context, q models.LibraryQuery) ([]models.LibraryExercise, error)
}

// Func adapts a plain function to the Library interface.
type Func func(ctx context.Context, q models.LibraryQuery) ([]models.LibraryExercise, error)

func (f Func) Lookup(ctx context.Context, q models.LibraryQuery) ([]models.LibraryExercise, error) {
	return f(ctx, q)
}

// Static serves a fixed list of exercises, filtered by the query.
type Static []models.LibraryExercise

func (s Static) Lookup(ctx context.Context, q models.LibraryQuery) ([]models.LibraryExercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []models.LibraryExercise
	for _, e := range s {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Fallback consults each library in turn and returns the first non-empty
// result. Errors are only returned when every library fails.
type Fallback []Library

func (f Fallback) Lookup(ctx context.Context, q models.LibraryQuery) ([]models.LibraryExercise, error) {
	var errs []error
	for _, lib := range f {
		exercises, err := lib.Lookup(ctx, q)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(exercises) > 0 {
			return exercises, nil
		}
	}
	if len(errs) == len(f) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, nil
}

// LoadFile reads library exercises from a YAML or JSON file. The format is
// chosen by extension; anything other than .json is parsed as YAML.
func LoadFile(path string) ([]models.LibraryExercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	var exercises []models.LibraryExercise
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &exercises)
	} else {
		err = yaml.Unmarshal(data, &exercises)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse library file %s: %w", path, err)
	}

	for i := range exercises {
		if err := exercises[i].Validate(); err != nil {
			return nil, fmt.Errorf("exercise %d (%s): %w", i+1, exercises[i].Name, err)
		}
	}
	return exercises, nil
}
