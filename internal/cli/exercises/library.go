package exercises

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/library"
	"github.com/julianstephens/homeplan/internal/models"
)

type LibraryCmd struct {
	Import LibraryImportCmd `cmd:"" help:"Import exercises into the library from a YAML or JSON file."`
	List   LibraryListCmd   `cmd:"" help:"List library exercises."`
}

type LibraryImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Exercise file (.yaml, .yml or .json)."`
}

func (c *LibraryImportCmd) Run(ctx *cli.Context) error {
	exercises, err := library.LoadFile(c.File)
	if err != nil {
		return err
	}
	for _, e := range exercises {
		if err := ctx.Store.AddLibraryExercise(e); err != nil {
			return fmt.Errorf("failed to import %s: %w", e.Name, err)
		}
	}
	ctx.Printf("✓ Imported %d exercise(s)\n", len(exercises))
	return nil
}

type LibraryListCmd struct {
	Age     int      `help:"Only exercises suitable for this age." default:"-1"`
	Concern []string `help:"Only exercises covering one of these skill areas."`
	Builtin bool     `help:"Resolve through the full lookup chain, including the built-in catalog."`
}

func (c *LibraryListCmd) Run(ctx *cli.Context) error {
	exercises, err := c.lookup(ctx)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		ctx.Println("No exercises found.")
		return nil
	}
	for _, e := range exercises {
		ctx.Printf("  %-28s %3d min  ages %d-%d  %s\n",
			e.Name, e.DurationMinutes, e.MinAge, e.MaxAge, strings.Join(e.SkillAreas, ", "))
	}
	return nil
}

func (c *LibraryListCmd) lookup(ctx *cli.Context) ([]models.LibraryExercise, error) {
	if c.Age < 0 && len(c.Concern) == 0 && !c.Builtin {
		return ctx.Store.ListLibrary()
	}

	age := c.Age
	if age < 0 {
		age = 0
	}
	q := models.LibraryQuery{MinAge: age, MaxAge: age, Concerns: c.Concern}
	if !c.Builtin {
		return ctx.Store.QueryLibrary(q)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return nil, err
	}
	return ctx.Planner().Library(settings).Lookup(context.Background(), q)
}
