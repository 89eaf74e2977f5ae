package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/storage"
	"github.com/julianstephens/homeplan/internal/storage/postgres"
	"github.com/julianstephens/homeplan/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized homeplan storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

// reset deletes the SQLite file behind the store. PostgreSQL databases
// are never dropped.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	dbPath, err := filepath.Abs(ctx.Store.GetConfigPath())
	if err != nil {
		dbPath = ctx.Store.GetConfigPath()
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func openSource(source string) (storage.Provider, error) {
	if !storage.IsPostgres(source) {
		return sqlite.NewStore(source), nil
	}
	if valid, err := postgres.ValidateConnString(source); !valid {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
		}
		return nil, err
	}
	return postgres.New(source), nil
}

func (c *InitCmd) copyData(ctx *cli.Context, source string) error {
	src, err := openSource(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	ctx.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Copying exercise library...")
	exercises, err := src.ListLibrary()
	if err != nil {
		return fmt.Errorf("failed to get library from source: %w", err)
	}
	for _, e := range exercises {
		if err := ctx.Store.AddLibraryExercise(e); err != nil {
			return fmt.Errorf("failed to add library exercise %s: %w", e.ID, err)
		}
	}
	ctx.Printf("    Copied %d library exercises\n", len(exercises))

	ctx.Println("  Copying profiles...")
	profiles, err := src.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to get profiles from source: %w", err)
	}
	var schedules, completions int
	for _, p := range profiles {
		if p.PrescribedExercises, err = src.GetPrescribedExercises(p.ID); err != nil {
			return fmt.Errorf("failed to get prescribed exercises for %s: %w", p.ID, err)
		}
		if err := ctx.Store.SaveProfile(p); err != nil {
			return fmt.Errorf("failed to save profile %s: %w", p.ID, err)
		}

		result, err := src.GetGeneration(p.ID)
		switch {
		case err == nil:
			if err := ctx.Store.SaveGeneration(result); err != nil {
				return fmt.Errorf("failed to save schedule for %s: %w", p.ID, err)
			}
			schedules++
		case !errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("failed to get schedule for %s: %w", p.ID, err)
		}

		logged, err := src.GetCompletions(p.ID, "", "")
		if err != nil {
			return fmt.Errorf("failed to get completions for %s: %w", p.ID, err)
		}
		for _, entry := range logged {
			if err := ctx.Store.AddCompletion(entry); err != nil {
				return fmt.Errorf("failed to add completion %s: %w", entry.ID, err)
			}
		}
		completions += len(logged)
	}
	ctx.Printf("    Copied %d profiles, %d schedules, %d completions\n", len(profiles), schedules, completions)
	return nil
}
