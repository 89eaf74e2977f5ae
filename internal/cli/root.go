package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/homeplan/internal/backup"
	"github.com/julianstephens/homeplan/internal/logger"
	"github.com/julianstephens/homeplan/internal/planner"
	"github.com/julianstephens/homeplan/internal/storage"
	"github.com/julianstephens/homeplan/internal/storage/sqlite"
	"github.com/julianstephens/homeplan/internal/utils"
)

type Context struct {
	Store storage.Provider
	Out   io.Writer
	In    io.Reader
	Now   func() time.Time
}

// NewContext wires a context to the process's standard streams.
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store: store,
		Out:   os.Stdout,
		In:    os.Stdin,
		Now:   time.Now,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Planner returns the generation service for the context's store.
func (c *Context) Planner() *planner.Service {
	return planner.New(c.Store)
}

// Today returns the current time in the configured timezone.
func (c *Context) Today() (time.Time, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return c.Now().In(loc), nil
}

// Confirm asks a yes/no question on In and reports whether the answer
// was yes.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// BackupManager returns a manager for the SQLite database, or nil when
// the store is not file backed.
func (c *Context) BackupManager() *backup.Manager {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Debug("Automatic backup created", "file", filepath.Base(path))
}
