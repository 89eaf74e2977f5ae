package settings

import (
	"bytes"
	"strings"
	"testing"

	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/testutil"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	var out bytes.Buffer
	ctx := cli.NewContext(testutil.Store(t))
	ctx.Out = &out
	return ctx, &out
}

func TestSettingsShowCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&SettingsShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Quiet Hours:           false (22:00-07:00)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSettingsSetCmd(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"quiet hours start", "quiet_hours_start", "21:30", false},
		{"boolean", "early_morning_enabled", "true", false},
		{"integer", "reminder_minutes_before", "20", false},
		{"timezone", "timezone", "America/Chicago", false},
		{"bad timezone", "timezone", "Nowhere/City", true},
		{"bad time", "morning_briefing_time", "7am", true},
		{"bad integer", "reminder_minutes_before", "soon", true},
		{"negative integer", "library_cache_ttl_min", "-5", true},
		{"unknown key", "day_start", "08:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestContext(t)
			err := (&SettingsSetCmd{Key: tt.key, Value: tt.value}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsSetCmd_Persists(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&SettingsSetCmd{Key: "quiet_hours_enabled", Value: "true"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	s, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if !s.QuietHoursEnabled {
		t.Error("expected quiet hours to be enabled")
	}
}
