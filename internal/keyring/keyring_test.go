package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/homeplan/internal/constants"
)

func TestSetGetDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	conn := "postgres://parent@localhost:5432/homeplan?sslmode=disable"
	if err := SetConnectionString(conn); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != conn {
		t.Errorf("GetConnectionString() = %q, want %q", got, conn)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("  "); err == nil {
		t.Error("SetConnectionString with blank input should return an error")
	}
}

func TestResolveConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		keyring string
		want    string
	}{
		{"nothing configured", "", "", ""},
		{"keyring only", "", "postgres://k@db/homeplan", "postgres://k@db/homeplan"},
		{"env wins", "postgres://e@db/homeplan", "postgres://k@db/homeplan", "postgres://e@db/homeplan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gokeyring.MockInit()
			t.Setenv(constants.ConnectionEnvVar, tt.env)
			if tt.keyring != "" {
				if err := SetConnectionString(tt.keyring); err != nil {
					t.Fatalf("SetConnectionString() failed: %v", err)
				}
			}

			got, err := ResolveConnectionString()
			if err != nil {
				t.Fatalf("ResolveConnectionString() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveConnectionString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
