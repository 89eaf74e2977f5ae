package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	base := errors.New("could not fit any exercises")
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("something went wrong"), "Error: something went wrong"},
		{"hinted", WithHint(base, "add parent hours"), "Error: could not fit any exercises\nHint: add parent hours"},
		{"wrapped hint", fmt.Errorf("plan generate: %w", WithHint(base, "add parent hours")), "Error: plan generate: could not fit any exercises\nHint: add parent hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "x") != nil {
		t.Error("WithHint(nil) should be nil")
	}
	base := errors.New("boom")
	if !errors.Is(WithHint(base, "x"), base) {
		t.Error("hinted error should unwrap to the original")
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("connection to %s:%d failed", "localhost", 5432); got != "Error: connection to localhost:5432 failed" {
		t.Errorf("Formatf = %q", got)
	}
}

// TestFatal runs Fatal in a subprocess and checks the exit code and stderr.
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(WithHint(errors.New("test error"), "try again"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error\nHint: try again") {
			t.Errorf("Fatal() stderr = %q", stderr.String())
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
