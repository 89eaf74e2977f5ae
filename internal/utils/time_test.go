package utils

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Clock
		wantOK bool
	}{
		{name: "midnight", input: "00:00", want: 0, wantOK: true},
		{name: "morning", input: "08:15", want: 495, wantOK: true},
		{name: "unpadded hour", input: "9:30", want: 570, wantOK: true},
		{name: "last minute", input: "23:59", want: 1439, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "garbage", input: "noon", wantOK: false},
		{name: "hour out of range", input: "24:00", wantOK: false},
		{name: "minute out of range", input: "10:60", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClock(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseClock(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestToMinutesDefaultsOnBadInput(t *testing.T) {
	if got := ToMinutes(""); got != 480 {
		t.Errorf("ToMinutes(\"\") = %d, want 480", got)
	}
	if got := ToMinutes("later"); got != 480 {
		t.Errorf("ToMinutes(\"later\") = %d, want 480", got)
	}
	if got := ToMinutesOr("", "19:00"); got != 1140 {
		t.Errorf("ToMinutesOr(\"\", \"19:00\") = %d, want 1140", got)
	}
}

func TestSubtractMinutes(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"08:00", 30, "07:30"},
		{"00:10", 30, "23:40"},
		{"12:00", 1440, "12:00"},
		{"12:00", -90, "13:30"},
		{"", 30, "08:00"},
	}

	for _, tt := range tests {
		if got := SubtractMinutes(tt.input, tt.n); got != tt.want {
			t.Errorf("SubtractMinutes(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestSubtractMinutesRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m += 7 {
		s := FormatMinutes(m)
		for _, n := range []int{-3000, -61, 0, 1, 45, 720, 1439, 5000} {
			got := ToMinutes(SubtractMinutes(s, n))
			want := ((m-n)%1440 + 1440) % 1440
			if got != want {
				t.Fatalf("ToMinutes(SubtractMinutes(%q, %d)) = %d, want %d", s, n, got, want)
			}
		}
	}
}

func TestAddHour(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"08:30", "09:30"},
		{"23:15", "00:15"},
		{"", "08:00"},
	}

	for _, tt := range tests {
		if got := AddHour(tt.input); got != tt.want {
			t.Errorf("AddHour(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWindowLength(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{name: "normal window", start: "19:00", end: "21:30", want: 150},
		{name: "inverted window", start: "21:30", end: "19:00", want: 0},
		{name: "empty start", start: "", end: "21:30", want: 0},
		{name: "empty end", start: "19:00", end: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WindowLength(tt.start, tt.end); got != tt.want {
				t.Errorf("WindowLength(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestClockOfWraps(t *testing.T) {
	if got := ClockOf(-30).String(); got != "23:30" {
		t.Errorf("ClockOf(-30) = %q, want 23:30", got)
	}
	if got := ClockOf(1500).String(); got != "01:00" {
		t.Errorf("ClockOf(1500) = %q, want 01:00", got)
	}
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") {
		t.Error("expected Local to be valid")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("expected Mars/Olympus to be invalid")
	}
}
