package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ScheduleWeekOrder is the Monday-first order used when generating and
// displaying a week schedule.
var ScheduleWeekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// CalendarWeekOrder is the Sunday-first order used for streaks and
// calendar-week activity.
var CalendarWeekOrder = []time.Weekday{
	time.Sunday,
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}

// IsWeekend reports whether d is Saturday or Sunday.
func IsWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// ParseWeekday parses an English weekday name. Three letter abbreviations
// are accepted and matching is case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range CalendarWeekOrder {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %q", s)
}

// WeekdaySet is a set of weekdays serialized as a list of day names.
type WeekdaySet []time.Weekday

// Contains reports whether d is in the set.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	for _, day := range s {
		if day == d {
			return true
		}
	}
	return false
}

func (s WeekdaySet) names() []string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.String()
	}
	return names
}

func parseWeekdayNames(names []string) (WeekdaySet, error) {
	set := make(WeekdaySet, 0, len(names))
	for _, name := range names {
		d, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		if !set.Contains(d) {
			set = append(set, d)
		}
	}
	return set, nil
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.names())
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	set, err := parseWeekdayNames(names)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

func (s WeekdaySet) MarshalYAML() (interface{}, error) {
	return s.names(), nil
}

func (s *WeekdaySet) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	set, err := parseWeekdayNames(names)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

// DayMap holds per-day lists keyed by weekday. It serializes with the
// English day names as keys and always carries all seven days.
type DayMap[T any] map[time.Weekday][]T

// NewDayMap returns a DayMap with an empty list for every day.
func NewDayMap[T any]() DayMap[T] {
	m := make(DayMap[T], 7)
	for _, d := range ScheduleWeekOrder {
		m[d] = []T{}
	}
	return m
}

// Total returns the number of entries across all days.
func (m DayMap[T]) Total() int {
	n := 0
	for _, items := range m {
		n += len(items)
	}
	return n
}

func (m DayMap[T]) MarshalJSON() ([]byte, error) {
	named := make(map[string][]T, 7)
	for _, d := range ScheduleWeekOrder {
		items := m[d]
		if items == nil {
			items = []T{}
		}
		named[d.String()] = items
	}
	return json.Marshal(named)
}

func (m *DayMap[T]) UnmarshalJSON(data []byte) error {
	var named map[string][]T
	if err := json.Unmarshal(data, &named); err != nil {
		return err
	}
	out := NewDayMap[T]()
	for name, items := range named {
		d, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		if items == nil {
			items = []T{}
		}
		out[d] = items
	}
	*m = out
	return nil
}
