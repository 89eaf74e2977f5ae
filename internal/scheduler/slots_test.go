package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/utils"
)

func slotTimes(slots []models.Slot) []string {
	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = s.Time
	}
	return times
}

func TestDiscoverSlots_SchoolDayAfternoonFloor(t *testing.T) {
	routine := models.DailyRoutine{BreakfastTime: "07:30", LunchTime: "12:00", DinnerTime: "18:30", Bedtime: "20:30"}
	school := models.SchoolSchedule{
		HasSchool: true,
		StartTime: "08:30",
		EndTime:   "14:30",
		Days:      models.WeekdaySet{time.Monday},
	}

	slots := DiscoverSlots([]models.TimeBlock{models.BlockAfternoon}, false, school.IsSchoolDay(time.Monday), school.EndTime, routine, DefaultPolicy())
	if len(slots) == 0 {
		t.Fatal("expected afternoon slots on Monday")
	}
	if slots[0].Time != "15:30" {
		t.Errorf("first Monday afternoon slot = %s, want 15:30", slots[0].Time)
	}
	if slots[0].Period != models.BlockAfternoon {
		t.Errorf("period = %s, want afternoon", slots[0].Period)
	}
	// end = min(17:30, 18:30-45) = 17:30, last start must leave 15 minutes
	last := slots[len(slots)-1].Time
	if last != "17:10" {
		t.Errorf("last slot = %s, want 17:10", last)
	}
}

func TestDiscoverSlots_MorningSkippedOnSchoolDays(t *testing.T) {
	routine := models.DailyRoutine{}
	blocks := []models.TimeBlock{models.BlockMorning}

	if slots := DiscoverSlots(blocks, false, true, "14:30", routine, DefaultPolicy()); len(slots) != 0 {
		t.Errorf("expected no morning slots on a school day, got %v", slotTimes(slots))
	}

	slots := DiscoverSlots(blocks, true, false, "", routine, DefaultPolicy())
	want := []string{"09:30", "09:50", "10:10", "10:30", "10:50", "11:10"}
	if got := slotTimes(slots); !equalStrings(got, want) {
		t.Errorf("weekend morning slots = %v, want %v", got, want)
	}
}

func TestDiscoverSlots_DefaultsWhenRoutineUnset(t *testing.T) {
	blocks := []models.TimeBlock{models.BlockAfternoon, models.BlockEvening, models.BlockNight}
	slots := DiscoverSlots(blocks, true, false, "", models.DailyRoutine{}, DefaultPolicy())

	byPeriod := map[models.TimeBlock][]string{}
	for _, s := range slots {
		byPeriod[s.Period] = append(byPeriod[s.Period], s.Time)
	}

	if got := byPeriod[models.BlockAfternoon]; len(got) == 0 || got[0] != "13:30" {
		t.Errorf("afternoon should start at 13:30 by default, got %v", got)
	}
	// evening [16:00, 18:15)
	if got := byPeriod[models.BlockEvening]; len(got) == 0 || got[0] != "16:00" || got[len(got)-1] != "18:00" {
		t.Errorf("evening slots = %v, want 16:00..18:00", got)
	}
	// night [20:00, 21:30)
	if got := byPeriod[models.BlockNight]; !equalStrings(got, []string{"20:00", "20:20", "20:40", "21:00"}) {
		t.Errorf("night slots = %v", got)
	}
}

func TestDiscoverSlots_EmptyWhenBlockInverted(t *testing.T) {
	routine := models.DailyRoutine{DinnerTime: "19:30", Bedtime: "20:45"}
	// night [20:30, 20:00) is empty
	slots := DiscoverSlots([]models.TimeBlock{models.BlockNight}, false, false, "", routine, DefaultPolicy())
	if len(slots) != 0 {
		t.Errorf("expected no night slots, got %v", slotTimes(slots))
	}
}

func TestDiscoverSlots_EarlyMorningFlag(t *testing.T) {
	blocks := []models.TimeBlock{models.BlockEarlyMorning}
	routine := models.DailyRoutine{BreakfastTime: "07:30"}

	if slots := DiscoverSlots(blocks, false, false, "", routine, DefaultPolicy()); len(slots) != 0 {
		t.Errorf("early morning is off by default, got %v", slotTimes(slots))
	}

	pol := DefaultPolicy()
	pol.EarlyMorningEnabled = true
	slots := DiscoverSlots(blocks, false, false, "", routine, pol)
	// [06:00, min(08:00, 07:00))
	if got := slotTimes(slots); !equalStrings(got, []string{"06:00", "06:20", "06:40"}) {
		t.Errorf("early morning slots = %v", got)
	}
}

func TestDiscoverSlots_AscendingAndUnique(t *testing.T) {
	routine := models.DailyRoutine{BreakfastTime: "07:00", LunchTime: "10:30", DinnerTime: "18:00", Bedtime: "21:00"}
	all := []models.TimeBlock{models.BlockMorning, models.BlockAfternoon, models.BlockEvening, models.BlockNight}
	slots := DiscoverSlots(all, true, false, "", routine, DefaultPolicy())

	seen := map[string]bool{}
	for i, s := range slots {
		if seen[s.Time] {
			t.Errorf("duplicate slot %s", s.Time)
		}
		seen[s.Time] = true
		if i > 0 && utils.ToMinutes(slots[i-1].Time) >= utils.ToMinutes(s.Time) {
			t.Errorf("slots not ascending at %d: %s then %s", i, slots[i-1].Time, s.Time)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
