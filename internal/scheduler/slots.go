package scheduler

import (
	"sort"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/utils"
)

// blockRange is a half-open [start, end) window in minutes.
type blockRange struct {
	tag   models.TimeBlock
	start int
	end   int
}

// DiscoverSlots returns the candidate start times for one day, ascending
// by time. Only the blocks the parent selected contribute slots, and a
// block whose start is not before its end contributes none.
func DiscoverSlots(blocks []models.TimeBlock, isWeekend, hasSchoolToday bool, schoolEnd string, r models.DailyRoutine, pol Policy) []models.Slot {
	pol = pol.WithDefaults()
	schoolDay := hasSchoolToday && !isWeekend

	selected := make(map[models.TimeBlock]bool, len(blocks))
	for _, b := range blocks {
		selected[b] = true
	}

	var slots []models.Slot
	seen := make(map[int]bool)
	for _, br := range blockRanges(schoolDay, schoolEnd, r, pol) {
		if !selected[br.tag] {
			continue
		}
		for t := br.start; t <= br.end-pol.SlotMinLengthMin; t += pol.SlotStrideMin {
			if seen[t] {
				continue
			}
			seen[t] = true
			slots = append(slots, models.Slot{Time: utils.FormatMinutes(t), Period: br.tag})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return utils.ToMinutes(slots[i].Time) < utils.ToMinutes(slots[j].Time)
	})
	return slots
}

// blockRanges computes every block's window for the day, in BlockOrder.
func blockRanges(schoolDay bool, schoolEnd string, r models.DailyRoutine, pol Policy) []blockRange {
	breakfast := utils.ToMinutesOr(r.BreakfastTime, pol.DefaultBreakfast)
	lunch := utils.ToMinutesOr(r.LunchTime, pol.DefaultLunch)
	dinner := utils.ToMinutesOr(r.DinnerTime, pol.DefaultDinner)
	bed := utils.ToMinutesOr(r.Bedtime, pol.DefaultBedtime)

	var ranges []blockRange

	if pol.EarlyMorningEnabled {
		ranges = append(ranges, blockRange{
			tag:   models.BlockEarlyMorning,
			start: utils.ToMinutes(pol.EarlyMorningStart),
			end:   min(utils.ToMinutes(pol.EarlyMorningCeiling), breakfast-pol.EarlyMorningBeforeBreakfast),
		})
	}

	if !schoolDay {
		ranges = append(ranges, blockRange{
			tag:   models.BlockMorning,
			start: max(utils.ToMinutes(pol.MorningFloor), breakfast+pol.MorningAfterBreakfast),
			end:   min(utils.ToMinutes(pol.MorningCeiling), lunch-pol.MorningBeforeLunch),
		})
	}

	if schoolDay {
		end := utils.ToMinutesOr(schoolEnd, pol.DefaultSchoolEnd)
		ranges = append(ranges, blockRange{
			tag:   models.BlockAfternoon,
			start: max(end+pol.AfterSchoolGap, utils.ToMinutes(pol.AfterSchoolFloor)),
			end:   min(utils.ToMinutes(pol.AfterSchoolCeiling), dinner-pol.SchoolDayBeforeDinner),
		})
	} else {
		ranges = append(ranges, blockRange{
			tag:   models.BlockAfternoon,
			start: lunch + pol.AfternoonAfterLunch,
			end:   min(utils.ToMinutes(pol.AfternoonCeiling), dinner-pol.AfternoonBeforeDinner),
		})
	}

	eveningStart := utils.ToMinutes(pol.EveningStart)
	if schoolDay {
		eveningStart = utils.ToMinutes(pol.EveningStartSchoolDay)
	}
	ranges = append(ranges,
		blockRange{tag: models.BlockEvening, start: eveningStart, end: dinner - pol.EveningBeforeDinner},
		blockRange{tag: models.BlockNight, start: dinner + pol.NightAfterDinner, end: bed - pol.NightBeforeBed},
	)

	return ranges
}
