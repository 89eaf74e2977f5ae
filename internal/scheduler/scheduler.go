package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/homeplan/internal/library"
	"github.com/julianstephens/homeplan/internal/logger"
	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/utils"
)

// ErrNothingScheduled is returned when no exercise fits anywhere in the week.
var ErrNothingScheduled = errors.New("could not fit any exercises into the week - adjust parent availability or time blocks")

type Scheduler struct {
	policy  Policy
	library library.Library
}

// New returns a scheduler that falls back to lib once the priority pool is
// exhausted. lib may be nil.
func New(lib library.Library, policy Policy) *Scheduler {
	return &Scheduler{policy: policy.WithDefaults(), library: lib}
}

// Policy returns the effective policy.
func (s *Scheduler) Policy() Policy {
	return s.policy
}

// dayPlan is the occupancy-independent part of a day: its quota, the
// candidate slots and the conflicts at each slot.
type dayPlan struct {
	day       time.Weekday
	available models.Availability
	needed    int
	slots     []models.Slot
	reasons   [][]string
}

// interval is an occupied [start, end) range in minutes.
type interval struct {
	start int
	end   int
}

// Build generates the week schedule for p. Slot discovery and conflict
// checks run per day in parallel; exercise assignment runs in
// ScheduleWeekOrder so the selection index advances deterministically.
//
// When no exercise could be placed at all, the full result is returned
// together with ErrNothingScheduled so callers can still show why.
func (s *Scheduler) Build(ctx context.Context, p models.UserProfile, gctx models.GenerationContext) (models.GenerationResult, error) {
	result := models.GenerationResult{
		RunID:        gctx.RunID,
		ProfileID:    gctx.ProfileID,
		GeneratedAt:  gctx.Now,
		Schedule:     models.NewDayMap[models.ScheduledExercise](),
		Conflicts:    models.NewDayMap[models.Conflict](),
		Explanations: models.NewDayMap[models.Explanation](),
	}
	if result.RunID == "" {
		result.RunID = uuid.NewString()
	}
	if result.ProfileID == "" {
		result.ProfileID = p.ID
	}
	if result.GeneratedAt.IsZero() {
		result.GeneratedAt = time.Now()
	}

	// Step 1: Plan every day in parallel
	plans := make([]dayPlan, len(models.ScheduleWeekOrder))
	g, egCtx := errgroup.WithContext(ctx)
	for i, day := range models.ScheduleWeekOrder {
		g.Go(func() error {
			plans[i] = s.planDay(day, p)
			return egCtx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return models.GenerationResult{}, err
	}

	// Step 2: Assign exercises day by day with a single run-wide index
	selector := NewSelector(BuildPool(p), s.library, p, s.policy)
	index := 0
	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return models.GenerationResult{}, err
		}
		exercises, conflicts, explanations := s.assignDay(ctx, plan, p, selector, &index)
		result.Schedule[plan.day] = exercises
		result.Conflicts[plan.day] = conflicts
		result.Explanations[plan.day] = explanations
		result.TotalScheduled += len(exercises)
		result.ExpectedTotal += plan.needed
	}

	if result.TotalScheduled == 0 {
		return result, ErrNothingScheduled
	}
	return result, nil
}

// Quota returns how many exercises the given parent hours allow.
func (s *Scheduler) Quota(hours decimal.Decimal) int {
	if !hours.IsPositive() {
		return 0
	}
	return int(hours.Mul(decimal.NewFromInt(60)).Div(decimal.NewFromInt(int64(s.policy.QuotaUnitMin))).Floor().IntPart())
}

func (s *Scheduler) planDay(day time.Weekday, p models.UserProfile) dayPlan {
	plan := dayPlan{day: day, available: p.ParentAvailability.For(day)}
	plan.needed = s.Quota(plan.available.Hours)
	if plan.needed == 0 {
		return plan
	}

	// Without an end time the day falls back to the no-school layout.
	school := p.SchoolSchedule
	schoolToday := school.IsSchoolDay(day) && utils.IsSet(school.EndTime)
	plan.slots = DiscoverSlots(plan.available.Blocks, models.IsWeekend(day), schoolToday, school.EndTime, p.DailyRoutine, s.policy)
	plan.reasons = make([][]string, len(plan.slots))
	for i, slot := range plan.slots {
		plan.reasons[i] = DetectConflicts(day, slot.Time, p, s.policy)
	}
	return plan
}

func (s *Scheduler) assignDay(ctx context.Context, plan dayPlan, p models.UserProfile, selector *Selector, index *int) ([]models.ScheduledExercise, []models.Conflict, []models.Explanation) {
	exercises := []models.ScheduledExercise{}
	conflicts := []models.Conflict{}
	explanations := []models.Explanation{}

	if plan.needed == 0 {
		explanations = append(explanations, models.Explanation{
			Severity: models.SeverityInfo,
			Message:  "No exercises scheduled - no hours allocated for this day",
		})
		return exercises, conflicts, explanations
	}

	var occupied []interval
	for i, slot := range plan.slots {
		if len(exercises) >= plan.needed {
			break
		}
		t := utils.ToMinutes(slot.Time)
		if isOccupied(occupied, t) {
			continue
		}
		if reasons := plan.reasons[i]; len(reasons) > 0 {
			conflicts = append(conflicts, models.Conflict{Time: slot.Time, Reasons: reasons})
			continue
		}

		a := selector.Select(ctx, *index)
		*index++
		end := t + a.DurationMinutes + s.policy.BreakMin
		occupied = append(occupied, interval{start: t, end: end})
		exercises = append(exercises, models.ScheduledExercise{
			Time:               slot.Time,
			EndTime:            utils.FormatMinutes(end),
			Period:             slot.Period,
			NoteKey:            plan.day.String() + "-" + slot.Time,
			ExerciseAssignment: a,
		})
	}

	logger.Debug("Scheduled day",
		"day", plan.day,
		"slots", len(plan.slots),
		"needed", plan.needed,
		"scheduled", len(exercises),
		"conflicts", len(conflicts),
	)

	if len(exercises) < plan.needed {
		explanations = append(explanations, s.shortfall(plan, p, len(exercises)))
	}

	sortExercises(exercises)
	return exercises, conflicts, explanations
}

func isOccupied(occupied []interval, t int) bool {
	for _, iv := range occupied {
		if t >= iv.start && t < iv.end {
			return true
		}
	}
	return false
}
