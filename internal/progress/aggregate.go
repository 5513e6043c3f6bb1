package progress

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitbase/internal/apperr"
	"github.com/2beens/fitbase/internal/plans"
	"github.com/2beens/fitbase/internal/sessions"
	"github.com/2beens/fitbase/internal/users"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
	RecentWorkoutsLimit = 5
	RecordsScanLimit    = 50

	dayKeyLayout = "2006-01-02"
)

type NextWorkout struct {
	DayIndex int              `json:"dayIndex"`
	Day      plans.WorkoutDay `json:"day"`
}

type Dashboard struct {
	UserData       *users.User         `json:"userData"`
	ActivePlan     *plans.WorkoutPlan  `json:"activePlan"`
	RecentWorkouts []*sessions.Session `json:"recentWorkouts"`
	NextWorkout    *NextWorkout        `json:"nextWorkout"`
}

type HistoryPage struct {
	Sessions []*sessions.Session `json:"sessions"`
	HasMore  bool                `json:"hasMore"`
}

type CalendarEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	PlanID   string    `json:"planId"`
	DayIndex int       `json:"dayIndex"`
}

type Analytics struct {
	Period                 string         `json:"period"`
	TotalWorkouts          int            `json:"totalWorkouts"`
	TotalVolume            float64        `json:"totalVolume"`
	TotalSets              int            `json:"totalSets"`
	AverageWorkoutsPerWeek float64        `json:"averageWorkoutsPerWeek"`
	WorkoutsByDay          map[string]int `json:"workoutsByDay"`
}

type RecordsSummary struct {
	PersonalRecords   map[string]float64 `json:"personalRecords"`
	ExerciseFrequency map[string]int     `json:"exerciseFrequency"`
	VolumeByExercise  map[string]float64 `json:"volumeByExercise"`
	TotalWorkouts     int                `json:"totalWorkouts"`
}

// NextDayIndex walks the plan days cyclically: after the last day, or when
// nothing was completed yet, it starts over at day 0.
func NextDayIndex(lastCompleted *int, numberOfDays int) int {
	if lastCompleted == nil || *lastCompleted < 0 || *lastCompleted >= numberOfDays-1 {
		return 0
	}
	return *lastCompleted + 1
}

// NextWorkoutFor picks the day to train next from plan, or nil if there is none.
func NextWorkoutFor(plan *plans.WorkoutPlan, lastCompleted *int) *NextWorkout {
	if plan == nil || len(plan.Days) == 0 {
		return nil
	}
	idx := NextDayIndex(lastCompleted, len(plan.Days))
	return &NextWorkout{DayIndex: idx, Day: plan.Days[idx]}
}

// ClampLimit applies the default page size and bounds it to [1, MaxHistoryLimit].
func ClampLimit(limit int) int {
	if limit == 0 {
		return DefaultHistoryLimit
	}
	return min(max(limit, 1), MaxHistoryLimit)
}

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dayKeyLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.InvalidArgumentf("Invalid date format provided.")
}

// PeriodWindow returns the start of the analytics window ending at now, and
// the fixed number of weeks the workout count is averaged over.
func PeriodWindow(period string, now time.Time) (time.Time, float64, error) {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), 1, nil
	case "", PeriodMonth:
		return now.AddDate(0, -1, 0), 4, nil
	case PeriodYear:
		return now.AddDate(-1, 0, 0), 52, nil
	default:
		return time.Time{}, 0, apperr.InvalidArgumentf("Invalid period %q, expected week, month or year.", period)
	}
}

// SetVolume returns weight times reps for a completed set with numeric values.
func SetVolume(set sessions.PerformanceSet) (float64, bool) {
	if !set.Completed {
		return 0, false
	}
	weight, ok := sessions.ParseWeight(set.Weight)
	if !ok {
		return 0, false
	}
	reps, err := strconv.Atoi(strings.TrimSpace(set.Reps))
	if err != nil {
		return 0, false
	}
	return weight * float64(reps), true
}

// loggedSet reports whether a completed set has both weight and reps filled in,
// numeric or not.
func loggedSet(set sessions.PerformanceSet) bool {
	return set.Completed && strings.TrimSpace(set.Weight) != "" && strings.TrimSpace(set.Reps) != ""
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// ComputeAnalytics rolls up completed sessions; days are bucketed in loc.
func ComputeAnalytics(period string, completed []*sessions.Session, weeks float64, loc *time.Location) *Analytics {
	if period == "" {
		period = PeriodMonth
	}
	a := &Analytics{
		Period:        period,
		TotalWorkouts: len(completed),
		WorkoutsByDay: map[string]int{},
	}

	for _, s := range completed {
		if s.DateCompleted != nil {
			a.WorkoutsByDay[s.DateCompleted.In(loc).Format(dayKeyLayout)]++
		}
		for _, ex := range s.Exercises {
			for _, set := range ex.Performance {
				if !loggedSet(set) {
					continue
				}
				a.TotalSets++
				if volume, ok := SetVolume(set); ok {
					a.TotalVolume += volume
				}
			}
		}
	}

	if weeks > 0 {
		a.AverageWorkoutsPerWeek = roundTo(float64(a.TotalWorkouts)/weeks, 1)
	}
	return a
}

// SummarizeRecords combines the stored records with per-exercise frequency and
// volume derived from recent completed sessions.
func SummarizeRecords(stats users.Stats, recent []*sessions.Session) *RecordsSummary {
	summary := &RecordsSummary{
		PersonalRecords:   stats.PersonalRecords,
		ExerciseFrequency: map[string]int{},
		VolumeByExercise:  map[string]float64{},
		TotalWorkouts:     stats.TotalWorkouts,
	}
	if summary.PersonalRecords == nil {
		summary.PersonalRecords = map[string]float64{}
	}

	for _, s := range recent {
		for _, ex := range s.Exercises {
			trained := false
			for _, set := range ex.Performance {
				if set.Completed {
					trained = true
				}
				if volume, ok := SetVolume(set); ok {
					summary.VolumeByExercise[ex.ExerciseName] += volume
				}
			}
			if trained {
				summary.ExerciseFrequency[ex.ExerciseName]++
			}
		}
	}

	return summary
}

func CalendarEvents(completed []*sessions.Session) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(completed))
	for _, s := range completed {
		if s.DateCompleted == nil {
			continue
		}
		events = append(events, CalendarEvent{
			ID:       s.ID,
			Title:    s.PlanName + ": " + s.DayName,
			Date:     s.DateCompleted.UTC(),
			PlanID:   s.PlanID,
			DayIndex: s.DayIndex,
		})
	}
	return events
}
