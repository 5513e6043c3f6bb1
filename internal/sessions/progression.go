package sessions

import (
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitbase/internal/plans"
	"github.com/2beens/fitbase/internal/users"
)

const defaultStartWeight = "0"

// BuildPerformance lays out the sets of template, carrying over the weight used
// for the same set index last time. Reps always start empty.
func BuildPerformance(template plans.ExerciseTemplate, previous *LoggedExercise) []PerformanceSet {
	sets := max(template.Sets, 0)
	performance := make([]PerformanceSet, sets)
	for i := range performance {
		weight := defaultStartWeight
		if previous != nil && i < len(previous.Performance) && previous.Performance[i].Weight != "" {
			weight = previous.Performance[i].Weight
		}
		performance[i] = PerformanceSet{Weight: weight}
	}
	return performance
}

// BuildExercises copies the exercises of day into a new session, pre-filled
// from last, the most recent completed session of the same plan day.
func BuildExercises(day plans.WorkoutDay, last *Session) []LoggedExercise {
	exercises := make([]LoggedExercise, 0, len(day.Exercises))
	for _, template := range day.Exercises {
		var previous *LoggedExercise
		if last != nil {
			previous = last.Exercise(template.ExerciseName)
		}
		exercises = append(exercises, LoggedExercise{
			ExerciseTemplate: template,
			Performance:      BuildPerformance(template, previous),
		})
	}
	return exercises
}

// calendarDaysBetween counts whole calendar days from a to b as seen in loc.
func calendarDaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// NextStreak returns the streak after a workout finished at now.
// Consecutive days extend the streak, a gap restarts it and a second workout
// on the same day (or a last date in the future) leaves it unchanged.
func NextStreak(current int, lastWorkout *time.Time, now time.Time, loc *time.Location) int {
	if lastWorkout == nil {
		return 1
	}
	if loc == nil {
		loc = time.UTC
	}

	daysDiff := calendarDaysBetween(*lastWorkout, now, loc)
	switch {
	case daysDiff == 1:
		return current + 1
	case daysDiff > 1:
		return 1
	default:
		return current
	}
}

// ParseWeight reads a logged weight. Blank or non-numeric values are rejected.
func ParseWeight(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return w, true
}

// MergePersonalRecords returns a copy of records raised by every completed set
// whose weight beats the stored maximum for that exercise.
func MergePersonalRecords(records map[string]float64, exercises []LoggedExercise) map[string]float64 {
	merged := make(map[string]float64, len(records))
	maps.Copy(merged, records)

	for _, ex := range exercises {
		for _, set := range ex.Performance {
			if !set.Completed {
				continue
			}
			weight, ok := ParseWeight(set.Weight)
			if !ok {
				continue
			}
			if best, exists := merged[ex.ExerciseName]; !exists || weight > best {
				merged[ex.ExerciseName] = weight
			}
		}
	}

	return merged
}

// CompletedStats folds a finished workout into the user's stats.
func CompletedStats(u *users.User, exercises []LoggedExercise, now time.Time) users.Stats {
	stats := u.Stats
	stats.CurrentStreak = NextStreak(u.Stats.CurrentStreak, u.Stats.LastWorkoutDate, now, u.Location())
	stats.LongestStreak = max(stats.CurrentStreak, u.Stats.LongestStreak)
	stats.PersonalRecords = MergePersonalRecords(u.Stats.PersonalRecords, exercises)
	stats.TotalWorkouts = u.Stats.TotalWorkouts + 1
	lastWorkout := now
	stats.LastWorkoutDate = &lastWorkout
	return stats
}
