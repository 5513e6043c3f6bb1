package sessions

import (
	"errors"
	"time"

	"github.com/2beens/fitbase/internal/plans"
)

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var (
	ErrSessionNotFound      = errors.New("workout session not found")
	ErrSessionNotInProgress = errors.New("workout session is not in progress")
	ErrStaleRevision        = errors.New("workout session revision is stale")
)

type PerformanceSet struct {
	Weight    string `json:"weight"`
	Reps      string `json:"reps"`
	Completed bool   `json:"completed"`
}

// LoggedExercise is a plan exercise copied into a session together with the
// sets performed so far.
type LoggedExercise struct {
	plans.ExerciseTemplate
	Performance []PerformanceSet `json:"performance"`
}

type Session struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	PlanID        string           `json:"planId"`
	PlanName      string           `json:"planName"`
	DayIndex      int              `json:"dayIndex"`
	DayName       string           `json:"dayName"`
	Status        string           `json:"status"`
	DateStarted   time.Time        `json:"dateStarted"`
	DateCompleted *time.Time       `json:"dateCompleted,omitempty"`
	DateCancelled *time.Time       `json:"dateCancelled,omitempty"`
	LastUpdated   *time.Time       `json:"lastUpdated,omitempty"`
	Revision      int              `json:"revision"`
	Exercises     []LoggedExercise `json:"exercises"`
}

func (s *Session) InProgress() bool {
	return s.Status == StatusInProgress
}

func (s *Session) Exercise(name string) *LoggedExercise {
	for i := range s.Exercises {
		if s.Exercises[i].ExerciseName == name {
			return &s.Exercises[i]
		}
	}
	return nil
}

type FinishStats struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}
