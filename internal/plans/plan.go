package plans

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/2beens/fitbase/internal/access"
	"github.com/2beens/fitbase/internal/apperr"
)

const (
	TypeCommon = "common"
	TypeCustom = "custom"

	DefaultMaxCustomPlans = 5
)

var (
	ErrPlanNotFound    = errors.New("workout plan not found")
	ErrQuotaExceeded   = errors.New("custom workout plan quota exceeded")
	ErrNotCustomPlan   = errors.New("not a custom workout plan")
	ErrInvalidPlanFile = errors.New("invalid common plans file")
)

type ExerciseTemplate struct {
	ExerciseName string `json:"exerciseName"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	Weight       string `json:"weight"`
	RestTime     int    `json:"restTime"`
}

type WorkoutDay struct {
	DayName   string             `json:"dayName"`
	Notes     string             `json:"notes"`
	Exercises []ExerciseTemplate `json:"exercises"`
}

type WorkoutPlan struct {
	ID           string       `json:"id"`
	PlanName     string       `json:"planName"`
	Description  string       `json:"description"`
	Type         string       `json:"type"`
	CreatedBy    string       `json:"createdBy,omitempty"`
	NumberOfDays int          `json:"numberOfDays"`
	Days         []WorkoutDay `json:"days"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (p *WorkoutPlan) IsCustom() bool {
	return p.Type == TypeCustom
}

// Day returns the day at index i, if the plan has one.
func (p *WorkoutPlan) Day(i int) (WorkoutDay, bool) {
	if i < 0 || i >= len(p.Days) {
		return WorkoutDay{}, false
	}
	return p.Days[i], true
}

// CheckReadable allows everyone to read common plans and only the owner to
// read a custom one.
func CheckReadable(uid string, p *WorkoutPlan) error {
	if !p.IsCustom() {
		return nil
	}
	return access.CheckOwner(uid, p.CreatedBy)
}

// CheckWritable allows only the owner of a custom plan to change it.
func CheckWritable(uid string, p *WorkoutPlan) error {
	if !p.IsCustom() {
		return apperr.Wrap(apperr.PermissionDenied, ErrNotCustomPlan, "Common workout plans cannot be modified.")
	}
	return access.CheckOwner(uid, p.CreatedBy)
}

func CustomPlanName(existing int) string {
	return fmt.Sprintf("Custom Workout %d", existing+1)
}

type Library struct {
	CommonWorkouts []*WorkoutPlan `json:"commonWorkouts"`
	CustomWorkouts []*WorkoutPlan `json:"customWorkouts"`
	ActivePlanID   *string        `json:"activePlanId"`
}

type PlanInput struct {
	Description  string       `json:"description"`
	NumberOfDays int          `json:"numberOfDays"`
	Days         []WorkoutDay `json:"days"`
}

func (in PlanInput) Validate() error {
	if err := access.RequireParams(
		access.Param{Name: "numberOfDays", Present: in.NumberOfDays != 0},
		access.P("days", in.Days),
	); err != nil {
		return err
	}
	return validateDays(in.NumberOfDays, in.Days)
}

// PlanUpdate carries the editable fields of a custom plan. Nil fields are left as they are.
type PlanUpdate struct {
	PlanName     *string      `json:"planName"`
	Description  *string      `json:"description"`
	NumberOfDays *int         `json:"numberOfDays"`
	Days         []WorkoutDay `json:"days"`
}

func (u PlanUpdate) Empty() bool {
	return u.PlanName == nil && u.Description == nil && u.NumberOfDays == nil && u.Days == nil
}

func (u PlanUpdate) Validate() error {
	if u.PlanName != nil && strings.TrimSpace(*u.PlanName) == "" {
		return apperr.InvalidArgumentf("Plan name cannot be empty.")
	}
	numberOfDays := 1
	if u.NumberOfDays != nil {
		numberOfDays = *u.NumberOfDays
	}
	if u.Days == nil {
		if numberOfDays <= 0 {
			return apperr.InvalidArgumentf("Number of days must be greater than zero.")
		}
		return nil
	}
	return validateDays(numberOfDays, u.Days)
}

// Apply copies the set fields of u onto p.
func (u PlanUpdate) Apply(p *WorkoutPlan, now time.Time) {
	if u.PlanName != nil {
		p.PlanName = strings.TrimSpace(*u.PlanName)
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.NumberOfDays != nil {
		p.NumberOfDays = *u.NumberOfDays
	}
	if u.Days != nil {
		p.Days = u.Days
	}
	p.UpdatedAt = now
}

func validateDays(numberOfDays int, days []WorkoutDay) error {
	if numberOfDays <= 0 {
		return apperr.InvalidArgumentf("Number of days must be greater than zero.")
	}
	if len(days) == 0 {
		return apperr.InvalidArgumentf("A workout plan needs at least one day.")
	}
	for di, day := range days {
		for ei, ex := range day.Exercises {
			if strings.TrimSpace(ex.ExerciseName) == "" {
				return apperr.InvalidArgumentf("Exercise %d of day %d has no name.", ei+1, di+1)
			}
			if ex.Sets < 1 {
				return apperr.InvalidArgumentf("Exercise %q needs at least one set.", ex.ExerciseName)
			}
		}
	}
	return nil
}

// LoadCommonPlans reads the shared plan catalogue from a JSON file.
func LoadCommonPlans(path string) ([]*WorkoutPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read common plans: %w", err)
	}

	var plans []*WorkoutPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlanFile, err)
	}

	for i, p := range plans {
		if p.ID == "" || p.PlanName == "" {
			return nil, fmt.Errorf("%w: plan %d has no id or name", ErrInvalidPlanFile, i)
		}
		if p.NumberOfDays == 0 {
			p.NumberOfDays = len(p.Days)
		}
		if err := validateDays(p.NumberOfDays, p.Days); err != nil {
			return nil, fmt.Errorf("%w: plan %s: %w", ErrInvalidPlanFile, p.ID, err)
		}
		p.Type = TypeCommon
		p.CreatedBy = ""
	}

	return plans, nil
}
