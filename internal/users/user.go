package users

import (
	"errors"
	"strings"
	"time"

	"github.com/2beens/fitbase/internal/apperr"
)

const (
	WeightUnitKG  = "kg"
	WeightUnitLBS = "lbs"

	DefaultTimezone   = "UTC"
	MinPasswordLength = 6
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
)

type Stats struct {
	TotalWorkouts   int                `json:"totalWorkouts"`
	CurrentStreak   int                `json:"currentStreak"`
	LongestStreak   int                `json:"longestStreak"`
	LastWorkoutDate *time.Time         `json:"lastWorkoutDate"`
	PersonalRecords map[string]float64 `json:"personalRecords"`
}

type User struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	PasswordHash          string    `json:"-"`
	DisplayName           string    `json:"displayName"`
	WeightUnit            string    `json:"weightUnit"`
	Timezone              string    `json:"timezone"`
	CreatedAt             time.Time `json:"createdAt"`
	ActiveWorkoutPlanID   *string   `json:"activeWorkoutPlanId"`
	LastCompletedDayIndex *int      `json:"lastCompletedDayIndex"`
	Stats                 Stats     `json:"stats"`
}

// NewUser builds a fresh account document with the default preferences.
func NewUser(id, email, passwordHash string, createdAt time.Time) *User {
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  DisplayNameFromEmail(email),
		WeightUnit:   WeightUnitKG,
		Timezone:     DefaultTimezone,
		CreatedAt:    createdAt,
		Stats: Stats{
			PersonalRecords: map[string]float64{},
		},
	}
}

func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// Location returns the user's configured time zone, falling back to UTC.
func (u *User) Location() *time.Location {
	return LoadLocation(u.Timezone)
}

func LoadLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

type ProfileUpdate struct {
	DisplayName *string `json:"displayName"`
	WeightUnit  *string `json:"weightUnit"`
	Timezone    *string `json:"timezone"`
}

func (p ProfileUpdate) Empty() bool {
	return p.DisplayName == nil && p.WeightUnit == nil && p.Timezone == nil
}

func (p ProfileUpdate) Validate() error {
	if p.DisplayName != nil && strings.TrimSpace(*p.DisplayName) == "" {
		return apperr.InvalidArgumentf("Display name cannot be empty.")
	}
	if p.WeightUnit != nil && *p.WeightUnit != WeightUnitKG && *p.WeightUnit != WeightUnitLBS {
		return apperr.InvalidArgumentf("Weight unit must be %q or %q.", WeightUnitKG, WeightUnitLBS)
	}
	if p.Timezone != nil {
		if *p.Timezone == "" {
			return apperr.InvalidArgumentf("Invalid timezone.")
		}
		if _, err := time.LoadLocation(*p.Timezone); err != nil {
			return apperr.InvalidArgumentf("Invalid timezone: %s", *p.Timezone)
		}
	}
	return nil
}
