package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const userColumns = `
	id, email, password_hash, display_name, weight_unit, timezone, created_at,
	active_workout_plan_id, last_completed_day_index,
	total_workouts, current_streak, longest_streak, last_workout_date, personal_records
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.WeightUnit, &u.Timezone, &u.CreatedAt,
		&u.ActiveWorkoutPlanID, &u.LastCompletedDayIndex,
		&u.Stats.TotalWorkouts, &u.Stats.CurrentStreak, &u.Stats.LongestStreak,
		&u.Stats.LastWorkoutDate, &u.Stats.PersonalRecords,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Stats.PersonalRecords == nil {
		u.Stats.PersonalRecords = map[string]float64{}
	}
	return u, nil
}

func (r *Repo) Add(ctx context.Context, u *User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, display_name, weight_unit, timezone, created_at,
			total_workouts, current_streak, longest_streak, personal_records
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		u.ID, u.Email, u.PasswordHash, u.DisplayName, u.WeightUnit, u.Timezone, u.CreatedAt,
		u.Stats.TotalWorkouts, u.Stats.CurrentStreak, u.Stats.LongestStreak, u.Stats.PersonalRecords,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, uid string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("uid", uid))

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid))
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByEmail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(email) = lower($1)
		LIMIT 1
	`, email))
}

func (r *Repo) UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET
			display_name = COALESCE($2, display_name),
			weight_unit  = COALESCE($3, weight_unit),
			timezone     = COALESCE($4, timezone)
		WHERE id = $1
		RETURNING `+userColumns,
		uid, update.DisplayName, update.WeightUnit, update.Timezone,
	))
}

func (r *Repo) UpdatePasswordHash(ctx context.Context, uid, passwordHash string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updatePasswordHash")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, uid, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetActivePlan makes planID the active plan and resets the day rotation.
func (r *Repo) SetActivePlan(ctx context.Context, uid, planID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.setActivePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID))

	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET active_workout_plan_id = $2, last_completed_day_index = NULL
		WHERE id = $1
	`, uid, planID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// LockForStats loads the user inside tx and holds a row lock until the tx ends.
func LockForStats(ctx context.Context, tx pgx.Tx, uid string) (*User, error) {
	u, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, uid))
	if err != nil {
		return nil, fmt.Errorf("lock user %s: %w", uid, err)
	}
	return u, nil
}

// SaveStats writes the aggregate counters after a completed workout.
func SaveStats(ctx context.Context, tx pgx.Tx, uid string, stats Stats, lastCompletedDayIndex int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE users SET
			total_workouts           = $2,
			current_streak           = $3,
			longest_streak           = $4,
			last_workout_date        = $5,
			personal_records         = $6,
			last_completed_day_index = $7
		WHERE id = $1
	`,
		uid,
		stats.TotalWorkouts, stats.CurrentStreak, stats.LongestStreak,
		stats.LastWorkoutDate, stats.PersonalRecords,
		lastCompletedDayIndex,
	)
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ClearActivePlan unsets planID as the user's active plan, if it is.
func ClearActivePlan(ctx context.Context, tx pgx.Tx, uid, planID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE users
		SET active_workout_plan_id = NULL, last_completed_day_index = NULL
		WHERE id = $1 AND active_workout_plan_id = $2
	`, uid, planID)
	if err != nil {
		return fmt.Errorf("clear active plan: %w", err)
	}
	return nil
}
