package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitbase/internal/db"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/internal/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const SessionColumns = `
	id, user_id, plan_id, plan_name, day_index, day_name, status,
	date_started, date_completed, date_cancelled, last_updated, revision, exercises
`

// StatsFunc derives the user's new stats from the locked user row and the
// just completed session.
type StatsFunc func(u *users.User, s *Session) users.Stats

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func ScanSession(row pgx.Row) (*Session, error) {
	s := &Session{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.PlanName, &s.DayIndex, &s.DayName, &s.Status,
		&s.DateStarted, &s.DateCompleted, &s.DateCancelled, &s.LastUpdated, &s.Revision, &s.Exercises,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if s.Exercises == nil {
		s.Exercises = []LoggedExercise{}
	}
	return s, nil
}

func (r *Repo) Add(ctx context.Context, s *Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO user_workouts (
			id, user_id, plan_id, plan_name, day_index, day_name, status,
			date_started, revision, exercises
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		s.ID, s.UserID, s.PlanID, s.PlanName, s.DayIndex, s.DayName, s.Status,
		s.DateStarted, s.Revision, s.Exercises,
	)
	return err
}

func (r *Repo) Get(ctx context.Context, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	return ScanSession(r.db.QueryRow(ctx, `SELECT `+SessionColumns+` FROM user_workouts WHERE id = $1`, sessionID))
}

// LastCompleted returns the most recent completed session for the plan day,
// or nil when there is none.
func (r *Repo) LastCompleted(ctx context.Context, uid, planID string, dayIndex int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.lastCompleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s, err := ScanSession(r.db.QueryRow(ctx, `
		SELECT `+SessionColumns+`
		FROM user_workouts
		WHERE user_id = $1 AND plan_id = $2 AND day_index = $3 AND status = $4
		ORDER BY date_completed DESC
		LIMIT 1
	`, uid, planID, dayIndex, StatusCompleted))
	if errors.Is(err, ErrSessionNotFound) {
		return nil, nil
	}
	return s, err
}

// UpdateExercises overwrites the logged exercises of an in-progress session and
// returns the new revision. A non-nil expectedRevision must match the stored one.
func (r *Repo) UpdateExercises(
	ctx context.Context,
	sessionID string,
	exercises []LoggedExercise,
	now time.Time,
	expectedRevision *int,
) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.updateExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	var revision int
	err = r.db.QueryRow(ctx, `
		UPDATE user_workouts SET
			exercises    = $2,
			last_updated = $3,
			revision     = revision + 1
		WHERE id = $1
			AND status = $4
			AND ($5::INTEGER IS NULL OR revision = $5)
		RETURNING revision
	`, sessionID, exercises, now, StatusInProgress, expectedRevision).Scan(&revision)
	if err == nil {
		return revision, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	current, err := r.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if !current.InProgress() {
		return 0, ErrSessionNotInProgress
	}
	return 0, ErrStaleRevision
}

// Complete finishes an in-progress session and applies statsFn to the owner's
// stats in the same transaction. The user row stays locked until commit.
func (r *Repo) Complete(
	ctx context.Context,
	uid, sessionID string,
	exercises []LoggedExercise,
	now time.Time,
	statsFn StatsFunc,
) (_ *users.Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	var stats users.Stats
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		u, err := users.LockForStats(ctx, tx, uid)
		if err != nil {
			return err
		}

		s, err := ScanSession(tx.QueryRow(ctx, `
			UPDATE user_workouts SET
				status         = $3,
				date_completed = $4,
				last_updated   = $4,
				exercises      = $5,
				revision       = revision + 1
			WHERE id = $1 AND user_id = $2 AND status = $6
			RETURNING `+SessionColumns,
			sessionID, uid, StatusCompleted, now, exercises, StatusInProgress,
		))
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				return ErrSessionNotInProgress
			}
			return fmt.Errorf("complete session: %w", err)
		}

		stats = statsFn(u, s)
		return users.SaveStats(ctx, tx, uid, stats, s.DayIndex)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *Repo) Cancel(ctx context.Context, uid, sessionID string, now time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.cancel")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	tag, err := r.db.Exec(ctx, `
		UPDATE user_workouts SET
			status         = $3,
			date_cancelled = $4,
			last_updated   = $4
		WHERE id = $1 AND user_id = $2 AND status = $5
	`, sessionID, uid, StatusCancelled, now, StatusInProgress)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotInProgress
	}
	return nil
}
