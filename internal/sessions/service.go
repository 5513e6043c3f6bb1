package sessions

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sessions_test

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitbase/internal/access"
	"github.com/2beens/fitbase/internal/apperr"
	"github.com/2beens/fitbase/internal/plans"
	"github.com/2beens/fitbase/internal/telemetry/metrics"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/internal/users"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type sessionsRepo interface {
	Add(ctx context.Context, s *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	LastCompleted(ctx context.Context, uid, planID string, dayIndex int) (*Session, error)
	UpdateExercises(ctx context.Context, sessionID string, exercises []LoggedExercise, now time.Time, expectedRevision *int) (int, error)
	Complete(ctx context.Context, uid, sessionID string, exercises []LoggedExercise, now time.Time, statsFn StatsFunc) (*users.Stats, error)
	Cancel(ctx context.Context, uid, sessionID string, now time.Time) error
}

type plansRepo interface {
	Get(ctx context.Context, planID string) (*plans.WorkoutPlan, error)
}

type Service struct {
	repo           sessionsRepo
	plans          plansRepo
	metricsManager *metrics.Manager
	// injectable for tests
	Now   func() time.Time
	NewID func() string
}

func NewService(repo sessionsRepo, plans plansRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		plans:          plans,
		metricsManager: metricsManager,
		Now:            time.Now,
		NewID:          uuid.NewString,
	}
}

func sessionNotFound(err error) error {
	return apperr.Wrap(apperr.NotFound, err, "Session not found.")
}

func notInProgress(err error) error {
	return apperr.Wrap(apperr.FailedPrecondition, err, "Workout session is no longer in progress.")
}

// owned loads the session and checks that uid owns it. Not found wins over
// permission denied.
func (s *Service) owned(ctx context.Context, uid, sessionID string) (*Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, sessionNotFound(err)
		}
		return nil, err
	}
	if err := access.CheckOwner(uid, session.UserID); err != nil {
		return nil, err
	}
	return session, nil
}

// Start opens a new session for a day of planID, pre-filling set weights from
// the last time the user completed that day.
func (s *Service) Start(ctx context.Context, uid, planID string, dayIndex *int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireParams(access.P("planId", planID), access.P("dayIndex", dayIndex)); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("plan.id", planID), attribute.Int("day.index", *dayIndex))

	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		if errors.Is(err, plans.ErrPlanNotFound) {
			return nil, apperr.Wrap(apperr.NotFound, err, "Workout plan not found.")
		}
		return nil, err
	}
	if err := plans.CheckReadable(uid, plan); err != nil {
		return nil, err
	}

	day, ok := plan.Day(*dayIndex)
	if !ok {
		return nil, apperr.InvalidArgumentf("Invalid day index.")
	}

	last, err := s.repo.LastCompleted(ctx, uid, planID, *dayIndex)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:          s.NewID(),
		UserID:      uid,
		PlanID:      planID,
		PlanName:    plan.PlanName,
		DayIndex:    *dayIndex,
		DayName:     day.DayName,
		Status:      StatusInProgress,
		DateStarted: s.Now().UTC(),
		Revision:    1,
		Exercises:   BuildExercises(day, last),
	}
	if err := s.repo.Add(ctx, session); err != nil {
		return nil, err
	}

	s.metricsManager.SessionEvent(metrics.SessionStarted)
	log.Debugf("user %s started session %s (plan %s, day %d)", uid, session.ID, planID, *dayIndex)

	return session, nil
}

// Update replaces the logged exercises of an in-progress session and returns
// the new revision.
func (s *Service) Update(
	ctx context.Context,
	uid, sessionID string,
	exercises []LoggedExercise,
	expectedRevision *int,
) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if err := access.RequireParams(access.P("sessionId", sessionID), access.P("exercises", exercises)); err != nil {
		return 0, err
	}

	session, err := s.owned(ctx, uid, sessionID)
	if err != nil {
		return 0, err
	}
	if !session.InProgress() {
		return 0, notInProgress(ErrSessionNotInProgress)
	}

	revision, err := s.repo.UpdateExercises(ctx, sessionID, exercises, s.Now().UTC(), expectedRevision)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			return 0, sessionNotFound(err)
		case errors.Is(err, ErrSessionNotInProgress):
			return 0, notInProgress(err)
		case errors.Is(err, ErrStaleRevision):
			return 0, apperr.Wrap(apperr.FailedPrecondition, err, "Workout session was changed by another update.")
		}
		return 0, err
	}

	return revision, nil
}

// Finish completes the session and updates the owner's streak, personal records
// and counters atomically. Finishing an already finished session fails and
// leaves the stats untouched.
func (s *Service) Finish(ctx context.Context, uid, sessionID string, exercises []LoggedExercise) (_ *FinishStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if err := access.RequireParams(access.P("sessionId", sessionID), access.P("exercises", exercises)); err != nil {
		return nil, err
	}

	if _, err := s.owned(ctx, uid, sessionID); err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	stats, err := s.repo.Complete(ctx, uid, sessionID, exercises, now, func(u *users.User, _ *Session) users.Stats {
		return CompletedStats(u, exercises, now)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotInProgress):
			return nil, notInProgress(err)
		case errors.Is(err, users.ErrUserNotFound):
			return nil, apperr.Wrap(apperr.NotFound, err, "User not found.")
		}
		return nil, err
	}

	s.metricsManager.SessionEvent(metrics.SessionFinished)
	log.Debugf("user %s finished session %s, streak %d", uid, sessionID, stats.CurrentStreak)

	return &FinishStats{
		CurrentStreak: stats.CurrentStreak,
		LongestStreak: stats.LongestStreak,
	}, nil
}

func (s *Service) Cancel(ctx context.Context, uid, sessionID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.cancel")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if err := access.RequireParams(access.P("sessionId", sessionID)); err != nil {
		return err
	}

	session, err := s.owned(ctx, uid, sessionID)
	if err != nil {
		return err
	}
	if !session.InProgress() {
		return notInProgress(ErrSessionNotInProgress)
	}

	if err := s.repo.Cancel(ctx, uid, sessionID, s.Now().UTC()); err != nil {
		if errors.Is(err, ErrSessionNotInProgress) {
			return notInProgress(err)
		}
		return err
	}

	s.metricsManager.SessionEvent(metrics.SessionCancelled)
	return nil
}

func (s *Service) Get(ctx context.Context, uid, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if err := access.RequireParams(access.P("sessionId", sessionID)); err != nil {
		return nil, err
	}
	return s.owned(ctx, uid, sessionID)
}
