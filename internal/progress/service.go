package progress

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitbase/internal/access"
	"github.com/2beens/fitbase/internal/apperr"
	"github.com/2beens/fitbase/internal/plans"
	"github.com/2beens/fitbase/internal/sessions"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/internal/users"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type progressRepo interface {
	GetSession(ctx context.Context, sessionID string) (*sessions.Session, error)
	ListCompleted(ctx context.Context, uid string, q CompletedQuery) ([]*sessions.Session, error)
}

type usersRepo interface {
	Get(ctx context.Context, uid string) (*users.User, error)
}

type plansRepo interface {
	Get(ctx context.Context, planID string) (*plans.WorkoutPlan, error)
}

type Service struct {
	repo  progressRepo
	users usersRepo
	plans plansRepo
	// injectable for tests
	Now func() time.Time
}

func NewService(repo progressRepo, userStore usersRepo, planStore plansRepo) *Service {
	return &Service{
		repo:  repo,
		users: userStore,
		plans: planStore,
		Now:   time.Now,
	}
}

func (s *Service) user(ctx context.Context, uid string) (*users.User, error) {
	u, err := s.users.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, apperr.Wrap(apperr.NotFound, err, "User not found.")
		}
		return nil, err
	}
	return u, nil
}

// activePlan resolves the user's active plan. A plan that was deleted or is no
// longer readable is treated as no active plan.
func (s *Service) activePlan(ctx context.Context, u *users.User) (*plans.WorkoutPlan, error) {
	if u.ActiveWorkoutPlanID == nil || *u.ActiveWorkoutPlanID == "" {
		return nil, nil
	}
	p, err := s.plans.Get(ctx, *u.ActiveWorkoutPlanID)
	if err != nil {
		if errors.Is(err, plans.ErrPlanNotFound) {
			log.Debugf("user %s has a dangling active plan %s", u.ID, *u.ActiveWorkoutPlanID)
			return nil, nil
		}
		return nil, err
	}
	if plans.CheckReadable(u.ID, p) != nil {
		return nil, nil
	}
	return p, nil
}

func (s *Service) Dashboard(ctx context.Context, uid string) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	u, err := s.user(ctx, uid)
	if err != nil {
		return nil, err
	}

	plan, err := s.activePlan(ctx, u)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListCompleted(ctx, uid, CompletedQuery{Limit: RecentWorkoutsLimit})
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		UserData:       u,
		ActivePlan:     plan,
		RecentWorkouts: recent,
		NextWorkout:    NextWorkoutFor(plan, u.LastCompletedDayIndex),
	}, nil
}

// History pages through completed sessions, newest first. cursor is the id of
// the last session of the previous page.
func (s *Service) History(ctx context.Context, uid string, limit int, cursor string) (_ *HistoryPage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	limit = ClampLimit(limit)
	span.SetAttributes(attribute.Int("limit", limit), attribute.String("cursor", cursor))

	q := CompletedQuery{Limit: limit + 1}
	if cursor != "" {
		after, err := s.repo.GetSession(ctx, cursor)
		if err != nil {
			if errors.Is(err, sessions.ErrSessionNotFound) {
				return nil, apperr.Wrap(apperr.InvalidArgument, err, "Invalid cursor.")
			}
			return nil, err
		}
		if err := access.CheckOwner(uid, after.UserID); err != nil {
			return nil, err
		}
		if after.DateCompleted == nil {
			return nil, apperr.InvalidArgumentf("Invalid cursor.")
		}
		q.After = &Position{DateCompleted: *after.DateCompleted, ID: after.ID}
	}

	completed, err := s.repo.ListCompleted(ctx, uid, q)
	if err != nil {
		return nil, err
	}

	page := &HistoryPage{Sessions: completed}
	if len(completed) > limit {
		page.Sessions = completed[:limit]
		page.HasMore = true
	}
	return page, nil
}

// Calendar lists completed sessions in the inclusive [startDate, endDate] window.
func (s *Service) Calendar(ctx context.Context, uid, startDate, endDate string) (_ []CalendarEvent, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.calendar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireParams(access.P("startDate", startDate), access.P("endDate", endDate)); err != nil {
		return nil, err
	}
	from, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, apperr.InvalidArgumentf("startDate must not be after endDate.")
	}

	completed, err := s.repo.ListCompleted(ctx, uid, CompletedQuery{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	return CalendarEvents(completed), nil
}

func (s *Service) Analytics(ctx context.Context, uid, period string) (_ *Analytics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.analytics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("period", period))

	now := s.Now().UTC()
	from, weeks, err := PeriodWindow(period, now)
	if err != nil {
		return nil, err
	}

	u, err := s.user(ctx, uid)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.ListCompleted(ctx, uid, CompletedQuery{From: &from})
	if err != nil {
		return nil, err
	}

	return ComputeAnalytics(period, completed, weeks, u.Location()), nil
}

func (s *Service) PersonalRecords(ctx context.Context, uid string) (_ *RecordsSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.personalRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	u, err := s.user(ctx, uid)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListCompleted(ctx, uid, CompletedQuery{Limit: RecordsScanLimit})
	if err != nil {
		return nil, err
	}

	return SummarizeRecords(u.Stats, recent), nil
}
