package plans

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=plans_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitbase/internal/access"
	"github.com/2beens/fitbase/internal/apperr"
	"github.com/2beens/fitbase/internal/cache"
	"github.com/2beens/fitbase/internal/telemetry/metrics"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/internal/users"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	commonPlansCacheKey   = "plans||common"
	DefaultCommonPlansTTL = 5 * time.Minute
)

type plansRepo interface {
	Get(ctx context.Context, planID string) (*WorkoutPlan, error)
	ListCommon(ctx context.Context) ([]*WorkoutPlan, error)
	ListByOwner(ctx context.Context, uid string) ([]*WorkoutPlan, error)
	AddCustom(ctx context.Context, p *WorkoutPlan, maxCustom int) error
	Update(ctx context.Context, p *WorkoutPlan) error
	Delete(ctx context.Context, uid, planID string) error
	UpsertCommon(ctx context.Context, commonPlans []*WorkoutPlan) error
}

type usersRepo interface {
	Get(ctx context.Context, uid string) (*users.User, error)
	SetActivePlan(ctx context.Context, uid, planID string) error
}

type Service struct {
	repo           plansRepo
	users          usersRepo
	cache          cache.Cache
	metricsManager *metrics.Manager
	maxCustomPlans int
	commonPlansTTL time.Duration
	// injectable for tests
	Now   func() time.Time
	NewID func() string
}

type ServiceParams struct {
	Repo           plansRepo
	Users          usersRepo
	Cache          cache.Cache
	MetricsManager *metrics.Manager
	MaxCustomPlans int
	CommonPlansTTL time.Duration
}

func NewService(params ServiceParams) *Service {
	maxCustomPlans := params.MaxCustomPlans
	if maxCustomPlans <= 0 {
		maxCustomPlans = DefaultMaxCustomPlans
	}
	commonPlansTTL := params.CommonPlansTTL
	if commonPlansTTL <= 0 {
		commonPlansTTL = DefaultCommonPlansTTL
	}
	return &Service{
		repo:           params.Repo,
		users:          params.Users,
		cache:          params.Cache,
		metricsManager: params.MetricsManager,
		maxCustomPlans: maxCustomPlans,
		commonPlansTTL: commonPlansTTL,
		Now:            time.Now,
		NewID:          uuid.NewString,
	}
}

func planNotFound(err error) error {
	return apperr.Wrap(apperr.NotFound, err, "Workout plan not found.")
}

func (s *Service) load(ctx context.Context, planID string) (*WorkoutPlan, error) {
	if err := access.RequireParams(access.P("planId", planID)); err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, planID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return nil, planNotFound(err)
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) commonPlans(ctx context.Context) ([]*WorkoutPlan, error) {
	if cached, err := s.cache.Get(commonPlansCacheKey); err == nil {
		var plans []*WorkoutPlan
		err := json.Unmarshal(cached, &plans)
		if err == nil {
			return plans, nil
		}
		log.Warnf("drop unreadable common plans cache entry: %s", err)
		s.cache.Del(commonPlansCacheKey)
	}

	plans, err := s.repo.ListCommon(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(plans); err != nil {
		log.Errorf("marshal common plans for cache: %s", err)
	} else if err := s.cache.Set(commonPlansCacheKey, data, s.commonPlansTTL); err != nil {
		log.Errorf("cache common plans: %s", err)
	}

	return plans, nil
}

// Library lists the shared plans, the caller's own plans and the active plan id.
func (s *Service) Library(ctx context.Context, uid string) (_ *Library, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.library")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	u, err := s.users.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, apperr.Wrap(apperr.NotFound, err, "User not found.")
		}
		return nil, err
	}

	common, err := s.commonPlans(ctx)
	if err != nil {
		return nil, err
	}

	custom, err := s.repo.ListByOwner(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &Library{
		CommonWorkouts: common,
		CustomWorkouts: custom,
		ActivePlanID:   u.ActiveWorkoutPlanID,
	}, nil
}

func (s *Service) Get(ctx context.Context, uid, planID string) (_ *WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID))

	p, err := s.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := CheckReadable(uid, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Create adds a custom plan for uid, unless the user already owns the maximum
// number of custom plans.
func (s *Service) Create(ctx context.Context, uid string, in PlanInput) (_ *WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	p := &WorkoutPlan{
		ID:           s.NewID(),
		Description:  in.Description,
		Type:         TypeCustom,
		CreatedBy:    uid,
		NumberOfDays: in.NumberOfDays,
		Days:         in.Days,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.AddCustom(ctx, p, s.maxCustomPlans); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return nil, apperr.Wrap(
				apperr.FailedPrecondition, err,
				fmt.Sprintf("You have reached the limit of %d custom workout plans.", s.maxCustomPlans),
			)
		}
		return nil, err
	}

	s.metricsManager.PlanCreated()
	span.SetAttributes(attribute.String("plan.id", p.ID))
	log.Debugf("user %s created plan %s (%s)", uid, p.ID, p.PlanName)

	return p, nil
}

func (s *Service) Update(ctx context.Context, uid, planID string, update PlanUpdate) (_ *WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID))

	p, err := s.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := CheckWritable(uid, p); err != nil {
		return nil, err
	}
	if update.Empty() {
		return nil, apperr.InvalidArgumentf("Missing required parameter: planData")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	update.Apply(p, s.Now().UTC())
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return nil, planNotFound(err)
		}
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, uid, planID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID))

	p, err := s.load(ctx, planID)
	if err != nil {
		return err
	}
	if err := CheckWritable(uid, p); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, uid, planID); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return planNotFound(err)
		}
		return err
	}

	log.Debugf("user %s deleted plan %s", uid, planID)
	return nil
}

// Select makes planID the caller's active plan and restarts its day rotation.
func (s *Service) Select(ctx context.Context, uid, planID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.select")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID))

	p, err := s.load(ctx, planID)
	if err != nil {
		return err
	}
	if err := CheckReadable(uid, p); err != nil {
		return err
	}

	if err := s.users.SetActivePlan(ctx, uid, planID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return apperr.Wrap(apperr.NotFound, err, "User not found.")
		}
		return err
	}
	return nil
}

// SeedCommon upserts the shared plan catalogue and drops the cached copy.
func (s *Service) SeedCommon(ctx context.Context, plans []*WorkoutPlan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.seedCommon")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.Now().UTC()
	for _, p := range plans {
		p.Type = TypeCommon
		p.CreatedBy = ""
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
	}

	if err := s.repo.UpsertCommon(ctx, plans); err != nil {
		return err
	}
	s.cache.Del(commonPlansCacheKey)

	log.Infof("seeded %d common workout plans", len(plans))
	return nil
}
