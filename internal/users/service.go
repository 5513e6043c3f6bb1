package users

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=users_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/2beens/fitbase/internal/access"
	"github.com/2beens/fitbase/internal/apperr"
	"github.com/2beens/fitbase/internal/auth"
	"github.com/2beens/fitbase/internal/telemetry/metrics"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type usersRepo interface {
	Add(ctx context.Context, u *User) error
	Get(ctx context.Context, uid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) (*User, error)
	UpdatePasswordHash(ctx context.Context, uid, passwordHash string) error
}

type tokenService interface {
	Login(ctx context.Context, uid string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
	CreatePasswordResetToken(ctx context.Context, uid string) (string, error)
	ConsumePasswordResetToken(ctx context.Context, token string) (string, error)
}

type Service struct {
	repo           usersRepo
	tokens         tokenService
	metricsManager *metrics.Manager
	// injectable for tests
	Now        func() time.Time
	NewID      func() string
	HashFunc   func(password string) (string, error)
	VerifyFunc func(password, hash string) bool
}

func NewService(repo usersRepo, tokens tokenService, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		tokens:         tokens,
		metricsManager: metricsManager,
		Now:            time.Now,
		NewID:          uuid.NewString,
		HashFunc:       pkg.HashPassword,
		VerifyFunc:     pkg.CheckPasswordHash,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperr.InvalidArgumentf("Password is too weak.")
	}
	return nil
}

// CreateUser registers a new account and returns its uid.
func (s *Service) CreateUser(ctx context.Context, email, password string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireParams(access.P("email", email), access.P("password", password)); err != nil {
		return "", err
	}
	email = normalizeEmail(email)
	if err := access.ValidateEmail(email); err != nil {
		return "", err
	}
	if err := validatePassword(password); err != nil {
		return "", err
	}

	passwordHash, err := s.HashFunc(password)
	if err != nil {
		return "", err
	}

	u := NewUser(s.NewID(), email, passwordHash, s.Now().UTC())
	if err := s.repo.Add(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return "", apperr.Wrap(apperr.AlreadyExists, err, "Email already in use.")
		}
		return "", err
	}

	s.metricsManager.UserCreated()
	span.SetAttributes(attribute.String("uid", u.ID))
	log.Debugf("user created: %s", u.ID)

	return u.ID, nil
}

// VerifyUser reports the uid registered for email.
func (s *Service) VerifyUser(ctx context.Context, email string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.verify")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireParams(access.P("email", email)); err != nil {
		return "", err
	}

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", apperr.Wrap(apperr.NotFound, err, "User not found.")
		}
		return "", err
	}

	return u.ID, nil
}

// InitiatePasswordReset issues a reset token if the account exists. The outcome is
// the same either way so that callers cannot tell which emails are registered.
func (s *Service) InitiatePasswordReset(ctx context.Context, email string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.initiatePasswordReset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireParams(access.P("email", email)); err != nil {
		return err
	}
	email = normalizeEmail(email)
	if err := access.ValidateEmail(email); err != nil {
		return err
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Debugf("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := s.tokens.CreatePasswordResetToken(ctx, u.ID)
	if err != nil {
		return err
	}

	// TODO: hand the token to the mailer once outbound email is wired
	log.Debugf("password reset token issued for user %s (len %d)", u.ID, len(token))
	return nil
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.confirmPasswordReset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireParams(access.P("token", token), access.P("password", newPassword)); err != nil {
		return err
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	uid, err := s.tokens.ConsumePasswordResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return apperr.Wrap(apperr.InvalidArgument, err, "Invalid or expired reset token.")
		}
		return err
	}

	passwordHash, err := s.HashFunc(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePasswordHash(ctx, uid, passwordHash); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperr.Wrap(apperr.NotFound, err, "User not found.")
		}
		return err
	}

	return nil
}

// Login checks the credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (_ string, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireParams(access.P("email", email), access.P("password", password)); err != nil {
		return "", "", err
	}

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", "", apperr.Unauthenticatedf("Invalid email or password.")
		}
		return "", "", err
	}

	if !s.VerifyFunc(password, u.PasswordHash) {
		return "", "", apperr.Unauthenticatedf("Invalid email or password.")
	}

	token, err := s.tokens.Login(ctx, u.ID, s.Now())
	if err != nil {
		return "", "", err
	}

	return token, u.ID, nil
}

func (s *Service) Logout(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if token == "" {
		return false, apperr.Unauthenticatedf("You must be logged in.")
	}
	return s.tokens.Logout(ctx, token)
}

func (s *Service) GetProfile(ctx context.Context, uid string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.getProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	u, err := s.repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.Wrap(apperr.NotFound, err, "User not found.")
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if update.Empty() {
		return nil, apperr.InvalidArgumentf("Missing required parameter: data")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.UpdateProfile(ctx, uid, update)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.Wrap(apperr.NotFound, err, "User not found.")
		}
		return nil, err
	}
	return u, nil
}
