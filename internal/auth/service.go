package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	PasswordResetTTL = time.Hour
	sessionKeyPrefix = "fitbase-session||"
	tokensSetKey     = "fitbase-sessions"
	resetKeyPrefix   = "fitbase-password-reset||"
	tokenLength      = 35
	resetTokenLength = 48
)

var ErrMalformedSession = errors.New("malformed session value")

type LoginSession struct {
	UserID    string
	CreatedAt time.Time
}

// session values are stored as "<uid>|<created at unix>"
func sessionValue(uid string, createdAt time.Time) string {
	return fmt.Sprintf("%s|%d", uid, createdAt.Unix())
}

func parseSessionValue(val string) (*LoginSession, error) {
	uid, createdAtStr, found := strings.Cut(val, "|")
	if !found || uid == "" {
		return nil, ErrMalformedSession
	}

	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedSession, err)
	}

	return &LoginSession{
		UserID:    uid,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login issues a new bearer token for uid.
func (as *Service) Login(ctx context.Context, uid string, createdAt time.Time) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	cmdSet := as.redisClient.Set(ctx, sessionKey, sessionValue(uid, createdAt), as.ttl)
	if err := cmdSet.Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	cmdSAdd := as.redisClient.SAdd(ctx, tokensSetKey, token)
	if err := cmdSAdd.Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Logout revokes the token. It reports false if the token was unknown.
func (as *Service) Logout(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessionKey := sessionKeyPrefix + token
	cmdDel := as.redisClient.Del(ctx, sessionKey)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}

	// remove token from the list of sessions
	cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, token)
	if err := cmdSRem.Err(); err != nil {
		return false, err
	}

	return cmdDel.Val() > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		sessionKey := sessionKeyPrefix + token
		cmd := as.redisClient.Get(ctx, sessionKey)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				// key already expired, only the set entry is left
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		session, err := parseSessionValue(cmd.Val())
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}

		if time.Since(session.CreatedAt) > as.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		sessionKey := sessionKeyPrefix + token
		cmdDel := as.redisClient.Del(ctx, sessionKey)
		if err := cmdDel.Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}

		// remove token from the list of sessions
		cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, token)
		if err := cmdSRem.Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}
}

// CreatePasswordResetToken stores a single-use reset token for uid.
func (as *Service) CreatePasswordResetToken(ctx context.Context, uid string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.createPasswordResetToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	token, err := as.RandStringFunc(resetTokenLength)
	if err != nil {
		return "", err
	}

	if err := as.redisClient.Set(ctx, resetKeyPrefix+token, uid, PasswordResetTTL).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// ConsumePasswordResetToken returns the uid the token was issued for and invalidates it.
func (as *Service) ConsumePasswordResetToken(ctx context.Context, token string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.consumePasswordResetToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	resetKey := resetKeyPrefix + token
	cmdGet := as.redisClient.Get(ctx, resetKey)
	if err := cmdGet.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	cmdDel := as.redisClient.Del(ctx, resetKey)
	if err := cmdDel.Err(); err != nil {
		return "", err
	}
	// a concurrent consumer got there first
	if cmdDel.Val() == 0 {
		return "", ErrInvalidToken
	}

	return cmdGet.Val(), nil
}
