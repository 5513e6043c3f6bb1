package auth

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitbase/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (lc *LoginChecker) UserID(ctx context.Context, token string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "loginChecker.userID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if token == "" {
		return "", ErrInvalidToken
	}

	cmd := lc.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	session, err := parseSessionValue(cmd.Val())
	if err != nil {
		return "", err
	}

	if time.Since(session.CreatedAt) > lc.ttl {
		return "", ErrInvalidToken
	}

	span.SetAttributes(attribute.String("uid", session.UserID))
	return session.UserID, nil
}
