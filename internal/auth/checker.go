package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid or expired token")

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

// Checker resolves a bearer token to the uid it was issued for.
type Checker interface {
	UserID(ctx context.Context, token string) (string, error)
}

type LoginTestChecker struct {
	LoggedSessions map[string]string // token -> uid
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]string{},
	}
}

func (c *LoginTestChecker) UserID(_ context.Context, token string) (string, error) {
	uid, ok := c.LoggedSessions[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return uid, nil
}
