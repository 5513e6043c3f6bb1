package middleware

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/fitbase/internal/access"
	"github.com/2beens/fitbase/internal/apperr"
	"github.com/2beens/fitbase/internal/auth"
	"github.com/2beens/fitbase/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type loginChecker interface {
	UserID(ctx context.Context, token string) (string, error)
}

type AuthMiddlewareHandler struct {
	loginChecker loginChecker
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(loginChecker loginChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
		allowedPaths: map[string]bool{
			"/": true,

			// account handler:
			"/users":                        true,
			"/users/verify":                 true,
			"/users/password-reset":         true,
			"/users/password-reset/confirm": true,

			// login:
			"/a/login": true,
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	return h.allowedPaths[path]
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := BearerToken(r)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				apperr.Write(w, r, "", apperr.Unauthenticatedf("You must be logged in."))
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			uid, err := h.loginChecker.UserID(ctx, authToken)
			if err != nil {
				if !errors.Is(err, auth.ErrInvalidToken) {
					// token store unreachable: the token may still be valid
					log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
					span.RecordError(err)
					span.SetStatus(codes.Error, "login-check-failed")
					apperr.Write(w, r, "", err)
					return
				}
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				apperr.Write(w, r, "", apperr.Unauthenticatedf("You must be logged in."))
				span.SetStatus(codes.Error, "not-logged")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(access.WithUserID(r.Context(), uid)))
		})
	}
}
