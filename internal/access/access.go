package access

import (
	"context"
	"reflect"
	"regexp"

	"github.com/2beens/fitbase/internal/apperr"
)

type ctxKey struct{}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// WithUserID returns a copy of ctx carrying the authenticated caller uid.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, uid)
}

// UserID returns the authenticated caller, or an unauthenticated error.
func UserID(ctx context.Context) (string, error) {
	uid, _ := ctx.Value(ctxKey{}).(string)
	if uid == "" {
		return "", apperr.Unauthenticatedf("You must be logged in.")
	}
	return uid, nil
}

type Param struct {
	Name    string
	Present bool
}

// P reports whether a decoded request field was provided. Nil pointers, nil
// slices/maps and empty strings count as missing.
func P(name string, value any) Param {
	return Param{Name: name, Present: isPresent(value)}
}

func isPresent(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return s != ""
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return !v.IsNil()
	default:
		return true
	}
}

// RequireParams fails on the first missing parameter, in order.
func RequireParams(params ...Param) error {
	for _, p := range params {
		if !p.Present {
			return apperr.InvalidArgumentf("Missing required parameter: %s", p.Name)
		}
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return apperr.InvalidArgumentf("Invalid email format.")
	}
	return nil
}

// CheckOwner passes when uid matches any of the owner ids. Existence must be
// checked by the caller beforehand so that not-found wins over permission-denied.
func CheckOwner(uid string, ownerIDs ...string) error {
	for _, owner := range ownerIDs {
		if owner != "" && owner == uid {
			return nil
		}
	}
	return apperr.PermissionDeniedf("You don't have permission to access this resource.")
}
