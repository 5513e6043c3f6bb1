package users

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

import (
	"context"
	"net/http"

	"github.com/2beens/fitbase/internal/access"
	"github.com/2beens/fitbase/internal/apperr"
	"github.com/2beens/fitbase/internal/middleware"
	"github.com/2beens/fitbase/internal/telemetry/metrics"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/pkg"

	"github.com/gorilla/mux"
)

type service interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	VerifyUser(ctx context.Context, email string) (string, error)
	InitiatePasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	Login(ctx context.Context, email, password string) (string, string, error)
	Logout(ctx context.Context, token string) (bool, error)
	GetProfile(ctx context.Context, uid string) (*User, error)
	UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) (*User, error)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UID     string `json:"uid"`
}

type VerifyUserResponse struct {
	Exists bool   `json:"exists"`
	UID    string `json:"uid"`
}

type PasswordResetConfirm struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

type RateLimits struct {
	Limiter        middleware.RequestRateLimiter
	MetricsManager *metrics.Manager
	LoginPerMin    int
	SignupPerMin   int
	ResetPerMin    int
}

func (h *Handler) SetupRoutes(r *mux.Router, limits RateLimits) {
	signupLimit := middleware.RateLimit(limits.Limiter, limits.MetricsManager, "signup", limits.SignupPerMin)
	loginLimit := middleware.RateLimit(limits.Limiter, limits.MetricsManager, "login", limits.LoginPerMin)
	resetLimit := middleware.RateLimit(limits.Limiter, limits.MetricsManager, "password-reset", limits.ResetPerMin)

	r.Handle("/users", signupLimit(http.HandlerFunc(h.HandleCreateUser))).Methods("POST", "OPTIONS").Name("create-user")
	r.HandleFunc("/users/verify", h.HandleVerifyUser).Methods("POST", "OPTIONS").Name("verify-user")
	r.Handle("/users/password-reset", resetLimit(http.HandlerFunc(h.HandleInitiatePasswordReset))).Methods("POST", "OPTIONS").Name("password-reset")
	r.Handle("/users/password-reset/confirm", resetLimit(http.HandlerFunc(h.HandleConfirmPasswordReset))).Methods("POST", "OPTIONS").Name("password-reset-confirm")

	r.Handle("/a/login", loginLimit(http.HandlerFunc(h.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/a/logout", h.HandleLogout).Methods("GET", "POST", "OPTIONS").Name("logout")

	r.HandleFunc("/profile", h.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", h.HandleUpdateProfile).Methods("PUT", "OPTIONS").Name("update-profile")
}

func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.create")
	defer span.End()

	var creds Credentials
	if err := pkg.ReadJSON(r, &creds); err != nil {
		apperr.Write(w, r, "", apperr.InvalidArgumentf("Invalid request body."))
		return
	}

	uid, err := h.service.CreateUser(ctx, creds.Email, creds.Password)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, CreateUserResponse{
		Success: true,
		Message: "User created successfully. Please sign in.",
		UID:     uid,
	})
}

func (h *Handler) HandleVerifyUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.verify")
	defer span.End()

	var creds Credentials
	if err := pkg.ReadJSON(r, &creds); err != nil {
		apperr.Write(w, r, "", apperr.InvalidArgumentf("Invalid request body."))
		return
	}

	uid, err := h.service.VerifyUser(ctx, creds.Email)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, VerifyUserResponse{Exists: true, UID: uid})
}

func (h *Handler) HandleInitiatePasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.passwordReset")
	defer span.End()

	var creds Credentials
	if err := pkg.ReadJSON(r, &creds); err != nil {
		apperr.Write(w, r, "", apperr.InvalidArgumentf("Invalid request body."))
		return
	}

	if err := h.service.InitiatePasswordReset(ctx, creds.Email); err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) HandleConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.passwordResetConfirm")
	defer span.End()

	var req PasswordResetConfirm
	if err := pkg.ReadJSON(r, &req); err != nil {
		apperr.Write(w, r, "", apperr.InvalidArgumentf("Invalid request body."))
		return
	}

	if err := h.service.ConfirmPasswordReset(ctx, req.Token, req.Password); err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	var creds Credentials
	if err := pkg.ReadJSON(r, &creds); err != nil {
		apperr.Write(w, r, "", apperr.InvalidArgumentf("Invalid request body."))
		return
	}

	token, uid, err := h.service.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, UID: uid})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	uid, _ := access.UserID(ctx)
	loggedOut, err := h.service.Logout(ctx, middleware.BearerToken(r))
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SuccessResponse{Success: loggedOut})
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getProfile")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	u, err := h.service.GetProfile(ctx, uid)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.updateProfile")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	var update ProfileUpdate
	if err := pkg.ReadJSON(r, &update); err != nil {
		apperr.Write(w, r, uid, apperr.InvalidArgumentf("Invalid request body."))
		return
	}

	u, err := h.service.UpdateProfile(ctx, uid, update)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, u)
}
