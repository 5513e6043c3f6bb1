package plans

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=plans_test

import (
	"context"
	"net/http"

	"github.com/2beens/fitbase/internal/access"
	"github.com/2beens/fitbase/internal/apperr"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/pkg"

	"github.com/gorilla/mux"
)

type service interface {
	Library(ctx context.Context, uid string) (*Library, error)
	Get(ctx context.Context, uid, planID string) (*WorkoutPlan, error)
	Create(ctx context.Context, uid string, in PlanInput) (*WorkoutPlan, error)
	Update(ctx context.Context, uid, planID string, update PlanUpdate) (*WorkoutPlan, error)
	Delete(ctx context.Context, uid, planID string) error
	Select(ctx context.Context, uid, planID string) error
}

type CreatePlanResponse struct {
	Success  bool   `json:"success"`
	PlanID   string `json:"planId"`
	PlanName string `json:"planName"`
}

type UpdatePlanResponse struct {
	Success bool         `json:"success"`
	Plan    *WorkoutPlan `json:"plan"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/plans", h.HandleLibrary).Methods("GET", "OPTIONS").Name("plans-library")
	r.HandleFunc("/plans", h.HandleCreate).Methods("POST", "OPTIONS").Name("plans-create")
	r.HandleFunc("/plans/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("plans-get")
	r.HandleFunc("/plans/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("plans-update")
	r.HandleFunc("/plans/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("plans-delete")
	r.HandleFunc("/plans/{id}/select", h.HandleSelect).Methods("POST", "OPTIONS").Name("plans-select")
}

func (h *Handler) HandleLibrary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.library")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	library, err := h.service.Library(ctx, uid)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, library)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.get")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	plan, err := h.service.Get(ctx, uid, mux.Vars(r)["id"])
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, plan)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.create")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	var in PlanInput
	if err := pkg.ReadJSON(r, &in); err != nil {
		apperr.Write(w, r, uid, apperr.InvalidArgumentf("Invalid data payload."))
		return
	}

	plan, err := h.service.Create(ctx, uid, in)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, CreatePlanResponse{
		Success:  true,
		PlanID:   plan.ID,
		PlanName: plan.PlanName,
	})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.update")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	var update PlanUpdate
	if err := pkg.ReadJSON(r, &update); err != nil {
		apperr.Write(w, r, uid, apperr.InvalidArgumentf("Invalid data payload."))
		return
	}

	plan, err := h.service.Update(ctx, uid, mux.Vars(r)["id"], update)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, UpdatePlanResponse{Success: true, Plan: plan})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.delete")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	if err := h.service.Delete(ctx, uid, mux.Vars(r)["id"]); err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.select")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	if err := h.service.Select(ctx, uid, mux.Vars(r)["id"]); err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Workout plan selected successfully.",
	})
}
