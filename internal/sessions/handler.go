package sessions

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

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
	Start(ctx context.Context, uid, planID string, dayIndex *int) (*Session, error)
	Update(ctx context.Context, uid, sessionID string, exercises []LoggedExercise, expectedRevision *int) (int, error)
	Finish(ctx context.Context, uid, sessionID string, exercises []LoggedExercise) (*FinishStats, error)
	Cancel(ctx context.Context, uid, sessionID string) error
	Get(ctx context.Context, uid, sessionID string) (*Session, error)
}

type StartRequest struct {
	PlanID   string `json:"planId"`
	DayIndex *int   `json:"dayIndex"`
}

type StartResponse struct {
	Success   bool     `json:"success"`
	SessionID string   `json:"sessionId"`
	Session   *Session `json:"session"`
}

type ExercisesRequest struct {
	Exercises []LoggedExercise `json:"exercises"`
	Revision  *int             `json:"revision,omitempty"`
}

type UpdateResponse struct {
	Success  bool `json:"success"`
	Revision int  `json:"revision"`
}

type FinishResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Stats   *FinishStats `json:"stats"`
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

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/sessions", h.HandleStart).Methods("POST", "OPTIONS").Name("sessions-start")
	r.HandleFunc("/sessions/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("sessions-get")
	r.HandleFunc("/sessions/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("sessions-update")
	r.HandleFunc("/sessions/{id}/finish", h.HandleFinish).Methods("POST", "OPTIONS").Name("sessions-finish")
	r.HandleFunc("/sessions/{id}/cancel", h.HandleCancel).Methods("POST", "OPTIONS").Name("sessions-cancel")
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.start")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	var req StartRequest
	if err := pkg.ReadJSON(r, &req); err != nil {
		apperr.Write(w, r, uid, apperr.InvalidArgumentf("Invalid request body."))
		return
	}

	session, err := h.service.Start(ctx, uid, req.PlanID, req.DayIndex)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, StartResponse{
		Success:   true,
		SessionID: session.ID,
		Session:   session,
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	session, err := h.service.Get(ctx, uid, mux.Vars(r)["id"])
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.update")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	var req ExercisesRequest
	if err := pkg.ReadJSON(r, &req); err != nil {
		apperr.Write(w, r, uid, apperr.InvalidArgumentf("Invalid request body."))
		return
	}

	revision, err := h.service.Update(ctx, uid, mux.Vars(r)["id"], req.Exercises, req.Revision)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, UpdateResponse{Success: true, Revision: revision})
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.finish")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	var req ExercisesRequest
	if err := pkg.ReadJSON(r, &req); err != nil {
		apperr.Write(w, r, uid, apperr.InvalidArgumentf("Invalid request body."))
		return
	}

	stats, err := h.service.Finish(ctx, uid, mux.Vars(r)["id"], req.Exercises)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, FinishResponse{
		Success: true,
		Message: "Workout completed!",
		Stats:   stats,
	})
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.cancel")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	if err := h.service.Cancel(ctx, uid, mux.Vars(r)["id"]); err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
