package progress

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

import (
	"context"
	"net/http"
	"strconv"

	"github.com/2beens/fitbase/internal/access"
	"github.com/2beens/fitbase/internal/apperr"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/pkg"

	"github.com/gorilla/mux"
)

type service interface {
	Dashboard(ctx context.Context, uid string) (*Dashboard, error)
	History(ctx context.Context, uid string, limit int, cursor string) (*HistoryPage, error)
	Calendar(ctx context.Context, uid, startDate, endDate string) ([]CalendarEvent, error)
	Analytics(ctx context.Context, uid, period string) (*Analytics, error)
	PersonalRecords(ctx context.Context, uid string) (*RecordsSummary, error)
}

type CalendarResponse struct {
	Events []CalendarEvent `json:"events"`
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
	r.HandleFunc("/dashboard", h.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/history", h.HandleHistory).Methods("GET", "OPTIONS").Name("history")
	r.HandleFunc("/calendar", h.HandleCalendar).Methods("GET", "OPTIONS").Name("calendar")
	r.HandleFunc("/analytics", h.HandleAnalytics).Methods("GET", "OPTIONS").Name("analytics")
	r.HandleFunc("/records", h.HandlePersonalRecords).Methods("GET", "OPTIONS").Name("records")
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.dashboard")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	dashboard, err := h.service.Dashboard(ctx, uid)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.history")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil {
			apperr.Write(w, r, uid, apperr.InvalidArgumentf("Invalid limit."))
			return
		}
	}

	page, err := h.service.History(ctx, uid, limit, r.URL.Query().Get("cursor"))
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.calendar")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	query := r.URL.Query()
	events, err := h.service.Calendar(ctx, uid, query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, CalendarResponse{Events: events})
}

func (h *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.analytics")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	analytics, err := h.service.Analytics(ctx, uid, r.URL.Query().Get("period"))
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, analytics)
}

func (h *Handler) HandlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.personalRecords")
	defer span.End()

	uid, err := access.UserID(ctx)
	if err != nil {
		apperr.Write(w, r, "", err)
		return
	}

	summary, err := h.service.PersonalRecords(ctx, uid)
	if err != nil {
		apperr.Write(w, r, uid, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, summary)
}
