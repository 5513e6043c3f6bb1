package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitbase/internal/sessions"
	"github.com/2beens/fitbase/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Position is a keyset cursor into the completed sessions, newest first.
type Position struct {
	DateCompleted time.Time
	ID            string
}

type CompletedQuery struct {
	Limit int
	After *Position
	From  *time.Time
	To    *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetSession(ctx context.Context, sessionID string) (_ *sessions.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.getSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return sessions.ScanSession(r.db.QueryRow(ctx, `SELECT `+sessions.SessionColumns+` FROM user_workouts WHERE id = $1`, sessionID))
}

// ListCompleted returns the user's completed sessions ordered by completion
// time, newest first, narrowed by q.
func (r *Repo) ListCompleted(ctx context.Context, uid string, q CompletedQuery) (_ []*sessions.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.listCompleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", q.Limit))

	var (
		where = []string{"user_id = $1", "status = $2"}
		args  = []any{uid, sessions.StatusCompleted}
	)
	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.After != nil {
		where = append(where, fmt.Sprintf(
			"(date_completed, id) < (%s, %s)",
			addArg(q.After.DateCompleted), addArg(q.After.ID),
		))
	}
	if q.From != nil {
		where = append(where, "date_completed >= "+addArg(*q.From))
	}
	if q.To != nil {
		where = append(where, "date_completed <= "+addArg(*q.To))
	}

	query := `
		SELECT ` + sessions.SessionColumns + `
		FROM user_workouts
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY date_completed DESC, id DESC
	`
	if q.Limit > 0 {
		query += " LIMIT " + addArg(q.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make([]*sessions.Session, 0)
	for rows.Next() {
		s, err := sessions.ScanSession(rows)
		if err != nil {
			return nil, err
		}
		completed = append(completed, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return completed, nil
}
