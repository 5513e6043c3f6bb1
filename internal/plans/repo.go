package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitbase/internal/db"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/internal/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const planColumns = `id, plan_name, description, type, created_by, number_of_days, days, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanPlan(row pgx.Row) (*WorkoutPlan, error) {
	p := &WorkoutPlan{}
	var createdBy *string
	err := row.Scan(
		&p.ID, &p.PlanName, &p.Description, &p.Type, &createdBy,
		&p.NumberOfDays, &p.Days, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if createdBy != nil {
		p.CreatedBy = *createdBy
	}
	return p, nil
}

func collectPlans(rows pgx.Rows) ([]*WorkoutPlan, error) {
	defer rows.Close()

	plans := make([]*WorkoutPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

func nullableOwner(p *WorkoutPlan) *string {
	if p.CreatedBy == "" {
		return nil
	}
	return &p.CreatedBy
}

func (r *Repo) Get(ctx context.Context, planID string) (_ *WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID))

	return scanPlan(r.db.QueryRow(ctx, `SELECT `+planColumns+` FROM workouts WHERE id = $1`, planID))
}

func (r *Repo) ListCommon(ctx context.Context) (_ []*WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.listCommon")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+planColumns+`
		FROM workouts
		WHERE type = $1
		ORDER BY plan_name ASC
	`, TypeCommon)
	if err != nil {
		return nil, err
	}
	return collectPlans(rows)
}

func (r *Repo) ListByOwner(ctx context.Context, uid string) (_ []*WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.listByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+planColumns+`
		FROM workouts
		WHERE created_by = $1
		ORDER BY plan_name ASC
	`, uid)
	if err != nil {
		return nil, err
	}
	return collectPlans(rows)
}

// AddCustom stores p as a new custom plan of p.CreatedBy and names it after the
// number of plans the user already has. Concurrent calls for the same user are
// serialized with an advisory lock so the quota cannot be overshot.
func (r *Repo) AddCustom(ctx context.Context, p *WorkoutPlan, maxCustom int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.addCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "plans||"+p.CreatedBy); err != nil {
			return fmt.Errorf("acquire plan quota lock: %w", err)
		}

		var existing int
		if err := tx.QueryRow(ctx, `
			SELECT count(*) FROM workouts WHERE created_by = $1 AND type = $2
		`, p.CreatedBy, TypeCustom).Scan(&existing); err != nil {
			return fmt.Errorf("count custom plans: %w", err)
		}
		if existing >= maxCustom {
			return ErrQuotaExceeded
		}

		p.Type = TypeCustom
		p.PlanName = CustomPlanName(existing)
		_, err := tx.Exec(ctx, `
			INSERT INTO workouts (`+planColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			p.ID, p.PlanName, p.Description, p.Type, nullableOwner(p),
			p.NumberOfDays, p.Days, p.CreatedAt, p.UpdatedAt,
		)
		return err
	})
}

func (r *Repo) Update(ctx context.Context, p *WorkoutPlan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", p.ID))

	tag, err := r.db.Exec(ctx, `
		UPDATE workouts SET
			plan_name      = $2,
			description    = $3,
			number_of_days = $4,
			days           = $5,
			updated_at     = $6
		WHERE id = $1 AND type = $7
	`, p.ID, p.PlanName, p.Description, p.NumberOfDays, p.Days, p.UpdatedAt, TypeCustom)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// Delete removes the custom plan and unsets it as the owner's active plan.
func (r *Repo) Delete(ctx context.Context, uid, planID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID))

	return db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			DELETE FROM workouts WHERE id = $1 AND created_by = $2 AND type = $3
		`, planID, uid, TypeCustom)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrPlanNotFound
		}
		return users.ClearActivePlan(ctx, tx, uid, planID)
	})
}

// UpsertCommon inserts or refreshes the shared plans.
func (r *Repo) UpsertCommon(ctx context.Context, commonPlans []*WorkoutPlan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.upsertCommon")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plans.count", len(commonPlans)))

	return db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, p := range commonPlans {
			batch.Queue(`
				INSERT INTO workouts (`+planColumns+`)
				VALUES ($1, $2, $3, $4, NULL, $5, $6, $7, $8)
				ON CONFLICT (id) DO UPDATE SET
					plan_name      = EXCLUDED.plan_name,
					description    = EXCLUDED.description,
					number_of_days = EXCLUDED.number_of_days,
					days           = EXCLUDED.days,
					updated_at     = EXCLUDED.updated_at
				WHERE workouts.type = 'common'
			`, p.ID, p.PlanName, p.Description, TypeCommon, p.NumberOfDays, p.Days, p.CreatedAt, p.UpdatedAt)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}
