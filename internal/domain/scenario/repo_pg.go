package scenario

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opisim/opisim/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type scenarioRepoPG struct{ pool *pgxpool.Pool }

func NewScenarioRepoPG(pool *pgxpool.Pool) ScenarioRepository {
	return &scenarioRepoPG{pool: pool}
}

func (r *scenarioRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const scCols = `id, name, description, drug, model, patient, events,
	duration_minutes, start_time, created_by, created_at, updated_at`

func (r *scenarioRepoPG) scanScenario(row pgx.Row) (*Scenario, error) {
	var s Scenario
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Drug, &s.Model,
		&s.Patient, &s.Events, &s.DurationMinutes, &s.StartTime,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scenarioRepoPG) Create(ctx context.Context, s *Scenario) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO scenario (id, name, description, drug, model, patient, events,
			duration_minutes, start_time, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.Name, s.Description, s.Drug, s.Model, s.Patient, s.Events,
		s.DurationMinutes, s.StartTime, s.CreatedBy)
	return err
}

func (r *scenarioRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Scenario, error) {
	return r.scanScenario(r.conn(ctx).QueryRow(ctx, `SELECT `+scCols+` FROM scenario WHERE id = $1`, id))
}

func (r *scenarioRepoPG) Update(ctx context.Context, s *Scenario) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE scenario SET name=$2, description=$3, drug=$4, model=$5,
			patient=$6, events=$7, duration_minutes=$8, start_time=$9, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Drug, s.Model,
		s.Patient, s.Events, s.DurationMinutes, s.StartTime)
	return err
}

func (r *scenarioRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM scenario WHERE id = $1`, id)
	return err
}

func (r *scenarioRepoPG) List(ctx context.Context, name string, limit, offset int) ([]*Scenario, int, error) {
	var (
		total int
		rows  pgx.Rows
		err   error
	)
	if name != "" {
		if err = r.conn(ctx).QueryRow(ctx,
			`SELECT COUNT(*) FROM scenario WHERE name ILIKE '%' || $1 || '%'`, name).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.conn(ctx).Query(ctx,
			`SELECT `+scCols+` FROM scenario WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			name, limit, offset)
	} else {
		if err = r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM scenario`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.conn(ctx).Query(ctx,
			`SELECT `+scCols+` FROM scenario ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Scenario
	for rows.Next() {
		s, err := r.scanScenario(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}
