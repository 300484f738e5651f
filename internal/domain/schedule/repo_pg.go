package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carehome/emar/internal/platform/db"
	"github.com/carehome/emar/pkg/caldate"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cols = `id, resident_id, resident_name, medication_id, medication_name,
	dose, timings, start_date, end_date, prescriber, note, version,
	created_at, updated_at`

func scanOne(row pgx.Row) (*Schedule, error) {
	var s Schedule
	err := row.Scan(&s.ID, &s.ResidentID, &s.ResidentName, &s.MedicationID,
		&s.MedicationName, &s.Dose, &s.Timings, &s.StartDate, &s.EndDate,
		&s.Prescriber, &s.Note, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &s, err
}

func collect(rows pgx.Rows) ([]*Schedule, error) {
	var result []*Schedule
	for rows.Next() {
		var s Schedule
		if err := rows.Scan(&s.ID, &s.ResidentID, &s.ResidentName, &s.MedicationID,
			&s.MedicationName, &s.Dose, &s.Timings, &s.StartDate, &s.EndDate,
			&s.Prescriber, &s.Note, &s.Version, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, s *Schedule) error {
	s.ID = uuid.New()
	s.Version = 1
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication_schedule (id, resident_id, resident_name,
			medication_id, medication_name, dose, timings, start_date, end_date,
			prescriber, note, version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		s.ID, s.ResidentID, s.ResidentName, s.MedicationID, s.MedicationName,
		s.Dose, s.Timings, s.StartDate, s.EndDate, s.Prescriber, s.Note, s.Version)
	return err
}

func (r *repoPG) Update(ctx context.Context, s *Schedule) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication_schedule SET resident_id=$2, resident_name=$3,
			medication_id=$4, medication_name=$5, dose=$6, timings=$7,
			start_date=$8, end_date=$9, prescriber=$10, note=$11,
			version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $12`,
		s.ID, s.ResidentID, s.ResidentName, s.MedicationID, s.MedicationName,
		s.Dose, s.Timings, s.StartDate, s.EndDate, s.Prescriber, s.Note, s.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Missing row and stale version look alike; disambiguate.
		if _, err := r.GetByID(ctx, s.ID); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	s.Version++
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	return scanOne(r.conn(ctx).QueryRow(ctx, `SELECT `+cols+` FROM medication_schedule WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Schedule, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medication_schedule`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+` FROM medication_schedule
		ORDER BY resident_name, medication_name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := collect(rows)
	return result, total, err
}

func (r *repoPG) ListActiveOn(ctx context.Context, d caldate.Date) ([]*Schedule, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+` FROM medication_schedule
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY resident_name, medication_name`, d)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication_schedule WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
