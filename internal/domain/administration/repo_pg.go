package administration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carehome/emar/internal/platform/db"
	"github.com/carehome/emar/pkg/caldate"
)

// uniqueViolation is the postgres error code raised when the partial unique
// index on administered (schedule_id, date, timing) rows rejects an insert.
const uniqueViolation = "23505"

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

const cols = `id, schedule_id, resident_name, medication_name, date, timing,
	administered, administered_by, administered_at, note, created_at`

func collect(rows pgx.Rows) ([]*Record, error) {
	var result []*Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ScheduleID, &rec.ResidentName,
			&rec.MedicationName, &rec.Date, &rec.Timing, &rec.Administered,
			&rec.AdministeredBy, &rec.AdministeredAt, &rec.Note, &rec.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &rec)
	}
	return result, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO administration_record (id, schedule_id, resident_name,
			medication_name, date, timing, administered, administered_by,
			administered_at, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.ScheduleID, rec.ResidentName, rec.MedicationName,
		rec.Date, rec.Timing, rec.Administered, rec.AdministeredBy,
		rec.AdministeredAt, rec.Note)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: schedule %s, %s, %s",
			ErrDuplicateAdministration, rec.ScheduleID, rec.Date, rec.Timing)
	}
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM administration_record`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+` FROM administration_record
		ORDER BY date DESC, administered_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := collect(rows)
	return result, total, err
}

func (r *repoPG) ListForDate(ctx context.Context, d caldate.Date) ([]*Record, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+` FROM administration_record
		WHERE date = $1
		ORDER BY administered_at`, d)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *repoPG) Exists(ctx context.Context, scheduleID uuid.UUID, d caldate.Date, timing string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM administration_record
			WHERE schedule_id = $1 AND date = $2 AND timing = $3 AND administered
		)`, scheduleID, d, timing).Scan(&exists)
	return exists, err
}
