package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carehome/emar/internal/platform/db"
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

const cols = `id, name, category, dose_amount, unit, stock, min_stock,
	expiry_date, manufacturer, note, created_at, updated_at`

func scanMed(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.DoseAmount, &m.Unit,
		&m.Stock, &m.MinStock, &m.ExpiryDate, &m.Manufacturer, &m.Note,
		&m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication (id, name, category, dose_amount, unit, stock,
			min_stock, expiry_date, manufacturer, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.Name, m.Category, m.DoseAmount, m.Unit, m.Stock,
		m.MinStock, m.ExpiryDate, m.Manufacturer, m.Note)
	return err
}

func (r *repoPG) Update(ctx context.Context, m *Medication) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET name=$2, category=$3, dose_amount=$4, unit=$5,
			stock=$6, min_stock=$7, expiry_date=$8, manufacturer=$9, note=$10,
			updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Category, m.DoseAmount, m.Unit,
		m.Stock, m.MinStock, m.ExpiryDate, m.Manufacturer, m.Note)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return scanMed(r.conn(ctx).QueryRow(ctx, `SELECT `+cols+` FROM medication WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Medication, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medication`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+` FROM medication ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := collect(rows)
	return result, total, err
}

func (r *repoPG) ListAll(ctx context.Context) ([]*Medication, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+cols+` FROM medication ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows pgx.Rows) ([]*Medication, error) {
	var result []*Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.DoseAmount, &m.Unit,
			&m.Stock, &m.MinStock, &m.ExpiryDate, &m.Manufacturer, &m.Note,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}
