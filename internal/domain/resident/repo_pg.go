package resident

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

const cols = `id, name, bed_number, created_at, updated_at`

func scan(row pgx.Row) (*Resident, error) {
	var res Resident
	err := row.Scan(&res.ID, &res.Name, &res.BedNumber, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &res, err
}

func (r *repoPG) Create(ctx context.Context, res *Resident) error {
	res.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO resident (id, name, bed_number)
		VALUES ($1, $2, $3)`,
		res.ID, res.Name, res.BedNumber)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Resident, error) {
	return scan(r.conn(ctx).QueryRow(ctx, `SELECT `+cols+` FROM resident WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Resident, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM resident`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+` FROM resident ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*Resident
	for rows.Next() {
		var res Resident
		if err := rows.Scan(&res.ID, &res.Name, &res.BedNumber, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, &res)
	}
	return result, total, rows.Err()
}
