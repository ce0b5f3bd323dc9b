package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("employee not found")
	ErrAlreadyExist = errors.New("username already taken")
)

type Repository interface {
	Insert(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	GetByUsername(ctx context.Context, username string) (*Employee, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Insert(ctx context.Context, e *Employee) error {
	err := r.db.QueryRow(ctx, `
    INSERT INTO employee (username, name, password, phone, status, created_at, updated_at, created_by, updated_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, e.Username, e.Name, e.Password, e.Phone, e.Status,
		e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy).Scan(&e.ID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExist
	}
	return err
}

// Update is partial: empty name/phone/password keep the stored value,
// status -1 keeps the stored status.
func (r *PGRepo) Update(ctx context.Context, e *Employee) error {
	tag, err := r.db.Exec(ctx, `
    UPDATE employee
    SET name = COALESCE(NULLIF($2,''), name),
        phone = COALESCE(NULLIF($3,''), phone),
        password = COALESCE(NULLIF($4,''), password),
        status = CASE WHEN $5 < 0 THEN status ELSE $5 END,
        updated_at = $6,
        updated_by = $7
    WHERE id = $1
  `, e.ID, e.Name, e.Phone, e.Password, e.Status, e.UpdatedAt, e.UpdatedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Employee, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (*Employee, error) {
	return r.get(ctx, `WHERE username = $1`, username)
}

func (r *PGRepo) get(ctx context.Context, where string, arg any) (*Employee, error) {
	var e Employee
	err := r.db.QueryRow(ctx, `
    SELECT id, username, name, password, phone, status, created_at, updated_at, created_by, updated_by
    FROM employee `+where, arg).Scan(
		&e.ID, &e.Username, &e.Name, &e.Password, &e.Phone, &e.Status,
		&e.CreatedAt, &e.UpdatedAt, &e.CreatedBy, &e.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
