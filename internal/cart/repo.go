package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("cart line not found")
)

type Repository interface {
	FindByIdentity(ctx context.Context, userID int64, dishID, comboID *int64, flavor string) (*Line, error)
	Insert(ctx context.Context, l *Line) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]Line, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// FindByIdentity looks up the single line matching the exact item identity.
// Dish identity includes the flavor signature; combo identity is the id alone.
func (r *PGRepo) FindByIdentity(ctx context.Context, userID int64, dishID, comboID *int64, flavor string) (*Line, error) {
	var l Line
	err := r.db.QueryRow(ctx, `
    SELECT id, user_id, dish_id, combo_id, flavor, name, unit_price, quantity, image, created_at
    FROM cart_line
    WHERE user_id = $1
      AND dish_id IS NOT DISTINCT FROM $2
      AND combo_id IS NOT DISTINCT FROM $3
      AND flavor = $4
  `, userID, dishID, comboID, flavor).Scan(
		&l.ID, &l.UserID, &l.DishID, &l.ComboID, &l.Flavor, &l.Name,
		&l.UnitPrice, &l.Quantity, &l.Image, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *PGRepo) Insert(ctx context.Context, l *Line) error {
	_, err := r.db.Exec(ctx, `
    INSERT INTO cart_line (id, user_id, dish_id, combo_id, flavor, name, unit_price, quantity, image, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, l.ID, l.UserID, l.DishID, l.ComboID, l.Flavor, l.Name, l.UnitPrice, l.Quantity, l.Image, l.CreatedAt)
	return err
}

// UpdateQuantity writes back only the quantity field.
func (r *PGRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.db.Exec(ctx, `UPDATE cart_line SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_line WHERE id = $1`, id)
	return err
}

// DeleteByUserID clears the cart. Deleting zero rows is fine.
func (r *PGRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_line WHERE user_id = $1`, userID)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID int64) ([]Line, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, user_id, dish_id, combo_id, flavor, name, unit_price, quantity, image, created_at
    FROM cart_line
    WHERE user_id = $1
    ORDER BY created_at
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.UserID, &l.DishID, &l.ComboID, &l.Flavor, &l.Name,
			&l.UnitPrice, &l.Quantity, &l.Image, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
