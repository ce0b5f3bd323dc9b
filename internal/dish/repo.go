package dish

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("dish not found")
)

type Repository interface {
	Insert(ctx context.Context, d *Dish, flavors []Flavor) error
	Update(ctx context.Context, d *Dish, flavors []Flavor) error
	DeleteByIDs(ctx context.Context, ids []int64) error
	GetByID(ctx context.Context, id int64) (*Dish, error)
	FlavorsByDishID(ctx context.Context, dishID int64) ([]Flavor, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Dish, error)
	ListByCategory(ctx context.Context, categoryID int64, status int) ([]Dish, error)
	UpdateStatus(ctx context.Context, id int64, status int, updatedBy int64, at time.Time) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Insert writes the dish and its flavors in one transaction. The generated
// dish id is written back to d.ID and onto every flavor row.
func (r *PGRepo) Insert(ctx context.Context, d *Dish, flavors []Flavor) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
    INSERT INTO dish (category_id, name, description, price, image, status, created_at, updated_at, created_by, updated_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, d.CategoryID, d.Name, d.Description, d.Price, d.Image, d.Status,
		d.CreatedAt, d.UpdatedAt, d.CreatedBy, d.UpdatedBy).Scan(&d.ID); err != nil {
		return err
	}

	for i := range flavors {
		flavors[i].DishID = d.ID
		if _, err := tx.Exec(ctx, `
      INSERT INTO dish_flavor (dish_id, name, value)
      VALUES ($1,$2,$3)
    `, flavors[i].DishID, flavors[i].Name, flavors[i].Value); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Update rewrites the dish row and replaces its flavor set (delete all, then
// reinsert) atomically. An empty set leaves the dish flavorless.
func (r *PGRepo) Update(ctx context.Context, d *Dish, flavors []Flavor) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE dish
    SET category_id = $2,
        name = $3,
        description = $4,
        price = $5,
        image = $6,
        updated_at = $7,
        updated_by = $8
    WHERE id = $1
  `, d.ID, d.CategoryID, d.Name, d.Description, d.Price, d.Image, d.UpdatedAt, d.UpdatedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM dish_flavor WHERE dish_id = $1`, d.ID); err != nil {
		return err
	}
	for i := range flavors {
		flavors[i].DishID = d.ID
		if _, err := tx.Exec(ctx, `
      INSERT INTO dish_flavor (dish_id, name, value)
      VALUES ($1,$2,$3)
    `, flavors[i].DishID, flavors[i].Name, flavors[i].Value); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteByIDs removes the dishes and their flavors with two bulk IN-list
// statements in one transaction. Callers run the on-sale and combo-reference
// guards first; nothing is re-checked here.
func (r *PGRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM dish WHERE id = ANY($1)`, ids); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM dish_flavor WHERE dish_id = ANY($1)`, ids); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Dish, error) {
	var d Dish
	if err := r.db.QueryRow(ctx, `
    SELECT id, category_id, name, description, price, image, status, created_at, updated_at, created_by, updated_by
    FROM dish WHERE id = $1
  `, id).Scan(&d.ID, &d.CategoryID, &d.Name, &d.Description, &d.Price, &d.Image,
		&d.Status, &d.CreatedAt, &d.UpdatedAt, &d.CreatedBy, &d.UpdatedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *PGRepo) FlavorsByDishID(ctx context.Context, dishID int64) ([]Flavor, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, dish_id, name, value
    FROM dish_flavor WHERE dish_id = $1
  `, dishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Flavor
	for rows.Next() {
		var f Flavor
		if err := rows.Scan(&f.ID, &f.DishID, &f.Name, &f.Value); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListByIDs(ctx context.Context, ids []int64) ([]Dish, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, category_id, name, description, price, image, status, created_at, updated_at, created_by, updated_by
    FROM dish WHERE id = ANY($1)
  `, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDishes(rows)
}

func (r *PGRepo) ListByCategory(ctx context.Context, categoryID int64, status int) ([]Dish, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, category_id, name, description, price, image, status, created_at, updated_at, created_by, updated_by
    FROM dish
    WHERE category_id = $1 AND status = $2
    ORDER BY created_at DESC
  `, categoryID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDishes(rows)
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id int64, status int, updatedBy int64, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
    UPDATE dish
    SET status = $2, updated_at = $3, updated_by = $4
    WHERE id = $1
  `, id, status, at, updatedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDishes(rows pgx.Rows) ([]Dish, error) {
	var out []Dish
	for rows.Next() {
		var d Dish
		if err := rows.Scan(&d.ID, &d.CategoryID, &d.Name, &d.Description, &d.Price, &d.Image,
			&d.Status, &d.CreatedAt, &d.UpdatedAt, &d.CreatedBy, &d.UpdatedBy); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
