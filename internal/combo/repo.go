package combo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("combo not found")
)

// RefDish is a dish row as seen through a combo's items, just enough for the
// enable-time status guard.
type RefDish struct {
	ID     int64
	Name   string
	Status int
}

type Repository interface {
	Insert(ctx context.Context, c *Combo, items []Item) error
	Update(ctx context.Context, c *Combo, items []Item) error
	DeleteBatch(ctx context.Context, ids []int64) error
	GetByID(ctx context.Context, id int64) (*Combo, error)
	ItemsByComboID(ctx context.Context, comboID int64) ([]Item, error)
	DishesForCombo(ctx context.Context, comboID int64) ([]RefDish, error)
	DishOptionsByComboID(ctx context.Context, comboID int64) ([]DishOption, error)
	ComboIDsByDishIDs(ctx context.Context, dishIDs []int64) ([]int64, error)
	ListByCategory(ctx context.Context, categoryID int64, status int) ([]Combo, error)
	UpdateStatus(ctx context.Context, id int64, status int, updatedBy int64, at time.Time) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Insert writes the combo and its item associations in one transaction,
// assigning the generated combo id to every item.
func (r *PGRepo) Insert(ctx context.Context, c *Combo, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
    INSERT INTO combo (category_id, name, description, price, image, status, created_at, updated_at, created_by, updated_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, c.CategoryID, c.Name, c.Description, c.Price, c.Image, c.Status,
		c.CreatedAt, c.UpdatedAt, c.CreatedBy, c.UpdatedBy).Scan(&c.ID); err != nil {
		return err
	}

	for i := range items {
		items[i].ComboID = c.ID
		if _, err := tx.Exec(ctx, `
      INSERT INTO combo_item (combo_id, dish_id, name, price, copies)
      VALUES ($1,$2,$3,$4,$5)
    `, items[i].ComboID, items[i].DishID, items[i].Name, items[i].Price, items[i].Copies); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Update rewrites the combo row and replaces its item set atomically,
// the same delete-then-reinsert shape as dish flavors.
func (r *PGRepo) Update(ctx context.Context, c *Combo, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE combo
    SET category_id = $2,
        name = $3,
        description = $4,
        price = $5,
        image = $6,
        updated_at = $7,
        updated_by = $8
    WHERE id = $1
  `, c.ID, c.CategoryID, c.Name, c.Description, c.Price, c.Image, c.UpdatedAt, c.UpdatedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM combo_item WHERE combo_id = $1`, c.ID); err != nil {
		return err
	}
	for i := range items {
		items[i].ComboID = c.ID
		if _, err := tx.Exec(ctx, `
      INSERT INTO combo_item (combo_id, dish_id, name, price, copies)
      VALUES ($1,$2,$3,$4,$5)
    `, items[i].ComboID, items[i].DishID, items[i].Name, items[i].Price, items[i].Copies); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteBatch removes the given combos and their items in one transaction.
// The statements stay per-id, unlike the dish path, but a failure anywhere
// rolls back the whole batch.
func (r *PGRepo) DeleteBatch(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, id := range ids {
		if _, err := tx.Exec(ctx, `DELETE FROM combo WHERE id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM combo_item WHERE combo_id = $1`, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Combo, error) {
	var c Combo
	if err := r.db.QueryRow(ctx, `
    SELECT id, category_id, name, description, price, image, status, created_at, updated_at, created_by, updated_by
    FROM combo WHERE id = $1
  `, id).Scan(&c.ID, &c.CategoryID, &c.Name, &c.Description, &c.Price, &c.Image,
		&c.Status, &c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepo) ItemsByComboID(ctx context.Context, comboID int64) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, combo_id, dish_id, name, price, copies
    FROM combo_item WHERE combo_id = $1
  `, comboID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ComboID, &it.DishID, &it.Name, &it.Price, &it.Copies); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PGRepo) DishesForCombo(ctx context.Context, comboID int64) ([]RefDish, error) {
	rows, err := r.db.Query(ctx, `
    SELECT d.id, d.name, d.status
    FROM dish d
    JOIN combo_item ci ON ci.dish_id = d.id
    WHERE ci.combo_id = $1
  `, comboID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RefDish
	for rows.Next() {
		var d RefDish
		if err := rows.Scan(&d.ID, &d.Name, &d.Status); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PGRepo) DishOptionsByComboID(ctx context.Context, comboID int64) ([]DishOption, error) {
	rows, err := r.db.Query(ctx, `
    SELECT d.name, ci.copies, d.image, d.description
    FROM combo_item ci
    JOIN dish d ON d.id = ci.dish_id
    WHERE ci.combo_id = $1
  `, comboID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DishOption
	for rows.Next() {
		var o DishOption
		if err := rows.Scan(&o.Name, &o.Copies, &o.Image, &o.Description); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ComboIDsByDishIDs answers, in one set-membership query, which combos
// reference any of the given dishes.
func (r *PGRepo) ComboIDsByDishIDs(ctx context.Context, dishIDs []int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
    SELECT DISTINCT combo_id
    FROM combo_item WHERE dish_id = ANY($1)
  `, dishIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListByCategory(ctx context.Context, categoryID int64, status int) ([]Combo, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, category_id, name, description, price, image, status, created_at, updated_at, created_by, updated_by
    FROM combo
    WHERE category_id = $1 AND status = $2
    ORDER BY created_at DESC
  `, categoryID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Combo
	for rows.Next() {
		var c Combo
		if err := rows.Scan(&c.ID, &c.CategoryID, &c.Name, &c.Description, &c.Price, &c.Image,
			&c.Status, &c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id int64, status int, updatedBy int64, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
    UPDATE combo
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
