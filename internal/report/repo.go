package report

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository is the aggregate-query slice of the order/user store. Sums come
// back as NullDecimal because SUM over zero rows is NULL; the engine turns
// that into 0.
type Repository interface {
	SumOrderAmount(ctx context.Context, begin, end time.Time, status int) (decimal.NullDecimal, error)
	CountOrders(ctx context.Context, begin, end time.Time, status *int) (int64, error)
	CountUsersCreatedBetween(ctx context.Context, begin, end time.Time) (int64, error)
	CountUsersCreatedBefore(ctx context.Context, end time.Time) (int64, error)
	TopSales(ctx context.Context, begin, end time.Time, limit int) ([]ItemSales, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) SumOrderAmount(ctx context.Context, begin, end time.Time, status int) (decimal.NullDecimal, error) {
	var sum decimal.NullDecimal
	err := r.db.QueryRow(ctx, `
    SELECT SUM(total_amount)
    FROM orders
    WHERE status = $1 AND created_at BETWEEN $2 AND $3
  `, status, begin, end).Scan(&sum)
	return sum, err
}

func (r *PGRepo) CountOrders(ctx context.Context, begin, end time.Time, status *int) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
    SELECT COUNT(*)
    FROM orders
    WHERE created_at BETWEEN $1 AND $2
      AND ($3::int IS NULL OR status = $3)
  `, begin, end, status).Scan(&n)
	return n, err
}

func (r *PGRepo) CountUsersCreatedBetween(ctx context.Context, begin, end time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
    SELECT COUNT(*) FROM users WHERE created_at BETWEEN $1 AND $2
  `, begin, end).Scan(&n)
	return n, err
}

// CountUsersCreatedBefore has no lower bound on purpose: it is the cumulative
// user total as of end-of-day.
func (r *PGRepo) CountUsersCreatedBefore(ctx context.Context, end time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
    SELECT COUNT(*) FROM users WHERE created_at <= $1
  `, end).Scan(&n)
	return n, err
}

// TopSales returns the best-selling items by quantity over the whole window,
// ordered descending, counting only completed orders.
func (r *PGRepo) TopSales(ctx context.Context, begin, end time.Time, limit int) ([]ItemSales, error) {
	rows, err := r.db.Query(ctx, `
    SELECT oi.name, SUM(oi.quantity) AS number
    FROM order_item oi
    JOIN orders o ON o.id = oi.order_id
    WHERE o.status = $1 AND o.created_at BETWEEN $2 AND $3
    GROUP BY oi.name
    ORDER BY number DESC
    LIMIT $4
  `, OrderCompleted, begin, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemSales
	for rows.Next() {
		var s ItemSales
		if err := rows.Scan(&s.Name, &s.Number); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
