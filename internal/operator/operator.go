// Package operator carries the acting back-office user through the request
// context and stamps audit fields on writes.
package operator

import (
	"context"
	"time"
)

type ctxKey struct{}

// WithID returns a context carrying the acting operator's id.
func WithID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the acting operator's id, or 0 when the request
// carried none (e.g. customer-facing endpoints).
func FromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(ctxKey{}).(int64)
	return id
}

// Audit is embedded by entities whose writes are stamped.
type Audit struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy int64     `json:"created_by,omitempty"`
	UpdatedBy int64     `json:"updated_by,omitempty"`
}

// StampCreate fills all four audit fields for a fresh insert.
func (a *Audit) StampCreate(ctx context.Context, now time.Time) {
	id := FromContext(ctx)
	a.CreatedAt = now
	a.UpdatedAt = now
	a.CreatedBy = id
	a.UpdatedBy = id
}

// StampUpdate refreshes only the update-side fields.
func (a *Audit) StampUpdate(ctx context.Context, now time.Time) {
	a.UpdatedAt = now
	a.UpdatedBy = FromContext(ctx)
}
