package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one cart row. Exactly one of DishID or ComboID is set; identity of
// a line is (UserID, DishID, Flavor) or (UserID, ComboID). Two adds with the
// same identity collapse into one row with the quantities summed.
type Line struct {
	ID      string `json:"id"`
	UserID  int64  `json:"user_id"`
	DishID  *int64 `json:"dish_id,omitempty"`
	ComboID *int64 `json:"combo_id,omitempty"`
	// Flavor is the serialized flavor choice; part of the identity for dish
	// lines so the same dish with different flavors stays on separate rows.
	Flavor    string          `json:"flavor,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AddRequest is the add-to-cart payload.
// swagger:model AddToCartRequest
type AddRequest struct {
	DishID   *int64 `json:"dish_id,omitempty"  example:"7"`
	ComboID  *int64 `json:"combo_id,omitempty"`
	Flavor   string `json:"flavor,omitempty"   example:"{\"spiciness\":\"hot\"}"`
	Quantity int    `json:"quantity"           example:"1"`
}
