package combo

import (
	"github.com/shopspring/decimal"

	"github.com/mcruz-dev/takeout-backoffice/internal/operator"
)

const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

type Combo struct {
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Status      int             `json:"status"`
	operator.Audit
}

// Item links a combo to a dish with a copy count and the dish price at
// association time. A join row with attributes, not a pure join table.
type Item struct {
	ID      int64           `json:"id"`
	ComboID int64           `json:"combo_id"`
	DishID  int64           `json:"dish_id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Copies  int             `json:"copies"`
}

type View struct {
	Combo
	Items []Item `json:"items"`
}

// DishOption is the customer-facing projection of one dish inside a combo.
type DishOption struct {
	Name        string `json:"name"`
	Copies      int    `json:"copies"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}
