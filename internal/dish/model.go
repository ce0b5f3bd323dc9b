package dish

import (
	"github.com/shopspring/decimal"

	"github.com/mcruz-dev/takeout-backoffice/internal/operator"
)

const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

type Dish struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// NUMERIC in Postgres; decimal avoids float rounding on money
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image,omitempty"`
	Status int             `json:"status"`
	operator.Audit
}

// Flavor is a named option set attached to a dish, e.g. spice level.
// Flavors are owned by the dish: replaced as a whole set on every save.
type Flavor struct {
	ID     int64  `json:"id"`
	DishID int64  `json:"dish_id"`
	Name   string `json:"name"`
	Value  string `json:"value"`
}

// View is the dish read model: the row joined with its flavor list.
type View struct {
	Dish
	Flavors []Flavor `json:"flavors"`
}
