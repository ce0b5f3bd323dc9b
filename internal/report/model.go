package report

import "github.com/shopspring/decimal"

// Order status codes as persisted; only Completed matters to reporting.
const (
	OrderPending   = 1
	OrderConfirmed = 2
	OrderDelivery  = 4
	OrderCompleted = 5
	OrderCancelled = 6
)

// All series below are parallel arrays: position i of every slice refers to
// the same calendar day. Consumers rely on that correspondence.

type TurnoverReport struct {
	Dates   []string          `json:"dates"`
	Amounts []decimal.Decimal `json:"amounts"`
}

type UserReport struct {
	Dates      []string `json:"dates"`
	NewUsers   []int64  `json:"new_users"`
	TotalUsers []int64  `json:"total_users"`
}

type OrderReport struct {
	Dates          []string `json:"dates"`
	TotalCounts    []int64  `json:"total_counts"`
	ValidCounts    []int64  `json:"valid_counts"`
	TotalOrders    int64    `json:"total_orders"`
	ValidOrders    int64    `json:"valid_orders"`
	CompletionRate float64  `json:"completion_rate"`
}

type SalesTop10Report struct {
	Names   []string `json:"names"`
	Numbers []int64  `json:"numbers"`
}

// ItemSales is one row of the top-N query, already ranked by the store.
type ItemSales struct {
	Name   string `json:"name"`
	Number int64  `json:"number"`
}
