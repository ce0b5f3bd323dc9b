package dish

// FlavorInput is one flavor row in a save payload.
// swagger:model FlavorInput
type FlavorInput struct {
	Name  string `json:"name"  example:"spiciness"`
	Value string `json:"value" example:"[\"mild\",\"medium\",\"hot\"]"`
}

// SaveRequest is the payload for creating or updating a dish together with
// its full flavor set.
// swagger:model SaveDishRequest
type SaveRequest struct {
	CategoryID  int64         `json:"category_id" example:"12"`
	Name        string        `json:"name"        example:"Mapo Tofu"`
	Description string        `json:"description"`
	Price       string        `json:"price"       example:"12.50"`
	Image       string        `json:"image"`
	Flavors     []FlavorInput `json:"flavors"`
}
