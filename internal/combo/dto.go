package combo

// ItemInput is one dish association in a save payload.
// swagger:model ComboItemInput
type ItemInput struct {
	DishID int64  `json:"dish_id" example:"7"`
	Name   string `json:"name"    example:"Mapo Tofu"`
	Price  string `json:"price"   example:"12.50"`
	Copies int    `json:"copies"  example:"2"`
}

// SaveRequest is the payload for creating or updating a combo together with
// its full item set.
// swagger:model SaveComboRequest
type SaveRequest struct {
	CategoryID  int64       `json:"category_id" example:"3"`
	Name        string      `json:"name"        example:"Family Feast"`
	Description string      `json:"description"`
	Price       string      `json:"price"       example:"39.90"`
	Image       string      `json:"image"`
	Items       []ItemInput `json:"items"`
}
