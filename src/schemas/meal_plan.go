package schemas

type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

// ImageMealPlanResponse is the ingredient list extracted from a meal photo.
// Raw carries the model's reply when it could not be read as JSON.
type ImageMealPlanResponse struct {
	Ingredients []Ingredient `json:"ingredients"`
	Raw         string       `json:"raw,omitempty"`
}
