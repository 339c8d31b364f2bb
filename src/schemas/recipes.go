package schemas

type Recipe struct {
	Label       string   `json:"label"`
	Image       string   `json:"image,omitempty"`
	Calories    float64  `json:"calories"`
	Servings    float64  `json:"servings"`
	Ingredients []string `json:"ingredients"`
	URL         string   `json:"url,omitempty"`
}

type RecipesResponse struct {
	Recipes []Recipe `json:"recipes"`
}
