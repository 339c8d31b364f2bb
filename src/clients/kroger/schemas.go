package kroger

// Upstream payloads. Only the fields the proxy reshapes are decoded.

type locationsResponse struct {
	Data []locationData `json:"data"`
}

type locationData struct {
	LocationID string `json:"locationId"`
	Chain      string `json:"chain"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    struct {
		AddressLine1 string `json:"addressLine1"`
		City         string `json:"city"`
		State        string `json:"state"`
		ZipCode      string `json:"zipCode"`
	} `json:"address"`
}

type productsResponse struct {
	Data []productData `json:"data"`
}

type productData struct {
	ProductID   string         `json:"productId"`
	Description string         `json:"description"`
	Brand       string         `json:"brand"`
	Images      []productImage `json:"images"`
	Items       []productItem  `json:"items"`
}

type productImage struct {
	Perspective string `json:"perspective"`
	Featured    bool   `json:"featured"`
	Sizes       []struct {
		Size string `json:"size"`
		URL  string `json:"url"`
	} `json:"sizes"`
}

type productItem struct {
	Size  string `json:"size"`
	Price *struct {
		Regular float64 `json:"regular"`
		Promo   float64 `json:"promo"`
	} `json:"price"`
}
