package schemas

type Address struct {
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type Location struct {
	LocationID string  `json:"locationId"`
	Name       string  `json:"name"`
	Chain      string  `json:"chain"`
	Address    Address `json:"address"`
	Phone      string  `json:"phone,omitempty"`
}

type LocationsResponse struct {
	Locations []Location `json:"locations"`
}

type Product struct {
	ProductID   string  `json:"productId"`
	Description string  `json:"description"`
	Brand       string  `json:"brand,omitempty"`
	Price       float64 `json:"price,omitempty"`
	PromoPrice  float64 `json:"promoPrice,omitempty"`
	Size        string  `json:"size,omitempty"`
	Image       string  `json:"image,omitempty"`
}

type ProductsResponse struct {
	Products []Product `json:"products"`
}
