package service

// AddItemRequest is the payload for adding a line to a cart. Every field is
// required; the price is captured as sent so the line survives later catalog
// edits unchanged.
type AddItemRequest struct {
	ProductID int64   `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,min=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Image     string  `json:"image" binding:"required"`
}

// OrderItemInput is one checkout line.
type OrderItemInput struct {
	ProductID int64   `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Image     string  `json:"image"`
	Subtotal  float64 `json:"subtotal" binding:"min=0"`
}

// PlaceOrderRequest is the checkout payload. Totals are computed by the
// storefront and stored as-is.
type PlaceOrderRequest struct {
	FullName     string           `json:"fullName"`
	Email        string           `json:"email"`
	Address      string           `json:"address"`
	City         string           `json:"city"`
	State        string           `json:"state"`
	ZipCode      string           `json:"zipCode"`
	Country      string           `json:"country"`
	Items        []OrderItemInput `json:"items"`
	Subtotal     float64          `json:"subtotal"`
	Tax          float64          `json:"tax"`
	ShippingCost float64          `json:"shippingCost"`
	Total        float64          `json:"total"`
}
