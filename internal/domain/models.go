package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. ID is assigned by the database sequence and
// doubles as the public integer id on the API.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int
	Images      string
	Specs       map[string]interface{} // free-form key/value, JSONB
	Seller      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CartItem is one line of a cart. Subtotal is always Price * Quantity.
type CartItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Subtotal  float64 `json:"subtotal"`
}

// Cart is the per-user mutable cart document. Version backs the optimistic
// write check: a save with a stale version is rejected.
type Cart struct {
	UserID    string
	CartID    string
	Items     []CartItem
	Total     float64
	Currency  string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recalculate recomputes every line subtotal and the cart total.
func (c *Cart) Recalculate() {
	total := 0.0
	for i := range c.Items {
		c.Items[i].Subtotal = c.Items[i].Price * float64(c.Items[i].Quantity)
		total += c.Items[i].Subtotal
	}
	c.Total = total
}

// FindItem returns the index of the line for productID, or -1.
func (c *Cart) FindItem(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// ShippingInfo is the address snapshot captured at checkout.
type ShippingInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// OrderItem is a cart line frozen into an order. Price and subtotal are the
// values captured at checkout, independent of later catalog edits.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
	Image     string
	Subtotal  float64
	CreatedAt time.Time
}

// Order is an immutable snapshot of a checkout. Only Status changes after
// creation. Totals are taken from the checkout request as-is.
type Order struct {
	ID           uuid.UUID
	UserID       string
	Shipping     ShippingInfo
	Items        []OrderItem
	Subtotal     float64
	Tax          float64
	ShippingCost float64
	Total        float64
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// User is an account record keyed by email. PasswordHash is a bcrypt hash;
// it never leaves the repository layer in API responses.
type User struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	LastModified time.Time
}

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Question is a visitor-submitted support question.
type Question struct {
	ID        uuid.UUID
	Email     string
	Question  string
	Resolved  bool
	CreatedAt time.Time
}

// OrderEvent is an audit record for an order
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}
