package handlers

import (
	"time"

	"github.com/emreokur/319FinalProject/internal/domain"
)

const timeLayout = time.RFC3339

// ProductResponse represents a catalog entry on the wire
type ProductResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       float64                `json:"price"`
	Quantity    int                    `json:"quantity"`
	Images      string                 `json:"images"`
	Specs       map[string]interface{} `json:"specs,omitempty"`
	Seller      *string                `json:"seller,omitempty"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Images:      p.Images,
		Specs:       p.Specs,
		Seller:      p.Seller,
		CreatedAt:   p.CreatedAt.Format(timeLayout),
		UpdatedAt:   p.UpdatedAt.Format(timeLayout),
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

// CartResponse represents a cart on the wire
type CartResponse struct {
	UserID   string            `json:"userId"`
	CartID   string            `json:"cartId"`
	Items    []domain.CartItem `json:"items"`
	Total    float64           `json:"total"`
	Currency string            `json:"currency"`
}

func toCartResponse(cart *domain.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponse{
		UserID:   cart.UserID,
		CartID:   cart.CartID,
		Items:    items,
		Total:    cart.Total,
		Currency: cart.Currency,
	}
}

// OrderItemResponse represents one frozen order line
type OrderItemResponse struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderResponse represents an order on the wire
type OrderResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	Shipping     domain.ShippingInfo `json:"shipping"`
	Items        []OrderItemResponse `json:"items"`
	Subtotal     float64             `json:"subtotal"`
	Tax          float64             `json:"tax"`
	ShippingCost float64             `json:"shippingCost"`
	Total        float64             `json:"total"`
	Status       domain.OrderStatus  `json:"status"`
	CreatedAt    string              `json:"created_at"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Subtotal:  item.Subtotal,
		})
	}
	return OrderResponse{
		ID:           order.ID.String(),
		UserID:       order.UserID,
		Shipping:     order.Shipping,
		Items:        items,
		Subtotal:     order.Subtotal,
		Tax:          order.Tax,
		ShippingCost: order.ShippingCost,
		Total:        order.Total,
		Status:       order.Status,
		CreatedAt:    order.CreatedAt.Format(timeLayout),
	}
}

func toOrderResponses(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	return out
}

// QuestionResponse represents a support question on the wire
type QuestionResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Question  string `json:"question"`
	Resolved  bool   `json:"resolved"`
	CreatedAt string `json:"created_at"`
}

func toQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:        q.ID.String(),
		Email:     q.Email,
		Question:  q.Question,
		Resolved:  q.Resolved,
		CreatedAt: q.CreatedAt.Format(timeLayout),
	}
}

func toQuestionResponses(questions []*domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}
	return out
}

// OrderEventResponse represents an audit record on the wire
type OrderEventResponse struct {
	ID        string                 `json:"id"`
	OrderID   string                 `json:"orderId"`
	EventType string                 `json:"eventType"`
	EventData map[string]interface{} `json:"eventData,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

func toOrderEventResponses(events []*domain.OrderEvent) []OrderEventResponse {
	out := make([]OrderEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, OrderEventResponse{
			ID:        e.ID.String(),
			OrderID:   e.OrderID.String(),
			EventType: e.EventType,
			EventData: e.EventData,
			CreatedAt: e.CreatedAt.Format(timeLayout),
		})
	}
	return out
}
