package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/emreokur/319FinalProject/internal/domain"
)

// ProductRepository defines catalog data access methods
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// CartRepository defines cart data access methods. Save replaces the cart row
// and its items in one transaction, guarded by the cart's version; a stale
// version returns ErrConflict so concurrent read-modify-write cycles cannot
// silently drop each other's lines.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Cart, error)
	Create(ctx context.Context, cart *domain.Cart) error
	Save(ctx context.Context, cart *domain.Cart) error
	Clear(ctx context.Context, userID string) error
}

// OrderRepository defines order data access methods. PlaceOrder runs the
// whole checkout write set (order + items + stock decrements + cart clear)
// as a single transaction.
type OrderRepository interface {
	PlaceOrder(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines account data access methods
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, email string) error
}

// QuestionRepository defines support-question data access methods
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	List(ctx context.Context, email string) ([]*domain.Question, error)
	Resolve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderEventRepository defines order audit event data access methods
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	Product    ProductRepository
	Cart       CartRepository
	Order      OrderRepository
	User       UserRepository
	Question   QuestionRepository
	OrderEvent OrderEventRepository
}
