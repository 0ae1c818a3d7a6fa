package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

// In-memory repository fakes backing the service tests.

type fakeProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]*domain.Product{}, nextID: 1}
}

func (f *fakeProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = f.nextID
	f.nextID++
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(product.ID, 10)}
	}
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
	}
	delete(f.products, id)
	return nil
}

type fakeCartRepo struct {
	carts map[string]*domain.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*domain.Cart{}}
}

func (f *fakeCartRepo) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: userID}
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (f *fakeCartRepo) Create(ctx context.Context, cart *domain.Cart) error {
	cart.Version = 1
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	f.carts[cart.UserID] = &copied
	return nil
}

func (f *fakeCartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	stored, ok := f.carts[cart.UserID]
	if !ok {
		return &errors.ErrNotFound{Resource: "cart", ID: cart.UserID}
	}
	if stored.Version != cart.Version {
		return &errors.ErrConflict{Message: "cart was modified concurrently"}
	}
	cart.Version++
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	f.carts[cart.UserID] = &copied
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID string) error {
	cart, ok := f.carts[userID]
	if !ok {
		return &errors.ErrNotFound{Resource: "cart", ID: userID}
	}
	cart.Items = nil
	cart.Total = 0
	cart.Version++
	return nil
}

type fakeOrderRepo struct {
	orders   map[uuid.UUID]*domain.Order
	products *fakeProductRepo
	carts    *fakeCartRepo
}

func newFakeOrderRepo(products *fakeProductRepo, carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*domain.Order{}, products: products, carts: carts}
}

func (f *fakeOrderRepo) PlaceOrder(ctx context.Context, order *domain.Order) error {
	// Mirror the transactional semantics: check every stock floor before
	// committing anything.
	for _, item := range order.Items {
		p, ok := f.products.products[item.ProductID]
		if !ok {
			return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(item.ProductID, 10)}
		}
		if p.Quantity < item.Quantity {
			return &errors.ErrInsufficientStock{ProductID: item.ProductID, Requested: item.Quantity, Available: p.Quantity}
		}
	}
	for _, item := range order.Items {
		f.products.products[item.ProductID].Quantity -= item.Quantity
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	f.orders[order.ID] = &copied
	if cart, ok := f.carts.carts[order.UserID]; ok {
		cart.Items = nil
		cart.Total = 0
	}
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	return &copied, nil
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, order := range f.orders {
		out = append(out, order)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.Status = status
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.orders[id]; !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	delete(f.orders, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "user", ID: email}
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.Email]; ok {
		return &errors.ErrConflict{Message: "user with this email already exists"}
	}
	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.Email]; !ok {
		return &errors.ErrNotFound{Resource: "user", ID: user.Email}
	}
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, email string) error {
	if _, ok := f.users[email]; !ok {
		return &errors.ErrNotFound{Resource: "user", ID: email}
	}
	delete(f.users, email)
	return nil
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*domain.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[uuid.UUID]*domain.Question{}}
}

func (f *fakeQuestionRepo) Create(ctx context.Context, question *domain.Question) error {
	copied := *question
	f.questions[question.ID] = &copied
	return nil
}

func (f *fakeQuestionRepo) List(ctx context.Context, email string) ([]*domain.Question, error) {
	var out []*domain.Question
	for _, q := range f.questions {
		if email == "" || q.Email == email {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Resolve(ctx context.Context, id uuid.UUID) error {
	q, ok := f.questions[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "question", ID: id.String()}
	}
	q.Resolved = true
	return nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.questions[id]; !ok {
		return &errors.ErrNotFound{Resource: "question", ID: id.String()}
	}
	delete(f.questions, id)
	return nil
}

type fakeOrderEventRepo struct {
	events    []*domain.OrderEvent
	createErr error
}

func (f *fakeOrderEventRepo) Create(ctx context.Context, event *domain.OrderEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *event
	f.events = append(f.events, &copied)
	return nil
}

func (f *fakeOrderEventRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	var out []*domain.OrderEvent
	for _, e := range f.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type testRepos struct {
	repos    *repository.Repositories
	products *fakeProductRepo
	carts    *fakeCartRepo
	orders   *fakeOrderRepo
	users    *fakeUserRepo
	events   *fakeOrderEventRepo
}

func newTestRepos() *testRepos {
	products := newFakeProductRepo()
	carts := newFakeCartRepo()
	orders := newFakeOrderRepo(products, carts)
	users := newFakeUserRepo()
	events := &fakeOrderEventRepo{}
	return &testRepos{
		repos: &repository.Repositories{
			Product:    products,
			Cart:       carts,
			Order:      orders,
			User:       users,
			Question:   newFakeQuestionRepo(),
			OrderEvent: events,
		},
		products: products,
		carts:    carts,
		orders:   orders,
		users:    users,
		events:   events,
	}
}
