// Package memory holds map-backed repositories used by tests and by
// DB_DRIVER=memory for local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/repository"
	"github.com/yangart/storefront/pkg/errors"
)

// NewRepositories returns a fresh, empty set of in-memory stores
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Order:    NewOrderRepository(),
		Product:  NewProductRepository(),
		Offer:    NewOfferRepository(),
		Customer: NewCustomerRepository(),
		Admin:    NewAdminRepository(),
	}
}

func stamp(id *uuid.UUID, created, updated *time.Time) {
	now := time.Now()
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = now
	}
}

// orders

type orderRepository struct {
	mu     sync.RWMutex
	orders []*domain.Order
}

func NewOrderRepository() *orderRepository {
	return &orderRepository{}
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = make([]domain.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if order.GatewayOrderID != "" && o.GatewayOrderID == order.GatewayOrderID {
			return &errors.ErrConflict{Resource: "order", Message: "gateway order already recorded"}
		}
	}
	stamp(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	r.orders = append(r.orders, copyOrder(order))
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return copyOrder(o), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (r *orderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.GatewayOrderID == gatewayOrderID {
			return copyOrder(o), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: gatewayOrderID}
}

// newest first
func (r *orderRepository) filter(keep func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if keep(r.orders[i]) {
			out = append(out, copyOrder(r.orders[i]))
		}
	}
	return out
}

func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool {
		return status == nil || o.OrderStatus == *status
	}), nil
}

func (r *orderRepository) ListByCustomerPhone(ctx context.Context, phone string) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool {
		return o.CustomerPhone == phone
	}), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, orderStatus *domain.OrderStatus, paymentStatus *domain.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID != id {
			continue
		}
		if orderStatus != nil {
			o.OrderStatus = *orderStatus
		}
		if paymentStatus != nil {
			o.PaymentStatus = *paymentStatus
		}
		o.UpdatedAt = time.Now()
		return nil
	}
	return &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (r *orderRepository) TopProducts(ctx context.Context, limit int) ([]repository.ProductQuantity, error) {
	r.mu.RLock()
	totals := make(map[uuid.UUID]int)
	for _, o := range r.orders {
		for _, item := range o.Items {
			totals[item.ProductID] += item.Qty
		}
	}
	r.mu.RUnlock()

	out := make([]repository.ProductQuantity, 0, len(totals))
	for id, qty := range totals {
		out = append(out, repository.ProductQuantity{ProductID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].ProductID.String() < out[j].ProductID.String()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// products

type productRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
	order    []uuid.UUID
}

func NewProductRepository() *productRepository {
	return &productRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func copyProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.AdditionalMedia = append([]string(nil), p.AdditionalMedia...)
	cp.Colours = append([]string(nil), p.Colours...)
	return &cp
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Product, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		p := r.products[r.order[i]]
		if filter.Category != nil && !strings.EqualFold(p.Category, *filter.Category) {
			continue
		}
		if filter.ProductOfWeek != nil && p.ProductOfWeek != *filter.ProductOfWeek {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out = append(out, copyProduct(p))
	}
	return out, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	return copyProduct(p), nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uuid.UUID]*domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = copyProduct(p)
		}
	}
	return out, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	r.products[product.ID] = copyProduct(product)
	r.order = append(r.order, product.ID)
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.String()}
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = copyProduct(product)
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	delete(r.products, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// offers

type offerRepository struct {
	mu     sync.RWMutex
	offers []*domain.Offer
}

func NewOfferRepository() *offerRepository {
	return &offerRepository{}
}

func (r *offerRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Offer, 0, len(r.offers))
	for i := len(r.offers) - 1; i >= 0; i-- {
		cp := *r.offers[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *offerRepository) find(match func(*domain.Offer) bool) (int, *domain.Offer) {
	for i, o := range r.offers {
		if match(o) {
			return i, o
		}
	}
	return -1, nil
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, o := r.find(func(o *domain.Offer) bool { return o.ID == id })
	if o == nil {
		return nil, &errors.ErrNotFound{Resource: "offer", ID: id.String()}
	}
	cp := *o
	return &cp, nil
}

func (r *offerRepository) GetByCouponName(ctx context.Context, name string) (*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, o := r.find(func(o *domain.Offer) bool { return o.CouponName == name })
	if o == nil {
		return nil, &errors.ErrNotFound{Resource: "offer", ID: name}
	}
	cp := *o
	return &cp, nil
}

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, o := r.find(func(o *domain.Offer) bool { return o.CouponName == offer.CouponName }); o != nil {
		return &errors.ErrConflict{Resource: "offer", Message: "Coupon already exists"}
	}
	stamp(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt)
	cp := *offer
	r.offers = append(r.offers, &cp)
	return nil
}

func (r *offerRepository) Update(ctx context.Context, offer *domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, _ := r.find(func(o *domain.Offer) bool { return o.ID == offer.ID })
	if i < 0 {
		return &errors.ErrNotFound{Resource: "offer", ID: offer.ID.String()}
	}
	if _, o := r.find(func(o *domain.Offer) bool {
		return o.CouponName == offer.CouponName && o.ID != offer.ID
	}); o != nil {
		return &errors.ErrConflict{Resource: "offer", Message: "Coupon already exists"}
	}
	offer.UpdatedAt = time.Now()
	cp := *offer
	r.offers[i] = &cp
	return nil
}

func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, _ := r.find(func(o *domain.Offer) bool { return o.ID == id })
	if i < 0 {
		return &errors.ErrNotFound{Resource: "offer", ID: id.String()}
	}
	r.offers = append(r.offers[:i], r.offers[i+1:]...)
	return nil
}

// customers

type customerRepository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*domain.Customer
}

func NewCustomerRepository() *customerRepository {
	return &customerRepository{customers: make(map[uuid.UUID]*domain.Customer)}
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "customer", ID: phone}
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "customer", ID: id.String()}
	}
	cp := *c
	return &cp, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Phone == customer.Phone {
			return &errors.ErrConflict{Resource: "customer", Message: "phone already registered"}
		}
	}
	stamp(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

// admins

type adminRepository struct {
	mu     sync.RWMutex
	admins map[string]*domain.Admin
}

func NewAdminRepository() *adminRepository {
	return &adminRepository{admins: make(map[string]*domain.Admin)}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[username]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "admin", ID: username}
	}
	cp := *a
	return &cp, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[admin.Username]; ok {
		return &errors.ErrConflict{Resource: "admin", Message: "username already exists"}
	}
	stamp(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	cp := *admin
	r.admins[admin.Username] = &cp
	return nil
}
