package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yangart/storefront/internal/domain"
)

// Repositories bundles every store the services and handlers need
type Repositories struct {
	Order    OrderRepository
	Product  ProductRepository
	Offer    OfferRepository
	Customer CustomerRepository
	Admin    AdminRepository
}

// OrderRepository persists payment-verified orders
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error)
	ListByCustomerPhone(ctx context.Context, phone string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, orderStatus *domain.OrderStatus, paymentStatus *domain.PaymentStatus) error
	TopProducts(ctx context.Context, limit int) ([]ProductQuantity, error)
}

// ProductQuantity is the summed ordered quantity for one product id
type ProductQuantity struct {
	ProductID uuid.UUID
	Quantity  int
}

// ProductRepository is the catalog store
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OfferRepository stores coupon rules
type OfferRepository interface {
	List(ctx context.Context) ([]*domain.Offer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
	GetByCouponName(ctx context.Context, name string) (*domain.Offer, error)
	Create(ctx context.Context, offer *domain.Offer) error
	Update(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerRepository is the customer credential store
type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) error
}

// AdminRepository is the administrator credential store
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) error
}
