package memory

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/pkg/errors"
)

func TestOrderRepository_ListAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	first := &domain.Order{CustomerPhone: "9000000001", GatewayOrderID: "order_a", OrderStatus: domain.OrderStatusPlaced}
	second := &domain.Order{CustomerPhone: "9000000002", GatewayOrderID: "order_b", OrderStatus: domain.OrderStatusShipped}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotEqual(t, uuid.Nil, first.ID)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	shipped := domain.OrderStatusShipped
	filtered, err := repo.List(ctx, &shipped)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "order_b", filtered[0].GatewayOrderID)

	mine, err := repo.ListByCustomerPhone(ctx, "9000000001")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}

func TestOrderRepository_DuplicateGatewayOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	require.NoError(t, repo.Create(ctx, &domain.Order{GatewayOrderID: "order_a"}))

	err := repo.Create(ctx, &domain.Order{GatewayOrderID: "order_a"})
	var conflict *errors.ErrConflict
	assert.True(t, stderrors.As(err, &conflict))
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	order := &domain.Order{OrderStatus: domain.OrderStatusPlaced, PaymentStatus: domain.PaymentStatusPaid}
	require.NoError(t, repo.Create(ctx, order))

	delivered := domain.OrderStatusDelivered
	require.NoError(t, repo.UpdateStatus(ctx, order.ID, &delivered, nil))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, got.OrderStatus)
	assert.Equal(t, domain.PaymentStatusPaid, got.PaymentStatus)

	err = repo.UpdateStatus(ctx, uuid.New(), &delivered, nil)
	var notFound *errors.ErrNotFound
	assert.True(t, stderrors.As(err, &notFound))
}

func TestOrderRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	order := &domain.Order{Items: []domain.OrderItem{{ProductID: uuid.New(), Qty: 1, Price: 100}}}
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	got.Items[0].Price = 1

	again, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, again.Items[0].Price)
}

func TestOrderRepository_TopProducts(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.Order{Items: []domain.OrderItem{{ProductID: a, Qty: 2}, {ProductID: b, Qty: 5}}}))
	require.NoError(t, repo.Create(ctx, &domain.Order{Items: []domain.OrderItem{{ProductID: a, Qty: 4}, {ProductID: c, Qty: 1}}}))

	top, err := repo.TopProducts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, a, top[0].ProductID)
	assert.Equal(t, 6, top[0].Quantity)
	assert.Equal(t, b, top[1].ProductID)
}

func TestProductRepository_Filter(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Frame", Category: "Decor", Featured: true}))
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Keychain", Category: "Gifts", ProductOfWeek: true}))

	yes := true
	featured, err := repo.List(ctx, domain.ProductFilter{Featured: &yes})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Frame", featured[0].Name)

	cat := "gifts"
	gifts, err := repo.List(ctx, domain.ProductFilter{Category: &cat})
	require.NoError(t, err)
	require.Len(t, gifts, 1)
	assert.Equal(t, "Keychain", gifts[0].Name)
}

func TestOfferRepository_UniqueCoupon(t *testing.T) {
	ctx := context.Background()
	repo := NewOfferRepository()
	first := &domain.Offer{CouponName: "DIWALI10", Discount: 10, Active: true}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &domain.Offer{CouponName: "DIWALI10"})
	var conflict *errors.ErrConflict
	require.True(t, stderrors.As(err, &conflict))

	other := &domain.Offer{CouponName: "NEWYEAR"}
	require.NoError(t, repo.Create(ctx, other))
	other.CouponName = "DIWALI10"
	assert.True(t, stderrors.As(repo.Update(ctx, other), &conflict))

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.GetByCouponName(ctx, "DIWALI10")
	var notFound *errors.ErrNotFound
	assert.True(t, stderrors.As(err, &notFound))
}
