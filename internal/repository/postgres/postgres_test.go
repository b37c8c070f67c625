package postgres

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/pkg/errors"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, *orderRepository, *productRepository, *offerRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop()
	return mock, NewOrderRepository(db, logger), NewProductRepository(db, logger), NewOfferRepository(db, logger)
}

var orderCols = []string{
	"id", "customer_id", "customer_name", "customer_phone", "shipping_address", "items", "total_price",
	"coupon_applied", "gateway_order_id", "gateway_payment_id", "payment_status", "order_status",
	"created_at", "updated_at",
}

func TestOrderRepository_Create(t *testing.T) {
	mock, orders, _, _ := newMock(t)

	order := &domain.Order{
		CustomerName:     "Asha",
		CustomerPhone:    "9000000001",
		ShippingAddress:  "12 MG Road, Pune, MH - 411001",
		Items:            []domain.OrderItem{{ProductID: uuid.New(), Qty: 2, Price: 100}},
		TotalPrice:       200,
		GatewayOrderID:   "order_abc",
		GatewayPaymentID: "pay_xyz",
		PaymentStatus:    domain.PaymentStatusPaid,
		OrderStatus:      domain.OrderStatusPlaced,
	}

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			sqlmock.AnyArg(), nil, "Asha", "9000000001", "12 MG Road, Pune, MH - 411001",
			sqlmock.AnyArg(), 200.0, nil, "order_abc", "pay_xyz", "paid", "placed",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, orders.Create(context.Background(), order))
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateDuplicateGatewayOrder(t *testing.T) {
	mock, orders, _, _ := newMock(t)

	mock.ExpectExec("INSERT INTO orders").WillReturnError(&pq.Error{Code: uniqueViolation})

	err := orders.Create(context.Background(), &domain.Order{GatewayOrderID: "order_abc"})
	var conflict *errors.ErrConflict
	assert.True(t, stderrors.As(err, &conflict))
}

func TestOrderRepository_GetByGatewayOrderID(t *testing.T) {
	mock, orders, _, _ := newMock(t)

	id := uuid.New()
	productID := uuid.New()
	now := time.Now()
	items := `[{"product":"` + productID.String() + `","qty":2,"price":100,"colour":"Red"}]`

	mock.ExpectQuery(`FROM orders WHERE gateway_order_id = \$1`).
		WithArgs("order_abc").
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(
			id.String(), nil, "Asha", "9000000001", "addr", []byte(items), 200.0,
			nil, "order_abc", "pay_xyz", "paid", "placed", now, now,
		))

	order, err := orders.GetByGatewayOrderID(context.Background(), "order_abc")
	require.NoError(t, err)
	assert.Equal(t, id, order.ID)
	assert.Equal(t, uuid.Nil, order.CustomerID)
	assert.Nil(t, order.CouponApplied)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, domain.OrderStatusPlaced, order.OrderStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, productID, order.Items[0].ProductID)
	assert.Equal(t, 100.0, order.Items[0].Price)
}

func TestOrderRepository_GetByIDNotFound(t *testing.T) {
	mock, orders, _, _ := newMock(t)

	mock.ExpectQuery(`FROM orders WHERE id = \$1`).WillReturnRows(sqlmock.NewRows(orderCols))

	_, err := orders.GetByID(context.Background(), uuid.New())
	var notFound *errors.ErrNotFound
	assert.True(t, stderrors.As(err, &notFound))
}

func TestOrderRepository_ListWithStatus(t *testing.T) {
	mock, orders, _, _ := newMock(t)

	mock.ExpectQuery(`FROM orders WHERE order_status = \$1 ORDER BY created_at DESC`).
		WithArgs("shipped").
		WillReturnRows(sqlmock.NewRows(orderCols))

	status := domain.OrderStatusShipped
	list, err := orders.List(context.Background(), &status)
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	mock, orders, _, _ := newMock(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE orders").
		WithArgs(id.String(), "delivered", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	delivered := domain.OrderStatusDelivered
	require.NoError(t, orders.UpdateStatus(context.Background(), id, &delivered, nil))

	mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, 0))
	err := orders.UpdateStatus(context.Background(), uuid.New(), &delivered, nil)
	var notFound *errors.ErrNotFound
	assert.True(t, stderrors.As(err, &notFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_TopProducts(t *testing.T) {
	mock, orders, _, _ := newMock(t)
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery("jsonb_array_elements").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).
			AddRow(a.String(), 9).
			AddRow(b.String(), 3))

	top, err := orders.TopProducts(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, a, top[0].ProductID)
	assert.Equal(t, 9, top[0].Quantity)
}

var productCols = []string{
	"id", "name", "main_image", "additional_media", "category", "subcategory", "description",
	"mrp_price", "discount", "product_of_week", "featured", "colours", "created_at", "updated_at",
}

func TestProductRepository_ListFilters(t *testing.T) {
	mock, _, products, _ := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM products WHERE product_of_week = \$1 AND featured = \$2 ORDER BY created_at DESC`).
		WithArgs(true, true).
		WillReturnRows(sqlmock.NewRows(productCols).AddRow(
			uuid.New().String(), "Resin clock", "clock.jpg", "{a.jpg,b.jpg}", "Decor", "Clocks", "",
			1499.0, 10.0, true, true, "{Blue,Gold}", now, now,
		))

	yes := true
	list, err := products.List(context.Background(), domain.ProductFilter{ProductOfWeek: &yes, Featured: &yes})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, list[0].AdditionalMedia)
	assert.Equal(t, []string{"Blue", "Gold"}, list[0].Colours)
	assert.Equal(t, 1349.1, list[0].SellingPrice())
}

func TestProductRepository_DeleteMissing(t *testing.T) {
	mock, _, products, _ := newMock(t)

	mock.ExpectExec("DELETE FROM products").WillReturnResult(sqlmock.NewResult(0, 0))

	err := products.Delete(context.Background(), uuid.New())
	var notFound *errors.ErrNotFound
	assert.True(t, stderrors.As(err, &notFound))
}

func TestOfferRepository_DuplicateCoupon(t *testing.T) {
	mock, _, _, offers := newMock(t)

	mock.ExpectExec("INSERT INTO offers").WillReturnError(&pq.Error{Code: uniqueViolation})

	err := offers.Create(context.Background(), &domain.Offer{CouponName: "DIWALI10", Discount: 10})
	var conflict *errors.ErrConflict
	require.True(t, stderrors.As(err, &conflict))
	assert.Equal(t, "Coupon already exists", conflict.Message)
}
