package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/repository"
	"github.com/yangart/storefront/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `id, customer_id, customer_name, customer_phone, shipping_address, items, total_price,
	coupon_applied, gateway_order_id, gateway_payment_id, payment_status, order_status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var customerID uuid.NullUUID
	var couponApplied sql.NullString
	var items []byte

	err := row.Scan(
		&order.ID,
		&customerID,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.ShippingAddress,
		&items,
		&order.TotalPrice,
		&couponApplied,
		&order.GatewayOrderID,
		&order.GatewayPaymentID,
		&order.PaymentStatus,
		&order.OrderStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		order.CustomerID = customerID.UUID
	}
	if couponApplied.Valid {
		order.CouponApplied = &couponApplied.String
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	customerID := uuid.NullUUID{UUID: order.CustomerID, Valid: order.CustomerID != uuid.Nil}

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		customerID,
		order.CustomerName,
		order.CustomerPhone,
		order.ShippingAddress,
		items,
		order.TotalPrice,
		order.CouponApplied,
		order.GatewayOrderID,
		order.GatewayPaymentID,
		order.PaymentStatus,
		order.OrderStatus,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return &errors.ErrConflict{Resource: "order", Message: "gateway order already recorded"}
	}
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE gateway_order_id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, gatewayOrderID))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: gatewayOrderID}
	}
	if err != nil {
		r.logger.Error("Failed to get order by gateway order ID", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error("Failed to scan order", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	if status != nil {
		return r.query(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE order_status = $1 ORDER BY created_at DESC`,
			*status,
		)
	}
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *orderRepository) ListByCustomerPhone(ctx context.Context, phone string) ([]*domain.Order, error) {
	return r.query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_phone = $1 ORDER BY created_at DESC`,
		phone,
	)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, orderStatus *domain.OrderStatus, paymentStatus *domain.PaymentStatus) error {
	query := `
		UPDATE orders
		SET order_status = COALESCE($2, order_status),
		    payment_status = COALESCE($3, payment_status),
		    updated_at = $4
		WHERE id = $1
	`

	var status, payment sql.NullString
	if orderStatus != nil {
		status = sql.NullString{String: string(*orderStatus), Valid: true}
	}
	if paymentStatus != nil {
		payment = sql.NullString{String: string(*paymentStatus), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, id, status, payment, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return nil
}

func (r *orderRepository) TopProducts(ctx context.Context, limit int) ([]repository.ProductQuantity, error) {
	query := `
		SELECT (item->>'product')::uuid AS product_id, SUM((item->>'qty')::int) AS quantity
		FROM orders, jsonb_array_elements(items) AS item
		GROUP BY product_id
		ORDER BY quantity DESC, product_id
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to aggregate top products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.ProductQuantity, 0, limit)
	for rows.Next() {
		var row repository.ProductQuantity
		if err := rows.Scan(&row.ProductID, &row.Quantity); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
