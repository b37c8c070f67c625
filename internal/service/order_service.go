package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/cart"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/events"
	"github.com/yangart/storefront/internal/metrics"
	"github.com/yangart/storefront/internal/razorpay"
	"github.com/yangart/storefront/internal/repository"
	"github.com/yangart/storefront/internal/validation"
	"github.com/yangart/storefront/pkg/errors"
)

// Gateway is the subset of the payment provider the order workflow needs
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*razorpay.Order, error)
	FetchOrder(ctx context.Context, id string) (*razorpay.Order, error)
}

// defaultPublishTimeout bounds how long a request waits on the event broker
const defaultPublishTimeout = 3 * time.Second

// OrderConfig carries the workflow's settings
type OrderConfig struct {
	KeySecret         string
	StrictTransitions bool
}

type orderService struct {
	repos     *repository.Repositories
	gateway   Gateway
	publisher events.Publisher
	metrics   *metrics.Registry
	carts     cart.Store
	cfg       OrderConfig
	logger    *zap.Logger

	publishTimeout time.Duration
}

// NewOrderService creates a new order service. carts may be nil.
func NewOrderService(
	repos *repository.Repositories,
	gateway Gateway,
	publisher events.Publisher,
	m *metrics.Registry,
	carts cart.Store,
	cfg OrderConfig,
	logger *zap.Logger,
) *orderService {
	return &orderService{
		repos:     repos,
		gateway:   gateway,
		publisher: publisher,
		metrics:   m,
		carts:     carts,
		cfg:       cfg,
		logger:    logger,

		publishTimeout: defaultPublishTimeout,
	}
}

// RequestGatewayOrder opens a gateway order sized to the validated cart subtotal
func (s *orderService) RequestGatewayOrder(
	ctx context.Context,
	principal *domain.Principal,
	req validation.GatewayOrderRequest,
) (*GatewayOrderHandle, error) {
	receipt := fmt.Sprintf("rcpt_%d", time.Now().UnixMilli())

	order, err := s.gateway.CreateOrder(ctx, req.Amount, receipt, map[string]string{
		"customer_phone": principal.Phone,
	})
	if err != nil {
		s.metrics.GatewayOrdersFailed.Inc()
		s.logger.Error("Failed to create gateway order",
			zap.String("receipt", receipt),
			zap.Int64("amount", req.Amount),
			zap.Error(err),
		)
		return nil, &errors.ErrGatewayUnavailable{Cause: err}
	}

	s.metrics.GatewayOrdersCreated.Inc()
	s.logger.Info("Gateway order created",
		zap.String("gateway_order_id", order.ID),
		zap.String("receipt", receipt),
		zap.Int64("amount", order.Amount),
	)

	return &GatewayOrderHandle{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  receipt,
	}, nil
}

// ConfirmPayment verifies the checkout signature and, only if it matches,
// persists the order. The returned bool is false when the gateway order had
// already been recorded and the existing order is returned instead.
func (s *orderService) ConfirmPayment(
	ctx context.Context,
	principal *domain.Principal,
	req validation.ConfirmPaymentRequest,
) (*domain.Order, bool, error) {
	if !razorpay.VerifySignature(s.cfg.KeySecret, req.GatewayOrderID, req.PaymentID, req.Signature) {
		s.metrics.SignatureMismatches.Inc()
		s.logger.Warn("Payment signature mismatch",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("payment_id", req.PaymentID),
			zap.String("customer_id", principal.ID.String()),
		)
		return nil, false, &errors.ErrSignatureMismatch{}
	}

	existing, err := s.repos.Order.GetByGatewayOrderID(ctx, req.GatewayOrderID)
	if err == nil {
		if existing.CustomerID != principal.ID {
			return nil, false, &errors.ErrConflict{Resource: "order", Message: "payment already recorded for another customer"}
		}
		return existing, false, nil
	}
	var notFound *errors.ErrNotFound
	if !stderrors.As(err, &notFound) {
		return nil, false, err
	}

	items, err := toOrderItems(req.Items)
	if err != nil {
		return nil, false, err
	}
	if err := s.resolveCustomizations(ctx, items); err != nil {
		return nil, false, err
	}
	total := domain.ComputeTotal(items)

	// the signature binds the payment to the gateway order, not to the items
	gatewayOrder, err := s.gateway.FetchOrder(ctx, req.GatewayOrderID)
	if err != nil {
		s.logger.Error("Failed to fetch gateway order", zap.String("gateway_order_id", req.GatewayOrderID), zap.Error(err))
		return nil, false, &errors.ErrGatewayUnavailable{Cause: err}
	}
	if gatewayOrder.Amount != domain.ToMinorUnits(total) {
		s.logger.Warn("Confirmed items do not match gateway order amount",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.Int64("gateway_amount", gatewayOrder.Amount),
			zap.Float64("items_total", total),
		)
		return nil, false, &errors.ErrValidation{Field: "items", Message: "items total does not match paid amount"}
	}

	order := &domain.Order{
		CustomerID:       principal.ID,
		CustomerName:     principal.Name,
		CustomerPhone:    principal.Phone,
		ShippingAddress:  domain.Address(req.Address).Flatten(),
		Items:            items,
		TotalPrice:       total,
		CouponApplied:    req.CouponApplied,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.PaymentID,
		PaymentStatus:    domain.PaymentStatusPaid,
		OrderStatus:      domain.OrderStatusPlaced,
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		var conflict *errors.ErrConflict
		if stderrors.As(err, &conflict) {
			// lost a race with a concurrent confirm of the same payment
			existing, getErr := s.repos.Order.GetByGatewayOrderID(ctx, req.GatewayOrderID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	s.metrics.OrdersPlaced.Inc()
	s.metrics.OrderValue.Observe(order.TotalPrice)
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("gateway_order_id", order.GatewayOrderID),
		zap.Float64("total", order.TotalPrice),
	)

	s.publish(ctx, events.New(events.OrderPlaced, order.ID, map[string]interface{}{
		"customerPhone": order.CustomerPhone,
		"totalPrice":    order.TotalPrice,
		"items":         len(order.Items),
	}))

	if s.carts != nil {
		cart.Load(principal.ID.String(), s.carts, s.logger).Clear()
	}

	return order, true, nil
}

func toOrderItems(in []validation.Item) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(in))
	for i, it := range in {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, &errors.ErrValidation{Field: fmt.Sprintf("items[%d].productId", i), Message: "invalid product id"}
		}
		items = append(items, domain.OrderItem{
			ProductID:     productID,
			Name:          it.Name,
			Colour:        it.Colour,
			Qty:           it.Qty,
			Price:         it.Price,
			Customization: it.Customization,
		})
	}
	return items, nil
}

// resolveCustomizations applies the catalog's customization rules to every
// line whose product still exists
func (s *orderService) resolveCustomizations(ctx context.Context, items []domain.OrderItem) error {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.repos.Product.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		product, ok := products[items[i].ProductID]
		if !ok {
			continue
		}
		customization, err := lineCustomization(product, items[i].Customization)
		if err != nil {
			return err
		}
		items[i].Customization = customization
	}
	return nil
}

// ListOrders returns all orders, newest first, optionally filtered by status
func (s *orderService) ListOrders(ctx context.Context, status *domain.OrderStatus) ([]OrderView, error) {
	orders, err := s.repos.Order.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, orders)
}

// ListMyOrders returns the orders placed under the caller's phone number
func (s *orderService) ListMyOrders(ctx context.Context, principal *domain.Principal) ([]OrderView, error) {
	orders, err := s.repos.Order.ListByCustomerPhone(ctx, principal.Phone)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, orders)
}

// GetOrder returns a single enriched order
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	order, err := s.repos.Order.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, []*domain.Order{order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// SetOrderStatus overwrites the order and/or payment status.
// Any enum member is accepted unless strict transitions are enabled.
func (s *orderService) SetOrderStatus(
	ctx context.Context,
	orderID uuid.UUID,
	orderStatus *domain.OrderStatus,
	paymentStatus *domain.PaymentStatus,
) (*OrderView, error) {
	if orderStatus == nil && paymentStatus == nil {
		return nil, &errors.ErrValidation{Field: "orderStatus", Message: "orderStatus or paymentStatus is required"}
	}
	if orderStatus != nil && !orderStatus.IsValid() {
		return nil, &errors.ErrValidation{Field: "orderStatus", Message: fmt.Sprintf("unknown status %q", *orderStatus)}
	}
	if paymentStatus != nil && !paymentStatus.IsValid() {
		return nil, &errors.ErrValidation{Field: "paymentStatus", Message: fmt.Sprintf("unknown status %q", *paymentStatus)}
	}

	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.cfg.StrictTransitions && orderStatus != nil && !order.OrderStatus.CanTransitionTo(*orderStatus) {
		return nil, &errors.ErrInvalidStateTransition{
			From: order.OrderStatus,
			To:   *orderStatus,
		}
	}

	if err := s.repos.Order.UpdateStatus(ctx, orderID, orderStatus, paymentStatus); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"fromOrderStatus":   order.OrderStatus,
		"fromPaymentStatus": order.PaymentStatus,
	}
	if orderStatus != nil {
		data["orderStatus"] = *orderStatus
		s.metrics.StatusUpdates.WithLabelValues(string(*orderStatus)).Inc()
	}
	if paymentStatus != nil {
		data["paymentStatus"] = *paymentStatus
	}
	s.publish(ctx, events.New(events.OrderStatusChanged, orderID, data))

	return s.GetOrder(ctx, orderID)
}

// TopProducts returns the most-ordered products by total quantity
func (s *orderService) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	rows, err := s.repos.Order.TopProducts(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ProductID
	}
	products, err := s.repos.Product.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]TopProduct, len(rows))
	for i, row := range rows {
		out[i] = TopProduct{
			Product:     productRef(row.ProductID, products[row.ProductID]),
			TotalOrders: row.Quantity,
		}
	}
	return out, nil
}

func (s *orderService) publish(ctx context.Context, event events.Event) {
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.EventPublishFailures.Inc()
		s.logger.Error("Failed to publish order event",
			zap.String("type", string(event.Type)),
			zap.String("order_id", event.OrderID.String()),
			zap.Error(err),
		)
	}
}

// enrich populates product references in one catalog lookup
func (s *orderService) enrich(ctx context.Context, orders []*domain.Order) ([]OrderView, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, o := range orders {
		for _, item := range o.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	products, err := s.repos.Product.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = map[uuid.UUID]*domain.Product{}
	}

	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = NewOrderView(o, products)
	}
	return views, nil
}
