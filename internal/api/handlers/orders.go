package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/api/middleware"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/service"
	"github.com/yangart/storefront/internal/validation"
	"github.com/yangart/storefront/pkg/errors"
)

// OrderWorkflow is the order service as seen by the HTTP layer
type OrderWorkflow interface {
	RequestGatewayOrder(ctx context.Context, principal *domain.Principal, req validation.GatewayOrderRequest) (*service.GatewayOrderHandle, error)
	ConfirmPayment(ctx context.Context, principal *domain.Principal, req validation.ConfirmPaymentRequest) (*domain.Order, bool, error)
	ListOrders(ctx context.Context, status *domain.OrderStatus) ([]service.OrderView, error)
	ListMyOrders(ctx context.Context, principal *domain.Principal) ([]service.OrderView, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*service.OrderView, error)
	SetOrderStatus(ctx context.Context, id uuid.UUID, orderStatus *domain.OrderStatus, paymentStatus *domain.PaymentStatus) (*service.OrderView, error)
	TopProducts(ctx context.Context, limit int) ([]service.TopProduct, error)
}

// HandleCreateGatewayOrder handles POST /orders/razorpay
func HandleCreateGatewayOrder(orders OrderWorkflow, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req validation.GatewayOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			logger.Debug("Rejected gateway order request", zap.Error(err))
			return
		}

		handle, err := orders.RequestGatewayOrder(c.Request.Context(), principal, req)
		if err != nil {
			var gateway *errors.ErrGatewayUnavailable
			if stderrors.As(err, &gateway) {
				c.JSON(http.StatusBadGateway, gin.H{"error": "Payment initiation failed"})
				return
			}
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, handle)
	}
}

// HandleConfirmPayment handles POST /orders/confirm
func HandleConfirmPayment(orders OrderWorkflow, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req validation.ConfirmPaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		order, created, err := orders.ConfirmPayment(c.Request.Context(), principal, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		// the order is persisted; a failed enrichment falls back to the snapshot
		view, err := orders.GetOrder(c.Request.Context(), order.ID)
		if err != nil {
			logger.Warn("Failed to enrich confirmed order",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
			basic := service.NewOrderView(order, nil)
			view = &basic
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{"success": true, "order": view})
	}
}

// HandleListMyOrders handles GET /orders/my
func HandleListMyOrders(orders OrderWorkflow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		views, err := orders.ListMyOrders(c.Request.Context(), principal)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": views, "count": len(views)})
	}
}
