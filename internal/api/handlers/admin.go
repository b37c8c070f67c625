package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/validation"
)

const defaultTopProducts = 7

// HandleListOrders handles GET /orders
func HandleListOrders(orders OrderWorkflow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *domain.OrderStatus
		if raw := c.Query("status"); raw != "" {
			s := domain.OrderStatus(raw)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			status = &s
		}

		views, err := orders.ListOrders(c.Request.Context(), status)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": views, "count": len(views)})
	}
}

// HandleGetOrder handles GET /orders/:id
func HandleGetOrder(orders OrderWorkflow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "order")
		if !ok {
			return
		}

		view, err := orders.GetOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, view)
	}
}

// HandleUpdateOrderStatus handles PUT /orders/:id/status
func HandleUpdateOrderStatus(orders OrderWorkflow, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "order")
		if !ok {
			return
		}

		var req validation.UpdateOrderStatusRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		view, err := orders.SetOrderStatus(c.Request.Context(), id, req.OrderStatus, req.PaymentStatus)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		logger.Info("Order status updated via admin",
			zap.String("order_id", id.String()),
			zap.String("order_status", string(view.OrderStatus)),
			zap.String("payment_status", string(view.PaymentStatus)),
		)

		c.JSON(http.StatusOK, view)
	}
}

// HandleTopProducts handles GET /analytics/top-products
func HandleTopProducts(orders OrderWorkflow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultTopProducts
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = n
		}

		top, err := orders.TopProducts(c.Request.Context(), limit)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": top})
	}
}
