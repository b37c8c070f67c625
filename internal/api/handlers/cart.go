package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/api/middleware"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/service"
	"github.com/yangart/storefront/internal/validation"
)

// CartManager is the server-side cart session service
type CartManager interface {
	Get(principal *domain.Principal) *service.CartView
	AddItem(ctx context.Context, principal *domain.Principal, req validation.CartItemRequest) (*service.CartView, error)
	UpdateQuantity(principal *domain.Principal, req validation.CartItemRequest) (*service.CartView, error)
	RemoveItem(principal *domain.Principal, req validation.CartItemRequest) (*service.CartView, error)
	Clear(principal *domain.Principal) *service.CartView
}

// HandleGetCart handles GET /cart
func HandleGetCart(carts CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, carts.Get(principal))
	}
}

// HandleAddCartItem handles POST /cart/items
func HandleAddCartItem(carts CartManager, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req validation.CartItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		if req.Qty < 1 {
			req.Qty = 1
		}

		view, err := carts.AddItem(c.Request.Context(), principal, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandleUpdateCartItem handles PUT /cart/items
func HandleUpdateCartItem(carts CartManager, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req validation.CartItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		view, err := carts.UpdateQuantity(principal, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandleRemoveCartItem handles DELETE /cart/items
func HandleRemoveCartItem(carts CartManager, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req validation.CartItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		view, err := carts.RemoveItem(principal, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandleClearCart handles DELETE /cart
func HandleClearCart(carts CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, carts.Clear(principal))
	}
}
