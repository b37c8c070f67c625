package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/service"
	"github.com/yangart/storefront/internal/validation"
)

// Catalog is the product service
type Catalog interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]service.ProductView, error)
	Get(ctx context.Context, id uuid.UUID) (*service.ProductView, error)
	Create(ctx context.Context, req validation.ProductRequest) (*service.ProductView, error)
	Update(ctx context.Context, id uuid.UUID, req validation.ProductRequest) (*service.ProductView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// queryFlag reports whether a boolean query parameter was set, and its value
func queryFlag(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	switch strings.ToLower(raw) {
	case "true", "1", "on", "yes":
		v := true
		return &v
	default:
		v := false
		return &v
	}
}

// HandleListProducts handles GET /products
func HandleListProducts(catalog Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := domain.ProductFilter{
			ProductOfWeek: queryFlag(c, "productOfWeek"),
			Featured:      queryFlag(c, "featured"),
		}
		if category := c.Query("category"); category != "" {
			filter.Category = &category
		}

		products, err := catalog.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
	}
}

// HandleGetProduct handles GET /products/:id
func HandleGetProduct(catalog Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "product")
		if !ok {
			return
		}

		product, err := catalog.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleCreateProduct handles POST /products
func HandleCreateProduct(catalog Catalog, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.ProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		product, err := catalog.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// HandleUpdateProduct handles PUT /products/:id
func HandleUpdateProduct(catalog Catalog, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "product")
		if !ok {
			return
		}

		var req validation.ProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		product, err := catalog.Update(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleDeleteProduct handles DELETE /products/:id
func HandleDeleteProduct(catalog Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "product")
		if !ok {
			return
		}

		if err := catalog.Delete(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
