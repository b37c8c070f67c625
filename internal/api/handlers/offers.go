package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/service"
	"github.com/yangart/storefront/internal/validation"
)

// OfferManager is the coupon service
type OfferManager interface {
	List(ctx context.Context) ([]service.OfferView, error)
	Create(ctx context.Context, req validation.OfferRequest) (*service.OfferView, error)
	Update(ctx context.Context, id uuid.UUID, req validation.OfferRequest) (*service.OfferView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HandleListOffers handles GET /offers
func HandleListOffers(offers OfferManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := offers.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"offers": list})
	}
}

// HandleCreateOffer handles POST /offers
func HandleCreateOffer(offers OfferManager, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.OfferRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		offer, err := offers.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, offer)
	}
}

// HandleUpdateOffer handles PUT /offers/:id
func HandleUpdateOffer(offers OfferManager, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "offer")
		if !ok {
			return
		}

		var req validation.OfferRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		offer, err := offers.Update(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, offer)
	}
}

// HandleDeleteOffer handles DELETE /offers/:id
func HandleDeleteOffer(offers OfferManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "offer")
		if !ok {
			return
		}

		if err := offers.Delete(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
