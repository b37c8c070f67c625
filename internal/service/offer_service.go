package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/repository"
	"github.com/yangart/storefront/internal/validation"
	"github.com/yangart/storefront/pkg/errors"
)

type offerService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOfferService creates a new offer service
func NewOfferService(repos *repository.Repositories, logger *zap.Logger) *offerService {
	return &offerService{
		repos:  repos,
		logger: logger,
	}
}

func (s *offerService) List(ctx context.Context) ([]OfferView, error) {
	offers, err := s.repos.Offer.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OfferView, len(offers))
	for i, o := range offers {
		out[i] = NewOfferView(o)
	}
	return out, nil
}

// Create adds an offer; couponName and discount are required, active defaults to true
func (s *offerService) Create(ctx context.Context, req validation.OfferRequest) (*OfferView, error) {
	if req.CouponName == nil || strings.TrimSpace(*req.CouponName) == "" {
		return nil, &errors.ErrValidation{Field: "couponName", Message: "required"}
	}
	if req.Discount == nil {
		return nil, &errors.ErrValidation{Field: "discount", Message: "required"}
	}

	offer := &domain.Offer{
		CouponName: strings.TrimSpace(*req.CouponName),
		Discount:   *req.Discount,
		Active:     true,
	}
	if req.MinimumPurchase != nil {
		offer.MinimumPurchase = *req.MinimumPurchase
	}
	if req.Active != nil {
		offer.Active = *req.Active
	}

	if err := s.repos.Offer.Create(ctx, offer); err != nil {
		return nil, err
	}

	view := NewOfferView(offer)
	return &view, nil
}

// Update applies only the fields present in req
func (s *offerService) Update(ctx context.Context, id uuid.UUID, req validation.OfferRequest) (*OfferView, error) {
	offer, err := s.repos.Offer.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CouponName != nil {
		offer.CouponName = strings.TrimSpace(*req.CouponName)
	}
	if req.Discount != nil {
		offer.Discount = *req.Discount
	}
	if req.MinimumPurchase != nil {
		offer.MinimumPurchase = *req.MinimumPurchase
	}
	if req.Active != nil {
		offer.Active = *req.Active
	}

	if err := s.repos.Offer.Update(ctx, offer); err != nil {
		return nil, err
	}

	view := NewOfferView(offer)
	return &view, nil
}

func (s *offerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repos.Offer.Delete(ctx, id)
}
