package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/repository"
	"github.com/yangart/storefront/internal/validation"
)

type productService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewProductService creates a new catalog service
func NewProductService(repos *repository.Repositories, logger *zap.Logger) *productService {
	return &productService{
		repos:  repos,
		logger: logger,
	}
}

func (s *productService) List(ctx context.Context, filter domain.ProductFilter) ([]ProductView, error) {
	products, err := s.repos.Product.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = NewProductView(p)
	}
	return out, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	p, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewProductView(p)
	return &view, nil
}

func (s *productService) Create(ctx context.Context, req validation.ProductRequest) (*ProductView, error) {
	p := &domain.Product{}
	applyProductRequest(p, req)

	if err := s.repos.Product.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Product created", zap.String("product_id", p.ID.String()), zap.String("name", p.Name))

	view := NewProductView(p)
	return &view, nil
}

// Update replaces the product's fields. Existing orders keep their snapshotted prices.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req validation.ProductRequest) (*ProductView, error) {
	p, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProductRequest(p, req)

	if err := s.repos.Product.Update(ctx, p); err != nil {
		return nil, err
	}

	view := NewProductView(p)
	return &view, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repos.Product.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func applyProductRequest(p *domain.Product, req validation.ProductRequest) {
	p.Name = req.Name
	p.MainImage = req.MainImage
	p.AdditionalMedia = req.AdditionalMedia
	p.Category = req.Category
	p.Subcategory = req.Subcategory
	p.Description = req.Description
	p.MRPPrice = req.MRPPrice
	p.Discount = req.Discount
	p.ProductOfWeek = req.ProductOfWeek
	p.Featured = req.Featured
	p.Colours = req.Colours
}
