package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/cart"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/repository"
	"github.com/yangart/storefront/internal/validation"
	"github.com/yangart/storefront/pkg/errors"
)

// CartView is the cart as rendered to the storefront
type CartView struct {
	Items    []cart.LineItem `json:"items"`
	Subtotal float64         `json:"subtotal"`
}

type cartService struct {
	repos  *repository.Repositories
	store  cart.Store
	logger *zap.Logger
}

// NewCartService creates the server-side cart session service
func NewCartService(repos *repository.Repositories, store cart.Store, logger *zap.Logger) *cartService {
	return &cartService{
		repos:  repos,
		store:  store,
		logger: logger,
	}
}

func (s *cartService) load(principal *domain.Principal) *cart.Cart {
	return cart.Load(principal.ID.String(), s.store, s.logger)
}

func view(c *cart.Cart) *CartView {
	return &CartView{Items: c.Items(), Subtotal: c.Subtotal()}
}

func (s *cartService) Get(principal *domain.Principal) *CartView {
	return view(s.load(principal))
}

// AddItem prices the line from the catalog at add time
func (s *cartService) AddItem(ctx context.Context, principal *domain.Principal, req validation.CartItemRequest) (*CartView, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &errors.ErrValidation{Field: "productId", Message: "invalid product id"}
	}

	product, err := s.repos.Product.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !offersColour(product, req.Colour) {
		return nil, &errors.ErrValidation{Field: "colour", Message: fmt.Sprintf("%q is not offered for this product", req.Colour)}
	}
	customization, err := lineCustomization(product, req.Customization)
	if err != nil {
		return nil, err
	}

	c := s.load(principal)
	c.AddItem(cart.LineItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.SellingPrice(),
		Qty:           req.Qty,
		Colour:        req.Colour,
		Image:         product.MainImage,
		Customization: customization,
	})
	return view(c), nil
}

func (s *cartService) UpdateQuantity(principal *domain.Principal, req validation.CartItemRequest) (*CartView, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &errors.ErrValidation{Field: "productId", Message: "invalid product id"}
	}
	c := s.load(principal)
	c.UpdateQuantity(productID, req.Colour, req.Qty)
	return view(c), nil
}

func (s *cartService) RemoveItem(principal *domain.Principal, req validation.CartItemRequest) (*CartView, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &errors.ErrValidation{Field: "productId", Message: "invalid product id"}
	}
	c := s.load(principal)
	c.RemoveItem(productID, req.Colour)
	return view(c), nil
}

func (s *cartService) Clear(principal *domain.Principal) *CartView {
	c := s.load(principal)
	c.Clear()
	return view(c)
}

func offersColour(p *domain.Product, colour string) bool {
	if len(p.Colours) == 0 {
		return true
	}
	for _, c := range p.Colours {
		if c == colour {
			return true
		}
	}
	return false
}

// lineCustomization returns the customization a line of product carries.
// Products outside the customized subcategories never carry one.
func lineCustomization(product *domain.Product, c *domain.Customization) (*domain.Customization, error) {
	if !product.RequiresCustomization() {
		return nil, nil
	}
	if field := product.MissingCustomizationField(c); field != "" {
		return nil, &errors.ErrValidation{Field: field, Message: fmt.Sprintf("required for %s products", product.Subcategory)}
	}
	out := *c
	out.Category = product.Category
	out.Subcategory = product.Subcategory
	return &out, nil
}
