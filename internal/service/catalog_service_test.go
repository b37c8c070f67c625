package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/auth"
	"github.com/yangart/storefront/internal/cart"
	"github.com/yangart/storefront/internal/config"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/repository/memory"
	"github.com/yangart/storefront/internal/validation"
	"github.com/yangart/storefront/pkg/errors"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestOfferService(t *testing.T) {
	ctx := context.Background()
	svc := NewOfferService(memory.NewRepositories(), zap.NewNop())

	_, err := svc.Create(ctx, validation.OfferRequest{Discount: floatPtr(10)})
	var validationErr *errors.ErrValidation
	require.True(t, stderrors.As(err, &validationErr))

	offer, err := svc.Create(ctx, validation.OfferRequest{CouponName: strPtr("DIWALI10"), Discount: floatPtr(10)})
	require.NoError(t, err)
	assert.True(t, offer.Active)

	_, err = svc.Create(ctx, validation.OfferRequest{CouponName: strPtr("DIWALI10"), Discount: floatPtr(5)})
	var conflict *errors.ErrConflict
	require.True(t, stderrors.As(err, &conflict))

	updated, err := svc.Update(ctx, offer.ID, validation.OfferRequest{Active: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 10.0, updated.Discount, "absent fields are unchanged")

	require.NoError(t, svc.Delete(ctx, offer.ID))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductService(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(memory.NewRepositories(), zap.NewNop())

	created, err := svc.Create(ctx, validation.ProductRequest{
		Name: "Pichwai print", MainImage: "p.jpg", Category: "Art", MRPPrice: 2000, Discount: 25, Featured: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, created.SellingPrice)
	assert.NotNil(t, created.Colours)

	featured, err := svc.List(ctx, domain.ProductFilter{Featured: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, featured, 1)

	_, err = svc.Update(ctx, uuid.New(), validation.ProductRequest{Name: "x"})
	var notFound *errors.ErrNotFound
	assert.True(t, stderrors.As(err, &notFound))
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	tokens := auth.NewTokenIssuer(config.AuthConfig{JWTSecret: "test", TokenTTL: time.Hour})
	svc := NewUserService(repos, tokens, zap.NewNop())

	registered, err := svc.Register(ctx, validation.RegisterRequest{Name: "Asha", Phone: "9000000001", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)

	principal, err := tokens.Verify(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.PrincipalCustomer, principal.Kind)
	assert.Equal(t, "9000000001", principal.Phone)

	_, err = svc.Register(ctx, validation.RegisterRequest{Name: "Dup", Phone: "9000000001", Password: "hunter22"})
	var conflict *errors.ErrConflict
	assert.True(t, stderrors.As(err, &conflict))

	_, err = svc.Login(ctx, validation.LoginRequest{Phone: "9000000001", Password: "wrong"})
	var unauthorized *errors.ErrUnauthorized
	assert.True(t, stderrors.As(err, &unauthorized))

	_, err = svc.Login(ctx, validation.LoginRequest{Phone: "9999999999", Password: "hunter22"})
	assert.True(t, stderrors.As(err, &unauthorized))

	loggedIn, err := svc.Login(ctx, validation.LoginRequest{Phone: "9000000001", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, registered.Customer.ID, loggedIn.Customer.ID)

	ok, err := svc.PhoneRegistered(ctx, "9000000001")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.PhoneRegistered(ctx, "9000000002")
	require.NoError(t, err)
	assert.False(t, ok)

	me, err := svc.Me(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, "Asha", me.Name)
}

func TestUserService_AdminLogin(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	tokens := auth.NewTokenIssuer(config.AuthConfig{JWTSecret: "test", TokenTTL: time.Hour})
	svc := NewUserService(repos, tokens, zap.NewNop())

	hash, err := auth.HashPassword("letmein")
	require.NoError(t, err)
	require.NoError(t, repos.Admin.Create(ctx, &domain.Admin{Username: "root", PasswordHash: hash}))

	token, err := svc.AdminLogin(ctx, validation.AdminLoginRequest{Username: "root", Password: "letmein"})
	require.NoError(t, err)
	principal, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.PrincipalAdmin, principal.Kind)

	_, err = svc.AdminLogin(ctx, validation.AdminLoginRequest{Username: "root", Password: "nope"})
	var unauthorized *errors.ErrUnauthorized
	assert.True(t, stderrors.As(err, &unauthorized))
}

func TestCartService(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := NewCartService(repos, cart.NewMemoryStore(), zap.NewNop())
	customer := &domain.Principal{ID: uuid.New(), Kind: domain.PrincipalCustomer}

	product := &domain.Product{Name: "Lamp", MRPPrice: 200, Discount: 50, Colours: []string{"Red", "Blue"}}
	require.NoError(t, repos.Product.Create(ctx, product))

	view, err := svc.AddItem(ctx, customer, validation.CartItemRequest{ProductID: product.ID.String(), Colour: "Red", Qty: 2})
	require.NoError(t, err)
	assert.Equal(t, 200.0, view.Subtotal)

	view, err = svc.AddItem(ctx, customer, validation.CartItemRequest{ProductID: product.ID.String(), Colour: "Red", Qty: 1})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Qty)

	_, err = svc.AddItem(ctx, customer, validation.CartItemRequest{ProductID: product.ID.String(), Colour: "Green", Qty: 1})
	var validationErr *errors.ErrValidation
	assert.True(t, stderrors.As(err, &validationErr))

	view, err = svc.UpdateQuantity(customer, validation.CartItemRequest{ProductID: product.ID.String(), Colour: "Red", Qty: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Items[0].Qty)

	view, err = svc.RemoveItem(customer, validation.CartItemRequest{ProductID: product.ID.String(), Colour: "Red"})
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, svc.Clear(customer).Subtotal)
}

func TestCartService_Customization(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := NewCartService(repos, cart.NewMemoryStore(), zap.NewNop())
	customer := &domain.Principal{ID: uuid.New(), Kind: domain.PrincipalCustomer}

	plain := &domain.Product{Name: "Lamp", Category: "Decor", Subcategory: "Lamps", MRPPrice: 100}
	named := &domain.Product{Name: "Name plate", Category: "Decor", Subcategory: domain.SubcategoryCustomizedName, MRPPrice: 300}
	photo := &domain.Product{Name: "Photo frame", Category: "Decor", Subcategory: domain.SubcategoryCustomizedPhoto, MRPPrice: 500}
	for _, p := range []*domain.Product{plain, named, photo} {
		require.NoError(t, repos.Product.Create(ctx, p))
	}

	view, err := svc.AddItem(ctx, customer, validation.CartItemRequest{
		ProductID: plain.ID.String(), Qty: 1, Customization: &domain.Customization{Name: "forged"},
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Nil(t, view.Items[0].Customization, "plain products drop client customizations")

	var validationErr *errors.ErrValidation
	_, err = svc.AddItem(ctx, customer, validation.CartItemRequest{ProductID: named.ID.String(), Qty: 1})
	require.True(t, stderrors.As(err, &validationErr))
	assert.Equal(t, "customization.name", validationErr.Field)

	_, err = svc.AddItem(ctx, customer, validation.CartItemRequest{
		ProductID: photo.ID.String(), Qty: 1, Customization: &domain.Customization{Name: "no photo"},
	})
	require.True(t, stderrors.As(err, &validationErr))
	assert.Equal(t, "customization.photoUrl", validationErr.Field)

	view, err = svc.AddItem(ctx, customer, validation.CartItemRequest{
		ProductID: named.ID.String(), Qty: 1, Customization: &domain.Customization{Name: "Meera"},
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	require.NotNil(t, view.Items[1].Customization)
	assert.Equal(t, "Meera", view.Items[1].Customization.Name)
	assert.Equal(t, domain.SubcategoryCustomizedName, view.Items[1].Customization.Subcategory)
}
