package service

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/auth"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/repository"
	"github.com/yangart/storefront/internal/validation"
	"github.com/yangart/storefront/pkg/errors"
)

type userService struct {
	repos  *repository.Repositories
	tokens *auth.TokenIssuer
	logger *zap.Logger
}

// NewUserService creates the identity service for customers and admins
func NewUserService(repos *repository.Repositories, tokens *auth.TokenIssuer, logger *zap.Logger) *userService {
	return &userService{
		repos:  repos,
		tokens: tokens,
		logger: logger,
	}
}

func customerView(c *domain.Customer) *CustomerView {
	return &CustomerView{ID: c.ID, Name: c.Name, Phone: c.Phone}
}

func (s *userService) issueCustomerToken(c *domain.Customer) (*AuthResult, error) {
	token, err := s.tokens.Issue(domain.Principal{
		ID:    c.ID,
		Kind:  domain.PrincipalCustomer,
		Name:  c.Name,
		Phone: c.Phone,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Customer: customerView(c)}, nil
}

// Register creates a customer and returns a token
func (s *userService) Register(ctx context.Context, req validation.RegisterRequest) (*AuthResult, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.repos.Customer.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer registered", zap.String("customer_id", customer.ID.String()))
	return s.issueCustomerToken(customer)
}

// Login checks a customer's phone and password
func (s *userService) Login(ctx context.Context, req validation.LoginRequest) (*AuthResult, error) {
	customer, err := s.repos.Customer.GetByPhone(ctx, req.Phone)
	var notFound *errors.ErrNotFound
	if stderrors.As(err, &notFound) {
		return nil, &errors.ErrUnauthorized{Message: "invalid phone or password"}
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(customer.PasswordHash, req.Password) {
		return nil, &errors.ErrUnauthorized{Message: "invalid phone or password"}
	}
	return s.issueCustomerToken(customer)
}

// PhoneRegistered reports whether a customer exists for phone
func (s *userService) PhoneRegistered(ctx context.Context, phone string) (bool, error) {
	_, err := s.repos.Customer.GetByPhone(ctx, phone)
	var notFound *errors.ErrNotFound
	if stderrors.As(err, &notFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Me returns the authenticated customer's profile
func (s *userService) Me(ctx context.Context, principal *domain.Principal) (*CustomerView, error) {
	customer, err := s.repos.Customer.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	return customerView(customer), nil
}

// AdminLogin issues an admin token
func (s *userService) AdminLogin(ctx context.Context, req validation.AdminLoginRequest) (string, error) {
	admin, err := s.repos.Admin.GetByUsername(ctx, req.Username)
	var notFound *errors.ErrNotFound
	if stderrors.As(err, &notFound) {
		return "", &errors.ErrUnauthorized{Message: "invalid credentials"}
	}
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		return "", &errors.ErrUnauthorized{Message: "invalid credentials"}
	}

	return s.tokens.Issue(domain.Principal{
		ID:   admin.ID,
		Kind: domain.PrincipalAdmin,
		Name: admin.Username,
	})
}
