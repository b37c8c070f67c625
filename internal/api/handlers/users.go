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

// Accounts covers customer and admin credentials
type Accounts interface {
	Register(ctx context.Context, req validation.RegisterRequest) (*service.AuthResult, error)
	Login(ctx context.Context, req validation.LoginRequest) (*service.AuthResult, error)
	PhoneRegistered(ctx context.Context, phone string) (bool, error)
	Me(ctx context.Context, principal *domain.Principal) (*service.CustomerView, error)
	AdminLogin(ctx context.Context, req validation.AdminLoginRequest) (string, error)
}

// HandleRegister handles POST /users/register
func HandleRegister(accounts Accounts, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		result, err := accounts.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// HandleLogin handles POST /users/login
func HandleLogin(accounts Accounts, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		result, err := accounts.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// HandleCheckPhone handles POST /users/check-phone
func HandleCheckPhone(accounts Accounts, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.CheckPhoneRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		exists, err := accounts.PhoneRegistered(c.Request.Context(), req.Phone)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"exists": exists})
	}
}

// HandleMe handles GET /users/me
func HandleMe(accounts Accounts, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		me, err := accounts.Me(c.Request.Context(), principal)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, me)
	}
}

// HandleAdminLogin handles POST /admin/login
func HandleAdminLogin(accounts Accounts, v *validatorv10.Validate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.AdminLoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		token, err := accounts.AdminLogin(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
