package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/domain"
)

const principalKey = "principal"

// TokenVerifier turns a bearer token into a principal
type TokenVerifier interface {
	Verify(token string) (*domain.Principal, error)
}

// AuthMiddleware requires a bearer token issued for the given principal kind
func AuthMiddleware(tokens TokenVerifier, kind domain.PrincipalKind, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		principal, err := tokens.Verify(token)
		if err != nil {
			logger.Debug("Rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		if principal.Kind != kind {
			logger.Warn("Token used on wrong route group",
				zap.String("principal_id", principal.ID.String()),
				zap.String("kind", string(principal.Kind)),
				zap.String("required", string(kind)),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authorized for this resource"})
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// SetPrincipal attaches the authenticated caller to the request
func SetPrincipal(c *gin.Context, principal *domain.Principal) {
	c.Set(principalKey, principal)
}

// GetPrincipalFromContext returns the caller set by AuthMiddleware
func GetPrincipalFromContext(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*domain.Principal)
	return principal, ok
}
