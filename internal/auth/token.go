package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yangart/storefront/internal/config"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/pkg/errors"
)

const issuer = "storefront"

// Claims is the bearer token payload. Kind decides which route group accepts it.
type Claims struct {
	Kind  domain.PrincipalKind `json:"kind"`
	Name  string               `json:"name,omitempty"`
	Phone string               `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an HS256 issuer/verifier
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// Issue signs a token for the principal
func (t *TokenIssuer) Issue(p domain.Principal) (string, error) {
	now := t.now()
	claims := Claims{
		Kind:  p.Kind,
		Name:  p.Name,
		Phone: p.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses a token and returns its principal
func (t *TokenIssuer) Verify(token string) (*domain.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, &errors.ErrUnauthorized{Message: "invalid or expired token"}
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, &errors.ErrUnauthorized{Message: "invalid token subject"}
	}

	switch claims.Kind {
	case domain.PrincipalCustomer, domain.PrincipalAdmin:
	default:
		return nil, &errors.ErrUnauthorized{Message: "invalid token kind"}
	}

	return &domain.Principal{
		ID:    id,
		Kind:  claims.Kind,
		Name:  claims.Name,
		Phone: claims.Phone,
	}, nil
}

// HashPassword bcrypt-hashes a password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
