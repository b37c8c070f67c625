package auth

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yangart/storefront/internal/config"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/pkg/errors"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(config.AuthConfig{JWTSecret: "s3cret", TokenTTL: time.Hour})
	p := domain.Principal{ID: uuid.New(), Kind: domain.PrincipalCustomer, Name: "Asha", Phone: "9000000001"}

	token, err := issuer.Issue(p)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestVerify_Rejects(t *testing.T) {
	issuer := NewTokenIssuer(config.AuthConfig{JWTSecret: "s3cret", TokenTTL: time.Hour})
	other := NewTokenIssuer(config.AuthConfig{JWTSecret: "different", TokenTTL: time.Hour})
	p := domain.Principal{ID: uuid.New(), Kind: domain.PrincipalAdmin, Name: "root"}

	forged, err := other.Issue(p)
	require.NoError(t, err)

	expiredIssuer := NewTokenIssuer(config.AuthConfig{JWTSecret: "s3cret", TokenTTL: time.Hour})
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue(p)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": forged,
		"expired":      expired,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(token)
			var unauthorized *errors.ErrUnauthorized
			assert.True(t, stderrors.As(err, &unauthorized))
		})
	}
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}
