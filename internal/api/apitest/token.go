// Package apitest holds helpers for testing authenticated API routes
package apitest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// Signer issues RS256 tokens for a freshly generated key
type Signer struct {
	key          *rsa.PrivateKey
	PublicKeyPEM string
}

// NewSigner generates a 2048-bit key pair
func NewSigner(t *testing.T) *Signer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	return &Signer{
		key:          key,
		PublicKeyPEM: string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})),
	}
}

// Token signs a token whose subject is caller, valid for ttl
func (s *Signer) Token(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key)
	require.NoError(t, err)

	return signed
}

// Bearer returns an Authorization header value for caller
func (s *Signer) Bearer(t *testing.T, caller domain.Address) string {
	t.Helper()
	return "Bearer " + s.Token(t, caller.Hex(), time.Hour)
}
