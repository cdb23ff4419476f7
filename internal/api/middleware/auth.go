package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-collection-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	CALLER_KEY     contextKey = "caller"
	JWT_CLAIMS_KEY contextKey = "jwt_claims"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success bool
	Claims  *jwt.RegisteredClaims
	Caller  domain.Address
	Error   error
}

// Authenticate validates the Authorization header. The token subject is the
// address the request acts as.
func Authenticate(authHeader string, publicKey *rsa.PublicKey) AuthResult {
	result := AuthResult{
		Success: false,
	}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	// Parse the authorization header
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	if authType := strings.ToLower(parts[0]); authType != "bearer" {
		result.Error = fmt.Errorf("unsupported authorization type: %s", authType)
		return result
	}

	claims, err := validateJWT(parts[1], publicKey)
	if err != nil {
		result.Error = err
		return result
	}

	caller, err := domain.ParseAddress(claims.Subject)
	if err != nil {
		result.Error = fmt.Errorf("token subject is not an address: %w", err)
		return result
	}
	if domain.IsZeroAddress(caller) {
		result.Error = errors.New("token subject is the zero address")
		return result
	}

	result.Success = true
	result.Claims = claims
	result.Caller = caller

	return result
}

// Auth returns a gin middleware for JWT authentication. The key is parsed once; a
// missing or malformed key rejects every request.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	publicKey, keyErr := ParseRSAPublicKey(cfg.JWTPublicKey)
	if keyErr != nil {
		logger.Warn("JWT public key unavailable, authenticated routes are disabled", zap.Error(keyErr))
	}

	return func(c *gin.Context) {
		var result AuthResult
		if keyErr != nil {
			result.Error = keyErr
		} else {
			result = Authenticate(c.GetHeader("Authorization"), publicKey)
		}

		if !result.Success {
			logger.Warn("Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		c.Set(string(JWT_CLAIMS_KEY), result.Claims)
		c.Set(string(CALLER_KEY), result.Caller)
		logger.Debug("JWT authentication successful",
			zap.String("path", c.Request.URL.Path),
			zap.String("caller", result.Caller.Hex()),
		)

		c.Next()
	}
}

// Caller returns the authenticated caller address of the request
func Caller(c *gin.Context) (domain.Address, bool) {
	v, ok := c.Get(string(CALLER_KEY))
	if !ok {
		return domain.ZeroAddress, false
	}
	caller, ok := v.(domain.Address)
	return caller, ok
}

// validateJWT validates a JWT token with RSA signature and returns claims
func validateJWT(tokenString string, publicKey *rsa.PublicKey) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is RSA
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	now := time.Now()

	// Check expiration
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return nil, errors.New("token has expired")
	}

	// Check not before
	if claims.NotBefore != nil && claims.NotBefore.After(now) {
		return nil, errors.New("token not yet valid")
	}

	return claims, nil
}

// ParseRSAPublicKey parses an RSA public key from PEM format
func ParseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	if publicKeyPEM == "" {
		return nil, errors.New("JWT public key not configured")
	}

	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
