package identity

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openlot/marketplace/internal/domain"
)

// Verification is the outcome of checking a caller's credentials. When
// IsVerified is false, Message explains the rejection.
type Verification struct {
	IsVerified    bool
	WalletAddress string
	Message       string
}

// Verifier checks a caller's bearer credentials and resolves the wallet
// address behind them.
type Verifier interface {
	// Verify validates an Authorization header value
	Verify(authHeader string) Verification
}

// JWTVerifier validates RSA-signed bearer tokens whose subject is the
// caller's wallet address.
type JWTVerifier struct {
	publicKey *rsa.PublicKey
}

// NewJWTVerifier creates a verifier from an RSA public key in PEM format
func NewJWTVerifier(publicKeyPEM string) (*JWTVerifier, error) {
	if publicKeyPEM == "" {
		return nil, errors.New("JWT public key not configured")
	}

	publicKey, err := parseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	return &JWTVerifier{publicKey: publicKey}, nil
}

// Verify validates an Authorization header value
func (v *JWTVerifier) Verify(authHeader string) Verification {
	if authHeader == "" {
		return Verification{Message: "missing Authorization header"}
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Verification{Message: "invalid Authorization header format"}
	}

	claims, err := v.validateJWT(parts[1])
	if err != nil {
		return Verification{Message: err.Error()}
	}

	if !domain.IsWalletAddress(claims.Subject) {
		return Verification{Message: "token subject is not a wallet address"}
	}

	return Verification{
		IsVerified:    true,
		WalletAddress: claims.Subject,
	}
}

// validateJWT validates a JWT token with RSA signature and returns claims
func (v *JWTVerifier) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is RSA
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	now := time.Now()

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return nil, errors.New("token has expired")
	}

	if claims.NotBefore != nil && claims.NotBefore.After(now) {
		return nil, errors.New("token not yet valid")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
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
