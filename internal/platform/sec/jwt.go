// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds the security primitives of the auth provider: RS256
// access tokens, password and refresh-token hashing, and the staff roles.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// clockSkew tolerated between the API replicas when checking exp and iat.
const clockSkew = 30 * time.Second

/*
AuthClaims is the access-token payload.

Subject is the account ID and ID (jti) is the session the token belongs to.
The role is deliberately absent: it lives on the profile and is resolved on
every request, so a role change applies without waiting for expiry.
*/
type AuthClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenService signs and verifies access tokens with one RSA key pair.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	parser     *jwt.Parser
}

// NewTokenService loads a PEM key pair from disk.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privatePEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: reading private key: %w", err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("sec: parsing private key %s: %w", privateKeyPath, err)
	}

	publicPEM, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: reading public key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("sec: parsing public key %s: %w", publicKeyPath, err)
	}

	return NewTokenServiceFromKeys(privateKey, publicKey, issuer), nil
}

func NewTokenServiceFromKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string) *TokenService {
	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// GenerateAccessToken signs a token for the account and session, valid for ttl.
func (service *TokenService) GenerateAccessToken(userID, email, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	})

	signed, err := token.SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: signing token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature, algorithm, issuer and lifetime.
// It knows nothing about revocation; the session store decides that.
func (service *TokenService) VerifyToken(raw string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	if _, err := service.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return service.publicKey, nil
	}); err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("sec: token without subject or session")
	}
	return claims, nil
}
