// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the signed visitor identity used to key sessions and
// durable settings.
//
// # Architecture
//
// Visitors are anonymous. Each browser receives a UUIDv7 visitor id wrapped in
// an HS256 JWT so the id cannot be forged to read another visitor's settings.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VisitorClaims represents the payload embedded inside a visitor token.
type VisitorClaims struct {
	jwt.RegisteredClaims

	// VisitorID is abbreviated to keep the cookie small.
	VisitorID string `json:"vid"`
}

// VisitorTokens issues and verifies visitor tokens with a shared secret.
type VisitorTokens struct {
	secret []byte
	issuer string
}

// NewVisitorTokens creates a new [VisitorTokens] service.
func NewVisitorTokens(secret, issuer string) (*VisitorTokens, error) {
	if secret == "" {
		return nil, errors.New("sec: visitor token secret must not be empty")
	}

	return &VisitorTokens{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// Issue creates a signed token for visitorID valid for timeToLive.
func (service *VisitorTokens) Issue(visitorID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := VisitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   visitorID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		VisitorID: visitorID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign visitor token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, issuer and expiry of a visitor token and
// returns the visitor id it carries.
func (service *VisitorTokens) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &VisitorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		return "", fmt.Errorf("sec: invalid visitor token: %w", err)
	}

	claims, ok := token.Claims.(*VisitorClaims)
	if !ok || !token.Valid || claims.VisitorID == "" {
		return "", fmt.Errorf("sec: invalid visitor token claims")
	}

	return claims.VisitorID, nil
}
