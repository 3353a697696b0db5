package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-peer-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT for a sync session.
//
// The token carries the following claims:
//   - Issuer    (iss): identifies the instance that issued the token
//   - Subject   (sub): the peer instance identifier
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - scope:           the partition prefix the session is authorized for,
//     copied from the peer's validated certificate payload
//   - operations:      the operations the session may perform, copied from
//     the same certificate payload
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
func GenerateSessionToken(issuer, instanceID, scope string, operations []string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || instanceID == "" || len(operations) == 0 || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := &models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   instanceID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope:      scope,
		Operations: operations,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: claims.RegisteredClaims, Scope: scope, Operations: operations, SignedString: tokenString, InstanceID: instanceID}, nil
}

// ValidateAndParseSessionToken validates the given session token string and
// extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence (the peer instance identifier)
//
// Returns the parsed token with InstanceID, Scope and Operations populated,
// or an error if validation fails or the subject claim is missing.
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing session token: %w", err)
	}

	claims, ok := token.Claims.(*models.Token)
	if !ok {
		return models.Token{}, errors.New("unexpected session token claims")
	}

	instanceID, err := claims.GetInstanceID()
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{Token: token, RegisteredClaims: claims.RegisteredClaims, Scope: claims.Scope, Operations: claims.Operations, InstanceID: instanceID}, nil
}
