package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller resolved from an identity provider token.
type Identity struct {
	UserID   uint
	UserType string
}

// GenerateToken signs an HS256 token in the shape the identity provider
// issues. Used by local tooling and tests.
func GenerateToken(userID uint, userType, secret, issuer string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":       userID,
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"userType": userType,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	if issuer != "" {
		claims["iss"] = issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies signature, expiry and, when set, the issuer.
func ValidateToken(tokenString, secret, issuer string) (Identity, error) {
	if secret == "" {
		return Identity{}, errors.New("token verification is not configured")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid token claims")
	}

	id, err := userIDFromClaims(claims)
	if err != nil {
		return Identity{}, err
	}
	userType, _ := claims["userType"].(string)
	return Identity{UserID: id, UserType: userType}, nil
}

func userIDFromClaims(claims jwt.MapClaims) (uint, error) {
	if v, ok := claims["id"].(float64); ok && v > 0 {
		return uint(v), nil
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		n, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || n == 0 {
			return 0, fmt.Errorf("invalid subject %q", sub)
		}
		return uint(n), nil
	}
	return 0, errors.New("token carries no user id")
}
