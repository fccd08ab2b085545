package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

type OperatorClaims struct {
	OperatorID uint      `json:"operator_id"`
	Username   string    `json:"username"`
	TokenType  TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies operator tokens. Privileged ledger
// operations (advance, reset) require a valid access token.
type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
}

func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}
}

// Generate mints an access/refresh token pair for the operator. It
// satisfies the login use case's token issuer contract.
func (s *JWTService) Generate(operatorID uint, username string) (string, string, int64, error) {
	now := time.Now().UTC()

	access, err := s.sign(operatorID, username, TokenTypeAccess, now,
		now.Add(time.Duration(s.accessExpMinutes)*time.Minute))
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := s.sign(operatorID, username, TokenTypeRefresh, now,
		now.Add(time.Duration(s.refreshExpDays)*24*time.Hour))
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return access, refresh, int64(s.accessExpMinutes * 60), nil
}

func (s *JWTService) sign(operatorID uint, username string, tokenType TokenType, now, exp time.Time) (string, error) {
	claims := &OperatorClaims{
		OperatorID: operatorID,
		Username:   username,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) Verify(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*OperatorClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *JWTService) Refresh(refreshTokenString string) (string, string, int64, error) {
	claims, err := s.Verify(refreshTokenString)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid refresh token: %w", err)
	}

	if claims.TokenType != TokenTypeRefresh {
		return "", "", 0, fmt.Errorf("token is not a refresh token")
	}

	return s.Generate(claims.OperatorID, claims.Username)
}
