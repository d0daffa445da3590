package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Subject is the identity encoded into both tokens.
type Subject struct {
	UserID string
	Email  string
	Role   user.Role
}

type Claims struct {
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

func (c *Claims) Subject() Subject {
	return Subject{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// SignedToken is a signed JWT with its expiry.
type SignedToken struct {
	Token     string
	ExpiresAt time.Time
}

// JWTService signs access and refresh tokens with separate HS256 secrets.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewJWTService(accessSecret, refreshSecret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     time.Duration(accessExpMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *JWTService) GenerateAccess(sub Subject) (*SignedToken, error) {
	return s.sign(sub, TokenTypeAccess, s.accessSecret, s.accessTTL)
}

func (s *JWTService) GenerateRefresh(sub Subject) (*SignedToken, error) {
	return s.sign(sub, TokenTypeRefresh, s.refreshSecret, s.refreshTTL)
}

// VerifyAccess checks signature, expiry and that the token is an access token.
func (s *JWTService) VerifyAccess(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeAccess, s.accessSecret)
}

// VerifyRefresh checks signature, expiry and that the token is a refresh token.
func (s *JWTService) VerifyRefresh(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeRefresh, s.refreshSecret)
}

func (s *JWTService) sign(sub Subject, tokenType TokenType, secret []byte, ttl time.Duration) (*SignedToken, error) {
	now := biztime.NowUTC()
	exp := now.Add(ttl)

	claims := &Claims{
		UserID:    sub.UserID,
		Email:     sub.Email,
		Role:      sub.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// unique id keeps tokens minted in the same second distinct
			ID:        uuid.NewString(),
			Subject:   sub.UserID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return &SignedToken{Token: signed, ExpiresAt: exp}, nil
}

func (s *JWTService) verify(tokenString string, want TokenType, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(biztime.NowUTC))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != want {
		return nil, fmt.Errorf("token is not a %s token", want)
	}
	return claims, nil
}
