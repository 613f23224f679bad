package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	defaultRefreshTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserID uint            `json:"user_id"`
	Role   models.UserRole `json:"role"`
	Type   string          `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens. Access tokens
// authenticate requests; refresh tokens only buy new access tokens.
type TokenManager struct {
	secret     []byte
	ttl        time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, refreshTTL: defaultRefreshTTL, now: time.Now}
}

func (m *TokenManager) WithRefreshTTL(ttl time.Duration) *TokenManager {
	if ttl > 0 {
		m.refreshTTL = ttl
	}
	return m
}

func (m *TokenManager) Generate(user *models.User) (string, time.Time, error) {
	return m.sign(user, TokenTypeAccess, "", m.ttl)
}

// GenerateRefresh issues a refresh token carrying id as its jti. The caller
// stores id on the user so a later rotation or logout revokes the token.
func (m *TokenManager) GenerateRefresh(user *models.User, id string) (string, time.Time, error) {
	return m.sign(user, TokenTypeRefresh, id, m.refreshTTL)
}

func (m *TokenManager) sign(user *models.User, tokenType, id string, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse accepts access tokens only.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeAccess)
}

func (m *TokenManager) ParseRefresh(tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) parse(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 || claims.Type != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
