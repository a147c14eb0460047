package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/places-service/internal/domain"
)

// TokenKind separates access tokens from refresh tokens. The two are
// structurally identical but never interchangeable.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Verification failures. Handlers collapse all of these into a generic 401;
// the distinction exists for logging only.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenSignature    = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenKindMismatch = errors.New("token kind mismatch")
)

// TokenManager issues and validates signed JWT tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Claims describes the JWT payload.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Kind  TokenKind   `json:"kind"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token of the given kind for the subject.
func (tm *TokenManager) Issue(email string, role domain.Role, kind TokenKind) (string, time.Time, error) {
	ttl := tm.accessTTL
	if kind == TokenKindRefresh {
		ttl = tm.refreshTTL
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Email: email,
		Role:  role,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature, expiry and kind, and returns the claims.
func (tm *TokenManager) Verify(tokenStr string, expected TokenKind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenSignature
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Kind != expected {
		return nil, ErrTokenKindMismatch
	}
	return claims, nil
}
