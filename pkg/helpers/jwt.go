package helpers

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the fixed lifetime of an auth token.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// JWTManager signs and verifies auth tokens. Tokens carry only the user id;
// role and club membership are always read from the store.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	now    func() time.Time
}

var defaultManager *JWTManager

func NewJWTManager(secret string, ttl time.Duration, issuer string) *JWTManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &JWTManager{
		Secret: []byte(secret),
		TTL:    ttl,
		Issuer: issuer,
		now:    time.Now,
	}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token plus the metadata needed to set cookies and revoke it.
type IssuedToken struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

func (m *JWTManager) Generate(userID string) (IssuedToken, error) {
	if strings.TrimSpace(userID) == "" {
		return IssuedToken{}, ErrInvalidToken
	}
	now := m.clock()
	exp := now.Add(m.TTL)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Value: s, ID: claims.ID, ExpiresAt: exp}, nil
}

// Parse verifies signature and expiry. Every failure is reported as ErrInvalidToken
// (or ErrMissingToken for an empty string).
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, ErrMissingToken
	}
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.clock), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *JWTManager) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

// TokenFromHeader extracts the token of an "Authorization: Bearer <token>" header.
func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return parts[1], nil
}
