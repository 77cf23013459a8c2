package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskmanager/api/internal/apperrors"
)

// Claims is the JWT claim set bound to an issued token: the user's id
// and username plus the registered expiry.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	// secret is the HMAC signing key.
	secret []byte
	// ttl is how long an issued token stays valid.
	ttl time.Duration
	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewTokenService constructs a TokenService signing with secret and
// issuing tokens valid for ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token binding the user's id and username, expiring
// after the configured TTL.
func (s *TokenService) Issue(userID, username string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the bearer value's signature and expiry and returns the
// embedded user id and username. An optional "Bearer " prefix is
// stripped first. Any parse, signature, or expiry failure is reported
// as apperrors.ErrInvalidToken. Expiry is the only invalidation
// mechanism; there is no revocation list.
func (s *TokenService) Verify(bearer string) (userID, username string, err error) {
	raw := strings.TrimSpace(strings.TrimPrefix(bearer, "Bearer "))
	if raw == "" {
		return "", "", apperrors.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", "", apperrors.ErrInvalidToken
	}
	return claims.UserID, claims.Username, nil
}
