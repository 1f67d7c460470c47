package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/linesmerrill/police-records-api/models"
)

// TokenTTL is how long an issued access token stays valid
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid token")

// Claims are the access token claims. Subject holds the user's hex ObjectID.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 access tokens
type Tokens struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

// NewTokens returns a token service signing with secret
func NewTokens(secret string) *Tokens {
	return &Tokens{Secret: []byte(secret), TTL: TokenTTL, now: time.Now}
}

// Issue signs a token for the user
func (t *Tokens) Issue(user models.User) (string, error) {
	if len(t.Secret) == 0 {
		return "", errors.New("jwt secret is not set")
	}
	now := t.clock()
	ttl := t.TTL
	if ttl <= 0 {
		ttl = TokenTTL
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(t.Secret)
}

// Parse verifies the signature and expiry of a token
func (t *Tokens) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return t.Secret, nil
	}, jwt.WithTimeFunc(t.clock))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (t *Tokens) clock() time.Time {
	if t.now == nil {
		return time.Now()
	}
	return t.now()
}

// Middleware requires a valid Bearer token and puts its claims on the request context.
// Browsers cannot set headers on websocket upgrades, so a token query parameter is
// accepted when the Authorization header is absent.
func (t *Tokens) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if r.Header.Get("Authorization") == "" {
			raw = r.URL.Query().Get("token")
			ok = raw != ""
		}
		if !ok || raw == "" {
			unauthorized(w, r, "missing bearer token")
			return
		}
		claims, err := t.Parse(raw)
		if err != nil {
			unauthorized(w, r, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	zap.S().Warnw("unauthorized",
		"url", r.URL.String(),
		"reason", reason,
		"requestId", RequestID(r.Context()))
	WriteJSON(w, http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Error:   "unauthorized",
		Details: reason,
		Code:    http.StatusUnauthorized,
	})
}
