package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"todoManagement/internal/apperr"
	"todoManagement/models"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = time.Hour

// Identity is the verified caller extracted from a bearer token.
// It lives for one request and is never persisted.
type Identity struct {
	ID    int64
	Email string
	Role  models.UserRole
}

type identityKey struct{}

// WithIdentity stores the identity in context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext retrieves the identity from context (if any).
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

type claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256 identity tokens.
// The secret is read-only after construction, so a Codec is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a codec signing with secret. A non-positive ttl selects DefaultTokenTTL.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of the codec that reads time from now.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	cp := *c
	cp.now = now
	return &cp
}

// TTL returns the lifetime of issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the given claims, expiring TTL from now.
func (c *Codec) Issue(id int64, email string, role models.UserRole) (string, error) {
	now := c.now()
	cl := claims{
		ID:    id,
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
}

// Verify checks signature and expiry and returns the carried identity.
// A correctly signed token past its expiry fails with apperr.ErrTokenExpired;
// every other problem is apperr.ErrTokenInvalid.
func (c *Codec) Verify(tokenStr string) (Identity, error) {
	var cl claims
	tok, err := jwt.ParseWithClaims(tokenStr, &cl, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, apperr.ErrTokenExpired
		}
		return Identity{}, apperr.ErrTokenInvalid
	}
	if !tok.Valid || cl.ID <= 0 || cl.Email == "" {
		return Identity{}, apperr.ErrTokenInvalid
	}
	role, err := models.ParseUserRole(cl.Role)
	if err != nil {
		return Identity{}, apperr.ErrTokenInvalid
	}
	return Identity{ID: cl.ID, Email: cl.Email, Role: role}, nil
}
