package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"todoManagement/internal/apperr"
	"todoManagement/internal/testutil"
	"todoManagement/models"
)

const testSecret = "test-secret"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	c, err := NewCodec(testSecret, 0)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if c.TTL() != DefaultTokenTTL {
		t.Fatalf("ttl = %v, want %v", c.TTL(), DefaultTokenTTL)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t)
	cases := []Identity{
		{ID: 1, Email: "a@example.com", Role: models.RoleUser},
		{ID: 42, Email: "admin@example.com", Role: models.RoleAdmin},
		{ID: 1 << 40, Email: "big@example.com", Role: models.RoleUser},
	}
	for _, want := range cases {
		tok, err := c.Issue(want.ID, want.Email, want.Role)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		got, err := c.Verify(tok)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if got != want {
			t.Fatalf("identity mismatch: got %+v want %+v", got, want)
		}
	}
}

func TestCodec_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t).WithClock(func() time.Time { return issuedAt })
	tok, err := c.Issue(1, "a@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := c.WithClock(func() time.Time { return issuedAt.Add(59 * time.Minute) }).Verify(tok); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}
	// Once expired, a token stays expired for every later instant.
	for _, after := range []time.Duration{time.Hour + time.Second, 2 * time.Hour, 24 * time.Hour} {
		_, err := c.WithClock(func() time.Time { return issuedAt.Add(after) }).Verify(tok)
		if !errors.Is(err, apperr.ErrTokenExpired) {
			t.Fatalf("at +%v: expected ErrTokenExpired, got %v", after, err)
		}
	}
}

func TestCodec_RejectsTampering(t *testing.T) {
	c := newTestCodec(t)
	tok, err := c.Issue(1, "a@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, _ := NewCodec("other-secret", time.Hour)
	parts := strings.Split(tok, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	for name, bad := range map[string]string{
		"wrong secret": mustIssue(t, other),
		"tampered":     tampered,
		"garbage":      "not-a-token",
		"empty":        "",
	} {
		if _, err := c.Verify(bad); !errors.Is(err, apperr.ErrTokenInvalid) {
			t.Fatalf("%s: expected ErrTokenInvalid, got %v", name, err)
		}
	}
}

func mustIssue(t *testing.T, c *Codec) string {
	t.Helper()
	tok, err := c.Issue(1, "a@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}

func TestCodec_RejectsOtherAlgorithms(t *testing.T) {
	c := newTestCodec(t)
	claims := jwt.MapClaims{"id": 1, "email": "a@example.com", "role": "USER", "exp": time.Now().Add(time.Hour).Unix()}

	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	for name, tok := range map[string]string{"HS384": hs384, "none": none} {
		if _, err := c.Verify(tok); !errors.Is(err, apperr.ErrTokenInvalid) {
			t.Fatalf("%s: expected ErrTokenInvalid, got %v", name, err)
		}
	}
}

func TestCodec_ClaimsValidation(t *testing.T) {
	c := newTestCodec(t)
	exp := time.Now().Add(time.Hour)
	cases := map[string]string{
		"missing id":    testutil.GenerateJWTHS256(t, testSecret, 0, "a@example.com", "USER", exp),
		"missing email": testutil.GenerateJWTHS256(t, testSecret, 1, "", "USER", exp),
		"unknown role":  testutil.GenerateJWTHS256(t, testSecret, 1, "a@example.com", "OWNER", exp),
	}
	for name, tok := range cases {
		if _, err := c.Verify(tok); !errors.Is(err, apperr.ErrTokenInvalid) {
			t.Fatalf("%s: expected ErrTokenInvalid, got %v", name, err)
		}
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "email": "a@example.com", "role": "USER"}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := c.Verify(noExp); !errors.Is(err, apperr.ErrTokenInvalid) {
		t.Fatalf("missing exp: expected ErrTokenInvalid, got %v", err)
	}
}

func TestHasher(t *testing.T) {
	h := NewHasher(4)
	hash, err := h.Hash("Password1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "Password1" || !h.Matches("Password1", hash) {
		t.Fatalf("hash does not verify")
	}
	if h.Matches("password1", hash) {
		t.Fatalf("different password matched")
	}
	if NewHasher(99).cost != NewHasher(0).cost {
		t.Fatalf("out-of-range costs should fall back to the default")
	}
}
