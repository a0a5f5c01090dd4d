package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"todoManagement/internal/apperr"
	"todoManagement/internal/testutil"
	"todoManagement/models"
)

func TestParseFromMD(t *testing.T) {
	c := newTestCodec(t)
	tok := mustIssue(t, c)

	id, err := ParseFromMD(testutil.CtxWithBearer(context.Background(), tok), c)
	if err != nil {
		t.Fatalf("ParseFromMD: %v", err)
	}
	if id.ID != 1 || id.Email != "a@example.com" || id.Role != models.RoleUser {
		t.Fatalf("identity mismatch: %+v", id)
	}

	lower := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "bearer "+tok))
	if _, err := ParseFromMD(lower, c); err != nil {
		t.Fatalf("scheme should be case-insensitive: %v", err)
	}
}

func TestParseFromMD_Failures(t *testing.T) {
	c := newTestCodec(t)
	tok := mustIssue(t, c)
	md := func(v string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", v))
	}

	cases := []struct {
		name string
		ctx  context.Context
		want error
	}{
		{"no metadata", context.Background(), errMissingMetadata},
		{"no header", metadata.NewIncomingContext(context.Background(), metadata.MD{}), errMissingHeader},
		{"basic scheme", md("Basic " + tok), errInvalidHeader},
		{"bare token", md(tok), errInvalidHeader},
		{"empty bearer", md("Bearer "), errInvalidHeader},
	}
	for _, tc := range cases {
		if _, err := ParseFromMD(tc.ctx, c); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	c := newTestCodec(t)
	const public = "/todo.v1.AuthService/Signin"
	interceptor := NewUnaryAuthInterceptor(c, public)

	var seen Identity
	var called bool
	handler := func(ctx context.Context, req any) (any, error) {
		called = true
		seen, _ = IdentityFromContext(ctx)
		return "ok", nil
	}

	// Allowlisted method runs without a token.
	if _, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: public}, handler); err != nil || !called {
		t.Fatalf("public method: err=%v called=%v", err, called)
	}

	info := &grpc.UnaryServerInfo{FullMethod: "/todo.v1.ManagerService/AssignManager"}

	called = false
	_, err := interceptor(context.Background(), nil, info, handler)
	if status.Code(err) != codes.Unauthenticated || called {
		t.Fatalf("missing token: code=%v called=%v", status.Code(err), called)
	}

	expired := testutil.GenerateJWTHS256(t, testSecret, 1, "a@example.com", "USER", time.Now().Add(-time.Minute))
	_, err = interceptor(testutil.CtxWithBearer(context.Background(), expired), nil, info, handler)
	if status.Code(err) != codes.Unauthenticated || !strings.Contains(status.Convert(err).Message(), "token expired") || called {
		t.Fatalf("expired token: err=%v called=%v", err, called)
	}
	if strings.Contains(status.Convert(err).Message(), testSecret) {
		t.Fatalf("error leaks the secret: %v", err)
	}

	tok, _ := c.Issue(9, "admin@example.com", models.RoleAdmin)
	if _, err := interceptor(testutil.CtxWithBearer(context.Background(), tok), nil, info, handler); err != nil {
		t.Fatalf("valid token: %v", err)
	}
	if !called || seen != (Identity{ID: 9, Email: "admin@example.com", Role: models.RoleAdmin}) {
		t.Fatalf("identity not injected: %+v", seen)
	}
}

func TestRequireRole(t *testing.T) {
	if _, err := RequireIdentity(context.Background()); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated without identity, got %v", err)
	}
	if _, err := RequireAdmin(context.Background()); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated without identity, got %v", err)
	}

	user := WithIdentity(context.Background(), Identity{ID: 1, Email: "u@example.com", Role: models.RoleUser})
	admin := WithIdentity(context.Background(), Identity{ID: 2, Email: "a@example.com", Role: models.RoleAdmin})

	if _, err := RequireAdmin(user); !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("user passed admin gate: %v", err)
	}
	if st := status.Convert(apperr.ToStatus("gate", apperr.ErrAccessDenied)); st.Code() != codes.PermissionDenied {
		t.Fatalf("access denied maps to %v", st.Code())
	}
	id, err := RequireAdmin(admin)
	if err != nil || id.ID != 2 {
		t.Fatalf("admin rejected: %v %+v", err, id)
	}
	if _, err := RequireRole(user, models.RoleUser); err != nil {
		t.Fatalf("user gate: %v", err)
	}
}
