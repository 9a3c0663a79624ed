package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/user"
	"talenthub/internal/security"
)

func TestAuthenticateInjectsIdentity(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	userID := common.NewUUID()
	token, _, err := provider.Generate(userID, []string{"recruiter"}, "recruiter", time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	var gotID common.UUID
	var gotRole user.Role
	handler := NewAuthMiddleware(provider).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		gotRole, _ = ActiveRoleFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != userID {
		t.Fatalf("expected user id %s, got %s", userID, gotID)
	}
	if gotRole != user.RoleRecruiter {
		t.Fatalf("expected active role recruiter, got %q", gotRole)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	handler := NewAuthMiddleware(provider).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a valid token")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/notifications", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	allowed := RequireRole(user.RoleAdmin, user.RoleRecruiter)

	run := func(role user.Role) int {
		called := false
		handler := allowed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		req := httptest.NewRequest("GET", "/stats", nil)
		ctx := context.WithValue(req.Context(), ContextRoleKey, role)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		if called && rec.Code != http.StatusOK {
			t.Fatalf("handler ran but status is %d", rec.Code)
		}
		return rec.Code
	}

	if code := run(user.RoleRecruiter); code != http.StatusOK {
		t.Fatalf("expected recruiter to pass, got %d", code)
	}
	if code := run(user.RoleAdmin); code != http.StatusOK {
		t.Fatalf("expected admin to pass, got %d", code)
	}
	if code := run(user.RoleCandidate); code != http.StatusForbidden {
		t.Fatalf("expected candidate to be forbidden, got %d", code)
	}
	if code := run(""); code != http.StatusForbidden {
		t.Fatalf("expected empty role to be forbidden, got %d", code)
	}
}
