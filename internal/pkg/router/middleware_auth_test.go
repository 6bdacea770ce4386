package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aryasaputra/gokey/internal/pkg/jwt"
)

type fakeVerifier struct {
	claims jwt.Claims
	err    error
}

func (f *fakeVerifier) Generate(uid int64, email string) (string, error) {
	return "", nil
}

func (f *fakeVerifier) Verify(tokenStr string) (jwt.Claims, error) {
	return f.claims, f.err
}

func TestMiddlewareAuthentication(t *testing.T) {
	public := map[string]map[string]struct{}{
		http.MethodPost: {"/api/v1/identity/login": {}},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	message := func(t *testing.T, rec *httptest.ResponseRecorder) string {
		t.Helper()
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		return body["message"]
	}

	t.Run("public endpoint skips authentication", func(t *testing.T) {
		mw := middlewareAuthentication(&fakeVerifier{err: jwt.ErrInvalidToken}, public)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/identity/login", nil)
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("missing bearer token", func(t *testing.T) {
		mw := middlewareAuthentication(&fakeVerifier{}, public)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/identity/profile", nil)
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if got := message(t, rec); got != "Authentication required" {
			t.Fatalf("message = %q, want %q", got, "Authentication required")
		}
	})

	t.Run("expired token gets a distinct message", func(t *testing.T) {
		mw := middlewareAuthentication(&fakeVerifier{err: jwt.ErrTokenExpired}, public)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/identity/profile", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if got := message(t, rec); got != "Token expired" {
			t.Fatalf("message = %q, want %q", got, "Token expired")
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		mw := middlewareAuthentication(&fakeVerifier{err: jwt.ErrInvalidToken}, public)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/identity/profile", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if got := message(t, rec); got != "Invalid token" {
			t.Fatalf("message = %q, want %q", got, "Invalid token")
		}
	})

	t.Run("valid token stores claims in context", func(t *testing.T) {
		verifier := &fakeVerifier{claims: jwt.Claims{UserID: 42, UserEmail: "a@b.co"}}
		mw := middlewareAuthentication(verifier, public)

		var got *jwt.Claims
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = jwt.GetAuth(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/identity/profile", nil)
		req.Header.Set("Authorization", "Bearer ok-token")
		rec := httptest.NewRecorder()
		mw(inner).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got == nil || got.UserID != 42 {
			t.Fatalf("claims = %+v, want UserID 42", got)
		}
	})
}
