package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"notebook/internal/domain"
	"notebook/internal/domain/models"
	"notebook/internal/httputil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	tokens map[string]*models.AccessClaims
}

func (f *fakeVerifier) VerifyToken(token string) (*models.AccessClaims, error) {
	if c, ok := f.tokens[token]; ok {
		return c, nil
	}
	return nil, &domain.UnauthorizedError{Message: "invalid token"}
}

func (f *fakeVerifier) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*models.AccessClaims{
		"good":   {RegisteredClaims: jwt.RegisteredClaims{Subject: "42"}, Role: "authenticated"},
		"badsub": {RegisteredClaims: jwt.RegisteredClaims{Subject: "x"}, Role: "authenticated"},
	}}

	var gotUser int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = httputil.GetUserID(r)
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AuthMiddleware(verifier, discardLogger())(next)

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
		wantUser   int64
	}{
		{"valid token", http.MethodGet, "/api/workspace", "Bearer good", http.StatusNoContent, 42},
		{"missing header", http.MethodGet, "/api/workspace", "", http.StatusUnauthorized, 0},
		{"wrong scheme", http.MethodGet, "/api/workspace", "Basic good", http.StatusUnauthorized, 0},
		{"unknown token", http.MethodGet, "/api/workspace", "Bearer nope", http.StatusUnauthorized, 0},
		{"bad subject", http.MethodGet, "/api/workspace", "Bearer badsub", http.StatusUnauthorized, 0},
		{"health is public", http.MethodGet, "/health", "", http.StatusNoContent, 0},
		{"preflight passes", http.MethodOptions, "/api/folders", "", http.StatusNoContent, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = 0
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, gotUser)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var seen string
	handler := RequestLogger(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httputil.GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
	})

	t.Run("reuses client id", func(t *testing.T) {
		clientID := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, clientID)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, clientID, rec.Header().Get(RequestIDHeader))
		assert.Equal(t, clientID, seen)
	})

	t.Run("replaces malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.NotEqual(t, "<script>", rec.Header().Get(RequestIDHeader))
	})
}

func TestRecovery(t *testing.T) {
	handler := Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}
