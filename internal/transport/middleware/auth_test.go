package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/finsl/signbank-backend/internal/domain"
	"github.com/finsl/signbank-backend/pkg/ctxutil"
)

type tokenValidatorMock struct {
	ValidateAccessTokenFunc func(token string) (uuid.UUID, []string, error)
	calls                   int
}

func (m *tokenValidatorMock) ValidateAccessToken(token string) (uuid.UUID, []string, error) {
	m.calls++
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return uuid.Nil, nil, errors.New("invalid token")
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &tokenValidatorMock{
		ValidateAccessTokenFunc: func(token string) (uuid.UUID, []string, error) {
			if token == "valid-token" {
				return userID, []string{domain.PermSearchGloss}, nil
			}
			return uuid.Nil, nil, errors.New("invalid token")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxutil.ViewerFromCtx(r.Context())
		if !viewer.Authenticated() {
			t.Error("expected authenticated viewer in context")
			return
		}
		if viewer.UserID != userID {
			t.Errorf("expected userID %v, got %v", userID, viewer.UserID)
		}
		if !viewer.Can(domain.PermSearchGloss) {
			t.Error("expected gloss-search capability on viewer")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	validator := &tokenValidatorMock{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for invalid token")
	})

	wrappedHandler := Auth(validator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuth_NoAuthHeaderIsAnonymous(t *testing.T) {
	validator := &tokenValidatorMock{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxutil.ViewerFromCtx(r.Context())
		if viewer.Authenticated() {
			t.Error("expected anonymous viewer for request without token")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if validator.calls > 0 {
		t.Error("ValidateAccessToken should not be called for anonymous request")
	}
}

func TestAuth_NonBearerToken(t *testing.T) {
	validator := &tokenValidatorMock{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxutil.ViewerFromCtx(r.Context())
		if viewer.Authenticated() {
			t.Error("expected anonymous viewer for non-Bearer auth")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if validator.calls > 0 {
		t.Error("ValidateAccessToken should not be called for non-Bearer token")
	}
}
