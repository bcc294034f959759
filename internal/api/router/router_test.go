package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/serenaspa/massoterapia-platform/internal/chat"
	"github.com/serenaspa/massoterapia-platform/internal/http/handlers"
	"github.com/serenaspa/massoterapia-platform/internal/reports"
	"github.com/serenaspa/massoterapia-platform/internal/store"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	st := store.New(nil, nil, nil)
	return New(&Config{
		LeadsHandler:    handlers.NewLeadsHandler(st, nil, "5511999999999", nil),
		ContactHandler:  handlers.NewContactHandler(st, nil, nil),
		BookingsHandler: handlers.NewBookingsHandler(st, nil, nil),
		ClientsHandler:  handlers.NewClientsHandler(st, nil),
		CatalogHandler:  handlers.NewCatalogHandler("5511999999999"),
		ChatHandler:     chat.NewHandler("", nil, nil),
		ReportsHandler:  reports.NewHandler(st, nil, nil),
		AdminAuthSecret: "test-secret",
	})
}

func adminToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPublicRoutesNeedNoAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/catalog", "/chat/history?session=s1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code == http.StatusUnauthorized {
			t.Errorf("%s must not require auth", path)
		}
	}
}

func TestChatMessageIsRateLimited(t *testing.T) {
	srv := newTestServer(t)

	var lastCode int
	for i := 0; i < 15; i++ {
		req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{"text":"oi"}`))
		req.Header.Set("X-Real-Ip", "203.0.113.9")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if i == 0 && rec.Code != http.StatusOK {
			t.Fatalf("first message: status = %d, body %s", rec.Code, rec.Body.String())
		}
		lastCode = rec.Code
	}

	// The burst is exhausted well before 15 back-to-back messages.
	if lastCode != http.StatusTooManyRequests {
		t.Fatalf("status after burst = %d, want 429", lastCode)
	}
}

func TestAdminRoutesRequireJWT(t *testing.T) {
	srv := newTestServer(t)

	paths := []string{"/admin/leads", "/admin/contacts", "/admin/bookings", "/admin/clients", "/admin/reports/complete"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without token: status = %d, want 401", path, rec.Code)
		}
	}
}

func TestAdminRoutesAcceptValidJWT(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "test-secret"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutesRejectWrongSecret(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "other-secret"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminDisabledWithoutSecret(t *testing.T) {
	st := store.New(nil, nil, nil)
	srv := New(&Config{
		LeadsHandler: handlers.NewLeadsHandler(st, nil, "5511999999999", nil),
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	// No secret means no admin surface at all.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
