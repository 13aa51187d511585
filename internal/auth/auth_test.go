package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func requestWithCookie(c *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 42)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	uid, ok := ParseSession(requestWithCookie(cookies[0]))
	if !ok || uid != 42 {
		t.Fatalf("ParseSession = (%d, %v), want (42, true)", uid, ok)
	}
}

func TestTamperedCookieRejected(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 42)
	c := rec.Result().Cookies()[0]

	// swap the user id, keep the signature
	parts := strings.SplitN(c.Value, ".", 2)
	c.Value = "1." + parts[1]
	if _, ok := ParseSession(requestWithCookie(c)); ok {
		t.Fatalf("tampered session accepted")
	}

	c.Value = "garbage"
	if _, ok := ParseSession(requestWithCookie(c)); ok {
		t.Fatalf("malformed session accepted")
	}
}

func TestClearSessionExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSession(rec)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" {
		t.Fatalf("session not cleared: %+v", cookies)
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	h := RequireRole("admin", "manager")(ok)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(req.Context(), "manager"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("manager expected 204 got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(req.Context(), "seller"))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("seller expected 403 got %d", w.Code)
	}

	// no role in context at all
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("missing role expected 403 got %d", w.Code)
	}
}
