package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"alucam-admin/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	db := setupHandlerTestDB(t)
	role := models.Role{Name: models.RoleSeller}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("role: %v", err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("sifre123"), bcrypt.DefaultCost)
	user := models.User{Email: "satici@test", Password: string(hash), RoleID: role.ID, Active: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	h := NewAuthHandler(db)

	post := func(email, pass string) *httptest.ResponseRecorder {
		form := url.Values{}
		form.Set("email", email)
		form.Set("password", pass)
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.login(w, req)
		return w
	}

	if w := post("satici@test", "sifre123"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	} else if len(w.Result().Cookies()) == 0 {
		t.Fatalf("no session cookie set")
	}

	if w := post("satici@test", "yanlis"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}
	if w := post("yok@test", "sifre123"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", w.Code)
	}
}

func TestLoginInactiveUserRejected(t *testing.T) {
	db := setupHandlerTestDB(t)
	role := models.Role{Name: models.RoleSeller}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("role: %v", err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("sifre123"), bcrypt.DefaultCost)
	user := models.User{Email: "eski@test", Password: string(hash), RoleID: role.ID, Active: false}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	h := NewAuthHandler(db)

	form := url.Values{}
	form.Set("email", "eski@test")
	form.Set("password", "sifre123")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.login(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive user, got %d", w.Code)
	}
}
