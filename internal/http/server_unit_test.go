package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/auth"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/config"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
)

func testConfig() config.Config {
	return config.Config{
		AccessTokenSecret:  "unit-access-secret",
		RefreshTokenSecret: "unit-refresh-secret",
		JWTIssuer:          "unit-test",
		AccessTokenTTL:     2 * time.Hour,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer abc":   "abc",
		"Bearer  abc ": "abc",
		"":             "",
		"abc":          "",
		"Basic abc":    "",
	}
	for header, expect := range cases {
		if got := bearerToken(header); got != expect {
			t.Fatalf("bearerToken(%q) = %q, want %q", header, got, expect)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)

	var gotClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = claimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := s.authMiddleware(next)

	// No token.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/routes/menu", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d, want 401", rec.Code)
	}

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/routes/menu", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("invalid token status = %d, want 403", rec.Code)
	}

	// Valid token.
	token, err := auth.NewToken(s.cfg.AccessTokenSecret, s.cfg.JWTIssuer, s.cfg.AccessTokenTTL, auth.Claims{UserID: "u-1", Role: auth.RoleReceptionist})
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/routes/menu", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token status = %d, want 200", rec.Code)
	}
	if gotClaims == nil || gotClaims.UserID != "u-1" || gotClaims.Role != auth.RoleReceptionist {
		t.Fatalf("claims = %+v", gotClaims)
	}
}

func TestRequirePage(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := s.requirePage(auth.PageHousekeeping)(next)

	serve := func(claims *auth.Claims) int {
		req := httptest.NewRequest(http.MethodPut, "/routes/rooms/update-status", nil)
		if claims != nil {
			req = req.WithContext(context.WithValue(req.Context(), claimsKey{}, claims))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve(nil); code != http.StatusForbidden {
		t.Fatalf("no claims status = %d, want 403", code)
	}
	if code := serve(&auth.Claims{UserID: "u-2", Role: auth.RoleReceptionist}); code != http.StatusForbidden {
		t.Fatalf("receptionist housekeeping status = %d, want 403", code)
	}
	if code := serve(&auth.Claims{UserID: "u-3", Role: auth.RoleHousekeeper}); code != http.StatusOK {
		t.Fatalf("housekeeper status = %d, want 200", code)
	}
	if code := serve(&auth.Claims{UserID: "u-1", Role: auth.RoleManager}); code != http.StatusOK {
		t.Fatalf("manager status = %d, want 200", code)
	}
}

func TestIssueTokenPairCookie(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)
	rec := httptest.NewRecorder()

	accessToken, err := s.issueTokenPair(context.Background(), rec, model.User{ID: "u-1", Role: auth.RoleManager})
	if err != nil {
		t.Fatalf("issueTokenPair: %v", err)
	}

	claims, err := auth.ParseToken(s.cfg.AccessTokenSecret, accessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != auth.RoleManager {
		t.Fatalf("claims = %+v", claims)
	}

	cookies := rec.Result().Cookies()
	var refresh *http.Cookie
	for _, c := range cookies {
		if c.Name == refreshCookieName {
			refresh = c
		}
	}
	if refresh == nil {
		t.Fatalf("no %s cookie set", refreshCookieName)
	}
	if !refresh.HttpOnly || !refresh.Secure || refresh.SameSite != http.SameSiteNoneMode {
		t.Fatalf("cookie attributes = HttpOnly:%v Secure:%v SameSite:%v", refresh.HttpOnly, refresh.Secure, refresh.SameSite)
	}
	if refresh.MaxAge != int(s.cfg.RefreshTokenTTL/time.Second) {
		t.Fatalf("cookie MaxAge = %d", refresh.MaxAge)
	}
	if _, err := auth.ParseToken(s.cfg.RefreshTokenSecret, refresh.Value); err != nil {
		t.Fatalf("refresh cookie does not parse: %v", err)
	}
	// The two tokens use different secrets; the refresh token must not pass
	// as an access token.
	if _, err := auth.ParseToken(s.cfg.AccessTokenSecret, refresh.Value); err == nil {
		t.Fatalf("refresh token verified with access secret")
	}
}

func TestRefreshTokenMissingCookie(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)
	rec := httptest.NewRecorder()
	s.handleRefreshToken(rec, httptest.NewRequest(http.MethodPost, "/routes/tokens/refresh_token", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRefreshTokenBadCookie(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/routes/tokens/refresh_token", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	s.handleRefreshToken(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestMenuByRole(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/routes/menu", nil)
	req = req.WithContext(context.WithValue(req.Context(), claimsKey{}, &auth.Claims{UserID: "u-3", Role: auth.RoleHousekeeper}))
	rec := httptest.NewRecorder()
	s.handleMenu(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, string(auth.PageHousekeeping)) {
		t.Fatalf("housekeeper menu missing housekeeping: %s", body)
	}
	if strings.Contains(body, string(auth.PageGuests)) {
		t.Fatalf("housekeeper menu leaks guest management: %s", body)
	}
}
