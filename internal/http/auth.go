package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/auth"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/crypto"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/repository"
)

const refreshCookieName = "refreshToken"

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      int    `json:"role"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !auth.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	id, err := s.store.CreateUser(r.Context(), model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    id,
		"email": req.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if err := crypto.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, err := s.issueTokenPair(r.Context(), w, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookieName); err == nil && s.redis != nil {
		_ = s.redis.Del(r.Context(), refreshKey(cookie.Value)).Err()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// handleRefreshToken exchanges the refresh cookie for a fresh access token
// and rotates the cookie. With redis configured each refresh token is single
// use; a replayed token is rejected even if its signature is still valid.
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "Access denied. No refresh token provided.")
		return
	}

	claims, err := auth.ParseToken(s.cfg.RefreshTokenSecret, cookie.Value)
	if err != nil {
		writeError(w, http.StatusForbidden, "Invalid or expired refresh token.")
		return
	}

	if s.redis != nil {
		deleted, err := s.redis.Del(r.Context(), refreshKey(cookie.Value)).Result()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to refresh token")
			return
		}
		if deleted == 0 {
			writeError(w, http.StatusForbidden, "Invalid or expired refresh token.")
			return
		}
	}

	user, err := s.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusForbidden, "Invalid or expired refresh token.")
		return
	}

	accessToken, err := s.issueTokenPair(r.Context(), w, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// handleMenu returns the pages the caller's role may open, for the client's
// navigation menu.
func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	pages := auth.PagesFor(claims.Role)
	if pages == nil {
		writeError(w, http.StatusForbidden, "Invalid role")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"role":  claims.Role,
		"pages": pages,
	})
}

// issueTokenPair mints the access token, sets the rotated refresh cookie and
// registers the refresh token for single use.
func (s *Server) issueTokenPair(ctx context.Context, w http.ResponseWriter, user model.User) (string, error) {
	claims := auth.Claims{UserID: user.ID, Role: user.Role}

	accessToken, err := auth.NewToken(s.cfg.AccessTokenSecret, s.cfg.JWTIssuer, s.cfg.AccessTokenTTL, claims)
	if err != nil {
		return "", err
	}
	refreshToken, err := auth.NewToken(s.cfg.RefreshTokenSecret, s.cfg.JWTIssuer, s.cfg.RefreshTokenTTL, claims)
	if err != nil {
		return "", err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, refreshKey(refreshToken), user.ID, s.cfg.RefreshTokenTTL).Err(); err != nil {
			return "", err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(s.cfg.RefreshTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return accessToken, nil
}

func refreshKey(token string) string {
	return "refresh:" + crypto.HashToken(token)
}
