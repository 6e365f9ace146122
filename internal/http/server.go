// Package http exposes the front-desk API. All application routes live under
// the /routes prefix, a contract with the existing web client.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/auth"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/config"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/desk"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/repository"
)

type Server struct {
	cfg   config.Config
	store *repository.Store
	desk  *desk.Service
	// redis holds single-use refresh tokens. Nil disables rotation checks
	// and refresh falls back to stateless JWT validation.
	redis *redis.Client
}

func NewServer(cfg config.Config, store *repository.Store, deskSvc *desk.Service, rdb *redis.Client) *Server {
	return &Server{cfg: cfg, store: store, desk: deskSvc, redis: rdb}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/routes", func(r chi.Router) {
		r.Post("/users/signup", s.handleSignup)
		r.Post("/users/login", s.handleLogin)
		r.Post("/users/logout", s.handleLogout)
		r.Post("/tokens/refresh_token", s.handleRefreshToken)

		r.With(s.authMiddleware).Get("/menu", s.handleMenu)

		r.With(s.authMiddleware, s.requirePage(auth.PageCheckInOut)).Post("/checkin", s.handleCheckIn)
		r.With(s.authMiddleware, s.requirePage(auth.PageCheckInOut)).Get("/checkin/recent", s.handleRecentCheckIns)
		r.With(s.authMiddleware, s.requirePage(auth.PageCheckInOut)).Post("/checkout", s.handleCheckOut)
		r.With(s.authMiddleware, s.requirePage(auth.PageCheckInOut)).Get("/checkout/recent", s.handleRecentCheckOuts)
		r.With(s.authMiddleware, s.requirePage(auth.PageCheckInOut)).Get("/checkout/checkedout", s.handleSearchNotCheckedIn)
		r.With(s.authMiddleware, s.requirePage(auth.PageCheckInOut)).Get("/checkout/checkedin", s.handleSearchInHouse)

		r.Get("/rooms", s.handleListRooms)
		r.With(s.authMiddleware, s.requirePage(auth.PageRooms)).Get("/rooms/with-reservations", s.handleRoomsWithReservations)
		r.With(s.authMiddleware, s.requirePage(auth.PageHousekeeping)).Put("/rooms/update-status", s.handleUpdateRoomStatus)
		r.With(s.authMiddleware, s.requirePage(auth.PageRoomTypes)).Post("/rooms/addroom", s.handleAddRoom)
		r.With(s.authMiddleware, s.requirePage(auth.PageRoomTypes)).Delete("/rooms/delete", s.handleDeleteRoom)

		r.Get("/roomtypes", s.handleListRoomTypes)
		r.With(s.authMiddleware, s.requirePage(auth.PageRoomTypes)).Post("/roomtypes", s.handleCreateRoomType)
		r.With(s.authMiddleware, s.requirePage(auth.PageRoomTypes)).Put("/roomtypes", s.handleUpdateRoomType)
		r.With(s.authMiddleware, s.requirePage(auth.PageRoomTypes)).Delete("/roomtypes/{code}", s.handleDeleteRoomType)

		r.Route("/reservations", func(r chi.Router) {
			r.Use(s.authMiddleware, s.requirePage(auth.PageReservations))
			r.Get("/allReservations", s.handleListReservations)
			r.Post("/setReservation", s.handleCreateReservation)
			r.Put("/updateReservation/{id}", s.handleUpdateReservation)
			r.Delete("/deleteReservation/{id}", s.handleDeleteReservation)
		})

		r.Route("/protected/guests", func(r chi.Router) {
			r.Use(s.authMiddleware, s.requirePage(auth.PageGuests))
			r.Get("/", s.handleListGuests)
			r.Post("/newguest", s.handleCreateGuest)
			r.Put("/edit", s.handleUpdateGuest)
			r.Delete("/delete", s.handleDeleteGuest)
		})
	})

	return r
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := auth.ParseToken(s.cfg.AccessTokenSecret, token)
		if err != nil {
			writeError(w, http.StatusForbidden, "Invalid or expired token.")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePage gates a route on the role capability table. Every role check
// in the API goes through here; handlers never inspect the role themselves.
func (s *Server) requirePage(page auth.Page) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFromContext(r.Context())
			if claims == nil || !auth.Allowed(claims.Role, page) {
				writeError(w, http.StatusForbidden, "You do not have permission to access this resource.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type claimsKey struct{}

func claimsFromContext(ctx context.Context) *auth.Claims {
	value := ctx.Value(claimsKey{})
	claims, _ := value.(*auth.Claims)
	return claims
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
