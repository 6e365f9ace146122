package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/desk"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/repository"
)

type stayActionRequest struct {
	ReservationID int64 `json:"reservationId"`
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req stayActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := s.desk.CheckIn(r.Context(), req.ReservationID)
	if err != nil {
		var dup *desk.AlreadyCheckedInError
		switch {
		case errors.Is(err, desk.ErrMissingReservationID):
			writeError(w, http.StatusBadRequest, "Reservation ID is required")
		case errors.As(err, &dup):
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":           "This reservation has already been checked in",
				"checkinDateTime": dup.Display,
			})
		case errors.Is(err, repository.ErrReservationNotFound):
			writeError(w, http.StatusNotFound, "Reservation not found")
		case errors.Is(err, repository.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "Room not found for this reservation")
		default:
			writeError(w, http.StatusInternalServerError, "Check-in failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "Check-in successful",
		"reservationId":   receipt.ReservationID,
		"roomNumber":      receipt.RoomNumber,
		"checkinDateTime": receipt.Display,
	})
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	var req stayActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := s.desk.CheckOut(r.Context(), req.ReservationID)
	if err != nil {
		switch {
		case errors.Is(err, desk.ErrMissingReservationID):
			writeError(w, http.StatusBadRequest, "Reservation ID is required")
		case errors.Is(err, repository.ErrNotCheckedIn):
			writeError(w, http.StatusBadRequest, "This reservation has not been checked in yet")
		case errors.Is(err, repository.ErrReservationNotFound):
			writeError(w, http.StatusNotFound, "Reservation not found")
		case errors.Is(err, repository.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "Room not found for this reservation")
		default:
			writeError(w, http.StatusInternalServerError, "Check-out failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"message":          "Check-out successful",
		"reservationId":    receipt.ReservationID,
		"roomNumber":       receipt.RoomNumber,
		"checkoutDateTime": receipt.Display,
	})
}

type recentStayResponse struct {
	ReservationID        int64  `json:"reservationId"`
	RoomNumber           int    `json:"roomNumber"`
	CheckInTime          string `json:"checkInTime"`
	CheckOutTime         string `json:"checkOutTime,omitempty"`
	ReservedCheckInTime  string `json:"reservedCheckInTime"`
	ReservedCheckOutTime string `json:"reservedCheckOutTime"`
	NumberOfGuests       int    `json:"numberOfGuests"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phoneNumber"`
}

func (s *Server) handleRecentCheckIns(w http.ResponseWriter, r *http.Request) {
	stays, err := s.desk.RecentCheckIns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch recent check-ins")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    mapRecentStays(stays),
	})
}

func (s *Server) handleRecentCheckOuts(w http.ResponseWriter, r *http.Request) {
	stays, err := s.desk.RecentCheckOuts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch recent check-outs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    mapRecentStays(stays),
	})
}

func mapRecentStays(stays []model.RecentStay) []recentStayResponse {
	resp := make([]recentStayResponse, 0, len(stays))
	for _, st := range stays {
		entry := recentStayResponse{
			ReservationID:        st.ReservationID,
			RoomNumber:           st.RoomNumber,
			CheckInTime:          st.CheckinDateTime.UTC().Format(time.RFC3339),
			ReservedCheckInTime:  st.ReservedCheckIn.UTC().Format(time.RFC3339),
			ReservedCheckOutTime: st.ReservedCheckOut.UTC().Format(time.RFC3339),
			NumberOfGuests:       st.NumberOfGuests,
			Name:                 st.GuestName,
			Email:                st.GuestEmail,
			PhoneNumber:          st.GuestPhone,
		}
		if st.CheckoutDateTime != nil {
			entry.CheckOutTime = st.CheckoutDateTime.UTC().Format(time.RFC3339)
		}
		resp = append(resp, entry)
	}
	return resp
}

type stayMatchResponse struct {
	GuestID              int64   `json:"guestId"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	PhoneNumber          string  `json:"phoneNumber"`
	ReservationID        *int64  `json:"reservationId"`
	RoomNumber           *int    `json:"roomNumber"`
	ReservedCheckInTime  *string `json:"reservedCheckInTime"`
	ReservedCheckOutTime *string `json:"reservedCheckOutTime"`
	CheckInTime          *string `json:"checkInTime"`
	CheckOutTime         *string `json:"checkOutTime"`
}

func (s *Server) handleSearchNotCheckedIn(w http.ResponseWriter, r *http.Request) {
	s.handleStaySearch(w, r, repository.ScopeNotCheckedIn)
}

func (s *Server) handleSearchInHouse(w http.ResponseWriter, r *http.Request) {
	s.handleStaySearch(w, r, repository.ScopeInHouse)
}

func (s *Server) handleStaySearch(w http.ResponseWriter, r *http.Request, scope repository.SearchScope) {
	query := r.URL.Query().Get("query")

	matches, err := s.desk.Search(r.Context(), query, scope)
	if err != nil {
		if errors.Is(err, desk.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "Search query is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	resp := make([]stayMatchResponse, 0, len(matches))
	for _, m := range matches {
		resp = append(resp, stayMatchResponse{
			GuestID:              m.GuestID,
			Name:                 m.Name,
			Email:                m.Email,
			PhoneNumber:          m.Phone,
			ReservationID:        m.ReservationID,
			RoomNumber:           m.RoomNumber,
			ReservedCheckInTime:  formatTimePtr(m.ReservedCheckIn),
			ReservedCheckOutTime: formatTimePtr(m.ReservedCheckOut),
			CheckInTime:          formatTimePtr(m.CheckinDateTime),
			CheckOutTime:         formatTimePtr(m.CheckoutDateTime),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    resp,
	})
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
