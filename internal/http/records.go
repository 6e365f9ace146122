package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/repository"
)

type guestResponse struct {
	GuestID   int64  `json:"guestId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phoneNumber"`
	Email     string `json:"email"`
}

func (s *Server) handleListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := s.store.ListGuests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch guests")
		return
	}

	resp := make([]guestResponse, 0, len(guests))
	for _, g := range guests {
		resp = append(resp, guestResponse{
			GuestID:   g.GuestID,
			FirstName: g.FirstName,
			LastName:  g.LastName,
			Phone:     g.Phone,
			Email:     g.Email,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type guestRequest struct {
	GuestID   int64  `json:"guestId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phoneNumber"`
	Email     string `json:"email"`
}

func (s *Server) handleCreateGuest(w http.ResponseWriter, r *http.Request) {
	var req guestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	id, err := s.store.CreateGuest(r.Context(), model.Guest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "A guest with this email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create guest")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"guestId": id})
}

func (s *Server) handleUpdateGuest(w http.ResponseWriter, r *http.Request) {
	var req guestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GuestID == 0 {
		writeError(w, http.StatusBadRequest, "Guest ID is required")
		return
	}

	err := s.store.UpdateGuest(r.Context(), model.Guest{
		GuestID:   req.GuestID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     strings.TrimSpace(strings.ToLower(req.Email)),
	})
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			writeError(w, http.StatusNotFound, "Guest not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update guest")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Guest updated"})
}

func (s *Server) handleDeleteGuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GuestID int64 `json:"guestId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GuestID == 0 {
		writeError(w, http.StatusBadRequest, "Guest ID is required")
		return
	}

	if err := s.store.DeleteGuest(r.Context(), req.GuestID); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			writeError(w, http.StatusNotFound, "Guest not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete guest")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Guest deleted"})
}

type roomResponse struct {
	RoomNumber   int    `json:"roomNumber"`
	RoomTypeCode string `json:"roomTypeCode"`
	Status       string `json:"status"`
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.store.ListRooms(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}

	resp := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, roomResponse{
			RoomNumber:   room.RoomNumber,
			RoomTypeCode: room.RoomTypeCode,
			Status:       room.Status,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type roomDetailResponse struct {
	RoomNumber       int      `json:"roomNumber"`
	RoomTypeCode     string   `json:"roomTypeCode"`
	Status           string   `json:"status"`
	NumberOfBeds     *int     `json:"numberOfBeds"`
	NightlyRate      *float64 `json:"nightlyRate"`
	IsSuite          *bool    `json:"isSuite"`
	Description      *string  `json:"description"`
	ReservedCheckIn  *string  `json:"reservedCheckInDate"`
	ReservedCheckOut *string  `json:"reservedCheckOutDate"`
}

// handleRoomsWithReservations reports an effective status: a room whose next
// reservation window covers today shows as occupied even if its stored
// status lags behind.
func (s *Server) handleRoomsWithReservations(w http.ResponseWriter, r *http.Request) {
	details, err := s.store.ListRoomDetails(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	resp := make([]roomDetailResponse, 0, len(details))
	for _, d := range details {
		status := d.Status
		if d.ReservedCheckIn != nil && d.ReservedCheckOut != nil &&
			!today.Before(*d.ReservedCheckIn) && today.Before(*d.ReservedCheckOut) {
			status = model.RoomOccupied
		}
		resp = append(resp, roomDetailResponse{
			RoomNumber:       d.RoomNumber,
			RoomTypeCode:     d.RoomTypeCode,
			Status:           status,
			NumberOfBeds:     d.NumberOfBeds,
			NightlyRate:      d.NightlyRate,
			IsSuite:          d.IsSuite,
			Description:      d.Description,
			ReservedCheckIn:  formatDatePtr(d.ReservedCheckIn),
			ReservedCheckOut: formatDatePtr(d.ReservedCheckOut),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format("2006-01-02")
	return &formatted
}

func (s *Server) handleUpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomNumber int    `json:"roomNumber"`
		Status     string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RoomNumber == 0 {
		writeError(w, http.StatusBadRequest, "Room number is required")
		return
	}
	if !model.ValidRoomStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "Invalid room status")
		return
	}

	if err := s.store.UpdateRoomStatus(r.Context(), req.RoomNumber, req.Status); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, "Room not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update room status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Room status updated"})
}

func (s *Server) handleAddRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomNumber   int    `json:"roomNumber"`
		RoomTypeCode string `json:"roomTypeCode"`
		Status       string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RoomNumber == 0 || req.RoomTypeCode == "" {
		writeError(w, http.StatusBadRequest, "Room number and room type are required")
		return
	}
	if req.Status == "" {
		req.Status = model.RoomAvailable
	}
	if !model.ValidRoomStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "Invalid room status")
		return
	}

	err := s.store.CreateRoom(r.Context(), model.Room{
		RoomNumber:   req.RoomNumber,
		RoomTypeCode: req.RoomTypeCode,
		Status:       req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRoom):
			writeError(w, http.StatusConflict, "This room already exists")
		case errors.Is(err, repository.ErrRoomTypeNotFound):
			writeError(w, http.StatusBadRequest, "Unknown room type")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create room")
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Room created"})
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomNumber int `json:"roomNumber"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RoomNumber == 0 {
		writeError(w, http.StatusBadRequest, "Room number is required")
		return
	}

	if err := s.store.DeleteRoom(r.Context(), req.RoomNumber); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "Room not found")
		case errors.Is(err, repository.ErrRoomInUse):
			writeError(w, http.StatusConflict, "This room still has reservations")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to delete room")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Room deleted"})
}

type roomTypeRequest struct {
	Code         string  `json:"roomTypeCode"`
	NumberOfBeds int     `json:"numberOfBeds"`
	NightlyRate  float64 `json:"nightlyRate"`
	IsSuite      bool    `json:"isSuite"`
	Description  string  `json:"description"`
}

func (s *Server) handleListRoomTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.store.ListRoomTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch room types")
		return
	}

	resp := make([]roomTypeRequest, 0, len(types))
	for _, rt := range types {
		resp = append(resp, roomTypeRequest{
			Code:         rt.Code,
			NumberOfBeds: rt.NumberOfBeds,
			NightlyRate:  rt.NightlyRate,
			IsSuite:      rt.IsSuite,
			Description:  rt.Description,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateRoomType(w http.ResponseWriter, r *http.Request) {
	var req roomTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "Room type code is required")
		return
	}

	err := s.store.CreateRoomType(r.Context(), model.RoomType{
		Code:         req.Code,
		NumberOfBeds: req.NumberOfBeds,
		NightlyRate:  req.NightlyRate,
		IsSuite:      req.IsSuite,
		Description:  req.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRoomType) {
			writeError(w, http.StatusConflict, "This room type already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create room type")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Room type created"})
}

func (s *Server) handleUpdateRoomType(w http.ResponseWriter, r *http.Request) {
	var req roomTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "Room type code is required")
		return
	}

	err := s.store.UpdateRoomType(r.Context(), model.RoomType{
		Code:         req.Code,
		NumberOfBeds: req.NumberOfBeds,
		NightlyRate:  req.NightlyRate,
		IsSuite:      req.IsSuite,
		Description:  req.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRoomTypeNotFound) {
			writeError(w, http.StatusNotFound, "Room type not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update room type")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Room type updated"})
}

func (s *Server) handleDeleteRoomType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Room type code is required")
		return
	}

	if err := s.store.DeleteRoomType(r.Context(), code); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomTypeNotFound):
			writeError(w, http.StatusNotFound, "Room type not found")
		case errors.Is(err, repository.ErrRoomInUse):
			writeError(w, http.StatusConflict, "This room type is still assigned to rooms")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to delete room type")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Room type deleted"})
}

type reservationRequest struct {
	RoomNumber       int    `json:"roomNumber"`
	GuestID          int64  `json:"guestId"`
	ReservedCheckIn  string `json:"reservedCheckInDate"`
	ReservedCheckOut string `json:"reservedCheckOutDate"`
	NumberOfGuests   int    `json:"numberOfGuests"`
}

type reservationResponse struct {
	ReservationID    int64   `json:"reservationId"`
	RoomNumber       int     `json:"roomNumber"`
	GuestID          int64   `json:"guestId"`
	ReservedCheckIn  string  `json:"reservedCheckInDate"`
	ReservedCheckOut string  `json:"reservedCheckOutDate"`
	NumberOfGuests   int     `json:"numberOfGuests"`
	IsCheckin        bool    `json:"isCheckin"`
	CheckinDateTime  *string `json:"checkinDateTime"`
	CheckoutDateTime *string `json:"checkoutDateTime"`
}

func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := s.store.ListReservations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}

	resp := make([]reservationResponse, 0, len(reservations))
	for _, res := range reservations {
		resp = append(resp, reservationResponse{
			ReservationID:    res.ReservationID,
			RoomNumber:       res.RoomNumber,
			GuestID:          res.GuestID,
			ReservedCheckIn:  res.ReservedCheckIn.UTC().Format("2006-01-02"),
			ReservedCheckOut: res.ReservedCheckOut.UTC().Format("2006-01-02"),
			NumberOfGuests:   res.NumberOfGuests,
			IsCheckin:        res.IsCheckin,
			CheckinDateTime:  formatTimePtr(res.CheckinDateTime),
			CheckoutDateTime: formatTimePtr(res.CheckoutDateTime),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reservation, ok := parseReservation(w, req)
	if !ok {
		return
	}

	id, err := s.store.CreateReservation(r.Context(), reservation)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGuestNotFound):
			writeError(w, http.StatusBadRequest, "Unknown guest")
		case errors.Is(err, repository.ErrRoomNotFound):
			writeError(w, http.StatusBadRequest, "Unknown room")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create reservation")
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"reservationId": id})
}

func (s *Server) handleUpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "Reservation ID is required")
		return
	}

	var req reservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reservation, ok := parseReservation(w, req)
	if !ok {
		return
	}
	reservation.ReservationID = id

	if err := s.store.UpdateReservation(r.Context(), reservation); err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			writeError(w, http.StatusNotFound, "Reservation not found")
		case errors.Is(err, repository.ErrReservationCheckedIn):
			writeError(w, http.StatusConflict, "A checked-in reservation cannot be modified")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update reservation")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation updated"})
}

func (s *Server) handleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "Reservation ID is required")
		return
	}

	if err := s.store.DeleteReservation(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			writeError(w, http.StatusNotFound, "Reservation not found")
		case errors.Is(err, repository.ErrReservationCheckedIn):
			writeError(w, http.StatusConflict, "A checked-in reservation cannot be deleted")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to delete reservation")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation deleted"})
}

func parseReservation(w http.ResponseWriter, req reservationRequest) (model.Reservation, bool) {
	if req.RoomNumber == 0 || req.GuestID == 0 {
		writeError(w, http.StatusBadRequest, "Room number and guest ID are required")
		return model.Reservation{}, false
	}
	checkIn, err := time.Parse("2006-01-02", req.ReservedCheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reserved check-in date")
		return model.Reservation{}, false
	}
	checkOut, err := time.Parse("2006-01-02", req.ReservedCheckOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reserved check-out date")
		return model.Reservation{}, false
	}
	if !checkOut.After(checkIn) {
		writeError(w, http.StatusBadRequest, "Check-out date must be after check-in date")
		return model.Reservation{}, false
	}
	if req.NumberOfGuests <= 0 {
		writeError(w, http.StatusBadRequest, "Number of guests must be at least 1")
		return model.Reservation{}, false
	}
	return model.Reservation{
		RoomNumber:       req.RoomNumber,
		GuestID:          req.GuestID,
		ReservedCheckIn:  checkIn,
		ReservedCheckOut: checkOut,
		NumberOfGuests:   req.NumberOfGuests,
	}, true
}
