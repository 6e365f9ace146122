package model

import "time"

// Room status values. Check-in forces occupied and check-out forces
// maintenance; housekeeping hand-sets rooms back to available through the
// room-status route. Room status is a cached projection, not the source of
// truth about reservations.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

func ValidRoomStatus(status string) bool {
	switch status {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	default:
		return false
	}
}

type Guest struct {
	GuestID   int64
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

type RoomType struct {
	Code         string
	NumberOfBeds int
	NightlyRate  float64
	IsSuite      bool
	Description  string
}

type Room struct {
	RoomNumber   int
	RoomTypeCode string
	Status       string
}

// RoomDetail is a room joined with its type and the next reservation that
// still overlaps or follows today, for the lookup board.
type RoomDetail struct {
	Room
	NumberOfBeds     *int
	NightlyRate      *float64
	IsSuite          *bool
	Description      *string
	ReservedCheckIn  *time.Time
	ReservedCheckOut *time.Time
}

// Reservation check-in state: checkin_date_time is non-nil exactly when
// IsCheckin is true, and checkout_date_time can only be non-nil after that.
// Both are written once; neither is ever cleared.
type Reservation struct {
	ReservationID    int64
	RoomNumber       int
	GuestID          int64
	ReservedCheckIn  time.Time
	ReservedCheckOut time.Time
	NumberOfGuests   int
	IsCheckin        bool
	CheckinDateTime  *time.Time
	CheckoutDateTime *time.Time
}

// User is a front-desk staff account. Role is one of 1 (manager),
// 2 (receptionist), 3 (housekeeper).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         int
	CreatedAt    time.Time
}

// RecentStay is a reservation joined with its guest for the recent
// check-in/check-out dashboards.
type RecentStay struct {
	ReservationID    int64
	RoomNumber       int
	CheckinDateTime  time.Time
	CheckoutDateTime *time.Time
	ReservedCheckIn  time.Time
	ReservedCheckOut time.Time
	NumberOfGuests   int
	GuestName        string
	GuestEmail       string
	GuestPhone       string
}

// StayMatch is one row of a front-desk search: a guest left-joined with a
// reservation, so the reservation side may be absent.
type StayMatch struct {
	GuestID          int64
	Name             string
	Email            string
	Phone            string
	ReservationID    *int64
	RoomNumber       *int
	ReservedCheckIn  *time.Time
	ReservedCheckOut *time.Time
	CheckinDateTime  *time.Time
	CheckoutDateTime *time.Time
	IsCheckin        *bool
}
