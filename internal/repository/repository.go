package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrReservationNotFound is returned when no reservation row exists for
	// the provided identifier, including when it vanishes between the
	// precondition read and the update.
	ErrReservationNotFound = errors.New("repository: reservation not found")
	// ErrRoomNotFound is returned when a room row is absent, including the
	// check-in case where the reservation's room was deleted underneath it.
	ErrRoomNotFound = errors.New("repository: room not found")
	// ErrGuestNotFound is returned by guest mutations that affect zero rows.
	ErrGuestNotFound = errors.New("repository: guest not found")
	// ErrRoomTypeNotFound is returned by room-type mutations that affect zero rows.
	ErrRoomTypeNotFound = errors.New("repository: room type not found")
	// ErrNotCheckedIn rejects a check-out on a reservation that never checked in.
	ErrNotCheckedIn = errors.New("repository: reservation not checked in")
	// ErrReservationCheckedIn guards reservation edits and deletes: once a
	// guest is in the building the booking row is append-only.
	ErrReservationCheckedIn = errors.New("repository: reservation already checked in")
	// ErrRoomInUse prevents deleting a room that still has reservations.
	ErrRoomInUse = errors.New("repository: room has reservations")
	// ErrDuplicateEmail is returned when a unique email constraint trips.
	ErrDuplicateEmail = errors.New("repository: email already registered")
	// ErrDuplicateRoomType is returned when a room type code already exists.
	ErrDuplicateRoomType = errors.New("repository: room type already exists")
	// ErrDuplicateRoom is returned when a room number already exists.
	ErrDuplicateRoom = errors.New("repository: room already exists")
)

// AlreadyCheckedInError rejects a second check-in and carries the moment the
// first one happened, so the caller can show when it was.
type AlreadyCheckedInError struct {
	At time.Time
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("repository: reservation already checked in at %s", e.At.Format(time.RFC3339))
}

// SearchScope narrows a front-desk search to one side of the check-in
// workflow.
type SearchScope int

const (
	// ScopeNotCheckedIn matches guests whose reservation has not been
	// checked in, or who have no reservation at all.
	ScopeNotCheckedIn SearchScope = iota
	// ScopeInHouse matches guests who are checked in and not yet checked out.
	ScopeInHouse
)

// Store wraps the connection pool with the application's queries. Every
// mutation reports absence through affected-row counts; that is the only
// concurrency detection this service relies on.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
