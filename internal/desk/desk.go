// Package desk implements the front-desk check-in and check-out workflow on
// top of the repository, adding input validation and display-zone rendering
// of the stay timestamps.
package desk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/clock"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/repository"
)

var (
	// ErrMissingReservationID rejects a check-in or check-out request with no
	// reservation id.
	ErrMissingReservationID = errors.New("desk: reservation id is required")
	// ErrEmptyQuery rejects a search with no search text.
	ErrEmptyQuery = errors.New("desk: search query is required")
)

// AlreadyCheckedInError reports a repeated check-in together with the
// display-zone rendering of the first one.
type AlreadyCheckedInError struct {
	At      time.Time
	Display string
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("desk: reservation already checked in at %s", e.Display)
}

// Store is the persistence surface the desk workflow needs.
type Store interface {
	CheckInReservation(ctx context.Context, reservationID int64, at time.Time) (int, error)
	CheckOutReservation(ctx context.Context, reservationID int64, at time.Time) (int, error)
	RecentCheckIns(ctx context.Context, limit int) ([]model.RecentStay, error)
	RecentCheckOuts(ctx context.Context, limit int) ([]model.RecentStay, error)
	SearchStays(ctx context.Context, query string, scope repository.SearchScope) ([]model.StayMatch, error)
}

// StayReceipt is the outcome of a check-in or check-out, with the timestamp
// already rendered in the hotel's display zone.
type StayReceipt struct {
	ReservationID int64
	RoomNumber    int
	At            time.Time
	Display       string
}

type Service struct {
	store  Store
	format *clock.Formatter
	now    func() time.Time
}

func NewService(store Store, format *clock.Formatter) *Service {
	return &Service{store: store, format: format, now: clock.Now}
}

// CheckIn stamps the reservation with the current instant and returns the
// receipt. A reservation that is already in house comes back as
// AlreadyCheckedInError with the original arrival time rendered for display.
func (s *Service) CheckIn(ctx context.Context, reservationID int64) (StayReceipt, error) {
	if reservationID == 0 {
		return StayReceipt{}, ErrMissingReservationID
	}
	at := s.now()
	roomNumber, err := s.store.CheckInReservation(ctx, reservationID, at)
	if err != nil {
		var dup *repository.AlreadyCheckedInError
		if errors.As(err, &dup) {
			return StayReceipt{}, &AlreadyCheckedInError{At: dup.At, Display: s.format.Display(dup.At)}
		}
		return StayReceipt{}, err
	}
	return StayReceipt{
		ReservationID: reservationID,
		RoomNumber:    roomNumber,
		At:            at,
		Display:       s.format.Display(at),
	}, nil
}

// CheckOut stamps the departure and returns the receipt. Repeated check-outs
// are allowed and simply move the departure time forward.
func (s *Service) CheckOut(ctx context.Context, reservationID int64) (StayReceipt, error) {
	if reservationID == 0 {
		return StayReceipt{}, ErrMissingReservationID
	}
	at := s.now()
	roomNumber, err := s.store.CheckOutReservation(ctx, reservationID, at)
	if err != nil {
		return StayReceipt{}, err
	}
	return StayReceipt{
		ReservationID: reservationID,
		RoomNumber:    roomNumber,
		At:            at,
		Display:       s.format.Display(at),
	}, nil
}

const recentLimit = 10

// RecentCheckIns returns the latest arrivals, newest first.
func (s *Service) RecentCheckIns(ctx context.Context) ([]model.RecentStay, error) {
	return s.store.RecentCheckIns(ctx, recentLimit)
}

// RecentCheckOuts returns the latest departures, newest first.
func (s *Service) RecentCheckOuts(ctx context.Context) ([]model.RecentStay, error) {
	return s.store.RecentCheckOuts(ctx, recentLimit)
}

// Search finds guests by name, email, phone, room or reservation id within
// the given scope.
func (s *Service) Search(ctx context.Context, query string, scope repository.SearchScope) ([]model.StayMatch, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.store.SearchStays(ctx, query, scope)
}

// DisplayTime renders an instant in the hotel's display zone.
func (s *Service) DisplayTime(t time.Time) string {
	return s.format.Display(t)
}

// DisplayTimePtr renders a nullable instant; nil becomes "".
func (s *Service) DisplayTimePtr(t *time.Time) string {
	return s.format.DisplayOrEmpty(t)
}
