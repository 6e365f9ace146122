package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
)

// CheckInReservation moves a booked reservation into the checked-in state and
// marks its room occupied, all in one transaction. The reservation row is
// locked first so two clerks racing on the same reservation serialize; the
// loser sees AlreadyCheckedInError carrying the winner's timestamp.
func (s *Store) CheckInReservation(ctx context.Context, reservationID int64, at time.Time) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository: begin check-in: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		isCheckin  bool
		roomNumber int
		checkedAt  *time.Time
	)
	err = tx.QueryRow(ctx, `
		SELECT is_checkin, room_number, checkin_date_time
		FROM reservations
		WHERE reservation_id = $1
		FOR UPDATE
	`, reservationID).Scan(&isCheckin, &roomNumber, &checkedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrReservationNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("repository: lock reservation: %w", err)
	}
	if isCheckin {
		e := &AlreadyCheckedInError{}
		if checkedAt != nil {
			e.At = *checkedAt
		}
		return 0, e
	}

	tag, err := tx.Exec(ctx, `
		UPDATE reservations
		SET is_checkin = true, checkin_date_time = $2
		WHERE reservation_id = $1
	`, reservationID, at)
	if err != nil {
		return 0, fmt.Errorf("repository: mark checked in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrReservationNotFound
	}

	tag, err = tx.Exec(ctx, `
		UPDATE rooms SET status = $2 WHERE room_number = $1
	`, roomNumber, model.RoomOccupied)
	if err != nil {
		return 0, fmt.Errorf("repository: mark room occupied: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrRoomNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repository: commit check-in: %w", err)
	}
	return roomNumber, nil
}

// CheckOutReservation records the departure time and flags the room for
// cleaning. The reservation stays in the checked-in state so the stay history
// keeps both timestamps.
func (s *Store) CheckOutReservation(ctx context.Context, reservationID int64, at time.Time) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository: begin check-out: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		isCheckin  bool
		roomNumber int
	)
	err = tx.QueryRow(ctx, `
		SELECT is_checkin, room_number
		FROM reservations
		WHERE reservation_id = $1
		FOR UPDATE
	`, reservationID).Scan(&isCheckin, &roomNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrReservationNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("repository: lock reservation: %w", err)
	}
	if !isCheckin {
		return 0, ErrNotCheckedIn
	}

	tag, err := tx.Exec(ctx, `
		UPDATE reservations
		SET checkout_date_time = $2
		WHERE reservation_id = $1
	`, reservationID, at)
	if err != nil {
		return 0, fmt.Errorf("repository: mark checked out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrReservationNotFound
	}

	tag, err = tx.Exec(ctx, `
		UPDATE rooms SET status = $2 WHERE room_number = $1
	`, roomNumber, model.RoomMaintenance)
	if err != nil {
		return 0, fmt.Errorf("repository: mark room for cleaning: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrRoomNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repository: commit check-out: %w", err)
	}
	return roomNumber, nil
}

// RecentCheckIns lists the latest arrivals with their guest, newest first.
func (s *Store) RecentCheckIns(ctx context.Context, limit int) ([]model.RecentStay, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.reservation_id, r.room_number, r.checkin_date_time, r.checkout_date_time,
		       r.reserved_check_in_date, r.reserved_check_out_date, r.number_of_guests,
		       g.first_name || ' ' || g.last_name, g.email, g.phone
		FROM reservations r
		JOIN guests g ON g.guest_id = r.guest_id
		WHERE r.is_checkin = true
		ORDER BY r.checkin_date_time DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: recent check-ins: %w", err)
	}
	defer rows.Close()
	return scanRecentStays(rows)
}

// RecentCheckOuts lists the latest departures with their guest, newest first.
func (s *Store) RecentCheckOuts(ctx context.Context, limit int) ([]model.RecentStay, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.reservation_id, r.room_number, r.checkin_date_time, r.checkout_date_time,
		       r.reserved_check_in_date, r.reserved_check_out_date, r.number_of_guests,
		       g.first_name || ' ' || g.last_name, g.email, g.phone
		FROM reservations r
		JOIN guests g ON g.guest_id = r.guest_id
		WHERE r.checkout_date_time IS NOT NULL
		ORDER BY r.checkout_date_time DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: recent check-outs: %w", err)
	}
	defer rows.Close()
	return scanRecentStays(rows)
}

func scanRecentStays(rows pgx.Rows) ([]model.RecentStay, error) {
	stays := make([]model.RecentStay, 0)
	for rows.Next() {
		var st model.RecentStay
		if err := rows.Scan(
			&st.ReservationID, &st.RoomNumber, &st.CheckinDateTime, &st.CheckoutDateTime,
			&st.ReservedCheckIn, &st.ReservedCheckOut, &st.NumberOfGuests,
			&st.GuestName, &st.GuestEmail, &st.GuestPhone,
		); err != nil {
			return nil, fmt.Errorf("repository: scan recent stay: %w", err)
		}
		stays = append(stays, st)
	}
	return stays, rows.Err()
}

// SearchStays matches guests by name, email, phone, room number or
// reservation id. ScopeNotCheckedIn finds arrivals still waiting at the desk
// and also returns guests with no reservation at all; ScopeInHouse only
// returns guests currently in a room.
func (s *Store) SearchStays(ctx context.Context, query string, scope SearchScope) ([]model.StayMatch, error) {
	pattern := "%" + query + "%"

	var scopeFilter string
	switch scope {
	case ScopeInHouse:
		scopeFilter = `r.is_checkin = true AND r.checkout_date_time IS NULL`
	default:
		scopeFilter = `(r.reservation_id IS NULL OR r.is_checkin = false)`
	}

	rows, err := s.pool.Query(ctx, `
		SELECT g.guest_id, g.first_name || ' ' || g.last_name, g.email, g.phone,
		       r.reservation_id, r.room_number,
		       r.reserved_check_in_date, r.reserved_check_out_date,
		       r.checkin_date_time, r.checkout_date_time, r.is_checkin
		FROM guests g
		LEFT JOIN reservations r ON r.guest_id = g.guest_id
		WHERE (g.first_name ILIKE $1
		   OR g.last_name ILIKE $1
		   OR g.first_name || ' ' || g.last_name ILIKE $1
		   OR g.email ILIKE $1
		   OR g.phone ILIKE $1
		   OR r.room_number::text ILIKE $1
		   OR r.reservation_id::text ILIKE $1)
		  AND `+scopeFilter+`
		ORDER BY g.last_name, g.first_name, r.reservation_id
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("repository: search stays: %w", err)
	}
	defer rows.Close()

	matches := make([]model.StayMatch, 0)
	for rows.Next() {
		var m model.StayMatch
		if err := rows.Scan(
			&m.GuestID, &m.Name, &m.Email, &m.Phone,
			&m.ReservationID, &m.RoomNumber,
			&m.ReservedCheckIn, &m.ReservedCheckOut,
			&m.CheckinDateTime, &m.CheckoutDateTime, &m.IsCheckin,
		); err != nil {
			return nil, fmt.Errorf("repository: scan stay match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ReconcileRoomStatus re-asserts occupied for every room whose reservation is
// currently in house. It never touches rooms in maintenance or flips an
// occupied room back, so a manual housekeeping override is only corrected
// while the guest really is inside.
func (s *Store) ReconcileRoomStatus(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE rooms rm
		SET status = $1
		FROM reservations r
		WHERE r.room_number = rm.room_number
		  AND r.is_checkin = true
		  AND r.checkout_date_time IS NULL
		  AND rm.status = $2
	`, model.RoomOccupied, model.RoomAvailable)
	if err != nil {
		return 0, fmt.Errorf("repository: reconcile room status: %w", err)
	}
	return tag.RowsAffected(), nil
}
