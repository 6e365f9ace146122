package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
)

func (s *Store) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT reservation_id, room_number, guest_id,
		       reserved_check_in_date, reserved_check_out_date,
		       number_of_guests, is_checkin, checkin_date_time, checkout_date_time
		FROM reservations
		ORDER BY reservation_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: list reservations: %w", err)
	}
	defer rows.Close()

	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(
			&r.ReservationID, &r.RoomNumber, &r.GuestID,
			&r.ReservedCheckIn, &r.ReservedCheckOut,
			&r.NumberOfGuests, &r.IsCheckin, &r.CheckinDateTime, &r.CheckoutDateTime,
		); err != nil {
			return nil, fmt.Errorf("repository: scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

func (s *Store) GetReservation(ctx context.Context, id int64) (model.Reservation, error) {
	var r model.Reservation
	err := s.pool.QueryRow(ctx, `
		SELECT reservation_id, room_number, guest_id,
		       reserved_check_in_date, reserved_check_out_date,
		       number_of_guests, is_checkin, checkin_date_time, checkout_date_time
		FROM reservations
		WHERE reservation_id = $1
	`, id).Scan(
		&r.ReservationID, &r.RoomNumber, &r.GuestID,
		&r.ReservedCheckIn, &r.ReservedCheckOut,
		&r.NumberOfGuests, &r.IsCheckin, &r.CheckinDateTime, &r.CheckoutDateTime,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, fmt.Errorf("repository: get reservation: %w", err)
	}
	return r, nil
}

func (s *Store) CreateReservation(ctx context.Context, r model.Reservation) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO reservations (room_number, guest_id, reserved_check_in_date,
		                          reserved_check_out_date, number_of_guests)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING reservation_id
	`, r.RoomNumber, r.GuestID, r.ReservedCheckIn, r.ReservedCheckOut, r.NumberOfGuests).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			switch pgErr.ConstraintName {
			case "reservations_guest_id_fkey":
				return 0, ErrGuestNotFound
			default:
				return 0, ErrRoomNotFound
			}
		}
		return 0, fmt.Errorf("repository: create reservation: %w", err)
	}
	return id, nil
}

// UpdateReservation edits the booked window while the stay is still in the
// booked state. A checked-in reservation is immutable through this path.
func (s *Store) UpdateReservation(ctx context.Context, r model.Reservation) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE reservations
		SET room_number = $1, guest_id = $2, reserved_check_in_date = $3,
		    reserved_check_out_date = $4, number_of_guests = $5
		WHERE reservation_id = $6 AND is_checkin = false
	`, r.RoomNumber, r.GuestID, r.ReservedCheckIn, r.ReservedCheckOut, r.NumberOfGuests, r.ReservationID)
	if err != nil {
		return fmt.Errorf("repository: update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := s.GetReservation(ctx, r.ReservationID); getErr == nil {
			return ErrReservationCheckedIn
		}
		return ErrReservationNotFound
	}
	return nil
}

func (s *Store) DeleteReservation(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM reservations WHERE reservation_id = $1 AND is_checkin = false
	`, id)
	if err != nil {
		return fmt.Errorf("repository: delete reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := s.GetReservation(ctx, id); getErr == nil {
			return ErrReservationCheckedIn
		}
		return ErrReservationNotFound
	}
	return nil
}
