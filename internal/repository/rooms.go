package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
)

func (s *Store) ListRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT room_number, room_type_code, status
		FROM rooms
		ORDER BY room_number
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]model.Room, 0)
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.RoomNumber, &r.RoomTypeCode, &r.Status); err != nil {
			return nil, fmt.Errorf("repository: scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// ListRoomDetails joins each room with its type and the next reservation
// whose window has not yet passed, for the room lookup board.
func (s *Store) ListRoomDetails(ctx context.Context) ([]model.RoomDetail, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.room_number, r.room_type_code, r.status,
		       rt.number_of_beds, rt.nightly_rate, rt.is_suite, rt.description,
		       res.reserved_check_in_date, res.reserved_check_out_date
		FROM rooms r
		LEFT JOIN room_types rt ON rt.room_type_code = r.room_type_code
		LEFT JOIN LATERAL (
			SELECT reserved_check_in_date, reserved_check_out_date
			FROM reservations
			WHERE room_number = r.room_number
			  AND reserved_check_out_date >= CURRENT_DATE
			ORDER BY reserved_check_in_date
			LIMIT 1
		) res ON true
		ORDER BY r.room_number
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: list room details: %w", err)
	}
	defer rows.Close()

	details := make([]model.RoomDetail, 0)
	for rows.Next() {
		var d model.RoomDetail
		if err := rows.Scan(
			&d.RoomNumber, &d.RoomTypeCode, &d.Status,
			&d.NumberOfBeds, &d.NightlyRate, &d.IsSuite, &d.Description,
			&d.ReservedCheckIn, &d.ReservedCheckOut,
		); err != nil {
			return nil, fmt.Errorf("repository: scan room detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (s *Store) CreateRoom(ctx context.Context, room model.Room) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO rooms (room_number, room_type_code, status)
		VALUES ($1, $2, $3)
	`, room.RoomNumber, room.RoomTypeCode, room.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateRoom
			case "23503":
				return ErrRoomTypeNotFound
			}
		}
		return fmt.Errorf("repository: create room: %w", err)
	}
	return nil
}

func (s *Store) UpdateRoomStatus(ctx context.Context, roomNumber int, status string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE rooms SET status = $1 WHERE room_number = $2
	`, status, roomNumber)
	if err != nil {
		return fmt.Errorf("repository: update room status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (s *Store) DeleteRoom(ctx context.Context, roomNumber int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM rooms WHERE room_number = $1`, roomNumber)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrRoomInUse
		}
		return fmt.Errorf("repository: delete room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (s *Store) ListRoomTypes(ctx context.Context) ([]model.RoomType, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT room_type_code, number_of_beds, nightly_rate, is_suite, description
		FROM room_types
		ORDER BY room_type_code
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: list room types: %w", err)
	}
	defer rows.Close()

	types := make([]model.RoomType, 0)
	for rows.Next() {
		var rt model.RoomType
		if err := rows.Scan(&rt.Code, &rt.NumberOfBeds, &rt.NightlyRate, &rt.IsSuite, &rt.Description); err != nil {
			return nil, fmt.Errorf("repository: scan room type: %w", err)
		}
		types = append(types, rt)
	}
	return types, rows.Err()
}

func (s *Store) CreateRoomType(ctx context.Context, rt model.RoomType) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO room_types (room_type_code, number_of_beds, nightly_rate, is_suite, description)
		VALUES ($1, $2, $3, $4, $5)
	`, rt.Code, rt.NumberOfBeds, rt.NightlyRate, rt.IsSuite, rt.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateRoomType
		}
		return fmt.Errorf("repository: create room type: %w", err)
	}
	return nil
}

func (s *Store) UpdateRoomType(ctx context.Context, rt model.RoomType) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE room_types
		SET number_of_beds = $1, nightly_rate = $2, is_suite = $3, description = $4
		WHERE room_type_code = $5
	`, rt.NumberOfBeds, rt.NightlyRate, rt.IsSuite, rt.Description, rt.Code)
	if err != nil {
		return fmt.Errorf("repository: update room type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}

func (s *Store) DeleteRoomType(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM room_types WHERE room_type_code = $1`, code)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrRoomInUse
		}
		return fmt.Errorf("repository: delete room type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}
