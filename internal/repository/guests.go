package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
)

func (s *Store) ListGuests(ctx context.Context) ([]model.Guest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT guest_id, first_name, last_name, phone, email
		FROM guests
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: list guests: %w", err)
	}
	defer rows.Close()

	guests := make([]model.Guest, 0)
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(&g.GuestID, &g.FirstName, &g.LastName, &g.Phone, &g.Email); err != nil {
			return nil, fmt.Errorf("repository: scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (s *Store) CreateGuest(ctx context.Context, guest model.Guest) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO guests (first_name, last_name, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING guest_id
	`, guest.FirstName, guest.LastName, guest.Phone, guest.Email).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("repository: create guest: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateGuest(ctx context.Context, guest model.Guest) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE guests
		SET first_name = $1, last_name = $2, phone = $3, email = $4
		WHERE guest_id = $5
	`, guest.FirstName, guest.LastName, guest.Phone, guest.Email, guest.GuestID)
	if err != nil {
		return fmt.Errorf("repository: update guest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGuestNotFound
	}
	return nil
}

func (s *Store) DeleteGuest(ctx context.Context, guestID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM guests WHERE guest_id = $1`, guestID)
	if err != nil {
		return fmt.Errorf("repository: delete guest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGuestNotFound
	}
	return nil
}
