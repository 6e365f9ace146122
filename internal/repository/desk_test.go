package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/clock"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/db"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/model"
)

func openTestDB(t *testing.T) *pgxpool.Pool {
	url := os.Getenv("FRONTDESK_TEST_DB")
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		t.Skip("FRONTDESK_TEST_DB or DATABASE_URL not set")
		return nil
	}
	pool, err := db.NewPool(context.Background(), url)
	if err != nil {
		t.Skipf("db unavailable: %v", err)
		return nil
	}
	return pool
}

// seedStay inserts a guest, room type, room and booked reservation and
// returns the reservation id and room number.
func seedStay(t *testing.T, store *Store) (int64, int) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	guestID, err := store.CreateGuest(ctx, model.Guest{
		FirstName: "Repo",
		LastName:  "Test",
		Phone:     "555-0107",
		Email:     fmt.Sprintf("repo-%d@innvoice.test", suffix),
	})
	if err != nil {
		t.Fatalf("CreateGuest: %v", err)
	}
	t.Cleanup(func() { _ = store.DeleteGuest(ctx, guestID) })

	code := fmt.Sprintf("RT%d", suffix%100000)
	if err := store.CreateRoomType(ctx, model.RoomType{Code: code, NumberOfBeds: 2, NightlyRate: 99.5}); err != nil {
		t.Fatalf("CreateRoomType: %v", err)
	}
	t.Cleanup(func() { _ = store.DeleteRoomType(ctx, code) })

	roomNumber := int(suffix%90000 + 10000)
	if err := store.CreateRoom(ctx, model.Room{RoomNumber: roomNumber, RoomTypeCode: code, Status: model.RoomAvailable}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	t.Cleanup(func() { _ = store.DeleteRoom(ctx, roomNumber) })

	reservationID, err := store.CreateReservation(ctx, model.Reservation{
		RoomNumber:       roomNumber,
		GuestID:          guestID,
		ReservedCheckIn:  time.Now().UTC(),
		ReservedCheckOut: time.Now().UTC().Add(48 * time.Hour),
		NumberOfGuests:   2,
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	t.Cleanup(func() {
		_, _ = store.pool.Exec(ctx, `DELETE FROM reservations WHERE reservation_id = $1`, reservationID)
	})

	return reservationID, roomNumber
}

func roomStatus(t *testing.T, store *Store, roomNumber int) string {
	t.Helper()
	var status string
	err := store.pool.QueryRow(context.Background(),
		`SELECT status FROM rooms WHERE room_number = $1`, roomNumber).Scan(&status)
	if err != nil {
		t.Fatalf("room status: %v", err)
	}
	return status
}

func TestCheckInLifecycle(t *testing.T) {
	pool := openTestDB(t)
	if pool == nil {
		return
	}
	defer pool.Close()
	store := NewStore(pool)
	ctx := context.Background()

	reservationID, roomNumber := seedStay(t, store)

	// Check-out before check-in is rejected and nothing moves.
	if _, err := store.CheckOutReservation(ctx, reservationID, clock.Now()); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("premature checkout err = %v, want ErrNotCheckedIn", err)
	}
	if status := roomStatus(t, store, roomNumber); status != model.RoomAvailable {
		t.Fatalf("room status = %q after rejected checkout", status)
	}

	// Check-in stamps the reservation and flips the room to occupied.
	at := clock.Now()
	gotRoom, err := store.CheckInReservation(ctx, reservationID, at)
	if err != nil {
		t.Fatalf("CheckInReservation: %v", err)
	}
	if gotRoom != roomNumber {
		t.Fatalf("room = %d, want %d", gotRoom, roomNumber)
	}
	if status := roomStatus(t, store, roomNumber); status != model.RoomOccupied {
		t.Fatalf("room status = %q, want occupied", status)
	}

	reservation, err := store.GetReservation(ctx, reservationID)
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if !reservation.IsCheckin || reservation.CheckinDateTime == nil {
		t.Fatalf("reservation not stamped: %+v", reservation)
	}

	// Second check-in carries the first timestamp back.
	var dup *AlreadyCheckedInError
	if _, err := store.CheckInReservation(ctx, reservationID, clock.Now()); !errors.As(err, &dup) {
		t.Fatalf("repeat check-in err = %v, want AlreadyCheckedInError", err)
	}
	if !dup.At.Equal(*reservation.CheckinDateTime) {
		t.Fatalf("conflict At = %v, want %v", dup.At, *reservation.CheckinDateTime)
	}

	// A checked-in reservation cannot be edited or deleted.
	if err := store.DeleteReservation(ctx, reservationID); !errors.Is(err, ErrReservationCheckedIn) {
		t.Fatalf("delete err = %v, want ErrReservationCheckedIn", err)
	}

	// Check-out stamps departure and flags the room for cleaning.
	if _, err := store.CheckOutReservation(ctx, reservationID, clock.Now()); err != nil {
		t.Fatalf("CheckOutReservation: %v", err)
	}
	if status := roomStatus(t, store, roomNumber); status != model.RoomMaintenance {
		t.Fatalf("room status = %q, want maintenance", status)
	}
	reservation, err = store.GetReservation(ctx, reservationID)
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if !reservation.IsCheckin || reservation.CheckoutDateTime == nil {
		t.Fatalf("checkout not stamped: %+v", reservation)
	}
}

func TestCheckInUnknownReservation(t *testing.T) {
	pool := openTestDB(t)
	if pool == nil {
		return
	}
	defer pool.Close()
	store := NewStore(pool)

	if _, err := store.CheckInReservation(context.Background(), -1, clock.Now()); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("err = %v, want ErrReservationNotFound", err)
	}
}

func TestReconcileRoomStatus(t *testing.T) {
	pool := openTestDB(t)
	if pool == nil {
		return
	}
	defer pool.Close()
	store := NewStore(pool)
	ctx := context.Background()

	reservationID, roomNumber := seedStay(t, store)
	if _, err := store.CheckInReservation(ctx, reservationID, clock.Now()); err != nil {
		t.Fatalf("CheckInReservation: %v", err)
	}

	// Drift the room back to available, then reconcile.
	if err := store.UpdateRoomStatus(ctx, roomNumber, model.RoomAvailable); err != nil {
		t.Fatalf("UpdateRoomStatus: %v", err)
	}
	if _, err := store.ReconcileRoomStatus(ctx); err != nil {
		t.Fatalf("ReconcileRoomStatus: %v", err)
	}
	if status := roomStatus(t, store, roomNumber); status != model.RoomOccupied {
		t.Fatalf("room status = %q, want occupied after reconcile", status)
	}

	// Maintenance is never touched.
	if err := store.UpdateRoomStatus(ctx, roomNumber, model.RoomMaintenance); err != nil {
		t.Fatalf("UpdateRoomStatus: %v", err)
	}
	if _, err := store.ReconcileRoomStatus(ctx); err != nil {
		t.Fatalf("ReconcileRoomStatus: %v", err)
	}
	if status := roomStatus(t, store, roomNumber); status != model.RoomMaintenance {
		t.Fatalf("room status = %q, reconcile must not override maintenance", status)
	}
}
