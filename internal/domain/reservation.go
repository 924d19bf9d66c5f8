package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Reservation is a committed claim on a set of seats within one function.
// For every stored reservation each of its seats is unavailable in the
// owning function's seat map, and no seat appears in two reservations for
// the same function. That coupling is enforced by the repository: creation
// and deletion each run as a single transaction around a conditional
// seat-availability write.
type Reservation struct {
	ID         uuid.UUID
	UserID     int
	MovieID    int
	FunctionID uuid.UUID
	Seats      []string
	CreatedAt  time.Time
}

// ReservationFilter narrows ledger lookups. Zero-valued fields are ignored.
type ReservationFilter struct {
	UserID    int
	CreatedAt time.Time
}

type ReservationRepository interface {
	// Create reserves the named seats and records the reservation in one
	// atomic step. The seat flip is conditional on every named seat of the
	// function existing and being available; if any seat fails that check
	// no seat is touched and ErrSeatUnavailable is returned. The stored
	// record, with generated id and timestamp, is written back to res.
	Create(ctx context.Context, res *Reservation) error

	// DeleteWithRelease removes the reservation and flips its recorded
	// seats back to available in one atomic step, matching seats by
	// function id and current unavailability. A release that does not
	// affect exactly the recorded seats aborts the whole operation with
	// ErrInconsistentState.
	DeleteWithRelease(ctx context.Context, id uuid.UUID) (*Reservation, error)

	GetById(ctx context.Context, id uuid.UUID) (*Reservation, error)
	// GetAll returns reservations matching the filter, newest first.
	GetAll(ctx context.Context, filter ReservationFilter) ([]Reservation, error)
	// GetFirst returns the single newest reservation matching the filter,
	// or ErrRecordNotFound.
	GetFirst(ctx context.Context, filter ReservationFilter) (*Reservation, error)
}
