package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Function is a scheduled showtime of a movie. Each function owns an
// independent seat map generated in full at creation time. A function never
// outlives its movie.
type Function struct {
	ID        uuid.UUID
	MovieID   int
	StartsAt  time.Time
	BasePrice decimal.Decimal
	Seats     []Seat
	CreatedAt time.Time
}

// NewFunction carries the inputs for creating one function on a movie.
type NewFunction struct {
	StartsAt  time.Time
	BasePrice decimal.Decimal
}

// ScheduleChange reschedules the function whose current start time equals
// Match exactly. Changes with no matching function are skipped.
type ScheduleChange struct {
	Match    time.Time
	NewStart time.Time
}

type FunctionRepository interface {
	// AddToMovie creates one function per input, each with a freshly
	// generated seat map, and returns the created functions.
	AddToMovie(ctx context.Context, movieID int, inputs []NewFunction) ([]Function, error)
	GetAllByMovie(ctx context.Context, movieID int) ([]Function, error)
	// Get returns the function with its full seat map loaded.
	Get(ctx context.Context, movieID int, functionID uuid.UUID) (*Function, error)
	// Reschedule applies the given changes and returns the movie's refreshed
	// function list. It reports which changes found a match.
	Reschedule(ctx context.Context, movieID int, changes []ScheduleChange) ([]Function, []bool, error)
	// Remove deletes the function from the movie. Removing an absent
	// function is a no-op, not an error.
	Remove(ctx context.Context, movieID int, functionID uuid.UUID) error
	// AvailableSeats returns the free seats of the function's seat map,
	// ordered by row then seat number.
	AvailableSeats(ctx context.Context, movieID int, functionID uuid.UUID) ([]Seat, error)
}
