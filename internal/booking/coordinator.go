// Package booking couples seat-map mutation with the reservation ledger.
// The Coordinator is the only component allowed to change seat availability;
// every flip happens through one of its operations, backed by a conditional
// write that the persistence layer checks and applies in a single step.
package booking

import (
	"context"
	"log/slog"

	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/google/uuid"
)

type Coordinator struct {
	movieRepo       domain.MovieRepository
	functionRepo    domain.FunctionRepository
	reservationRepo domain.ReservationRepository
	logger          *slog.Logger
}

func NewCoordinator(
	movieRepo domain.MovieRepository,
	functionRepo domain.FunctionRepository,
	reservationRepo domain.ReservationRepository,
	logger *slog.Logger) *Coordinator {

	return &Coordinator{
		movieRepo:       movieRepo,
		functionRepo:    functionRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

type ReserveParams struct {
	MovieID    int
	FunctionID uuid.UUID
	UserID     int
	Seats      []string
}

// Reserve claims the named seats in the function's seat map and records the
// reservation, all-or-nothing. Two concurrent calls with overlapping seat
// sets can never both succeed: the seat flip and its availability
// precondition are applied by the store as one indivisible operation, so
// the loser observes ErrSeatUnavailable. Calls with disjoint seat sets do
// not contend.
func (c *Coordinator) Reserve(ctx context.Context, params ReserveParams) (*domain.Reservation, error) {
	if len(params.Seats) == 0 {
		return nil, domain.ErrNoSeatsSelected
	}

	if _, err := c.movieRepo.GetById(ctx, params.MovieID); err != nil {
		return nil, err
	}

	if _, err := c.functionRepo.Get(ctx, params.MovieID, params.FunctionID); err != nil {
		return nil, err
	}

	reservation := domain.Reservation{
		UserID:     params.UserID,
		MovieID:    params.MovieID,
		FunctionID: params.FunctionID,
		Seats:      params.Seats,
	}

	if err := c.reservationRepo.Create(ctx, &reservation); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "seats reserved",
		"reservation_id", reservation.ID,
		"function_id", params.FunctionID,
		"seats", len(params.Seats),
	)

	return &reservation, nil
}

type CancelParams struct {
	ReservationID uuid.UUID
	FunctionID    uuid.UUID
	// RequestingUserID enables the ownership check: when set, cancellation
	// is rejected with ErrForbidden unless it matches the reservation's
	// user. Leave nil for administrative cancellation.
	RequestingUserID *int
}

// Cancel deletes the reservation and restores its seats to available. The
// release matches seats by function id and current unavailability, so a
// cancel can never free a seat it does not hold. Deletion and release
// commit or fail together; a mismatch surfaces as ErrInconsistentState.
func (c *Coordinator) Cancel(ctx context.Context, params CancelParams) error {
	reservation, err := c.reservationRepo.GetById(ctx, params.ReservationID)
	if err != nil {
		return err
	}

	if reservation.FunctionID != params.FunctionID {
		return domain.ErrRecordNotFound
	}

	if params.RequestingUserID != nil && *params.RequestingUserID != reservation.UserID {
		return domain.ErrForbidden
	}

	if _, err := c.reservationRepo.DeleteWithRelease(ctx, params.ReservationID); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "reservation cancelled",
		"reservation_id", params.ReservationID,
		"function_id", params.FunctionID,
	)

	return nil
}

// AvailableSeats is a read-only passthrough to the function's seat map.
func (c *Coordinator) AvailableSeats(
	ctx context.Context,
	movieID int,
	functionID uuid.UUID) ([]domain.Seat, error) {

	return c.functionRepo.AvailableSeats(ctx, movieID, functionID)
}

// Reservations is a read-only passthrough to the ledger, newest first.
func (c *Coordinator) Reservations(
	ctx context.Context,
	filter domain.ReservationFilter) ([]domain.Reservation, error) {

	return c.reservationRepo.GetAll(ctx, filter)
}

// FirstReservation returns the single newest ledger entry matching the
// filter, or ErrRecordNotFound.
func (c *Coordinator) FirstReservation(
	ctx context.Context,
	filter domain.ReservationFilter) (*domain.Reservation, error) {

	return c.reservationRepo.GetFirst(ctx, filter)
}
