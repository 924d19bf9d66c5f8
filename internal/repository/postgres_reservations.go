package repository

import (
	"context"
	"errors"

	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// Create reserves the requested seats and records the reservation in a
// single transaction. The seat flip is one conditional UPDATE whose
// affected-row count must equal the request size: the precondition (every
// named seat of the function exists and is available) is checked and applied
// by the database in one indivisible statement, never in the caller.
func (p *PostgresReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	res.ID = uuid.New()

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE function_seats
			SET is_available = false
			WHERE function_id = $1 AND seat_number = ANY($2) AND is_available
		`

		tag, err := tx.Exec(ctx, query, res.FunctionID, res.Seats)
		if err != nil {
			return err
		}

		if tag.RowsAffected() != int64(len(res.Seats)) {
			return domain.ErrSeatUnavailable
		}

		query = `
			INSERT INTO reservations (id, user_id, movie_id, function_id)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			res.ID,
			res.UserID,
			res.MovieID,
			res.FunctionID).Scan(&res.CreatedAt)

		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(res.Seats))
		for i, seatNumber := range res.Seats {
			rows = append(rows, []any{
				res.ID,
				res.FunctionID,
				seatNumber,
				i,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"reservation_seats"},
			[]string{"reservation_id", "function_id", "seat_number", "position"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			// The unique (function_id, seat_number) constraint is the
			// second line of defense against double booking.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrSeatUnavailable
			}

			return err
		}

		return nil
	})
}

// DeleteWithRelease removes the reservation and releases its recorded seats
// in a single transaction. The release matches seats by function id and
// current unavailability; a mismatch between the affected-row count and the
// ledger record aborts the whole transaction, so the deletion is rolled back
// too rather than leaving seats orphaned.
func (p *PostgresReservationRepository) DeleteWithRelease(
	ctx context.Context,
	id uuid.UUID) (*domain.Reservation, error) {

	res := domain.Reservation{ID: id}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT user_id, movie_id, function_id, created_at
			FROM reservations
			WHERE id = $1
			FOR UPDATE
		`

		err := tx.QueryRow(ctx, query, id).Scan(
			&res.UserID,
			&res.MovieID,
			&res.FunctionID,
			&res.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		res.Seats, err = reservedSeats(ctx, tx, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
		if err != nil {
			return err
		}

		query = `
			UPDATE function_seats
			SET is_available = true
			WHERE function_id = $1 AND seat_number = ANY($2) AND NOT is_available
		`

		tag, err := tx.Exec(ctx, query, res.FunctionID, res.Seats)
		if err != nil {
			return err
		}

		if tag.RowsAffected() != int64(len(res.Seats)) {
			return domain.ErrInconsistentState
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (p *PostgresReservationRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query := `
		SELECT id, user_id, movie_id, function_id, created_at
		FROM reservations
		WHERE id = $1
	`

	var res domain.Reservation

	err := p.db.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.UserID,
		&res.MovieID,
		&res.FunctionID,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	res.Seats, err = reservedSeats(ctx, p.db, id)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (p *PostgresReservationRepository) GetAll(
	ctx context.Context,
	filter domain.ReservationFilter) ([]domain.Reservation, error) {

	query := `
		SELECT id, user_id, movie_id, function_id, created_at
		FROM reservations
		WHERE ($1 = 0 OR user_id = $1)
			AND ($2::timestamptz IS NULL OR created_at::date = $2::date)
		ORDER BY created_at DESC
	`

	var createdAt any
	if !filter.CreatedAt.IsZero() {
		createdAt = filter.CreatedAt
	}

	rows, err := p.db.Query(ctx, query, filter.UserID, createdAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation

		err = rows.Scan(
			&res.ID,
			&res.UserID,
			&res.MovieID,
			&res.FunctionID,
			&res.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, res)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range reservations {
		reservations[i].Seats, err = reservedSeats(ctx, p.db, reservations[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return reservations, nil
}

func (p *PostgresReservationRepository) GetFirst(
	ctx context.Context,
	filter domain.ReservationFilter) (*domain.Reservation, error) {

	reservations, err := p.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(reservations) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return &reservations[0], nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func reservedSeats(ctx context.Context, q querier, reservationID uuid.UUID) ([]string, error) {
	query := `
		SELECT seat_number
		FROM reservation_seats
		WHERE reservation_id = $1
		ORDER BY position
	`

	rows, err := q.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]string, 0)

	for rows.Next() {
		var seatNumber string

		if err := rows.Scan(&seatNumber); err != nil {
			return nil, err
		}

		seats = append(seats, seatNumber)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
