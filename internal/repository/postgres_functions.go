package repository

import (
	"context"
	"errors"

	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresFunctionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresFunctionRepository(db *pgxpool.Pool) *PostgresFunctionRepository {
	return &PostgresFunctionRepository{
		db: db,
	}
}

// AddToMovie inserts one function per input together with its freshly
// generated 144-seat map, all in one transaction.
func (p *PostgresFunctionRepository) AddToMovie(
	ctx context.Context,
	movieID int,
	inputs []domain.NewFunction) ([]domain.Function, error) {

	functions := make([]domain.Function, 0, len(inputs))

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		if err := movieExists(ctx, tx, movieID); err != nil {
			return err
		}

		for _, input := range inputs {
			function := domain.Function{
				ID:        uuid.New(),
				MovieID:   movieID,
				StartsAt:  input.StartsAt,
				BasePrice: input.BasePrice,
			}

			query := `
				INSERT INTO functions (id, movie_id, starts_at, base_price)
				VALUES ($1, $2, $3, $4)
				RETURNING created_at
			`

			err := tx.QueryRow(
				ctx,
				query,
				function.ID,
				function.MovieID,
				function.StartsAt,
				function.BasePrice.String()).Scan(&function.CreatedAt)

			if err != nil {
				return err
			}

			seats := domain.GenerateSeatMap()

			rows := make([][]any, 0, len(seats))
			for _, seat := range seats {
				rows = append(rows, []any{function.ID, seat.SeatNumber, seat.IsAvailable})
			}

			_, err = tx.CopyFrom(
				ctx,
				pgx.Identifier{"function_seats"},
				[]string{"function_id", "seat_number", "is_available"},
				pgx.CopyFromRows(rows),
			)
			if err != nil {
				return err
			}

			functions = append(functions, function)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return functions, nil
}

func (p *PostgresFunctionRepository) GetAllByMovie(ctx context.Context, movieID int) ([]domain.Function, error) {
	if err := movieExists(ctx, p.db, movieID); err != nil {
		return nil, err
	}

	return movieFunctions(ctx, p.db, movieID)
}

func (p *PostgresFunctionRepository) Get(
	ctx context.Context,
	movieID int,
	functionID uuid.UUID) (*domain.Function, error) {

	query := `
		SELECT id, movie_id, starts_at, base_price, created_at
		FROM functions
		WHERE id = $1 AND movie_id = $2
	`

	var function domain.Function
	var basePrice float64

	err := p.db.QueryRow(ctx, query, functionID, movieID).Scan(
		&function.ID,
		&function.MovieID,
		&function.StartsAt,
		&basePrice,
		&function.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	function.BasePrice = decimal.NewFromFloat(basePrice)

	function.Seats, err = functionSeats(ctx, p.db, functionID, false)
	if err != nil {
		return nil, err
	}

	return &function, nil
}

// Reschedule updates the start time of every function matched by exact
// current start time. Changes with no match are skipped; the returned flags
// report which changes matched, index-aligned with the input.
func (p *PostgresFunctionRepository) Reschedule(
	ctx context.Context,
	movieID int,
	changes []domain.ScheduleChange) ([]domain.Function, []bool, error) {

	matched := make([]bool, len(changes))

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		if err := movieExists(ctx, tx, movieID); err != nil {
			return err
		}

		query := `
			UPDATE functions
			SET starts_at = $3
			WHERE movie_id = $1 AND starts_at = $2
		`

		for i, change := range changes {
			tag, err := tx.Exec(ctx, query, movieID, change.Match, change.NewStart)
			if err != nil {
				return err
			}

			matched[i] = tag.RowsAffected() > 0
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	functions, err := movieFunctions(ctx, p.db, movieID)
	if err != nil {
		return nil, nil, err
	}

	return functions, matched, nil
}

// Remove deletes the function and, via cascade, its seat map and any
// reservations drawn from it. Removing an absent function is a no-op.
func (p *PostgresFunctionRepository) Remove(ctx context.Context, movieID int, functionID uuid.UUID) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		if err := movieExists(ctx, tx, movieID); err != nil {
			return err
		}

		_, err := tx.Exec(
			ctx,
			`DELETE FROM functions WHERE id = $1 AND movie_id = $2`,
			functionID,
			movieID,
		)

		return err
	})
}

func (p *PostgresFunctionRepository) AvailableSeats(
	ctx context.Context,
	movieID int,
	functionID uuid.UUID) ([]domain.Seat, error) {

	query := `
		SELECT 1
		FROM functions
		WHERE id = $1 AND movie_id = $2
	`

	var one int

	err := p.db.QueryRow(ctx, query, functionID, movieID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return functionSeats(ctx, p.db, functionID, true)
}

func movieExists(ctx context.Context, q rowQuerier, movieID int) error {
	var one int

	err := q.QueryRow(ctx, `SELECT 1 FROM movies WHERE id = $1`, movieID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func movieFunctions(ctx context.Context, q querier, movieID int) ([]domain.Function, error) {
	query := `
		SELECT id, movie_id, starts_at, base_price, created_at
		FROM functions
		WHERE movie_id = $1
		ORDER BY starts_at, created_at
	`

	rows, err := q.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	functions := make([]domain.Function, 0)

	for rows.Next() {
		var function domain.Function
		var basePrice float64

		err = rows.Scan(
			&function.ID,
			&function.MovieID,
			&function.StartsAt,
			&basePrice,
			&function.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		function.BasePrice = decimal.NewFromFloat(basePrice)
		functions = append(functions, function)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return functions, nil
}

// functionSeats loads a function's seat map ordered by row then seat number.
// Seat numbers are row letter plus number, so the numeric part has to be
// compared as an integer for the order to come out right.
func functionSeats(ctx context.Context, q querier, functionID uuid.UUID, onlyAvailable bool) ([]domain.Seat, error) {
	query := `
		SELECT seat_number, is_available
		FROM function_seats
		WHERE function_id = $1 AND (is_available OR NOT $2)
		ORDER BY substr(seat_number, 1, 1), substr(seat_number, 2)::int
	`

	rows, err := q.Query(ctx, query, functionID, onlyAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		if err := rows.Scan(&seat.SeatNumber, &seat.IsAvailable); err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
