package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, title, year, director, duration_min, rating, poster_url, genres
		FROM movies
		WHERE (to_tsvector('simple', title) @@ plainto_tsquery('simple', $1) OR $1 = '')
			AND ($2 = '' OR EXISTS (
				SELECT 1 FROM unnest(genres) g WHERE lower(g) = lower($2)
			))
		ORDER BY %s %s, id
		LIMIT $3 OFFSET $4`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Genre, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Year,
			&movie.Director,
			&movie.Duration,
			&movie.Rating,
			&movie.PosterUrl,
			&movie.Genres,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, year, director, duration_min, rating, poster_url, genres, created_at, version
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.Director,
		&movie.Duration,
		&movie.Rating,
		&movie.PosterUrl,
		&movie.Genres,
		&movie.CreatedAt,
		&movie.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	movie.Functions, err = movieFunctions(ctx, p.db, id)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, year, director, duration_min, rating, poster_url, genres)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Year,
		movie.Director,
		movie.Duration,
		movie.Rating,
		movie.PosterUrl,
		movie.Genres,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.Version)
}

func (p *PostgresMovieRepository) Update(
	ctx context.Context,
	id int,
	update domain.MovieUpdate) (*domain.Movie, error) {

	query := `
		UPDATE movies
		SET title = COALESCE($2, title),
			year = COALESCE($3, year),
			director = COALESCE($4, director),
			duration_min = COALESCE($5, duration_min),
			rating = COALESCE($6, rating),
			poster_url = COALESCE($7, poster_url),
			genres = COALESCE($8, genres),
			version = version + 1
		WHERE id = $1 AND version = $9
		RETURNING id, title, year, director, duration_min, rating, poster_url, genres, created_at, version
	`

	var movie domain.Movie

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var version int

		err := tx.QueryRow(ctx, `SELECT version FROM movies WHERE id = $1`, id).Scan(&version)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		// A concurrent commit after the read above bumps the version and the
		// predicate stops matching; zero rows means an edit conflict.
		err = tx.QueryRow(
			ctx,
			query,
			id,
			update.Title,
			update.Year,
			update.Director,
			update.Duration,
			update.Rating,
			update.PosterUrl,
			update.Genres,
			version,
		).Scan(
			&movie.ID,
			&movie.Title,
			&movie.Year,
			&movie.Director,
			&movie.Duration,
			&movie.Rating,
			&movie.PosterUrl,
			&movie.Genres,
			&movie.CreatedAt,
			&movie.Version,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrEditConflict
			}

			return err
		}

		movie.Functions, err = movieFunctions(ctx, tx, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// Delete removes the movie; functions, seat maps and reservations cascade
// away with it.
func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
