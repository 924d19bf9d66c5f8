package repository

import (
	"context"
	"errors"

	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (p *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, activated, created_at, version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		user.Name,
		user.Email,
		user.Password.Hash,
		string(user.Role),
	).Scan(&user.ID, &user.Activated, &user.CreatedAt, &user.Version)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, activated, created_at, version
		FROM users
		WHERE email = $1
	`

	return p.scanUser(p.db.QueryRow(ctx, query, email))
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, activated, created_at, version
		FROM users
		WHERE id = $1
	`

	return p.scanUser(p.db.QueryRow(ctx, query, id))
}

func (p *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, activated = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		user.Name,
		user.Email,
		user.Password.Hash,
		user.Activated,
		user.ID,
		user.Version,
	).Scan(&user.Version)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrUserAlreadyExists
		}

		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

// Delete removes the user. Their reservations cascade away with them, so the
// seats those reservations held are released first, inside the same
// transaction.
func (p *PostgresUserRepository) Delete(ctx context.Context, user *domain.User) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE function_seats fs
			SET is_available = true
			FROM reservations r
			JOIN reservation_seats rs ON rs.reservation_id = r.id
			WHERE r.user_id = $1
				AND fs.function_id = rs.function_id
				AND fs.seat_number = rs.seat_number`, user.ID)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func (p *PostgresUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password.Hash,
		&user.Role,
		&user.Activated,
		&user.CreatedAt,
		&user.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}
