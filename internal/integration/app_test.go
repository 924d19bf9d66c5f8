package integration_test

import (
	"log/slog"
	"os"

	"github.com/cartelera-app/cartelera/internal/app"
	"github.com/cartelera-app/cartelera/internal/mailer"
	"github.com/cartelera-app/cartelera/internal/repository"
	appvalidator "github.com/cartelera-app/cartelera/internal/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	functionRepo := repository.NewPostgresFunctionRepository(db)
	reservationRepo := repository.NewPostgresReservationRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		userRepo,
		movieRepo,
		functionRepo,
		reservationRepo,
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}
