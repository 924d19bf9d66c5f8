package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	if app.config.OtelCollectorUrl != "" {
		r.Use(otelchi.Middleware("cartelera-api", otelchi.WithChiRoutes(r)))
	}

	r.Use(middleware.RequestID)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.RegisterUser)
		r.Post("/login", app.LoginUser)
		r.Post("/logout", app.LogoutUser)
	})

	r.With(app.requireAuthentication).Route("/users/me", func(r chi.Router) {
		r.Get("/", app.GetCurrentUser)
		r.Patch("/", app.UpdateCurrentUser)
		r.Delete("/", app.DeleteCurrentUser)
		r.Get("/reservations", app.GetCurrentUserReservations)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.With(app.requireAuthentication, app.requireAdmin).Post("/", app.CreateMovie)

		r.Route("/{movieId}", func(r chi.Router) {
			r.Get("/", app.GetMovie)
			r.With(app.requireAuthentication, app.requireAdmin).Patch("/", app.UpdateMovie)
			r.With(app.requireAuthentication, app.requireAdmin).Delete("/", app.DeleteMovie)

			r.Route("/functions", func(r chi.Router) {
				r.Get("/", app.GetFunctions)
				r.With(app.requireAuthentication, app.requireAdmin).Post("/", app.AddFunctions)
				r.With(app.requireAuthentication, app.requireAdmin).Patch("/", app.RescheduleFunctions)
				r.With(app.requireAuthentication, app.requireAdmin).Delete("/{functionId}", app.RemoveFunction)

				r.Get("/{functionId}/seats", app.GetAvailableSeats)
			})
		})
	})

	r.With(app.requireAuthentication).Route("/reservations", func(r chi.Router) {
		r.With(app.requireAdmin).Get("/", app.GetReservations)
		r.Post("/", app.CreateReservation)
		r.Delete("/{reservationId}", app.CancelReservation)
	})

	return r
}
