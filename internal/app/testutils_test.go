package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/cartelera-app/cartelera/api"
	"github.com/cartelera-app/cartelera/internal/booking"
	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/cartelera-app/cartelera/internal/mailer"
	"github.com/cartelera-app/cartelera/internal/mocks"
	appvalidator "github.com/cartelera-app/cartelera/internal/validator"
	"github.com/go-chi/chi/v5"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		validator:       appvalidator.NewValidator(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		userRepo:        &mocks.MockUserRepo{},
		movieRepo:       &mocks.MockMovieRepo{},
		functionRepo:    &mocks.MockFunctionRepo{},
		reservationRepo: &mocks.MockReservationRepo{},
		mailer:          mailer.NewMockMailer(),
		sessionManager:  scs.New(),
	}

	for _, opt := range opts {
		opt(app)
	}

	app.coordinator = booking.NewCoordinator(app.movieRepo, app.functionRepo, app.reservationRepo, app.logger)

	return app
}

func setupTestSession(t *testing.T, app *Application, r *http.Request, userId int, role domain.Role) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)
	app.sessionManager.Put(ctx, SessionKeyUserRole.String(), string(role))

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func withUrlParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
