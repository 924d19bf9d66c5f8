package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cartelera-app/cartelera/api"
	"github.com/cartelera-app/cartelera/internal/booking"
	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	var input api.CreateReservationRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	functionId, err := uuid.Parse(input.FunctionId)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid function id"))
		return
	}

	reservation, err := app.coordinator.Reserve(r.Context(), booking.ReserveParams{
		MovieID:    input.MovieId,
		FunctionID: functionId,
		UserID:     userId,
		Seats:      input.Seats,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrSeatUnavailable):
			app.seatUnavailableResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	go func() {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic occurred during sending reservation confirmation", "panic", err)
			}
		}()

		user, err := app.userRepo.GetById(context.Background(), userId)
		if err != nil {
			logger.Error("failed to load user for confirmation email", "error", err)
			return
		}

		data := map[string]any{
			"name":          user.Name,
			"reservationId": reservation.ID.String(),
			"seats":         reservation.Seats,
		}

		if err := app.mailer.Send(user.Email, "reservation_confirmation.tmpl", data); err != nil {
			logger.Error("failed to send reservation confirmation", "error", err)
		}
	}()

	resp := toReservationResponse(reservation)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationId, err := uuid.Parse(chi.URLParam(r, "reservationId"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid reservation id"))
		return
	}

	functionId, err := uuid.Parse(r.URL.Query().Get("functionId"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("functionId query parameter is required"))
		return
	}

	params := booking.CancelParams{
		ReservationID: reservationId,
		FunctionID:    functionId,
	}

	if !domain.Role(app.contextGetUserRole(r)).IsAdmin() {
		userId := app.contextGetUserId(r)
		params.RequestingUserID = &userId
	}

	err = app.coordinator.Cancel(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrForbidden):
			app.forbiddenResponse(w, r)
		case errors.Is(err, domain.ErrInconsistentState):
			app.inconsistentStateResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetReservations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter domain.ReservationFilter

	if v := query.Get("userId"); v != "" {
		userId, err := strconv.Atoi(v)
		if err != nil || userId <= 0 {
			app.badRequestResponse(w, r, fmt.Errorf("invalid userId query parameter"))
			return
		}

		filter.UserID = userId
	}

	if v := query.Get("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid date query parameter, expected YYYY-MM-DD"))
			return
		}

		filter.CreatedAt = date
	}

	if query.Get("first") == "true" {
		reservation, err := app.coordinator.FirstReservation(r.Context(), filter)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.notFoundResponse(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}

		err = app.writeJSON(w, http.StatusOK, toReservationResponse(reservation), nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	reservations, err := app.coordinator.Reservations(r.Context(), filter)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toReservationListResponse(reservations), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toReservationResponse(reservation *domain.Reservation) api.ReservationResponse {
	return api.ReservationResponse{
		Id:         reservation.ID.String(),
		UserId:     reservation.UserID,
		MovieId:    reservation.MovieID,
		FunctionId: reservation.FunctionID.String(),
		Seats:      reservation.Seats,
		CreatedAt:  reservation.CreatedAt,
	}
}

func toReservationListResponse(reservations []domain.Reservation) api.ReservationListResponse {
	resp := api.ReservationListResponse{
		Reservations: make([]api.ReservationResponse, 0, len(reservations)),
	}

	for i := range reservations {
		resp.Reservations = append(resp.Reservations, toReservationResponse(&reservations[i]))
	}

	return resp
}
