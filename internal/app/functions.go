package app

import (
	"errors"
	"net/http"

	"github.com/cartelera-app/cartelera/api"
	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/shopspring/decimal"
)

func (app *Application) GetFunctions(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readMovieIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if _, err := app.movieRepo.GetById(r.Context(), movieId); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	functions, err := app.functionRepo.GetAllByMovie(r.Context(), movieId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toFunctionListResponse(movieId, functions), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) AddFunctions(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readMovieIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.AddFunctionsRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	functions, err := app.functionRepo.AddToMovie(r.Context(), movieId, toNewFunctions(input.Functions))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toFunctionListResponse(movieId, functions), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) RescheduleFunctions(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	movieId, err := app.readMovieIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.RescheduleFunctionsRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	changes := make([]domain.ScheduleChange, 0, len(input.Updates))
	for _, u := range input.Updates {
		changes = append(changes, domain.ScheduleChange{Match: u.Datetime, NewStart: u.NewDatetime})
	}

	functions, matched, err := app.functionRepo.Reschedule(r.Context(), movieId, changes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	for i, ok := range matched {
		if !ok {
			logger.Warn("reschedule skipped, no function at requested time",
				"movieId", movieId,
				"datetime", changes[i].Match,
			)
		}
	}

	err = app.writeJSON(w, http.StatusOK, toFunctionListResponse(movieId, functions), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) RemoveFunction(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readMovieIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	functionId, err := app.readFunctionIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.functionRepo.Remove(r.Context(), movieId, functionId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetAvailableSeats(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readMovieIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	functionId, err := app.readFunctionIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	seats, err := app.coordinator.AvailableSeats(r.Context(), movieId, functionId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SeatMapResponse{
		MovieId:    movieId,
		FunctionId: functionId.String(),
		Seats:      make([]api.Seat, 0, len(seats)),
	}

	for _, seat := range seats {
		resp.Seats = append(resp.Seats, api.Seat{
			SeatNumber: seat.SeatNumber,
			Available:  seat.IsAvailable,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toNewFunctions(inputs []api.NewFunctionRequest) []domain.NewFunction {
	functions := make([]domain.NewFunction, 0, len(inputs))

	for _, in := range inputs {
		basePrice := decimal.Zero
		if in.BasePrice != nil {
			basePrice = *in.BasePrice
		}

		functions = append(functions, domain.NewFunction{
			StartsAt:  in.Datetime,
			BasePrice: basePrice,
		})
	}

	return functions
}

func toFunctionResponse(function *domain.Function) api.FunctionResponse {
	return api.FunctionResponse{
		Id:        function.ID.String(),
		Datetime:  function.StartsAt,
		BasePrice: function.BasePrice,
		CreatedAt: function.CreatedAt,
	}
}

func toFunctionListResponse(movieId int, functions []domain.Function) api.FunctionListResponse {
	resp := api.FunctionListResponse{
		MovieId:   movieId,
		Functions: make([]api.FunctionResponse, 0, len(functions)),
	}

	for i := range functions {
		resp.Functions = append(resp.Functions, toFunctionResponse(&functions[i]))
	}

	return resp
}
