package app

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/cartelera-app/cartelera/api"
	"github.com/cartelera-app/cartelera/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

var movieSortSafelist = []string{"id", "title", "year", "rating", "-id", "-title", "-year", "-rating"}

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := domain.MovieFilters{
		Page:     defaultPage,
		PageSize: defaultPageSize,
		Genre:    query.Get("genre"),
		Term:     query.Get("term"),
		Sort:     "id",
	}

	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			app.badRequestResponse(w, r, fmt.Errorf("invalid page query parameter"))
			return
		}

		filters.Page = page
	}

	if v := query.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil || pageSize < 1 || pageSize > maxPageSize {
			app.badRequestResponse(w, r, fmt.Errorf("invalid pageSize query parameter"))
			return
		}

		filters.PageSize = pageSize
	}

	if v := query.Get("sort"); v != "" {
		if !slices.Contains(movieSortSafelist, v) {
			app.badRequestResponse(w, r, fmt.Errorf("invalid sort query parameter"))
			return
		}

		filters.Sort = v
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: make([]api.MovieResponse, 0, len(movies)),
	}

	for _, movie := range movies {
		resp.Movies = append(resp.Movies, toMovieResponse(movie))
	}

	if metadata != nil {
		resp.Metadata = &api.Metadata{
			CurrentPage:  metadata.CurrentPage,
			FirstPage:    metadata.FirstPage,
			LastPage:     metadata.LastPage,
			PageSize:     metadata.PageSize,
			TotalRecords: metadata.TotalRecords,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readMovieIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateMovieRequest

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

	movie := domain.Movie{
		Title:     input.Title,
		Year:      input.Year,
		Director:  input.Director,
		Duration:  input.Duration,
		Rating:    input.Rating,
		PosterUrl: input.PosterUrl,
		Genres:    input.Genres,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(input.Functions) > 0 {
		functions, err := app.functionRepo.AddToMovie(r.Context(), movie.ID, toNewFunctions(input.Functions))
		if err != nil {
			logger.Error("movie created but adding functions failed", "movieId", movie.ID, "error", err)
			app.serverErrorResponse(w, r, err)
			return
		}

		movie.Functions = functions
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(&movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	movieId, err := app.readMovieIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.UpdateMovieRequest

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

	movie, err := app.movieRepo.Update(r.Context(), movieId, domain.MovieUpdate{
		Title:     input.Title,
		Year:      input.Year,
		Director:  input.Director,
		Duration:  input.Duration,
		Rating:    input.Rating,
		PosterUrl: input.PosterUrl,
		Genres:    input.Genres,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrEditConflict):
			app.errorResponse(w, r, http.StatusConflict, "unable to update the record due to an edit conflict, please try again")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if len(input.Updates) > 0 {
		changes := make([]domain.ScheduleChange, 0, len(input.Updates))
		for _, u := range input.Updates {
			changes = append(changes, domain.ScheduleChange{Match: u.Datetime, NewStart: u.NewDatetime})
		}

		functions, matched, err := app.functionRepo.Reschedule(r.Context(), movieId, changes)
		if err != nil {
			app.serverErrorResponse(w, r, err)
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

		movie.Functions = functions
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readMovieIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.movieRepo.Delete(r.Context(), movieId)
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

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	resp := api.MovieResponse{
		Id:        movie.ID,
		Title:     movie.Title,
		Year:      movie.Year,
		Director:  movie.Director,
		Duration:  movie.Duration,
		Rating:    movie.Rating,
		PosterUrl: movie.PosterUrl,
		Genres:    movie.Genres,
	}

	for i := range movie.Functions {
		resp.Functions = append(resp.Functions, toFunctionResponse(&movie.Functions[i]))
	}

	return resp
}
