package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cartelera-app/cartelera/api"
	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MovieCatalogSuite struct {
	BaseSuite
}

func TestMovieCatalogSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(MovieCatalogSuite))
}

func (s *MovieCatalogSuite) do(method, url string, body any, cookie string) *httptest.ResponseRecorder {
	var req *http.Request
	var err error

	if body != nil {
		req, err = prepareRequest(method, url, jsonBody(s.T(), body), nil)
	} else {
		req, err = prepareRequest(method, url, nil, nil)
	}
	s.Require().NoError(err)

	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	rec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)

	return rec
}

func (s *MovieCatalogSuite) TestUpdateMovie() {
	t := s.T()

	adminCookie := registerAndLogin(t, s.app, "admin-catalog@example.com", domain.RoleAdmin)
	movieId := createMovie(t, s.app, "Alien")

	rec := s.do(http.MethodPatch, fmt.Sprintf("/movies/%d", movieId), map[string]any{
		"title":  "Aliens",
		"rating": 8.4,
	}, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated api.MovieResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	s.Equal("Aliens", updated.Title)
	s.Equal(8.4, updated.Rating)

	// untouched fields survive the partial update, the version moves on
	var director string
	var version int
	require.NoError(t, s.app.DB.QueryRow(
		context.Background(),
		`SELECT director, version FROM movies WHERE id = $1`,
		movieId,
	).Scan(&director, &version))
	s.Equal("The Wachowskis", director)
	s.Equal(2, version)

	rec = s.do(http.MethodPatch, "/movies/999999", map[string]any{"title": "Ghost"}, adminCookie)
	s.Equal(http.StatusNotFound, rec.Code)
}
