package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"id":        {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func jsonBody(t testing.TB, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

// registerAndLogin creates a fresh user directly in the store, then logs in
// through the API and returns the session cookie header value.
func registerAndLogin(t testing.TB, testApp *TestApp, email string, role domain.Role) string {
	user := domain.User{
		Name:  "Test User",
		Email: email,
		Role:  role,
	}
	require.NoError(t, user.Password.Set("Sup3rSecret!"))

	_, err := testApp.DB.Exec(context.Background(), `
		INSERT INTO users (name, email, password_hash, role, activated)
		VALUES ($1, $2, $3, $4, true)`,
		user.Name, user.Email, user.Password.Hash, string(user.Role))
	require.NoError(t, err)

	body := jsonBody(t, map[string]string{
		"email":    email,
		"password": "Sup3rSecret!",
	})

	req, err := prepareRequest(http.MethodPost, "/auth/login", body, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	res := rec.Result()
	defer res.Body.Close()

	for _, cookie := range res.Cookies() {
		if cookie.Name == "session_id" {
			return fmt.Sprintf("%s=%s", cookie.Name, cookie.Value)
		}
	}

	t.Fatalf("no session cookie returned for %s", email)

	return ""
}

func createMovie(t testing.TB, testApp *TestApp, title string) int {
	var movieId int

	err := testApp.DB.QueryRow(context.Background(), `
		INSERT INTO movies (title, year, director, duration_min, rating, poster_url, genres)
		VALUES ($1, 1999, 'The Wachowskis', 136, 8.7, 'https://example.com/matrix.jpg', '{"Sci-Fi"}')
		RETURNING id`, title).Scan(&movieId)
	require.NoError(t, err)

	return movieId
}
