package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"velia-server/internal/tmdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMovie(t *testing.T) {
	t.Run("Successful lookup by ID", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/movie/27205", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": 27205,
				"title": "Inception",
				"overview": "A thief enters dreams.",
				"runtime": 148,
				"release_date": "2010-07-16",
				"poster_path": "/poster.jpg",
				"backdrop_path": "/backdrop.jpg"
			}`))
		}))
		defer server.Close()

		client := tmdb.NewClient(tmdb.ClientConfig{BaseURL: server.URL, APIKey: "test-key", Timeout: time.Second})
		movie, err := client.GetMovie(context.Background(), 27205)

		require.NoError(t, err)
		assert.Equal(t, int64(27205), movie.ID)
		assert.Equal(t, "Inception", movie.Title)
		assert.Equal(t, 148, movie.Runtime)
		assert.Equal(t, "2010-07-16", movie.ReleaseDate)
	})

	t.Run("404 maps to ErrMovieNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := tmdb.NewClient(tmdb.ClientConfig{BaseURL: server.URL, APIKey: "test-key"})
		_, err := client.GetMovie(context.Background(), 999999999)

		assert.ErrorIs(t, err, tmdb.ErrMovieNotFound)
	})

	t.Run("Unexpected status returns error with code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := tmdb.NewClient(tmdb.ClientConfig{BaseURL: server.URL, APIKey: "test-key"})
		_, err := client.GetMovie(context.Background(), 1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestSearchMovie(t *testing.T) {
	t.Run("First search result is returned", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/movie", r.URL.Path)
			assert.Equal(t, "inception", r.URL.Query().Get("query"))
			assert.Equal(t, "1", r.URL.Query().Get("page"))

			w.Write([]byte(`{"results": [
				{"id": 27205, "title": "Inception", "runtime": 148},
				{"id": 64956, "title": "Inception: The Cobol Job"}
			]}`))
		}))
		defer server.Close()

		client := tmdb.NewClient(tmdb.ClientConfig{BaseURL: server.URL, APIKey: "test-key"})
		movie, err := client.SearchMovie(context.Background(), "inception")

		require.NoError(t, err)
		assert.Equal(t, int64(27205), movie.ID)
	})

	t.Run("Empty results map to ErrMovieNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": []}`))
		}))
		defer server.Close()

		client := tmdb.NewClient(tmdb.ClientConfig{BaseURL: server.URL, APIKey: "test-key"})
		_, err := client.SearchMovie(context.Background(), "definitely does not exist")

		assert.ErrorIs(t, err, tmdb.ErrMovieNotFound)
	})
}
