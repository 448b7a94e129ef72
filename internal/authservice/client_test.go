package authservice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"velia-server/internal/authservice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGetSession(t *testing.T) {
	t.Run("Successful session resolution", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/session", r.URL.Path)
			assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"user": {"id": "u-1", "email": "user@example.com", "plan": "free", "usageCount": 1}}`))
		}))
		defer server.Close()

		client := authservice.NewClient(authservice.ClientConfig{BaseURL: server.URL, Timeout: time.Second})
		user, err := client.GetSession(context.Background(), "session-token")

		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, authservice.PlanFree, user.Plan)
		assert.Equal(t, 1, user.UsageCount)
	})

	t.Run("401 maps to ErrUnauthenticated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := authservice.NewClient(authservice.ClientConfig{BaseURL: server.URL})
		_, err := client.GetSession(context.Background(), "bad-token")

		assert.ErrorIs(t, err, authservice.ErrUnauthenticated)
	})

	t.Run("Unexpected status surfaces error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "database unavailable"}`))
		}))
		defer server.Close()

		client := authservice.NewClient(authservice.ClientConfig{BaseURL: server.URL})
		_, err := client.GetSession(context.Background(), "token")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database unavailable")
	})
}

func TestClientConsumeUsage(t *testing.T) {
	t.Run("Successful consume returns updated count", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/usage/consume", r.URL.Path)
			assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

			w.Write([]byte(`{"usageCount": 2}`))
		}))
		defer server.Close()

		client := authservice.NewClient(authservice.ClientConfig{BaseURL: server.URL})
		count, err := client.ConsumeUsage(context.Background(), "session-token")

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("403 maps to ErrQuotaExceeded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := authservice.NewClient(authservice.ClientConfig{BaseURL: server.URL})
		_, err := client.ConsumeUsage(context.Background(), "token")

		assert.ErrorIs(t, err, authservice.ErrQuotaExceeded)
	})

	t.Run("401 maps to ErrUnauthenticated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := authservice.NewClient(authservice.ClientConfig{BaseURL: server.URL})
		_, err := client.ConsumeUsage(context.Background(), "token")

		assert.ErrorIs(t, err, authservice.ErrUnauthenticated)
	})
}
