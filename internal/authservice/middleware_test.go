package authservice_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"velia-server/internal/authservice"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-session-secret")

// fakeSessionClient считает вызовы, чтобы проверять, что отклонённые
// запросы не доходят до Auth Service.
type fakeSessionClient struct {
	user            *authservice.User
	sessionErr      error
	consumeCount    int
	consumeErr      error
	getSessionCalls int
	consumeCalls    int
}

func (f *fakeSessionClient) GetSession(_ context.Context, _ string) (*authservice.User, error) {
	f.getSessionCalls++
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	// Копия, чтобы middleware не мутировал общий фикстурный объект
	user := *f.user
	return &user, nil
}

func (f *fakeSessionClient) ConsumeUsage(_ context.Context, _ string) (int, error) {
	f.consumeCalls++
	if f.consumeErr != nil {
		return 0, f.consumeErr
	}
	return f.consumeCount, nil
}

func signedToken(t *testing.T, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

// serveWithEntitlement прогоняет запрос через middleware и возвращает
// рекордер вместе с пользователем, который достался конечному обработчику.
func serveWithEntitlement(t *testing.T, client authservice.SessionClient, authHeader string) (*httptest.ResponseRecorder, *authservice.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seenUser *authservice.User
	router := gin.New()
	router.Use(authservice.EntitlementMiddleware(client, testSecret, time.Second, zerolog.Nop()))
	router.POST("/api/niche", func(c *gin.Context) {
		if user, ok := authservice.UserFromContext(c); ok {
			seenUser = user
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/niche", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, seenUser
}

func TestEntitlementMiddleware(t *testing.T) {
	t.Run("Missing Authorization header rejected without network call", func(t *testing.T) {
		client := &fakeSessionClient{}
		w, _ := serveWithEntitlement(t, client, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Please login to proceed")
		assert.Zero(t, client.getSessionCalls)
		assert.Zero(t, client.consumeCalls)
	})

	t.Run("Garbage token rejected locally", func(t *testing.T) {
		client := &fakeSessionClient{}
		w, _ := serveWithEntitlement(t, client, "Bearer not-a-jwt")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, client.getSessionCalls)
	})

	t.Run("Token signed with wrong secret rejected locally", func(t *testing.T) {
		client := &fakeSessionClient{}
		token := signedToken(t, []byte("another-secret"))
		w, _ := serveWithEntitlement(t, client, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, client.getSessionCalls)
	})

	t.Run("Unknown session maps to 401", func(t *testing.T) {
		client := &fakeSessionClient{sessionErr: authservice.ErrUnauthenticated}
		w, _ := serveWithEntitlement(t, client, "Bearer "+signedToken(t, testSecret))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, client.consumeCalls)
	})

	t.Run("Auth service failure maps to 500", func(t *testing.T) {
		client := &fakeSessionClient{sessionErr: errors.New("connection refused")}
		w, _ := serveWithEntitlement(t, client, "Bearer "+signedToken(t, testSecret))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
	})

	t.Run("Free plan at the ceiling rejected before consuming", func(t *testing.T) {
		client := &fakeSessionClient{
			user: &authservice.User{ID: "u-1", Plan: authservice.PlanFree, UsageCount: authservice.FreeUsageLimit},
		}
		w, _ := serveWithEntitlement(t, client, "Bearer "+signedToken(t, testSecret))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Free usage exceeded")
		// Квота не списывается у уже исчерпавшего лимит
		assert.Zero(t, client.consumeCalls)
	})

	t.Run("Free plan below the ceiling passes and consumes one unit", func(t *testing.T) {
		client := &fakeSessionClient{
			user:         &authservice.User{ID: "u-1", Plan: authservice.PlanFree, UsageCount: 1},
			consumeCount: 2,
		}
		w, seenUser := serveWithEntitlement(t, client, "Bearer "+signedToken(t, testSecret))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, client.consumeCalls)
		require.NotNil(t, seenUser)
		assert.Equal(t, "u-1", seenUser.ID)
		// Счётчик в контексте обновлён значением из ConsumeUsage
		assert.Equal(t, 2, seenUser.UsageCount)
	})

	t.Run("Paid plan ignores the free ceiling", func(t *testing.T) {
		client := &fakeSessionClient{
			user:         &authservice.User{ID: "u-2", Plan: authservice.PlanPro, UsageCount: 100},
			consumeCount: 101,
		}
		w, _ := serveWithEntitlement(t, client, "Bearer "+signedToken(t, testSecret))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, client.consumeCalls)
	})

	t.Run("Quota race resolved by ConsumeUsage maps to 403", func(t *testing.T) {
		client := &fakeSessionClient{
			user:       &authservice.User{ID: "u-1", Plan: authservice.PlanFree, UsageCount: 1},
			consumeErr: authservice.ErrQuotaExceeded,
		}
		w, _ := serveWithEntitlement(t, client, "Bearer "+signedToken(t, testSecret))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Free usage exceeded")
	})
}

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Проверяем разбор заголовка через поведение middleware:
	// всё, кроме "Bearer <token>", отклоняется до похода в Auth Service.
	for _, header := range []string{"Token abc", "Bearer", "Bearer a b", "bearer"} {
		client := &fakeSessionClient{}
		w, _ := serveWithEntitlement(t, client, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Zero(t, client.getSessionCalls, header)
	}

	// Регистр схемы не важен
	client := &fakeSessionClient{
		user:         &authservice.User{ID: "u-1", Plan: authservice.PlanPro},
		consumeCount: 1,
	}
	w, _ := serveWithEntitlement(t, client, "bearer "+signedToken(t, testSecret))
	assert.Equal(t, http.StatusOK, w.Code)
}
