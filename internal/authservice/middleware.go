package authservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Ключ, под которым middleware кладет пользователя в контекст Gin.
const ContextUserKey = "user"

// SessionClient описывает часть клиента Auth Service, нужную middleware.
// Выделен в интерфейс, чтобы в тестах подставлять фейк.
type SessionClient interface {
	GetSession(ctx context.Context, token string) (*User, error)
	ConsumeUsage(ctx context.Context, token string) (int, error)
}

// EntitlementMiddleware возвращает Gin middleware с трёхисходным контрактом:
// пропустить / отклонить неаутентифицированного (401) / отклонить по квоте (403).
// Любая ошибка самого Auth Service отображается в 500.
//
// Порядок проверок:
//  1. подпись токена проверяется локально общим секретом (без сети);
//  2. сессия разрешается через Auth Service;
//  3. для плана free с исчерпанным счётчиком - отказ до списания;
//  4. одна единица квоты списывается атомарным вызовом ConsumeUsage.
func EntitlementMiddleware(client SessionClient, secret []byte, timeout time.Duration, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login to proceed"})
			return
		}

		// Локальная проверка подписи - отсекаем мусорные токены без похода в сеть.
		if err := verifySessionToken(token, secret); err != nil {
			logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("session token rejected locally")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login to proceed"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		user, err := client.GetSession(ctx, token)
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login to proceed"})
				return
			}
			logger.Error().Err(err).Msg("failed to resolve session via auth service")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if user.Plan == PlanFree && user.UsageCount >= FreeUsageLimit {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Free usage exceeded"})
			return
		}

		usageCount, err := client.ConsumeUsage(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, ErrQuotaExceeded):
				// Auth Service - последняя инстанция по квоте: два почти
				// одновременных запроса не пройдут оба через этот вызов.
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Free usage exceeded"})
			case errors.Is(err, ErrUnauthenticated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login to proceed"})
			default:
				logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to consume usage unit")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}
		user.UsageCount = usageCount

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// UserFromContext достает пользователя, положенного EntitlementMiddleware.
func UserFromContext(c *gin.Context) (*User, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*User)
	return user, ok
}

// extractBearerToken разбирает заголовок Authorization вида "Bearer <token>".
func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("authorization header missing")
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("malformed authorization header")
	}
	return parts[1], nil
}

// verifySessionToken проверяет HMAC подпись сессионного токена общим секретом.
func verifySessionToken(tokenString string, secret []byte) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("token parse error: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
