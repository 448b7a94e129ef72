package authservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client предоставляет методы для взаимодействия с Auth Service.
// Сессии и счётчики использования целиком принадлежат этому сервису:
// здесь нет ни кэша, ни повторных попыток.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientConfig содержит настройки для клиента Auth Service
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient создает новый клиент для Auth Service
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// GetSession разрешает пользовательский токен в запись пользователя.
// Возвращает ErrUnauthenticated, если сессия не найдена.
func (c *Client) GetSession(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/session", nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании запроса: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выполнении запроса к Auth Service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var sessionResp SessionResponse
		if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
			return nil, fmt.Errorf("ошибка при разборе ответа: %w", err)
		}
		return &sessionResp.User, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthenticated
	default:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return nil, fmt.Errorf("ошибка при получении сессии, код: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("ошибка при получении сессии: %s", errResp.Error)
	}
}

// ConsumeUsage атомарно списывает одну единицу квоты пользователя.
// Проверка "есть ли квота" и инкремент выполняются одной операцией на
// стороне Auth Service, поэтому гонка check-then-increment исключена.
// Возвращает ErrQuotaExceeded, если квота исчерпана.
func (c *Client) ConsumeUsage(ctx context.Context, token string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/usage/consume", nil)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании запроса: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка при выполнении запроса к Auth Service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var consumeResp ConsumeUsageResponse
		if err := json.NewDecoder(resp.Body).Decode(&consumeResp); err != nil {
			return 0, fmt.Errorf("ошибка при разборе ответа: %w", err)
		}
		return consumeResp.UsageCount, nil
	case http.StatusUnauthorized:
		return 0, ErrUnauthenticated
	case http.StatusForbidden:
		return 0, ErrQuotaExceeded
	default:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return 0, fmt.Errorf("ошибка при списании квоты, код: %d", resp.StatusCode)
		}
		return 0, fmt.Errorf("ошибка при списании квоты: %s", errResp.Error)
	}
}
