package authservice

import "errors"

// Тарифные планы пользователя (значения определяет Auth Service).
const (
	PlanFree    = "free"
	PlanMonthly = "monthly"
	PlanPro     = "pro"
)

// FreeUsageLimit - потолок бесплатных генераций для плана free.
const FreeUsageLimit = 2

// ErrUnauthenticated - сессия не найдена или токен недействителен.
var ErrUnauthenticated = errors.New("session is not authenticated")

// ErrQuotaExceeded - лимит бесплатных генераций исчерпан.
var ErrQuotaExceeded = errors.New("free usage quota exceeded")

// User содержит запись пользователя, которой владеет Auth Service.
// Мы её только читаем; все мутации (включая счётчик) делает сам сервис.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Plan       string `json:"plan"`
	UsageCount int    `json:"usageCount"`
}

// SessionResponse - ответ Auth Service на запрос сессии.
type SessionResponse struct {
	User User `json:"user"`
}

// ConsumeUsageResponse - ответ на атомарное списание одной единицы квоты.
type ConsumeUsageResponse struct {
	UsageCount int `json:"usageCount"`
}

// ErrorResponse - стандартное тело ошибки Auth Service.
type ErrorResponse struct {
	Error string `json:"error"`
}
