package config

import (
	"fmt"
	"log"
	"time"

	"velia-server/internal/utils"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию для Velia Server
type Config struct {
	// Настройки сервера
	Port     string `envconfig:"PORT" default:"8080"`
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// Настройки CORS
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Rate limit для /api (запросов в минуту с одного IP)
	RateLimitPerMinute uint `envconfig:"RATE_LIMIT_PER_MINUTE" default:"20"`

	// Настройки AI (генерация текста)
	AIProvider string        `envconfig:"AI_PROVIDER" default:"gemini"` // gemini | openai
	AIModel    string        `envconfig:"AI_MODEL" default:"gemini-2.0-flash-exp"`
	AIBaseURL  string        `envconfig:"AI_BASE_URL" default:""` // для openai-совместимых прокси (OpenRouter и т.п.)
	AITimeout  time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	// Секретное поле БЕЗ envconfig тега
	AIAPIKey string

	// Настройки TTS (всегда OpenAI speech API)
	TTSModel   string        `envconfig:"TTS_MODEL" default:"tts-1"`
	TTSVoice   string        `envconfig:"TTS_VOICE" default:"alloy"`
	TTSTimeout time.Duration `envconfig:"TTS_TIMEOUT" default:"60s"`
	// Секретное поле БЕЗ envconfig тега
	TTSAPIKey string

	// Настройки TMDB (метаданные фильмов)
	TMDBBaseURL string        `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	TMDBTimeout time.Duration `envconfig:"TMDB_TIMEOUT" default:"10s"`
	// Секретное поле БЕЗ envconfig тега
	TMDBAPIKey string

	// Настройки Auth Service (сессии и квоты)
	AuthServiceURL string        `envconfig:"AUTH_SERVICE_URL" default:"http://localhost:8081"`
	AuthTimeout    time.Duration `envconfig:"AUTH_TIMEOUT" default:"10s"`
	// Секретное поле БЕЗ envconfig тега
	AuthSecret string
}

// LoadConfig загружает конфигурацию из переменных окружения и секретов
func LoadConfig() (*Config, error) {
	var cfg Config
	// Загружаем НЕсекретные переменные
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Загружаем ОБЯЗАТЕЛЬНЫЕ секреты
	var loadErr error
	switch cfg.AIProvider {
	case "gemini":
		cfg.AIAPIKey, loadErr = utils.ReadSecret("gemini_api_key")
	case "openai":
		cfg.AIAPIKey, loadErr = utils.ReadSecret("openai_api_key")
	default:
		return nil, fmt.Errorf("неизвестный AI_PROVIDER: %q (ожидается gemini или openai)", cfg.AIProvider)
	}
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.TTSAPIKey, loadErr = utils.ReadSecret("openai_api_key")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.TMDBAPIKey, loadErr = utils.ReadSecret("tmdb_api_key")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.AuthSecret, loadErr = utils.ReadSecret("auth_secret")
	if loadErr != nil {
		return nil, loadErr
	}

	// Логируем загруженную конфигурацию (кроме ключей)
	log.Printf("Конфигурация загружена (секреты из файлов):")
	log.Printf("  Port: %s, Env: %s, LogLevel: %s", cfg.Port, cfg.Env, cfg.LogLevel)
	log.Printf("  AI Provider: %s, Model: %s, Timeout: %v", cfg.AIProvider, cfg.AIModel, cfg.AITimeout)
	log.Printf("  TTS Model: %s, Voice: %s", cfg.TTSModel, cfg.TTSVoice)
	log.Printf("  TMDB Base URL: %s", cfg.TMDBBaseURL)
	log.Printf("  Auth Service URL: %s", cfg.AuthServiceURL)
	log.Println("  API Keys: [ЗАГРУЖЕНЫ]")

	return &cfg, nil
}
