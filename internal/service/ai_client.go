package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"velia-server/internal/config"
	"velia-server/internal/utils"

	"github.com/google/generative-ai-go/genai"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openaigo "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// ErrAIGenerationFailed - ошибка при генерации текста AI
var ErrAIGenerationFailed = errors.New("ai text generation failed")

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "velia_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "velia_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	aiTotalTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "velia_ai_total_tokens",
			Help:    "Histogram of total token counts (prompt + completion).",
			Buckets: prometheus.LinearBuckets(350, 350, 20),
		},
		[]string{"model"},
	)
)

// GenerationParams - параметры генерации для одного вызова.
// Используем указатели, чтобы отличить 0/0.0 от отсутствия.
type GenerationParams struct {
	Temperature     *float32
	TopK            *int32
	TopP            *float32
	MaxOutputTokens *int32
}

// UsageInfo содержит информацию об использовании токенов.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// TextGenerator - интерфейс для взаимодействия с AI API.
// Клиент конструируется явно и передается в обработчики: никаких
// глобальных клиентов уровня пакета, в тестах подставляется фейк.
type TextGenerator interface {
	// GenerateText генерирует текст по готовому промпту.
	// Возвращает сырой текст модели, информацию об использовании и ошибку.
	GenerateText(ctx context.Context, userID, prompt string, params GenerationParams) (string, UsageInfo, error)
}

// NewTextGenerator создает генератор текста по конфигурации.
func NewTextGenerator(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (TextGenerator, error) {
	switch cfg.AIProvider {
	case "gemini":
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.AIAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return &geminiClient{
			client: client,
			model:  cfg.AIModel,
			logger: logger.With().Str("component", "GeminiClient").Logger(),
		}, nil
	case "openai":
		clientCfg := openaigo.DefaultConfig(cfg.AIAPIKey)
		if cfg.AIBaseURL != "" {
			clientCfg.BaseURL = cfg.AIBaseURL
		}
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.AITimeout}
		return &openAIClient{
			client: openaigo.NewClientWithConfig(clientCfg),
			model:  cfg.AIModel,
			logger: logger.With().Str("component", "OpenAIClient").Logger(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}

// --- Gemini Client Implementation ---

// geminiClient реализует TextGenerator через google/generative-ai-go.
type geminiClient struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

func (c *geminiClient) GenerateText(ctx context.Context, userID, prompt string, params GenerationParams) (string, UsageInfo, error) {
	usageInfo := UsageInfo{}

	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: prompt is empty", ErrAIGenerationFailed)
	}

	model := c.client.GenerativeModel(c.model)
	if params.Temperature != nil {
		model.SetTemperature(*params.Temperature)
	}
	if params.TopK != nil {
		model.SetTopK(*params.TopK)
	}
	if params.TopP != nil {
		model.SetTopP(*params.TopP)
	}
	if params.MaxOutputTokens != nil {
		model.SetMaxOutputTokens(*params.MaxOutputTokens)
	}

	startTime := time.Now()
	c.logger.Debug().Str("model", c.model).Int("prompt_bytes", len(prompt)).
		Str("user_id", userID).Msg("sending request to Gemini")

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	duration := time.Since(startTime)
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	if err != nil {
		c.logger.Error().Err(err).Dur("duration", duration).Str("user_id", userID).Msg("Gemini API error")
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	text := extractGeminiText(resp)
	if text == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty response from model", ErrAIGenerationFailed)
	}

	if resp.UsageMetadata != nil {
		usageInfo = UsageInfo{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	} else {
		// Провайдер не отдал статистику - оцениваем локально.
		usageInfo.PromptTokens = utils.EstimateTokens(prompt)
		usageInfo.CompletionTokens = utils.EstimateTokens(text)
		usageInfo.TotalTokens = usageInfo.PromptTokens + usageInfo.CompletionTokens
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiTotalTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.TotalTokens))
	return text, usageInfo, nil
}

// extractGeminiText склеивает текстовые части первого кандидата.
func extractGeminiText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// Close освобождает ресурсы нижележащего gRPC клиента.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

// --- OpenAI Client Implementation ---

// openAIClient реализует TextGenerator через go-openai.
// Подходит и для OpenAI-совместимых прокси (OpenRouter и т.п.).
type openAIClient struct {
	client *openaigo.Client
	model  string
	logger zerolog.Logger
}

func (c *openAIClient) GenerateText(ctx context.Context, userID, prompt string, params GenerationParams) (string, UsageInfo, error) {
	usageInfo := UsageInfo{}

	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: prompt is empty", ErrAIGenerationFailed)
	}

	req := openaigo.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleUser, Content: prompt},
		},
	}
	if params.Temperature != nil {
		req.Temperature = *params.Temperature
	}
	if params.TopP != nil {
		req.TopP = *params.TopP
	}
	if params.MaxOutputTokens != nil {
		req.MaxTokens = int(*params.MaxOutputTokens)
	}

	startTime := time.Now()
	c.logger.Debug().Str("model", c.model).Int("prompt_bytes", len(prompt)).
		Str("user_id", userID).Msg("sending request to OpenAI")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(startTime)
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	if err != nil {
		c.logger.Error().Err(err).Dur("duration", duration).Str("user_id", userID).Msg("OpenAI API error")
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty response from model", ErrAIGenerationFailed)
	}

	usageInfo = UsageInfo{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiTotalTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.TotalTokens))
	return resp.Choices[0].Message.Content, usageInfo, nil
}

// Float32Ptr возвращает указатель на float32 (для GenerationParams).
func Float32Ptr(f float32) *float32 { return &f }

// Int32Ptr возвращает указатель на int32 (для GenerationParams).
func Int32Ptr(i int32) *int32 { return &i }
