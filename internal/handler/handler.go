package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"velia-server/internal/model"
	"velia-server/internal/tmdb"

	"velia-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MovieClient - часть клиента TMDB, нужная обработчику пересказов.
type MovieClient interface {
	GetMovie(ctx context.Context, movieID int64) (*tmdb.Movie, error)
	SearchMovie(ctx context.Context, query string) (*tmdb.Movie, error)
}

// Handler объединяет HTTP-обработчики AI-эндпоинтов.
// Все внешние клиенты внедряются через конструктор.
type Handler struct {
	text      service.TextGenerator
	speech    service.SpeechClient
	movies    MovieClient
	aiTimeout time.Duration
	logger    zerolog.Logger
}

// New создает Handler с внедренными клиентами.
func New(text service.TextGenerator, speech service.SpeechClient, movies MovieClient, aiTimeout time.Duration, logger zerolog.Logger) *Handler {
	return &Handler{
		text:      text,
		speech:    speech,
		movies:    movies,
		aiTimeout: aiTimeout,
		logger:    logger.With().Str("component", "Handler").Logger(),
	}
}

// RegisterRoutes регистрирует маршруты. Все AI-эндпоинты идут через
// entitlement middleware (аутентификация + квота) до разбора тела запроса.
func (h *Handler) RegisterRoutes(router *gin.Engine, entitlement gin.HandlerFunc) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(entitlement)
	{
		api.POST("/niche", h.suggestNiches)
		api.POST("/idea", h.generateIdeas)
		api.POST("/prompt", h.engineerPrompt)
		api.POST("/voice", h.synthesizeVoice)
		api.POST("/recap", h.generateRecap)
		api.POST("/suggest-niche", h.suggestNicheText)
	}
}

// generationContext оборачивает контекст запроса таймаутом AI-вызова.
func (h *Handler) generationContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.aiTimeout)
}

// decodeAnswers разбирает поле answers, которое клиент присылает либо
// массивом строк, либо объектом вопрос -> ответ. Ключи объекта сортируются,
// чтобы компиляция промпта была детерминированной.
func decodeAnswers(raw json.RawMessage) ([]model.QA, bool) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return nil, false
		}
		answers := make([]model.QA, 0, len(list))
		for _, answer := range list {
			answers = append(answers, model.QA{Answer: answer})
		}
		return answers, true
	}

	var pairs map[string]string
	if err := json.Unmarshal(raw, &pairs); err != nil || len(pairs) == 0 {
		return nil, false
	}
	questions := make([]string, 0, len(pairs))
	for question := range pairs {
		questions = append(questions, question)
	}
	sort.Strings(questions)
	answers := make([]model.QA, 0, len(pairs))
	for _, question := range questions {
		answers = append(answers, model.QA{Question: question, Answer: pairs[question]})
	}
	return answers, true
}
