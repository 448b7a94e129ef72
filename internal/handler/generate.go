package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"velia-server/internal/authservice"
	"velia-server/internal/model"
	"velia-server/internal/prompts"
	"velia-server/internal/schemas"
	"velia-server/internal/service"

	"github.com/gin-gonic/gin"
)

// Параметры генерации на каждый эндпоинт (зафиксированы, не из конфига).
var (
	nicheParams = service.GenerationParams{
		Temperature:     service.Float32Ptr(0.7),
		TopK:            service.Int32Ptr(40),
		TopP:            service.Float32Ptr(0.95),
		MaxOutputTokens: service.Int32Ptr(1024),
	}
	ideaParams = nicheParams
	promptParams = service.GenerationParams{
		Temperature:     service.Float32Ptr(0.8),
		TopK:            service.Int32Ptr(40),
		TopP:            service.Float32Ptr(0.95),
		MaxOutputTokens: service.Int32Ptr(2048),
	}
)

type nicheRequest struct {
	Answers []string `json:"answers"`
}

// suggestNiches - POST /api/niche.
// Ответ всегда имеет форму NichePayload; при неразборчивом ответе модели
// подставляется заготовка и выставляется fallback=true.
func (h *Handler) suggestNiches(c *gin.Context) {
	var req nicheRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answers array is required"})
		return
	}

	prompt := prompts.CompileNicheSuggestion(req.Answers)

	ctx, cancel := h.generationContext(c)
	defer cancel()

	raw, _, err := h.text.GenerateText(ctx, userID(c), prompt, nicheParams)
	if err != nil {
		h.logger.Error().Err(err).Msg("niche suggestion generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	payload, usedFallback := schemas.NormalizeNiches(raw, strings.Join(req.Answers, " "))
	if usedFallback {
		generationFallbackTotal.WithLabelValues("niche").Inc()
		h.logger.Warn().Str("user_id", userID(c)).Msg("niche response unparseable, fallback served")
	}
	c.JSON(http.StatusOK, payload)
}

type ideaRequest struct {
	Answers json.RawMessage `json:"answers"`
}

// generateIdeas - POST /api/idea.
// answers принимается и массивом строк, и объектом вопрос -> ответ.
func (h *Handler) generateIdeas(c *gin.Context) {
	var req ideaRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answers object is required with question-answer pairs"})
		return
	}
	answers, ok := decodeAnswers(req.Answers)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answers object is required with question-answer pairs"})
		return
	}

	prompt := prompts.CompileContentIdeas(answers)

	ctx, cancel := h.generationContext(c)
	defer cancel()

	raw, _, err := h.text.GenerateText(ctx, userID(c), prompt, ideaParams)
	if err != nil {
		h.logger.Error().Err(err).Msg("content idea generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate content ideas"})
		return
	}

	payload, usedFallback := schemas.NormalizeIdeas(raw, model.AnswerText(answers))
	if usedFallback {
		generationFallbackTotal.WithLabelValues("idea").Inc()
		h.logger.Warn().Str("user_id", userID(c)).Msg("idea response unparseable, fallback served")
	}
	c.JSON(http.StatusOK, payload)
}

type promptRequest struct {
	Prompt      string `json:"prompt"`
	Purpose     string `json:"purpose"`
	TargetModel string `json:"targetModel"`
}

// engineerPrompt - POST /api/prompt.
func (h *Handler) engineerPrompt(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" || req.Purpose == "" || req.TargetModel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}
	if !prompts.IsValidPurpose(req.Purpose) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid purpose is required: video, image, text, or audio"})
		return
	}
	purpose := strings.ToLower(req.Purpose)

	metaPrompt, err := prompts.CompileEngineeredPrompt(req.Prompt, purpose, req.TargetModel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid purpose is required: video, image, text, or audio"})
		return
	}

	ctx, cancel := h.generationContext(c)
	defer cancel()

	raw, _, err := h.text.GenerateText(ctx, userID(c), metaPrompt, promptParams)
	if err != nil {
		h.logger.Error().Err(err).Msg("prompt engineering generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	payload, usedFallback := schemas.NormalizeGeneratedPrompt(raw, req.Prompt, purpose)
	if usedFallback {
		generationFallbackTotal.WithLabelValues("prompt").Inc()
		h.logger.Warn().Str("user_id", userID(c)).Msg("prompt response unparseable, fallback served")
	}
	c.JSON(http.StatusOK, payload)
}

type suggestNicheRequest struct {
	Answers []string `json:"answers"`
}

// suggestNicheText - POST /api/suggest-niche.
// Упрощенный вариант подбора ниши: ответ - свободный текст, без схемы.
func (h *Handler) suggestNicheText(c *gin.Context) {
	var req suggestNicheRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answers array is required"})
		return
	}

	prompt := prompts.CompileSimpleNiche(req.Answers)

	ctx, cancel := h.generationContext(c)
	defer cancel()

	raw, _, err := h.text.GenerateText(ctx, userID(c), prompt, service.GenerationParams{})
	if err != nil {
		h.logger.Error().Err(err).Msg("simple niche suggestion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": strings.TrimSpace(raw)})
}

// userID достает идентификатор пользователя, положенный entitlement middleware.
func userID(c *gin.Context) string {
	if user, ok := authservice.UserFromContext(c); ok {
		return user.ID
	}
	return ""
}
