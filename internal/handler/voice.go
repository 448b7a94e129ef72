package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type voiceRequest struct {
	Text string `json:"text"`
}

// synthesizeVoice - POST /api/voice.
// Байты провайдера отдаются без изменений как audio/mpeg.
func (h *Handler) synthesizeVoice(c *gin.Context) {
	var req voiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	ctx, cancel := h.generationContext(c)
	defer cancel()

	audio, err := h.speech.Synthesize(ctx, req.Text)
	if err != nil {
		h.logger.Error().Err(err).Msg("speech synthesis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Header("Content-Disposition", `inline; filename="voiceover.mp3"`)
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
