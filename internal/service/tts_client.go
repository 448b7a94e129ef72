package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"velia-server/internal/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openaigo "github.com/sashabaranov/go-openai"
)

// ErrSpeechGenerationFailed - ошибка при синтезе речи.
var ErrSpeechGenerationFailed = errors.New("speech synthesis failed")

var ttsRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "velia_tts_requests_total",
		Help: "Total number of requests to the TTS API.",
	},
	[]string{"model", "status"},
)

// SpeechClient - интерфейс синтеза речи.
// Байты ответа отдаются клиенту как есть, с фиксированным MIME-типом.
type SpeechClient interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// openAISpeechClient реализует SpeechClient через OpenAI speech API.
// Голос и модель фиксируются конфигурацией, один вызов без ретраев.
type openAISpeechClient struct {
	client *openaigo.Client
	model  openaigo.SpeechModel
	voice  openaigo.SpeechVoice
	logger zerolog.Logger
}

// NewSpeechClient создает TTS клиент по конфигурации.
func NewSpeechClient(cfg *config.Config, logger zerolog.Logger) SpeechClient {
	clientCfg := openaigo.DefaultConfig(cfg.TTSAPIKey)
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.TTSTimeout}
	return &openAISpeechClient{
		client: openaigo.NewClientWithConfig(clientCfg),
		model:  openaigo.SpeechModel(cfg.TTSModel),
		voice:  openaigo.SpeechVoice(cfg.TTSVoice),
		logger: logger.With().Str("component", "SpeechClient").Logger(),
	}
}

func (c *openAISpeechClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", ErrSpeechGenerationFailed)
	}

	startTime := time.Now()
	resp, err := c.client.CreateSpeech(ctx, openaigo.CreateSpeechRequest{
		Model:          c.model,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: openaigo.SpeechResponseFormatMp3,
	})
	if err != nil {
		c.logger.Error().Err(err).Dur("duration", time.Since(startTime)).Msg("TTS API error")
		ttsRequestsTotal.With(prometheus.Labels{"model": string(c.model), "status": "error"}).Inc()
		return nil, fmt.Errorf("%w: %v", ErrSpeechGenerationFailed, err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		ttsRequestsTotal.With(prometheus.Labels{"model": string(c.model), "status": "error"}).Inc()
		return nil, fmt.Errorf("%w: failed to read audio stream: %v", ErrSpeechGenerationFailed, err)
	}

	c.logger.Debug().Int("audio_bytes", len(audio)).Dur("duration", time.Since(startTime)).Msg("speech synthesized")
	ttsRequestsTotal.With(prometheus.Labels{"model": string(c.model), "status": "success"}).Inc()
	return audio, nil
}
