package handler_test

import (
	"net/http"
	"testing"

	"velia-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeVoice(t *testing.T) {
	t.Run("Audio bytes returned verbatim as mp3", func(t *testing.T) {
		audio := []byte{0xFF, 0xFB, 0x90, 0x00, 0x01, 0x02}
		speech := &fakeSpeechClient{audio: audio}
		router := newTestRouter(&fakeTextGenerator{}, speech, &fakeMovieClient{})

		w := postJSON(router, "/api/voice", gin.H{"text": "Hello, world"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
		assert.Equal(t, `inline; filename="voiceover.mp3"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, audio, w.Body.Bytes())
		assert.Equal(t, "Hello, world", speech.lastText)
	})

	t.Run("Missing text rejected before synthesis", func(t *testing.T) {
		speech := &fakeSpeechClient{}
		router := newTestRouter(&fakeTextGenerator{}, speech, &fakeMovieClient{})

		w := postJSON(router, "/api/voice", gin.H{"text": ""})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing required parameters")
		assert.Zero(t, speech.calls)
	})

	t.Run("Synthesis failure maps to 500", func(t *testing.T) {
		speech := &fakeSpeechClient{err: service.ErrSpeechGenerationFailed}
		router := newTestRouter(&fakeTextGenerator{}, speech, &fakeMovieClient{})

		w := postJSON(router, "/api/voice", gin.H{"text": "Hello"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
