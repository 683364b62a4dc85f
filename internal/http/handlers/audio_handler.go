// README: Audio handler for GET /api/chapter/:id/audio.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripstoryer/internal/metrics"
)

// Synthesizer is the speech contract the handler depends on.
// Implemented by narration.Client; stubbed in tests.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type AudioHandler struct {
	tts Synthesizer
}

func NewAudioHandler(tts Synthesizer) *AudioHandler {
	return &AudioHandler{tts: tts}
}

// Get handles GET /api/chapter/:id/audio. The chapter id is informational
// only: narration is keyed purely by the text parameter.
func (h *AudioHandler) Get(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		metrics.NarrationRequests.WithLabelValues("bad_request").Inc()
		writeError(c, http.StatusBadRequest, "provide ?text=... query parameter")
		return
	}

	audio, err := h.tts.Synthesize(c.Request.Context(), text)
	if err != nil {
		metrics.NarrationRequests.WithLabelValues("error").Inc()
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.NarrationRequests.WithLabelValues("ok").Inc()
	metrics.NarrationBytes.Add(float64(len(audio)))
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
