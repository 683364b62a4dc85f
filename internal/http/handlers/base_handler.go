// README: Base handler utilities (JSON helpers, error-to-status mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripstoryer/internal/ai"
	"tripstoryer/internal/modules/usage"
	"tripstoryer/internal/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps planner failures onto HTTP statuses.
// Generation errors carry a bounded raw-output excerpt and are safe to surface.
func writePlanError(c *gin.Context, err error) {
	var genErr *ai.GenerationError
	switch {
	case errors.Is(err, trip.ErrInvalidRequest):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, usage.ErrQuotaExceeded):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &genErr):
		writeError(c, http.StatusInternalServerError, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
