package api

import (
	"net/http"
	"strconv"

	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/board-game-reviews-api/internal/metrics"
	"github.com/board-game-reviews-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError writes err as {"message": ...}. Unexpected errors are logged
// and hidden behind a generic 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	appErr, ok := apperr.Translate(err)
	if !ok {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("Request failed")
	} else if appErr.Status < http.StatusInternalServerError {
		metrics.RecordRejection(routeOf(c), strconv.Itoa(appErr.Status))
	}

	c.JSON(appErr.Status, gin.H{"message": appErr.Message})
}

// bindBody decodes a JSON object body, keeping each property raw for validation
func bindBody(c *gin.Context, log zerolog.Logger) (service.Body, bool) {
	var body service.Body
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, log, apperr.BadRequest("Invalid request body"))
		return nil, false
	}
	if body == nil {
		body = service.Body{}
	}
	return body, true
}
