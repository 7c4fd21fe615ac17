package api

import (
	"net/http"

	"github.com/board-game-reviews-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /api/reviews/:review_id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.services.Comment.ListComments(c.Request.Context(),
		c.Param("review_id"), c.Query("limit"), c.Query("page"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// PostComment handles POST /api/reviews/:review_id/comments
func (h *CommentHandler) PostComment(c *gin.Context) {
	body, ok := bindBody(c, h.log)
	if !ok {
		return
	}

	comment, err := h.services.Comment.PostComment(c.Request.Context(), c.Param("review_id"), body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// PatchComment handles PATCH /api/comments/:comment_id
func (h *CommentHandler) PatchComment(c *gin.Context) {
	body, ok := bindBody(c, h.log)
	if !ok {
		return
	}

	comment, err := h.services.Comment.PatchComment(c.Request.Context(), c.Param("comment_id"), body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.services.Comment.DeleteComment(c.Request.Context(), c.Param("comment_id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
