package api

import (
	"net/http"

	"github.com/board-game-reviews-api/internal/query"
	"github.com/board-game-reviews-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(services *service.Services, log zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		services: services,
		log:      log.With().Str("handler", "review").Logger(),
	}
}

// ListReviews handles GET /api/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	page, err := h.services.Review.ListReviews(c.Request.Context(), query.ReviewListParams{
		SortBy:   c.Query("sort_by"),
		Order:    c.Query("order"),
		Category: c.Query("category"),
		Limit:    c.Query("limit"),
		Page:     c.Query("page"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetReview handles GET /api/reviews/:review_id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.services.Review.GetReview(c.Request.Context(), c.Param("review_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	body, ok := bindBody(c, h.log)
	if !ok {
		return
	}

	review, err := h.services.Review.CreateReview(c.Request.Context(), body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// PatchReview handles PATCH /api/reviews/:review_id
func (h *ReviewHandler) PatchReview(c *gin.Context) {
	body, ok := bindBody(c, h.log)
	if !ok {
		return
	}

	review, err := h.services.Review.PatchReview(c.Request.Context(), c.Param("review_id"), body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReview handles DELETE /api/reviews/:review_id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.services.Review.DeleteReview(c.Request.Context(), c.Param("review_id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
