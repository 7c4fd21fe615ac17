package models

import (
	"time"
)

// DefaultReviewImgURL is used when a review is created without an image
const DefaultReviewImgURL = "https://images.pexels.com/photos/163064/play-stone-network-networked-interactive-163064.jpeg"

// Review represents a board-game review. CommentCount is derived at read time.
type Review struct {
	ReviewID     int       `json:"review_id" db:"review_id"`
	Title        string    `json:"title" db:"title"`
	ReviewBody   string    `json:"review_body,omitempty" db:"review_body"`
	Designer     string    `json:"designer" db:"designer"`
	ReviewImgURL string    `json:"review_img_url" db:"review_img_url"`
	Votes        int       `json:"votes" db:"votes"`
	Category     string    `json:"category" db:"category"`
	Owner        string    `json:"owner" db:"owner"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	CommentCount int       `json:"comment_count" db:"comment_count"`
}

// NewReview is the request body for POST /api/reviews
type NewReview struct {
	Owner        string `json:"owner" validate:"required,max=100"`
	Title        string `json:"title" validate:"required,max=200"`
	ReviewBody   string `json:"review_body" validate:"required,max=1000"`
	Designer     string `json:"designer" validate:"required,max=100"`
	Category     string `json:"category" validate:"required,max=100"`
	ReviewImgURL string `json:"review_img_url,omitempty" validate:"omitempty,url,max=200"`
}

// ReviewPage is one page of the reviews listing
type ReviewPage struct {
	Reviews    []Review `json:"reviews"`
	TotalCount int      `json:"total_count"`
}
