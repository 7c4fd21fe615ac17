package models

import (
	"time"
)

// Comment represents a comment left on a review
type Comment struct {
	CommentID int       `json:"comment_id" db:"comment_id"`
	Author    string    `json:"author" db:"author"`
	ReviewID  int       `json:"review_id" db:"review_id"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Body      string    `json:"body" db:"body"`
}

// NewComment is the request body for POST /api/reviews/:review_id/comments
type NewComment struct {
	Username string `json:"username" validate:"required,max=100"`
	Body     string `json:"body" validate:"required,max=1000"`
}

// MaxBodyLength is the character limit shared by review_body and comment body
const MaxBodyLength = 1000
