package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/board-game-reviews-api/internal/models"
)

//go:embed data.json
var testData []byte

// CommentRow is a comment as written in a dataset. It names its review by title.
type CommentRow struct {
	Body      string    `json:"body"`
	BelongsTo string    `json:"belongs_to"`
	CreatedBy string    `json:"created_by"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// Dataset is the full content loaded by the seed command
type Dataset struct {
	Categories []*models.Category `json:"categories"`
	Users      []*models.User     `json:"users"`
	Reviews    []*models.Review   `json:"reviews"`
	Comments   []CommentRow       `json:"comments"`
}

// TestData returns the embedded dataset
func TestData() (*Dataset, error) {
	return Parse(testData)
}

// Parse decodes a dataset and numbers reviews in file order starting at 1
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	for i, r := range ds.Reviews {
		r.ReviewID = i + 1
		if r.ReviewImgURL == "" {
			r.ReviewImgURL = models.DefaultReviewImgURL
		}
	}
	return &ds, nil
}

// ResolveComments attaches each comment to the id of the review it names.
// Comment ids follow file order starting at 1.
func (ds *Dataset) ResolveComments() ([]*models.Comment, error) {
	ids := make(map[string]int, len(ds.Reviews))
	for _, r := range ds.Reviews {
		if _, dup := ids[r.Title]; dup {
			return nil, fmt.Errorf("review title %q is not unique", r.Title)
		}
		ids[r.Title] = r.ReviewID
	}

	comments := make([]*models.Comment, 0, len(ds.Comments))
	for i, row := range ds.Comments {
		reviewID, ok := ids[row.BelongsTo]
		if !ok {
			return nil, fmt.Errorf("comment %d belongs to unknown review %q", i+1, row.BelongsTo)
		}
		comments = append(comments, &models.Comment{
			CommentID: i + 1,
			Author:    row.CreatedBy,
			ReviewID:  reviewID,
			Votes:     row.Votes,
			CreatedAt: row.CreatedAt,
			Body:      row.Body,
		})
	}
	return comments, nil
}
