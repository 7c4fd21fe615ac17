package seed

import (
	"testing"

	"github.com/board-game-reviews-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestData(t *testing.T) {
	ds, err := TestData()
	require.NoError(t, err)

	assert.Len(t, ds.Categories, 4)
	assert.Len(t, ds.Users, 4)
	assert.Len(t, ds.Reviews, 13)
	assert.Len(t, ds.Comments, 6)

	for i, r := range ds.Reviews {
		assert.Equal(t, i+1, r.ReviewID)
		assert.NotEmpty(t, r.ReviewBody)
		assert.False(t, r.CreatedAt.IsZero())
	}

	// One category is deliberately left without reviews
	used := make(map[string]bool)
	for _, r := range ds.Reviews {
		used[r.Category] = true
	}
	assert.False(t, used["children's games"])
}

func TestResolveComments(t *testing.T) {
	ds, err := TestData()
	require.NoError(t, err)

	comments, err := ds.ResolveComments()
	require.NoError(t, err)
	require.Len(t, comments, 6)

	assert.Equal(t, 1, comments[0].CommentID)
	assert.Equal(t, 2, comments[0].ReviewID) // Jenga
	assert.Equal(t, "bainesface", comments[0].Author)
	assert.Equal(t, 3, comments[1].ReviewID) // Ultimate Werewolf
}

func TestResolveComments_UnknownTitle(t *testing.T) {
	ds, err := Parse([]byte(`{
		"reviews": [{"title": "Agricola"}],
		"comments": [{"body": "hi", "belongs_to": "Catan", "created_by": "mallionaire"}]
	}`))
	require.NoError(t, err)

	_, err = ds.ResolveComments()
	assert.ErrorContains(t, err, `unknown review "Catan"`)
}

func TestResolveComments_DuplicateTitle(t *testing.T) {
	ds, err := Parse([]byte(`{"reviews": [{"title": "Jenga"}, {"title": "Jenga"}]}`))
	require.NoError(t, err)

	_, err = ds.ResolveComments()
	assert.Error(t, err)
}

func TestParse_DefaultImage(t *testing.T) {
	ds, err := Parse([]byte(`{"reviews": [{"title": "Agricola"}]}`))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultReviewImgURL, ds.Reviews[0].ReviewImgURL)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"reviews": 7}`))
	assert.Error(t, err)
}
