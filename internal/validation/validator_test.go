package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// body builds a raw request body from a JSON literal
func body(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func rejection(t *testing.T, err error) *apperr.Error {
	t.Helper()
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %v", err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	return appErr
}

func TestReviewPatch(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		want        []query.Assignment
		wantMessage string
	}{
		{
			name: "vote increment",
			body: `{"inc_votes": 3}`,
			want: []query.Assignment{{Column: "votes", Value: int32(3), ClampedIncrement: true}},
		},
		{
			name: "vote decrement is clamped, not rejected",
			body: `{"inc_votes": -100}`,
			want: []query.Assignment{{Column: "votes", Value: int32(-100), ClampedIncrement: true}},
		},
		{
			name: "zero delta",
			body: `{"inc_votes": 0}`,
			want: []query.Assignment{{Column: "votes", Value: int32(0), ClampedIncrement: true}},
		},
		{
			name: "both fields in schema order",
			body: `{"review_body": "Still great", "inc_votes": 1}`,
			want: []query.Assignment{
				{Column: "votes", Value: int32(1), ClampedIncrement: true},
				{Column: "review_body", Value: "Still great"},
			},
		},
		{
			name:        "unknown property is named",
			body:        `{"inc_votes": 1, "extra": "x"}`,
			wantMessage: `The property "extra" is not valid in update body`,
		},
		{
			name:        "first unknown property in sorted order",
			body:        `{"zzz": 1, "name": "mitch", "inc_votes": 1}`,
			wantMessage: `The property "name" is not valid in update body`,
		},
		{
			name:        "empty body",
			body:        `{}`,
			wantMessage: "No valid properties on request body",
		},
		{
			name:        "empty text",
			body:        `{"review_body": ""}`,
			wantMessage: "review_body cannot be null",
		},
		{
			name:        "null text",
			body:        `{"review_body": null}`,
			wantMessage: "review_body cannot be null",
		},
		{
			name:        "text of wrong type",
			body:        `{"review_body": 42}`,
			wantMessage: "review_body must be a string",
		},
		{
			name:        "non-integer votes",
			body:        `{"inc_votes": "cat"}`,
			wantMessage: "inc_votes must be an integer",
		},
		{
			name:        "fractional votes",
			body:        `{"inc_votes": 1.5}`,
			wantMessage: "inc_votes must be an integer",
		},
		{
			name:        "null votes",
			body:        `{"inc_votes": null}`,
			wantMessage: "inc_votes must be an integer",
		},
		{
			name:        "votes overflow",
			body:        `{"inc_votes": 99999999999}`,
			wantMessage: "inc_votes must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := ReviewPatch.Validate(body(t, tt.body))
			if tt.wantMessage != "" {
				assert.Nil(t, patch)
				assert.Equal(t, tt.wantMessage, rejection(t, err).Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, patch.Assignments)
		})
	}
}

func TestReviewPatch_BodyLength(t *testing.T) {
	_, err := ReviewPatch.Validate(map[string]json.RawMessage{
		"review_body": mustJSON(t, strings.Repeat("x", models.MaxBodyLength)),
	})
	assert.NoError(t, err)

	_, err = ReviewPatch.Validate(map[string]json.RawMessage{
		"review_body": mustJSON(t, strings.Repeat("x", models.MaxBodyLength+1)),
	})
	assert.Equal(t, "review_body exceeds 1000 characters", rejection(t, err).Message)

	// Length is counted in characters, not bytes
	_, err = ReviewPatch.Validate(map[string]json.RawMessage{
		"review_body": mustJSON(t, strings.Repeat("é", models.MaxBodyLength)),
	})
	assert.NoError(t, err)
}

func TestCommentPatch(t *testing.T) {
	patch, err := CommentPatch.Validate(body(t, `{"inc_votes": -1, "body": "edited"}`))
	require.NoError(t, err)
	assert.Len(t, patch.Assignments, 2)

	_, err = CommentPatch.Validate(body(t, `{"review_body": "wrong resource"}`))
	assert.Equal(t, `The property "review_body" is not valid in update body`, rejection(t, err).Message)

	_, err = CommentPatch.Validate(body(t, `{"body": ""}`))
	assert.Equal(t, "body cannot be null", rejection(t, err).Message)
}

func TestUserPatch(t *testing.T) {
	patch, err := UserPatch.Validate(body(t, `{"name": "Haz"}`))
	require.NoError(t, err)
	assert.Equal(t, []query.Assignment{{Column: "name", Value: "Haz"}}, patch.Assignments)

	_, err = UserPatch.Validate(body(t, `{"inc_votes": 1}`))
	assert.Equal(t, `The property "inc_votes" is not valid in update body`, rejection(t, err).Message)

	_, err = UserPatch.Validate(body(t, `{}`))
	assert.Equal(t, "No valid properties on request body", rejection(t, err).Message)
}

func TestSchemaFields(t *testing.T) {
	names := make([]string, 0)
	for _, f := range ReviewPatch.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"inc_votes", "review_body"}, names)
	assert.Equal(t, "review", ReviewPatch.Resource)
}

func TestDecodeCreate_Comment(t *testing.T) {
	v := NewValidator()

	var c models.NewComment
	err := v.DecodeCreate(body(t, `{"username": "mallionaire", "body": "Thoroughly enjoyed this game!"}`), &c)
	require.NoError(t, err)
	assert.Equal(t, "mallionaire", c.Username)
	assert.Equal(t, "Thoroughly enjoyed this game!", c.Body)

	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{"unknown property", `{"username": "mallionaire", "body": "hi", "age": 30}`, `The property "age" is not valid in post body`},
		{"missing username", `{"body": "hi"}`, "username is required"},
		{"missing body", `{"username": "mallionaire"}`, "body is required"},
		{"empty body", `{"username": "mallionaire", "body": ""}`, "body is required"},
		{"wrong type", `{"username": 7, "body": "hi"}`, "username must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c models.NewComment
			err := v.DecodeCreate(body(t, tt.body), &c)
			assert.Equal(t, tt.wantMessage, rejection(t, err).Message)
		})
	}
}

func TestDecodeCreate_BodyTooLong(t *testing.T) {
	v := NewValidator()

	var c models.NewComment
	err := v.DecodeCreate(map[string]json.RawMessage{
		"username": mustJSON(t, "mallionaire"),
		"body":     mustJSON(t, strings.Repeat("x", 1001)),
	}, &c)
	assert.Equal(t, "body exceeds 1000 characters", rejection(t, err).Message)
}

func TestDecodeCreate_Review(t *testing.T) {
	v := NewValidator()

	var r models.NewReview
	err := v.DecodeCreate(body(t, `{
		"owner": "mallionaire",
		"title": "Catan",
		"review_body": "Trade wood for sheep",
		"designer": "Klaus Teuber",
		"category": "euro game"
	}`), &r)
	require.NoError(t, err)
	assert.Empty(t, r.ReviewImgURL)

	err = v.DecodeCreate(body(t, `{
		"owner": "mallionaire",
		"title": "Catan",
		"review_body": "Trade wood for sheep",
		"designer": "Klaus Teuber",
		"category": "euro game",
		"review_img_url": "not a url"
	}`), &r)
	assert.Equal(t, "review_img_url must be a valid URL", rejection(t, err).Message)
}

func TestDecodeCreate_User(t *testing.T) {
	v := NewValidator()

	var u models.NewUser
	err := v.DecodeCreate(body(t, `{"username": "tickle122", "name": "Tom Tickle", "avatar_url": "https://example.com/a.png"}`), &u)
	require.NoError(t, err)

	var missing models.NewUser
	err = v.DecodeCreate(body(t, `{"username": "tickle122", "name": "Tom Tickle"}`), &missing)
	assert.Equal(t, "avatar_url is required", rejection(t, err).Message)
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
