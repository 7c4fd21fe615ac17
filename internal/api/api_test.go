package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/board-game-reviews-api/internal/api"
	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/board-game-reviews-api/internal/config"
	"github.com/board-game-reviews-api/internal/mocks"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
	"github.com/board-game-reviews-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMocks struct {
	review   *mocks.MockReviewService
	comment  *mocks.MockCommentService
	user     *mocks.MockUserService
	category *mocks.MockCategoryService
	health   *mocks.MockHealthService
}

func setupTestRouter() (*gin.Engine, *testMocks) {
	gin.SetMode(gin.TestMode)

	m := &testMocks{
		review:   mocks.NewMockReviewService(),
		comment:  mocks.NewMockCommentService(),
		user:     mocks.NewMockUserService(),
		category: mocks.NewMockCategoryService(),
		health:   &mocks.MockHealthService{},
	}

	services := &service.Services{
		Review:   m.review,
		Comment:  m.comment,
		User:     m.user,
		Category: m.category,
		Health:   m.health,
	}

	return api.NewRouter(services, zerolog.Nop()), m
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHealthEndpoint(t *testing.T) {
	router, m := setupTestRouter()

	w := doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "board-game-reviews-api", response["service"])

	m.health.Err = errors.New("connection refused")
	w = doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	doRequest(router, http.MethodGet, "/api/reviews", "")
	w := doRequest(router, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reviews_api_requests_total")
	assert.Contains(t, w.Body.String(), `route="/api/reviews"`)
}

func TestEndpointsListing(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, http.MethodGet, "/api", "")
	require.Equal(t, http.StatusOK, w.Code)

	endpoints, ok := decode(t, w)["endpoints"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, endpoints, "GET /api/reviews")
	assert.Contains(t, endpoints, "POST /api/reviews/:review_id/comments")
}

func TestInvalidPath(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, http.MethodGet, "/api/not-a-route", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid path", decode(t, w)["message"])
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, http.MethodGet, "/api/categories", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, http.MethodOptions, "/api/reviews/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestListReviews_PassesQueryParameters(t *testing.T) {
	router, m := setupTestRouter()
	m.review.ListFunc = func(ctx context.Context, params query.ReviewListParams) (*models.ReviewPage, error) {
		return &models.ReviewPage{Reviews: []models.Review{{ReviewID: 10}}, TotalCount: 13}, nil
	}

	w := doRequest(router, http.MethodGet, "/api/reviews?sort_by=votes&order=desc&limit=3&page=2&category=dexterity", "")
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, m.review.ListParams, 1)
	assert.Equal(t, query.ReviewListParams{
		SortBy: "votes", Order: "desc", Category: "dexterity", Limit: "3", Page: "2",
	}, m.review.ListParams[0])

	response := decode(t, w)
	assert.Equal(t, float64(13), response["total_count"])
	assert.Len(t, response["reviews"], 1)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"bad request", apperr.BadRequest(`Invalid sort query, column "x" does not exist`), http.StatusBadRequest, `Invalid sort query, column "x" does not exist`},
		{"not found", apperr.NotFound(`Category "bananas" not found`), http.StatusNotFound, `Category "bananas" not found`},
		{"conflict", apperr.Conflict(`slug "x" already exists`), http.StatusConflict, `slug "x" already exists`},
		{"unexpected error is hidden", errors.New("pq: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := setupTestRouter()
			m.review.ListFunc = func(ctx context.Context, params query.ReviewListParams) (*models.ReviewPage, error) {
				return nil, tt.err
			}

			w := doRequest(router, http.MethodGet, "/api/reviews", "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, map[string]any{"message": tt.wantMessage}, decode(t, w))
		})
	}
}

func TestGetReview(t *testing.T) {
	router, m := setupTestRouter()
	m.review.GetFunc = func(ctx context.Context, id string) (*models.Review, error) {
		if id != "2" {
			return nil, apperr.NotFound("Review id %s not found", id)
		}
		return &models.Review{ReviewID: 2, Title: "Jenga", CommentCount: 3}, nil
	}

	w := doRequest(router, http.MethodGet, "/api/reviews/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	review := decode(t, w)["review"].(map[string]any)
	assert.Equal(t, "Jenga", review["title"])
	assert.Equal(t, float64(3), review["comment_count"])

	w = doRequest(router, http.MethodGet, "/api/reviews/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Review id 99 not found", decode(t, w)["message"])
}

func TestPatchReview_ForwardsRawBody(t *testing.T) {
	router, m := setupTestRouter()

	w := doRequest(router, http.MethodPatch, "/api/reviews/1", `{"inc_votes": -3, "extra": "x"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, m.review.Bodies, 1)
	assert.JSONEq(t, "-3", string(m.review.Bodies[0]["inc_votes"]))
	assert.JSONEq(t, `"x"`, string(m.review.Bodies[0]["extra"]))
}

func TestInvalidJSONBody(t *testing.T) {
	router, m := setupTestRouter()

	for _, body := range []string{`{"inc_votes": `, `[1, 2]`, `"text"`} {
		w := doRequest(router, http.MethodPatch, "/api/reviews/1", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Invalid request body", decode(t, w)["message"])
	}
	assert.Empty(t, m.review.Bodies)
}

func TestDeleteEndpoints(t *testing.T) {
	router, m := setupTestRouter()

	w := doRequest(router, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	m.comment.DeleteFunc = func(ctx context.Context, id string) error {
		return apperr.NotFound("Comment id %s not found", id)
	}
	w = doRequest(router, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/reviews/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateEndpointsReturn201(t *testing.T) {
	router, m := setupTestRouter()
	m.category.CreateFunc = func(ctx context.Context, body service.Body) (*models.Category, error) {
		return &models.Category{Slug: "dexterity", Description: "physical"}, nil
	}

	tests := []struct {
		path     string
		body     string
		envelope string
	}{
		{"/api/categories", `{"slug": "dexterity", "description": "physical"}`, "category"},
		{"/api/reviews", `{"title": "Jenga"}`, "review"},
		{"/api/reviews/1/comments", `{"username": "mallionaire", "body": "hi"}`, "comment"},
		{"/api/users", `{"username": "tickle122"}`, "user"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusCreated, w.Code)
			assert.Contains(t, decode(t, w), tt.envelope)
		})
	}
}

func TestUsersEndpoints(t *testing.T) {
	router, m := setupTestRouter()
	m.user.Users["mallionaire"] = &models.User{Username: "mallionaire", Name: "haz"}

	w := doRequest(router, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 1)

	w = doRequest(router, http.MethodGet, "/api/users/mallionaire", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "haz", decode(t, w)["user"].(map[string]any)["name"])

	w = doRequest(router, http.MethodGet, "/api/users/nobody", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `Username "nobody" not found`, decode(t, w)["message"])
}

func TestPanicRecovery(t *testing.T) {
	router, m := setupTestRouter()
	m.category.CreateFunc = func(ctx context.Context, body service.Body) (*models.Category, error) {
		panic("boom")
	}

	w := doRequest(router, http.MethodPost, "/api/categories", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w)["message"])
}

// newWiredRouter serves real services over the in-memory repositories
func newWiredRouter(t *testing.T) (*gin.Engine, *mocks.MockStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos, store := mocks.NewMockRepositories()
	cfg := &config.Config{API: config.APIConfig{DefaultLimit: 10, MaxLimit: 100}}
	services := service.NewServices(repos, &mocks.MockHealthService{}, cfg, zerolog.Nop())
	return api.NewRouter(services, zerolog.Nop()), store
}

func TestCommentRoundTrip(t *testing.T) {
	router, store := newWiredRouter(t)
	store.AddCategory("euro game")
	store.AddUser("mallionaire")
	store.AddReview("Agricola", "euro game", "mallionaire", 1)

	w := doRequest(router, http.MethodPost, "/api/reviews/1/comments",
		`{"username": "mallionaire", "body": "Thoroughly enjoyed this game!"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	posted := decode(t, w)["comment"].(map[string]any)
	assert.Equal(t, float64(0), posted["votes"])

	w = doRequest(router, http.MethodGet, "/api/reviews/1/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	comments := decode(t, w)["comments"].([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, posted, comments[0])
}

func TestReviewListing_ZeroResultBranches(t *testing.T) {
	router, store := newWiredRouter(t)
	store.AddCategory("euro game")
	store.AddCategory("children's games")
	store.AddUser("mallionaire")
	store.AddReview("Agricola", "euro game", "mallionaire", 1)

	w := doRequest(router, http.MethodGet, "/api/reviews?category=children%27s+games", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reviews": [], "total_count": 0}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/reviews?category=bananas", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `Category "bananas" not found`, decode(t, w)["message"])

	w = doRequest(router, http.MethodGet, "/api/reviews?sort_by=password", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 2, store.ListCalls)
}

func TestReviewPatch_ClampsVotes(t *testing.T) {
	router, store := newWiredRouter(t)
	store.AddCategory("euro game")
	store.AddUser("mallionaire")
	store.AddReview("Agricola", "euro game", "mallionaire", 1)

	w := doRequest(router, http.MethodPatch, "/api/reviews/1", `{"inc_votes": -100}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["review"].(map[string]any)["votes"])

	w = doRequest(router, http.MethodPatch, "/api/reviews/1", `{"inc_votes": 1, "extra": "x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(decode(t, w)["message"].(string), `"extra"`))

	w = doRequest(router, http.MethodPatch, "/api/reviews/notAnId", `{"inc_votes": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `Invalid review_id "notAnId"`, decode(t, w)["message"])
}
