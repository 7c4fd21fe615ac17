package mocks

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
	"github.com/board-game-reviews-api/internal/repository"
	"github.com/lib/pq"
)

// MockStore is the in-memory state shared by the mock repositories
type MockStore struct {
	Categories map[string]*models.Category
	Users      map[string]*models.User
	Reviews    map[int]*models.Review
	Comments   map[int]*models.Comment

	// Err, when set, is returned by every operation
	Err error
	// WriteErr, when set, is returned by Create and Update only
	WriteErr error

	ExistsCalls []repository.Ref
	ListCalls   int
	LastList    *query.ReviewList
}

// NewMockRepositories returns repositories backed by a single MockStore
func NewMockRepositories() (*repository.Repositories, *MockStore) {
	store := &MockStore{
		Categories: make(map[string]*models.Category),
		Users:      make(map[string]*models.User),
		Reviews:    make(map[int]*models.Review),
		Comments:   make(map[int]*models.Comment),
	}
	return &repository.Repositories{
		Checker:  &MockChecker{store},
		Review:   &MockReviewRepository{store},
		Comment:  &MockCommentRepository{store},
		User:     &MockUserRepository{store},
		Category: &MockCategoryRepository{store},
	}, store
}

func (s *MockStore) writeErr() error {
	if s.Err != nil {
		return s.Err
	}
	return s.WriteErr
}

// AddCategory stores a category
func (s *MockStore) AddCategory(slug string) {
	s.Categories[slug] = &models.Category{Slug: slug, Description: slug}
}

// AddUser stores a user
func (s *MockStore) AddUser(username string) {
	s.Users[username] = &models.User{Username: username, Name: username, AvatarURL: "https://example.com/" + username + ".png"}
}

// AddReview stores a review under the next free id and returns it
func (s *MockStore) AddReview(title, category, owner string, votes int) *models.Review {
	r := &models.Review{
		ReviewID:     s.nextReviewID(),
		Title:        title,
		ReviewBody:   title + " review",
		Designer:     "Designer",
		ReviewImgURL: models.DefaultReviewImgURL,
		Votes:        votes,
		Category:     category,
		Owner:        owner,
		CreatedAt:    time.Now(),
	}
	s.Reviews[r.ReviewID] = r
	return r
}

// AddComment stores a comment under the next free id and returns it
func (s *MockStore) AddComment(reviewID int, author, body string) *models.Comment {
	c := &models.Comment{
		CommentID: s.nextCommentID(),
		Author:    author,
		ReviewID:  reviewID,
		CreatedAt: time.Now(),
		Body:      body,
	}
	s.Comments[c.CommentID] = c
	return c
}

func (s *MockStore) nextReviewID() int {
	next := 1
	for id := range s.Reviews {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func (s *MockStore) nextCommentID() int {
	next := 1
	for id := range s.Comments {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func (s *MockStore) commentCount(reviewID int) int {
	n := 0
	for _, c := range s.Comments {
		if c.ReviewID == reviewID {
			n++
		}
	}
	return n
}

// parseID mimics PostgreSQL rejecting a non-integer id
func parseID(id string) (int, error) {
	n, err := strconv.ParseInt(id, 10, 32)
	if err != nil {
		return 0, &pq.Error{Code: "22P02", Message: fmt.Sprintf("invalid input syntax for type integer: %q", id)}
	}
	return int(n), nil
}

// applyVotes adds a clamped increment the way the UPDATE does
func applyVotes(votes int, a query.Assignment) int {
	delta, _ := a.Value.(int32)
	votes += int(delta)
	switch {
	case votes < 0:
		return 0
	case votes > math.MaxInt32:
		return math.MaxInt32
	}
	return votes
}

// MockChecker answers existence from the store's maps
type MockChecker struct {
	store *MockStore
}

var _ repository.Checker = (*MockChecker)(nil)

func (m *MockChecker) Exists(ctx context.Context, ref repository.Ref, value any) (bool, error) {
	s := m.store
	s.ExistsCalls = append(s.ExistsCalls, ref)
	if s.Err != nil {
		return false, s.Err
	}

	key := fmt.Sprint(value)
	switch ref {
	case repository.CategorySlug:
		_, ok := s.Categories[key]
		return ok, nil
	case repository.Username:
		_, ok := s.Users[key]
		return ok, nil
	case repository.ReviewID:
		id, err := parseID(key)
		if err != nil {
			return false, err
		}
		_, ok := s.Reviews[id]
		return ok, nil
	case repository.CommentID:
		id, err := parseID(key)
		if err != nil {
			return false, err
		}
		_, ok := s.Comments[id]
		return ok, nil
	}
	return false, fmt.Errorf("unknown reference %s.%s", ref.Table, ref.Column)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	store *MockStore
}

var _ repository.ReviewRepository = (*MockReviewRepository)(nil)

// List filters by category and pages in review_id order
func (m *MockReviewRepository) List(ctx context.Context, list *query.ReviewList) ([]models.Review, int, error) {
	s := m.store
	s.ListCalls++
	s.LastList = list
	if s.Err != nil {
		return nil, 0, s.Err
	}

	matched := make([]models.Review, 0)
	for _, r := range s.Reviews {
		if list.Category != "" && r.Category != list.Category {
			continue
		}
		summary := *r
		summary.ReviewBody = ""
		summary.CommentCount = s.commentCount(r.ReviewID)
		matched = append(matched, summary)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ReviewID < matched[j].ReviewID })

	total := len(matched)
	start := list.Offset()
	if start > total {
		start = total
	}
	end := start + list.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	s := m.store
	if s.Err != nil {
		return nil, s.Err
	}
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r, ok := s.Reviews[n]
	if !ok {
		return nil, nil
	}
	out := *r
	out.CommentCount = s.commentCount(n)
	return &out, nil
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.NewReview) (*models.Review, error) {
	s := m.store
	if err := s.writeErr(); err != nil {
		return nil, err
	}
	r := s.AddReview(review.Title, review.Category, review.Owner, 0)
	r.ReviewBody = review.ReviewBody
	r.Designer = review.Designer
	if review.ReviewImgURL != "" {
		r.ReviewImgURL = review.ReviewImgURL
	}
	out := *r
	return &out, nil
}

func (m *MockReviewRepository) Update(ctx context.Context, id string, set []query.Assignment) (*models.Review, error) {
	s := m.store
	if err := s.writeErr(); err != nil {
		return nil, err
	}
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r, ok := s.Reviews[n]
	if !ok {
		return nil, nil
	}
	for _, a := range set {
		switch a.Column {
		case "votes":
			r.Votes = applyVotes(r.Votes, a)
		case "review_body":
			r.ReviewBody = a.Value.(string)
		}
	}
	out := *r
	out.CommentCount = s.commentCount(n)
	return &out, nil
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) (bool, error) {
	s := m.store
	if s.Err != nil {
		return false, s.Err
	}
	n, err := parseID(id)
	if err != nil {
		return false, err
	}
	if _, ok := s.Reviews[n]; !ok {
		return false, nil
	}
	delete(s.Reviews, n)
	for cid, c := range s.Comments {
		if c.ReviewID == n {
			delete(s.Comments, cid)
		}
	}
	return true, nil
}

func (m *MockReviewRepository) BatchInsert(ctx context.Context, reviews []*models.Review) (int, error) {
	if m.store.Err != nil {
		return 0, m.store.Err
	}
	for _, r := range reviews {
		m.store.Reviews[r.ReviewID] = r
	}
	return len(reviews), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	store *MockStore
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

// ListByReview pages comments newest first
func (m *MockCommentRepository) ListByReview(ctx context.Context, reviewID string, page query.Page) ([]models.Comment, error) {
	s := m.store
	if s.Err != nil {
		return nil, s.Err
	}
	n, err := parseID(reviewID)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Comment, 0)
	for _, c := range s.Comments {
		if c.ReviewID == n {
			matched = append(matched, *c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CommentID > matched[j].CommentID })

	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (m *MockCommentRepository) Create(ctx context.Context, reviewID string, comment *models.NewComment) (*models.Comment, error) {
	s := m.store
	if err := s.writeErr(); err != nil {
		return nil, err
	}
	n, err := parseID(reviewID)
	if err != nil {
		return nil, err
	}
	c := s.AddComment(n, comment.Username, comment.Body)
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, id string, set []query.Assignment) (*models.Comment, error) {
	s := m.store
	if err := s.writeErr(); err != nil {
		return nil, err
	}
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	c, ok := s.Comments[n]
	if !ok {
		return nil, nil
	}
	for _, a := range set {
		switch a.Column {
		case "votes":
			c.Votes = applyVotes(c.Votes, a)
		case "body":
			c.Body = a.Value.(string)
		}
	}
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	s := m.store
	if s.Err != nil {
		return false, s.Err
	}
	n, err := parseID(id)
	if err != nil {
		return false, err
	}
	if _, ok := s.Comments[n]; !ok {
		return false, nil
	}
	delete(s.Comments, n)
	return true, nil
}

func (m *MockCommentRepository) BatchInsert(ctx context.Context, comments []*models.Comment) (int, error) {
	if m.store.Err != nil {
		return 0, m.store.Err
	}
	for _, c := range comments {
		m.store.Comments[c.CommentID] = c
	}
	return len(comments), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	store *MockStore
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	if m.store.Err != nil {
		return nil, m.store.Err
	}
	users := make([]models.User, 0, len(m.store.Users))
	for _, u := range m.store.Users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.store.Err != nil {
		return nil, m.store.Err
	}
	u, ok := m.store.Users[username]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

// Create rejects a taken username with a unique violation
func (m *MockUserRepository) Create(ctx context.Context, user *models.NewUser) (*models.User, error) {
	if err := m.store.writeErr(); err != nil {
		return nil, err
	}
	if _, ok := m.store.Users[user.Username]; ok {
		return nil, &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint \"users_pkey\""}
	}
	u := &models.User{Username: user.Username, Name: user.Name, AvatarURL: user.AvatarURL}
	m.store.Users[u.Username] = u
	out := *u
	return &out, nil
}

func (m *MockUserRepository) Update(ctx context.Context, username string, set []query.Assignment) (*models.User, error) {
	if err := m.store.writeErr(); err != nil {
		return nil, err
	}
	u, ok := m.store.Users[username]
	if !ok {
		return nil, nil
	}
	for _, a := range set {
		switch a.Column {
		case "name":
			u.Name = a.Value.(string)
		case "avatar_url":
			u.AvatarURL = a.Value.(string)
		}
	}
	out := *u
	return &out, nil
}

func (m *MockUserRepository) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	if m.store.Err != nil {
		return 0, m.store.Err
	}
	for _, u := range users {
		m.store.Users[u.Username] = u
	}
	return len(users), nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	store *MockStore
}

var _ repository.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	if m.store.Err != nil {
		return nil, m.store.Err
	}
	categories := make([]models.Category, 0, len(m.store.Categories))
	for _, c := range m.store.Categories {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Slug < categories[j].Slug })
	return categories, nil
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.NewCategory) (*models.Category, error) {
	if err := m.store.writeErr(); err != nil {
		return nil, err
	}
	if _, ok := m.store.Categories[category.Slug]; ok {
		return nil, &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint \"categories_pkey\""}
	}
	c := &models.Category{Slug: category.Slug, Description: category.Description}
	m.store.Categories[c.Slug] = c
	out := *c
	return &out, nil
}

func (m *MockCategoryRepository) BatchInsert(ctx context.Context, categories []*models.Category) (int, error) {
	if m.store.Err != nil {
		return 0, m.store.Err
	}
	for _, c := range categories {
		m.store.Categories[c.Slug] = c
	}
	return len(categories), nil
}
