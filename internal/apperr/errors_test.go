package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDB(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "malformed integer id",
			err:         &pq.Error{Code: "22P02", Message: `invalid input syntax for type integer: "notAnId"`},
			wantStatus:  http.StatusBadRequest,
			wantMessage: `Invalid review_id "notAnId"`,
		},
		{
			name:        "wrapped malformed id",
			err:         fmt.Errorf("get review: %w", &pq.Error{Code: "22P02"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: `Invalid review_id "notAnId"`,
		},
		{
			name:        "too long",
			err:         &pq.Error{Code: "22001"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "review_id exceeds the maximum length",
		},
		{
			name:        "unique violation",
			err:         &pq.Error{Code: "23505"},
			wantStatus:  http.StatusConflict,
			wantMessage: `review_id "notAnId" already exists`,
		},
		{
			name:        "foreign key",
			err:         &pq.Error{Code: "23503"},
			wantStatus:  http.StatusNotFound,
			wantMessage: `Referenced review_id "notAnId" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDB(tt.err, "review_id", "notAnId")

			var appErr *Error
			require.True(t, errors.As(got, &appErr), "expected *Error, got %T", got)
			assert.Equal(t, tt.wantStatus, appErr.Status)
			assert.Equal(t, tt.wantMessage, appErr.Message)
		})
	}
}

func TestFromDB_PassesThroughUnknownErrors(t *testing.T) {
	assert.NoError(t, FromDB(nil, "review_id", 1))

	connErr := errors.New("connection refused")
	assert.Same(t, connErr, FromDB(connErr, "review_id", 1))

	deadlock := &pq.Error{Code: "40P01"}
	assert.Equal(t, error(deadlock), FromDB(deadlock, "review_id", 1))
}

func TestTranslate(t *testing.T) {
	rejection := NotFound("Review id %d not found", 99999)
	got, known := Translate(fmt.Errorf("service: %w", rejection))
	assert.True(t, known)
	assert.Same(t, rejection, got)

	got, known = Translate(&pq.Error{Code: "22P02"})
	assert.True(t, known)
	assert.Equal(t, http.StatusBadRequest, got.Status)

	got, known = Translate(errors.New("dial tcp: connection refused"))
	assert.False(t, known)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "Internal server error", got.Message)
}
