package validation

import (
	"bytes"
	"encoding/json"
	"sort"
	"unicode/utf8"

	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
)

// FieldKind selects how a patch field is validated and applied.
type FieldKind int

const (
	// ClampedIncrement adds an integer delta to a column, flooring the result at zero.
	ClampedIncrement FieldKind = iota
	// BoundedText replaces a column with a non-empty string of at most MaxLen characters.
	BoundedText
)

// Field describes one patchable property of a resource.
type Field struct {
	Name   string
	Column string
	Kind   FieldKind
	MaxLen int
}

// Schema is the fixed set of properties a resource accepts in a PATCH body.
type Schema struct {
	Resource string
	fields   []Field
	byName   map[string]Field
}

// NewSchema builds a schema. Field order decides assignment order in the UPDATE.
func NewSchema(resource string, fields ...Field) Schema {
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	return Schema{Resource: resource, fields: fields, byName: byName}
}

// Fields returns the schema's fields in declaration order.
func (s Schema) Fields() []Field {
	return s.fields
}

var (
	ReviewPatch = NewSchema("review",
		Field{Name: "inc_votes", Column: "votes", Kind: ClampedIncrement},
		Field{Name: "review_body", Column: "review_body", Kind: BoundedText, MaxLen: models.MaxBodyLength},
	)

	CommentPatch = NewSchema("comment",
		Field{Name: "inc_votes", Column: "votes", Kind: ClampedIncrement},
		Field{Name: "body", Column: "body", Kind: BoundedText, MaxLen: models.MaxBodyLength},
	)

	UserPatch = NewSchema("user",
		Field{Name: "name", Column: "name", Kind: BoundedText, MaxLen: 100},
		Field{Name: "avatar_url", Column: "avatar_url", Kind: BoundedText, MaxLen: 200},
	)
)

// Patch is a validated partial update, ready to compile into an UPDATE.
type Patch struct {
	Assignments []query.Assignment
}

// Validate checks a PATCH body against the schema. Unknown properties are
// always rejected and vote deltas are always applied as clamped increments.
func (s Schema) Validate(body map[string]json.RawMessage) (*Patch, error) {
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := s.byName[k]; !ok {
			return nil, apperr.BadRequest("The property %q is not valid in update body", k)
		}
	}

	patch := &Patch{}
	for _, f := range s.fields {
		raw, ok := body[f.Name]
		if !ok {
			continue
		}

		switch f.Kind {
		case ClampedIncrement:
			delta, err := decodeDelta(f.Name, raw)
			if err != nil {
				return nil, err
			}
			patch.Assignments = append(patch.Assignments, query.Assignment{
				Column:           f.Column,
				Value:            delta,
				ClampedIncrement: true,
			})
		case BoundedText:
			text, err := decodeText(f.Name, raw, f.MaxLen)
			if err != nil {
				return nil, err
			}
			patch.Assignments = append(patch.Assignments, query.Assignment{
				Column: f.Column,
				Value:  text,
			})
		}
	}

	if len(patch.Assignments) == 0 {
		return nil, apperr.BadRequest("No valid properties on request body")
	}
	return patch, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeDelta(name string, raw json.RawMessage) (int32, error) {
	var delta int32
	if isNull(raw) || json.Unmarshal(raw, &delta) != nil {
		return 0, apperr.BadRequest("%s must be an integer", name)
	}
	return delta, nil
}

func decodeText(name string, raw json.RawMessage, maxLen int) (string, error) {
	if isNull(raw) {
		return "", apperr.BadRequest("%s cannot be null", name)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", apperr.BadRequest("%s must be a string", name)
	}
	if text == "" {
		return "", apperr.BadRequest("%s cannot be null", name)
	}
	if maxLen > 0 && utf8.RuneCountInString(text) > maxLen {
		return "", apperr.BadRequest("%s exceeds %d characters", name, maxLen)
	}
	return text, nil
}
