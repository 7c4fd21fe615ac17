package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/go-playground/validator/v10"
)

// Validator checks request bodies for create endpoints
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()
	// Report json names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// DecodeCreate rejects properties dst does not declare, decodes body into dst
// and runs its validate tags. dst must be a pointer to a struct.
func (v *Validator) DecodeCreate(body map[string]json.RawMessage, dst any) error {
	allowed := jsonFields(reflect.TypeOf(dst).Elem())

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !allowed[k] {
			return apperr.BadRequest("The property %q is not valid in post body", k)
		}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperr.BadRequest("%s must be a %s", typeErr.Field, typeErr.Type.String())
		}
		return apperr.BadRequest("Invalid request body")
	}

	return v.Struct(dst)
}

// Struct runs the validate tags of s and converts the first failure into a rejection.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	e := validationErrors[0]
	switch e.Tag() {
	case "required":
		return apperr.BadRequest("%s is required", e.Field())
	case "max":
		return apperr.BadRequest("%s exceeds %s characters", e.Field(), e.Param())
	case "url":
		return apperr.BadRequest("%s must be a valid URL", e.Field())
	default:
		return apperr.BadRequest("%s failed on the '%s' rule", e.Field(), e.Tag())
	}
}

// jsonFields returns the json property names declared by a struct type
func jsonFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}
