package models

// Category groups reviews; the slug is its identifier
type Category struct {
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

// NewCategory is the request body for POST /api/categories
type NewCategory struct {
	Slug        string `json:"slug" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=200"`
}
