package models

// User represents a registered reviewer
type User struct {
	Username  string `json:"username" db:"username"`
	Name      string `json:"name" db:"name"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
}

// NewUser is the request body for POST /api/users
type NewUser struct {
	Username  string `json:"username" validate:"required,max=100"`
	Name      string `json:"name" validate:"required,max=100"`
	AvatarURL string `json:"avatar_url" validate:"required,url,max=200"`
}
