package model

// User is a registered author. The password hash never leaves the process:
// the json tag excludes it from every response body.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"is_active"`
}
