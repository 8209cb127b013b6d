package entity

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an authenticated actor. PasswordHash is a bcrypt hash.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string // admin | user
	CreatedAt    time.Time
}
