package domain

import "time"

// User models a registered account. Credentials live in the document store;
// the service never caches them.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
