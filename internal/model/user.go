// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash is internal-only and must never cross the API boundary;
// the json tag enforces that even if the struct is serialized directly.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
