// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. Email is unique and serves as the login identifier.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
