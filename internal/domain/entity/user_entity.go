package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never the plain text.
type User struct {
	ID        string
	Name      string
	Gender    string
	Email     string
	Password  string
	CreatedAt time.Time
}
