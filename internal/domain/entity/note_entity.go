package entity

import (
	"time"
)

// Note lives in exactly one of two stores at a time: the active table or the
// bin. Owner never changes across that lifecycle; every mutation is checked
// against it.
type Note struct {
	ID          string
	Owner       string
	Title       string
	Description string
	Tag         string
	Pinned      bool
	CreatedAt   time.Time
}
