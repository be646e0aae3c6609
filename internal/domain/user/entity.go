package user

import (
	"errors"
	"time"
)

// ErrDuplicateKey is returned by storage when an email is already taken.
var ErrDuplicateKey = errors.New("duplicate key")

// User represents a user entity in the system.
type User struct {
	ID        int64     // ID is assigned by storage and never changes
	Name      string    // Name is the display name of the user
	Email     string    // Email is unique across all users, stored lowercased
	CreatedAt time.Time // CreatedAt is set by storage on insert
}
