package entity

import (
	"time"
)

// User is a registered account.
// PasswordHash holds a bcrypt hash; the plaintext is never stored.
// Records are created once and never updated.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
