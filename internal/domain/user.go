package domain

import "time"

// User is a chat participant known to the economy. Users are created on
// first interaction and soft-retained forever for audit.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
