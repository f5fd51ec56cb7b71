package types

import "time"

// Member represents a registered library member. Email and Phone are
// optional; an empty value is persisted as NULL. A non-empty email is
// unique across all members.
type Member struct {
	ID       int64
	Name     string
	Email    string
	Phone    string
	JoinedAt time.Time
}
