package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id, PHC encoded; plaintext is never stored
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the owner annotation attached to questions, answers and
// session responses.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Role: u.Role}
}
