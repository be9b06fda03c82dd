package domain

import "time"

type Answer struct {
	ID         string
	QuestionID string // parent question, immutable
	UserID     string // owning user, immutable
	Content    string
	Accepted   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AnswerFeedItem is an answer annotated with its author for presentation.
type AnswerFeedItem struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	Accepted  bool        `json:"accepted"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
}
