package domain

import "time"

type Question struct {
	ID        string
	UserID    string // owning user, immutable
	Title     string
	Content   string
	Tags      string // free-form comma-delimited, may be empty
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuestionFeedItem is a question annotated with its owner and nested answers,
// as assembled for list and detail views.
type QuestionFeedItem struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Tags      string           `json:"tags"`
	Author    UserSummary      `json:"author"`
	Answers   []AnswerFeedItem `json:"answers"`
	CreatedAt time.Time        `json:"created_at"`
}
