package domain

// QuestionWithOwner is a question row joined with its owner, as read by the
// feed queries.
type QuestionWithOwner struct {
	Question
	Owner UserSummary
}

// AnswerWithOwner is an answer row joined with its owner.
type AnswerWithOwner struct {
	Answer
	Owner UserSummary
}
