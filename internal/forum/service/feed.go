package service

import (
	"context"
	"errors"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/store"
)

// FeedService assembles questions with their nested answers for list and
// detail views. Ordering is deterministic: questions newest first, answers
// accepted first then oldest first.
type FeedService struct {
	Store store.Store
}

// ListQuestions returns every question with its owner and answers. Answers
// for all questions are fetched in one pass and grouped in memory, keeping
// the listing at two queries regardless of size.
func (s *FeedService) ListQuestions(ctx context.Context) ([]domain.QuestionFeedItem, error) {
	questions, err := s.Store.Questions().ListQuestionsWithOwner(ctx)
	if err != nil {
		return nil, err
	}

	answers, err := s.Store.Answers().ListAnswersWithOwner(ctx)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[string][]domain.AnswerFeedItem, len(questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], answerFeedItem(a))
	}

	items := make([]domain.QuestionFeedItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, questionFeedItem(q, byQuestion[q.ID]))
	}
	return items, nil
}

// GetQuestion returns one question with its owner and answers.
func (s *FeedService) GetQuestion(ctx context.Context, id string) (domain.QuestionFeedItem, error) {
	question, err := s.Store.Questions().GetQuestionWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.QuestionFeedItem{}, ErrQuestionNotFound
		}
		return domain.QuestionFeedItem{}, err
	}

	answers, err := s.Store.Answers().ListAnswersByQuestion(ctx, id)
	if err != nil {
		return domain.QuestionFeedItem{}, err
	}

	feedAnswers := make([]domain.AnswerFeedItem, 0, len(answers))
	for _, a := range answers {
		feedAnswers = append(feedAnswers, answerFeedItem(a))
	}
	return questionFeedItem(question, feedAnswers), nil
}

func questionFeedItem(q domain.QuestionWithOwner, answers []domain.AnswerFeedItem) domain.QuestionFeedItem {
	if answers == nil {
		answers = []domain.AnswerFeedItem{} // encode as [] rather than null
	}
	return domain.QuestionFeedItem{
		ID:        q.ID,
		Title:     q.Title,
		Content:   q.Content,
		Tags:      q.Tags,
		Author:    q.Owner,
		Answers:   answers,
		CreatedAt: q.CreatedAt,
	}
}

func answerFeedItem(a domain.AnswerWithOwner) domain.AnswerFeedItem {
	return domain.AnswerFeedItem{
		ID:        a.ID,
		Content:   a.Content,
		Accepted:  a.Accepted,
		Author:    a.Owner,
		CreatedAt: a.CreatedAt,
	}
}
