package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/policy"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/store"
	"github.com/mouadlotfi/MasjidQ-A/pkg/idx"
	"github.com/mouadlotfi/MasjidQ-A/pkg/slogx"
)

// ContentService owns the question/answer lifecycle: creation, the accepted
// answer transition and the delete cascades. Every write is gated through
// the policy package.
type ContentService struct {
	Store store.Store
}

// CreateQuestion persists a new question for the caller. Tags are free-form
// comma-delimited and default to empty.
func (s *ContentService) CreateQuestion(ctx context.Context, caller *domain.Identity, title, content, tags string) (string, error) {
	if err := policy.CanCreateContent(caller); err != nil {
		return "", err
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return "", ErrMissingFields
	}

	now := time.Now().UTC()
	question := domain.Question{
		ID:        idx.New().String(),
		UserID:    caller.UserID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Questions().CreateQuestion(ctx, question); err != nil {
		return "", err
	}
	return question.ID, nil
}

// CreateAnswer persists a new answer on an existing question. The existence
// check and the insert share one transaction, so no answer row is ever
// written for a question that is missing or deleted concurrently.
func (s *ContentService) CreateAnswer(ctx context.Context, caller *domain.Identity, questionID, content string) (string, error) {
	if err := policy.CanCreateContent(caller); err != nil {
		return "", err
	}

	content = strings.TrimSpace(content)
	if questionID == "" || content == "" {
		return "", ErrMissingFields
	}

	now := time.Now().UTC()
	answer := domain.Answer{
		ID:         idx.New().String(),
		QuestionID: questionID,
		UserID:     caller.UserID,
		Content:    content,
		Accepted:   false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Questions().GetQuestionByID(ctx, questionID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		return tx.Answers().CreateAnswer(ctx, answer)
	})
	if err != nil {
		return "", err
	}
	return answer.ID, nil
}

// AcceptAnswer marks the answer as its question's single accepted answer.
// The transition (clear siblings, set target) runs as one conditional update
// inside a write transaction, so concurrent accepts on the same question
// serialize and exactly one answer ends up accepted. Accepting the already
// accepted answer succeeds and changes nothing.
func (s *ContentService) AcceptAnswer(ctx context.Context, caller *domain.Identity, answerID string) error {
	if err := policy.CanAcceptAnswer(caller); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		answer, err := tx.Answers().GetAnswerByID(ctx, answerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAnswerNotFound
			}
			return err
		}
		return tx.Answers().MarkAccepted(ctx, answer.QuestionID, answer.ID)
	})
}

// DeleteQuestion removes a question and all of its answers. Only the owner
// may delete; answers go first and both deletions share one transaction, so
// a failure leaves no partial cascade visible.
func (s *ContentService) DeleteQuestion(ctx context.Context, caller *domain.Identity, questionID string) error {
	log := slogx.FromContext(ctx)

	question, err := s.Store.Questions().GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	if err := policy.CanDeleteQuestion(caller, question.UserID); err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Answers().DeleteAnswersByQuestion(ctx, questionID); err != nil {
			return err
		}
		return tx.Questions().DeleteQuestion(ctx, questionID)
	})
	if err != nil {
		log.Error("question delete cascade failed", "question_id", questionID, "err", err)
		return err
	}
	return nil
}

// DeleteUserCascade removes everything the user owns and then the user row,
// in dependency order: the user's answers anywhere, then answers on the
// user's questions, then the questions, then sessions, then the user. The
// whole cascade is one transaction, so a concurrent reader can never observe
// a question or answer whose owner is gone.
func (s *ContentService) DeleteUserCascade(ctx context.Context, userID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Answers().DeleteAnswersByUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.Answers().DeleteAnswersByQuestionOwner(ctx, userID); err != nil {
			return err
		}
		if err := tx.Questions().DeleteQuestionsByUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.Sessions().DeleteSessionsByUser(ctx, userID); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, userID)
	})
	if err != nil {
		log.Error("account delete cascade failed", "user_id", userID, "err", err)
		return err
	}
	return nil
}
