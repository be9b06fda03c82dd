package sqlite

import (
	"context"
	"time"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
)

type answersRepo struct {
	q querier
}

func (r *answersRepo) GetAnswerByID(ctx context.Context, id string) (domain.Answer, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, question_id, user_id, content, is_accepted, created_at, updated_at
		 FROM answers WHERE id = ?`, id)

	var a domain.Answer
	err := row.Scan(&a.ID, &a.QuestionID, &a.UserID, &a.Content, &a.Accepted, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Answer{}, mapNotFound(err)
	}
	return a, nil
}

func (r *answersRepo) CreateAnswer(ctx context.Context, a domain.Answer) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO answers (id, question_id, user_id, content, is_accepted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.QuestionID, a.UserID, a.Content, a.Accepted, a.CreatedAt, a.UpdatedAt)
	return err
}

const answerOwnerQuery = `
	SELECT a.id, a.question_id, a.user_id, a.content, a.is_accepted, a.created_at, a.updated_at,
	       u.username, u.role
	FROM answers a
	JOIN users u ON a.user_id = u.id`

// Feed order: accepted answer first, the rest oldest first.
const answerFeedOrder = ` ORDER BY a.is_accepted DESC, a.created_at ASC, a.id ASC`

func (r *answersRepo) queryAnswers(ctx context.Context, query string, args ...any) ([]domain.AnswerWithOwner, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AnswerWithOwner
	for rows.Next() {
		var a domain.AnswerWithOwner
		var role string
		err := rows.Scan(
			&a.ID, &a.QuestionID, &a.UserID, &a.Content, &a.Accepted, &a.CreatedAt, &a.UpdatedAt,
			&a.Owner.Username, &role,
		)
		if err != nil {
			return nil, err
		}
		a.Owner.ID = a.UserID
		a.Owner.Role = domain.Role(role)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *answersRepo) ListAnswersByQuestion(ctx context.Context, questionID string) ([]domain.AnswerWithOwner, error) {
	return r.queryAnswers(ctx,
		answerOwnerQuery+` WHERE a.question_id = ?`+answerFeedOrder, questionID)
}

func (r *answersRepo) ListAnswersWithOwner(ctx context.Context) ([]domain.AnswerWithOwner, error) {
	return r.queryAnswers(ctx, answerOwnerQuery+answerFeedOrder)
}

func (r *answersRepo) MarkAccepted(ctx context.Context, questionID, answerID string) error {
	// One conditional update flips every sibling in the same statement, so
	// there is no window where two answers of a question are both accepted.
	_, err := r.q.ExecContext(ctx,
		`UPDATE answers SET is_accepted = (id = ?), updated_at = ? WHERE question_id = ?`,
		answerID, time.Now().UTC(), questionID)
	return err
}

func (r *answersRepo) DeleteAnswersByQuestion(ctx context.Context, questionID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM answers WHERE question_id = ?`, questionID)
	return err
}

func (r *answersRepo) DeleteAnswersByUser(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM answers WHERE user_id = ?`, userID)
	return err
}

func (r *answersRepo) DeleteAnswersByQuestionOwner(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM answers WHERE question_id IN (SELECT id FROM questions WHERE user_id = ?)`,
		userID)
	return err
}
