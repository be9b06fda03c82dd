package sqlite

import (
	"context"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
)

type questionsRepo struct {
	q querier
}

func (r *questionsRepo) GetQuestionByID(ctx context.Context, id string) (domain.Question, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, tags, created_at, updated_at
		 FROM questions WHERE id = ?`, id)

	var q domain.Question
	err := row.Scan(&q.ID, &q.UserID, &q.Title, &q.Content, &q.Tags, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return domain.Question{}, mapNotFound(err)
	}
	return q, nil
}

const questionOwnerQuery = `
	SELECT q.id, q.user_id, q.title, q.content, q.tags, q.created_at, q.updated_at,
	       u.username, u.role
	FROM questions q
	JOIN users u ON q.user_id = u.id`

func scanQuestionWithOwner(row interface{ Scan(...any) error }) (domain.QuestionWithOwner, error) {
	var q domain.QuestionWithOwner
	var role string
	err := row.Scan(
		&q.ID, &q.UserID, &q.Title, &q.Content, &q.Tags, &q.CreatedAt, &q.UpdatedAt,
		&q.Owner.Username, &role,
	)
	if err != nil {
		return domain.QuestionWithOwner{}, err
	}
	q.Owner.ID = q.UserID
	q.Owner.Role = domain.Role(role)
	return q, nil
}

func (r *questionsRepo) GetQuestionWithOwner(ctx context.Context, id string) (domain.QuestionWithOwner, error) {
	row := r.q.QueryRowContext(ctx, questionOwnerQuery+` WHERE q.id = ?`, id)
	q, err := scanQuestionWithOwner(row)
	if err != nil {
		return domain.QuestionWithOwner{}, mapNotFound(err)
	}
	return q, nil
}

func (r *questionsRepo) CreateQuestion(ctx context.Context, q domain.Question) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO questions (id, user_id, title, content, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.UserID, q.Title, q.Content, q.Tags, q.CreatedAt, q.UpdatedAt)
	return err
}

func (r *questionsRepo) ListQuestionsWithOwner(ctx context.Context) ([]domain.QuestionWithOwner, error) {
	// ULIDs sort by creation time, so the id tie-break keeps same-timestamp
	// rows in a stable newest-first order.
	rows, err := r.q.QueryContext(ctx,
		questionOwnerQuery+` ORDER BY q.created_at DESC, q.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.QuestionWithOwner
	for rows.Next() {
		q, err := scanQuestionWithOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *questionsRepo) DeleteQuestion(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	return err
}

func (r *questionsRepo) DeleteQuestionsByUser(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM questions WHERE user_id = ?`, userID)
	return err
}
