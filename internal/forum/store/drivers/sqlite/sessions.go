package sqlite

import (
	"context"
	"time"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
)

type sessionsRepo struct {
	q querier
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, token_hash, username, role, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.TokenHash, s.Username, s.Role.String(), s.ExpiresAt, s.CreatedAt, s.UpdatedAt)
	return mapConflict(err)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, username, role, expires_at, created_at, updated_at
		 FROM sessions WHERE token_hash = ?`, hash)

	var s domain.Session
	var role string
	err := row.Scan(&s.ID, &s.UserID, &s.TokenHash, &s.Username, &role, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.Role = domain.Role(role)
	return s, nil
}

func (r *sessionsRepo) DeleteSessionByTokenHash(ctx context.Context, hash string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, hash)
	return err
}

func (r *sessionsRepo) DeleteSessionsByUser(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

func (r *sessionsRepo) UpdateSessionsUsername(ctx context.Context, userID string, username string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET username = ?, updated_at = ? WHERE user_id = ?`,
		username, time.Now().UTC(), userID)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
