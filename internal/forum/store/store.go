package store

import (
	"context"
	"errors"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Questions() Questions
	Answers() Answers
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (delete cascades, the accept-answer transition).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUsername mutates the username and bumps updated_at.
	// Returns ErrAlreadyExists on collision.
	UpdateUsername(ctx context.Context, userID string, username string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser removes the user row. Dependent questions, answers and
	// sessions must already be gone (the service cascade handles ordering).
	DeleteUser(ctx context.Context, userID string) error
}

type Questions interface {
	// GetQuestionByID returns a bare question row.
	GetQuestionByID(ctx context.Context, id string) (domain.Question, error)

	// GetQuestionWithOwner returns a question joined with its owner.
	GetQuestionWithOwner(ctx context.Context, id string) (domain.QuestionWithOwner, error)

	// CreateQuestion inserts a new question referencing an existing user.
	CreateQuestion(ctx context.Context, q domain.Question) error

	// ListQuestionsWithOwner returns every question joined with its owner,
	// ordered by creation time descending (id descending as tie-break).
	ListQuestionsWithOwner(ctx context.Context) ([]domain.QuestionWithOwner, error)

	// DeleteQuestion removes a single question row (answers must go first).
	DeleteQuestion(ctx context.Context, id string) error

	// DeleteQuestionsByUser removes every question owned by the user.
	DeleteQuestionsByUser(ctx context.Context, userID string) error
}

type Answers interface {
	// GetAnswerByID returns a bare answer row.
	GetAnswerByID(ctx context.Context, id string) (domain.Answer, error)

	// CreateAnswer inserts a new answer referencing an existing question.
	CreateAnswer(ctx context.Context, a domain.Answer) error

	// ListAnswersByQuestion returns the question's answers joined with their
	// owners, accepted first, then by creation time ascending.
	ListAnswersByQuestion(ctx context.Context, questionID string) ([]domain.AnswerWithOwner, error)

	// ListAnswersWithOwner returns all answers joined with their owners in
	// feed order, for assembling the question list in one pass.
	ListAnswersWithOwner(ctx context.Context) ([]domain.AnswerWithOwner, error)

	// MarkAccepted atomically makes answerID the only accepted answer of
	// questionID. A single conditional update, so two racing calls can never
	// leave two accepted rows.
	MarkAccepted(ctx context.Context, questionID, answerID string) error

	// DeleteAnswersByQuestion removes every answer of a question.
	DeleteAnswersByQuestion(ctx context.Context, questionID string) error

	// DeleteAnswersByUser removes every answer the user wrote, including on
	// other users' questions.
	DeleteAnswersByUser(ctx context.Context, userID string) error

	// DeleteAnswersByQuestionOwner removes every answer attached to any
	// question owned by the user.
	DeleteAnswersByQuestionOwner(ctx context.Context, userID string) error
}

type Sessions interface {
	// CreateSession stores a new session record (token stored as fingerprint).
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session for a token fingerprint.
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// DeleteSessionByTokenHash invalidates one session; deleting an unknown
	// hash is not an error (logout is idempotent).
	DeleteSessionByTokenHash(ctx context.Context, hash string) error

	// DeleteSessionsByUser invalidates every session of a user.
	DeleteSessionsByUser(ctx context.Context, userID string) error

	// UpdateSessionsUsername refreshes the cached username on every session
	// of a user after a username change.
	UpdateSessionsUsername(ctx context.Context, userID string, username string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}
