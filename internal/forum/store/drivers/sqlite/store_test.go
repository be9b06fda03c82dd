package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/store"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/store/drivers/sqlite"
	"github.com/mouadlotfi/MasjidQ-A/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, username string, role domain.Role) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedQuestion(t *testing.T, st store.Store, userID, title string) domain.Question {
	t.Helper()

	now := time.Now().UTC()
	q := domain.Question{
		ID:        idx.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Questions().CreateQuestion(context.Background(), q))
	return q
}

func seedAnswer(t *testing.T, st store.Store, questionID, userID, content string) domain.Answer {
	t.Helper()

	now := time.Now().UTC()
	a := domain.Answer{
		ID:         idx.New().String(),
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, st.Answers().CreateAnswer(context.Background(), a))
	return a
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestUsersRepo(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	t.Run("missing rows map to ErrNotFound", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Users().GetUserByUsername(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	user := seedUser(t, st, "aisha", domain.RoleParent)

	t.Run("round trip", func(t *testing.T) {
		got, err := st.Users().GetUserByUsername(ctx, "aisha")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.Equal(t, domain.RoleParent, got.Role)
	})

	t.Run("duplicate username maps to ErrAlreadyExists", func(t *testing.T) {
		dup := user
		dup.ID = idx.New().String()
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("rename collision maps to ErrAlreadyExists", func(t *testing.T) {
		other := seedUser(t, st, "fatima", domain.RoleParent)
		err := st.Users().UpdateUsername(ctx, other.ID, "aisha")
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestMarkAcceptedIsExclusive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, st, "aisha", domain.RoleParent)
	question := seedQuestion(t, st, user.ID, "which one")
	first := seedAnswer(t, st, question.ID, user.ID, "first")
	second := seedAnswer(t, st, question.ID, user.ID, "second")

	require.NoError(t, st.Answers().MarkAccepted(ctx, question.ID, first.ID))
	require.NoError(t, st.Answers().MarkAccepted(ctx, question.ID, second.ID))

	got, err := st.Answers().GetAnswerByID(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, got.Accepted, "previous accepted answer must be cleared")

	got, err = st.Answers().GetAnswerByID(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, got.Accepted)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, st, "aisha", domain.RoleParent)
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		seedQuestion(t, tx, user.ID, "doomed")
		return boom
	})
	require.ErrorIs(t, err, boom)

	questions, err := st.Questions().ListQuestionsWithOwner(ctx)
	require.NoError(t, err)
	require.Empty(t, questions)
}

func TestSessionsRepo(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, st, "aisha", domain.RoleParent)

	makeSession := func(hash string, expiresAt time.Time) domain.Session {
		now := time.Now().UTC()
		s := domain.Session{
			ID:        idx.New().String(),
			UserID:    user.ID,
			TokenHash: hash,
			Username:  user.Username,
			Role:      user.Role,
			ExpiresAt: expiresAt,
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, st.Sessions().CreateSession(ctx, s))
		return s
	}

	now := time.Now().UTC()
	live := makeSession("hash-live", now.Add(time.Hour))
	makeSession("hash-expired", now.Add(-time.Hour))

	t.Run("expired sweep keeps live sessions", func(t *testing.T) {
		require.NoError(t, st.Sessions().DeleteExpiredSessions(ctx))

		_, err := st.Sessions().GetSessionByTokenHash(ctx, "hash-expired")
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := st.Sessions().GetSessionByTokenHash(ctx, "hash-live")
		require.NoError(t, err)
		require.Equal(t, live.ID, got.ID)
	})

	t.Run("username refresh touches every session of the user", func(t *testing.T) {
		require.NoError(t, st.Sessions().UpdateSessionsUsername(ctx, user.ID, "renamed"))

		got, err := st.Sessions().GetSessionByTokenHash(ctx, "hash-live")
		require.NoError(t, err)
		require.Equal(t, "renamed", got.Username)
	})

	t.Run("deleting an unknown hash is not an error", func(t *testing.T) {
		require.NoError(t, st.Sessions().DeleteSessionByTokenHash(ctx, "never-existed"))
	})
}
