package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/policy"
)

func askQuestion(t *testing.T, content *ContentService, caller domain.Identity, title string) string {
	t.Helper()

	id, err := content.CreateQuestion(context.Background(), &caller, title, "body of "+title, "")
	require.NoError(t, err)
	return id
}

func giveAnswer(t *testing.T, content *ContentService, caller domain.Identity, questionID, text string) string {
	t.Helper()

	id, err := content.CreateAnswer(context.Background(), &caller, questionID, text)
	require.NoError(t, err)
	return id
}

func TestCreateQuestion(t *testing.T) {
	identity, content, feed := newServices(t)
	ctx := context.Background()

	caller := registerUser(t, identity, "aisha", domain.RoleParent)

	t.Run("anonymous callers may not post", func(t *testing.T) {
		_, err := content.CreateQuestion(ctx, nil, "title", "body", "")
		require.ErrorIs(t, err, policy.ErrNotAuthenticated)
	})

	t.Run("title and content must be non-empty", func(t *testing.T) {
		_, err := content.CreateQuestion(ctx, &caller, "", "body", "")
		require.ErrorIs(t, err, ErrMissingFields)

		_, err = content.CreateQuestion(ctx, &caller, "title", "   ", "")
		require.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("created question is readable with its owner and tags", func(t *testing.T) {
		id, err := content.CreateQuestion(ctx, &caller, "  Fasting while travelling?  ", "Is it permitted?", "fiqh,ramadan")
		require.NoError(t, err)

		question, err := feed.GetQuestion(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "Fasting while travelling?", question.Title)
		require.Equal(t, "fiqh,ramadan", question.Tags)
		require.Equal(t, "aisha", question.Author.Username)
		require.Empty(t, question.Answers)
	})
}

func TestCreateAnswer(t *testing.T) {
	identity, content, feed := newServices(t)
	ctx := context.Background()

	asker := registerUser(t, identity, "aisha", domain.RoleParent)
	questionID := askQuestion(t, content, asker, "First question")

	t.Run("anonymous callers may not answer", func(t *testing.T) {
		_, err := content.CreateAnswer(ctx, nil, questionID, "text")
		require.ErrorIs(t, err, policy.ErrNotAuthenticated)
	})

	t.Run("content must be non-empty", func(t *testing.T) {
		_, err := content.CreateAnswer(ctx, &asker, questionID, "  ")
		require.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("answering a missing question writes nothing", func(t *testing.T) {
		_, err := content.CreateAnswer(ctx, &asker, "no-such-question", "text")
		require.ErrorIs(t, err, ErrQuestionNotFound)

		answers, err := content.Store.Answers().ListAnswersWithOwner(ctx)
		require.NoError(t, err)
		require.Empty(t, answers)
	})

	t.Run("new answers start unaccepted", func(t *testing.T) {
		giveAnswer(t, content, asker, questionID, "An answer")

		question, err := feed.GetQuestion(ctx, questionID)
		require.NoError(t, err)
		require.Len(t, question.Answers, 1)
		require.False(t, question.Answers[0].Accepted)
	})
}

func TestAcceptAnswer(t *testing.T) {
	identity, content, feed := newServices(t)
	ctx := context.Background()

	parent := registerUser(t, identity, "aisha", domain.RoleParent)
	imam := registerUser(t, identity, "imam-yusuf", domain.RoleImam)

	questionID := askQuestion(t, content, parent, "Which answer is right?")
	first := giveAnswer(t, content, parent, questionID, "first answer")
	second := giveAnswer(t, content, parent, questionID, "second answer")

	acceptedIDs := func(t *testing.T) []string {
		t.Helper()
		question, err := feed.GetQuestion(ctx, questionID)
		require.NoError(t, err)
		var ids []string
		for _, a := range question.Answers {
			if a.Accepted {
				ids = append(ids, a.ID)
			}
		}
		return ids
	}

	t.Run("parents may not accept", func(t *testing.T) {
		err := content.AcceptAnswer(ctx, &parent, first)
		require.ErrorIs(t, err, policy.ErrForbidden)
		require.Empty(t, acceptedIDs(t))
	})

	t.Run("unknown answer", func(t *testing.T) {
		err := content.AcceptAnswer(ctx, &imam, "no-such-answer")
		require.ErrorIs(t, err, ErrAnswerNotFound)
	})

	t.Run("accepting moves the flag, never duplicates it", func(t *testing.T) {
		require.NoError(t, content.AcceptAnswer(ctx, &imam, first))
		require.Equal(t, []string{first}, acceptedIDs(t))

		require.NoError(t, content.AcceptAnswer(ctx, &imam, second))
		require.Equal(t, []string{second}, acceptedIDs(t))
	})

	t.Run("re-accepting the accepted answer is a no-op", func(t *testing.T) {
		require.NoError(t, content.AcceptAnswer(ctx, &imam, second))
		require.Equal(t, []string{second}, acceptedIDs(t))
	})
}

func TestAcceptAnswerConcurrent(t *testing.T) {
	identity, content, feed := newServices(t)
	ctx := context.Background()

	parent := registerUser(t, identity, "aisha", domain.RoleParent)
	imam := registerUser(t, identity, "imam-yusuf", domain.RoleImam)

	questionID := askQuestion(t, content, parent, "Contested question")
	answers := []string{
		giveAnswer(t, content, parent, questionID, "candidate one"),
		giveAnswer(t, content, parent, questionID, "candidate two"),
	}

	const attempts = 20

	var wg sync.WaitGroup
	errs := make(chan error, len(answers)*attempts)
	for _, answerID := range answers {
		wg.Add(1)
		go func(answerID string) {
			defer wg.Done()
			for i := 0; i < attempts; i++ {
				errs <- content.AcceptAnswer(ctx, &imam, answerID)
			}
		}(answerID)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Whatever the interleaving, exactly one answer ends up accepted.
	question, err := feed.GetQuestion(ctx, questionID)
	require.NoError(t, err)
	accepted := 0
	for _, a := range question.Answers {
		if a.Accepted {
			accepted++
		}
	}
	require.Equal(t, 1, accepted)
}

func TestDeleteQuestion(t *testing.T) {
	identity, content, feed := newServices(t)
	ctx := context.Background()

	owner := registerUser(t, identity, "aisha", domain.RoleParent)
	other := registerUser(t, identity, "imam-yusuf", domain.RoleImam)

	questionID := askQuestion(t, content, owner, "To be deleted")
	giveAnswer(t, content, other, questionID, "an answer that must go too")

	t.Run("unknown question", func(t *testing.T) {
		err := content.DeleteQuestion(ctx, &owner, "no-such-question")
		require.ErrorIs(t, err, ErrQuestionNotFound)
	})

	t.Run("only the owner may delete, role grants nothing", func(t *testing.T) {
		err := content.DeleteQuestion(ctx, &other, questionID)
		require.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("owner delete cascades to answers", func(t *testing.T) {
		require.NoError(t, content.DeleteQuestion(ctx, &owner, questionID))

		_, err := feed.GetQuestion(ctx, questionID)
		require.ErrorIs(t, err, ErrQuestionNotFound)

		orphans, err := content.Store.Answers().ListAnswersByQuestion(ctx, questionID)
		require.NoError(t, err)
		require.Empty(t, orphans)
	})
}

func TestDeleteUserCascade(t *testing.T) {
	identity, content, feed := newServices(t)
	ctx := context.Background()

	alice := registerUser(t, identity, "alice", domain.RoleParent)
	bilal := registerUser(t, identity, "bilal", domain.RoleParent)

	// Alice owns a question answered by both; Bilal owns a question that
	// Alice answered.
	aliceQuestion := askQuestion(t, content, alice, "Alice's question")
	giveAnswer(t, content, alice, aliceQuestion, "alice on her own question")
	giveAnswer(t, content, bilal, aliceQuestion, "bilal on alice's question")

	bilalQuestion := askQuestion(t, content, bilal, "Bilal's question")
	giveAnswer(t, content, alice, bilalQuestion, "alice on bilal's question")
	bilalAnswer := giveAnswer(t, content, bilal, bilalQuestion, "bilal on his own question")

	_, aliceToken, err := identity.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	require.NoError(t, content.DeleteUserCascade(ctx, alice.UserID))

	t.Run("her questions and every answer on them are gone", func(t *testing.T) {
		_, err := feed.GetQuestion(ctx, aliceQuestion)
		require.ErrorIs(t, err, ErrQuestionNotFound)

		orphans, err := content.Store.Answers().ListAnswersByQuestion(ctx, aliceQuestion)
		require.NoError(t, err)
		require.Empty(t, orphans)
	})

	t.Run("her answers elsewhere are gone, the host question survives", func(t *testing.T) {
		question, err := feed.GetQuestion(ctx, bilalQuestion)
		require.NoError(t, err)
		require.Len(t, question.Answers, 1)
		require.Equal(t, bilalAnswer, question.Answers[0].ID)
	})

	t.Run("her sessions and account are gone", func(t *testing.T) {
		_, err := identity.Authenticate(ctx, aliceToken)
		require.ErrorIs(t, err, ErrNotAuthenticated)

		_, _, err = identity.Login(ctx, "alice", testPassword)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("nothing in the feed references the deleted user", func(t *testing.T) {
		items, err := feed.ListQuestions(ctx)
		require.NoError(t, err)
		for _, q := range items {
			require.NotEqual(t, alice.UserID, q.Author.ID)
			for _, a := range q.Answers {
				require.NotEqual(t, alice.UserID, a.Author.ID)
			}
		}
	})
}
