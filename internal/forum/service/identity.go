package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/store"
	"github.com/mouadlotfi/MasjidQ-A/pkg/cryptox"
	"github.com/mouadlotfi/MasjidQ-A/pkg/idx"
	"github.com/mouadlotfi/MasjidQ-A/pkg/slogx"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// IdentityService handles registration, credential verification and the
// session lifecycle. Session tokens are opaque and only their SHA-256
// fingerprints are stored.
type IdentityService struct {
	Store      store.Store
	SessionTTL time.Duration
}

// Register creates a new user. The password is stored only as a salted
// argon2id hash.
func (s *IdentityService) Register(ctx context.Context, username, password, role string) (domain.UserSummary, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || role == "" {
		return domain.UserSummary{}, ErrMissingFields
	}

	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return domain.UserSummary{}, ErrInvalidRole
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.UserSummary{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         parsedRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserSummary{}, ErrUsernameTaken
		}
		return domain.UserSummary{}, err
	}

	return user.Summary(), nil
}

// Login verifies credentials and establishes a session, returning the opaque
// token handed to the client as a cookie. Unknown usernames and wrong
// passwords yield the same error so the response never reveals which one it
// was.
func (s *IdentityService) Login(ctx context.Context, username, password string) (domain.UserSummary, string, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.UserSummary{}, "", ErrMissingFields
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserSummary{}, "", ErrInvalidCredentials
		}
		return domain.UserSummary{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.UserSummary{}, "", ErrInvalidCredentials
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.UserSummary{}, "", err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(token),
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: now.Add(s.SessionTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		log.Error("failed to persist session", "user_id", user.ID, "err", err)
		return domain.UserSummary{}, "", err
	}

	return user.Summary(), token, nil
}

// Authenticate resolves a session token to the caller identity. Expired
// sessions are treated as absent.
func (s *IdentityService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrNotAuthenticated
	}

	hash := cryptox.FingerprintToken(token)
	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, ErrNotAuthenticated
		}
		return domain.Identity{}, err
	}

	if session.Expired(time.Now().UTC()) {
		// Lazy cleanup; housekeeping sweeps the rest.
		_ = s.Store.Sessions().DeleteSessionByTokenHash(ctx, hash)
		return domain.Identity{}, ErrNotAuthenticated
	}

	return session.Identity(), nil
}

// Logout invalidates the session. Unknown tokens are not an error, so the
// operation is idempotent.
func (s *IdentityService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
}

// ChangePassword rotates the caller's credential after re-verifying the
// current one.
func (s *IdentityService) ChangePassword(ctx context.Context, caller domain.Identity, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return ErrMissingFields
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.Store.Users().GetUserByID(ctx, caller.UserID)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.Users().UpdatePasswordHash(ctx, caller.UserID, hash)
}

// ChangeUsername renames the caller and refreshes the cached username on all
// of their sessions in the same transaction, so later authorization checks
// see fresh data without a user re-fetch.
func (s *IdentityService) ChangeUsername(ctx context.Context, caller domain.Identity, newUsername string) (domain.UserSummary, error) {
	newUsername = strings.TrimSpace(newUsername)
	if len(newUsername) < minUsernameLength {
		return domain.UserSummary{}, ErrUsernameTooShort
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateUsername(ctx, caller.UserID, newUsername); err != nil {
			return err
		}
		return tx.Sessions().UpdateSessionsUsername(ctx, caller.UserID, newUsername)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserSummary{}, ErrUsernameTaken
		}
		return domain.UserSummary{}, err
	}

	return domain.UserSummary{ID: caller.UserID, Username: newUsername, Role: caller.Role}, nil
}
