// Package policy holds the pure access-control decisions of the forum. Each
// function answers "may this caller perform this action" from the caller
// identity and resource ownership alone, with no I/O, so every rule is
// trivially table-testable.
package policy

import (
	"errors"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
)

var (
	// ErrNotAuthenticated means the action needs a logged-in caller.
	ErrNotAuthenticated = errors.New("policy: authentication required")
	// ErrForbidden means the caller is authenticated but not allowed.
	ErrForbidden = errors.New("policy: forbidden")
)

// CanReadContent reports whether the caller may list or read questions and
// answers. Reads are public, anonymous callers included.
func CanReadContent(_ *domain.Identity) error {
	return nil
}

// CanCreateContent reports whether the caller may post a question or an
// answer. Any authenticated user qualifies, regardless of role.
func CanCreateContent(caller *domain.Identity) error {
	if caller == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// CanDeleteQuestion allows only the question's owner to delete it.
func CanDeleteQuestion(caller *domain.Identity, ownerID string) error {
	if caller == nil {
		return ErrNotAuthenticated
	}
	if caller.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}

// CanAcceptAnswer allows only Imams to mark an answer accepted. There is
// deliberately no ownership check: any Imam may accept any answer on any
// question.
func CanAcceptAnswer(caller *domain.Identity) error {
	if caller == nil {
		return ErrNotAuthenticated
	}
	if caller.Role != domain.RoleImam {
		return ErrForbidden
	}
	return nil
}
