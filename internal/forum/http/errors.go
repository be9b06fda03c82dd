package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/policy"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/service"
	"github.com/mouadlotfi/MasjidQ-A/pkg/httpx"
	"github.com/mouadlotfi/MasjidQ-A/pkg/slogx"
)

// writeServiceError translates a service or policy error into a status code
// and a short user-safe message. Anything unclassified is a store failure:
// it is logged with detail and surfaced as a bare 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUsernameTooShort),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, policy.ErrNotAuthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, userMessage(err))

	case errors.Is(err, policy.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")

	case errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAnswerNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())

	default:
		log := slogx.FromContext(ctx)
		log.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server error")
	}
}

// userMessage strips the policy prefix from auth errors so clients see the
// same wording regardless of which layer rejected the request.
func userMessage(err error) string {
	if errors.Is(err, service.ErrInvalidCredentials) {
		return service.ErrInvalidCredentials.Error()
	}
	return service.ErrNotAuthenticated.Error()
}
