package http

import (
	"context"
	"net/http"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
	"github.com/mouadlotfi/MasjidQ-A/pkg/httpx"
	"github.com/mouadlotfi/MasjidQ-A/pkg/slogx"
)

// sessionMiddleware resolves the session cookie into a caller identity and
// attaches it to the request context. It never rejects: anonymous and
// invalid-cookie requests continue without an identity, and protected routes
// enforce presence via RequireSession.
func (r *Router) sessionMiddleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			cookie, err := req.Cookie(r.cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, req)
				return
			}

			identity, err := r.IdentityService.Authenticate(req.Context(), cookie.Value)
			if err != nil {
				// Expired or revoked session; treat as anonymous.
				next.ServeHTTP(w, req)
				return
			}

			ctx := context.WithValue(req.Context(), httpx.CtxKeyIdentity, identity)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that carry no resolved identity.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identityFromCtx(r.Context()) == nil {
			log := slogx.FromContext(r.Context())
			log.Debug("unauthenticated request to protected route")
			httpx.WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFromCtx(ctx context.Context) *domain.Identity {
	if id, ok := ctx.Value(httpx.CtxKeyIdentity).(domain.Identity); ok {
		return &id
	}
	return nil
}
