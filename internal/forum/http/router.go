package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/service"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/store"
	"github.com/mouadlotfi/MasjidQ-A/pkg/httpx"
	"github.com/mouadlotfi/MasjidQ-A/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	cookieName   string
	cookieSecure bool

	IdentityService *service.IdentityService
	ContentService  *service.ContentService
	FeedService     *service.FeedService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	cookieName string,
	cookieSecure bool,
	corsOrigin string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}

	// Global middleware chain: request logging first, then CORS, then the
	// session resolver so every handler can see the caller identity.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigin),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	// Session resolution happens globally; it never rejects, it only
	// attaches the identity when the cookie resolves.
	r.middlewares = append(r.middlewares, r.sessionMiddleware())

	r.registerAuth()
	r.registerQuestions()
	r.registerAnswers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		IdentityService: r.IdentityService,
		ContentService:  r.ContentService,
		CookieName:      r.cookieName,
		CookieSecure:    r.cookieSecure,
	}

	r.Mux.Handle("POST /auth/register", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("POST /auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("GET /auth/me", RequireSession(http.HandlerFunc(h.HandleMe)))
	r.Mux.Handle("POST /auth/logout", RequireSession(http.HandlerFunc(h.HandleLogout)))
	r.Mux.Handle("PUT /auth/password", RequireSession(http.HandlerFunc(h.HandleChangePassword)))
	r.Mux.Handle("PUT /auth/username", RequireSession(http.HandlerFunc(h.HandleChangeUsername)))
	r.Mux.Handle("DELETE /auth/account", RequireSession(http.HandlerFunc(h.HandleDeleteAccount)))
}

func (r *Router) registerQuestions() {
	h := &QuestionsHandler{
		ContentService: r.ContentService,
		FeedService:    r.FeedService,
	}

	// Reads are public, writes need a session.
	r.Mux.Handle("GET /questions", http.HandlerFunc(h.HandleList))
	r.Mux.Handle("GET /questions/{id}", http.HandlerFunc(h.HandleGet))
	r.Mux.Handle("POST /questions", RequireSession(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("DELETE /questions/{id}", RequireSession(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerAnswers() {
	h := &AnswersHandler{ContentService: r.ContentService}

	r.Mux.Handle("POST /answers", RequireSession(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /answers/{id}/accept", RequireSession(http.HandlerFunc(h.HandleAccept)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
