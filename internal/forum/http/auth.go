package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/service"
	"github.com/mouadlotfi/MasjidQ-A/pkg/httpx"
	"github.com/mouadlotfi/MasjidQ-A/pkg/slogx"
)

type AuthHandler struct {
	IdentityService *service.IdentityService
	ContentService  *service.ContentService
	CookieName      string
	CookieSecure    bool
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.IdentityService.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, registerResponse{
		Message: "user registered successfully",
		UserID:  user.ID,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Message string             `json:"message,omitempty"`
	User    domain.UserSummary `json:"user"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.IdentityService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	h.setSessionCookie(w, token, time.Now().Add(h.IdentityService.SessionTTL))
	httpx.WriteJSON(w, http.StatusOK, userResponse{Message: "login successful", User: user})
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity := identityFromCtx(r.Context())

	httpx.WriteJSON(w, http.StatusOK, userResponse{
		User: domain.UserSummary{
			ID:       identity.UserID,
			Username: identity.Username,
			Role:     identity.Role,
		},
	})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.IdentityService.Logout(r.Context(), h.sessionToken(r)); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	h.clearSessionCookie(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity := identityFromCtx(r.Context())
	err := h.IdentityService.ChangePassword(r.Context(), *identity, req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated successfully"})
}

type changeUsernameRequest struct {
	NewUsername string `json:"new_username"`
}

func (h *AuthHandler) HandleChangeUsername(w http.ResponseWriter, r *http.Request) {
	var req changeUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity := identityFromCtx(r.Context())
	user, err := h.IdentityService.ChangeUsername(r.Context(), *identity, req.NewUsername)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse{Message: "username updated successfully", User: user})
}

func (h *AuthHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	identity := identityFromCtx(ctx)

	// The cascade also removes the user's sessions, so the cookie token is
	// dead after this; clearing the cookie is cosmetic.
	if err := h.ContentService.DeleteUserCascade(ctx, identity.UserID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("account deleted", "user_id", identity.UserID)
	h.clearSessionCookie(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "account deleted successfully"})
}

func (h *AuthHandler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(h.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
