package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/policy"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/service"
	"github.com/mouadlotfi/MasjidQ-A/pkg/httpx"
)

type AnswersHandler struct {
	ContentService *service.ContentService
}

type createAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Content    string `json:"content"`
}

type createAnswerResponse struct {
	Message  string `json:"message"`
	AnswerID string `json:"answer_id"`
}

func (h *AnswersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller := identityFromCtx(r.Context())
	id, err := h.ContentService.CreateAnswer(r.Context(), caller, req.QuestionID, req.Content)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, createAnswerResponse{
		Message:  "answer created successfully",
		AnswerID: id,
	})
}

func (h *AnswersHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	caller := identityFromCtx(r.Context())

	err := h.ContentService.AcceptAnswer(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, policy.ErrForbidden) {
			httpx.WriteError(w, http.StatusForbidden, "only Imams can perform this action")
			return
		}
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "answer marked as accepted"})
}
