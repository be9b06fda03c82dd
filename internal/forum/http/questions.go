package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/policy"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/service"
	"github.com/mouadlotfi/MasjidQ-A/pkg/httpx"
)

type QuestionsHandler struct {
	ContentService *service.ContentService
	FeedService    *service.FeedService
}

type questionListResponse struct {
	Questions []domain.QuestionFeedItem `json:"questions"`
}

func (h *QuestionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	questions, err := h.FeedService.ListQuestions(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	if questions == nil {
		questions = []domain.QuestionFeedItem{}
	}

	httpx.WriteJSON(w, http.StatusOK, questionListResponse{Questions: questions})
}

func (h *QuestionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	question, err := h.FeedService.GetQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]domain.QuestionFeedItem{"question": question})
}

type createQuestionRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

type createQuestionResponse struct {
	Message    string `json:"message"`
	QuestionID string `json:"question_id"`
}

func (h *QuestionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller := identityFromCtx(r.Context())
	id, err := h.ContentService.CreateQuestion(r.Context(), caller, req.Title, req.Content, req.Tags)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, createQuestionResponse{
		Message:    "question created successfully",
		QuestionID: id,
	})
}

func (h *QuestionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller := identityFromCtx(r.Context())

	err := h.ContentService.DeleteQuestion(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, policy.ErrForbidden) {
			httpx.WriteError(w, http.StatusForbidden, "you can only delete your own questions")
			return
		}
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "question deleted successfully"})
}
