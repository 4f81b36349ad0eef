package adaptor

import (
	"encoding/json"
	"net/http"

	"pet-rental/internal/dto/request"
	"pet-rental/internal/usecase"
	"pet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ConversationHandler struct {
	service usecase.ConversationService
	log     *zap.Logger
}

func NewConversationHandler(service usecase.ConversationService, log *zap.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With(zap.String("handler", "conversation")),
	}
}

// StartConversation handles POST /api/conversations (protected)
func (h *ConversationHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	conversation, err := h.service.StartConversation(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "start conversation")
		return
	}

	utils.ResponseCreated(w, "success", conversation)
}

// ListConversations handles GET /api/conversations (protected)
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	page := utils.ParseInt(query.Get("page"), 1)
	perPage := utils.ParseInt(query.Get("per_page"), 10)

	conversations, err := h.service.ListConversations(r.Context(), userID, page, perPage)
	if err != nil {
		handleServiceError(w, h.log, err, "list conversations")
		return
	}

	utils.ResponseSuccess(w, "success", conversations)
}

// GetConversation handles GET /api/conversations/{id} (protected)
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	conversation, err := h.service.GetConversation(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get conversation")
		return
	}

	utils.ResponseSuccess(w, "success", conversation)
}

// SendMessage handles POST /api/conversations/{id}/messages (protected)
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	message, err := h.service.SendMessage(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "send message")
		return
	}

	utils.ResponseCreated(w, "success", message)
}
