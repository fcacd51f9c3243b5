package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nasif952/La-valecia/internal/chat"
)

type ChatHandler struct {
	responder *chat.Responder
}

func NewChatHandler(responder *chat.Responder) *ChatHandler {
	return &ChatHandler{responder: responder}
}

type ChatRequestDTO struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type ChatResponseDTO struct {
	Message        string    `json:"message"`
	ConversationID string    `json:"conversation_id"`
	Timestamp      time.Time `json:"timestamp"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = "conv-" + getRequestID(r.Context())
	}

	respondJSON(w, http.StatusOK, ChatResponseDTO{
		Message:        h.responder.Reply(req.Message),
		ConversationID: conversationID,
		Timestamp:      time.Now(),
	})
}
