package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tokosena/tokosena/server/internal/api/respond"
	"github.com/tokosena/tokosena/server/internal/assistant"
	"github.com/tokosena/tokosena/server/internal/model"
)

// AssistantHandler provides HTTP transport for the shopping assistant.
type AssistantHandler struct {
	svc *assistant.Service
	log zerolog.Logger
}

func NewAssistantHandler(svc *assistant.Service, log zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{svc: svc, log: log}
}

type chatRequest struct {
	Message string                   `json:"message"`
	History []model.ConversationTurn `json:"history,omitempty"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat POST /api/assistant/chat
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.WriteBadRequest(w, "message is required")
		return
	}

	reply := h.svc.GenerateResponse(r.Context(), req.Message, req.History)
	respond.WriteJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// RefreshContext POST /api/assistant/context/refresh
func (h *AssistantHandler) RefreshContext(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RefreshContext(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("catalog context refresh failed")
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
