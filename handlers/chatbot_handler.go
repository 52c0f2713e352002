package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"habitLogAPI/internal/chatbot"
	"habitLogAPI/services"
)

type ChatbotHandler struct {
	chatbotService *services.ChatbotService
	log            *zap.Logger
}

func NewChatbotHandler(chatbotService *services.ChatbotService, log *zap.Logger) *ChatbotHandler {
	return &ChatbotHandler{
		chatbotService: chatbotService,
		log:            log,
	}
}

func (h *ChatbotHandler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req chatbot.AskRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	resp, err := h.chatbotService.Ask(ctx, userID, req.Message)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
