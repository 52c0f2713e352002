package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/chatbot"
	"habitLogAPI/internal/metrics"
)

const maxChatMessageLength = 500

type ChatbotService struct {
	Deps
}

func NewChatbotService(deps Deps) *ChatbotService {
	return &ChatbotService{Deps: deps.withDefaults()}
}

func (s *ChatbotService) Ask(ctx context.Context, userID, message string) (*chatbot.AskResponse, error) {
	if strings.TrimSpace(message) == "" || len(message) > maxChatMessageLength {
		return nil, fmt.Errorf("chat message: %w", apperrors.InvalidRequest)
	}

	u, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := chatbot.Respond(u, message, s.today(), s.Clock.Now())
	metrics.ChatbotIntents.WithLabelValues(string(resp.Intent)).Inc()
	s.Log.Debug("chatbot answered", zap.String("user_id", userID), zap.String("intent", string(resp.Intent)))
	return &resp, nil
}
