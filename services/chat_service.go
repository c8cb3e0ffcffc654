package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/healthpal-ai/health-core/agent"
	"go.uber.org/zap"
)

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message" validate:"required"`
}

type chatResponse struct {
	Response string `json:"response"`
	UserID   string `json:"user_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Message is required")
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = "default_user"
	}

	answer, err := s.flow.HandleMessage(r.Context(), req.UserID, req.Message, agent.ChannelWeb)
	if err != nil {
		if errors.Is(err, agent.ErrEmptyMessage) {
			respondError(w, http.StatusBadRequest, "invalid_request", "Message is required")
			return
		}
		logger.Error("Chat handling failed", zap.String("userId", req.UserID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "chat_failed", "Failed to process chat message")
		return
	}

	respondJSON(w, http.StatusOK, chatResponse{
		Response: answer,
		UserID:   req.UserID,
	})
}

type clearContextRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func (s *Server) handleClearContext(w http.ResponseWriter, r *http.Request) {
	var req clearContextRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "User ID is required")
		return
	}

	s.flow.ClearContext(req.UserID)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Context cleared successfully",
		"status":  "success",
	})
}
