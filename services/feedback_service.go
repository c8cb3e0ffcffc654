package services

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/healthpal-ai/health-core/db"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type feedbackRequest struct {
	UserID  string `json:"user_id"`
	Rating  *int   `json:"rating" validate:"required"`
	Comment string `json:"comment"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Rating is required")
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = "default_user"
	}

	model := db.FeedbackModel{
		UserID:    req.UserID,
		Rating:    *req.Rating,
		Comment:   req.Comment,
		Timestamp: time.Now().Unix(),
	}
	if err := s.feedback.Save(r.Context(), model); err != nil {
		logger.Error("Failed to store feedback", zap.String("userId", req.UserID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "feedback_failed", "Failed to process feedback")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Thank you for your feedback!",
		"status":  "success",
	})
}

type feedbackEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Timestamp int64  `json:"timestamp"`
}

func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	all, err := s.feedback.Find(r.Context(), bson.M{}, 0, 0)
	if err != nil {
		logger.Error("Failed to list feedback", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "feedback_failed", "Failed to get feedback")
		return
	}

	// newest first
	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp > all[j].Timestamp })

	entries := make([]feedbackEntry, 0, len(all))
	for _, f := range all {
		entries = append(entries, feedbackEntry{
			ID:        f.FeedbackID,
			UserID:    f.UserID,
			Rating:    f.Rating,
			Comment:   f.Comment,
			Timestamp: f.Timestamp,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"feedback": entries,
	})
}
