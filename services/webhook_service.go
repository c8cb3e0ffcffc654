package services

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/healthpal-ai/health-core/agent"
	"go.uber.org/zap"
)

// twimlResponse is the minimal TwiML envelope Twilio expects back from
// an SMS webhook.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// handleSMSWebhook serves Twilio-style form posts. The sender's phone
// number is the durable user identity that drives the profile path.
func (s *Server) handleSMSWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed form body")
		return
	}

	from := strings.TrimSpace(r.PostFormValue("From"))
	body := r.PostFormValue("Body")

	if from == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "From is required")
		return
	}

	answer, err := s.flow.HandleMessage(r.Context(), from, body, agent.ChannelSMS)
	if err != nil {
		if errors.Is(err, agent.ErrEmptyMessage) {
			respondTwiML(w, "Please send a health question to get started.")
			return
		}
		logger.Error("SMS handling failed", zap.String("from", from), zap.Error(err))
		respondTwiML(w, agent.DefaultResponse)
		return
	}

	respondTwiML(w, answer)
}

func respondTwiML(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write([]byte(xml.Header))
	_ = xml.NewEncoder(w).Encode(twimlResponse{Message: message})
}
