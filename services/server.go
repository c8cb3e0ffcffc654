package services

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/healthpal-ai/health-core/agent"
	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type messageHandler interface {
	HandleMessage(ctx context.Context, userID, text string, channel agent.Channel) (string, error)
	ClearContext(userID string)
	ResearchEnabled() bool
}

type tipRepo interface {
	Find(ctx context.Context, filter bson.M, limit, skip int64) ([]db.HealthTipModel, error)
}

type productRepo interface {
	Find(ctx context.Context, filter bson.M, limit, skip int64) ([]db.ProductModel, error)
}

type feedbackRepo interface {
	Save(ctx context.Context, model db.FeedbackModel) error
	Find(ctx context.Context, filter bson.M, limit, skip int64) ([]db.FeedbackModel, error)
}

// Server is the HTTP boundary. All stateful work is delegated to the
// flow and the repositories.
type Server struct {
	flow     messageHandler
	tips     tipRepo
	products productRepo
	feedback feedbackRepo
	metrics  *observability.Metrics
	validate *validator.Validate
	randIntn func(n int) int
}

func ProvideServer(
	flow messageHandler,
	tips tipRepo,
	products productRepo,
	feedback feedbackRepo,
	metrics *observability.Metrics,
) *Server {
	return &Server{
		flow:     flow,
		tips:     tips,
		products: products,
		feedback: feedback,
		metrics:  metrics,
		validate: validator.New(),
		randIntn: rand.Intn,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Post("/chat", s.handleChat)
	r.Post("/clear-context", s.handleClearContext)
	r.Get("/tips/random", s.handleRandomTip)
	r.Post("/feedback", s.handleFeedback)
	r.Get("/admin/feedback", s.handleListFeedback)
	r.Post("/webhook/sms", s.handleSMSWebhook)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"message": "Health assistant API is running",
		"features": map[string]bool{
			"chat":     true,
			"tips":     true,
			"feedback": true,
			"research": s.flow.ResearchEnabled(),
		},
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
