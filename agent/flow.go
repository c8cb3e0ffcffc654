package agent

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/memory"
	"github.com/healthpal-ai/health-core/observability"
	"go.uber.org/zap"
)

// Channel identifies how the message reached us. SMS carries a durable
// identity (the phone number), web identities are best-effort.
type Channel string

const (
	ChannelWeb Channel = "web"
	ChannelSMS Channel = "sms"
)

// DefaultResponse is the outer safety net for unexpected failures.
const DefaultResponse = "I apologize, but I'm having trouble processing your request. Please try again."

var ErrEmptyMessage = errors.New("message is required")

type chatRepo interface {
	Save(ctx context.Context, model db.ChatModel) error
}

// ChatFlow orchestrates one message through plan, research, retrieval
// and composition, then records the turn.
type ChatFlow struct {
	planner  *QueryPlanner
	research *ResearchStep
	retrieve *RetrieveStep
	composer *Composer
	contexts *memory.ContextStore
	profiles *memory.ProfileStore
	chats    chatRepo
	metrics  *observability.Metrics
}

func NewChatFlow(
	planner *QueryPlanner,
	research *ResearchStep,
	retrieve *RetrieveStep,
	composer *Composer,
	contexts *memory.ContextStore,
	profiles *memory.ProfileStore,
	chats chatRepo,
	metrics *observability.Metrics,
) *ChatFlow {
	return &ChatFlow{
		planner:  planner,
		research: research,
		retrieve: retrieve,
		composer: composer,
		contexts: contexts,
		profiles: profiles,
		chats:    chats,
		metrics:  metrics,
	}
}

func (f *ChatFlow) ResearchEnabled() bool {
	return f.research.Enabled()
}

// ClearContext drops the user's rolling conversation window.
func (f *ChatFlow) ClearContext(userID string) {
	f.contexts.Clear(userID)
}

// HandleMessage runs the full pipeline for one message. Retrieval runs
// alongside the plan-then-research chain. Stage failures degrade inside
// each step; anything that still panics is converted to the default
// response here so a bad turn never takes the handler down.
func (f *ChatFlow) HandleMessage(ctx context.Context, userID, text string, channel Channel) (response string, err error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered while handling message", zap.String("userId", userID), zap.Any("panic", r))
			f.metrics.StageError("flow")
			f.metrics.MessageHandled(string(channel), "panic")
			response, err = DefaultResponse, nil
		}
	}()

	start := time.Now()

	var profile *memory.UserProfile
	if channel == ChannelSMS {
		profile = f.profiles.Get(ctx, userID)
	}

	retrievedCh := async.Go(func() (RetrievedContext, error) {
		return f.retrieve.Run(ctx, text, profile), nil
	})

	plan := f.planner.Decompose(ctx, text)

	findings := map[string]string{}
	if plan.NeedsResearch && len(plan.SubQueries) > 0 {
		findings = f.research.Run(ctx, plan.SubQueries)
	}

	retrieved, _ := async.Await(retrievedCh)

	answer := f.composer.Compose(ctx, text, plan.SubQueries, findings, retrieved, profile)

	f.contexts.Append(userID, memory.Turn{
		Message:   text,
		Response:  answer,
		Timestamp: time.Now(),
	})

	if err := f.chats.Save(ctx, db.ChatModel{
		UserID:    userID,
		Message:   text,
		Response:  answer,
		Channel:   string(channel),
		Timestamp: time.Now().Unix(),
	}); err != nil {
		logger.Error("Failed to persist chat turn", zap.String("userId", userID), zap.Error(err))
	}

	if channel == ChannelSMS {
		if err := f.profiles.Update(ctx, userID, text, answer, f.contexts.Summarize(userID)); err != nil {
			logger.Error("Failed to update profile", zap.String("userId", userID), zap.Error(err))
		}
	}

	status := "ok"
	if answer == FallbackResponse {
		status = "fallback"
	}
	f.metrics.MessageHandled(string(channel), status)
	f.metrics.ObserveCompose(time.Since(start))

	return answer, nil
}
