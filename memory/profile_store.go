package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/llm"
	"github.com/healthpal-ai/health-core/prompts"
	"go.uber.org/zap"
)

// UserProfile is the long-lived per-user digest. Absence (nil) is a
// valid state for users that have no durable identity.
type UserProfile struct {
	UserID    string
	Summary   string
	KeyTopics []string
	UpdatedOn int64
}

type profileRepo interface {
	FindOneByID(ctx context.Context, id string) (*db.UserProfileModel, error)
	Save(ctx context.Context, model db.UserProfileModel) error
}

// ProfileStore folds finished turns into persisted user profiles.
type ProfileStore struct {
	repo      profileRepo
	llmClient llm.LLMClient
}

func NewProfileStore(repo profileRepo, llmClient llm.LLMClient) *ProfileStore {
	return &ProfileStore{
		repo:      repo,
		llmClient: llmClient,
	}
}

// Get returns the user's profile, or nil when none exists yet. Store
// failures degrade to "no profile" rather than failing the turn.
func (ps *ProfileStore) Get(ctx context.Context, userID string) *UserProfile {
	model, err := ps.repo.FindOneByID(ctx, userID)
	if err != nil || model == nil {
		return nil
	}

	return &UserProfile{
		UserID:    model.UserID,
		Summary:   model.Summary,
		KeyTopics: model.KeyTopics,
		UpdatedOn: model.UpdatedOn,
	}
}

// Update merges the latest exchange into the existing profile (creating
// one if absent) and persists the result. The merged topic set always
// contains every topic the profile held before the update.
func (ps *ProfileStore) Update(ctx context.Context, userID, message, response, contextSummary string) error {
	var existingSummary string
	var existingTopics []string
	if existing := ps.Get(ctx, userID); existing != nil {
		existingSummary = existing.Summary
		existingTopics = existing.KeyTopics
	}

	merged, err := async.Await(
		prompts.MergeProfile(ctx, ps.llmClient, existingSummary, existingTopics, message, response, contextSummary),
	)
	if err != nil {
		logger.Error("Profile merge failed, falling back to digest append", zap.String("userId", userID), zap.Error(err))
		merged = &prompts.MergeProfileResponse{
			Summary: appendDigest(existingSummary, message),
		}
	}

	model := db.UserProfileModel{
		UserID:    userID,
		Summary:   merged.Summary,
		KeyTopics: unionTopics(existingTopics, merged.KeyTopics),
		UpdatedOn: time.Now().Unix(),
	}

	if err := ps.repo.Save(ctx, model); err != nil {
		return fmt.Errorf("error saving profile: %w", err)
	}
	return nil
}

// unionTopics keeps the existing topics in order and appends new ones.
func unionTopics(existing, incoming []string) []string {
	seen := ds.NewSet[string]()
	out := make([]string, 0, len(existing)+len(incoming))

	for _, topic := range append(existing, incoming...) {
		if topic == "" || seen.Contains(topic) {
			continue
		}
		seen.Add(topic)
		out = append(out, topic)
	}
	return out
}

func appendDigest(summary, message string) string {
	digest := "Asked about: " + truncate(message, 120)
	if summary == "" {
		return digest
	}
	return summary + "\n" + digest
}
