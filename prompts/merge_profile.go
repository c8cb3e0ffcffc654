package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/healthpal-ai/health-core/llm"
)

type MergeProfileResponse struct {
	Summary   string   `json:"summary"`
	KeyTopics []string `json:"key_topics"`
}

// MergeProfile folds the latest exchange into an existing profile
// summary and topic set.
func MergeProfile(ctx context.Context, client llm.LLMClient, existingSummary string, existingTopics []string, message, response, contextSummary string) <-chan async.Result[*MergeProfileResponse] {
	return async.Go(func() (*MergeProfileResponse, error) {
		systemPrompt, err := loadPrompt("templates/merge_profile_system.md", map[string]string{})
		if err != nil {
			return nil, err
		}

		userPrompt, err := loadPrompt("templates/merge_profile_user.md", map[string]string{
			"EXISTING_SUMMARY": existingSummary,
			"EXISTING_TOPICS":  strings.Join(existingTopics, ", "),
			"MESSAGE":          message,
			"RESPONSE":         response,
			"CONTEXT_SUMMARY":  contextSummary,
		})
		if err != nil {
			return nil, err
		}

		messages := []llm.Message{
			{
				Role:    "user",
				Content: userPrompt,
			},
		}

		var raw string
		err = client.GenerateInference(ctx, messages, func(chunk string) error {
			raw += chunk
			return nil
		}, llm.WithTemperature(0.3),
			llm.WithMaxTokens(1024),
			llm.WithSystemPrompt(systemPrompt),
			llm.WithJSONOutput(),
		)
		if err != nil {
			return nil, err
		}

		out := &MergeProfileResponse{}
		if err := json.Unmarshal([]byte(cleanJSON(raw)), out); err != nil {
			return nil, fmt.Errorf("error parsing profile response: %w", err)
		}

		return out, nil
	})
}
