package prompts

import (
	"context"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/healthpal-ai/health-core/llm"
)

// ChainReasoning runs the first composition pass: an explicit
// step-by-step reasoning transcript over the gathered context. The
// transcript conditions the refinement pass and is never user-visible.
func ChainReasoning(ctx context.Context, client llm.LLMClient, query, contextInfo string) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/chain_reasoning_system.md", map[string]string{})
		if err != nil {
			return "", err
		}

		userPrompt, err := loadPrompt("templates/chain_reasoning_user.md", map[string]string{
			"QUERY":   query,
			"CONTEXT": contextInfo,
		})
		if err != nil {
			return "", err
		}

		messages := []llm.Message{
			{
				Role:    "user",
				Content: userPrompt,
			},
		}

		var response string
		err = client.GenerateInference(ctx, messages, func(chunk string) error {
			response += chunk
			return nil
		}, llm.WithTemperature(0.7),
			llm.WithTopP(0.95),
			llm.WithMaxTokens(8192),
			llm.WithSystemPrompt(systemPrompt),
		)

		return response, err
	})
}
