package prompts

import (
	"context"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/healthpal-ai/health-core/llm"
)

// RefineAnswer runs the second composition pass: it feeds the reasoning
// transcript back and asks for the concise, user-facing answer.
func RefineAnswer(ctx context.Context, client llm.LLMClient, query, reasoning string) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/refine_answer_system.md", map[string]string{})
		if err != nil {
			return "", err
		}

		userPrompt, err := loadPrompt("templates/refine_answer_user.md", map[string]string{
			"QUERY":     query,
			"REASONING": reasoning,
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
