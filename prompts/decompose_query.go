package prompts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/healthpal-ai/health-core/llm"
)

type DecomposeQueryResponse struct {
	NeedsResearch bool     `json:"needs_research"`
	SubQueries    []string `json:"sub_queries"`
}

// DecomposeQuery judges whether the query needs external research and, if
// so, partitions it into mechanism / benefits / risks / current-evidence
// sub-queries. One structured-output call, no retry.
func DecomposeQuery(ctx context.Context, client llm.LLMClient, query string) <-chan async.Result[*DecomposeQueryResponse] {
	return async.Go(func() (*DecomposeQueryResponse, error) {
		systemPrompt, err := loadPrompt("templates/decompose_query_system.md", map[string]string{})
		if err != nil {
			return nil, err
		}

		userPrompt, err := loadPrompt("templates/decompose_query_user.md", map[string]string{
			"QUERY": query,
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

		var response string
		err = client.GenerateInference(ctx, messages, func(chunk string) error {
			response += chunk
			return nil
		}, llm.WithTemperature(0.3),
			llm.WithTopP(0.8),
			llm.WithMaxTokens(1024),
			llm.WithSystemPrompt(systemPrompt),
			llm.WithJSONOutput(),
		)
		if err != nil {
			return nil, err
		}

		out := &DecomposeQueryResponse{}
		if err := json.Unmarshal([]byte(cleanJSON(response)), out); err != nil {
			return nil, fmt.Errorf("error parsing decomposition response: %w", err)
		}

		return out, nil
	})
}
