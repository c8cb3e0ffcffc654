package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/healthpal-ai/health-core/llm"
	"github.com/healthpal-ai/health-core/memory"
	"github.com/healthpal-ai/health-core/observability"
	"github.com/healthpal-ai/health-core/prompts"
	"go.uber.org/zap"
)

// FallbackResponse is returned whenever either generation pass fails.
const FallbackResponse = `I apologize, but I'm having trouble generating a response right now.
For your safety and best advice, please consider consulting with a healthcare professional.`

// Composer turns a query plus gathered context into the final answer
// with a reasoning pass followed by a refinement pass.
type Composer struct {
	llmClient llm.LLMClient
	metrics   *observability.Metrics
}

func NewComposer(llmClient llm.LLMClient, metrics *observability.Metrics) *Composer {
	return &Composer{
		llmClient: llmClient,
		metrics:   metrics,
	}
}

// Compose generates the answer. The reasoning transcript is never shown
// to the user, only fed into the refinement pass. A failed reasoning
// pass short-circuits to the fallback without attempting refinement.
func (c *Composer) Compose(
	ctx context.Context,
	query string,
	subQueries []string,
	findings map[string]string,
	retrieved RetrievedContext,
	profile *memory.UserProfile,
) string {
	contextInfo := buildContextInfo(retrieved, profile, subQueries, findings)

	reasoning, err := async.Await(prompts.ChainReasoning(ctx, c.llmClient, query, contextInfo))
	if err != nil {
		logger.Error("Reasoning pass failed", zap.Error(err))
		c.metrics.StageError("compose")
		return FallbackResponse
	}

	answer, err := async.Await(prompts.RefineAnswer(ctx, c.llmClient, query, reasoning))
	if err != nil {
		logger.Error("Refinement pass failed", zap.Error(err))
		c.metrics.StageError("compose")
		return FallbackResponse
	}

	return answer
}

// buildContextInfo assembles the context block fed to the reasoning
// pass. Research findings keep sub-query order so the prompt is stable
// for a given plan.
func buildContextInfo(retrieved RetrievedContext, profile *memory.UserProfile, subQueries []string, findings map[string]string) string {
	var parts []string

	if !retrieved.Empty() {
		var local strings.Builder
		local.WriteString("Local Knowledge:")
		for _, tip := range retrieved.HealthTips {
			fmt.Fprintf(&local, "\n- %s", tip.Text)
		}
		for _, product := range retrieved.Products {
			fmt.Fprintf(&local, "\n- %s: %s", product.Name, product.Description)
		}
		parts = append(parts, local.String())
	}

	if profile != nil && profile.Summary != "" {
		parts = append(parts, "User Context:\n"+profile.Summary)
	}

	if len(findings) > 0 {
		var researched strings.Builder
		researched.WriteString("Research Findings:")
		for _, subQuery := range subQueries {
			if text, ok := findings[subQuery]; ok {
				fmt.Fprintf(&researched, "\nResearch on %s:\n%s", subQuery, text)
			}
		}
		parts = append(parts, researched.String())
	}

	return strings.Join(parts, "\n\n")
}
