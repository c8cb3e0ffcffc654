package agent

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/healthpal-ai/health-core/llm"
	"github.com/healthpal-ai/health-core/observability"
	"github.com/healthpal-ai/health-core/prompts"
	"go.uber.org/zap"
)

// DecompositionResult is the plan for a single query. NeedsResearch
// without sub-queries means the research stage has nothing to do.
type DecompositionResult struct {
	NeedsResearch bool
	SubQueries    []string
}

// QueryPlanner classifies whether a query warrants external research and
// splits it into focused sub-queries.
type QueryPlanner struct {
	llmClient     llm.LLMClient
	maxSubQueries int
	metrics       *observability.Metrics
}

func NewQueryPlanner(llmClient llm.LLMClient, maxSubQueries int, metrics *observability.Metrics) *QueryPlanner {
	return &QueryPlanner{
		llmClient:     llmClient,
		maxSubQueries: maxSubQueries,
		metrics:       metrics,
	}
}

// Decompose plans the query. Planner failures degrade to a no-research
// plan so the rest of the pipeline keeps going.
func (p *QueryPlanner) Decompose(ctx context.Context, query string) DecompositionResult {
	plan, err := async.Await(prompts.DecomposeQuery(ctx, p.llmClient, query))
	if err != nil {
		logger.Error("Query decomposition failed", zap.Error(err))
		p.metrics.StageError("planner")
		return DecompositionResult{}
	}

	subQueries := plan.SubQueries
	if len(subQueries) > p.maxSubQueries {
		subQueries = subQueries[:p.maxSubQueries]
	}

	return DecompositionResult{
		NeedsResearch: plan.NeedsResearch,
		SubQueries:    subQueries,
	}
}
