package agent

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/healthpal-ai/health-core/observability"
	"github.com/healthpal-ai/health-core/research"
	"go.uber.org/zap"
)

// ResearchStep fans sub-queries out to the external research service.
// A nil searcher disables the stage entirely.
type ResearchStep struct {
	searcher research.Searcher
	metrics  *observability.Metrics
}

func NewResearchStep(searcher research.Searcher, metrics *observability.Metrics) *ResearchStep {
	return &ResearchStep{
		searcher: searcher,
		metrics:  metrics,
	}
}

func (r *ResearchStep) Enabled() bool {
	return r.searcher != nil
}

// Run researches each sub-query concurrently and returns findings keyed
// by sub-query. Failed sub-queries are dropped, never fatal.
func (r *ResearchStep) Run(ctx context.Context, subQueries []string) map[string]string {
	findings := make(map[string]string)
	if r.searcher == nil || len(subQueries) == 0 {
		return findings
	}

	type finding struct {
		subQuery string
		text     string
	}

	channels := make([]<-chan async.Result[finding], 0, len(subQueries))
	for _, subQuery := range subQueries {
		channels = append(channels, async.Go(func() (finding, error) {
			text, err := r.searcher.Search(ctx, subQuery)
			if err != nil {
				return finding{}, err
			}
			return finding{subQuery: subQuery, text: text}, nil
		}))
	}

	for _, ch := range channels {
		result, err := async.Await(ch)
		if err != nil {
			logger.Error("Research sub-query failed", zap.Error(err))
			r.metrics.StageError("research")
			continue
		}
		findings[result.subQuery] = result.text
	}

	return findings
}
