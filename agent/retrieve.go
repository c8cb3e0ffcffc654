package agent

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/llm"
	"github.com/healthpal-ai/health-core/memory"
	"github.com/healthpal-ai/health-core/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type vectorRepo[T any] interface {
	VectorSearch(ctx context.Context, embedding []float32, indexName string, k int) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int, error)
}

// RetrievedContext is the local knowledge pulled in for one query.
type RetrievedContext struct {
	HealthTips []db.HealthTipModel
	Products   []db.ProductModel
}

func (rc RetrievedContext) Empty() bool {
	return len(rc.HealthTips) == 0 && len(rc.Products) == 0
}

// RetrieveStep embeds the query once and runs vector searches over the
// tips and products collections.
type RetrieveStep struct {
	embedder llm.Embedder
	tips     vectorRepo[db.HealthTipModel]
	products vectorRepo[db.ProductModel]
	limit    int
	metrics  *observability.Metrics
}

func NewRetrieveStep(
	embedder llm.Embedder,
	tips vectorRepo[db.HealthTipModel],
	products vectorRepo[db.ProductModel],
	limit int,
	metrics *observability.Metrics,
) *RetrieveStep {
	return &RetrieveStep{
		embedder: embedder,
		tips:     tips,
		products: products,
		limit:    limit,
		metrics:  metrics,
	}
}

// Run retrieves local context. Profile topics are folded into the search
// text so retrieval leans towards the user's recurring interests. Any
// failure degrades to an empty result.
func (r *RetrieveStep) Run(ctx context.Context, query string, profile *memory.UserProfile) RetrievedContext {
	searchText := query
	if profile != nil && len(profile.KeyTopics) > 0 {
		searchText = query + " " + strings.Join(profile.KeyTopics, " ")
	}

	embedding, err := r.embedder.GetEmbedding(ctx, searchText)
	if err != nil {
		logger.Error("Query embedding failed", zap.Error(err))
		r.metrics.StageError("retrieve")
		return RetrievedContext{}
	}

	tipsCh := async.Go(func() ([]db.HealthTipModel, error) {
		return searchBounded(ctx, r.tips, db.TipVectorIndexName, embedding, r.limit)
	})
	productsCh := async.Go(func() ([]db.ProductModel, error) {
		return searchBounded(ctx, r.products, db.ProductVectorIndexName, embedding, r.limit)
	})

	out := RetrievedContext{}
	if out.HealthTips, err = async.Await(tipsCh); err != nil {
		logger.Error("Health tip search failed", zap.Error(err))
		r.metrics.StageError("retrieve")
		out.HealthTips = nil
	}
	if out.Products, err = async.Await(productsCh); err != nil {
		logger.Error("Product search failed", zap.Error(err))
		r.metrics.StageError("retrieve")
		out.Products = nil
	}

	return out
}

// searchBounded caps k at the number of stored documents so small
// collections never over-ask the vector index.
func searchBounded[T any](ctx context.Context, repo vectorRepo[T], indexName string, embedding []float32, limit int) ([]T, error) {
	count, err := repo.Count(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	k := min(limit, count)
	if k == 0 {
		return nil, nil
	}
	return repo.VectorSearch(ctx, embedding, indexName, k)
}
