package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieveRun(t *testing.T) {
	embedder := &stubEmbedder{}
	tips := &stubVectorRepo[db.HealthTipModel]{
		count: 10,
		docs:  []db.HealthTipModel{{TipID: "t1", Text: "Drink water through the day."}},
	}
	products := &stubVectorRepo[db.ProductModel]{
		count: 10,
		docs:  []db.ProductModel{{ProductID: "p1", Name: "Vitamin D"}},
	}
	step := NewRetrieveStep(embedder, tips, products, 5, nil)

	out := step.Run(context.Background(), "how much water per day", nil)

	require.Len(t, out.HealthTips, 1)
	require.Len(t, out.Products, 1)
	assert.Equal(t, 5, tips.lastK)
	assert.Equal(t, []string{"how much water per day"}, embedder.texts)
}

func TestRetrieveAppendsProfileTopics(t *testing.T) {
	embedder := &stubEmbedder{}
	step := NewRetrieveStep(embedder,
		&stubVectorRepo[db.HealthTipModel]{},
		&stubVectorRepo[db.ProductModel]{}, 5, nil)

	step.Run(context.Background(), "any tips", &memory.UserProfile{
		KeyTopics: []string{"sleep", "hydration"},
	})

	assert.Equal(t, []string{"any tips sleep hydration"}, embedder.texts)
}

func TestRetrieveCapsLimitByCollectionSize(t *testing.T) {
	tips := &stubVectorRepo[db.HealthTipModel]{count: 2}
	step := NewRetrieveStep(&stubEmbedder{}, tips,
		&stubVectorRepo[db.ProductModel]{count: 10}, 5, nil)

	step.Run(context.Background(), "query", nil)

	assert.Equal(t, 2, tips.lastK)
}

func TestRetrieveSkipsEmptyCollections(t *testing.T) {
	tips := &stubVectorRepo[db.HealthTipModel]{count: 0}
	step := NewRetrieveStep(&stubEmbedder{}, tips,
		&stubVectorRepo[db.ProductModel]{count: 0}, 5, nil)

	out := step.Run(context.Background(), "query", nil)

	assert.True(t, out.Empty())
	assert.False(t, tips.searched)
}

func TestRetrieveDegradesOnEmbeddingError(t *testing.T) {
	tips := &stubVectorRepo[db.HealthTipModel]{count: 10}
	step := NewRetrieveStep(&stubEmbedder{err: errors.New("ollama down")}, tips,
		&stubVectorRepo[db.ProductModel]{count: 10}, 5, nil)

	out := step.Run(context.Background(), "query", nil)

	assert.True(t, out.Empty())
	assert.False(t, tips.searched)
}

func TestRetrievePartialFailure(t *testing.T) {
	tips := &stubVectorRepo[db.HealthTipModel]{count: 3, searchErr: errors.New("index missing")}
	products := &stubVectorRepo[db.ProductModel]{
		count: 3,
		docs:  []db.ProductModel{{ProductID: "p1", Name: "Vitamin D"}},
	}
	step := NewRetrieveStep(&stubEmbedder{}, tips, products, 5, nil)

	out := step.Run(context.Background(), "query", nil)

	assert.Empty(t, out.HealthTips)
	assert.Len(t, out.Products, 1)
}
