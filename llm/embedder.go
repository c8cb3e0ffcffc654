package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ollama/ollama/api"
)

type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}

type OllamaEmbedder struct {
	client *api.Client
	model  string
}

func ProvideOllamaEmbedder(model string) (*OllamaEmbedder, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("error creating ollama client: %w", err)
	}

	return &OllamaEmbedder{client: client, model: model}, nil
}

func (e *OllamaEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	req := &api.EmbeddingRequest{
		Model:     e.model,
		Prompt:    text,
		KeepAlive: &api.Duration{Duration: 60 * time.Minute}, // keep connection alive for reuse
	}

	resp, err := e.client.Embeddings(ctx, req) // blocking, non-streaming
	if err != nil {
		return nil, err
	}

	if len(resp.Embedding) == 0 {
		return nil, errors.New("empty embedding response")
	}

	emb64 := resp.Embedding // []float64
	emb32 := make([]float32, len(emb64))
	for i, v := range emb64 {
		emb32[i] = float32(v)
	}
	return emb32, nil
}
