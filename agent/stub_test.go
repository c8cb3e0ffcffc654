package agent

import (
	"context"
	"errors"

	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/llm"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// scriptedLLM replays canned responses in call order and records the
// messages it was given.
type scriptedLLM struct {
	responses []string
	errs      []error
	calls     [][]llm.Message
}

func (s *scriptedLLM) GenerateInference(ctx context.Context, messages []llm.Message, callback func(chunk string) error, opts ...llm.LLMOption) error {
	i := len(s.calls)
	s.calls = append(s.calls, messages)

	if i < len(s.errs) && s.errs[i] != nil {
		return s.errs[i]
	}
	if i < len(s.responses) {
		return callback(s.responses[i])
	}
	return errors.New("no scripted response")
}

func (s *scriptedLLM) GetModel() string { return "scripted" }

type stubEmbedder struct {
	texts []string
	err   error
}

func (e *stubEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	e.texts = append(e.texts, text)
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type stubVectorRepo[T any] struct {
	count     int
	countErr  error
	docs      []T
	searchErr error
	lastK     int
	searched  bool
}

func (r *stubVectorRepo[T]) Count(ctx context.Context, filter bson.M) (int, error) {
	return r.count, r.countErr
}

func (r *stubVectorRepo[T]) VectorSearch(ctx context.Context, embedding []float32, indexName string, k int) ([]T, error) {
	r.searched = true
	r.lastK = k
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.docs, nil
}

type stubSearcher struct {
	results map[string]string
	errs    map[string]error
}

func (s *stubSearcher) Search(ctx context.Context, subQuery string) (string, error) {
	if err, ok := s.errs[subQuery]; ok {
		return "", err
	}
	return s.results[subQuery], nil
}

type stubChatRepo struct {
	saved []db.ChatModel
	err   error
}

func (r *stubChatRepo) Save(ctx context.Context, model db.ChatModel) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, model)
	return nil
}

type stubProfileRepo struct {
	profiles map[string]db.UserProfileModel
	saves    int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]db.UserProfileModel)}
}

func (r *stubProfileRepo) FindOneByID(ctx context.Context, id string) (*db.UserProfileModel, error) {
	model, ok := r.profiles[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &model, nil
}

func (r *stubProfileRepo) Save(ctx context.Context, model db.UserProfileModel) error {
	r.saves++
	r.profiles[model.UserID] = model
	return nil
}
