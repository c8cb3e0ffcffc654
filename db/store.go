package db

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store adapts an odm collection to a plain synchronous surface.
// Components depend on narrow interfaces satisfied by this type, which
// keeps the mongo plumbing in one place and lets tests swap in fakes.
type Store[T odm.DbModel] struct {
	col odm.OdmCollectionInterface[T]
}

func StoreOf[T odm.DbModel](mongo odm.MongoClient, dbName string) *Store[T] {
	return &Store[T]{col: odm.CollectionOf[T](mongo, dbName)}
}

func (s *Store[T]) FindOneByID(ctx context.Context, id string) (*T, error) {
	return async.Await(s.col.FindOneByID(ctx, id))
}

func (s *Store[T]) Find(ctx context.Context, filter bson.M, limit, skip int64) ([]T, error) {
	return async.Await(s.col.Find(ctx, filter, nil, limit, skip))
}

func (s *Store[T]) Save(ctx context.Context, model T) error {
	_, err := async.Await(s.col.Save(ctx, model))
	return err
}

// Count reports how many documents the collection currently holds.
func (s *Store[T]) Count(ctx context.Context, filter bson.M) (int, error) {
	all, err := async.Await(s.col.Find(ctx, filter, nil, 0, 0))
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (s *Store[T]) VectorSearch(ctx context.Context, embedding []float32, indexName string, k int) ([]T, error) {
	hits, err := async.Await(s.col.VectorSearch(ctx, embedding, odm.VectorSearchParams{
		IndexName:     indexName,
		Path:          VectorPath,
		K:             k,
		NumCandidates: k * 10,
	}))
	if err != nil {
		return nil, err
	}

	docs := make([]T, 0, len(hits))
	for _, h := range hits {
		docs = append(docs, h.Doc)
	}
	return docs, nil
}
