package db

import (
	"github.com/SaiNageswarS/go-api-boot/odm"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const EmbeddingDimensions = 768 // Dimension of the embedding vector

const (
	TipVectorIndexName = "tipEmbeddingIndex"
	VectorPath         = "embedding"
)

type HealthTipModel struct {
	TipID     string      `json:"tipId" bson:"_id"`
	Text      string      `json:"text" bson:"text"`
	Category  string      `json:"category" bson:"category"` // e.g. "sleep", "lifestyle", "general_health"
	Embedding bson.Vector `json:"-" bson:"embedding"`
}

func (m HealthTipModel) Id() string { return m.TipID }

func (m HealthTipModel) CollectionName() string { return "health_tips" }

// Indexes
func (m HealthTipModel) VectorIndexSpecs() []odm.VectorIndexSpec {
	return []odm.VectorIndexSpec{
		{
			Name:          TipVectorIndexName,
			Path:          VectorPath,
			Type:          "vector",
			NumDimensions: EmbeddingDimensions,
			Similarity:    "cosine",
			Quantization:  "scalar",
		},
	}
}
