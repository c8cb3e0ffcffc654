package db

import (
	"github.com/SaiNageswarS/go-api-boot/odm"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const FaqVectorIndexName = "faqEmbeddingIndex"

type FaqModel struct {
	FaqID     string      `json:"faqId" bson:"_id"`
	Question  string      `json:"question" bson:"question"`
	Answer    string      `json:"answer" bson:"answer"`
	Category  string      `json:"category" bson:"category"`
	Embedding bson.Vector `json:"-" bson:"embedding"`
}

func (m FaqModel) Id() string { return m.FaqID }

func (m FaqModel) CollectionName() string { return "faqs" }

// Indexes
func (m FaqModel) VectorIndexSpecs() []odm.VectorIndexSpec {
	return []odm.VectorIndexSpec{
		{
			Name:          FaqVectorIndexName,
			Path:          VectorPath,
			Type:          "vector",
			NumDimensions: EmbeddingDimensions,
			Similarity:    "cosine",
			Quantization:  "scalar",
		},
	}
}
