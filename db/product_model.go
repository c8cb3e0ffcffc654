package db

import (
	"github.com/SaiNageswarS/go-api-boot/odm"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const ProductVectorIndexName = "productEmbeddingIndex"

type ProductModel struct {
	ProductID   string      `json:"productId" bson:"_id"`
	Name        string      `json:"name" bson:"name"`
	Description string      `json:"description" bson:"description"`
	Category    string      `json:"category" bson:"category"`
	Price       float64     `json:"price" bson:"price"`
	Embedding   bson.Vector `json:"-" bson:"embedding"`
}

func (m ProductModel) Id() string { return m.ProductID }

func (m ProductModel) CollectionName() string { return "products" }

// Indexes
func (m ProductModel) VectorIndexSpecs() []odm.VectorIndexSpec {
	return []odm.VectorIndexSpec{
		{
			Name:          ProductVectorIndexName,
			Path:          VectorPath,
			Type:          "vector",
			NumDimensions: EmbeddingDimensions,
			Similarity:    "cosine",
			Quantization:  "scalar",
		},
	}
}
