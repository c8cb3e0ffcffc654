package services

import (
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

const tipSampleSize = 5

type relatedProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type randomTipResponse struct {
	Tip             string           `json:"tip"`
	Category        string           `json:"category"`
	RelatedProducts []relatedProduct `json:"related_products"`
}

// handleRandomTip serves one tip sampled from the category (or the
// whole collection) plus products from the same category. Store
// failures degrade to a canned tip, never an error status.
func (s *Server) handleRandomTip(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	tips, err := s.tips.Find(r.Context(), filter, tipSampleSize, 0)
	if err != nil {
		logger.Error("Tip lookup failed", zap.Error(err))
		respondJSON(w, http.StatusOK, randomTipResponse{
			Tip:             "I am ready to help with your health questions.",
			Category:        "general",
			RelatedProducts: []relatedProduct{},
		})
		return
	}

	if len(tips) == 0 {
		respondJSON(w, http.StatusOK, randomTipResponse{
			Tip:             "Ask me any health related question to get started!",
			Category:        "general",
			RelatedProducts: []relatedProduct{},
		})
		return
	}

	tip := tips[s.randIntn(len(tips))]

	respondJSON(w, http.StatusOK, randomTipResponse{
		Tip:             tip.Text,
		Category:        tip.Category,
		RelatedProducts: s.relatedProducts(r, tip.Category),
	})
}

func (s *Server) relatedProducts(r *http.Request, category string) []relatedProduct {
	out := []relatedProduct{}

	products, err := s.products.Find(r.Context(), bson.M{"category": category}, tipSampleSize, 0)
	if err != nil {
		logger.Error("Related product lookup failed", zap.Error(err))
		return out
	}

	for _, product := range products {
		out = append(out, relatedProduct{
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
		})
	}
	return out
}
