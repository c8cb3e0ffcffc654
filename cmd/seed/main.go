package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/healthpal-ai/health-core/appconfig"
	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/llm"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type tipsFile struct {
	Tips []struct {
		ID       string `json:"id"`
		Text     string `json:"text"`
		Category string `json:"category"`
	} `json:"tips"`
}

type faqsFile struct {
	Faqs []struct {
		ID       string `json:"id"`
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Category string `json:"category"`
	} `json:"faqs"`
}

type productsFile struct {
	Products []struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
	} `json:"products"`
}

// Seeds the knowledge base: loads tips, FAQs and products from JSON,
// embeds each document and upserts it into mongo.
func main() {
	dataDir := flag.String("data", "data/health_knowledge", "directory holding the knowledge JSON files")
	configPath := flag.String("config", "config.ini", "path to the config file")
	flag.Parse()

	dotenv.LoadEnv()

	ccfgg := &appconfig.AppConfig{}
	if err := config.LoadConfig(*configPath, ccfgg); err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	embedder, err := llm.ProvideOllamaEmbedder(ccfgg.EmbeddingModel)
	if err != nil {
		logger.Fatal("Failed to create Ollama embedder", zap.Error(err))
	}

	mongoClient := odm.ProvideMongoClient()

	ctx := context.Background()
	if err := db.InitHealthCoreDB(ctx, mongoClient, ccfgg.DBName); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	seedTips(ctx, embedder, db.StoreOf[db.HealthTipModel](mongoClient, ccfgg.DBName), *dataDir)
	seedFaqs(ctx, embedder, db.StoreOf[db.FaqModel](mongoClient, ccfgg.DBName), *dataDir)
	seedProducts(ctx, embedder, db.StoreOf[db.ProductModel](mongoClient, ccfgg.DBName), *dataDir)

	logger.Info("Knowledge base seeded")
}

func seedTips(ctx context.Context, embedder llm.Embedder, store *db.Store[db.HealthTipModel], dataDir string) {
	var file tipsFile
	loadJSON(filepath.Join(dataDir, "health_tips.json"), &file)

	for _, tip := range file.Tips {
		embedding, err := embedder.GetEmbedding(ctx, tip.Text)
		if err != nil {
			logger.Fatal("Failed to embed tip", zap.String("id", tip.ID), zap.Error(err))
		}

		model := db.HealthTipModel{
			TipID:     tip.ID,
			Text:      tip.Text,
			Category:  tip.Category,
			Embedding: bson.NewVector(embedding),
		}
		if err := store.Save(ctx, model); err != nil {
			logger.Fatal("Failed to save tip", zap.String("id", tip.ID), zap.Error(err))
		}
	}

	logger.Info("Seeded health tips", zap.Int("count", len(file.Tips)))
}

func seedFaqs(ctx context.Context, embedder llm.Embedder, store *db.Store[db.FaqModel], dataDir string) {
	var file faqsFile
	loadJSON(filepath.Join(dataDir, "faqs.json"), &file)

	for _, faq := range file.Faqs {
		embedding, err := embedder.GetEmbedding(ctx, faq.Question+" "+faq.Answer)
		if err != nil {
			logger.Fatal("Failed to embed FAQ", zap.String("id", faq.ID), zap.Error(err))
		}

		model := db.FaqModel{
			FaqID:     faq.ID,
			Question:  faq.Question,
			Answer:    faq.Answer,
			Category:  faq.Category,
			Embedding: bson.NewVector(embedding),
		}
		if err := store.Save(ctx, model); err != nil {
			logger.Fatal("Failed to save FAQ", zap.String("id", faq.ID), zap.Error(err))
		}
	}

	logger.Info("Seeded FAQs", zap.Int("count", len(file.Faqs)))
}

func seedProducts(ctx context.Context, embedder llm.Embedder, store *db.Store[db.ProductModel], dataDir string) {
	var file productsFile
	loadJSON(filepath.Join(dataDir, "products.json"), &file)

	for _, product := range file.Products {
		embedding, err := embedder.GetEmbedding(ctx, product.Name+". "+product.Description)
		if err != nil {
			logger.Fatal("Failed to embed product", zap.String("id", product.ID), zap.Error(err))
		}

		model := db.ProductModel{
			ProductID:   product.ID,
			Name:        product.Name,
			Description: product.Description,
			Category:    product.Category,
			Price:       product.Price,
			Embedding:   bson.NewVector(embedding),
		}
		if err := store.Save(ctx, model); err != nil {
			logger.Fatal("Failed to save product", zap.String("id", product.ID), zap.Error(err))
		}
	}

	logger.Info("Seeded products", zap.Int("count", len(file.Products)))
}

func loadJSON(path string, out any) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("Failed to read data file", zap.String("path", path), zap.Error(err))
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Fatal("Failed to parse data file", zap.String("path", path), zap.Error(err))
	}
}
