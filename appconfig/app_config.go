package appconfig

import (
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	HTTPPort string `env:"HTTP-PORT" ini:"http_port" validate:"required"`
	DBName   string `env:"DB-NAME" ini:"db_name" validate:"required"`

	// Generation models. The provider is picked at startup from the
	// credential shape; each provider has its own model names.
	GeminiModel    string `ini:"gemini_model" validate:"required"`
	GroqModel      string `ini:"groq_model" validate:"required"`
	EmbeddingModel string `ini:"embedding_model" validate:"required"`

	MaxChatHistory int `ini:"max_chat_history" validate:"gte=1"`
	MaxSubQueries  int `ini:"max_sub_queries" validate:"gte=1,lte=8"`
	RetrievalLimit int `ini:"retrieval_limit" validate:"gte=1"`

	// Per external-call timeout in seconds. A timed-out call is treated
	// the same as a failed one and the pipeline degrades.
	CallTimeoutSeconds int `ini:"call_timeout_seconds" validate:"gte=1"`
}

func (c *AppConfig) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}
