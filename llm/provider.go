package llm

import (
	"errors"
	"os"
	"strings"
	"time"
)

// ProvideLLMClient selects the generation provider by inspecting the
// credential shape: Groq keys carry a "gsk_" prefix, anything else is
// treated as a Gemini API key. The rest of the pipeline only sees the
// LLMClient interface and never the provider identity.
func ProvideLLMClient(geminiModel, groqModel string, timeout time.Duration) (LLMClient, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GOOGLE_API_KEY environment variable is not set")
	}

	if strings.HasPrefix(apiKey, "gsk_") {
		return NewGroqClient(apiKey, groqModel, timeout), nil
	}

	return NewGeminiClient(apiKey, geminiModel, timeout)
}
