package llm

import (
	"context"
)

type LLMClient interface {
	GenerateInference(
		ctx context.Context,
		messages []Message,
		callback func(chunk string) error,
		opts ...LLMOption,
	) error

	GetModel() string
}

type LLMSettings struct {
	model       string  // model name
	temperature float64 // randomness (0.0 to 1.0)
	topP        float64 // nucleus sampling cutoff
	maxTokens   int     // maximum tokens to generate
	system      string  // system prompt
	jsonOutput  bool    // ask the provider for a structured JSON response
}

type LLMOption func(*LLMSettings)

// Common options for all LLM providers
func WithModel(model string) LLMOption {
	return func(s *LLMSettings) { s.model = model }
}

func WithTemperature(temp float64) LLMOption {
	return func(s *LLMSettings) { s.temperature = temp }
}

func WithTopP(topP float64) LLMOption {
	return func(s *LLMSettings) { s.topP = topP }
}

func WithMaxTokens(tokens int) LLMOption {
	return func(s *LLMSettings) { s.maxTokens = tokens }
}

func WithSystemPrompt(prompt string) LLMOption {
	return func(s *LLMSettings) { s.system = prompt }
}

func WithJSONOutput() LLMOption {
	return func(s *LLMSettings) { s.jsonOutput = true }
}

type Message struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // the message content
}
