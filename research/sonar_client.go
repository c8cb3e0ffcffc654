package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Searcher answers a single narrow research question with a findings text.
type Searcher interface {
	Search(ctx context.Context, subQuery string) (string, error)
}

// SonarClient calls the Perplexity Sonar API, an OpenAI-compatible
// chat-completions endpoint tuned for web research.
type SonarClient struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

// ProvideSonarClient returns nil when SONAR_API_KEY is not configured.
// A nil client disables the research stage entirely; this is a feature
// gate, not an error.
func ProvideSonarClient(timeout time.Duration) *SonarClient {
	apiKey := os.Getenv("SONAR_API_KEY")
	if apiKey == "" {
		return nil
	}

	return &SonarClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		url:        "https://api.perplexity.ai/chat/completions",
		model:      "sonar",
	}
}

func (c *SonarClient) Search(ctx context.Context, subQuery string) (string, error) {
	request := sonarRequest{
		Model: c.model,
		Messages: []sonarMessage{
			{Role: "system", Content: "Be precise and concise. Cite recent scientific evidence where available."},
			{Role: "user", Content: subQuery},
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response sonarResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return response.Choices[0].Message.Content, nil
}

// Sonar API types
type sonarRequest struct {
	Model    string         `json:"model"`
	Messages []sonarMessage `json:"messages"`
}

type sonarMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type sonarResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int          `json:"index"`
		Message sonarMessage `json:"message"`
	} `json:"choices"`
}
