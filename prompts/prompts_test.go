package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompt(t *testing.T) {
	out, err := loadPrompt("templates/decompose_query_user.md", map[string]string{
		"QUERY": "What are the benefits of drinking more water?",
	})

	require.NoError(t, err)
	assert.Contains(t, out, "Query: What are the benefits of drinking more water?")
	assert.Contains(t, out, "needs_research")
}

func TestLoadPromptMissingTemplate(t *testing.T) {
	_, err := loadPrompt("templates/does_not_exist.md", map[string]string{})
	assert.Error(t, err)
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain json",
			input:    `{"needs_research": false}`,
			expected: `{"needs_research": false}`,
		},
		{
			name:     "fenced json",
			input:    "```json\n{\"needs_research\": true}\n```",
			expected: `{"needs_research": true}`,
		},
		{
			name:     "bare fences",
			input:    "```\n{\"sub_queries\": []}\n```",
			expected: `{"sub_queries": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSON(tt.input))
		})
	}
}
