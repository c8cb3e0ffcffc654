package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeTwoPass(t *testing.T) {
	client := &scriptedLLM{
		responses: []string{
			"Step 1: the question is about hydration.",
			"Aim for about two litres of water a day.",
		},
	}
	composer := NewComposer(client, nil)

	answer := composer.Compose(context.Background(), "how much water per day", nil, nil, RetrievedContext{}, nil)

	assert.Equal(t, "Aim for about two litres of water a day.", answer)
	require.Len(t, client.calls, 2)

	// refinement pass is grounded on the reasoning transcript
	refineMessages := client.calls[1]
	require.NotEmpty(t, refineMessages)
	assert.Contains(t, refineMessages[0].Content, "Step 1: the question is about hydration.")
}

func TestComposeFallbackOnReasoningFailure(t *testing.T) {
	client := &scriptedLLM{errs: []error{errors.New("provider down")}}
	composer := NewComposer(client, nil)

	answer := composer.Compose(context.Background(), "query", nil, nil, RetrievedContext{}, nil)

	assert.Equal(t, FallbackResponse, answer)
	assert.Len(t, client.calls, 1, "refinement must not run after a failed reasoning pass")
}

func TestComposeFallbackOnRefinementFailure(t *testing.T) {
	client := &scriptedLLM{
		responses: []string{"some reasoning", ""},
		errs:      []error{nil, errors.New("provider down")},
	}
	composer := NewComposer(client, nil)

	answer := composer.Compose(context.Background(), "query", nil, nil, RetrievedContext{}, nil)

	assert.Equal(t, FallbackResponse, answer)
	assert.Len(t, client.calls, 2)
}

func TestBuildContextInfo(t *testing.T) {
	retrieved := RetrievedContext{
		HealthTips: []db.HealthTipModel{{Text: "Sleep 7-9 hours."}},
		Products:   []db.ProductModel{{Name: "Magnesium", Description: "Supports sleep quality."}},
	}
	profile := &memory.UserProfile{Summary: "Recurring interest in sleep."}
	subQueries := []string{"q1", "q2"}
	findings := map[string]string{
		"q2": "finding two",
		"q1": "finding one",
	}

	out := buildContextInfo(retrieved, profile, subQueries, findings)

	assert.Contains(t, out, "Local Knowledge:\n- Sleep 7-9 hours.\n- Magnesium: Supports sleep quality.")
	assert.Contains(t, out, "User Context:\nRecurring interest in sleep.")
	assert.Contains(t, out, "Research on q1:\nfinding one\nResearch on q2:\nfinding two")
}

func TestBuildContextInfoEmpty(t *testing.T) {
	assert.Equal(t, "", buildContextInfo(RetrievedContext{}, nil, nil, nil))
}
