package agent

import (
	"context"
	"testing"

	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flowFixture struct {
	flow        *ChatFlow
	client      *scriptedLLM
	chats       *stubChatRepo
	profileRepo *stubProfileRepo
	contexts    *memory.ContextStore
}

func newFlowFixture(client *scriptedLLM, searcher *stubSearcher) *flowFixture {
	chats := &stubChatRepo{}
	profileRepo := newStubProfileRepo()
	contexts := memory.NewContextStore(10)

	retrieve := NewRetrieveStep(&stubEmbedder{},
		&stubVectorRepo[db.HealthTipModel]{},
		&stubVectorRepo[db.ProductModel]{}, 5, nil)

	var research *ResearchStep
	if searcher != nil {
		research = NewResearchStep(searcher, nil)
	} else {
		research = NewResearchStep(nil, nil)
	}

	flow := NewChatFlow(
		NewQueryPlanner(client, 4, nil),
		research,
		retrieve,
		NewComposer(client, nil),
		contexts,
		memory.NewProfileStore(profileRepo, client),
		chats,
		nil,
	)

	return &flowFixture{flow: flow, client: client, chats: chats, profileRepo: profileRepo, contexts: contexts}
}

func TestFlowRejectsEmptyMessage(t *testing.T) {
	fx := newFlowFixture(&scriptedLLM{}, nil)

	_, err := fx.flow.HandleMessage(context.Background(), "u1", "   ", ChannelWeb)

	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, fx.client.calls)
}

func TestFlowWebChannel(t *testing.T) {
	client := &scriptedLLM{
		responses: []string{
			`{"needs_research": false, "sub_queries": []}`,
			"reasoning transcript",
			"Drink water regularly through the day.",
		},
	}
	fx := newFlowFixture(client, nil)

	answer, err := fx.flow.HandleMessage(context.Background(), "u1", "how much water per day", ChannelWeb)

	require.NoError(t, err)
	assert.Equal(t, "Drink water regularly through the day.", answer)

	// turn recorded in the rolling window and in chat history
	window := fx.contexts.Get("u1")
	require.Len(t, window, 1)
	assert.Equal(t, "how much water per day", window[0].Message)

	require.Len(t, fx.chats.saved, 1)
	assert.Equal(t, "web", fx.chats.saved[0].Channel)

	// web identities never touch the profile store
	assert.Zero(t, fx.profileRepo.saves)
	assert.Len(t, client.calls, 3)
}

func TestFlowSMSChannelUpdatesProfile(t *testing.T) {
	client := &scriptedLLM{
		responses: []string{
			`{"needs_research": false, "sub_queries": []}`,
			"reasoning transcript",
			"Final answer.",
			`{"summary": "Asks about hydration.", "key_topics": ["hydration"]}`,
		},
	}
	fx := newFlowFixture(client, nil)

	_, err := fx.flow.HandleMessage(context.Background(), "+15550100", "how much water per day", ChannelSMS)

	require.NoError(t, err)
	assert.Equal(t, 1, fx.profileRepo.saves)

	profile := fx.profileRepo.profiles["+15550100"]
	assert.Equal(t, []string{"hydration"}, profile.KeyTopics)
}

func TestFlowResearchPath(t *testing.T) {
	client := &scriptedLLM{
		responses: []string{
			`{"needs_research": true, "sub_queries": ["benefits of zinc"]}`,
			"reasoning transcript",
			"Final answer.",
		},
	}
	searcher := &stubSearcher{results: map[string]string{"benefits of zinc": "Zinc supports immunity."}}
	fx := newFlowFixture(client, searcher)

	_, err := fx.flow.HandleMessage(context.Background(), "u1", "is zinc worth taking", ChannelWeb)
	require.NoError(t, err)

	// findings reach the reasoning pass
	require.Len(t, client.calls, 3)
	assert.Contains(t, client.calls[1][0].Content, "Zinc supports immunity.")
}

func TestFlowPlannerFailureStillAnswers(t *testing.T) {
	client := &scriptedLLM{
		responses: []string{
			"not json",
			"reasoning transcript",
			"Final answer.",
		},
	}
	fx := newFlowFixture(client, nil)

	answer, err := fx.flow.HandleMessage(context.Background(), "u1", "query", ChannelWeb)

	require.NoError(t, err)
	assert.Equal(t, "Final answer.", answer)
}

func TestFlowRecoversToDefaultResponse(t *testing.T) {
	client := &scriptedLLM{
		responses: []string{
			`{"needs_research": false, "sub_queries": []}`,
			"reasoning transcript",
			"Final answer.",
		},
	}
	retrieve := NewRetrieveStep(&stubEmbedder{},
		&stubVectorRepo[db.HealthTipModel]{},
		&stubVectorRepo[db.ProductModel]{}, 5, nil)

	// nil chat repo makes persistence panic after composition
	flow := NewChatFlow(
		NewQueryPlanner(client, 4, nil),
		NewResearchStep(nil, nil),
		retrieve,
		NewComposer(client, nil),
		memory.NewContextStore(10),
		memory.NewProfileStore(newStubProfileRepo(), client),
		nil,
		nil,
	)

	answer, err := flow.HandleMessage(context.Background(), "u1", "query", ChannelWeb)

	require.NoError(t, err)
	assert.Equal(t, DefaultResponse, answer)
}

func TestFlowClearContext(t *testing.T) {
	fx := newFlowFixture(&scriptedLLM{}, nil)
	fx.contexts.Append("u1", memory.Turn{Message: "m", Response: "r"})

	fx.flow.ClearContext("u1")

	assert.Empty(t, fx.contexts.Get("u1"))
}
