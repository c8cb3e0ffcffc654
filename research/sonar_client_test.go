package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideSonarClient(t *testing.T) {
	t.Run("no credential disables research", func(t *testing.T) {
		t.Setenv("SONAR_API_KEY", "")
		assert.Nil(t, ProvideSonarClient(time.Second))
	})

	t.Run("credential enables research", func(t *testing.T) {
		t.Setenv("SONAR_API_KEY", "pplx-test")
		assert.NotNil(t, ProvideSonarClient(time.Second))
	})
}

func TestSonarClientSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "Bearer pplx-test", r.Header.Get("Authorization"))

		var req sonarRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "What are the proven benefits of magnesium?", req.Messages[1].Content)

		resp := sonarResponse{
			Choices: []struct {
				Index   int          `json:"index"`
				Message sonarMessage `json:"message"`
			}{
				{Message: sonarMessage{Role: "assistant", Content: "Magnesium supports muscle function."}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	t.Setenv("SONAR_API_KEY", "pplx-test")
	client := ProvideSonarClient(time.Second)
	client.url = server.URL

	findings, err := client.Search(context.Background(), "What are the proven benefits of magnesium?")
	require.NoError(t, err)
	assert.Equal(t, "Magnesium supports muscle function.", findings)
}

func TestSonarClientSearchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	t.Setenv("SONAR_API_KEY", "pplx-test")
	client := ProvideSonarClient(time.Second)
	client.url = server.URL

	_, err := client.Search(context.Background(), "anything")
	assert.Error(t, err)
}
