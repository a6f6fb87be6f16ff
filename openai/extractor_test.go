package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/extract"
	elopenai "github.com/fwojciec/elephantlog/openai"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure FieldExtractor implements elephantlog.FieldExtractor.
var _ elephantlog.FieldExtractor = (*elopenai.FieldExtractor)(nil)

var article = &elephantlog.Article{
	URL:   "https://example.com/tusker",
	Title: "Tusker found dead in Raigarh",
	Text:  "A tusker was found dead near Dharamjaigarh on 2 August 2023.",
}

func reply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:     "chatcmpl-123",
		Object: "chat.completion",
		Model:  "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{{
			Message:      openai.ChatCompletionMessage{Role: "assistant", Content: content},
			FinishReason: "stop",
		}},
	}
}

func TestFieldExtractor_ExtractFields(t *testing.T) {
	t.Parallel()

	t.Run("sends the prompt and parses the reply", func(t *testing.T) {
		t.Parallel()

		var got openai.ChatCompletionRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			_ = json.NewDecoder(r.Body).Decode(&got)
			_ = json.NewEncoder(w).Encode(reply("```json\n" + `{"Date":"2023-08-02","State":"Chhattisgarh","District":"Raigarh","Type of Incident":"death","Elephant Deaths":"1"}` + "\n```"))
		}))
		defer srv.Close()

		e, err := elopenai.NewFieldExtractor("test-key", srv.URL, "", elephantlog.DefaultConfig())
		require.NoError(t, err)

		raw, err := e.ExtractFields(context.Background(), article)

		require.NoError(t, err)
		require.NotNil(t, raw.District)
		assert.Equal(t, "Raigarh", *raw.District)
		require.NotNil(t, raw.ElephantDeaths)
		assert.Equal(t, 1, *raw.ElephantDeaths)
		assert.Nil(t, raw.HumanDeaths)

		assert.Equal(t, elephantlog.DefaultOpenAIModel, got.Model)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, extract.SystemPrompt, got.Messages[0].Content)
		assert.Contains(t, got.Messages[1].Content, "Dharamjaigarh")
		require.NotNil(t, got.ResponseFormat)
		assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, got.ResponseFormat.Type)
	})

	t.Run("returns EPARSE when there are no choices", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "chatcmpl-1"})
		}))
		defer srv.Close()

		e, err := elopenai.NewFieldExtractor("test-key", srv.URL, "gpt-4o", elephantlog.DefaultConfig())
		require.NoError(t, err)

		_, err = e.ExtractFields(context.Background(), article)

		require.Error(t, err)
		assert.Equal(t, elephantlog.EPARSE, elephantlog.ErrorCode(err))
	})

	t.Run("returns EPARSE for malformed JSON", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(reply(`{"State": "Chhattisgarh",`))
		}))
		defer srv.Close()

		e, err := elopenai.NewFieldExtractor("test-key", srv.URL, "", elephantlog.DefaultConfig())
		require.NoError(t, err)

		_, err = e.ExtractFields(context.Background(), article)

		require.Error(t, err)
		assert.Equal(t, elephantlog.EPARSE, elephantlog.ErrorCode(err))
	})

	t.Run("returns an error for API failures", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
		}))
		defer srv.Close()

		e, err := elopenai.NewFieldExtractor("bad-key", srv.URL, "", elephantlog.DefaultConfig())
		require.NoError(t, err)

		_, err = e.ExtractFields(context.Background(), article)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "openai")
	})
}

func TestNewFieldExtractor_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := elopenai.NewFieldExtractor("", "", "", elephantlog.DefaultConfig())

	require.Error(t, err)
	assert.Equal(t, elephantlog.ECONFIG, elephantlog.ErrorCode(err))
}
