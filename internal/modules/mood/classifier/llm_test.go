package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	appcfg "github.com/moodify/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(context.Context, string, string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestLLM_ShortCircuitsKnownLabel(t *testing.T) {
	stub := &stubCompleter{reply: "sad"}
	llm := NewLLMWithCompleter(stub, time.Second, nil)

	assert.Equal(t, "fear", llm.Classify(context.Background(), "  Fear "))
	assert.Equal(t, 0, stub.calls)
}

func TestLLM_FailsSoft(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCompleter
		want string
	}{
		{"valid reply", &stubCompleter{reply: "Angry."}, "angry"},
		{"network error", &stubCompleter{err: errors.New("dial tcp: refused")}, "neutral"},
		{"reply outside set", &stubCompleter{reply: "melancholic"}, "neutral"},
		{"chatty reply", &stubCompleter{reply: "I think the user is sad"}, "neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := NewLLMWithCompleter(tt.stub, time.Second, nil)
			assert.Equal(t, tt.want, llm.Classify(context.Background(), "my cat ignored me all day"))
			assert.Equal(t, 1, tt.stub.calls)
		})
	}
}

func TestLLM_DisabledReturnsNeutral(t *testing.T) {
	llm, err := NewLLM(appcfg.AIProvider{Enabled: false}, nil)
	require.NoError(t, err)
	assert.False(t, llm.Enabled())
	assert.Equal(t, "neutral", llm.Classify(context.Background(), "whatever"))
	assert.Equal(t, "happy", llm.Classify(context.Background(), "happy"))
}

func TestNewLLM_RequiresKey(t *testing.T) {
	_, err := NewLLM(appcfg.AIProvider{Enabled: true, Type: "openai"}, nil)
	assert.Error(t, err)

	_, err = NewLLM(appcfg.AIProvider{Enabled: true, Type: "cohere", APIKey: "k"}, nil)
	assert.Error(t, err)
}

func TestNewLLM_BuildsSDKProviders(t *testing.T) {
	for _, typ := range []string{"openai", "anthropic"} {
		llm, err := NewLLM(appcfg.AIProvider{Enabled: true, Type: typ, APIKey: "k"}, nil)
		require.NoError(t, err, typ)
		assert.True(t, llm.Enabled(), typ)
	}
}

func TestLLM_OpenAICompatibleRoundTrip(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mood-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "happy, sad, angry, neutral, fear")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" Happy\n"}}]}`))
	}))
	defer srv.Close()

	llm, err := NewLLM(appcfg.AIProvider{
		Enabled:  true,
		Type:     "openai_compatible",
		Endpoint: srv.URL + "/v1/",
		Model:    "mood-mini",
		APIKey:   "test-key",
		Timeout:  time.Second,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "happy", llm.Classify(context.Background(), "got the job!"))
	assert.EqualValues(t, 1, hits.Load())
}

func TestLLM_OpenAICompatibleServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	llm, err := NewLLM(appcfg.AIProvider{Enabled: true, Type: "openai-compatible", Endpoint: srv.URL, APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "neutral", llm.Classify(context.Background(), "meh"))
}

func TestDetector(t *testing.T) {
	plain := NewDetector(NewLLMWithCompleter(nil, 0, nil))
	assert.False(t, plain.UsesModel())
	assert.Equal(t, "calm", plain.Detect(context.Background(), "feeling serene"))
	assert.Equal(t, "fear", plain.Detect(context.Background(), "fear"))

	stub := &stubCompleter{reply: "sad"}
	withModel := NewDetector(NewLLMWithCompleter(stub, time.Second, nil))
	assert.True(t, withModel.UsesModel())
	assert.Equal(t, "sad", withModel.Detect(context.Background(), "feeling serene"))
}

func TestNormalizeEndpoints(t *testing.T) {
	assert.Equal(t, "https://api.openai.com", normalizeOpenAICompatibleEndpoint(""))
	assert.Equal(t, "http://gw.local", normalizeOpenAICompatibleEndpoint("http://gw.local/v1/"))
	assert.Equal(t, "https://proxy.example/v1", normalizeOpenAIBaseURL("https://proxy.example"))
	assert.Equal(t, "https://proxy.example/v1", normalizeOpenAIBaseURL("https://proxy.example/v1/"))
}
