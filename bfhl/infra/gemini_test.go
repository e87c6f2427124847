package infra

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func geminiReply(text string) string {
	out, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	return string(out)
}

func newFakeGemini(t *testing.T, status int, reply string) (*httptest.Server, *atomic.Int32, *atomic.Value) {
	t.Helper()
	calls := &atomic.Int32{}
	prompt := &atomic.Value{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		b, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(b, &req); err == nil && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			prompt.Store(req.Contents[0].Parts[0].Text)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, calls, prompt
}

func TestGeminiAnswerer_ExtractsFirstWord(t *testing.T) {
	srv, calls, prompt := newFakeGemini(t, http.StatusOK, geminiReply("  Paris. is the capital"))

	a, err := NewGeminiAnswerer(context.Background(), GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)
	require.True(t, a.Configured())

	got, err := a.Answer(context.Background(), "What is the capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Answer in ONE word only: What is the capital of France?", prompt.Load())
}

func TestGeminiAnswerer_FallbackWhenShapeMissing(t *testing.T) {
	srv, _, _ := newFakeGemini(t, http.StatusOK, `{"candidates":[]}`)

	a, err := NewGeminiAnswerer(context.Background(), GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	got, err := a.Answer(context.Background(), "?")
	require.NoError(t, err)
	assert.Equal(t, FallbackAnswer, got)
}

func TestGeminiAnswerer_UpstreamErrorIsUnavailable(t *testing.T) {
	srv, calls, _ := newFakeGemini(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`)

	a, err := NewGeminiAnswerer(context.Background(), GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = a.Answer(context.Background(), "?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestGeminiAnswerer_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	a, err := NewGeminiAnswerer(context.Background(), GeminiOptions{
		APIKey:  "k",
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	_, err = a.Answer(context.Background(), "?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGeminiAnswerer_WithoutKeyFails(t *testing.T) {
	a, err := NewGeminiAnswerer(context.Background(), GeminiOptions{})
	require.NoError(t, err)
	assert.False(t, a.Configured())

	_, err = a.Answer(context.Background(), "?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
}

func TestExtractOneWord(t *testing.T) {
	text := func(s string) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: s}}},
		}}}
	}

	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{name: "nil response", resp: nil, want: FallbackAnswer},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: FallbackAnswer},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, want: FallbackAnswer},
		{name: "no parts", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}}, want: FallbackAnswer},
		{name: "blank text", resp: text("   \n"), want: FallbackAnswer},
		{name: "punctuation only", resp: text("!!! Paris"), want: FallbackAnswer},
		{name: "simple", resp: text("Mumbai"), want: "Mumbai"},
		{name: "trims and strips", resp: text("\n  \"Blue!\" sky"), want: "Blue"},
		{name: "keeps underscore and digits", resp: text("snake_case42."), want: "snake_case42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractOneWord(tc.resp))
		})
	}
}
