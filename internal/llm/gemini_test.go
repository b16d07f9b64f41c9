package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raine/buddy-vision/internal/vision"
)

// newGeminiServer answers every generateContent call with the given text.
func newGeminiServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "generateContent")
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": content}},
				}},
			},
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 9,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestGeminiGeneratorDescribe(t *testing.T) {
	ts := newGeminiServer(t, "A quiet plaza with fountains directly ahead.")
	defer ts.Close()

	gen, err := NewGeminiGenerator(context.Background(), GeminiOpts{APIKey: "test", BaseURL: ts.URL})
	require.NoError(t, err)

	result := &vision.VisionResult{
		Labels: []vision.Label{{Name: "Plaza", Confidence: 91}},
	}

	text, err := gen.Describe(context.Background(), result, DefaultSettings(), "en-US")
	require.NoError(t, err)
	assert.Equal(t, "A quiet plaza with fountains directly ahead.", text)
}

func TestGeminiGeneratorDescribeEmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer ts.Close()

	gen, err := NewGeminiGenerator(context.Background(), GeminiOpts{APIKey: "test", BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = gen.Describe(context.Background(), &vision.VisionResult{}, DefaultSettings(), "en-US")
	require.Error(t, err)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestGeminiGeneratorServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	gen, err := NewGeminiGenerator(context.Background(), GeminiOpts{APIKey: "test", BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = gen.Describe(context.Background(), &vision.VisionResult{}, DefaultSettings(), "en-US")
	require.Error(t, err)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "gemini call failed", genErr.Reason)
}
