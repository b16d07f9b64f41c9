package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const annotateFixture = `{
	"responses": [{
		"localizedObjectAnnotations": [
			{"name": "Person", "score": 0.93, "boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.1}, {"x": 0.2, "y": 0.2}]}},
			{"name": "Backpack", "score": 0.61, "boundingPoly": {"normalizedVertices": [{"x": 0.8, "y": 0.8}, {"x": 0.9, "y": 0.9}]}}
		],
		"faceAnnotations": [
			{"joyLikelihood": "VERY_LIKELY", "sorrowLikelihood": "VERY_UNLIKELY", "angerLikelihood": "VERY_UNLIKELY", "surpriseLikelihood": "UNLIKELY", "headwearLikelihood": "VERY_UNLIKELY"}
		],
		"textAnnotations": [
			{"description": "GATE B\nENTRANCE"},
			{"description": "GATE"},
			{"description": "B"},
			{"description": "ENTRANCE"}
		],
		"labelAnnotations": [
			{"description": "Stadium", "score": 0.95},
			{"description": "Crowd", "score": 0.88},
			{"description": "Blur", "score": 0.4}
		],
		"imagePropertiesAnnotation": {
			"dominantColors": {"colors": [
				{"color": {"red": 120, "green": 120, "blue": 120}, "score": 0.5, "pixelFraction": 0.4}
			]}
		}
	}]
}`

func TestAnalyze(t *testing.T) {
	var gotBody annotateRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images:annotate", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, annotateFixture)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, APIKey: "test-key"})
	image := []byte("fake-jpeg-bytes")

	result, err := client.Analyze(context.Background(), image)
	require.NoError(t, err)

	// Request carries the image content and the expected feature set.
	require.Len(t, gotBody.Requests, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), gotBody.Requests[0].Image.Content)
	assert.Len(t, gotBody.Requests[0].Features, 5)

	assert.Equal(t, "Person", result.Objects[0].Name)
	assert.Equal(t, 93, result.Objects[0].Confidence)
	assert.Equal(t, "top left", result.Objects[0].Position)
	assert.Equal(t, "bottom right", result.Objects[1].Position)
	assert.Equal(t, 1, result.Faces.Count)
	assert.Equal(t, "joy", result.Faces.Emotions[0].Emotion)
	assert.True(t, result.Text.HasText)
	assert.Equal(t, "GATE B\nENTRANCE", result.Text.FullText)
	assert.Equal(t, 3, result.Text.WordCount)
	assert.Len(t, result.Labels, 2) // low-confidence label filtered
	assert.Len(t, result.Colors, 1)
}

func TestAnalyzeAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"responses": [{"error": {"code": 7, "message": "invalid API key"}}]}`)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, APIKey: "bad"})
	_, err := client.Analyze(context.Background(), []byte("img"))

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Contains(t, analysisErr.Reason, "invalid API key")
}

func TestAnalyzeNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, APIKey: "k"})
	_, err := client.Analyze(context.Background(), []byte("img"))

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Contains(t, analysisErr.Reason, "429")
}

func TestAnalyzeEmptyImage(t *testing.T) {
	client := NewClient(ClientOpts{BaseURL: "http://invalid", APIKey: "k"})
	_, err := client.Analyze(context.Background(), nil)

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"responses": []}`)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, APIKey: "k"})
	_, err := client.Analyze(context.Background(), []byte("img"))

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Contains(t, analysisErr.Reason, "empty response")
}

func TestDecodeDataURL(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0xe0}
	encoded := base64.StdEncoding.EncodeToString(raw)

	got, err := DecodeDataURL("data:image/jpeg;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	// Bare base64 without the data-URL prefix is accepted too.
	got, err = DecodeDataURL(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = DecodeDataURL("not base64!!!")
	assert.Error(t, err)
}
