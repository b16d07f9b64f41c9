package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const ApiBaseUrl = "https://vision.googleapis.com/v1"

// Feature requests sent with every annotate call. The caps mirror what the
// normalization layer can usefully consume.
var requestFeatures = []feature{
	{Type: "OBJECT_LOCALIZATION", MaxResults: 20},
	{Type: "FACE_DETECTION", MaxResults: 50},
	{Type: "TEXT_DETECTION", MaxResults: 10},
	{Type: "LABEL_DETECTION", MaxResults: 15},
	{Type: "IMAGE_PROPERTIES"},
}

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type annotateRequest struct {
	Requests []annotateEntry `json:"requests"`
}

type annotateEntry struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type ClientOpts struct {
	BaseURL string
	APIKey  string
}

// Client is the scene analyzer backed by the Google Cloud Vision API.
type Client struct {
	httpClient *resty.Client
	apiKey     string
}

func NewClient(opts ClientOpts) *Client {
	baseURL := ApiBaseUrl
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	c := &Client{apiKey: opts.APIKey}
	c.httpClient = resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	return c
}

// Analyze sends a JPEG image to the annotate endpoint and normalizes the
// response. All failures, including malformed response shapes, are reported
// as *AnalysisError.
func (c *Client) Analyze(ctx context.Context, imageData []byte) (*VisionResult, error) {
	if len(imageData) == 0 {
		return nil, &AnalysisError{Reason: "empty image"}
	}

	body := annotateRequest{
		Requests: []annotateEntry{{
			Image:    imageContent{Content: base64.StdEncoding.EncodeToString(imageData)},
			Features: requestFeatures,
		}},
	}

	result := &annotateResponse{}
	res, err := c.httpClient.NewRequest().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(result).
		Post("/images:annotate")
	if err != nil {
		return nil, &AnalysisError{Reason: "request failed", Err: err}
	}
	if res.IsError() {
		return nil, &AnalysisError{
			Reason: fmt.Sprintf("vision api returned status %d: %s", res.StatusCode(), res.String()),
		}
	}
	if len(result.Responses) == 0 {
		return nil, &AnalysisError{Reason: "empty response from vision api"}
	}

	raw := result.Responses[0]
	if raw.Error != nil {
		return nil, &AnalysisError{Reason: raw.Error.Message}
	}

	normalized := normalizeResult(raw)
	log.Debug().
		Int("objects", len(normalized.Objects)).
		Int("faces", normalized.Faces.Count).
		Bool("hasText", normalized.Text.HasText).
		Int("labels", len(normalized.Labels)).
		Msg("vision analysis complete")

	return normalized, nil
}

// DecodeDataURL strips an optional data-URL prefix and decodes the base64
// payload, as accepted at the proxy boundary.
func DecodeDataURL(s string) ([]byte, error) {
	stripped := dataURLPrefix.ReplaceAllString(s, "")
	data, err := base64.StdEncoding.DecodeString(stripped)
	if err != nil {
		return nil, fmt.Errorf("invalid image data: %w", err)
	}
	return data, nil
}
