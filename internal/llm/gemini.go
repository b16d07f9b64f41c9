package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/raine/buddy-vision/internal/vision"
)

const geminiModel = "gemini-2.5-flash"

// Gemini pricing (per million tokens)
const (
	geminiInputPricePerMillion  = 0.30
	geminiOutputPricePerMillion = 2.50
)

// GeminiGenerator produces scene descriptions with Google's Gemini API.
// It can be used as a drop-in alternative to the OpenAI generator; when a
// raw frame is attached via DescribeWithImage, the model sees the image
// itself in addition to the structured analysis.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// GeminiOpts configures the Gemini generator. BaseURL and Model are
// optional overrides, used in tests.
type GeminiOpts struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, opts GeminiOpts) (*GeminiGenerator, error) {
	cfg := &genai.ClientConfig{
		APIKey: opts.APIKey,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions.BaseURL = opts.BaseURL
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := opts.Model
	if model == "" {
		model = geminiModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Describe(
	ctx context.Context,
	result *vision.VisionResult,
	settings Settings,
	language string,
) (string, error) {
	return g.generate(ctx, result, settings, language, nil)
}

// DescribeWithImage includes the captured JPEG frame alongside the
// structured analysis so the model can ground the description in pixels.
func (g *GeminiGenerator) DescribeWithImage(
	ctx context.Context,
	result *vision.VisionResult,
	settings Settings,
	language string,
	imageData []byte,
) (string, error) {
	return g.generate(ctx, result, settings, language, imageData)
}

func (g *GeminiGenerator) generate(
	ctx context.Context,
	result *vision.VisionResult,
	settings Settings,
	language string,
	imageData []byte,
) (string, error) {
	prompt := systemPrompt(settings, language) + "\n\n" + userPrompt(result, settings, time.Now())

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	if len(imageData) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{Data: imageData, MIMEType: "image/jpeg"},
		})
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](openAITemperature),
		MaxOutputTokens: int32(maxTokens(settings.DetailLevel)),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", &GenerationError{Reason: "gemini call failed", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &GenerationError{Reason: "empty response from gemini"}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &GenerationError{Reason: "gemini returned empty text"}
	}

	if resp.UsageMetadata != nil {
		inputTokens := int64(resp.UsageMetadata.PromptTokenCount)
		outputTokens := int64(resp.UsageMetadata.CandidatesTokenCount)
		cost := float64(inputTokens)/1_000_000*geminiInputPricePerMillion +
			float64(outputTokens)/1_000_000*geminiOutputPricePerMillion
		log.Info().
			Str("model", g.model).
			Bool("withImage", len(imageData) > 0).
			Int64("inputTokens", inputTokens).
			Int64("outputTokens", outputTokens).
			Float64("costUSD", cost).
			Msg("description llm call")
	}

	return text, nil
}
