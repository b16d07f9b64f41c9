package llm

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/raine/buddy-vision/internal/vision"
)

const (
	openAIModel       = "gpt-4o-mini"
	openAITemperature = 0.7
)

// OpenAIGenerator turns a normalized vision result into a spoken-friendly
// scene description using the OpenAI chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

type OpenAIOpts struct {
	APIKey  string
	BaseURL string // optional override, used in tests
	Model   string // optional, defaults to openAIModel
}

func NewOpenAIGenerator(opts OpenAIOpts) *OpenAIGenerator {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = openAIModel
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *OpenAIGenerator) Describe(
	ctx context.Context,
	result *vision.VisionResult,
	settings Settings,
	language string,
) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: openAITemperature,
		MaxTokens:   maxTokens(settings.DetailLevel),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(settings, language),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt(result, settings, time.Now()),
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &GenerationError{Reason: "chat completion request failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Reason: "chat completion returned no choices"}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &GenerationError{Reason: "chat completion returned empty content"}
	}

	log.Debug().
		Str("model", g.model).
		Str("detail", string(settings.DetailLevel)).
		Int("chars", len(text)).
		Msg("generated scene description")

	return text, nil
}
