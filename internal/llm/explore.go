package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/raine/buddy-vision/internal/i18n"
)

const (
	exploreTemperature = 0.8
	exploreMaxTokens   = 250
)

const exploreSystemPrompt = `You are a knowledgeable LA 2028 Olympics guide helping visitors explore the neighborhoods around Olympic venues. You know Los Angeles well: its districts, transit, food, and culture.

Keep answers friendly and practical. Mention walking distances, nearby Metro stations, and a few specific places worth visiting. Assume the visitor is standing near the venue right now.`

// ExploreAnswer is the response for a neighborhood exploration query.
type ExploreAnswer struct {
	Location string `json:"location"`
	Info     string `json:"info"`
}

// Explore answers free-form questions about the area around an Olympic
// venue, such as where to eat or how to reach transit.
func (g *OpenAIGenerator) Explore(ctx context.Context, venueID, question, language string) (*ExploreAnswer, error) {
	location := venueID
	if venue, ok := VenueContext(venueID); ok {
		location = venue.Name
	}

	userContent := fmt.Sprintf("The visitor is at %s. Their question: %s", location, question)
	if question == "" {
		userContent = fmt.Sprintf("The visitor is at %s. Tell them what is worth knowing about this neighborhood.", location)
	}

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: exploreTemperature,
		MaxTokens:   exploreMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: exploreSystemPrompt + "\n\n" + i18n.ResponseInstruction(language),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userContent,
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, &GenerationError{Reason: "explore request failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &GenerationError{Reason: "explore request returned no choices"}
	}

	info := strings.TrimSpace(resp.Choices[0].Message.Content)
	if info == "" {
		return nil, &GenerationError{Reason: "explore request returned empty content"}
	}

	log.Debug().
		Str("venue", venueID).
		Int("chars", len(info)).
		Msg("explore answer generated")

	return &ExploreAnswer{Location: location, Info: info}, nil
}
