package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raine/buddy-vision/internal/vision"
)

func TestSystemPrompt(t *testing.T) {
	t.Run("includes language instruction", func(t *testing.T) {
		prompt := systemPrompt(DefaultSettings(), "es-ES")
		assert.Contains(t, prompt, "RESPOND IN SPANISH.")
		assert.Contains(t, prompt, "Buddy Vision")
	})

	t.Run("includes venue context when selected", func(t *testing.T) {
		settings := DefaultSettings()
		settings.SelectedVenue = "rose-bowl"
		prompt := systemPrompt(settings, "en-US")
		assert.Contains(t, prompt, "Rose Bowl Stadium")
		assert.Contains(t, prompt, "Soccer")
	})

	t.Run("unknown venue adds no context", func(t *testing.T) {
		settings := DefaultSettings()
		settings.SelectedVenue = "atlantis"
		prompt := systemPrompt(settings, "en-US")
		assert.NotContains(t, prompt, "Venue context")
	})
}

func TestUserPrompt(t *testing.T) {
	now := time.Date(2028, 7, 14, 10, 30, 0, 0, time.UTC)

	t.Run("serializes detected elements", func(t *testing.T) {
		result := &vision.VisionResult{
			Faces: vision.FaceSummary{Count: 2, HasMultiplePeople: true, Emotions: []vision.FaceEmotion{
				{Emotion: "joy", Position: "center"},
				{Emotion: "neutral", Position: "left"},
			}},
			Objects: []vision.Object{{Name: "Backpack", Confidence: 91, Position: "bottom left"}},
			Text:    vision.TextBlock{HasText: true, FullText: "GATE B"},
			Labels:  []vision.Label{{Name: "Stadium", Confidence: 95}},
		}
		prompt := userPrompt(result, DefaultSettings(), now)
		assert.Contains(t, prompt, "People: 2 persons detected")
		assert.Contains(t, prompt, "joy")
		assert.NotContains(t, prompt, "neutral")
		assert.Contains(t, prompt, "Backpack (bottom left)")
		assert.Contains(t, prompt, `"GATE B"`)
		assert.Contains(t, prompt, "Stadium")
		assert.Contains(t, prompt, "UNIQUE CAPTURE ID")
	})

	t.Run("notes absence of people", func(t *testing.T) {
		prompt := userPrompt(&vision.VisionResult{}, DefaultSettings(), now)
		assert.Contains(t, prompt, "No people detected")
	})

	t.Run("includes detail level", func(t *testing.T) {
		settings := DefaultSettings()
		settings.DetailLevel = DetailDetailed
		prompt := userPrompt(&vision.VisionResult{}, settings, now)
		assert.Contains(t, prompt, "Provide a detailed description")
	})

	t.Run("nonce differs between calls", func(t *testing.T) {
		a := userPrompt(&vision.VisionResult{}, DefaultSettings(), now)
		b := userPrompt(&vision.VisionResult{}, DefaultSettings(), now)
		assert.NotEqual(t, a, b)
	})
}
