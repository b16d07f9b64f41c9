package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/dedent"

	"github.com/raine/buddy-vision/internal/i18n"
	"github.com/raine/buddy-vision/internal/vision"
)

const systemPromptTemplate = `You are Buddy Vision, a universal AI visual assistant helping ALL visitors at the LA 2028 Olympics understand their environment.

Your users include:
- Visually impaired individuals
- Non-English speakers needing translations
- Elderly visitors needing clarity
- Tourists unfamiliar with venues
- Anyone needing quick visual information

Your responses should:
1. Provide clear, actionable descriptions of what's visible
2. Identify text on signs, menus, schedules (for translation)
3. Describe navigation options (exits, directions, accessible routes)
4. Note important Olympic elements (volunteers, event info, facilities)
5. Explain crowd conditions and safety considerations
6. Use natural, conversational language accessible to all

Adapt your description length based on the user's setting:
- Quick: 1-2 sentences, essential info only
- Standard: 3-4 sentences, balanced detail
- Detailed: 5-7 sentences, comprehensive scene understanding

CRITICAL: Provide meaningful context, not just object lists. Include visible TEXT exactly as written (for translation). Mention people, their activities, and the overall atmosphere.

Focus on practical needs: Where am I? What's around me? Where can I go? What do signs say? Is it safe to proceed?`

// systemPrompt builds the role instruction for the generation call: task
// framing, venue context when a known venue is selected, and the response
// language directive.
func systemPrompt(settings Settings, language string) string {
	var b strings.Builder
	b.WriteString(dedent.Dedent(systemPromptTemplate))

	if venue, ok := VenueContext(settings.SelectedVenue); ok {
		fmt.Fprintf(&b, "\n\nVenue context: %s (%s). %s %s", venue.Name, venue.Sport, venue.Context, venue.Layout)
	}

	b.WriteString("\n\n")
	b.WriteString(i18n.ResponseInstruction(language))
	return b.String()
}

// userPrompt serializes the vision result into the user-content block.
// Empty sections are omitted. The capture id nonce defeats response caching
// by the remote service so repeated similar scenes still get fresh text.
func userPrompt(result *vision.VisionResult, settings Settings, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[UNIQUE CAPTURE ID: %s at %s]\n", uuid.NewString()[:8], now.Format(time.RFC3339))
	b.WriteString("Describe this scene for an LA 2028 Olympics visitor who needs visual assistance.\n")
	b.WriteString("User may be visually impaired, non-English speaking, elderly, or simply need quick info.\n\n")

	b.WriteString("Detected elements:\n")

	if result.Faces.Count > 0 {
		noun := "person"
		if result.Faces.Count > 1 {
			noun = "persons"
		}
		fmt.Fprintf(&b, "- People: %d %s detected\n", result.Faces.Count, noun)
		var emotions []string
		for _, e := range result.Faces.Emotions {
			if e.Emotion != "neutral" {
				emotions = append(emotions, e.Emotion)
			}
		}
		if len(emotions) > 0 {
			fmt.Fprintf(&b, "  Emotions: %s\n", strings.Join(emotions, ", "))
		}
	} else {
		b.WriteString("- People: No people detected in immediate view\n")
	}

	if len(result.Objects) > 0 {
		top := result.Objects
		if len(top) > 8 {
			top = top[:8]
		}
		described := make([]string, 0, len(top))
		for _, o := range top {
			described = append(described, fmt.Sprintf("%s (%s)", o.Name, o.Position))
		}
		fmt.Fprintf(&b, "- Objects: %s\n", strings.Join(described, ", "))
	}

	if result.Text.HasText {
		fmt.Fprintf(&b, "- Visible text: %q\n", result.Text.FullText)
	}

	if len(result.Labels) > 0 {
		top := result.Labels
		if len(top) > 5 {
			top = top[:5]
		}
		names := make([]string, 0, len(top))
		for _, l := range top {
			names = append(names, l.Name)
		}
		fmt.Fprintf(&b, "- Scene type: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "\nIMPORTANT: This is a NEW capture at %s. Give a FRESH description.\n\n", now.Format("15:04:05"))
	b.WriteString(dedent.Dedent(`
		Context: LA 2028 Olympics. Universal accessibility - help ALL visitors understand:
		1. VISIBLE TEXT: Quote any signs, schedules, menus EXACTLY (for translation)
		2. NAVIGATION: Exits, directions, accessible routes, facilities
		3. PEOPLE & CROWD: Where people are, what they're doing, Olympic staff presence
		4. LOCATION CONTEXT: What venue/area this appears to be based on visible cues
		5. SAFETY: Obstacles, crowd density, moving objects, steps/ramps
		6. PRACTICAL INFO: Food, bathrooms, seating, ticket areas if visible`))

	fmt.Fprintf(&b, "\n\nProvide a %s description:\n", settings.DetailLevel)
	b.WriteString(dedent.Dedent(`
		- Quick: 1-2 sentences, just the essentials
		- Standard: 3-4 sentences, balanced and helpful
		- Detailed: 5-7 sentences, comprehensive understanding`))

	b.WriteString("\n\nBe conversational and focus on what matters for someone who cannot see. Don't just list objects - paint a picture of the social and physical environment.")

	return b.String()
}
