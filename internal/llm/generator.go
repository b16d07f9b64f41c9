package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/raine/buddy-vision/internal/vision"
)

// Generator produces a natural-language scene description from a vision
// result, in the user's language and detail level.
type Generator interface {
	Describe(ctx context.Context, result *vision.VisionResult, settings Settings, language string) (string, error)
}

// GenerationError wraps any failure of the remote generation call.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// FallbackDescription assembles a basic description directly from the
// vision result when the generation service is unavailable. Sections are
// concatenated in a fixed order and empty ones are skipped.
func FallbackDescription(result *vision.VisionResult) string {
	var parts []string

	if result.Faces.Count > 0 {
		noun := "person"
		if result.Faces.Count > 1 {
			noun = "persons"
		}
		parts = append(parts, fmt.Sprintf("%d %s detected", result.Faces.Count, noun))
	}

	if len(result.Objects) > 0 {
		names := make([]string, 0, 3)
		for _, o := range result.Objects {
			names = append(names, o.Name)
			if len(names) == 3 {
				break
			}
		}
		parts = append(parts, "including "+strings.Join(names, ", "))
	}

	if result.Text.HasText {
		text := result.Text.FullText
		if runes := []rune(text); len(runes) > 50 {
			text = string(runes[:50])
		}
		parts = append(parts, "Text visible: "+text)
	}

	if len(result.Labels) > 0 {
		parts = append(parts, "Scene appears to be "+strings.ToLower(result.Labels[0].Name))
	}

	if len(parts) == 0 {
		return "Unable to generate detailed description. Please try again."
	}
	return strings.Join(parts, ". ") + "."
}
