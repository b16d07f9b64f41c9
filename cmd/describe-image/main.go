package main

import (
	"context"
	"fmt"
	"os"

	"github.com/raine/buddy-vision/config"
	"github.com/raine/buddy-vision/internal/llm"
	"github.com/raine/buddy-vision/internal/vision"
)

// describe-image analyzes a single image file and prints the structured
// result and generated description. Useful for checking API keys and
// prompt behavior without the full server.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <image-path> [language] [quick|standard|detailed]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment variables:\n")
		fmt.Fprintf(os.Stderr, "  GOOGLE_VISION_API_KEY - Required for image analysis\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY        - Required for description generation\n")
		os.Exit(1)
	}

	config.LoadEnvFile()

	imagePath := os.Args[1]
	language := "en-US"
	if len(os.Args) >= 3 {
		language = os.Args[2]
	}
	settings := llm.DefaultSettings()
	if len(os.Args) >= 4 {
		settings.DetailLevel = llm.DetailLevel(os.Args[3])
		settings = settings.Normalize()
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read image: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	analyzer := vision.NewClient(vision.ClientOpts{
		APIKey: os.Getenv("GOOGLE_VISION_API_KEY"),
	})

	result, err := analyzer.Analyze(ctx, imageData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== ANALYSIS ===")
	fmt.Printf("Objects: %d\n", len(result.Objects))
	for _, o := range result.Objects {
		fmt.Printf("  %s (%d%%, %s)\n", o.Name, o.Confidence, o.Position)
	}
	fmt.Printf("Faces: %d\n", result.Faces.Count)
	for _, e := range result.Faces.Emotions {
		fmt.Printf("  %s (%s)\n", e.Emotion, e.Position)
	}
	if result.Text.HasText {
		fmt.Printf("Text: %q (%d words)\n", result.Text.FullText, result.Text.WordCount)
	}
	fmt.Printf("Labels:")
	for _, l := range result.Labels {
		fmt.Printf(" %s", l.Name)
	}
	fmt.Println()

	fmt.Println("\n=== DESCRIPTION ===")

	generator := llm.NewOpenAIGenerator(llm.OpenAIOpts{
		APIKey: os.Getenv("OPENAI_API_KEY"),
	})

	description, err := generator.Describe(ctx, result, settings, language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed (%v), falling back\n", err)
		description = llm.FallbackDescription(result)
	}

	fmt.Println(description)
}
