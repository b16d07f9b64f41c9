// Package vision calls the Google Cloud Vision API and normalizes its
// heterogeneous response into the canonical VisionResult structure consumed
// by the description generator and the read-text affordance.
package vision

import (
	"fmt"
	"time"
)

// VisionResult is the normalized output of one image analysis. It is
// produced once per capture and never mutated afterwards.
type VisionResult struct {
	Objects   []Object    `json:"objects"`
	Faces     FaceSummary `json:"faces"`
	Text      TextBlock   `json:"text"`
	Labels    []Label     `json:"labels"`
	Colors    []Color     `json:"colors"`
	Timestamp time.Time   `json:"timestamp"`
}

// Object is a localized object with a coarse position label.
type Object struct {
	Name       string `json:"name"`
	Confidence int    `json:"confidence"` // 0-100
	Position   string `json:"position"`   // one of the 9 compass-zone strings
}

// FaceSummary aggregates face detections.
type FaceSummary struct {
	Count             int           `json:"count"`
	Emotions          []FaceEmotion `json:"emotions"`
	HasMultiplePeople bool          `json:"hasMultiplePeople"`
}

// FaceEmotion is the dominant emotion of one detected face.
type FaceEmotion struct {
	Emotion  string `json:"emotion"` // joy, sorrow, anger, surprise or neutral
	Headwear bool   `json:"headwear"`
	Position string `json:"position"`
}

// TextBlock is the OCR output. FullText is the first raw annotation; Words
// are the remaining per-word annotations.
type TextBlock struct {
	HasText   bool     `json:"hasText"`
	FullText  string   `json:"fullText"`
	Words     []string `json:"words"`
	WordCount int      `json:"wordCount"`
}

// Label is a scene label above the confidence threshold.
type Label struct {
	Name       string `json:"name"`
	Confidence int    `json:"confidence"` // 0-100
}

// Color is one of the dominant image colors.
type Color struct {
	RGB        RGB `json:"rgb"`
	Percentage int `json:"percentage"` // 0-100, share of pixels
	Score      int `json:"score"`      // 0-100
}

// RGB holds color channel values as returned by the API.
type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// AnalysisError wraps any failure of the remote analysis call, including
// malformed response structure.
type AnalysisError struct {
	Reason string
	Err    error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("analysis failed: %s", e.Reason)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
