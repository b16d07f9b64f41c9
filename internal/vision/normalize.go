package vision

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	labelConfidenceThreshold = 0.70
	maxLabels                = 10
	maxColors                = 3
)

// Raw annotation shapes as returned by the images:annotate endpoint. Only
// the fields we consume are declared; everything else is ignored on
// decode.

type annotateResponse struct {
	Responses []annotationResult `json:"responses"`
}

type annotationResult struct {
	Error                      *apiError          `json:"error"`
	LocalizedObjectAnnotations []objectAnnotation `json:"localizedObjectAnnotations"`
	FaceAnnotations            []faceAnnotation   `json:"faceAnnotations"`
	TextAnnotations            []textAnnotation   `json:"textAnnotations"`
	LabelAnnotations           []labelAnnotation  `json:"labelAnnotations"`
	ImagePropertiesAnnotation  *imageProperties   `json:"imagePropertiesAnnotation"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type objectAnnotation struct {
	Name         string        `json:"name"`
	Score        float64       `json:"score"`
	BoundingPoly *boundingPoly `json:"boundingPoly"`
}

type faceAnnotation struct {
	JoyLikelihood      string        `json:"joyLikelihood"`
	SorrowLikelihood   string        `json:"sorrowLikelihood"`
	AngerLikelihood    string        `json:"angerLikelihood"`
	SurpriseLikelihood string        `json:"surpriseLikelihood"`
	HeadwearLikelihood string        `json:"headwearLikelihood"`
	BoundingPoly       *boundingPoly `json:"boundingPoly"`
}

type textAnnotation struct {
	Description string `json:"description"`
}

type labelAnnotation struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type imageProperties struct {
	DominantColors struct {
		Colors []colorInfo `json:"colors"`
	} `json:"dominantColors"`
}

type colorInfo struct {
	Color         RGB     `json:"color"`
	Score         float64 `json:"score"`
	PixelFraction float64 `json:"pixelFraction"`
}

type boundingPoly struct {
	Vertices           []vertex `json:"vertices"`
	NormalizedVertices []vertex `json:"normalizedVertices"`
}

type vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// likelihoodScore discretizes the API's likelihood enum.
var likelihoodScore = map[string]int{
	"VERY_LIKELY":   5,
	"LIKELY":        4,
	"POSSIBLE":      3,
	"UNLIKELY":      2,
	"VERY_UNLIKELY": 1,
}

// normalizeResult converts one raw annotation result into a VisionResult.
func normalizeResult(raw annotationResult) *VisionResult {
	return &VisionResult{
		Objects:   normalizeObjects(raw.LocalizedObjectAnnotations),
		Faces:     normalizeFaces(raw.FaceAnnotations),
		Text:      normalizeText(raw.TextAnnotations),
		Labels:    normalizeLabels(raw.LabelAnnotations),
		Colors:    normalizeColors(raw.ImagePropertiesAnnotation),
		Timestamp: time.Now(),
	}
}

func normalizeObjects(annotations []objectAnnotation) []Object {
	objects := make([]Object, 0, len(annotations))
	for _, a := range annotations {
		objects = append(objects, Object{
			Name:       a.Name,
			Confidence: roundPercent(a.Score),
			Position:   positionLabel(a.BoundingPoly),
		})
	}
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].Confidence > objects[j].Confidence
	})
	return objects
}

func normalizeFaces(annotations []faceAnnotation) FaceSummary {
	emotions := make([]FaceEmotion, 0, len(annotations))
	for _, face := range annotations {
		emotions = append(emotions, FaceEmotion{
			Emotion: dominantEmotion(map[string]string{
				"joy":      face.JoyLikelihood,
				"sorrow":   face.SorrowLikelihood,
				"anger":    face.AngerLikelihood,
				"surprise": face.SurpriseLikelihood,
			}),
			Headwear: face.HeadwearLikelihood != "" && face.HeadwearLikelihood != "VERY_UNLIKELY",
			Position: positionLabel(face.BoundingPoly),
		})
	}
	return FaceSummary{
		Count:             len(annotations),
		Emotions:          emotions,
		HasMultiplePeople: len(annotations) > 1,
	}
}

func normalizeText(annotations []textAnnotation) TextBlock {
	if len(annotations) == 0 {
		return TextBlock{HasText: false, FullText: "", Words: []string{}}
	}
	// First annotation is the full text block, the rest are word tokens.
	words := make([]string, 0, len(annotations)-1)
	for _, a := range annotations[1:] {
		words = append(words, a.Description)
	}
	return TextBlock{
		HasText:   true,
		FullText:  strings.TrimSpace(annotations[0].Description),
		Words:     words,
		WordCount: len(words),
	}
}

func normalizeLabels(annotations []labelAnnotation) []Label {
	labels := make([]Label, 0, len(annotations))
	for _, a := range annotations {
		if a.Score <= labelConfidenceThreshold {
			continue
		}
		labels = append(labels, Label{Name: a.Description, Confidence: roundPercent(a.Score)})
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].Confidence > labels[j].Confidence
	})
	if len(labels) > maxLabels {
		labels = labels[:maxLabels]
	}
	return labels
}

func normalizeColors(props *imageProperties) []Color {
	if props == nil {
		return []Color{}
	}
	source := props.DominantColors.Colors
	if len(source) > maxColors {
		source = source[:maxColors]
	}
	colors := make([]Color, 0, len(source))
	for _, c := range source {
		colors = append(colors, Color{
			RGB:        c.Color,
			Percentage: roundPercent(c.PixelFraction),
			Score:      roundPercent(c.Score),
		})
	}
	return colors
}

// positionLabel classifies a bounding polygon's centroid into one of the 9
// compass-zone strings. Missing geometry defaults to "center".
func positionLabel(poly *boundingPoly) string {
	if poly == nil {
		return "center"
	}
	vertices := poly.NormalizedVertices
	if len(vertices) == 0 {
		vertices = poly.Vertices
	}
	if len(vertices) == 0 {
		return "center"
	}
	var sumX, sumY float64
	for _, v := range vertices {
		sumX += v.X
		sumY += v.Y
	}
	return positionFromCentroid(sumX/float64(len(vertices)), sumY/float64(len(vertices)))
}

// positionFromCentroid maps a centroid in [0,1]x[0,1] to a position string.
// Both axes split at 0.33 and 0.67; the exact boundary values fall in the
// middle third.
func positionFromCentroid(x, y float64) string {
	horizontal := "center"
	if x < 0.33 {
		horizontal = "left"
	} else if x > 0.67 {
		horizontal = "right"
	}
	vertical := "middle"
	if y < 0.33 {
		vertical = "top"
	} else if y > 0.67 {
		vertical = "bottom"
	}
	if horizontal == "center" && vertical == "middle" {
		return "center"
	}
	return vertical + " " + horizontal
}

// dominantEmotion picks the emotion with the strictly highest discretized
// likelihood. An emotion is only declared when the winner reaches at least
// LIKELY; otherwise the face is neutral.
func dominantEmotion(likelihoods map[string]string) string {
	maxScore := 0
	dominant := "neutral"
	for _, emotion := range []string{"joy", "sorrow", "anger", "surprise"} {
		score := likelihoodScore[likelihoods[emotion]]
		if score > maxScore {
			maxScore = score
			dominant = emotion
		}
	}
	if maxScore >= 4 {
		return dominant
	}
	return "neutral"
}

func roundPercent(score float64) int {
	return int(math.Round(score * 100))
}
