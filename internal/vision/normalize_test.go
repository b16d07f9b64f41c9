package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionFromCentroid(t *testing.T) {
	tests := []struct {
		x, y float64
		want string
	}{
		{0.1, 0.1, "top left"},
		{0.5, 0.1, "top center"},
		{0.9, 0.1, "top right"},
		{0.1, 0.5, "middle left"},
		{0.5, 0.5, "center"},
		{0.9, 0.5, "middle right"},
		{0.1, 0.9, "bottom left"},
		{0.5, 0.9, "bottom center"},
		{0.9, 0.9, "bottom right"},
		// Boundary values belong to the middle third on both axes.
		{0.33, 0.33, "center"},
		{0.67, 0.67, "center"},
		{0.33, 0.9, "bottom center"},
		{0.67, 0.1, "top center"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, positionFromCentroid(tt.x, tt.y), "centroid (%v, %v)", tt.x, tt.y)
	}
}

func TestPositionLabelMissingGeometry(t *testing.T) {
	assert.Equal(t, "center", positionLabel(nil))
	assert.Equal(t, "center", positionLabel(&boundingPoly{}))
}

func TestPositionLabelPrefersNormalizedVertices(t *testing.T) {
	poly := &boundingPoly{
		NormalizedVertices: []vertex{{X: 0.0, Y: 0.0}, {X: 0.2, Y: 0.2}},
		Vertices:           []vertex{{X: 500, Y: 500}},
	}
	assert.Equal(t, "top left", positionLabel(poly))
}

func TestDominantEmotion(t *testing.T) {
	tests := []struct {
		name        string
		likelihoods map[string]string
		want        string
	}{
		{
			name: "clear winner above threshold",
			likelihoods: map[string]string{
				"joy": "VERY_LIKELY", "sorrow": "POSSIBLE", "anger": "UNLIKELY", "surprise": "UNLIKELY",
			},
			want: "joy",
		},
		{
			name: "all possible or lower is neutral",
			likelihoods: map[string]string{
				"joy": "POSSIBLE", "sorrow": "POSSIBLE", "anger": "UNLIKELY", "surprise": "VERY_UNLIKELY",
			},
			want: "neutral",
		},
		{
			name: "likely qualifies",
			likelihoods: map[string]string{
				"joy": "UNLIKELY", "sorrow": "LIKELY", "anger": "UNLIKELY", "surprise": "UNLIKELY",
			},
			want: "sorrow",
		},
		{
			name:        "unknown likelihood strings are neutral",
			likelihoods: map[string]string{"joy": "", "sorrow": "", "anger": "", "surprise": ""},
			want:        "neutral",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dominantEmotion(tt.likelihoods))
		})
	}
}

func TestNormalizeObjectsSortedByConfidence(t *testing.T) {
	objects := normalizeObjects([]objectAnnotation{
		{Name: "Chair", Score: 0.55},
		{Name: "Person", Score: 0.934},
		{Name: "Sign", Score: 0.71},
	})

	assert.Equal(t, []string{"Person", "Sign", "Chair"}, []string{objects[0].Name, objects[1].Name, objects[2].Name})
	assert.Equal(t, 93, objects[0].Confidence)
	assert.Equal(t, 71, objects[1].Confidence)
	for _, o := range objects {
		assert.GreaterOrEqual(t, o.Confidence, 0)
		assert.LessOrEqual(t, o.Confidence, 100)
	}
}

func TestNormalizeLabelsFiltersSortsAndCaps(t *testing.T) {
	annotations := make([]labelAnnotation, 0, 15)
	// 12 labels above the threshold with increasing score, 3 below.
	for i := 0; i < 12; i++ {
		annotations = append(annotations, labelAnnotation{
			Description: string(rune('A' + i)),
			Score:       0.71 + float64(i)*0.02,
		})
	}
	annotations = append(annotations,
		labelAnnotation{Description: "low1", Score: 0.70}, // threshold is exclusive
		labelAnnotation{Description: "low2", Score: 0.5},
		labelAnnotation{Description: "low3", Score: 0.1},
	)

	labels := normalizeLabels(annotations)

	assert.Len(t, labels, 10)
	for i := 1; i < len(labels); i++ {
		assert.GreaterOrEqual(t, labels[i-1].Confidence, labels[i].Confidence)
	}
	for _, l := range labels {
		assert.NotContains(t, []string{"low1", "low2", "low3"}, l.Name)
	}
}

func TestNormalizeText(t *testing.T) {
	block := normalizeText([]textAnnotation{
		{Description: " EXIT Gate A \n"},
		{Description: "EXIT"},
		{Description: "Gate"},
		{Description: "A"},
	})

	assert.True(t, block.HasText)
	assert.Equal(t, "EXIT Gate A", block.FullText)
	assert.Equal(t, []string{"EXIT", "Gate", "A"}, block.Words)
	assert.Equal(t, 3, block.WordCount)
}

func TestNormalizeTextEmpty(t *testing.T) {
	block := normalizeText(nil)
	assert.False(t, block.HasText)
	assert.Empty(t, block.FullText)
	assert.Empty(t, block.Words)
}

func TestNormalizeFaces(t *testing.T) {
	faces := normalizeFaces([]faceAnnotation{
		{JoyLikelihood: "VERY_LIKELY", HeadwearLikelihood: "LIKELY"},
		{SorrowLikelihood: "POSSIBLE", HeadwearLikelihood: "VERY_UNLIKELY"},
	})

	assert.Equal(t, 2, faces.Count)
	assert.True(t, faces.HasMultiplePeople)
	assert.Equal(t, "joy", faces.Emotions[0].Emotion)
	assert.True(t, faces.Emotions[0].Headwear)
	assert.Equal(t, "neutral", faces.Emotions[1].Emotion)
	assert.False(t, faces.Emotions[1].Headwear)

	single := normalizeFaces([]faceAnnotation{{JoyLikelihood: "LIKELY"}})
	assert.False(t, single.HasMultiplePeople)
}

func TestNormalizeColorsCapsAtThree(t *testing.T) {
	props := &imageProperties{}
	props.DominantColors.Colors = []colorInfo{
		{Color: RGB{Red: 200, Green: 10, Blue: 10}, Score: 0.4, PixelFraction: 0.321},
		{Color: RGB{Red: 10, Green: 200, Blue: 10}, Score: 0.3, PixelFraction: 0.2},
		{Color: RGB{Red: 10, Green: 10, Blue: 200}, Score: 0.2, PixelFraction: 0.1},
		{Color: RGB{Red: 50, Green: 50, Blue: 50}, Score: 0.1, PixelFraction: 0.05},
	}

	colors := normalizeColors(props)

	assert.Len(t, colors, 3)
	assert.Equal(t, 32, colors[0].Percentage)
	assert.Equal(t, 40, colors[0].Score)

	assert.Empty(t, normalizeColors(nil))
}
