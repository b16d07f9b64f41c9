package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{
			name: "clamps low voice speed",
			in:   Settings{VoiceSpeed: 0.1, DetailLevel: DetailQuick},
			want: Settings{VoiceSpeed: 0.5, DetailLevel: DetailQuick},
		},
		{
			name: "clamps high voice speed",
			in:   Settings{VoiceSpeed: 3.5, DetailLevel: DetailDetailed},
			want: Settings{VoiceSpeed: 2.0, DetailLevel: DetailDetailed},
		},
		{
			name: "defaults unknown detail level",
			in:   Settings{VoiceSpeed: 1.0, DetailLevel: "verbose"},
			want: Settings{VoiceSpeed: 1.0, DetailLevel: DetailStandard},
		},
		{
			name: "valid settings unchanged",
			in:   Settings{VoiceSpeed: 1.5, DetailLevel: DetailStandard, Partner: "metro"},
			want: Settings{VoiceSpeed: 1.5, DetailLevel: DetailStandard, Partner: "metro"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestMaxTokens(t *testing.T) {
	assert.Equal(t, 100, maxTokens(DetailQuick))
	assert.Equal(t, 300, maxTokens(DetailStandard))
	assert.Equal(t, 500, maxTokens(DetailDetailed))
	assert.Equal(t, 300, maxTokens("bogus"))
}

func TestVenueContext(t *testing.T) {
	venue, ok := VenueContext("la-coliseum")
	assert.True(t, ok)
	assert.Equal(t, "LA Memorial Coliseum", venue.Name)

	_, ok = VenueContext("nowhere")
	assert.False(t, ok)

	assert.Len(t, Venues(), 5)
}
