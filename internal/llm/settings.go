// Package llm builds localized prompts from vision results and calls a
// remote language-generation service to produce spoken scene descriptions.
// When the remote call fails, a locally synthesized fallback description is
// produced instead so the user never gets raw failure.
package llm

// DetailLevel is the user-selected verbosity tier. It controls both the
// prompt instruction and the response token budget.
type DetailLevel string

const (
	DetailQuick    DetailLevel = "quick"
	DetailStandard DetailLevel = "standard"
	DetailDetailed DetailLevel = "detailed"
)

// Settings are the process-wide user preferences, persisted across sessions
// and mutated only through explicit settings actions.
type Settings struct {
	VoiceSpeed    float64     `json:"voiceSpeed"`
	DetailLevel   DetailLevel `json:"detailLevel"`
	Partner       string      `json:"partner,omitempty"`
	SelectedEvent string      `json:"selectedEvent,omitempty"`
	SelectedVenue string      `json:"selectedVenue,omitempty"`
}

// DefaultSettings are applied on first run and whenever persisted settings
// are missing or unreadable.
func DefaultSettings() Settings {
	return Settings{
		VoiceSpeed:  1.0,
		DetailLevel: DetailStandard,
	}
}

// Normalize clamps voice speed into [0.5, 2.0] and defaults unknown detail
// levels to standard.
func (s Settings) Normalize() Settings {
	if s.VoiceSpeed < 0.5 {
		s.VoiceSpeed = 0.5
	}
	if s.VoiceSpeed > 2.0 {
		s.VoiceSpeed = 2.0
	}
	switch s.DetailLevel {
	case DetailQuick, DetailStandard, DetailDetailed:
	default:
		s.DetailLevel = DetailStandard
	}
	return s
}

// maxTokens returns the response token budget for a detail level.
func maxTokens(level DetailLevel) int {
	switch level {
	case DetailQuick:
		return 100
	case DetailDetailed:
		return 500
	default:
		return 300
	}
}
