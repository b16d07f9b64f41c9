package pipeline

import "github.com/rs/zerolog/log"

// LogFeedback emits capture lifecycle cues to the log. It stands in for
// haptic feedback on deployments without a vibration-capable client.
type LogFeedback struct{}

func (LogFeedback) CaptureStarted() {
	log.Debug().Msg("capture started cue")
}

func (LogFeedback) DescriptionDelivered() {
	log.Debug().Msg("description delivered cue")
}

func (LogFeedback) Failed() {
	log.Debug().Msg("failure cue")
}
