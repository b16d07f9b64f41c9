package speech

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const announceRateFactor = 0.9

// SpeechError wraps a synthesis or playback failure.
type SpeechError struct {
	Reason string
	Err    error
}

func (e *SpeechError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("speech failed: %s", e.Reason)
}

func (e *SpeechError) Unwrap() error { return e.Err }

// Speaker speaks text aloud in the current language at the configured
// rate. Starting a new utterance interrupts any in-flight one; the
// interrupted call resolves normally rather than reporting an error.
type Speaker struct {
	synth  Synthesizer
	sink   Sink
	voices []Voice

	mu     sync.Mutex
	voice  Voice
	rate   float64
	cancel context.CancelFunc
}

// NewSpeaker builds a speaker over the given synthesizer and sink with the
// default voice catalog and language.
func NewSpeaker(synth Synthesizer, sink Sink) *Speaker {
	s := &Speaker{
		synth:  synth,
		sink:   sink,
		voices: DefaultVoices(),
		rate:   1.0,
	}
	s.voice, _ = SelectVoice(s.voices, "en-US")
	return s
}

// SetVoices replaces the voice catalog, used when the platform reports its
// own set of installed voices.
func (s *Speaker) SetVoices(voices []Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voices = voices
}

// SetLanguage reselects the voice for the given language code.
func (s *Speaker) SetLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	voice, ok := SelectVoice(s.voices, language)
	if !ok {
		log.Warn().Str("language", language).Msg("no voice available")
		return
	}
	s.voice = voice
	log.Info().Str("language", language).Str("voice", voice.Name).Msg("voice selected")
}

// Voice returns the currently selected voice.
func (s *Speaker) Voice() Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voice
}

// SetRate sets the speaking rate multiplier.
func (s *Speaker) SetRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rate = rate
}

// Speak speaks text at the configured rate, interrupting any utterance in
// progress. Returns nil when interrupted by a newer call or Stop.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	s.mu.Lock()
	rate := s.rate
	s.mu.Unlock()
	return s.speak(ctx, text, rate, 1.0)
}

// Announce speaks a system notification slightly slower than the user's
// rate so status messages stay easy to catch, at full volume.
func (s *Speaker) Announce(ctx context.Context, text string) error {
	s.mu.Lock()
	rate := s.rate * announceRateFactor
	s.mu.Unlock()
	return s.speak(ctx, text, rate, 1.0)
}

func (s *Speaker) speak(ctx context.Context, text string, rate, volume float64) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	speakCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	voice := s.voice
	s.mu.Unlock()
	defer cancel()

	audio, err := s.synth.Synthesize(speakCtx, text, voice.Name)
	if err != nil {
		if benignSpeechError(err) {
			return nil
		}
		return &SpeechError{Reason: "synthesis failed", Err: err}
	}

	if err := s.sink.Play(speakCtx, audio, rate, volume); err != nil {
		if benignSpeechError(err) {
			return nil
		}
		return &SpeechError{Reason: "playback failed", Err: err}
	}
	return nil
}

// Stop interrupts the current utterance, if any.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// benignSpeechError reports whether the error is an expected interruption
// rather than a real failure.
func benignSpeechError(err error) bool {
	if err == nil {
		return false
	}
	if err == context.Canceled {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "interrupted") ||
		strings.Contains(msg, "cancelled") ||
		strings.Contains(msg, "canceled")
}
