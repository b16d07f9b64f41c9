// Package pipeline drives the capture → analyze → describe → speak flow
// and owns session ordering: when captures overlap, only the most recently
// started session may deliver results.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/raine/buddy-vision/internal/camera"
	"github.com/raine/buddy-vision/internal/i18n"
	"github.com/raine/buddy-vision/internal/llm"
	"github.com/raine/buddy-vision/internal/vision"
)

// State is the pipeline's externally visible phase.
type State string

const (
	StateIdle      State = "idle"
	StateCapturing State = "capturing"
	StateAnalyzing State = "analyzing"
	StateSpeaking  State = "speaking"
)

const (
	defaultAnalysisTimeout = 30 * time.Second
	defaultSafetyTimeout   = 35 * time.Second
)

// Analyzer runs remote image analysis. Satisfied by *vision.Client.
type Analyzer interface {
	Analyze(ctx context.Context, imageData []byte) (*vision.VisionResult, error)
}

// Voice speaks text aloud. Satisfied by *speech.Speaker.
type Voice interface {
	Speak(ctx context.Context, text string) error
	Announce(ctx context.Context, text string) error
	SetLanguage(language string)
	SetRate(rate float64)
	Stop()
}

// Listener receives UI state changes. All methods are called from the
// capture goroutine and must not block.
type Listener interface {
	ShowLoading(message string)
	HideLoading()
	ShowStatus(message string)
	DescriptionReady(description string, result *vision.VisionResult)
}

// Feedback receives best-effort haptic/audio cues. A nil Feedback is
// valid; failures are ignored.
type Feedback interface {
	CaptureStarted()
	DescriptionDelivered()
	Failed()
}

// Prefs is the subset of storage used by the pipeline. Persistence
// failures are logged, never surfaced to the user.
type Prefs interface {
	SetLanguage(code string) error
	SaveSettings(settings llm.Settings) error
	RecordCapture(description, language string) error
}

// Deps are the pipeline's collaborators. Camera may be nil when frames
// arrive pre-encoded from a browser client.
type Deps struct {
	Camera    camera.Source
	Analyzer  Analyzer
	Generator llm.Generator
	Voice     Voice
	Listener  Listener
	Feedback  Feedback
	Prefs     Prefs

	AnalysisTimeout time.Duration
	SafetyTimeout   time.Duration
}

// Pipeline coordinates a single user's capture sessions.
type Pipeline struct {
	deps Deps

	mu              sync.Mutex
	state           State
	language        string
	settings        llm.Settings
	sessionCounter  uint64
	activeSession   uint64
	lastDescription string
	lastText        string
}

func New(deps Deps) *Pipeline {
	if deps.AnalysisTimeout <= 0 {
		deps.AnalysisTimeout = defaultAnalysisTimeout
	}
	if deps.SafetyTimeout <= 0 {
		deps.SafetyTimeout = defaultSafetyTimeout
	}
	return &Pipeline{
		deps:     deps,
		state:    StateIdle,
		language: i18n.DefaultLanguage,
		settings: llm.DefaultSettings(),
	}
}

// State returns the current pipeline phase.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Language returns the active language code.
func (p *Pipeline) Language() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.language
}

// Settings returns the active settings.
func (p *Pipeline) Settings() llm.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// LastDescription returns the most recently delivered description, empty
// when none has been delivered yet.
func (p *Pipeline) LastDescription() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastDescription
}

// Capture grabs a frame from the camera, encodes it and runs a full
// analysis session.
func (p *Pipeline) Capture(ctx context.Context) (string, error) {
	if p.deps.Camera == nil {
		return "", camera.ErrCameraUnavailable
	}

	p.setState(StateCapturing)
	if p.deps.Feedback != nil {
		p.deps.Feedback.CaptureStarted()
	}

	frame, err := p.deps.Camera.Frame(ctx)
	if err != nil {
		p.setState(StateIdle)
		p.speakError(ctx, p.translations().CaptureError)
		return "", err
	}

	imageData, err := camera.EncodeFrame(frame)
	if err != nil {
		p.setState(StateIdle)
		p.speakError(ctx, p.translations().CaptureError)
		return "", err
	}

	return p.HandleCapture(ctx, imageData)
}

// HandleCapture runs an analysis session over an encoded JPEG frame. It
// returns the spoken description. A newer capture started while this one
// is in flight wins: the stale result is discarded silently.
func (p *Pipeline) HandleCapture(ctx context.Context, imageData []byte) (string, error) {
	session := p.startSession()
	tr := p.translations()

	if p.deps.Listener != nil {
		p.deps.Listener.ShowLoading(tr.Analyzing)
	}

	// The loading overlay must never outlive the deadline, even if a
	// downstream call misbehaves.
	safety := time.AfterFunc(p.deps.SafetyTimeout, func() {
		if p.isActive(session) && p.deps.Listener != nil {
			p.deps.Listener.HideLoading()
		}
	})
	defer safety.Stop()

	analysisCtx, cancel := context.WithTimeout(ctx, p.deps.AnalysisTimeout)
	defer cancel()

	result, err := p.deps.Analyzer.Analyze(analysisCtx, imageData)
	if err != nil {
		if !p.isActive(session) {
			return "", nil
		}
		if p.deps.Listener != nil {
			p.deps.Listener.HideLoading()
		}
		p.setState(StateIdle)
		message := tr.ProcessingError
		if analysisCtx.Err() == context.DeadlineExceeded {
			message = tr.TimeoutError
		}
		// The underlying reason is spoken too so the user hears what
		// actually went wrong, not just a generic notice.
		p.speakError(ctx, message+" "+err.Error())
		log.Error().Err(err).Uint64("session", session).Msg("analysis failed")
		return "", err
	}

	if !p.isActive(session) {
		log.Debug().Uint64("session", session).Msg("discarding stale analysis result")
		return "", nil
	}

	p.setState(StateAnalyzing)
	if p.deps.Listener != nil {
		p.deps.Listener.ShowStatus(tr.GeneratingDescription)
	}

	p.mu.Lock()
	settings := p.settings
	language := p.language
	p.mu.Unlock()

	description, err := p.deps.Generator.Describe(analysisCtx, result, settings, language)
	if err != nil {
		// Generation failure is not a session failure: the structured
		// result still yields a usable local description.
		log.Warn().Err(err).Uint64("session", session).Msg("generation failed, using fallback")
		description = llm.FallbackDescription(result)
	}

	if !p.isActive(session) {
		log.Debug().Uint64("session", session).Msg("discarding stale description")
		return "", nil
	}

	p.mu.Lock()
	p.lastDescription = description
	p.lastText = result.Text.FullText
	p.mu.Unlock()

	if p.deps.Prefs != nil {
		if err := p.deps.Prefs.RecordCapture(description, language); err != nil {
			log.Warn().Err(err).Msg("failed to record capture")
		}
	}

	if p.deps.Listener != nil {
		p.deps.Listener.HideLoading()
		p.deps.Listener.DescriptionReady(description, result)
	}
	if p.deps.Feedback != nil {
		p.deps.Feedback.DescriptionDelivered()
	}

	p.setState(StateSpeaking)
	if err := p.deps.Voice.Speak(ctx, description); err != nil {
		log.Warn().Err(err).Msg("failed to speak description")
	}
	p.setState(StateIdle)

	return description, nil
}

// Repeat speaks the last delivered description again. With no description
// yet, the placeholder guidance is spoken instead.
func (p *Pipeline) Repeat(ctx context.Context) error {
	p.mu.Lock()
	description := p.lastDescription
	p.mu.Unlock()

	if description == "" {
		return p.deps.Voice.Announce(ctx, p.translations().Placeholder)
	}
	return p.deps.Voice.Speak(ctx, description)
}

// ReadText speaks the full text detected in the last capture, or a
// localized "no text" notice.
func (p *Pipeline) ReadText(ctx context.Context) error {
	p.mu.Lock()
	text := p.lastText
	p.mu.Unlock()

	if text == "" {
		return p.deps.Voice.Announce(ctx, p.translations().NoTextDetected)
	}
	return p.deps.Voice.Speak(ctx, text)
}

// ChangeLanguage switches the session language, persists it, reselects
// the voice and confirms the change aloud in the new language.
func (p *Pipeline) ChangeLanguage(ctx context.Context, code string) string {
	resolved := code
	if !i18n.Supported(code) {
		resolved = i18n.DefaultLanguage
	}

	p.mu.Lock()
	p.language = resolved
	p.mu.Unlock()

	if p.deps.Prefs != nil {
		if err := p.deps.Prefs.SetLanguage(resolved); err != nil {
			log.Warn().Err(err).Msg("failed to persist language")
		}
	}

	p.deps.Voice.SetLanguage(resolved)
	tr := i18n.Resolve(resolved)
	if err := p.deps.Voice.Announce(ctx, tr.LanguageSelected); err != nil {
		log.Warn().Err(err).Msg("failed to announce language change")
	}

	log.Info().Str("language", resolved).Msg("language changed")
	return resolved
}

// UpdateSettings normalizes, applies and persists new settings.
func (p *Pipeline) UpdateSettings(settings llm.Settings) llm.Settings {
	normalized := settings.Normalize()

	p.mu.Lock()
	p.settings = normalized
	p.mu.Unlock()

	if p.deps.Prefs != nil {
		if err := p.deps.Prefs.SaveSettings(normalized); err != nil {
			log.Warn().Err(err).Msg("failed to persist settings")
		}
	}

	p.deps.Voice.SetRate(normalized.VoiceSpeed)
	return normalized
}

// Restore applies persisted language and settings without announcements,
// used at startup.
func (p *Pipeline) Restore(language string, settings llm.Settings) {
	if !i18n.Supported(language) {
		language = i18n.DefaultLanguage
	}
	normalized := settings.Normalize()

	p.mu.Lock()
	p.language = language
	p.settings = normalized
	p.mu.Unlock()

	p.deps.Voice.SetLanguage(language)
	p.deps.Voice.SetRate(normalized.VoiceSpeed)
}

// Welcome announces the ready state in the current language.
func (p *Pipeline) Welcome(ctx context.Context) error {
	return p.deps.Voice.Announce(ctx, p.translations().Welcome)
}

// Stop interrupts any speech and abandons in-flight sessions.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	p.activeSession = 0
	p.state = StateIdle
	p.mu.Unlock()
	p.deps.Voice.Stop()
}

func (p *Pipeline) startSession() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessionCounter++
	p.activeSession = p.sessionCounter
	p.state = StateAnalyzing
	return p.sessionCounter
}

func (p *Pipeline) isActive(session uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeSession == session
}

func (p *Pipeline) setState(state State) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}

func (p *Pipeline) translations() i18n.Translations {
	p.mu.Lock()
	language := p.language
	p.mu.Unlock()
	return i18n.Resolve(language)
}

func (p *Pipeline) speakError(ctx context.Context, message string) {
	if p.deps.Feedback != nil {
		p.deps.Feedback.Failed()
	}
	if err := p.deps.Voice.Announce(ctx, message); err != nil {
		log.Warn().Err(err).Msg("failed to speak error message")
	}
}
